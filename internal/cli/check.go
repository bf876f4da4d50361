// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jeranaias/mailcheck-tui/internal/checkapi"
	"github.com/jeranaias/mailcheck-tui/internal/emailaddr"
	"github.com/jeranaias/mailcheck-tui/internal/present"
)

// RunCheck checks args.Email once and prints the verdict. A high-risk
// verdict returns ErrHighRisk after printing.
func RunCheck(ctx context.Context, env *Env, args Args) error {
	email := emailaddr.Normalize(args.Email)
	if email == "" {
		return &CommandError{Command: "check", Message: "email is required", Code: ExitUsageError}
	}

	result, elapsed, err := checkOnce(ctx, env, email)
	if err != nil {
		if args.JSON {
			_ = NewJSONErrorResponse("check", err).Write(env.Out)
		}
		return &CommandError{Command: "check", Message: email, Err: err, Code: ExitCode(err)}
	}

	switch {
	case args.JSON:
		fmt.Fprintln(env.Out, present.Format(result))
	case ColorEnabled(env.Out):
		fmt.Fprint(env.Out, renderMarkdown(MarkdownReport(email, result, elapsed), TerminalWidth()-4))
	default:
		fmt.Fprint(env.Out, MarkdownReport(email, result, elapsed))
	}

	if result.RiskLevel() == checkapi.RiskHigh {
		return ErrHighRisk
	}
	return nil
}

// checkOnce runs a check, timing it and recording successes in history.
func checkOnce(ctx context.Context, env *Env, email string) (*checkapi.CheckResult, time.Duration, error) {
	start := env.now()
	result, err := env.Checker.Check(ctx, email)
	elapsed := env.now().Sub(start)
	if err != nil {
		env.logger().Info("check failed", "email", email, "error", err)
		return nil, elapsed, err
	}
	if result == nil {
		return nil, elapsed, &checkapi.ClientError{Type: checkapi.ErrTypeInvalidResponse, Message: checkapi.DefaultRejectMessage}
	}

	env.logger().Info("check finished", "email", email, "risk", result.RiskLevel(), "elapsed_ms", elapsed.Milliseconds())
	if env.History != nil {
		if herr := env.History.Record(ctx, email, result.RiskLevel(), elapsed); herr != nil {
			env.logger().Warn("history record failed", "error", herr)
		}
	}
	return result, elapsed, nil
}
