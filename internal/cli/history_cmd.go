// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jeranaias/mailcheck-tui/internal/storage"
)

// ErrHistoryDisabled is returned when history.enabled is false.
var ErrHistoryDisabled = &CommandError{Command: "history", Message: "history is disabled (history.enabled = false)", Code: ExitConfigError}

// historyRow is the JSON form of a history entry.
type historyRow struct {
	Email     string    `json:"email"`
	RiskLevel string    `json:"risk_level"`
	ElapsedMs int64     `json:"elapsed_ms"`
	CheckedAt time.Time `json:"checked_at"`
}

// RunHistory prints recent checks or clears them.
func RunHistory(ctx context.Context, env *Env, args Args) error {
	if env.History == nil {
		return ErrHistoryDisabled
	}

	if args.Clear {
		if err := env.History.Clear(ctx); err != nil {
			return &CommandError{Command: "history", Message: "clear failed", Err: err}
		}
		if args.JSON {
			return NewJSONResponse("history", map[string]bool{"cleared": true}).Write(env.Out)
		}
		if !args.Quiet {
			fmt.Fprintln(env.Out, "History cleared.")
		}
		return nil
	}

	limit := args.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	entries, err := env.History.Recent(ctx, limit)
	if err != nil {
		return &CommandError{Command: "history", Message: "read failed", Err: err}
	}

	if args.JSON {
		rows := make([]historyRow, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, toHistoryRow(e))
		}
		return NewJSONResponse("history", rows).Write(env.Out)
	}

	out := storage.FormatHistory(entries)
	if len(entries) == 0 {
		out += "\n"
	}
	_, err = fmt.Fprint(env.Out, out)
	return err
}

func toHistoryRow(e storage.HistoryEntry) historyRow {
	return historyRow{
		Email:     e.Email,
		RiskLevel: string(e.RiskLevel),
		ElapsedMs: e.Elapsed.Milliseconds(),
		CheckedAt: e.CheckedAt.UTC(),
	}
}
