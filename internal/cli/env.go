// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/jeranaias/mailcheck-tui/internal/checkapi"
	"github.com/jeranaias/mailcheck-tui/internal/config"
	"github.com/jeranaias/mailcheck-tui/internal/storage"
)

// Checker performs one email check.
type Checker interface {
	Check(ctx context.Context, email string) (*checkapi.CheckResult, error)
}

// History is the part of the history store the commands use.
type History interface {
	Record(ctx context.Context, email string, level checkapi.RiskLevel, elapsed time.Duration) error
	Recent(ctx context.Context, n int) ([]storage.HistoryEntry, error)
	RecentEmails(ctx context.Context, n int) ([]string, error)
	Clear(ctx context.Context) error
}

// Env carries what command handlers need. History may be nil when the
// store is disabled.
type Env struct {
	Config  *config.Config
	Checker Checker
	History History
	Out     io.Writer
	Err     io.Writer
	Logger  *slog.Logger

	// Now defaults to time.Now.
	Now func() time.Time
}

func (e *Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Env) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}
