// mailcheck - a terminal widget for email risk checks.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jeranaias/mailcheck-tui/internal/checkapi"
	"github.com/jeranaias/mailcheck-tui/internal/cli"
	"github.com/jeranaias/mailcheck-tui/internal/clipboard"
	"github.com/jeranaias/mailcheck-tui/internal/config"
	"github.com/jeranaias/mailcheck-tui/internal/storage"
	"github.com/jeranaias/mailcheck-tui/internal/telemetry"
	"github.com/jeranaias/mailcheck-tui/internal/ui/app"
	"github.com/jeranaias/mailcheck-tui/internal/ui/styles"
	"github.com/jeranaias/mailcheck-tui/internal/widget"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	cmd, args, err := cli.Parse(argv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		cli.PrintUsage(os.Stderr)
		return cli.ExitCode(err)
	}

	switch cmd {
	case cli.CmdHelp:
		cli.PrintUsage(os.Stdout)
		return cli.ExitSuccess
	case cli.CmdVersion:
		return exit(cli.PrintVersion(os.Stdout, args.JSON))
	}

	cfg, err := config.Load()
	if cfg == nil {
		return exit(err)
	}
	if err != nil && !args.Quiet {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}

	logger, closeLog := newLogger(cfg, args.Verbose)
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	env := &cli.Env{
		Config:  cfg,
		Checker: checkapi.NewClient(cfg.ClientConfig(logger)),
		Out:     os.Stdout,
		Err:     os.Stderr,
		Logger:  logger,
	}

	history := openHistory(cfg, logger)
	if history != nil {
		defer history.Close()
		env.History = history
	}

	switch cmd {
	case cli.CmdCheck:
		return exit(cli.RunCheck(ctx, env, args))
	case cli.CmdPrompt:
		return exit(cli.RunPrompt(ctx, env, args))
	case cli.CmdHistory:
		return exit(cli.RunHistory(ctx, env, args))
	case cli.CmdConfig:
		return exit(cli.RunConfig(env, args))
	}
	return exit(runTUI(cfg, env, history, logger))
}

// exit prints err and maps it to a process exit code.
func exit(err error) int {
	if err == nil {
		return cli.ExitSuccess
	}
	if !errors.Is(err, cli.ErrHighRisk) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return cli.ExitCode(err)
}

// newLogger writes text records to log.file. Each process gets a session
// id so interleaved runs can be told apart.
func newLogger(cfg *config.Config, verbose bool) (*slog.Logger, func()) {
	level := cfg.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}

	var w io.Writer = io.Discard
	closeFn := func() {}
	if path, ok := cfg.LogPath(); ok {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err == nil {
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600); err == nil {
				w = f
				closeFn = func() { f.Close() }
			}
		}
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})).
		With("session", uuid.NewString())
	slog.SetDefault(logger)
	return logger, closeFn
}

// openHistory opens the check history, or returns nil when it is disabled
// or unavailable.
func openHistory(cfg *config.Config, logger *slog.Logger) *storage.HistoryStore {
	if !cfg.History.Enabled {
		return nil
	}
	path, err := cfg.HistoryPath()
	if err != nil {
		logger.Warn("history disabled", "error", err)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		logger.Warn("history disabled", "error", err)
		return nil
	}
	h, err := storage.OpenHistory(path, cfg.History.Limit)
	if err != nil {
		logger.Warn("history disabled", "path", path, "error", err)
		return nil
	}
	return h
}

// runTUI starts the interactive widget.
func runTUI(cfg *config.Config, env *cli.Env, history *storage.HistoryStore, logger *slog.Logger) error {
	metrics := telemetry.New()
	if cfg.Metrics.Addr != "" {
		srv, err := metrics.Listen(cfg.Metrics.Addr, logger)
		if err != nil {
			logger.Warn("metrics listener failed", "addr", cfg.Metrics.Addr, "error", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				srv.Shutdown(ctx)
			}()
		}
	}

	ctrlOpts := widget.Options{
		Checker:   env.Checker,
		Clipboard: clipboard.NewService(clipboard.SystemWriter{}, clipboard.NewOSC52(os.Stdout), logger),
		Metrics:   metrics,
		Logger:    logger,
	}
	appOpts := app.Options{
		Config: cfg,
		Theme:  styles.NewTheme(),
		Stats:  metrics,
		Logger: logger,
	}
	if history != nil {
		ctrlOpts.History = history
		appOpts.Recent = history
	}

	if path, err := config.ActivePath(); err == nil && config.EnsureConfigDir() == nil {
		if w, err := config.NewWatcher(path, config.DefaultDebounce, logger); err != nil {
			logger.Warn("config watch disabled", "path", path, "error", err)
		} else {
			defer w.Close()
			appOpts.ConfigUpdates = w.Updates()
		}
	}

	ctrl := widget.New(ctrlOpts)
	defer ctrl.Shutdown()
	appOpts.Controller = ctrl

	logger.Info("starting", "version", Version, "endpoint", cfg.API.BaseURL)
	p := tea.NewProgram(app.New(appOpts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
