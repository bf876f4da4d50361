// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/jeranaias/mailcheck-tui/internal/config"
	"github.com/jeranaias/mailcheck-tui/internal/emailaddr"
	"github.com/jeranaias/mailcheck-tui/internal/storage"
	"github.com/jeranaias/mailcheck-tui/internal/ui/styles"
)

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	errorStyle = lipgloss.NewStyle().
			Foreground(styles.Rose)
)

// promptHistoryFile holds line-editing history inside the config directory.
const promptHistoryFile = "prompt_history"

// =============================================================================
// LINE EDITOR
// =============================================================================

// LineEditor provides input history and tab completion for the prompt.
type LineEditor struct {
	line        *liner.State
	historyFile string
}

// NewLineEditor creates a LineEditor completing from candidates.
func NewLineEditor(candidates []string) *LineEditor {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetCompleter(completer(candidates))

	dir, err := config.ConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	e := &LineEditor{line: line, historyFile: filepath.Join(dir, promptHistoryFile)}
	if f, err := os.Open(e.historyFile); err == nil {
		e.line.ReadHistory(f)
		f.Close()
	}
	return e
}

// completer offers candidates starting with the typed prefix.
func completer(candidates []string) liner.Completer {
	return func(line string) []string {
		prefix := strings.ToLower(line)
		var out []string
		for _, c := range candidates {
			if strings.HasPrefix(strings.ToLower(c), prefix) {
				out = append(out, c)
			}
		}
		return out
	}
}

// ReadLine reads one line, adding non-blank input to history.
func (e *LineEditor) ReadLine(prompt string) (string, error) {
	input, err := e.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		e.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves history (owner read/write only) and restores the terminal.
func (e *LineEditor) Close() {
	if err := config.EnsureConfigDir(); err == nil {
		if f, err := os.OpenFile(e.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			e.line.WriteHistory(f)
			f.Close()
		}
	}
	e.line.Close()
}

// =============================================================================
// PROMPT COMMAND
// =============================================================================

// RunPrompt reads addresses line by line and prints a one-line verdict for
// each. "history" lists recent checks; "quit", "exit" or Ctrl+D leave.
func RunPrompt(ctx context.Context, env *Env, args Args) error {
	candidates := append([]string(nil), env.Config.UI.Suggestions...)
	if env.History != nil {
		if recent, err := env.History.RecentEmails(ctx, 50); err == nil {
			candidates = append(candidates, recent...)
		}
	}

	editor := NewLineEditor(candidates)
	defer editor.Close()

	if !args.Quiet {
		fmt.Fprintln(env.Out, infoStyle.Render("Type an address and press Enter. Tab completes, Ctrl+D quits."))
	}

	for {
		input, err := editor.ReadLine(promptStyle.Render("mailcheck> "))
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(env.Out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("prompt: %w", err)
		}
		if done := processLine(ctx, env, input); done {
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// processLine handles one prompt line. done is true when the user asked to leave.
func processLine(ctx context.Context, env *Env, input string) (done bool) {
	input = strings.TrimSpace(input)
	switch strings.ToLower(input) {
	case "":
		return false
	case "quit", "exit", ":q":
		return true
	case "history":
		if env.History == nil {
			fmt.Fprintln(env.Out, errorStyle.Render("history is disabled"))
			return false
		}
		entries, err := env.History.Recent(ctx, DefaultHistoryLimit)
		if err != nil {
			fmt.Fprintln(env.Out, errorStyle.Render("Error: "+err.Error()))
			return false
		}
		fmt.Fprint(env.Out, storage.FormatHistory(entries))
		if len(entries) == 0 {
			fmt.Fprintln(env.Out)
		}
		return false
	case "help", "?":
		fmt.Fprintln(env.Out, infoStyle.Render("Enter an email address to check it. Commands: history, quit."))
		return false
	}

	email := emailaddr.Normalize(input)
	if hint := emailaddr.Hint(email); hint != "" && !emailaddr.Parse(email).Valid {
		fmt.Fprintln(env.Out, errorStyle.Render(hint))
		return false
	}

	result, elapsed, err := checkOnce(ctx, env, email)
	if err != nil {
		fmt.Fprintln(env.Out, errorStyle.Render("❌ "+email+": "+err.Error()))
		return false
	}
	fmt.Fprintln(env.Out, SummaryLine(email, result, elapsed))
	return false
}
