// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/mailcheck-tui/internal/telemetry"
	"github.com/jeranaias/mailcheck-tui/internal/ui/styles"
	"github.com/jeranaias/mailcheck-tui/internal/util"
)

// StatusBar is the bottom line: phase, endpoint, session counters and
// shortcut hints.
type StatusBar struct {
	Phase    string
	Endpoint string
	Session  telemetry.SessionStats
	Width    int

	theme *styles.Theme
}

// NewStatusBar creates a StatusBar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{Width: 80, theme: theme}
}

// View renders the bar at its width.
func (s *StatusBar) View() string {
	sep := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" | ")

	parts := []string{s.Phase}
	if s.Endpoint != "" && s.theme.GetLayoutMode() != styles.LayoutNarrow {
		parts = append(parts, s.Endpoint)
	}
	stats := "checks " + strconv.Itoa(s.Session.Checks)
	if s.Session.Checks > 0 {
		stats += " avg " + util.FormatMillis(s.Session.AverageTime())
	}
	if s.Session.Failures > 0 {
		stats += " failed " + strconv.Itoa(s.Session.Failures)
	}
	parts = append(parts, stats)

	left := strings.Join(parts, sep)
	if s.theme.GetLayoutMode() != styles.LayoutNarrow {
		left += sep + s.renderShortcuts()
	}

	return s.theme.StatusBar.
		Width(s.Width).
		MaxHeight(1).
		Render(left)
}

func (s *StatusBar) renderShortcuts() string {
	shortcuts := []string{
		s.theme.ShortcutKey.Render("?") + s.theme.ShortcutDesc.Render("help"),
		s.theme.ShortcutKey.Render("^C") + s.theme.ShortcutDesc.Render("quit"),
	}
	return strings.Join(shortcuts, " ")
}
