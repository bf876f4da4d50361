// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styled components of the checker view.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	IsDark       bool
	ColorProfile termenv.Profile

	Width  int
	Height int

	Title    lipgloss.Style
	Subtitle lipgloss.Style

	InputBox        lipgloss.Style
	InputBoxFocused lipgloss.Style
	InputHint       lipgloss.Style

	Suggestion         lipgloss.Style
	SuggestionSelected lipgloss.Style
	SuggestionSource   lipgloss.Style

	Spinner     lipgloss.Style
	LoadingText lipgloss.Style

	ResultBox    lipgloss.Style
	RiskBadge    lipgloss.Style
	Label        lipgloss.Style
	Value        lipgloss.Style
	Reason       lipgloss.Style
	ResponseTime lipgloss.Style
	JSONBox      lipgloss.Style

	ErrorBox     lipgloss.Style
	ErrorTitle   lipgloss.Style
	ErrorMessage lipgloss.Style

	Toast        lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastFailure lipgloss.Style

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
}

// NewTheme creates a Theme for the current terminal.
func NewTheme() *Theme {
	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		ColorProfile: termenv.ColorProfile(),
	}
	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	t.Title = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)
	t.Subtitle = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.InputBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.InputBoxFocused = t.InputBox.
		BorderForeground(Cyan)
	t.InputHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true).
		PaddingLeft(2)

	t.Suggestion = lipgloss.NewStyle().
		Foreground(TextSecondary).
		PaddingLeft(2)
	t.SuggestionSelected = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true).
		PaddingLeft(2)
	t.SuggestionSource = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)
	t.LoadingText = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// ResultBox's border color is set per risk level at render time.
	t.ResultBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	t.RiskBadge = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Padding(0, 1)
	t.Label = lipgloss.NewStyle().
		Foreground(TextMuted)
	t.Value = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)
	t.Reason = lipgloss.NewStyle().
		Foreground(TextSecondary).
		PaddingLeft(2)
	t.ResponseTime = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)
	t.JSONBox = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), true, false, false, false).
		BorderForeground(Overlay).
		PaddingTop(1)

	t.ErrorBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Rose).
		Padding(0, 1)
	t.ErrorTitle = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)
	t.ErrorMessage = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.Toast = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	t.ToastSuccess = t.Toast.
		BorderForeground(Emerald).
		Foreground(Emerald)
	t.ToastFailure = t.Toast.
		BorderForeground(Rose).
		Foreground(Rose)

	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)
	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)
	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// ContentWidth is the width available inside bordered boxes.
func (t *Theme) ContentWidth() int {
	w := t.Width - 4
	if w > 80 {
		w = 80
	}
	if w < 20 {
		w = 20
	}
	return w
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns, shortcut hints hidden
	LayoutWide
)
