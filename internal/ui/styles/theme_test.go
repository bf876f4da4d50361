// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme() returned nil")
	}

	styles := []struct {
		name  string
		style lipgloss.Style
	}{
		{"Title", theme.Title},
		{"InputBox", theme.InputBox},
		{"ResultBox", theme.ResultBox},
		{"ErrorBox", theme.ErrorBox},
		{"Toast", theme.Toast},
		{"StatusBar", theme.StatusBar},
	}
	for _, s := range styles {
		if s.style.Render("test") == "" {
			t.Errorf("%s style should be initialized", s.name)
		}
	}
}

func TestContentWidth(t *testing.T) {
	theme := NewTheme()

	tests := []struct {
		width int
		want  int
	}{
		{0, 20},
		{40, 36},
		{200, 80},
	}
	for _, tt := range tests {
		theme.SetSize(tt.width, 24)
		if got := theme.ContentWidth(); got != tt.want {
			t.Errorf("ContentWidth() at %d = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestGetLayoutMode(t *testing.T) {
	theme := NewTheme()

	theme.SetSize(59, 24)
	if theme.GetLayoutMode() != LayoutNarrow {
		t.Error("59 columns should be narrow")
	}
	theme.SetSize(60, 24)
	if theme.GetLayoutMode() != LayoutWide {
		t.Error("60 columns should be wide")
	}
}
