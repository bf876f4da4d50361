// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/mailcheck-tui/internal/ui/styles"
)

// RenderError renders a failed check. Empty messages render nothing.
func RenderError(theme *styles.Theme, message string, width int) string {
	if message == "" {
		return ""
	}
	inner := width - 4
	if inner < 10 {
		inner = 10
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		theme.ErrorTitle.Render("❌ Check failed"),
		theme.ErrorMessage.Width(inner).Render(message),
	)
	return theme.ErrorBox.Width(inner).Render(content)
}
