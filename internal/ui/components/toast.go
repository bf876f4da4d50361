// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/mailcheck-tui/internal/clipboard"
	"github.com/jeranaias/mailcheck-tui/internal/ui/styles"
	"github.com/jeranaias/mailcheck-tui/internal/util"
)

// ToastKind represents the type of toast notification.
type ToastKind int

const (
	// ToastKindStatus is an informational toast
	ToastKindStatus ToastKind = iota
	// ToastKindSuccess is a success toast (emerald)
	ToastKindSuccess
	// ToastKindFailure is a failure toast (rose)
	ToastKindFailure
)

// ToastKindFor classifies a notification text.
func ToastKindFor(message string) ToastKind {
	switch {
	case message == clipboard.MessageCopied:
		return ToastKindSuccess
	case message == clipboard.MessageFailed,
		strings.HasPrefix(message, "❌"):
		return ToastKindFailure
	default:
		return ToastKindStatus
	}
}

// RenderToast renders the notification box. Empty messages render nothing.
func RenderToast(theme *styles.Theme, message string, width int) string {
	if message == "" {
		return ""
	}

	maxWidth := 60
	if width > 0 && width-4 < maxWidth {
		maxWidth = width - 4
	}
	if maxWidth < 20 {
		maxWidth = 20
	}

	var style lipgloss.Style
	switch ToastKindFor(message) {
	case ToastKindSuccess:
		style = theme.ToastSuccess
	case ToastKindFailure:
		style = theme.ToastFailure
	default:
		style = theme.Toast.BorderForeground(styles.Cyan)
	}

	// Border and padding take four columns.
	return style.Render(util.TruncateWidth(message, maxWidth-4))
}

// OverlayBottomRight draws box over screen, right aligned, leaving the
// last keep lines of screen uncovered. Screens too short for the box get it
// appended instead.
func OverlayBottomRight(screen, box string, width, keep int) string {
	if box == "" {
		return screen
	}
	lines := strings.Split(screen, "\n")
	boxLines := strings.Split(box, "\n")
	pad := width - lipgloss.Width(box)
	if pad < 0 {
		pad = 0
	}

	start := len(lines) - keep - len(boxLines)
	if start < 0 {
		return screen + "\n" + box
	}
	for i, bl := range boxLines {
		lines[start+i] = strings.Repeat(" ", pad) + bl
	}
	return strings.Join(lines, "\n")
}
