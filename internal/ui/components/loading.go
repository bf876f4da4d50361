// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import "github.com/jeranaias/mailcheck-tui/internal/ui/styles"

// RenderLoading renders the loading line: spinner frame, label and the
// animated dots. dots is padded so the line width stays constant.
func RenderLoading(theme *styles.Theme, frame, label, dots string) string {
	return theme.Spinner.Render(frame) + " " + theme.LoadingText.Render(label+dots)
}
