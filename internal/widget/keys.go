// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the controller's own shortcuts.
type KeyMap struct {
	Clear key.Binding
	Focus key.Binding
}

// DefaultKeyMap binds Escape to clear and Ctrl+K to focus the input.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
		Focus: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("ctrl+k", "focus input"),
		),
	}
}
