// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

import tea "github.com/charmbracelet/bubbletea"

// Notifier shows one transient message at a time in State.Notification.
type Notifier struct {
	state  *State
	timers *Timers
}

// NewNotifier writes to state and schedules expiry on timers.
func NewNotifier(state *State, timers *Timers) *Notifier {
	return &Notifier{state: state, timers: timers}
}

// Show replaces the current message and restarts the expiry countdown.
// The previous message's countdown is abandoned.
func (n *Notifier) Show(message string) tea.Cmd {
	n.state.Notification = message
	return n.timers.Schedule(PurposeNotification, NotificationTTL)
}

// Dismiss clears the message immediately.
func (n *Notifier) Dismiss() {
	n.timers.Cancel(PurposeNotification)
	n.state.Notification = ""
}

func (n *Notifier) expire() {
	n.state.Notification = ""
}
