// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Purpose keys a scheduled task. At most one task per purpose is live.
type Purpose int

const (
	PurposeScroll Purpose = iota
	PurposeDelayedSubmit
	PurposeNotification
	PurposeAnimation
)

func (p Purpose) String() string {
	switch p {
	case PurposeScroll:
		return "scroll"
	case PurposeDelayedSubmit:
		return "delayed_submit"
	case PurposeNotification:
		return "notification"
	case PurposeAnimation:
		return "animation"
	default:
		return "unknown"
	}
}

// Fixed delays.
const (
	ScrollDelay       = 100 * time.Millisecond
	SubmitDelay       = 100 * time.Millisecond
	NotificationTTL   = 3000 * time.Millisecond
	AnimationInterval = 100 * time.Millisecond
)

// FiredMsg is delivered when a scheduled task's delay elapses.
type FiredMsg struct {
	Purpose Purpose
	Gen     int
}

// Timers schedules purpose-keyed one-shot tasks. Rescheduling or cancelling
// a purpose bumps its generation, so a firing from an older schedule is
// rejected by Accept. Not safe for concurrent use; call from Update only.
type Timers struct {
	gen     map[Purpose]int
	pending map[Purpose]bool

	// tick is tea.Tick; tests swap it for an immediate variant.
	tick func(time.Duration, func(time.Time) tea.Msg) tea.Cmd
}

// NewTimers creates an empty scheduler.
func NewTimers() *Timers {
	return &Timers{
		gen:     make(map[Purpose]int),
		pending: make(map[Purpose]bool),
		tick:    tea.Tick,
	}
}

// Schedule supersedes any pending task for p and returns the command that
// fires after d.
func (t *Timers) Schedule(p Purpose, d time.Duration) tea.Cmd {
	t.gen[p]++
	t.pending[p] = true
	gen := t.gen[p]
	return t.tick(d, func(time.Time) tea.Msg {
		return FiredMsg{Purpose: p, Gen: gen}
	})
}

// Cancel abandons the pending task for p, if any.
func (t *Timers) Cancel(p Purpose) {
	if !t.pending[p] {
		return
	}
	t.gen[p]++
	t.pending[p] = false
}

// Pending reports whether a task for p is scheduled and not yet accepted.
func (t *Timers) Pending(p Purpose) bool {
	return t.pending[p]
}

// Accept reports whether msg is the live firing for its purpose and marks
// that task done. Superseded or cancelled firings return false.
func (t *Timers) Accept(msg FiredMsg) bool {
	if !t.pending[msg.Purpose] || t.gen[msg.Purpose] != msg.Gen {
		return false
	}
	t.pending[msg.Purpose] = false
	return true
}
