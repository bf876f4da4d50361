// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package widget holds the request lifecycle of the email checker: the
// mutable widget state, the controller that drives it, and the timers,
// notifier and loading animator it sequences.
//
// Everything here is meant to be driven from a single Bubble Tea Update
// loop. Blocking work (the HTTP check, timer delays) happens inside the
// returned tea.Cmd values and comes back as messages.
package widget

import (
	"time"

	"github.com/jeranaias/mailcheck-tui/internal/checkapi"
)

// Phase is the lifecycle position of the widget.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseError:
		return "error"
	default:
		return "idle"
	}
}

// State is the single mutable widget instance. Only the Controller writes
// it; views read it.
type State struct {
	Email string

	Result *checkapi.CheckResult
	Error  string

	Loading bool

	// ResponseTime is meaningful only while Result is set.
	ResponseTime time.Duration

	ShowSuggestions bool
	ShowJSON        bool

	// Notification is the one live transient message; "" means none.
	Notification string
}

// Phase derives the lifecycle phase from loading/result/error.
func (s *State) Phase() Phase {
	switch {
	case s.Loading:
		return PhaseLoading
	case s.Result != nil:
		return PhaseSuccess
	case s.Error != "":
		return PhaseError
	default:
		return PhaseIdle
	}
}

// ResponseTimeMs returns the last request duration in milliseconds. ok is
// false unless the widget is showing a result.
func (s *State) ResponseTimeMs() (ms int64, ok bool) {
	if s.Result == nil || s.Loading {
		return 0, false
	}
	return s.ResponseTime.Milliseconds(), true
}

// resetOutcome clears everything a new request or an explicit clear discards.
func (s *State) resetOutcome() {
	s.Result = nil
	s.Error = ""
	s.ShowJSON = false
	s.ResponseTime = 0
	s.ShowSuggestions = false
}
