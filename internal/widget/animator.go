// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// LoadingText prefixes the ellipsis frame.
const LoadingText = "Analyzing email"

var (
	// SpinnerFrames is the 10-frame braille cycle.
	SpinnerFrames = spinner.MiniDot.Frames

	// DotFrames grow the ellipsis; padded so the line width stays fixed.
	DotFrames = []string{"   ", ".  ", ".. ", "..."}
)

// Animator advances the loading indicator while a request is in flight.
// It only ticks between Start and Stop.
type Animator struct {
	timers  *Timers
	counter int
	running bool
}

// NewAnimator schedules its ticks on timers.
func NewAnimator(timers *Timers) *Animator {
	return &Animator{timers: timers}
}

// Start resets the frames and begins ticking. Starting a running animator
// is a no-op.
func (a *Animator) Start() tea.Cmd {
	if a.running {
		return nil
	}
	a.running = true
	a.counter = 0
	return a.timers.Schedule(PurposeAnimation, AnimationInterval)
}

// Stop halts ticking; a tick already in flight is discarded.
func (a *Animator) Stop() {
	a.running = false
	a.timers.Cancel(PurposeAnimation)
}

// Running reports whether the animator is between Start and Stop.
func (a *Animator) Running() bool {
	return a.running
}

func (a *Animator) tick() tea.Cmd {
	if !a.running {
		return nil
	}
	a.counter = (a.counter + 1) % len(SpinnerFrames)
	return a.timers.Schedule(PurposeAnimation, AnimationInterval)
}

// Spinner returns the current spinner glyph.
func (a *Animator) Spinner() string {
	return SpinnerFrames[a.counter%len(SpinnerFrames)]
}

// Dots returns the current ellipsis frame.
func (a *Animator) Dots() string {
	return DotFrames[a.counter%len(DotFrames)]
}

// Text returns the loading line, e.g. "Analyzing email.. ".
func (a *Animator) Text() string {
	return LoadingText + a.Dots()
}
