// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package clipboard

import (
	"errors"
	"io"
	"os"
	"sync"

	"github.com/aymanbagabas/go-osc52/v2"
	"golang.org/x/term"
)

// ErrNotTerminal means the fallback output cannot interpret OSC 52.
var ErrNotTerminal = errors.New("output is not a terminal")

// ErrRemoved is returned when a surface is used after removal.
var ErrRemoved = errors.New("surface already removed")

// OSC52 asks the terminal emulator to set its clipboard via an OSC 52
// escape sequence. It works over SSH and inside tmux/screen when those are
// configured to pass the sequence through.
type OSC52 struct {
	out        io.Writer
	isTerminal func() bool
	mode       string // "", "tmux" or "screen"
}

// NewOSC52 writes sequences to f, wrapping them for tmux or screen when the
// environment says we run inside one.
func NewOSC52(f *os.File) *OSC52 {
	mode := ""
	switch {
	case os.Getenv("TMUX") != "":
		mode = "tmux"
	case os.Getenv("STY") != "":
		mode = "screen"
	}
	return &OSC52{
		out:        f,
		isTerminal: func() bool { return f != nil && term.IsTerminal(int(f.Fd())) },
		mode:       mode,
	}
}

// NewOSC52Writer writes to an arbitrary writer; isTerminal decides whether
// the writer is a terminal.
func NewOSC52Writer(w io.Writer, isTerminal func() bool) *OSC52 {
	return &OSC52{out: w, isTerminal: isTerminal}
}

// Mount stages text in a sequence ready to be written.
func (o *OSC52) Mount(text string) (Surface, error) {
	if o.out == nil {
		return nil, ErrNotTerminal
	}
	seq := osc52.New(text)
	switch o.mode {
	case "tmux":
		seq = seq.Tmux()
	case "screen":
		seq = seq.Screen()
	}
	return &osc52Surface{seq: &seq, out: o.out, isTerminal: o.isTerminal}, nil
}

type osc52Surface struct {
	mu         sync.Mutex
	seq        *osc52.Sequence
	out        io.Writer
	isTerminal func() bool
}

func (s *osc52Surface) Copy() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seq == nil {
		return ErrRemoved
	}
	if s.isTerminal != nil && !s.isTerminal() {
		return ErrNotTerminal
	}
	_, err := s.seq.WriteTo(s.out)
	return err
}

// Remove drops the staged copy of the text.
func (s *osc52Surface) Remove() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seq == nil {
		return ErrRemoved
	}
	s.seq = nil
	return nil
}
