// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package clipboard exports text to the system clipboard with a terminal fallback.
//
// Copy never fails loudly: every error is logged and folded into an Outcome
// whose Message is suitable for a transient notification.
package clipboard

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/atotto/clipboard"
)

// Notification texts for the two copy outcomes.
const (
	MessageCopied = "📋 JSON copied to clipboard!"
	MessageFailed = "❌ Copy failed - please copy manually"
)

// ErrUnavailable is reported when neither copy path is configured.
var ErrUnavailable = errors.New("no clipboard path available")

// =============================================================================
// INTERFACES
// =============================================================================

// Writer is the primary, system-level clipboard.
type Writer interface {
	// Available reports whether the platform provides a clipboard at all.
	Available() bool
	WriteAll(text string) error
}

// Surface is a transient staging area holding the text for a fallback copy.
type Surface interface {
	Copy() error
	Remove() error
}

// Fallback mounts a Surface for text.
type Fallback interface {
	Mount(text string) (Surface, error)
}

// SystemWriter uses github.com/atotto/clipboard.
type SystemWriter struct{}

// Available reports false when no clipboard utility was found.
func (SystemWriter) Available() bool {
	return !clipboard.Unsupported
}

// WriteAll writes text to the system clipboard.
func (SystemWriter) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

var _ Writer = SystemWriter{}

// =============================================================================
// SERVICE
// =============================================================================

// Path identifies which mechanism performed a copy.
type Path int

const (
	PathNone Path = iota
	PathPrimary
	PathFallback
)

func (p Path) String() string {
	switch p {
	case PathPrimary:
		return "primary"
	case PathFallback:
		return "fallback"
	default:
		return "none"
	}
}

// Outcome describes a finished copy attempt.
type Outcome struct {
	OK      bool
	Path    Path
	Message string
	Err     error
}

// Service copies text, falling back when the primary path is missing or fails.
type Service struct {
	primary  Writer
	fallback Fallback
	logger   *slog.Logger
}

// NewService creates a Service. Either path may be nil; a nil logger uses slog.Default().
func NewService(primary Writer, fallback Fallback, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{primary: primary, fallback: fallback, logger: logger}
}

// Copy exports text. It never panics and never returns an error; the
// Outcome carries the notification text for either result.
func (s *Service) Copy(text string) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("clipboard copy panicked", "panic", r)
			out = failed(fmt.Errorf("clipboard panic: %v", r))
		}
	}()

	if s.primary != nil && s.primary.Available() {
		err := s.primary.WriteAll(text)
		if err == nil {
			return Outcome{OK: true, Path: PathPrimary, Message: MessageCopied}
		}
		s.logger.Warn("system clipboard failed, using fallback", "error", err)
	}

	return s.fallbackCopy(text)
}

func (s *Service) fallbackCopy(text string) Outcome {
	if s.fallback == nil {
		return failed(ErrUnavailable)
	}

	surface, err := s.fallback.Mount(text)
	if err != nil {
		s.logger.Warn("fallback copy could not mount", "error", err)
		return failed(err)
	}
	defer func() {
		if err := surface.Remove(); err != nil {
			s.logger.Warn("fallback surface removal failed", "error", err)
		}
	}()

	if err := surface.Copy(); err != nil {
		s.logger.Warn("fallback copy failed", "error", err)
		return failed(err)
	}
	return Outcome{OK: true, Path: PathFallback, Message: MessageCopied}
}

func failed(err error) Outcome {
	return Outcome{OK: false, Path: PathNone, Message: MessageFailed, Err: err}
}
