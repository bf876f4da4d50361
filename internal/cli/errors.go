// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"

	"github.com/jeranaias/mailcheck-tui/internal/checkapi"
	"github.com/jeranaias/mailcheck-tui/internal/config"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitHighRisk indicates a check finished with a high-risk verdict
	ExitHighRisk = 3
	// ExitConfigError indicates configuration file or settings error
	ExitConfigError = 4
	// ExitNetworkError indicates the server could not be reached or refused
	ExitNetworkError = 5
)

// CommandError represents a CLI command error with context.
type CommandError struct {
	Command string
	Message string
	Code    int
	Err     error
}

func (e *CommandError) Error() string {
	msg := e.Message
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg += ": " + e.Err.Error()
		}
	}
	if e.Command == "" {
		return msg
	}
	return e.Command + ": " + msg
}

func (e *CommandError) Unwrap() error { return e.Err }

// ErrHighRisk is returned by check when the verdict is high risk.
var ErrHighRisk = &CommandError{Message: "high risk address", Code: ExitHighRisk}

// ExitCode maps an error onto a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var cerr *CommandError
	if errors.As(err, &cerr) && cerr.Code != 0 {
		return cerr.Code
	}
	var verrs config.ValidateErrors
	if errors.As(err, &verrs) {
		return ExitConfigError
	}
	switch checkapi.TypeOf(err) {
	case checkapi.ErrTypeNetwork, checkapi.ErrTypeRejected, checkapi.ErrTypeTimeout, checkapi.ErrTypeInvalidResponse:
		return ExitNetworkError
	}
	return ExitGeneralError
}
