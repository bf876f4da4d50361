// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

import "github.com/jeranaias/mailcheck-tui/internal/checkapi"

// CheckDoneMsg carries the completion of the request tagged Seq.
type CheckDoneMsg struct {
	Seq    uint64
	Email  string
	Result *checkapi.CheckResult
	Err    error
}

// ScrollResultMsg asks the view to bring the result panel into view.
// Views without a result panel may ignore it.
type ScrollResultMsg struct{}

// FocusInputMsg asks the view to focus the email input and select its text.
type FocusInputMsg struct{}
