// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package present turns check verdicts into text for display and export.
//
// JSON output is produced by walking the decoded verdict and emitting typed
// tokens (keys, strings, numbers, booleans, null, punctuation, whitespace).
// The same token stream backs the plain indented text, the HTML markup with
// class-tagged spans, and the terminal rendering, so the three never disagree
// about what is a key and what is a value.
//
// The risk helpers (RiskEmoji, RiskClass, RiskBorderClass, RiskColor) are
// total: every input, including unknown levels and the empty string, maps to
// a defined fallback.
package present
