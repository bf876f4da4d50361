// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across mailcheck.
//
// # Key Functions
//
// Display width (via github.com/mattn/go-runewidth):
//   - StringWidth: terminal columns a string occupies
//   - TruncateWidth: cut to a column budget with an ellipsis
//   - PadRight: pad to a column width
//
// Formatting:
//   - FormatMillis: "123ms" / "1.2s" durations for the status line
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync
package util
