// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists recently checked addresses for mailcheck.
//
// History lives in a SQLite database (pure-Go modernc.org/sqlite driver)
// at ~/.mailcheck/history.db by default. The TUI reads it to extend the
// suggestion list; `mailcheck history` prints it.
//
// # Usage
//
//	store, err := storage.OpenHistory(path, 500)
//	err = store.Record(ctx, "a@example.com", checkapi.RiskLow, elapsed)
//	recent, err := store.RecentEmails(ctx, 10)
package storage
