// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/jeranaias/mailcheck-tui/internal/checkapi"
	"github.com/jeranaias/mailcheck-tui/internal/util"
)

// historySchema holds one row per completed check.
const historySchema = `
CREATE TABLE IF NOT EXISTS checks (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	email      TEXT    NOT NULL,
	risk_level TEXT    NOT NULL,
	elapsed_ms INTEGER NOT NULL,
	checked_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_checks_checked_at ON checks(checked_at);
CREATE INDEX IF NOT EXISTS idx_checks_email ON checks(email);
`

// DefaultRetain is how many rows are kept when no limit is given.
const DefaultRetain = 500

// ErrHistoryClosed is returned after Close.
var ErrHistoryClosed = errors.New("history store closed")

// HistoryEntry is one remembered check.
type HistoryEntry struct {
	Email     string
	RiskLevel checkapi.RiskLevel
	Elapsed   time.Duration
	CheckedAt time.Time
}

// HistoryStore persists completed checks in SQLite.
//
// The store is safe for concurrent use.
type HistoryStore struct {
	db     *sql.DB
	retain int
	now    func() time.Time
}

// OpenHistory opens (creating if needed) the database at path, keeping at
// most retain rows.
func OpenHistory(path string, retain int) (*HistoryStore, error) {
	if retain <= 0 {
		retain = DefaultRetain
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=2000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return &HistoryStore{db: db, retain: retain, now: time.Now}, nil
}

// Record stores a completed check and prunes rows beyond the retain limit.
func (s *HistoryStore) Record(ctx context.Context, email string, level checkapi.RiskLevel, elapsed time.Duration) error {
	if s == nil || s.db == nil {
		return ErrHistoryClosed
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO checks (email, risk_level, elapsed_ms, checked_at) VALUES (?, ?, ?, ?)`,
		email, string(level), elapsed.Milliseconds(), s.now().UnixNano(),
	); err != nil {
		return fmt.Errorf("failed to record check: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM checks WHERE id NOT IN (SELECT id FROM checks ORDER BY checked_at DESC, id DESC LIMIT ?)`,
		s.retain,
	); err != nil {
		return fmt.Errorf("failed to prune history: %w", err)
	}

	return tx.Commit()
}

// Recent returns up to n distinct addresses, newest first, each with its
// latest result.
func (s *HistoryStore) Recent(ctx context.Context, n int) ([]HistoryEntry, error) {
	if s == nil || s.db == nil {
		return nil, ErrHistoryClosed
	}
	if n <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT c.email, c.risk_level, c.elapsed_ms, c.checked_at
		FROM checks c
		JOIN (SELECT email, MAX(id) AS id FROM checks GROUP BY email) latest ON latest.id = c.id
		ORDER BY c.checked_at DESC, c.id DESC
		LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var (
			e         HistoryEntry
			level     string
			elapsedMs int64
			checkedAt int64
		)
		if err := rows.Scan(&e.Email, &level, &elapsedMs, &checkedAt); err != nil {
			return nil, err
		}
		e.RiskLevel = checkapi.ParseRiskLevel(level)
		e.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		e.CheckedAt = time.Unix(0, checkedAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// RecentEmails returns just the addresses from Recent.
func (s *HistoryStore) RecentEmails(ctx context.Context, n int) ([]string, error) {
	entries, err := s.Recent(ctx, n)
	if err != nil {
		return nil, err
	}
	emails := make([]string, len(entries))
	for i, e := range entries {
		emails[i] = e.Email
	}
	return emails, nil
}

// Count returns the number of stored rows.
func (s *HistoryStore) Count(ctx context.Context) (int, error) {
	if s == nil || s.db == nil {
		return 0, ErrHistoryClosed
	}
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM checks`).Scan(&n)
	return n, err
}

// Clear deletes every row.
func (s *HistoryStore) Clear(ctx context.Context) error {
	if s == nil || s.db == nil {
		return ErrHistoryClosed
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM checks`)
	return err
}

// Close releases the database.
func (s *HistoryStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// =============================================================================
// HISTORY FORMATTING
// =============================================================================

// FormatHistory renders entries as a fixed-width table.
func FormatHistory(entries []HistoryEntry) string {
	if len(entries) == 0 {
		return "No checks recorded."
	}

	var sb strings.Builder
	sb.WriteString(util.PadRight("Checked", 17) + " " + util.PadRight("Risk", 8) + " " + util.PadRight("Time", 8) + " Email\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	for _, e := range entries {
		sb.WriteString(util.PadRight(e.CheckedAt.Format("2006-01-02 15:04"), 17) + " " +
			util.PadRight(string(e.RiskLevel), 8) + " " +
			util.PadRight(util.FormatMillis(e.Elapsed), 8) + " " +
			util.TruncateWidth(e.Email, 40) + "\n")
	}
	return sb.String()
}
