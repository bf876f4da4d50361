// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/mailcheck-tui/internal/checkapi"
)

func openTestHistory(t *testing.T, retain int) *HistoryStore {
	t.Helper()
	s, err := OpenHistory(filepath.Join(t.TempDir(), "sub", "history.db"), retain)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	clock := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return s
}

func TestHistory_RecordAndRecent(t *testing.T) {
	ctx := context.Background()
	s := openTestHistory(t, 0)

	require.NoError(t, s.Record(ctx, "a@example.com", checkapi.RiskLow, 120*time.Millisecond))
	require.NoError(t, s.Record(ctx, "b@example.com", checkapi.RiskHigh, 300*time.Millisecond))
	require.NoError(t, s.Record(ctx, "a@example.com", checkapi.RiskMedium, 90*time.Millisecond))

	entries, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2, "addresses are distinct")

	assert.Equal(t, "a@example.com", entries[0].Email)
	assert.Equal(t, checkapi.RiskMedium, entries[0].RiskLevel, "latest result wins")
	assert.Equal(t, 90*time.Millisecond, entries[0].Elapsed)
	assert.Equal(t, "b@example.com", entries[1].Email)
	assert.True(t, entries[0].CheckedAt.After(entries[1].CheckedAt))

	emails, err := s.RecentEmails(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a@example.com"}, emails)
}

func TestHistory_SkipsBlank(t *testing.T) {
	ctx := context.Background()
	s := openTestHistory(t, 0)

	require.NoError(t, s.Record(ctx, "  ", checkapi.RiskLow, 0))
	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestHistory_PrunesToRetain(t *testing.T) {
	ctx := context.Background()
	s := openTestHistory(t, 3)

	for _, e := range []string{"1@x.io", "2@x.io", "3@x.io", "4@x.io", "5@x.io"} {
		require.NoError(t, s.Record(ctx, e, checkapi.RiskLow, time.Millisecond))
	}

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	emails, err := s.RecentEmails(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"5@x.io", "4@x.io", "3@x.io"}, emails)
}

func TestHistory_ClearAndClose(t *testing.T) {
	ctx := context.Background()
	s := openTestHistory(t, 0)

	require.NoError(t, s.Record(ctx, "a@example.com", checkapi.RiskLow, 0))
	require.NoError(t, s.Clear(ctx))
	entries, err := s.Recent(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, s.Close())
	assert.ErrorIs(t, s.Record(ctx, "a@example.com", checkapi.RiskLow, 0), ErrHistoryClosed)
	assert.NoError(t, s.Close(), "close is idempotent")
}

func TestHistory_PersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	s, err := OpenHistory(path, 0)
	require.NoError(t, err)
	require.NoError(t, s.Record(ctx, "keep@example.com", checkapi.RiskLow, 0))
	require.NoError(t, s.Close())

	s, err = OpenHistory(path, 0)
	require.NoError(t, err)
	defer s.Close()
	emails, err := s.RecentEmails(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"keep@example.com"}, emails)
}

func TestFormatHistory(t *testing.T) {
	assert.Equal(t, "No checks recorded.", FormatHistory(nil))

	out := FormatHistory([]HistoryEntry{{
		Email:     "a@example.com",
		RiskLevel: checkapi.RiskHigh,
		Elapsed:   42 * time.Millisecond,
		CheckedAt: time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC),
	}})
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[2], "2025-03-01 09:30")
	assert.Contains(t, lines[2], "high")
	assert.Contains(t, lines[2], "42ms")
	assert.Contains(t, lines[2], "a@example.com")
}
