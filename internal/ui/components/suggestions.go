// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/mailcheck-tui/internal/ui/styles"
	"github.com/jeranaias/mailcheck-tui/internal/util"
)

// Where a suggestion came from.
const (
	SourceSample = "sample"
	SourceRecent = "recent"
)

// Suggestion is one selectable address.
type Suggestion struct {
	Email  string
	Source string
}

// MergeSuggestions lists the configured samples followed by recent checks,
// dropping case-insensitive duplicates. Samples win.
func MergeSuggestions(samples, recent []string) []Suggestion {
	seen := make(map[string]bool, len(samples)+len(recent))
	out := make([]Suggestion, 0, len(samples)+len(recent))
	add := func(email, source string) {
		email = strings.TrimSpace(email)
		k := strings.ToLower(email)
		if email == "" || seen[k] {
			return
		}
		seen[k] = true
		out = append(out, Suggestion{Email: email, Source: source})
	}
	for _, s := range samples {
		add(s, SourceSample)
	}
	for _, r := range recent {
		add(r, SourceRecent)
	}
	return out
}

// SuggestionList is a cursor over suggestions.
type SuggestionList struct {
	items  []Suggestion
	cursor int
}

// NewSuggestionList creates a list with the cursor on the first item.
func NewSuggestionList(items []Suggestion) SuggestionList {
	return SuggestionList{items: items}
}

// SetItems replaces the items, keeping the cursor in range.
func (l *SuggestionList) SetItems(items []Suggestion) {
	l.items = items
	if l.cursor >= len(items) {
		l.cursor = max(len(items)-1, 0)
	}
}

// Items returns the items.
func (l SuggestionList) Items() []Suggestion { return l.items }

// Len returns the number of items.
func (l SuggestionList) Len() int { return len(l.items) }

// Cursor returns the selected index.
func (l SuggestionList) Cursor() int { return l.cursor }

// MoveUp moves the cursor up, wrapping to the bottom.
func (l *SuggestionList) MoveUp() {
	if len(l.items) == 0 {
		return
	}
	l.cursor = (l.cursor - 1 + len(l.items)) % len(l.items)
}

// MoveDown moves the cursor down, wrapping to the top.
func (l *SuggestionList) MoveDown() {
	if len(l.items) == 0 {
		return
	}
	l.cursor = (l.cursor + 1) % len(l.items)
}

// Selected returns the item under the cursor.
func (l SuggestionList) Selected() (Suggestion, bool) {
	if len(l.items) == 0 {
		return Suggestion{}, false
	}
	return l.items[l.cursor], true
}

// View renders the list.
func (l SuggestionList) View(theme *styles.Theme, width int) string {
	if len(l.items) == 0 {
		return theme.Suggestion.Render("no suggestions")
	}
	rows := make([]string, 0, len(l.items)+1)
	rows = append(rows, theme.Label.Render("Try one of these:"))
	for i, s := range l.items {
		text := util.TruncateWidth(s.Email, width-14) + " " + theme.SuggestionSource.Render("("+s.Source+")")
		if i == l.cursor {
			rows = append(rows, theme.SuggestionSelected.Render("› "+text))
		} else {
			rows = append(rows, theme.Suggestion.Render("  "+text))
		}
	}
	return strings.Join(rows, "\n")
}
