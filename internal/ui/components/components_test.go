// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/mailcheck-tui/internal/checkapi"
	"github.com/jeranaias/mailcheck-tui/internal/clipboard"
	"github.com/jeranaias/mailcheck-tui/internal/telemetry"
	"github.com/jeranaias/mailcheck-tui/internal/ui/styles"
)

func result(t *testing.T, body string) *checkapi.CheckResult {
	t.Helper()
	var r checkapi.CheckResult
	require.NoError(t, json.Unmarshal([]byte(body), &r))
	return &r
}

const sampleBody = `{
	"email": "test@example.com",
	"risk_level": "high",
	"analysis": {"score": 0.85, "reasons": ["disposable domain", "no MX"]},
	"disposable": {"checked": true, "value": true}
}`

func TestRenderResult(t *testing.T) {
	theme := styles.NewTheme()
	out := RenderResult(theme, ResultView{
		Result:       result(t, sampleBody),
		ResponseTime: 250 * time.Millisecond,
		HasTiming:    true,
	}, 80)

	for _, want := range []string{"HIGH RISK", "test@example.com", "0.85", "disposable domain", "no MX", "Disposable: ❌", "250ms"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, `"risk_level"`)
}

func TestRenderResult_JSON(t *testing.T) {
	theme := styles.NewTheme()
	out := RenderResult(theme, ResultView{Result: result(t, sampleBody), ShowJSON: true}, 80)
	assert.Contains(t, out, "risk_level")
	assert.NotContains(t, out, "Response time")
}

func TestRenderResult_Nil(t *testing.T) {
	assert.Empty(t, RenderResult(styles.NewTheme(), ResultView{}, 80))
}

func TestRenderError(t *testing.T) {
	theme := styles.NewTheme()
	assert.Empty(t, RenderError(theme, "", 80))
	assert.Contains(t, RenderError(theme, "rate limited", 80), "rate limited")
}

func TestRenderLoading(t *testing.T) {
	out := RenderLoading(styles.NewTheme(), "⠋", "Analyzing email", "..")
	assert.Contains(t, out, "⠋")
	assert.Contains(t, out, "Analyzing email..")
}

func TestToastKindFor(t *testing.T) {
	assert.Equal(t, ToastKindSuccess, ToastKindFor(clipboard.MessageCopied))
	assert.Equal(t, ToastKindFailure, ToastKindFor(clipboard.MessageFailed))
	assert.Equal(t, ToastKindStatus, ToastKindFor("config reloaded"))
}

func TestRenderToast(t *testing.T) {
	theme := styles.NewTheme()
	assert.Empty(t, RenderToast(theme, "", 80))

	out := RenderToast(theme, clipboard.MessageCopied, 80)
	assert.Contains(t, out, "JSON copied to clipboard!")

}

func TestOverlayBottomRight(t *testing.T) {
	screen := strings.Repeat("row\n", 9) + "status"
	out := OverlayBottomRight(screen, "[toast]", 20, 1)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 10)
	assert.Equal(t, strings.Repeat(" ", 13)+"[toast]", lines[8])
	assert.Equal(t, "status", lines[9])

	assert.Equal(t, screen, OverlayBottomRight(screen, "", 20, 1))
	assert.Equal(t, "a\n[toast]", OverlayBottomRight("a", "[toast]", 20, 1))
}

func TestMergeSuggestions(t *testing.T) {
	got := MergeSuggestions(
		[]string{"test@example.com", "p303200@uoa.gr", " "},
		[]string{"TEST@example.com", "me@recent.io"},
	)
	assert.Equal(t, []Suggestion{
		{Email: "test@example.com", Source: SourceSample},
		{Email: "p303200@uoa.gr", Source: SourceSample},
		{Email: "me@recent.io", Source: SourceRecent},
	}, got)
}

func TestSuggestionList_Navigation(t *testing.T) {
	l := NewSuggestionList(MergeSuggestions([]string{"a@x.io", "b@x.io", "c@x.io"}, nil))

	l.MoveUp()
	s, ok := l.Selected()
	require.True(t, ok)
	assert.Equal(t, "c@x.io", s.Email)

	l.MoveDown()
	s, _ = l.Selected()
	assert.Equal(t, "a@x.io", s.Email)

	l.MoveDown()
	l.MoveDown()
	l.SetItems(l.Items()[:1])
	assert.Equal(t, 0, l.Cursor())

	l.SetItems(nil)
	_, ok = l.Selected()
	assert.False(t, ok)
	l.MoveDown()
	assert.Equal(t, 0, l.Cursor())
}

func TestSuggestionList_View(t *testing.T) {
	theme := styles.NewTheme()
	l := NewSuggestionList(MergeSuggestions([]string{"a@x.io"}, []string{"b@x.io"}))
	out := l.View(theme, 80)
	assert.Contains(t, out, "› a@x.io")
	assert.Contains(t, out, "(recent)")

	assert.Contains(t, NewSuggestionList(nil).View(theme, 80), "no suggestions")
}

func TestStatusBar_View(t *testing.T) {
	theme := styles.NewTheme()
	theme.SetSize(120, 40)

	bar := NewStatusBar(theme)
	bar.Width = 120
	bar.Phase = "success"
	bar.Endpoint = "http://127.0.0.1:8080"
	bar.Session = telemetry.SessionStats{Checks: 2, Failures: 1, TotalTime: 600 * time.Millisecond}

	out := bar.View()
	assert.Contains(t, out, "success")
	assert.Contains(t, out, "127.0.0.1:8080")
	assert.Contains(t, out, "checks 2 avg 300ms failed 1")
	assert.Equal(t, 1, lipgloss.Height(out))

	theme.SetSize(40, 20)
	bar.Width = 40
	assert.NotContains(t, bar.View(), "127.0.0.1")
}
