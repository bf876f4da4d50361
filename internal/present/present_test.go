// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package present

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/mailcheck-tui/internal/checkapi"
)

func mustResult(t *testing.T, body string) *checkapi.CheckResult {
	t.Helper()
	var r checkapi.CheckResult
	require.NoError(t, json.Unmarshal([]byte(body), &r))
	return &r
}

// =============================================================================
// FORMAT / TOKENS / MARKUP
// =============================================================================

func TestFormat_Nil(t *testing.T) {
	assert.Equal(t, "", Format(nil))
	assert.Nil(t, Tokens(nil))
	assert.Equal(t, "", Markup(nil))
	assert.Equal(t, "", Highlight(nil, DefaultStyle))
}

func TestFormat_TwoSpaceIndent(t *testing.T) {
	r := mustResult(t, `{"risk_level":"low","disposable":{"checked":true,"value":false}}`)
	want := "{\n" +
		"  \"disposable\": {\n" +
		"    \"checked\": true,\n" +
		"    \"value\": false\n" +
		"  },\n" +
		"  \"risk_level\": \"low\"\n" +
		"}"
	assert.Equal(t, want, Format(r))
}

func TestTokens_ConcatenateToFormat(t *testing.T) {
	bodies := []string{
		`{}`,
		`{"a":[]}`,
		`{"a":{},"b":null}`,
		`{"email":"x<y>@example.com","n":1.5,"big":12345678901234567890,"list":[1,"two",false,null,{"k":"v"}]}`,
		`{"quote":"she said \"hi\": ok","colon":"a: b"}`,
	}
	for _, body := range bodies {
		r := mustResult(t, body)
		var sb strings.Builder
		for _, tok := range Tokens(r) {
			sb.WriteString(tok.Text)
		}
		assert.Equal(t, Format(r), sb.String(), body)
	}
}

func TestTokens_KeysAreNotStrings(t *testing.T) {
	r := mustResult(t, `{"name":"value"}`)
	var kinds []TokenKind
	for _, tok := range Tokens(r) {
		if tok.Kind != TokenSpace && tok.Kind != TokenPunct {
			kinds = append(kinds, tok.Kind)
		}
	}
	assert.Equal(t, []TokenKind{TokenKey, TokenString}, kinds)
}

func TestMarkup_WrapsEachValueOnce(t *testing.T) {
	r := mustResult(t, `{"s":"a: \"b\"","n":42,"t":true,"z":null}`)
	out := Markup(r)

	assert.Contains(t, out, `<span class="key">&#34;s&#34;</span>: <span class="string">&#34;a: \&#34;b\&#34;&#34;</span>`)
	assert.Contains(t, out, `<span class="number">42</span>`)
	assert.Contains(t, out, `<span class="boolean">true</span>`)
	assert.Contains(t, out, `<span class="null">null</span>`)
	assert.Equal(t, 4, strings.Count(out, `class="key"`))
	assert.Equal(t, 1, strings.Count(out, `class="string"`))
}

func TestMarkup_EscapesHTML(t *testing.T) {
	r := mustResult(t, `{"x":"<script>"}`)
	out := Markup(r)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestHighlight_PreservesText(t *testing.T) {
	r := mustResult(t, `{"risk_level":"high","score":0.9}`)
	out := Highlight(r, "no-such-style")
	for _, want := range []string{`"risk_level"`, `"high"`, `0.9`} {
		assert.Contains(t, out, want)
	}
}

func TestKnownStyle(t *testing.T) {
	assert.True(t, KnownStyle("monokai"))
	assert.False(t, KnownStyle("definitely-not-a-style"))
}

// =============================================================================
// QUICK SUMMARY
// =============================================================================

func TestQuickSummary(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "disposable only",
			body: `{"risk_level":"low","disposable":{"checked":true,"value":false}}`,
			want: "Disposable: ✅",
		},
		{
			name: "all checks in fixed order",
			body: `{
				"educational":{"checked":true,"value":true},
				"well_known":{"checked":true,"value":false},
				"dns":{"checked":true,"value":{"has_mx":true}},
				"disposable":{"checked":true,"value":true}
			}`,
			want: "Disposable: ❌ • DNS: ✅ • Known provider: ❓ • Educational: ✅",
		},
		{
			name: "unchecked entries omitted",
			body: `{"disposable":{"checked":false,"value":true},"dns":{"checked":true,"value":{"has_mx":false}}}`,
			want: "DNS: ❌",
		},
		{
			name: "educational false hidden",
			body: `{"educational":{"checked":true,"value":false},"well_known":{"checked":true,"value":true}}`,
			want: "Known provider: ✅",
		},
		{
			name: "nothing performed",
			body: `{"risk_level":"medium"}`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, QuickSummary(mustResult(t, tt.body)))
		})
	}

	assert.Equal(t, "", QuickSummary(nil))
}

// =============================================================================
// RISK HELPERS
// =============================================================================

func TestRiskHelpers_Total(t *testing.T) {
	tests := []struct {
		level  string
		emoji  string
		border string
	}{
		{"low", "✅", "border-green-500"},
		{"medium", "⚠️", "border-yellow-500"},
		{"high", "🚫", "border-red-500"},
		{"", "❓", "border-gray-500"},
		{"catastrophic", "❓", "border-gray-500"},
		{"unknown", "❓", "border-gray-500"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.emoji, RiskEmoji(tt.level), tt.level)
		assert.Equal(t, tt.border, RiskBorderClass(tt.level), tt.level)
		assert.NotEmpty(t, RiskClass(tt.level), tt.level)
		assert.NotEmpty(t, RiskLabel(tt.level), tt.level)
		_ = RiskColor(tt.level)
	}
}
