// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package present

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/mailcheck-tui/internal/checkapi"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "monokai"

// KnownStyle reports whether name is a registered chroma style.
func KnownStyle(name string) bool {
	_, ok := chromaStyles.Registry[strings.ToLower(name)]
	return ok
}

// chromaType maps token kinds onto the chroma token types whose colours they borrow.
var chromaType = map[TokenKind]chroma.TokenType{
	TokenKey:    chroma.NameTag,
	TokenString: chroma.LiteralString,
	TokenNumber: chroma.LiteralNumber,
	TokenBool:   chroma.KeywordConstant,
	TokenNull:   chroma.KeywordConstant,
	TokenPunct:  chroma.Punctuation,
}

// Highlight renders the verdict as indented JSON coloured for the terminal
// using the named chroma style. Unknown styles fall back to chroma's default.
func Highlight(result *checkapi.CheckResult, styleName string) string {
	tokens := Tokens(result)
	if len(tokens) == 0 {
		return ""
	}

	style := chromaStyles.Get(styleName)
	if style == nil {
		style = chromaStyles.Fallback
	}

	cache := make(map[TokenKind]lipgloss.Style, len(chromaType))
	var sb strings.Builder
	for _, tok := range tokens {
		if tok.Kind == TokenSpace {
			sb.WriteString(tok.Text)
			continue
		}
		ls, ok := cache[tok.Kind]
		if !ok {
			ls = lipglossFor(style.Get(chromaType[tok.Kind]))
			cache[tok.Kind] = ls
		}
		sb.WriteString(ls.Render(tok.Text))
	}
	return sb.String()
}

func lipglossFor(entry chroma.StyleEntry) lipgloss.Style {
	s := lipgloss.NewStyle()
	if entry.Colour.IsSet() {
		s = s.Foreground(lipgloss.Color(entry.Colour.String()))
	}
	if entry.Bold == chroma.Yes {
		s = s.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		s = s.Italic(true)
	}
	return s
}
