// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package present

import (
	"bytes"
	"encoding/json"
	"html"
	"sort"
	"strings"

	"github.com/jeranaias/mailcheck-tui/internal/checkapi"
)

// =============================================================================
// TOKENS
// =============================================================================

// TokenKind classifies a piece of rendered JSON.
type TokenKind int

const (
	TokenPunct TokenKind = iota // { } [ ] : ,
	TokenSpace                  // newlines, indentation, the space after a colon
	TokenKey
	TokenString
	TokenNumber
	TokenBool
	TokenNull
)

// Class returns the markup class for value tokens; empty for structure.
func (k TokenKind) Class() string {
	switch k {
	case TokenKey:
		return "key"
	case TokenString:
		return "string"
	case TokenNumber:
		return "number"
	case TokenBool:
		return "boolean"
	case TokenNull:
		return "null"
	default:
		return ""
	}
}

// Token is one typed fragment of indented JSON.
type Token struct {
	Kind TokenKind
	Text string
}

// indentUnit matches the two-space indentation of the exported JSON.
const indentUnit = "  "

// =============================================================================
// FORMATTING
// =============================================================================

// Format returns the verdict as two-space indented JSON, or "" for nil.
func Format(result *checkapi.CheckResult) string {
	if result == nil {
		return ""
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indentUnit)
	if err := enc.Encode(result.Raw()); err != nil {
		return ""
	}
	return strings.TrimRight(buf.String(), "\n")
}

// Tokens walks the verdict and returns its indented JSON as typed tokens.
// Concatenating the token texts yields exactly Format(result).
func Tokens(result *checkapi.CheckResult) []Token {
	if result == nil {
		return nil
	}
	w := &tokenWriter{}
	w.value(result.Raw(), 0)
	return w.tokens
}

// Markup renders the verdict as HTML-escaped JSON with each value wrapped in
// <span class="key|string|number|boolean|null">.
func Markup(result *checkapi.CheckResult) string {
	var sb strings.Builder
	for _, tok := range Tokens(result) {
		class := tok.Kind.Class()
		if class == "" {
			sb.WriteString(tok.Text)
			continue
		}
		sb.WriteString(`<span class="`)
		sb.WriteString(class)
		sb.WriteString(`">`)
		sb.WriteString(html.EscapeString(tok.Text))
		sb.WriteString(`</span>`)
	}
	return sb.String()
}

// =============================================================================
// TREE WALK
// =============================================================================

type tokenWriter struct {
	tokens []Token
}

func (w *tokenWriter) emit(kind TokenKind, text string) {
	w.tokens = append(w.tokens, Token{Kind: kind, Text: text})
}

func (w *tokenWriter) newline(depth int) {
	w.emit(TokenSpace, "\n"+strings.Repeat(indentUnit, depth))
}

func (w *tokenWriter) value(v any, depth int) {
	switch val := v.(type) {
	case nil:
		w.emit(TokenNull, "null")
	case bool:
		if val {
			w.emit(TokenBool, "true")
		} else {
			w.emit(TokenBool, "false")
		}
	case string:
		w.emit(TokenString, encodeScalar(val))
	case json.Number, float64, float32, int, int64, int32, uint, uint64, uint32:
		w.emit(TokenNumber, encodeScalar(val))
	case map[string]any:
		w.object(val, depth)
	case []any:
		w.array(val, depth)
	default:
		// Typed Go values are normalised through a JSON round trip.
		raw, err := json.Marshal(val)
		if err != nil {
			w.emit(TokenNull, "null")
			return
		}
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var generic any
		if err := dec.Decode(&generic); err != nil {
			w.emit(TokenNull, "null")
			return
		}
		w.value(generic, depth)
	}
}

func (w *tokenWriter) object(obj map[string]any, depth int) {
	if len(obj) == 0 {
		w.emit(TokenPunct, "{}")
		return
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	w.emit(TokenPunct, "{")
	for i, k := range keys {
		w.newline(depth + 1)
		w.emit(TokenKey, encodeScalar(k))
		w.emit(TokenPunct, ":")
		w.emit(TokenSpace, " ")
		w.value(obj[k], depth+1)
		if i < len(keys)-1 {
			w.emit(TokenPunct, ",")
		}
	}
	w.newline(depth)
	w.emit(TokenPunct, "}")
}

func (w *tokenWriter) array(arr []any, depth int) {
	if len(arr) == 0 {
		w.emit(TokenPunct, "[]")
		return
	}
	w.emit(TokenPunct, "[")
	for i, item := range arr {
		w.newline(depth + 1)
		w.value(item, depth+1)
		if i < len(arr)-1 {
			w.emit(TokenPunct, ",")
		}
	}
	w.newline(depth)
	w.emit(TokenPunct, "]")
}

// encodeScalar encodes a leaf the same way Format does.
func encodeScalar(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "null"
	}
	return strings.TrimRight(buf.String(), "\n")
}
