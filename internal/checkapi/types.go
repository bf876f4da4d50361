// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package checkapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// =============================================================================
// RISK LEVEL
// =============================================================================

// RiskLevel is the server's overall verdict for an address.
type RiskLevel string

const (
	RiskLow     RiskLevel = "low"
	RiskMedium  RiskLevel = "medium"
	RiskHigh    RiskLevel = "high"
	RiskUnknown RiskLevel = "unknown"
)

// ParseRiskLevel maps any input onto a RiskLevel. Unrecognised values,
// including the empty string, become RiskUnknown.
func ParseRiskLevel(s string) RiskLevel {
	switch RiskLevel(strings.ToLower(strings.TrimSpace(s))) {
	case RiskLow:
		return RiskLow
	case RiskMedium:
		return RiskMedium
	case RiskHigh:
		return RiskHigh
	default:
		return RiskUnknown
	}
}

// =============================================================================
// CHECK RESULT
// =============================================================================

// Well-known check names, in the order the quick summary lists them.
const (
	CheckDisposable  = "disposable"
	CheckDNS         = "dns"
	CheckWellKnown   = "well_known"
	CheckEducational = "educational"
	CheckPattern     = "pattern"
)

// ErrNotObject is returned when a verdict body is valid JSON but not an object.
var ErrNotObject = errors.New("check result must be a JSON object")

// CheckResult is one verdict returned by the check endpoint.
//
// The payload is kept as a generic tree so that fields the client does not
// know about still show up in the JSON view and in clipboard exports. Lookups
// ignore case and underscores, so "well_known" also finds "WellKnown".
type CheckResult struct {
	raw map[string]any
}

// NewCheckResult wraps an already-decoded JSON object.
func NewCheckResult(raw map[string]any) *CheckResult {
	if raw == nil {
		raw = map[string]any{}
	}
	return &CheckResult{raw: raw}
}

// UnmarshalJSON decodes a verdict, keeping numbers as json.Number so that
// re-encoding does not alter them.
func (r *CheckResult) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return ErrNotObject
	}
	r.raw = obj
	return nil
}

// MarshalJSON encodes the verdict exactly as it was received (modulo key order).
func (r *CheckResult) MarshalJSON() ([]byte, error) {
	if r == nil || r.raw == nil {
		return []byte("null"), nil
	}
	return json.Marshal(r.raw)
}

// Raw returns the decoded tree. Callers must not mutate it.
func (r *CheckResult) Raw() map[string]any {
	if r == nil {
		return nil
	}
	return r.raw
}

// Email returns the address the verdict is about, if the server echoed it.
func (r *CheckResult) Email() string {
	if r == nil {
		return ""
	}
	if v, ok := lookup(r.raw, "email"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Check returns the named sub-check. ok is false when the payload has no such
// entry or the entry is not an object.
func (r *CheckResult) Check(name string) (SubCheck, bool) {
	if r == nil {
		return SubCheck{}, false
	}
	v, ok := lookup(r.raw, name)
	if !ok {
		return SubCheck{}, false
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return SubCheck{}, false
	}

	sc := SubCheck{}
	if checked, ok := lookup(obj, "checked"); ok {
		sc.Checked, _ = checked.(bool)
	}
	sc.Value, _ = lookup(obj, "value")
	if e, ok := lookup(obj, "err"); ok && e != nil {
		switch ev := e.(type) {
		case string:
			sc.Err = ev
		case map[string]any:
			if len(ev) > 0 {
				b, _ := json.Marshal(ev)
				sc.Err = string(b)
			}
		}
	}
	return sc, true
}

// RiskLevel reads the top-level risk_level, falling back to the analysis
// report. Anything missing or unrecognised is RiskUnknown.
func (r *CheckResult) RiskLevel() RiskLevel {
	if r == nil {
		return RiskUnknown
	}
	if v, ok := lookup(r.raw, "risk_level"); ok {
		if s, ok := v.(string); ok {
			return ParseRiskLevel(s)
		}
	}
	if analysis, ok := r.analysis(); ok {
		if v, ok := lookup(analysis, "risk_level"); ok {
			if s, ok := v.(string); ok {
				return ParseRiskLevel(s)
			}
		}
	}
	return RiskUnknown
}

// Score returns the analysis score, if present.
func (r *CheckResult) Score() (float64, bool) {
	src := r.Raw()
	if analysis, ok := r.analysis(); ok {
		src = analysis
	}
	v, ok := lookup(src, "score")
	if !ok {
		return 0, false
	}
	return toFloat(v)
}

// Reasons returns the analysis reasons, if present.
func (r *CheckResult) Reasons() []string {
	src := r.Raw()
	if analysis, ok := r.analysis(); ok {
		src = analysis
	}
	v, ok := lookup(src, "reasons")
	if !ok {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	reasons := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok && s != "" {
			reasons = append(reasons, s)
		}
	}
	return reasons
}

func (r *CheckResult) analysis() (map[string]any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := lookup(r.raw, "analysis")
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}

// =============================================================================
// SUB CHECK
// =============================================================================

// SubCheck is a single {checked, value} pair inside a verdict.
type SubCheck struct {
	Checked bool
	Value   any
	Err     string
}

// Bool reports whether Value is the JSON literal true.
func (s SubCheck) Bool() bool {
	b, _ := s.Value.(bool)
	return b
}

// Field reads a field of an object-valued check, e.g. has_mx of the DNS check.
func (s SubCheck) Field(name string) (any, bool) {
	obj, ok := s.Value.(map[string]any)
	if !ok {
		return nil, false
	}
	return lookup(obj, name)
}

// FieldBool reads a boolean field of an object-valued check; absent is false.
func (s SubCheck) FieldBool(name string) bool {
	v, ok := s.Field(name)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// =============================================================================
// HELPERS
// =============================================================================

// lookup finds key in m, first exactly, then ignoring case and underscores.
func lookup(m map[string]any, key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	if v, ok := m[key]; ok {
		return v, true
	}
	want := normalizeKey(key)
	for k, v := range m {
		if normalizeKey(k) == want {
			return v, true
		}
	}
	return nil, false
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.ReplaceAll(k, "_", ""))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
