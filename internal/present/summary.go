// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package present

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/mailcheck-tui/internal/checkapi"
	"github.com/jeranaias/mailcheck-tui/internal/ui/styles"
)

// Glyphs used by the quick summary and the risk badge.
const (
	GlyphPass    = "✅"
	GlyphFail    = "❌"
	GlyphUnknown = "❓"
	GlyphWarn    = "⚠️"
	GlyphBlocked = "🚫"
)

// SummarySeparator joins quick-summary entries.
const SummarySeparator = " • "

// QuickSummary condenses the verdict into one line, checking disposable,
// DNS/MX, well-known provider and educational in that order. Checks the
// server did not perform are left out. Returns "" when none were performed.
func QuickSummary(result *checkapi.CheckResult) string {
	if result == nil {
		return ""
	}

	var parts []string

	if c, ok := result.Check(checkapi.CheckDisposable); ok && c.Checked {
		parts = append(parts, "Disposable: "+pick(c.Bool(), GlyphFail, GlyphPass))
	}
	if c, ok := result.Check(checkapi.CheckDNS); ok && c.Checked {
		parts = append(parts, "DNS: "+pick(c.FieldBool("has_mx"), GlyphPass, GlyphFail))
	}
	if c, ok := result.Check(checkapi.CheckWellKnown); ok && c.Checked {
		parts = append(parts, "Known provider: "+pick(c.Bool(), GlyphPass, GlyphUnknown))
	}
	if c, ok := result.Check(checkapi.CheckEducational); ok && c.Checked && c.Bool() {
		parts = append(parts, "Educational: "+GlyphPass)
	}

	return strings.Join(parts, SummarySeparator)
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}

// =============================================================================
// RISK HELPERS
// =============================================================================

// RiskEmoji returns the badge glyph for a risk level.
func RiskEmoji(level string) string {
	switch checkapi.ParseRiskLevel(level) {
	case checkapi.RiskLow:
		return GlyphPass
	case checkapi.RiskMedium:
		return GlyphWarn
	case checkapi.RiskHigh:
		return GlyphBlocked
	default:
		return GlyphUnknown
	}
}

// RiskBorderClass returns the markup border class for a risk level.
func RiskBorderClass(level string) string {
	switch checkapi.ParseRiskLevel(level) {
	case checkapi.RiskLow:
		return "border-green-500"
	case checkapi.RiskMedium:
		return "border-yellow-500"
	case checkapi.RiskHigh:
		return "border-red-500"
	default:
		return "border-gray-500"
	}
}

// RiskClass returns the markup badge class for a risk level.
func RiskClass(level string) string {
	return "risk-" + string(checkapi.ParseRiskLevel(level)) + " px-4 py-2 rounded font-medium text-base"
}

// RiskColor returns the terminal colour used for the result panel border.
func RiskColor(level string) lipgloss.AdaptiveColor {
	switch checkapi.ParseRiskLevel(level) {
	case checkapi.RiskLow:
		return styles.Emerald
	case checkapi.RiskMedium:
		return styles.Amber
	case checkapi.RiskHigh:
		return styles.Rose
	default:
		return styles.TextMuted
	}
}

// RiskLabel returns "LOW", "MEDIUM", "HIGH" or "UNKNOWN".
func RiskLabel(level string) string {
	return strings.ToUpper(string(checkapi.ParseRiskLevel(level)))
}
