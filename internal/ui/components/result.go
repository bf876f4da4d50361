// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/mailcheck-tui/internal/checkapi"
	"github.com/jeranaias/mailcheck-tui/internal/present"
	"github.com/jeranaias/mailcheck-tui/internal/ui/styles"
	"github.com/jeranaias/mailcheck-tui/internal/util"
)

// ResultView is everything the result panel shows.
type ResultView struct {
	Result       *checkapi.CheckResult
	ResponseTime time.Duration
	HasTiming    bool
	ShowJSON     bool
	JSONStyle    string // chroma style name
}

// RenderResult renders the verdict panel: risk badge, score, reasons, the
// quick summary, the response time and, when enabled, the highlighted JSON.
// A nil result renders nothing.
func RenderResult(theme *styles.Theme, v ResultView, width int) string {
	r := v.Result
	if r == nil {
		return ""
	}
	level := string(r.RiskLevel())
	color := present.RiskColor(level)
	inner := width - 4
	if inner < 10 {
		inner = 10
	}

	var lines []string

	badge := theme.RiskBadge.Background(color).
		Render(present.RiskEmoji(level) + " " + present.RiskLabel(level) + " RISK")
	header := badge
	if email := r.Email(); email != "" {
		header += "  " + theme.Value.Render(util.TruncateWidth(email, inner-20))
	}
	lines = append(lines, header, "")

	if score, ok := r.Score(); ok {
		lines = append(lines, theme.Label.Render("Score: ")+theme.Value.Render(formatScore(score)))
	}
	if reasons := r.Reasons(); len(reasons) > 0 {
		lines = append(lines, theme.Label.Render("Reasons:"))
		for _, reason := range reasons {
			lines = append(lines, theme.Reason.Render("• "+util.TruncateWidth(reason, inner-4)))
		}
	}
	if summary := present.QuickSummary(r); summary != "" {
		lines = append(lines, "", summary)
	}
	if v.HasTiming {
		lines = append(lines, "", theme.ResponseTime.Render("Response time: "+util.FormatMillis(v.ResponseTime)))
	}

	body := theme.ResultBox.
		BorderForeground(color).
		Width(inner).
		Render(strings.Join(lines, "\n"))

	if !v.ShowJSON {
		return body
	}
	style := v.JSONStyle
	if style == "" {
		style = present.DefaultStyle
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, theme.JSONBox.Render(present.Highlight(r, style)))
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
