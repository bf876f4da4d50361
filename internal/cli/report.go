// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/mailcheck-tui/internal/checkapi"
	"github.com/jeranaias/mailcheck-tui/internal/emailaddr"
	"github.com/jeranaias/mailcheck-tui/internal/present"
	"github.com/jeranaias/mailcheck-tui/internal/util"
)

// MarkdownReport renders a verdict as Markdown.
func MarkdownReport(email string, result *checkapi.CheckResult, elapsed time.Duration) string {
	level := string(result.RiskLevel())

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s %s RISK\n\n", present.RiskEmoji(level), present.RiskLabel(level))
	fmt.Fprintf(&sb, "**Email:** `%s`\n\n", email)
	if addr := emailaddr.Parse(email); addr.IsIDN() {
		fmt.Fprintf(&sb, "**Domain:** %s (`%s`)\n\n", addr.DomainUnicode, addr.Domain)
	}
	if score, ok := result.Score(); ok {
		fmt.Fprintf(&sb, "**Score:** %s\n\n", strconv.FormatFloat(score, 'f', -1, 64))
	}
	if reasons := result.Reasons(); len(reasons) > 0 {
		sb.WriteString("**Reasons:**\n\n")
		for _, r := range reasons {
			fmt.Fprintf(&sb, "- %s\n", r)
		}
		sb.WriteString("\n")
	}
	if summary := present.QuickSummary(result); summary != "" {
		fmt.Fprintf(&sb, "%s\n\n", summary)
	}
	fmt.Fprintf(&sb, "_Response time: %s_\n", util.FormatMillis(elapsed))
	return sb.String()
}

// SummaryLine renders a verdict on one line for the prompt.
func SummaryLine(email string, result *checkapi.CheckResult, elapsed time.Duration) string {
	level := string(result.RiskLevel())
	line := present.RiskEmoji(level) + " " + util.PadRight(present.RiskLabel(level), 7) + " " + email +
		" (" + util.FormatMillis(elapsed) + ")"
	if summary := present.QuickSummary(result); summary != "" {
		line += "  " + summary
	}
	return line
}

// renderMarkdown renders Markdown for a terminal of the given width.
// Returns the source unchanged if rendering fails.
func renderMarkdown(content string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return out
}
