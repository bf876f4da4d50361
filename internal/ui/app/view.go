// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/mailcheck-tui/internal/emailaddr"
	"github.com/jeranaias/mailcheck-tui/internal/ui/components"
	"github.com/jeranaias/mailcheck-tui/internal/widget"
)

// View renders the model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	sections := []string{
		m.renderHeader(),
		m.renderInput(),
		m.viewport.View(),
		m.renderStatusBar(),
		m.help.View(m.keys),
	}
	screen := lipgloss.JoinVertical(lipgloss.Left, sections...)

	st := m.ctrl.State()
	if st.Notification == "" {
		return screen
	}
	toast := components.RenderToast(m.theme, st.Notification, m.width)
	// Keep the status bar and help visible below the toast.
	return components.OverlayBottomRight(screen, toast, m.width, 2)
}

func (m Model) renderHeader() string {
	title := m.theme.Title.Render("Email Risk Checker")
	sub := m.theme.Subtitle.Render("disposable, DNS and provider checks")
	return title + "\n" + sub
}

func (m Model) renderInput() string {
	box := m.theme.InputBox
	if m.input.Focused() {
		box = m.theme.InputBoxFocused
	}
	line := box.Width(m.theme.ContentWidth()).Render(m.input.View())
	return line + "\n" + m.theme.InputHint.Render(emailaddr.Hint(m.input.Value()))
}

// renderBody renders the area under the input for the current phase.
func (m Model) renderBody() string {
	st := m.ctrl.State()
	width := m.theme.ContentWidth()

	var parts []string
	if st.ShowSuggestions {
		parts = append(parts, m.suggestions.View(m.theme, width), "")
	}

	switch st.Phase() {
	case widget.PhaseLoading:
		a := m.ctrl.Animator()
		parts = append(parts, components.RenderLoading(m.theme, a.Spinner(), widget.LoadingText, a.Dots()))
	case widget.PhaseError:
		parts = append(parts, components.RenderError(m.theme, st.Error, width))
	case widget.PhaseSuccess:
		_, ok := st.ResponseTimeMs()
		parts = append(parts, components.RenderResult(m.theme, components.ResultView{
			Result:       st.Result,
			ResponseTime: st.ResponseTime,
			HasTiming:    ok,
			ShowJSON:     st.ShowJSON,
			JSONStyle:    m.cfg.UI.JSONStyle,
		}, width))
	}
	return strings.Join(parts, "\n")
}

func (m *Model) refreshViewport() {
	m.viewport.SetContent(m.renderBody())
}

func (m Model) renderStatusBar() string {
	m.statusBar.Phase = m.ctrl.State().Phase().String()
	if m.stats != nil {
		m.statusBar.Session = m.stats.Session()
	}
	return m.statusBar.View()
}
