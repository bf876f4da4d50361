// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app is the Bubble Tea program around the email checker widget.
//
// The model owns the terminal surface: the input field, the scrolling
// result area, the suggestion list, help and the status bar. Every state
// change goes through widget.Controller; the model mirrors the input field
// into it and renders what it holds.
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/mailcheck-tui/internal/config"
	"github.com/jeranaias/mailcheck-tui/internal/telemetry"
	"github.com/jeranaias/mailcheck-tui/internal/ui/components"
	"github.com/jeranaias/mailcheck-tui/internal/ui/styles"
	"github.com/jeranaias/mailcheck-tui/internal/widget"
)

// MessageConfigReloaded is shown when the config file changes on disk.
const MessageConfigReloaded = "⚙️ Settings reloaded"

// recentLimit is how many history addresses join the suggestions.
const recentLimit = 5

// RecentSource lists recently checked addresses, newest first.
type RecentSource interface {
	RecentEmails(ctx context.Context, n int) ([]string, error)
}

// StatsSource reports session counters for the status bar.
type StatsSource interface {
	Session() telemetry.SessionStats
}

// Options wires a Model. Controller and Config are required.
type Options struct {
	Controller *widget.Controller
	Config     *config.Config
	Theme      *styles.Theme
	Recent     RecentSource
	Stats      StatsSource
	Logger     *slog.Logger

	// ConfigUpdates delivers configurations reloaded from disk.
	ConfigUpdates <-chan *config.Config
}

// Model is the top-level Bubble Tea model.
type Model struct {
	ctrl   *widget.Controller
	cfg    *config.Config
	theme  *styles.Theme
	recent RecentSource
	stats  StatsSource
	logger *slog.Logger
	reload <-chan *config.Config

	input       textinput.Model
	viewport    viewport.Model
	help        help.Model
	keys        KeyMap
	suggestions components.SuggestionList
	statusBar   *components.StatusBar

	recentEmails []string

	// replaceOnType makes the next printable key replace the whole input,
	// emulating a selected field after ctrl+k.
	replaceOnType bool

	width  int
	height int
	ready  bool
}

// New creates the model.
func New(opts Options) Model {
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ti := textinput.New()
	ti.Prompt = "✉ "
	ti.Placeholder = "name@example.com"
	ti.CharLimit = 320
	ti.Focus()

	m := Model{
		ctrl:      opts.Controller,
		cfg:       opts.Config,
		theme:     theme,
		recent:    opts.Recent,
		stats:     opts.Stats,
		logger:    logger,
		reload:    opts.ConfigUpdates,
		input:     ti,
		viewport:  viewport.New(80, 10),
		help:      help.New(),
		keys:      DefaultKeyMap(opts.Controller.Keys()),
		statusBar: components.NewStatusBar(theme),
	}
	m.statusBar.Endpoint = opts.Config.API.BaseURL
	m.suggestions = components.NewSuggestionList(m.mergedSuggestions())
	return m
}

// Init starts the cursor blink, loads history and waits for config changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadRecent(), m.waitForConfig())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case widget.CheckDoneMsg:
		cmds = append(cmds, m.ctrl.Update(msg))
		if st := m.ctrl.State(); st.Result != nil && !st.Loading {
			if m.cfg.UI.ShowJSON && !st.ShowJSON {
				m.ctrl.ToggleJSON()
			}
			cmds = append(cmds, m.loadRecent())
		}

	case widget.FiredMsg:
		cmds = append(cmds, m.ctrl.Update(msg))
		m.syncInput()

	case widget.ScrollResultMsg:
		m.refreshViewport()
		m.viewport.GotoTop()

	case widget.FocusInputMsg:
		cmds = append(cmds, m.input.Focus())
		m.input.CursorEnd()
		m.replaceOnType = m.input.Value() != ""

	case ConfigReloadedMsg:
		cmds = append(cmds, m.applyConfig(msg.Config), m.waitForConfig())

	case recentLoadedMsg:
		if msg.err != nil {
			m.logger.Warn("recent history unavailable", "error", msg.err)
		} else {
			m.recentEmails = msg.emails
			m.suggestions.SetItems(m.mergedSuggestions())
		}

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.refreshViewport()
	return m, tea.Batch(cmds...)
}

func (m *Model) handleResize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	m.theme.SetSize(msg.Width, msg.Height)

	// Title, input box, hint, status bar and help.
	const reserved = 2 + 3 + 1 + 1 + 2
	h := msg.Height - reserved
	if h < 3 {
		h = 3
	}
	m.viewport.Width = msg.Width
	m.viewport.Height = h

	m.input.Width = m.theme.ContentWidth() - 4
	m.statusBar.Width = msg.Width
	m.help.Width = msg.Width
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.ctrl.Shutdown()
		return m, tea.Quit
	}

	// Controller shortcuts (clear, focus) come first.
	if cmd, handled := m.ctrl.HandleKey(msg); handled {
		m.replaceOnType = false
		m.syncInput()
		m.refreshViewport()
		return m, cmd
	}

	st := m.ctrl.State()
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Suggestions):
		m.ctrl.ToggleSuggestions()

	case st.ShowSuggestions && key.Matches(msg, m.keys.Up):
		m.suggestions.MoveUp()

	case st.ShowSuggestions && key.Matches(msg, m.keys.Down):
		m.suggestions.MoveDown()

	case st.ShowSuggestions && key.Matches(msg, m.keys.Submit):
		if s, ok := m.suggestions.Selected(); ok {
			cmd = m.ctrl.SelectSuggestion(s.Email)
			m.syncInput()
		}

	case key.Matches(msg, m.keys.Submit):
		m.ctrl.SetEmail(m.input.Value())
		cmd = m.ctrl.Submit()

	case key.Matches(msg, m.keys.Copy):
		cmd = m.ctrl.CopyResult()

	case key.Matches(msg, m.keys.ToggleJSON):
		m.ctrl.ToggleJSON()

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()

	default:
		if m.replaceOnType && msg.Type == tea.KeyRunes {
			m.input.SetValue("")
		}
		m.replaceOnType = false
		m.input, cmd = m.input.Update(msg)
		m.ctrl.SetEmail(m.input.Value())
	}

	m.refreshViewport()
	return m, cmd
}

// syncInput copies the controller's email into the input field when the
// controller changed it.
func (m *Model) syncInput() {
	if email := m.ctrl.State().Email; email != m.input.Value() {
		m.input.SetValue(email)
		m.input.CursorEnd()
	}
}

func (m *Model) applyConfig(cfg *config.Config) tea.Cmd {
	if cfg == nil {
		return nil
	}
	if cfg.API.BaseURL != m.cfg.API.BaseURL {
		m.logger.Info("api endpoint change takes effect after restart", "base_url", cfg.API.BaseURL)
	}
	// The client is bound at startup; keep showing the endpoint in use.
	cfg.API = m.cfg.API
	m.cfg = cfg
	m.suggestions.SetItems(m.mergedSuggestions())
	m.logger.Info("config reloaded")
	return m.ctrl.Notifier().Show(MessageConfigReloaded)
}

func (m Model) mergedSuggestions() []components.Suggestion {
	return components.MergeSuggestions(m.cfg.UI.Suggestions, m.recentEmails)
}

func (m Model) loadRecent() tea.Cmd {
	if m.recent == nil {
		return nil
	}
	recent := m.recent
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		emails, err := recent.RecentEmails(ctx, recentLimit)
		return recentLoadedMsg{emails: emails, err: err}
	}
}

func (m Model) waitForConfig() tea.Cmd {
	if m.reload == nil {
		return nil
	}
	ch := m.reload
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return nil
		}
		return ConfigReloadedMsg{Config: cfg}
	}
}

// Controller returns the widget controller.
func (m Model) Controller() *widget.Controller { return m.ctrl }

// Input returns the current input text.
func (m Model) Input() string { return m.input.Value() }
