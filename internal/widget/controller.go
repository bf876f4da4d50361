// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/mailcheck-tui/internal/checkapi"
	"github.com/jeranaias/mailcheck-tui/internal/clipboard"
	"github.com/jeranaias/mailcheck-tui/internal/emailaddr"
	"github.com/jeranaias/mailcheck-tui/internal/present"
)

// =============================================================================
// COLLABORATORS
// =============================================================================

// Checker performs one email check.
type Checker interface {
	Check(ctx context.Context, email string) (*checkapi.CheckResult, error)
}

// Copier exports text; see clipboard.Service.
type Copier interface {
	Copy(text string) clipboard.Outcome
}

// Metrics observes request and copy outcomes.
type Metrics interface {
	CheckStarted()
	CheckFinished(outcome string, elapsed time.Duration)
	CheckDiscarded()
	CopyFinished(path string, ok bool)
}

// Recorder persists successful checks.
type Recorder interface {
	Record(ctx context.Context, email string, level checkapi.RiskLevel, elapsed time.Duration) error
}

type noopMetrics struct{}

func (noopMetrics) CheckStarted()                       {}
func (noopMetrics) CheckFinished(string, time.Duration) {}
func (noopMetrics) CheckDiscarded()                     {}
func (noopMetrics) CopyFinished(string, bool)           {}

// Options configures a Controller. Checker is required; the rest are optional.
type Options struct {
	Checker   Checker
	Clipboard Copier
	Metrics   Metrics
	History   Recorder
	Logger    *slog.Logger
	KeyMap    *KeyMap

	// Now defaults to time.Now.
	Now func() time.Time
}

// OutcomeSuccess labels a check that produced a result.
const OutcomeSuccess = "success"

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller owns the widget State and sequences the request lifecycle.
type Controller struct {
	state    *State
	timers   *Timers
	notifier *Notifier
	animator *Animator
	keys     KeyMap

	checker Checker
	copier  Copier
	metrics Metrics
	history Recorder
	logger  *slog.Logger
	now     func() time.Time

	seq     uint64
	started time.Time
	cancel  *cancelManager
}

// New creates a Controller with an idle State.
func New(opts Options) *Controller {
	state := &State{}
	timers := NewTimers()

	c := &Controller{
		state:    state,
		timers:   timers,
		notifier: NewNotifier(state, timers),
		animator: NewAnimator(timers),
		keys:     DefaultKeyMap(),
		checker:  opts.Checker,
		copier:   opts.Clipboard,
		metrics:  opts.Metrics,
		history:  opts.History,
		logger:   opts.Logger,
		now:      opts.Now,
		cancel:   newCancelManager(),
	}
	if opts.KeyMap != nil {
		c.keys = *opts.KeyMap
	}
	if c.metrics == nil {
		c.metrics = noopMetrics{}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// State returns the widget state for rendering. Callers must not mutate it.
func (c *Controller) State() *State { return c.state }

// Animator returns the loading animator for rendering.
func (c *Controller) Animator() *Animator { return c.animator }

// Notifier returns the notification service.
func (c *Controller) Notifier() *Notifier { return c.notifier }

// Keys returns the controller's shortcuts.
func (c *Controller) Keys() KeyMap { return c.keys }

// SetEmail mirrors the input field into the state.
func (c *Controller) SetEmail(email string) {
	c.state.Email = email
}

// Submit starts a check of the current email. Blank input is ignored:
// no state change and no request.
func (c *Controller) Submit() tea.Cmd {
	email := emailaddr.Normalize(c.state.Email)
	if email == "" {
		return nil
	}

	c.timers.Cancel(PurposeDelayedSubmit)
	c.timers.Cancel(PurposeScroll)
	c.state.resetOutcome()
	c.state.Loading = true

	c.seq++
	seq := c.seq
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel.replace(cancel)
	c.started = c.now()
	c.metrics.CheckStarted()

	c.logger.Debug("check submitted", "seq", seq, "email", email)

	checker := c.checker
	request := func() tea.Msg {
		result, err := checker.Check(ctx, email)
		return CheckDoneMsg{Seq: seq, Email: email, Result: result, Err: err}
	}
	return tea.Batch(c.animator.Start(), request)
}

// HandleDone applies a finished request. Responses from superseded or
// cleared requests are dropped.
func (c *Controller) HandleDone(msg CheckDoneMsg) tea.Cmd {
	if msg.Seq != c.seq || !c.state.Loading {
		c.logger.Debug("stale check discarded", "seq", msg.Seq, "latest", c.seq)
		c.metrics.CheckDiscarded()
		return nil
	}

	c.state.Loading = false
	c.animator.Stop()
	c.cancel.clear()
	elapsed := c.now().Sub(c.started)

	if msg.Err != nil || msg.Result == nil {
		c.state.Result = nil
		c.state.Error = errorMessage(msg.Err)
		outcome := checkapi.TypeOf(msg.Err).String()
		if msg.Err == nil {
			outcome = checkapi.ErrTypeInvalidResponse.String()
		}
		c.metrics.CheckFinished(outcome, elapsed)
		c.logger.Info("check failed", "email", msg.Email, "outcome", outcome, "error", msg.Err)
		return nil
	}

	c.state.Error = ""
	c.state.Result = msg.Result
	c.state.ResponseTime = elapsed
	c.metrics.CheckFinished(OutcomeSuccess, elapsed)
	c.logger.Info("check finished",
		"email", msg.Email,
		"risk", msg.Result.RiskLevel(),
		"elapsed_ms", elapsed.Milliseconds(),
	)

	if c.history != nil {
		if err := c.history.Record(context.Background(), msg.Email, msg.Result.RiskLevel(), elapsed); err != nil {
			c.logger.Warn("history record failed", "error", err)
		}
	}

	return c.timers.Schedule(PurposeScroll, ScrollDelay)
}

// errorMessage picks the text shown for a failed check.
func errorMessage(err error) string {
	if err == nil {
		return checkapi.DefaultRejectMessage
	}
	var cerr *checkapi.ClientError
	if errors.As(err, &cerr) && cerr.Type == checkapi.ErrTypeRejected {
		return cerr.Message
	}
	return err.Error()
}

// HandleTimer runs the task behind an accepted timer firing.
func (c *Controller) HandleTimer(msg FiredMsg) tea.Cmd {
	if !c.timers.Accept(msg) {
		return nil
	}
	switch msg.Purpose {
	case PurposeScroll:
		if c.state.Result == nil {
			return nil
		}
		return func() tea.Msg { return ScrollResultMsg{} }
	case PurposeDelayedSubmit:
		return c.Submit()
	case PurposeNotification:
		c.notifier.expire()
	case PurposeAnimation:
		return c.animator.tick()
	}
	return nil
}

// SelectSuggestion fills the input with candidate, hides the suggestion
// list and submits after SubmitDelay.
func (c *Controller) SelectSuggestion(candidate string) tea.Cmd {
	c.state.Email = candidate
	c.state.ShowSuggestions = false
	return c.timers.Schedule(PurposeDelayedSubmit, SubmitDelay)
}

// ClearAll empties the input and resets the outcome. An in-flight request
// is cancelled and its response will be discarded. Idempotent.
func (c *Controller) ClearAll() {
	c.state.Email = ""
	c.state.resetOutcome()

	c.timers.Cancel(PurposeDelayedSubmit)
	c.timers.Cancel(PurposeScroll)

	if c.state.Loading {
		c.seq++
		c.state.Loading = false
		c.animator.Stop()
		c.cancel.clear()
	}
}

// CopyResult copies the pretty-printed result and notifies the outcome.
// Without a result it does nothing.
func (c *Controller) CopyResult() tea.Cmd {
	if c.state.Result == nil || c.copier == nil {
		return nil
	}
	out := c.copier.Copy(present.Format(c.state.Result))
	c.metrics.CopyFinished(out.Path.String(), out.OK)
	return c.notifier.Show(out.Message)
}

// ToggleJSON flips the raw JSON view.
func (c *Controller) ToggleJSON() {
	c.state.ShowJSON = !c.state.ShowJSON
}

// ToggleSuggestions flips the suggestion list.
func (c *Controller) ToggleSuggestions() {
	c.state.ShowSuggestions = !c.state.ShowSuggestions
}

// Focus asks the view to focus and select the input. State is untouched.
func (c *Controller) Focus() tea.Cmd {
	return func() tea.Msg { return FocusInputMsg{} }
}

// HandleKey applies the controller shortcuts. handled is false for keys
// the controller does not own.
func (c *Controller) HandleKey(msg tea.KeyMsg) (cmd tea.Cmd, handled bool) {
	switch {
	case key.Matches(msg, c.keys.Clear):
		c.ClearAll()
		return nil, true
	case key.Matches(msg, c.keys.Focus):
		return c.Focus(), true
	}
	return nil, false
}

// Update routes controller messages. Other messages return nil.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case CheckDoneMsg:
		return c.HandleDone(msg)
	case FiredMsg:
		return c.HandleTimer(msg)
	}
	return nil
}

// Shutdown cancels any in-flight request.
func (c *Controller) Shutdown() {
	c.cancel.clear()
}
