// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/mailcheck-tui/internal/checkapi"
	"github.com/jeranaias/mailcheck-tui/internal/clipboard"
	"github.com/jeranaias/mailcheck-tui/internal/present"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

type fakeChecker struct {
	mu     sync.Mutex
	emails []string
	ctxs   []context.Context
	bodies map[string]string
	err    error
}

func (f *fakeChecker) Check(ctx context.Context, email string) (*checkapi.CheckResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.emails = append(f.emails, email)
	f.ctxs = append(f.ctxs, ctx)
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.bodies[email]
	if !ok {
		body = `{"email":"` + email + `","risk_level":"low"}`
	}
	var r checkapi.CheckResult
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		return nil, err
	}
	return &r, nil
}

type fakeCopier struct {
	texts []string
	out   clipboard.Outcome
}

func (f *fakeCopier) Copy(text string) clipboard.Outcome {
	f.texts = append(f.texts, text)
	return f.out
}

type fakeMetrics struct {
	started   int
	outcomes  []string
	discarded int
	copies    []string
}

func (m *fakeMetrics) CheckStarted()                               { m.started++ }
func (m *fakeMetrics) CheckFinished(outcome string, _ time.Duration) { m.outcomes = append(m.outcomes, outcome) }
func (m *fakeMetrics) CheckDiscarded()                             { m.discarded++ }
func (m *fakeMetrics) CopyFinished(path string, _ bool)            { m.copies = append(m.copies, path) }

type fakeRecorder struct {
	emails []string
}

func (r *fakeRecorder) Record(_ context.Context, email string, _ checkapi.RiskLevel, _ time.Duration) error {
	r.emails = append(r.emails, email)
	return nil
}

// harness wires a controller whose timers fire immediately when their
// command runs, and records each requested delay.
type harness struct {
	c       *Controller
	checker *fakeChecker
	metrics *fakeMetrics
	delays  map[Purpose][]time.Duration
	clock   time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		checker: &fakeChecker{bodies: map[string]string{}},
		metrics: &fakeMetrics{},
		delays:  map[Purpose][]time.Duration{},
		clock:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	h.c = New(Options{
		Checker: h.checker,
		Metrics: h.metrics,
		Now: func() time.Time {
			h.clock = h.clock.Add(25 * time.Millisecond)
			return h.clock
		},
	})
	h.c.timers.tick = func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
		return func() tea.Msg {
			msg := fn(time.Time{})
			if fired, ok := msg.(FiredMsg); ok {
				h.delays[fired.Purpose] = append(h.delays[fired.Purpose], d)
			}
			return msg
		}
	}
	return h
}

// collect runs cmd and flattens batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// drive feeds msgs back into the controller until no controller messages
// remain, skipping animation ticks. Returns the non-controller messages.
func (h *harness) drive(cmd tea.Cmd) []tea.Msg {
	var rest []tea.Msg
	queue := collect(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		switch m := msg.(type) {
		case FiredMsg:
			if m.Purpose == PurposeAnimation {
				continue
			}
			queue = append(queue, collect(h.c.Update(m))...)
		case CheckDoneMsg:
			queue = append(queue, collect(h.c.Update(m))...)
		case nil:
		default:
			rest = append(rest, msg)
		}
	}
	return rest
}

func requestOf(t *testing.T, cmd tea.Cmd) CheckDoneMsg {
	t.Helper()
	for _, msg := range collect(cmd) {
		if done, ok := msg.(CheckDoneMsg); ok {
			return done
		}
	}
	t.Fatal("command did not issue a check")
	return CheckDoneMsg{}
}

func assertInvariants(t *testing.T, s *State) {
	t.Helper()
	assert.False(t, s.Result != nil && s.Error != "", "result and error both set")
	if s.Loading {
		assert.Nil(t, s.Result, "loading with result")
		assert.Empty(t, s.Error, "loading with error")
	}
}

// =============================================================================
// SUBMIT
// =============================================================================

func TestSubmit_BlankIsIgnored(t *testing.T) {
	for _, email := range []string{"", "   ", "\t\n"} {
		h := newHarness(t)
		h.c.SetEmail(email)
		before := *h.c.State()

		cmd := h.c.Submit()

		assert.Nil(t, cmd)
		assert.Equal(t, before, *h.c.State())
		assert.Empty(t, h.checker.emails)
		assert.Zero(t, h.metrics.started)
	}
}

func TestSubmit_SuccessScenario(t *testing.T) {
	h := newHarness(t)
	h.checker.bodies["test@example.com"] = `{"risk_level":"low","disposable":{"checked":true,"value":false}}`
	h.c.SetEmail("test@example.com")

	cmd := h.c.Submit()
	s := h.c.State()
	assert.Equal(t, PhaseLoading, s.Phase())
	assert.True(t, h.c.Animator().Running())
	assertInvariants(t, s)

	rest := h.drive(cmd)

	assert.Equal(t, PhaseSuccess, s.Phase())
	assert.False(t, s.Loading)
	assert.False(t, h.c.Animator().Running())
	assert.Contains(t, present.QuickSummary(s.Result), "Disposable: ✅")
	ms, ok := s.ResponseTimeMs()
	assert.True(t, ok)
	assert.Equal(t, int64(25), ms)
	assert.Equal(t, []time.Duration{ScrollDelay}, h.delays[PurposeScroll])
	assert.Contains(t, rest, tea.Msg(ScrollResultMsg{}))
	assert.Equal(t, []string{OutcomeSuccess}, h.metrics.outcomes)
	assertInvariants(t, s)
}

func TestSubmit_ClearsPreviousOutcome(t *testing.T) {
	h := newHarness(t)
	h.c.SetEmail("a@example.com")
	h.drive(h.c.Submit())
	s := h.c.State()
	s.ShowJSON = true
	s.ShowSuggestions = true
	require.NotNil(t, s.Result)

	h.c.Submit()

	assert.Nil(t, s.Result)
	assert.Empty(t, s.Error)
	assert.False(t, s.ShowJSON)
	assert.False(t, s.ShowSuggestions)
	_, ok := s.ResponseTimeMs()
	assert.False(t, ok)
	assertInvariants(t, s)
}

func TestSubmit_RejectedUsesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"message":"rate limited"}`))
	}))
	defer srv.Close()

	c := New(Options{Checker: checkapi.NewClient(&checkapi.ClientConfig{BaseURL: srv.URL})})
	c.SetEmail("someone@example.com")

	done := requestOf(t, c.Submit())
	c.HandleDone(done)

	s := c.State()
	assert.Equal(t, "rate limited", s.Error)
	assert.False(t, s.Loading)
	assert.Nil(t, s.Result)
	assert.Equal(t, PhaseError, s.Phase())
}

func TestSubmit_FailureMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"rejected without message", &checkapi.ClientError{Type: checkapi.ErrTypeRejected, Status: 500, Message: checkapi.DefaultRejectMessage}, "Failed to check email"},
		{"network", &checkapi.ClientError{Type: checkapi.ErrTypeNetwork, Message: "network error", Cause: errors.New("connection refused")}, "network error: connection refused"},
		{"timeout", checkapi.ErrTimeout, "request timed out"},
		{"plain", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.checker.err = tt.err
			h.c.SetEmail("x@example.com")
			h.drive(h.c.Submit())

			s := h.c.State()
			assert.Equal(t, tt.want, s.Error)
			assert.False(t, s.Loading)
			assert.Equal(t, PhaseError, s.Phase())
			assertInvariants(t, s)
		})
	}
}

func TestHandleDone_NilResultIsError(t *testing.T) {
	h := newHarness(t)
	h.c.SetEmail("x@example.com")
	done := requestOf(t, h.c.Submit())
	done.Result = nil
	done.Err = nil

	h.c.HandleDone(done)

	s := h.c.State()
	assert.False(t, s.Loading)
	assert.Equal(t, checkapi.DefaultRejectMessage, s.Error)
	assert.Equal(t, []string{"invalid_response"}, h.metrics.outcomes)
}

// =============================================================================
// RACE POLICY
// =============================================================================

func TestHandleDone_DiscardsStaleResponse(t *testing.T) {
	h := newHarness(t)
	h.checker.bodies["first@example.com"] = `{"risk_level":"high"}`
	h.checker.bodies["second@example.com"] = `{"risk_level":"low"}`

	h.c.SetEmail("first@example.com")
	first := requestOf(t, h.c.Submit())
	h.c.SetEmail("second@example.com")
	second := requestOf(t, h.c.Submit())

	require.Len(t, h.checker.ctxs, 2)
	assert.ErrorIs(t, h.checker.ctxs[0].Err(), context.Canceled, "superseded request not cancelled")
	assert.NoError(t, h.checker.ctxs[1].Err())

	h.c.HandleDone(second)
	h.c.HandleDone(first)

	s := h.c.State()
	require.NotNil(t, s.Result)
	assert.Equal(t, checkapi.RiskLow, s.Result.RiskLevel())
	assert.Equal(t, 1, h.metrics.discarded)
}

func TestHandleDone_StaleBeforeLatestKeepsLoading(t *testing.T) {
	h := newHarness(t)
	h.c.SetEmail("first@example.com")
	first := requestOf(t, h.c.Submit())
	h.c.SetEmail("second@example.com")
	h.c.Submit()

	h.c.HandleDone(first)

	s := h.c.State()
	assert.True(t, s.Loading)
	assert.Nil(t, s.Result)
	assert.True(t, h.c.Animator().Running())
}

// =============================================================================
// SUGGESTIONS / CLEAR
// =============================================================================

func TestSelectSuggestion_SubmitsAfterDelay(t *testing.T) {
	h := newHarness(t)
	h.c.State().ShowSuggestions = true

	cmd := h.c.SelectSuggestion("p303200@uoa.gr")

	s := h.c.State()
	assert.Equal(t, "p303200@uoa.gr", s.Email)
	assert.False(t, s.ShowSuggestions)
	assert.Empty(t, h.checker.emails, "submitted before the delay")
	assert.True(t, h.c.timers.Pending(PurposeDelayedSubmit))

	h.drive(cmd)

	assert.Equal(t, []time.Duration{SubmitDelay}, h.delays[PurposeDelayedSubmit])
	assert.Equal(t, []string{"p303200@uoa.gr"}, h.checker.emails)
	assert.Equal(t, PhaseSuccess, s.Phase())
}

func TestSelectSuggestion_ClearCancelsPendingSubmit(t *testing.T) {
	h := newHarness(t)
	cmd := h.c.SelectSuggestion("p303200@uoa.gr")
	h.c.ClearAll()

	h.drive(cmd)

	assert.Empty(t, h.checker.emails)
	assert.Equal(t, PhaseIdle, h.c.State().Phase())
}

func TestClearAll_Idempotent(t *testing.T) {
	h := newHarness(t)
	h.c.SetEmail("a@example.com")
	h.drive(h.c.Submit())
	h.c.ToggleJSON()
	h.c.ToggleSuggestions()

	h.c.ClearAll()
	once := *h.c.State()
	h.c.ClearAll()
	twice := *h.c.State()

	assert.Equal(t, once, twice)
	assert.Equal(t, "", once.Email)
	assert.Nil(t, once.Result)
	assert.False(t, once.ShowJSON)
	assert.False(t, once.ShowSuggestions)
	assert.Equal(t, PhaseIdle, once.Phase())
}

func TestClearAll_DiscardsInFlightResponse(t *testing.T) {
	h := newHarness(t)
	h.c.SetEmail("a@example.com")
	done := requestOf(t, h.c.Submit())

	h.c.ClearAll()
	assert.ErrorIs(t, h.checker.ctxs[0].Err(), context.Canceled)
	assert.False(t, h.c.Animator().Running())

	h.c.HandleDone(done)

	assert.Equal(t, PhaseIdle, h.c.State().Phase())
	assert.Equal(t, 1, h.metrics.discarded)
}

// =============================================================================
// KEYS / COPY / TOGGLES
// =============================================================================

func TestHandleKey(t *testing.T) {
	h := newHarness(t)
	h.c.SetEmail("a@example.com")
	h.drive(h.c.Submit())

	before := *h.c.State()
	cmd, handled := h.c.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlK})
	require.True(t, handled)
	assert.Equal(t, []tea.Msg{FocusInputMsg{}}, collect(cmd))
	assert.Equal(t, before, *h.c.State(), "focus must not mutate state")

	_, handled = h.c.HandleKey(tea.KeyMsg{Type: tea.KeyEsc})
	require.True(t, handled)
	assert.Equal(t, PhaseIdle, h.c.State().Phase())
	assert.Empty(t, h.c.State().Email)

	_, handled = h.c.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.False(t, handled)
}

func TestCopyResult(t *testing.T) {
	h := newHarness(t)
	cp := &fakeCopier{out: clipboard.Outcome{OK: true, Path: clipboard.PathFallback, Message: clipboard.MessageCopied}}
	h.c.copier = cp

	assert.Nil(t, h.c.CopyResult(), "copy without a result")
	assert.Empty(t, cp.texts)

	h.c.SetEmail("a@example.com")
	h.drive(h.c.Submit())
	h.c.CopyResult()

	require.Len(t, cp.texts, 1)
	assert.Equal(t, present.Format(h.c.State().Result), cp.texts[0])
	assert.Equal(t, clipboard.MessageCopied, h.c.State().Notification)
	assert.Equal(t, []string{"fallback"}, h.metrics.copies)
}

func TestCopyResult_FailureNotifies(t *testing.T) {
	h := newHarness(t)
	h.c.copier = &fakeCopier{out: clipboard.Outcome{Message: clipboard.MessageFailed}}
	h.c.SetEmail("a@example.com")
	h.drive(h.c.Submit())

	h.c.CopyResult()

	assert.Equal(t, clipboard.MessageFailed, h.c.State().Notification)
}

func TestToggles(t *testing.T) {
	h := newHarness(t)
	s := h.c.State()

	h.c.ToggleJSON()
	h.c.ToggleSuggestions()
	assert.True(t, s.ShowJSON)
	assert.True(t, s.ShowSuggestions)

	h.c.ToggleJSON()
	assert.False(t, s.ShowJSON)
	assert.True(t, s.ShowSuggestions)
}

func TestHistoryRecordedOnSuccess(t *testing.T) {
	h := newHarness(t)
	rec := &fakeRecorder{}
	h.c.history = rec
	h.checker.err = nil

	h.c.SetEmail("a@example.com")
	h.drive(h.c.Submit())
	h.checker.err = errors.New("down")
	h.c.SetEmail("b@example.com")
	h.drive(h.c.Submit())

	assert.Equal(t, []string{"a@example.com"}, rec.emails)
}

func TestInvariantsAcrossOperations(t *testing.T) {
	h := newHarness(t)
	s := h.c.State()
	ops := []func(){
		func() { h.c.SetEmail("a@example.com"); h.drive(h.c.Submit()) },
		func() { h.checker.err = errors.New("down"); h.c.SetEmail("b@example.com"); h.drive(h.c.Submit()) },
		func() { h.c.Submit() },
		func() { h.checker.err = nil; h.drive(h.c.SelectSuggestion("c@example.com")) },
		func() { h.c.ClearAll() },
		func() { h.c.ToggleJSON() },
		func() { h.c.SetEmail("d@example.com"); h.c.Submit(); h.c.ClearAll() },
	}
	for round := 0; round < 3; round++ {
		for _, op := range ops {
			op()
			assertInvariants(t, s)
		}
	}
}
