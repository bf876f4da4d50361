// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package telemetry counts checks and copies for the session and can expose
// them to Prometheus on a local listener.
package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Label value for responses dropped because a newer request superseded them.
const OutcomeStale = "stale"

// Metrics records check and copy outcomes. The zero value is not usable;
// call New.
//
// Metrics is safe for concurrent use.
type Metrics struct {
	reg *prometheus.Registry

	checksStarted prometheus.Counter
	checksTotal   *prometheus.CounterVec
	checkDuration *prometheus.HistogramVec
	inFlight      prometheus.Gauge
	copiesTotal   *prometheus.CounterVec

	mu      sync.Mutex
	session SessionStats
}

// SessionStats summarises the current process.
type SessionStats struct {
	Checks    int
	Failures  int
	Discarded int
	Copies    int
	TotalTime time.Duration
}

// AverageTime returns the mean latency of finished checks.
func (s SessionStats) AverageTime() time.Duration {
	if s.Checks == 0 {
		return 0
	}
	return s.TotalTime / time.Duration(s.Checks)
}

// New creates Metrics on a private registry.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		checksStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mailcheck_checks_started_total",
			Help: "Checks submitted",
		}),
		checksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mailcheck_checks_total",
			Help: "Finished checks by outcome",
		}, []string{"outcome"}),
		checkDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mailcheck_check_duration_seconds",
			Help:    "Check latency as seen by the client",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		}, []string{"outcome"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mailcheck_checks_in_flight",
			Help: "Checks awaiting a response",
		}),
		copiesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mailcheck_copies_total",
			Help: "Clipboard exports by path and result",
		}, []string{"path", "result"}),
	}
	m.reg.MustRegister(m.checksStarted, m.checksTotal, m.checkDuration, m.inFlight, m.copiesTotal)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// CheckStarted counts a submitted check.
func (m *Metrics) CheckStarted() {
	m.checksStarted.Inc()
	m.inFlight.Inc()
}

// CheckFinished counts a check that reached the widget.
func (m *Metrics) CheckFinished(outcome string, elapsed time.Duration) {
	m.inFlight.Dec()
	m.checksTotal.WithLabelValues(outcome).Inc()
	m.checkDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())

	m.mu.Lock()
	defer m.mu.Unlock()
	m.session.Checks++
	m.session.TotalTime += elapsed
	if outcome != "success" {
		m.session.Failures++
	}
}

// CheckDiscarded counts a response dropped as stale.
func (m *Metrics) CheckDiscarded() {
	m.inFlight.Dec()
	m.checksTotal.WithLabelValues(OutcomeStale).Inc()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.session.Discarded++
}

// CopyFinished counts a clipboard export.
func (m *Metrics) CopyFinished(path string, ok bool) {
	result := "ok"
	if !ok {
		result = "failed"
	}
	m.copiesTotal.WithLabelValues(path, result).Inc()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.session.Copies++
}

// Session returns a copy of the session counters.
func (m *Metrics) Session() SessionStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// =============================================================================
// LISTENER
// =============================================================================

// Server is the optional /metrics listener.
type Server struct {
	srv    *http.Server
	ln     net.Listener
	logger *slog.Logger
}

// Listen binds addr and serves /metrics in the background.
func (m *Metrics) Listen(addr string, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	s := &Server{
		srv:    &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		ln:     ln,
		logger: logger,
	}
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics listener stopped", "error", err)
		}
	}()
	logger.Info("metrics listening", "addr", ln.Addr().String())
	return s, nil
}

// Addr returns the bound address.
func (s *Server) Addr() string { return s.ln.Addr().String() }

// Shutdown stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
