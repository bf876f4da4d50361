// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package checkapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the check client.
type ClientError struct {
	Type    ErrorType
	Status  int // HTTP status for ErrTypeRejected, 0 otherwise
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeNetwork
	ErrTypeRejected
	ErrTypeInvalidResponse
	ErrTypeTimeout
	ErrTypeCanceled
)

// String returns a short label used in logs and metrics.
func (t ErrorType) String() string {
	switch t {
	case ErrTypeNetwork:
		return "network"
	case ErrTypeRejected:
		return "rejected"
	case ErrTypeInvalidResponse:
		return "invalid_response"
	case ErrTypeTimeout:
		return "timeout"
	case ErrTypeCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// DefaultRejectMessage is shown when a rejection carries no message field.
const DefaultRejectMessage = "Failed to check email"

// Sentinel errors for easy checking.
var (
	ErrTimeout  = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrCanceled = &ClientError{Type: ErrTypeCanceled, Message: "request canceled"}
	ErrNoEmail  = errors.New("email is required")
)

// TypeOf returns the ErrorType of err, or ErrTypeUnknown.
func TypeOf(err error) ErrorType {
	var cerr *ClientError
	if errors.As(err, &cerr) {
		return cerr.Type
	}
	return ErrTypeUnknown
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the check client.
type ClientConfig struct {
	// BaseURL is the server root; /check/{email} is appended (default: http://127.0.0.1:8080)
	BaseURL string

	// Timeout bounds a single check including the rate-limit wait (default: 15s)
	Timeout time.Duration

	// RateLimit is the sustained number of checks per second (default: 5)
	RateLimit float64

	// RateBurst is the token bucket size (default: 5)
	RateBurst int

	// UserAgent sent with every request
	UserAgent string

	// Logger for request tracing; nil uses slog.Default()
	Logger *slog.Logger
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:   "http://127.0.0.1:8080",
		Timeout:   15 * time.Second,
		RateLimit: 5,
		RateBurst: 5,
		UserAgent: "mailcheck",
	}
}

// maxBodyBytes caps how much of a response is read.
const maxBodyBytes = 4 << 20

// =============================================================================
// CLIENT
// =============================================================================

// Client issues checks against the endpoint.
//
// The Client is safe for concurrent use.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a client, filling zero values from DefaultConfig.
func NewClient(config *ClientConfig) *Client {
	defaults := DefaultConfig()
	if config == nil {
		config = defaults
	}

	if config.BaseURL == "" {
		config.BaseURL = defaults.BaseURL
	}
	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}
	if config.RateLimit <= 0 {
		config.RateLimit = defaults.RateLimit
	}
	if config.RateBurst <= 0 {
		config.RateBurst = defaults.RateBurst
	}
	if config.UserAgent == "" {
		config.UserAgent = defaults.UserAgent
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(rate.Limit(config.RateLimit), config.RateBurst),
		logger:     logger,
	}
}

// BaseURL returns the configured server root.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// CheckURL returns the URL a check for email is sent to.
func (c *Client) CheckURL(email string) string {
	// QueryEscape mirrors the server, which decodes the segment with QueryUnescape.
	return c.config.BaseURL + "/check/" + url.QueryEscape(email)
}

// Check asks the endpoint for a verdict on email.
func (c *Client) Check(ctx context.Context, email string) (*CheckResult, error) {
	if strings.TrimSpace(email) == "" {
		return nil, ErrNoEmail
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, transportError(ctx, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.CheckURL(email), nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeNetwork, Message: "failed to create request", Cause: err}
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("check transport failure", "request_id", requestID, "error", err)
		return nil, transportError(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, transportError(ctx, err)
	}

	c.logger.Debug("check response",
		"request_id", requestID,
		"status", resp.StatusCode,
		"bytes", len(body),
		"latency_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ClientError{
			Type:    ErrTypeRejected,
			Status:  resp.StatusCode,
			Message: rejectionMessage(body),
		}
	}

	var result CheckResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return &result, nil
}

// =============================================================================
// HELPERS
// =============================================================================

// rejectionMessage extracts {"message": "..."} from a failure body.
func rejectionMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && strings.TrimSpace(payload.Message) != "" {
		return payload.Message
	}
	return DefaultRejectMessage
}

func transportError(ctx context.Context, err error) error {
	if errors.Is(err, context.Canceled) {
		return ErrCanceled
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ErrTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout
	}
	// rate.Limiter reports a wait that cannot finish before the deadline
	// as a plain error; the context is still live at that point.
	if strings.Contains(err.Error(), "would exceed context deadline") {
		return ErrTimeout
	}
	return &ClientError{Type: ErrTypeNetwork, Message: "network error", Cause: err}
}

// StatusText renders a ClientError's HTTP status for display, e.g. "429 Too Many Requests".
func StatusText(err error) string {
	var cerr *ClientError
	if !errors.As(err, &cerr) || cerr.Status == 0 {
		return ""
	}
	return strconv.Itoa(cerr.Status) + " " + http.StatusText(cerr.Status)
}
