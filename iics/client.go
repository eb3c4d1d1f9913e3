package iics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	promote "github.com/nrislani/iics-promote/errors"
	"github.com/nrislani/iics-promote/logging"
)

// snippetLimit bounds how much of an error response body gets carried into
// error messages and logs.
const snippetLimit = 512

// Client issues authenticated calls against the IICS v2/v3 REST APIs.
type Client struct {
	session          *Session
	httpClient       *http.Client
	backoff          Backoff
	pullPollInterval time.Duration
	log              *logrus.Entry
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBackoff sets the retry policy for idempotent reads.
func WithBackoff(b Backoff) Option {
	return func(c *Client) {
		c.backoff = b
	}
}

// WithPullPollInterval sets how often source-control actions are polled.
func WithPullPollInterval(d time.Duration) Option {
	return func(c *Client) {
		c.pullPollInterval = d
	}
}

// WithLogger sets the logger.
func WithLogger(log *logrus.Entry) Option {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient creates a client bound to an authenticated session.
func NewClient(session *Session, opts ...Option) *Client {
	c := &Client{
		session:          session,
		httpClient:       &http.Client{Timeout: 60 * time.Second},
		backoff:          DefaultBackoff(),
		pullPollInterval: 10 * time.Second,
		log:              logging.NewLogger("iics"),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// checkSession enforces the invariant that every API call runs against a
// valid, unexpired session.
func (c *Client) checkSession() error {
	if !c.session.Valid() {
		return promote.ConfigInvalid("an authenticated session is required before API calls")
	}
	return nil
}

// do performs one request with the session headers attached. A non-2xx
// response comes back as a *statusError so the retry layer can tell 5xx
// from 4xx.
func (c *Client) do(ctx context.Context, method, url string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	if c.session != nil && c.session.SessionID != "" {
		// The v3 endpoints read INFA-SESSION-ID, the v2 endpoints icSessionId.
		req.Header.Set("INFA-SESSION-ID", c.session.SessionID)
		req.Header.Set("icSessionId", c.session.SessionID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &statusError{
			Status:  resp.StatusCode,
			URL:     url,
			Snippet: snippet(data),
		}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", url, err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, url string, out interface{}) error {
	return c.do(ctx, http.MethodGet, url, nil, out)
}

func (c *Client) post(ctx context.Context, url string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, url, body, out)
}

// getRetry is a GET with the idempotent-read retry policy applied.
func (c *Client) getRetry(ctx context.Context, op, url string, out interface{}) error {
	return c.withRetry(ctx, op, func() error {
		return c.get(ctx, url, out)
	})
}

func snippet(data []byte) string {
	if len(data) > snippetLimit {
		return string(data[:snippetLimit]) + "..."
	}
	return string(data)
}
