// Package client sends notifications to a running notification endpoint.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL       = "http://localhost:5020"
	DefaultMaxTries      = 3
	DefaultInitialDelay  = 200 * time.Millisecond
	DefaultBackoffFactor = 2.0

	sendPath = "/send"
)

var (
	ErrInvalidSettings   = errors.New("invalid settings")
	ErrMaxRetries        = errors.New("max tries exceeded")
	ErrUnexpectedStatus  = errors.New("unexpected status")
	errNotificationRetry = errors.New("retryable failure")
)

// Notification is the set of optional fields understood by the endpoint.
type Notification struct {
	ID      string
	Title   string
	Message string
	Type    string
}

func (n Notification) query() url.Values {
	q := url.Values{}
	q.Set("id", n.ID)
	q.Set("title", n.Title)
	q.Set("message", n.Message)
	q.Set("type", n.Type)
	return q
}

// Option configures a [Client].
type Option func(c *Client) error

// WithHTTPClient overrides [http.DefaultClient].
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) error {
		if client == nil {
			return fmt.Errorf("%w: nil http client", ErrInvalidSettings)
		}
		c.http = client
		return nil
	}
}

// WithRetry sets how many times a send is attempted, the delay before the first retry, and the factor applied to the delay after each retry.
func WithRetry(maxTries int, initialDelay time.Duration, backoffFactor float64) Option {
	return func(c *Client) error {
		if maxTries < 1 {
			return fmt.Errorf("%w: max tries should be >= 1", ErrInvalidSettings)
		}
		if initialDelay < 0 {
			return fmt.Errorf("%w: initial delay should be >= 0", ErrInvalidSettings)
		}
		if backoffFactor < 1 {
			return fmt.Errorf("%w: backoff factor should be >= 1", ErrInvalidSettings)
		}
		c.maxTries = maxTries
		c.delay = initialDelay
		c.backoff = backoffFactor
		return nil
	}
}

// Client sends notifications to the endpoint at a base URL.
type Client struct {
	base     *url.URL
	http     *http.Client
	maxTries int
	delay    time.Duration
	backoff  float64
}

// New creates a [Client] for the endpoint at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if len(strings.TrimSpace(baseURL)) == 0 {
		baseURL = DefaultBaseURL
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("%w: base URL '%s' must use http or https", ErrInvalidSettings, baseURL)
	}
	c := &Client{
		base:     base,
		http:     http.DefaultClient,
		maxTries: DefaultMaxTries,
		delay:    DefaultInitialDelay,
		backoff:  DefaultBackoffFactor,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// SendURL returns the full URL that n will be sent to.
func (c *Client) SendURL(n Notification) string {
	u := c.base.JoinPath(sendPath)
	u.RawQuery = n.query().Encode()
	return u.String()
}

// Send delivers n to the endpoint.
// Transport errors and 5xx responses are retried with backoff, other non-200 responses fail immediately.
func (c *Client) Send(ctx context.Context, n Notification) error {
	if ctx == nil {
		ctx = context.Background()
	}
	target := c.SendURL(n)
	return c.retry(ctx, func() error {
		return c.send(ctx, target)
	})
}

func (c *Client) send(ctx context.Context, target string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", errNotificationRetry, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: %w %d", errNotificationRetry, ErrUnexpectedStatus, resp.StatusCode)
	default:
		return fmt.Errorf("%w %d", ErrUnexpectedStatus, resp.StatusCode)
	}
}
