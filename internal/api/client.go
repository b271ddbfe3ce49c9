package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultTimeout    = 30 * time.Second
	defaultRetryDelay = time.Second
	maxResponseBytes  = 16 << 20
	requestIDHeader   = "X-Request-ID"
)

// Session is the token source the client authorizes with. Logout is called
// whenever the backend answers 401.
type Session interface {
	Token() string
	Logout()
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout bounds every request, whichever HTTP client is used.
// Non-positive values keep the HTTP client's own bound, or DefaultTimeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithRequestLogger(logger RequestLogger) Option {
	return func(c *Client) {
		c.requestLogger = logger
	}
}

func WithPolicies(policies Policies) Option {
	return func(c *Client) {
		if policies != nil {
			c.policies = policies
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// WithRetryDelay sets the pause between retry attempts.
func WithRetryDelay(delay time.Duration) Option {
	return func(c *Client) {
		if delay >= 0 {
			c.retryDelay = delay
		}
	}
}

// Client is the single access point to the backend API. It is safe for
// concurrent use.
type Client struct {
	baseURL       *url.URL
	httpClient    *http.Client
	session       Session
	policies      Policies
	cache         *Cache
	flight        singleflight.Group
	logger        *slog.Logger
	requestLogger RequestLogger
	retryDelay    time.Duration
	timeout       time.Duration
	now           func() time.Time

	pendingMu sync.Mutex
	pending   map[string]struct{}
}

func New(server string, sess Session, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(server)
	if trimmed == "" {
		return nil, errors.New("server address is required")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}
	if parsed.Host == "" {
		return nil, errors.New("server address must include a host name")
	}
	parsed.Path = strings.TrimSuffix(parsed.Path, "/")
	parsed.RawQuery = ""

	if sess == nil {
		sess = anonymous{}
	}
	c := &Client{
		baseURL:    parsed,
		httpClient: &http.Client{},
		session:    sess,
		policies:   DefaultPolicies(),
		logger:     slog.New(slog.DiscardHandler),
		retryDelay: defaultRetryDelay,
		now:        time.Now,
		pending:    make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	httpClient := *c.httpClient
	switch {
	case c.timeout > 0:
		httpClient.Timeout = c.timeout
	case httpClient.Timeout <= 0:
		httpClient.Timeout = DefaultTimeout
	}
	c.httpClient = &httpClient
	c.cache = NewCache(c.now)
	return c, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// ResetCache discards every cached read.
func (c *Client) ResetCache() {
	c.cache.Reset()
	c.logger.Debug("cache reset")
}

// Invalidate drops the cached reads covered by the given keys.
func (c *Client) Invalidate(keys ...Key) {
	removed := c.cache.Invalidate(keys...)
	c.logger.Debug("cache invalidated", "keys", keyStrings(keys), "removed", removed)
}

type anonymous struct{}

func (anonymous) Token() string { return "" }
func (anonymous) Logout()       {}

// query serves key from cache while fresh, otherwise fetches it once for
// all concurrent callers, retrying transient failures per the key's policy.
func query[T any](ctx context.Context, c *Client, key Key, fetch func(context.Context) (T, error)) (T, error) {
	policy := c.policies.For(key.Resource)
	if cached, ok := c.cache.Get(key, policy.StaleTime); ok {
		if value, ok := cached.(T); ok {
			c.logger.Debug("cache hit", "key", key.String())
			return value, nil
		}
	}

	generation := c.cache.Generation(key)
	flightKey := strconv.FormatUint(generation, 10) + "/" + key.String()
	result, err, _ := c.flight.Do(flightKey, func() (any, error) {
		value, err := retry(ctx, c, policy, key, func() (T, error) {
			return fetch(ctx)
		})
		if err != nil {
			return nil, err
		}
		if !c.cache.Set(generation, key, value) {
			c.logger.Debug("discarded result of invalidated read", "key", key.String())
		}
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result.(T), nil
}

func retry[T any](ctx context.Context, c *Client, policy Policy, key Key, op func() (T, error)) (T, error) {
	tries := policy.Retry + 1
	if tries < 1 {
		tries = 1
	}
	return backoff.Retry[T](ctx, func() (T, error) {
		value, err := op()
		if err != nil && !transient(ctx, err) {
			return value, backoff.Permanent(err)
		}
		return value, err
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(c.retryDelay)),
		backoff.WithMaxTries(uint(tries)),
		backoff.WithNotify(func(err error, next time.Duration) {
			c.logger.Debug("retrying request", "key", key.String(), "error", err, "after", next)
		}),
	)
}

func transient(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Transient()
}

// mutate runs fn unless a mutation with the same key is still in flight.
func mutate[T any](ctx context.Context, c *Client, key string, fn func(context.Context) (T, error)) (T, error) {
	c.pendingMu.Lock()
	if _, busy := c.pending[key]; busy {
		c.pendingMu.Unlock()
		var zero T
		return zero, ErrMutationPending
	}
	c.pending[key] = struct{}{}
	c.pendingMu.Unlock()

	defer func() {
		c.pendingMu.Lock()
		delete(c.pending, key)
		c.pendingMu.Unlock()
	}()
	return fn(ctx)
}

// Pending reports whether a mutation with the given key is in flight.
func (c *Client) Pending(key string) bool {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	_, busy := c.pending[key]
	return busy
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, resolveURL(c.baseURL, path, params), reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.logRequest(req, resp, requestID, time.Since(start))
	if err != nil {
		return newTransportError(method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return newTransportError(method, path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.session.Logout()
		c.logger.Info("session rejected by server", "method", method, "path", path)
	}
	if resp.StatusCode >= 300 {
		return newStatusError(method, path, resp.StatusCode, data)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{
			Kind:       KindServer,
			StatusCode: resp.StatusCode,
			Message:    "invalid response body",
			Method:     method,
			Path:       path,
			Err:        err,
		}
	}
	return nil
}

func (c *Client) logRequest(req *http.Request, resp *http.Response, requestID string, elapsed time.Duration) {
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	c.logger.Debug("api request",
		"method", req.Method,
		"url", req.URL.String(),
		"status", status,
		"duration", elapsed,
		"request_id", requestID,
	)
	if c.requestLogger == nil {
		return
	}
	c.requestLogger(RequestLog{
		Method:    req.Method,
		URL:       req.URL.String(),
		Headers:   cloneHeader(req.Header),
		Status:    status,
		Duration:  elapsed,
		RequestID: requestID,
	})
}

func keyStrings(keys []Key) []string {
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		out = append(out, key.String())
	}
	return out
}
