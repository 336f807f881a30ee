// Package api provides an HTTP client for the HelpDesk-AI REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TokenSource supplies the bearer token attached to authenticated requests.
// An empty token means no Authorization header is sent.
type TokenSource interface {
	Token() string
}

// Client is an HTTP client for the HelpDesk-AI REST API. All auth,
// document, and chat wrappers share it. It is stateless apart from the
// configured transport: each method is one request, no retries, no caching.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenSource
	onUnauthorized func()
	logger         *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTokenSource sets the source of the bearer token. Every request
// outside /auth/login and /auth/register carries it when present.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// WithUnauthorizedHandler registers a callback invoked when an
// authenticated request comes back 401, so the session can be torn down in
// one place instead of per call site.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for the API at baseURL.
// If baseURL is empty, uses the HELPDESK_API_URL env var or defaults to
// localhost:8080. Timeout can be configured via HELPDESK_CLIENT_TIMEOUT.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = os.Getenv("HELPDESK_API_URL")
	}
	if baseURL == "" {
		baseURL = "http://localhost:8080/api"
	}

	timeout := 2 * time.Minute // chat answers can take a while
	if t := os.Getenv("HELPDESK_CLIENT_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			timeout = d
		}
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the configured API origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// authPath reports whether path is a credential exchange, which never
// carries a bearer token and never tears down the session on 401.
func authPath(path string) bool {
	return path == "/auth/login" || path == "/auth/register"
}

// do performs one request against the API and decodes the JSON response
// into result when non-nil. Non-2xx responses come back as *Error,
// untranslated; transport failures are surfaced as-is.
func (c *Client) do(ctx context.Context, method, path string, payload, result any) error {
	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, path, result)
}

// send finishes headers, executes the request, and decodes the response.
// Multipart requests build their own *http.Request and enter here.
func (c *Client) send(req *http.Request, path string, result any) error {
	req.Header.Set("Accept", "application/json")

	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)

	if c.tokens != nil && !authPath(path) {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("request failed",
			"method", req.Method,
			"path", path,
			"request_id", requestID,
			"error", err,
		)
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("request completed",
		"method", req.Method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
		"request_id", requestID,
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusUnauthorized && !authPath(path) && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return parseError(resp.StatusCode, body)
	}

	if result != nil && len(body) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}
