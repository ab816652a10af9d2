// Package api is the HTTP client of the gift API.
//
// Every operation performs exactly one request: there are no retries and no
// client-side timeout beyond what ctx and the supplied http.Client impose.
// Non-2xx responses become *Error values whose message comes from the
// response body's "message" field or, failing that, a per-operation fallback.
// The various envelope shapes the API uses ({"data": ...}, bare arrays,
// {"themes": [...]}) are normalized here and never reach callers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrijs2005/giftshop/internal/logging"
	"github.com/google/uuid"
)

// RequestIDHeader carries a fresh UUID on every request.
const RequestIDHeader = "X-Request-ID"

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     logging.Logger
	newID      func() string
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New returns a client for the API rooted at baseURL, e.g. "http://127.0.0.1:8080".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("invalid API base URL %q: want http(s)://host[:port]", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: http.DefaultClient,
		logger:     logging.Nop(),
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// request describes one round trip.
type request struct {
	op       string
	method   string
	path     string
	query    url.Values
	body     any
	token    string
	fallback string
	// notFound overrides the sentinel and message used for a 404.
	notFound    error
	notFoundMsg string
}

// do performs r and returns the raw 2xx body.
func (c *Client) do(ctx context.Context, r request) (json.RawMessage, error) {
	u := c.baseURL.JoinPath(r.path)
	if len(r.query) > 0 {
		u.RawQuery = r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("%s: encode request: %w", r.op, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", r.op, err)
	}
	reqID := c.newID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn(ctx, "api request failed", "op", r.op, "path", u.Path, "request_id", reqID, "error", err)
		return nil, &Error{Op: r.op, Message: MsgNetwork, kind: ErrNetwork, cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Op: r.op, Message: MsgNetwork, kind: ErrNetwork, cause: err}
	}

	c.logger.Debug(ctx, "api request",
		"op", r.op,
		"method", r.method,
		"path", u.Path,
		"status", resp.StatusCode,
		"request_id", reqID,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := NewError(r.op, resp.StatusCode, messageFrom(raw, r.fallback), nil)
		if resp.StatusCode == http.StatusNotFound && r.notFound != nil {
			apiErr = NewError(r.op, resp.StatusCode, r.notFoundMsg, r.notFound)
		}
		c.logger.Warn(ctx, "api error response", "op", r.op, "status", resp.StatusCode, "request_id", reqID,
			"message", apiErr.Message)
		return nil, apiErr
	}

	return raw, nil
}

// decodeErr wraps a 2xx body that does not have the expected shape.
func decodeErr(op string, status int, fallback string, err error) error {
	return &Error{Op: op, Message: fallback, Status: status, kind: ErrDecode, cause: err}
}

func messageFrom(raw []byte, fallback string) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return fallback
}
