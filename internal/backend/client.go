package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/tonmoyth/landing-page-two/internal/telemetry"
)

// Client talks to the storefront's REST backend. It is constructed once in
// main and passed down; credentials are never stored on the client itself,
// they are bound per request via Bind or WithCookies.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *slog.Logger
	metrics *telemetry.Metrics
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpc = hc }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func WithMetrics(m *telemetry.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 10 * time.Second},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session is a request-scoped view of the client carrying the browser's
// backend cookies, so each visitor talks to the backend with their own
// credentials instead of a shared jar.
type Session struct {
	c       *Client
	cookies []*http.Cookie
}

// Bind copies the incoming request's cookies onto a new session.
func (c *Client) Bind(r *http.Request) *Session {
	return &Session{c: c, cookies: r.Cookies()}
}

// WithCookies builds a session from explicit cookies, e.g. ones returned by
// Login when running outside an HTTP handler.
func (c *Client) WithCookies(cookies []*http.Cookie) *Session {
	return &Session{c: c, cookies: cookies}
}

// Anonymous is a session with no credentials attached.
func (c *Client) Anonymous() *Session {
	return &Session{c: c}
}

// errorBody is the backend's uniform error/ack shape.
type errorBody struct {
	Message string `json:"message"`
}

// do issues one backend call. out may be nil for operations whose body the
// caller does not need. The returned cookies are whatever Set-Cookie headers
// the backend answered with, for relaying to the browser.
func (s *Session) do(ctx context.Context, op, method, path string, query url.Values, body, out any) ([]*http.Cookie, error) {
	u := s.c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, &RequestError{Op: op, Err: err}
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	for _, ck := range s.cookies {
		req.AddCookie(ck)
	}

	start := time.Now()
	resp, err := s.c.httpc.Do(req)
	if err != nil {
		s.c.metrics.ObserveBackend(op, "transport_error", time.Since(start))
		s.c.logger.Error("Backend request failed", "op", op, "error", err)
		return nil, &RequestError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	elapsed := time.Since(start)
	s.c.logger.Debug("Backend request",
		"op", op,
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", elapsed,
	)

	if resp.StatusCode == http.StatusUnauthorized {
		s.c.metrics.ObserveBackend(op, "unauthorized", elapsed)
		return resp.Cookies(), ErrUnauthorized
	}

	if resp.StatusCode >= 300 {
		s.c.metrics.ObserveBackend(op, "rejected", elapsed)
		var eb errorBody
		// Best effort; the status error stands on its own if the body
		// is not the usual {message} shape.
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		return resp.Cookies(), &StatusError{Op: op, StatusCode: resp.StatusCode, Message: eb.Message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			s.c.metrics.ObserveBackend(op, "malformed", elapsed)
			return resp.Cookies(), &DecodeError{Op: op, Err: err}
		}
	}

	s.c.metrics.ObserveBackend(op, "ok", elapsed)
	return resp.Cookies(), nil
}
