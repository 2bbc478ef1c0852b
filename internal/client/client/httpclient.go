package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/coursehub/internal/client/models"
	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/dmitrijs2005/coursehub/internal/logging"
	"github.com/google/uuid"
)

const maxResponseBody = 1 << 20

// TokenSource yields the current bearer credential, "" when there is none.
type TokenSource interface {
	Token() string
}

type HTTPClient struct {
	baseURL   string
	http      *http.Client
	tokens    TokenSource
	log       logging.Logger
	userAgent string
	requestID func() string
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.http = c }
}

// WithTimeout sets the transport timeout of the default *http.Client.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTPClient) { h.http.Timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(h *HTTPClient) { h.log = l }
}

func WithUserAgent(ua string) Option {
	return func(h *HTTPClient) { h.userAgent = ua }
}

// NewHTTPClient builds a client for the backend at baseURL.
func NewHTTPClient(baseURL string, tokens TokenSource, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse server url: unsupported scheme %q", u.Scheme)
	}

	c := &HTTPClient{
		baseURL:   strings.TrimRight(u.String(), "/"),
		http:      &http.Client{},
		tokens:    tokens,
		log:       logging.Nop(),
		userAgent: "coursehub-client",
		requestID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Do sends one request. in is JSON-encoded when non-nil; a 2xx body is
// decoded into out when out is non-nil and the body is not empty.
func (c *HTTPClient) Do(ctx context.Context, method, path string, in, out any) error {
	requestID := c.requestID()

	var reqBody []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		reqBody = b
	}

	apiErr := func(status int, msg string, raw []byte, cause error) *APIError {
		return &APIError{
			Method:      method,
			Path:        path,
			Status:      status,
			Message:     msg,
			RawBody:     raw,
			RequestBody: reqBody,
			RequestID:   requestID,
			cause:       cause,
		}
	}

	var body io.Reader
	if reqBody != nil {
		body = bytes.NewReader(reqBody)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return apiErr(0, ErrUnavailable.Error(), nil, err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return apiErr(0, ErrUnavailable.Error(), nil, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return apiErr(0, ErrUnavailable.Error(), nil, err)
	}

	c.log.Debug(ctx, "request", "method", method, "path", path, "status", resp.StatusCode,
		"request_id", requestID, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiErr(resp.StatusCode, failureMessage(resp.StatusCode, raw), raw, nil)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apiErr(resp.StatusCode, "invalid response body", raw, err)
	}
	return nil
}

// failureMessage takes {message} from the body, else the status text.
func failureMessage(status int, raw []byte) string {
	var m models.MessageResponse
	if err := json.Unmarshal(raw, &m); err == nil && strings.TrimSpace(m.Message) != "" {
		return m.Message
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("status %d", status)
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}
