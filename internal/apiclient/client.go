// Package apiclient is the single chokepoint for calls to the REST backend.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"hospital-inventory-dashboard/internal/obs"
	"hospital-inventory-dashboard/internal/session"
	"hospital-inventory-dashboard/pkg/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Client attaches the stored bearer token to each request and normalizes
// responses. It never retries, caches or queues.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      session.Store
	logger     zerolog.Logger
	metrics    *obs.Metrics
}

type Option func(*Client)

// WithHTTPClient replaces the default client. The default has no timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func WithMetrics(m *obs.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func New(baseURL string, store session.Store, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		store:      store,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store returns the session store the client reads tokens from
func (c *Client) Store() session.Store { return c.store }

// RequestOption adjusts an outgoing request before it is sent
type RequestOption func(*http.Request)

// WithHeader sets a header, overriding the JSON content type if needed
func WithHeader(key, value string) RequestOption {
	return func(r *http.Request) { r.Header.Set(key, value) }
}

func (c *Client) Get(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodGet, path, nil, out, opts...)
}

func (c *Client) Post(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodPost, path, body, out, opts...)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodPatch, path, body, out, opts...)
}

func (c *Client) Delete(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out, opts...)
}

// Do sends one request to baseURL+path.
//
// A 401 clears the session store and returns ErrUnauthenticated without
// reading the body. Other non-2xx responses return *APIError. A 204 leaves
// out untouched. Any other 2xx is decoded into out when out is non-nil.
func (c *Client) Do(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	for _, opt := range opts {
		opt(req)
	}

	token, err := c.store.AccessToken()
	if err != nil {
		return fmt.Errorf("read access token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.metrics.ObserveBackend(method, path, 0, elapsed)
		c.logger.Warn().Err(err).Str("method", method).Str("path", path).Msg("backend request failed")
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.metrics.ObserveBackend(method, path, resp.StatusCode, elapsed)
	evt := c.logger.Debug().
		Str("request_id", req.Header.Get("X-Request-ID")).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", elapsed)
	if token != "" {
		if claims, err := utils.ParseTokenClaims(token); err == nil && claims.UserID != nil {
			evt = evt.Uint("user_id", *claims.UserID)
		}
	}
	evt.Msg("backend request")

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if err := c.store.Clear(); err != nil {
			c.logger.Error().Err(err).Msg("failed to clear session after 401")
		}
		return &APIError{StatusCode: resp.StatusCode, Method: method, Path: path}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &APIError{StatusCode: resp.StatusCode, Method: method, Path: path}
	case resp.StatusCode == http.StatusNoContent:
		return nil
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}
