package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const DefaultTimeout = 10 * time.Second

// Executor runs one GraphQL request against a subgraph.
type Executor interface {
	Execute(ctx context.Context, subgraphID string, req Request) (*Result, error)
}

// Client posts GraphQL requests to the gateway. The API key travels in the
// URL path, so every error leaving the client has it redacted.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	timeout time.Duration
	headers map[string]string
	log     *zap.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the fixed per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers[key] = value }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		timeout: DefaultTimeout,
		headers: make(map[string]string),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the gateway URL for a subgraph.
func (c *Client) Endpoint(subgraphID string) string {
	return c.baseURL + "/" + url.PathEscape(c.apiKey) + "/subgraphs/id/" + url.PathEscape(subgraphID)
}

func (c *Client) Execute(ctx context.Context, subgraphID string, req Request) (*Result, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(subgraphID), bytes.NewReader(body))
	if err != nil {
		return nil, errors.New(c.redact(fmt.Sprintf("create request: %v", err)))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		httpReq.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, c.classify(ctx, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	duration := time.Since(start)
	if err != nil {
		return nil, c.classify(ctx, err)
	}

	c.log.Debug("gateway response",
		zap.String("subgraph", subgraphID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", duration),
		zap.Int("size", len(respBody)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       c.redact(strings.TrimSpace(string(respBody))),
		}
	}

	result := &Result{
		Body:       respBody,
		StatusCode: resp.StatusCode,
		Duration:   duration,
		Size:       len(respBody),
	}
	// Non-JSON bodies are still returned; Response just stays empty.
	_ = json.Unmarshal(respBody, &result.Response)
	return result, nil
}

func (c *Client) classify(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &TimeoutError{Timeout: c.timeout, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TimeoutError{Timeout: c.timeout, Err: err}
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("gateway request: %w", context.Canceled)
	}
	return &TransportError{Message: c.redact(err.Error()), Err: err}
}

// redact also covers the escaped form the key takes inside request URLs.
func (c *Client) redact(s string) string {
	return Redact(Redact(s, c.apiKey), url.PathEscape(c.apiKey))
}
