// Package client wraps the scheduling backend's REST API. All calls share one
// HTTP client and attach the caller's bearer token from the request context.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrNoToken is returned by calls that refuse to run unauthenticated.
var ErrNoToken = errors.New("no authentication token found")

// APIError carries a non-2xx backend response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// StatusOf returns the HTTP status behind err, or 0 when err is not an APIError.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

type tokenKey struct{}

// WithToken returns a context whose outgoing calls carry the bearer token.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func tokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type call struct {
	method       string
	path         string
	query        url.Values
	body         any
	requireToken bool
}

// do executes one request and returns the raw response body. There is no
// retry; the caller decides how to surface a failure.
func (c *Client) do(ctx context.Context, rc call) ([]byte, error) {
	token := tokenFrom(ctx)
	if rc.requireToken && token == "" {
		return nil, ErrNoToken
	}

	target := c.baseURL + rc.path
	if len(rc.query) > 0 {
		target += "?" + rc.query.Encode()
	}

	var reader io.Reader
	if rc.body != nil {
		payload, err := json.Marshal(rc.body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", rc.method, rc.path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, rc.method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", rc.method, rc.path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", rc.method).Str("path", rc.path).Msg("backend call failed")
		return nil, fmt.Errorf("%s %s: %w", rc.method, rc.path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s: %w", rc.method, rc.path, err)
	}

	c.log.Debug().
		Str("method", rc.method).
		Str("path", rc.path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("backend call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Message: errorMessage(resp, body)}
	}
	return body, nil
}

func errorMessage(resp *http.Response, body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return http.StatusText(resp.StatusCode)
}

// decodeEntity accepts both the {success, data} envelope and a bare document so
// the backend's inconsistency does not leak to callers.
func decodeEntity[T any](body []byte) (T, error) {
	var out T
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &envelope); err == nil {
			if data, ok := envelope["data"]; ok && !bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
				if err := json.Unmarshal(data, &out); err != nil {
					return out, fmt.Errorf("decode envelope data: %w", err)
				}
				return out, nil
			}
		}
	}
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return out, fmt.Errorf("decode response: %w", err)
	}
	return out, nil
}

// params builds a query string, dropping unset values instead of sending them
// as empty strings.
type params url.Values

func (p params) str(key, value string) params {
	if value = strings.TrimSpace(value); value != "" {
		url.Values(p).Set(key, value)
	}
	return p
}

func (p params) num(key string, value int) params {
	if value > 0 {
		url.Values(p).Set(key, fmt.Sprint(value))
	}
	return p
}

func (p params) values() url.Values {
	return url.Values(p)
}
