// Package client is the single gateway to the traceability backend.
//
// Every call goes through Client.Request, which injects the bearer token,
// speaks JSON in both directions and normalizes failures into *APIError or
// *TransportError. A failed call is reported twice: the error is returned to
// the caller and an error notification is handed to the Notifier, so call
// sites without their own error UI still give the operator feedback.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mfgtrace/tracectl/pkg/domain"
)

// maxBodySize bounds how much of a response body is read.
const maxBodySize = 16 << 20

// Notifier receives the user-facing side of a failed call.
type Notifier interface {
	Notify(title, message string, severity domain.Severity)
}

// TokenSource yields the current access token, or "" when logged out.
// It is consulted on every request.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed TokenSource.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

type nopNotifier struct{}

func (nopNotifier) Notify(string, string, domain.Severity) {}

// Client is the traceability API client.
type Client struct {
	baseURL    string
	tokens     TokenSource
	notifier   Notifier
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a new API client. baseURL is the origin plus API base path
// (e.g. "http://localhost:5000/api"). tokens and notifier may be nil.
//
// The HTTP client has no timeout: a call lasts until the server answers or
// the caller's context ends.
func New(baseURL string, tokens TokenSource, notifier Notifier, opts ...Option) *Client {
	if tokens == nil {
		tokens = StaticToken("")
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	c := &Client{
		baseURL:    baseURL,
		tokens:     tokens,
		notifier:   notifier,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request issues method against baseURL+endpoint and returns the raw JSON
// body of a 2xx response. An empty method means GET. body is serialized
// only for POST and PUT; it is ignored for every other method.
//
// On failure the returned error is an *APIError (non-2xx status) or a
// *TransportError, and exactly one error notification has been sent.
func (c *Client) Request(ctx context.Context, endpoint, method string, body any) (json.RawMessage, error) {
	if method == "" {
		method = http.MethodGet
	}
	raw, err := c.do(ctx, endpoint, method, body)
	if err != nil {
		ev := log.Error().Err(err).Str("method", method).Str("endpoint", endpoint)
		if apiErr, ok := err.(*APIError); ok {
			ev = ev.Int("status", apiErr.StatusCode)
		}
		ev.Msg("api request failed")
		c.notifier.Notify("错误", err.Error(), domain.SeverityError)
		return nil, err
	}
	return raw, nil
}

func (c *Client) do(ctx context.Context, endpoint, method string, body any) (json.RawMessage, error) {
	var reqBody io.Reader
	if body != nil && (method == http.MethodPost || method == http.MethodPut) {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &TransportError{Message: msgRequestFailed, Err: fmt.Errorf("marshal body: %w", err)}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return nil, &TransportError{Message: msgRequestFailed, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log.Debug().Str("method", method).Str("url", req.URL.String()).Msg("api request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Message: msgRequestFailed, Err: fmt.Errorf("do request: %w", err)}
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Message string `json:"message"`
		}
		if readErr == nil && json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			return nil, &APIError{StatusCode: resp.StatusCode, Message: apiErr.Message}
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: statusMessage(resp.StatusCode)}
	}

	if readErr != nil {
		return nil, &TransportError{Message: msgRequestFailed, Err: fmt.Errorf("read body: %w", readErr)}
	}
	if !json.Valid(respBody) {
		return nil, &TransportError{Message: msgBadResponse, Err: fmt.Errorf("decode response: invalid JSON (%d bytes)", len(respBody))}
	}
	return json.RawMessage(respBody), nil
}

// call runs Request and decodes a successful body into out.
func (c *Client) call(ctx context.Context, endpoint, method string, body, out any) error {
	raw, err := c.Request(ctx, endpoint, method, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	return c.call(ctx, endpoint, http.MethodGet, nil, out)
}

func (c *Client) post(ctx context.Context, endpoint string, body, out any) error {
	return c.call(ctx, endpoint, http.MethodPost, body, out)
}
