// Package http provides the HTTP implementation of the chainrpc transport.
//
// Every request is an independent POST carrying a JSON-RPC object or batch
// array. The transport is connectionless: it is always ready, never emits
// events, and cannot carry subscriptions.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/localrivet/chainrpc/auth"
	"github.com/localrivet/chainrpc/logx"
	"github.com/localrivet/chainrpc/protocol"
	"github.com/localrivet/chainrpc/transport"
)

// DefaultTimeout is the timeout of the default HTTP client.
const DefaultTimeout = 30 * time.Second

// maxErrorBody bounds how much of a failed reply is kept in the error.
const maxErrorBody = 512

// StatusError is returned for non-2xx replies.
type StatusError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http status %d", e.StatusCode)
	}
	return fmt.Sprintf("http status %d: %s", e.StatusCode, e.Body)
}

// Transport implements transport.Transport over HTTP POST.
type Transport struct {
	endpoint string
	client   *http.Client
	headers  map[string]string
	auth     auth.Provider
	logger   *slog.Logger
}

// Option configures a Transport.
type Option func(*Transport)

// WithClient sets the HTTP client used for requests.
func WithClient(client *http.Client) Option {
	return func(t *Transport) {
		if client != nil {
			t.client = client
		}
	}
}

// WithHeaders adds static headers to every request.
func WithHeaders(headers map[string]string) Option {
	return func(t *Transport) {
		for k, v := range headers {
			t.headers[k] = v
		}
	}
}

// WithAuth sets the auth provider consulted before every request.
func WithAuth(p auth.Provider) Option {
	return func(t *Transport) {
		t.auth = p
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Transport) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// Ensure Transport implements transport.Transport
var _ transport.Transport = (*Transport)(nil)

// New creates an HTTP transport for the endpoint.
func New(endpoint string, options ...Option) *Transport {
	t := &Transport{
		endpoint: endpoint,
		client:   &http.Client{Timeout: DefaultTimeout},
		headers:  make(map[string]string),
		logger:   logx.Discard(),
	}
	for _, option := range options {
		option(t)
	}
	t.logger = t.logger.With("transport", "http", "endpoint", endpoint)
	return t
}

// Kind implements transport.Transport.
func (t *Transport) Kind() transport.Kind {
	return transport.KindHTTP
}

// Connect implements transport.Transport. HTTP needs no connection.
func (t *Transport) Connect(ctx context.Context) error {
	return nil
}

// IsReady implements transport.Transport.
func (t *Transport) IsReady() bool {
	return true
}

// On implements transport.Transport. HTTP emits no events.
func (t *Transport) On(event transport.Event, handler transport.Handler) {}

// Disconnect implements transport.Transport.
func (t *Transport) Disconnect() error {
	t.client.CloseIdleConnections()
	return nil
}

// Request implements transport.Transport.
func (t *Transport) Request(ctx context.Context, payload []byte) ([]byte, error) {
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil, transport.ErrEmptyPayload
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}
	if err := auth.Apply(t.auth, req.Header); err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("failed to send request to %s: %w", t.endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	t.logger.Debug("Request completed",
		"status", resp.StatusCode,
		"bytes", len(body),
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// providers often answer 429 and 5xx with a JSON-RPC error
		if isRPCReply(body) {
			return body, nil
		}
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(body))}
	}
	return body, nil
}

// isRPCReply reports whether body is a JSON-RPC error reply or a batch of
// replies.
func isRPCReply(body []byte) bool {
	if protocol.IsBatch(body) {
		var replies []protocol.Response
		return json.Unmarshal(body, &replies) == nil && len(replies) > 0
	}
	var res protocol.Response
	return json.Unmarshal(body, &res) == nil && res.HasError()
}
