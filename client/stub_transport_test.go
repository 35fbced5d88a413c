package client

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/localrivet/chainrpc/transport"
)

// stubTransport answers requests through handler and lets tests emit
// transport events directly.
type stubTransport struct {
	kind    transport.Kind
	events  transport.Emitter
	handler func(ctx context.Context, req []byte) ([]byte, error)
	// offline makes IsReady report false, as before a first connect.
	offline bool

	mu           sync.Mutex
	requests     [][]byte
	disconnected bool
}

func newStub(kind transport.Kind, handler func(ctx context.Context, req []byte) ([]byte, error)) *stubTransport {
	return &stubTransport{kind: kind, handler: handler}
}

func (s *stubTransport) Kind() transport.Kind { return s.kind }

func (s *stubTransport) Connect(ctx context.Context) error { return nil }

func (s *stubTransport) IsReady() bool { return !s.offline }

func (s *stubTransport) On(e transport.Event, h transport.Handler) { s.events.On(e, h) }

func (s *stubTransport) Request(ctx context.Context, payload []byte) ([]byte, error) {
	s.mu.Lock()
	s.requests = append(s.requests, append([]byte(nil), payload...))
	s.mu.Unlock()
	return s.handler(ctx, payload)
}

func (s *stubTransport) Disconnect() error {
	s.mu.Lock()
	s.disconnected = true
	s.mu.Unlock()
	return nil
}

func (s *stubTransport) sent() []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]any, 0, len(s.requests))
	for _, r := range s.requests {
		var m map[string]any
		if json.Unmarshal(r, &m) == nil {
			out = append(out, m)
		}
	}
	return out
}

func (s *stubTransport) push(notification string) {
	s.events.Emit(transport.EventMessage, []byte(notification))
}

// fixed always returns the same reply.
func fixed(reply string) func(context.Context, []byte) ([]byte, error) {
	return func(context.Context, []byte) ([]byte, error) {
		return []byte(reply), nil
	}
}

// echo answers a single request with result, echoing its id.
func echo(result func(method string) string) func(context.Context, []byte) ([]byte, error) {
	return func(_ context.Context, req []byte) ([]byte, error) {
		var r struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		if err := json.Unmarshal(req, &r); err != nil {
			return nil, err
		}
		return []byte(`{"jsonrpc":"2.0","id":` + string(r.ID) + `,"result":` + result(r.Method) + `}`), nil
	}
}
