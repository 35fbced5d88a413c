// Package client implements the chainrpc session: it selects a transport
// for an endpoint, stamps requests with ids, correlates single and batch
// replies, applies result formatters and routes subscription notifications.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/localrivet/chainrpc/logx"
	"github.com/localrivet/chainrpc/payload"
	"github.com/localrivet/chainrpc/protocol"
	"github.com/localrivet/chainrpc/transport"
)

// Session owns one transport. It is safe for concurrent use.
type Session struct {
	transport        transport.Transport
	ids              *Sequencer
	subs             *registry
	logger           *slog.Logger
	requestTimeout   time.Duration
	transportOptions []TransportOption

	// connected is set once the transport has been up; connects after
	// that are reconnects and replay subscriptions.
	connected atomic.Bool

	pushMu   sync.Mutex
	inflight int
	held     []heldPush
}

// heldPush is a notification for an id that no subscription carries yet,
// kept while a subscribe request is in flight.
type heldPush struct {
	id     string
	result json.RawMessage
}

// maxHeldPushes bounds the notifications kept while subscribes are in
// flight.
const maxHeldPushes = 1024

// New selects a transport for endpoint and, for WebSocket and IPC
// endpoints, opens the connection before returning.
func New(ctx context.Context, endpoint string, opts ...Option) (*Session, error) {
	s := newSession(opts)

	topts := append([]TransportOption{WithTransportLogger(s.logger)}, s.transportOptions...)
	t, err := NewTransport(endpoint, topts...)
	if err != nil {
		return nil, err
	}
	s.attach(t)

	if t.Kind() != transport.KindHTTP {
		if err := t.Connect(ctx); err != nil {
			_ = t.Disconnect()
			return nil, err
		}
	}
	return s, nil
}

// NewWithTransport creates a session over an existing transport. The
// transport is not connected by the session.
func NewWithTransport(t transport.Transport, opts ...Option) *Session {
	s := newSession(opts)
	s.attach(t)
	return s
}

func newSession(opts []Option) *Session {
	s := &Session{
		ids:            NewSequencer(MaxSafeInteger),
		subs:           newRegistry(),
		logger:         logx.Discard(),
		requestTimeout: DefaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) attach(t transport.Transport) {
	s.transport = t
	s.connected.Store(t.IsReady())
	t.On(transport.EventMessage, s.dispatch)
	t.On(transport.EventConnect, func([]byte) {
		if !s.connected.Swap(true) {
			return
		}
		// The connect event is emitted from the transport's own goroutine;
		// resubscribing needs that goroutine free to read replies.
		go s.resubscribe()
	})
}

// Transport returns the underlying transport.
func (s *Session) Transport() transport.Transport {
	return s.transport
}

// Send issues one request and returns its formatted result. A reply that
// carries an error member fails with *RPCError even if it also carries a
// result.
func (s *Session) Send(ctx context.Context, p payload.Payload) (any, error) {
	res, err := s.request(ctx, p)
	if err != nil {
		return nil, err
	}
	return unwrap(p, res)
}

// SendMethod is Send for a method and params without a formatter.
func (s *Session) SendMethod(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	v, err := s.Send(ctx, payload.Build(method, params, nil))
	if err != nil {
		return nil, err
	}
	return v.(json.RawMessage), nil
}

// Call sends p and asserts the formatted result to T.
func Call[T any](ctx context.Context, s *Session, p payload.Payload) (T, error) {
	var zero T
	v, err := s.Send(ctx, p)
	if err != nil {
		return zero, err
	}
	return assertResult[T](p.Method, v)
}

func assertResult[T any](method string, v any) (T, error) {
	var zero T
	if v == nil {
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s formatted to %T, not %T", ErrInvalidResponse, method, v, zero)
	}
	return t, nil
}

func (s *Session) request(ctx context.Context, p payload.Payload) (*protocol.Response, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	env := s.CreateEnvelope(p)
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s request: %w", p.Method, err)
	}

	s.logger.Debug("Sending request", "method", p.Method, "id", env.ID)
	raw, err := s.transport.Request(ctx, data)
	if err != nil {
		return nil, err
	}

	var res protocol.Response
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidResponse, p.Method, err)
	}
	return &res, nil
}

// unwrap raises the reply's error or formats its result.
func unwrap(p payload.Payload, res *protocol.Response) (any, error) {
	if res.HasError() {
		return nil, &RPCError{
			Method:  p.Method,
			Code:    res.Error.Code,
			Message: res.Error.Message,
			Data:    res.Error.Data,
		}
	}
	v, err := p.Apply(res.Result)
	if err != nil {
		return nil, fmt.Errorf("failed to format %s result: %w", p.Method, err)
	}
	return v, nil
}

func (s *Session) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok || s.requestTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.requestTimeout)
}

// Subscribe sends p, whose result is the subscription id, and routes every
// notification tagged with that id to cb. With autoResubscribe the payload
// is sent again each time the transport reconnects and the subscription
// follows the new id.
func (s *Session) Subscribe(ctx context.Context, p payload.Payload, autoResubscribe bool, cb Callback) (*Subscription, error) {
	if s.transport.Kind() == transport.KindHTTP {
		return nil, ErrNotSubscribable
	}

	s.beginSubscribe()
	res, err := s.request(ctx, p)
	if err == nil {
		_, err = unwrap(p, res)
	}
	if err == nil && protocol.IDKey(res.Result) == "" {
		err = fmt.Errorf("%w: %s returned no subscription id", ErrInvalidResponse, p.Method)
	}
	if err != nil {
		s.endSubscribe("", nil, nil)
		return nil, err
	}

	sub := &Subscription{
		session:         s,
		handle:          newHandle(),
		payload:         p,
		autoResubscribe: autoResubscribe,
		callback:        cb,
	}
	sub.setID(res.Result)
	s.endSubscribe(sub.ID(), sub, func() {
		if sub.live() {
			s.subs.add(sub)
		}
	})

	s.logger.Debug("Subscribed", "method", p.Method, "id", sub.ID(), "handle", sub.handle)
	return sub, nil
}

// SubscribeMethod is Subscribe for a method and params.
func (s *Session) SubscribeMethod(ctx context.Context, method string, params []any, autoResubscribe bool, cb Callback) (*Subscription, error) {
	return s.Subscribe(ctx, payload.Build(method, params, nil), autoResubscribe, cb)
}

// Subscriptions reports the number of attached subscriptions.
func (s *Session) Subscriptions() int {
	return s.subs.len()
}

// dispatch routes a server push to the subscription it is tagged with.
func (s *Session) dispatch(data []byte) {
	var n protocol.Notification
	if err := json.Unmarshal(data, &n); err != nil {
		s.logger.Debug("Ignoring unparseable push", "error", err)
		return
	}
	var params protocol.SubscriptionParams
	if err := json.Unmarshal(n.Params, &params); err != nil {
		s.logger.Debug("Ignoring push without subscription params", "method", n.Method)
		return
	}
	id := protocol.IDKey(params.Subscription)
	if id == "" {
		s.logger.Debug("Ignoring push", "method", n.Method)
		return
	}

	s.pushMu.Lock()
	sub, ok := s.subs.lookup(id)
	if !ok {
		if s.inflight > 0 && len(s.held) < maxHeldPushes {
			s.held = append(s.held, heldPush{id: id, result: params.Result})
			s.pushMu.Unlock()
			return
		}
		s.pushMu.Unlock()
		if protocol.IsSubscriptionNotification(n.Method) {
			s.logger.Debug("No subscription for notification", "method", n.Method, "id", id)
		} else {
			s.logger.Debug("Ignoring push", "method", n.Method, "id", id)
		}
		return
	}
	s.pushMu.Unlock()
	sub.deliver(params.Result, id)
}

// beginSubscribe marks a subscribe request in flight. Until it ends,
// pushes for unknown ids are held instead of dropped.
func (s *Session) beginSubscribe() {
	s.pushMu.Lock()
	s.inflight++
	s.pushMu.Unlock()
}

// endSubscribe delivers the held pushes for id to sub in arrival order,
// then runs register and ends the in-flight request. Pushes for id that
// arrive while held ones are being delivered are held too, so none
// overtakes another. An empty id ends a failed request.
func (s *Session) endSubscribe(id string, sub *Subscription, register func()) {
	live := true
	for {
		s.pushMu.Lock()
		var ready []heldPush
		if id != "" && live {
			ready = s.takeHeld(id)
		}
		if len(ready) == 0 {
			if register != nil {
				register()
			}
			s.inflight--
			if s.inflight == 0 {
				if n := len(s.held); n > 0 {
					s.logger.Debug("Dropping notifications for unknown subscriptions", "count", n)
				}
				s.held = nil
			}
			s.pushMu.Unlock()
			return
		}
		s.pushMu.Unlock()
		for _, p := range ready {
			sub.deliver(p.result, p.id)
		}
		live = sub.live()
	}
}

// takeHeld removes and returns the held pushes for id. pushMu is held.
func (s *Session) takeHeld(id string) []heldPush {
	var out []heldPush
	keep := s.held[:0]
	for _, p := range s.held {
		if p.id == id {
			out = append(out, p)
		} else {
			keep = append(keep, p)
		}
	}
	s.held = keep
	return out
}

func (s *Session) resubscribe() {
	for _, sub := range s.subs.resubscribable() {
		s.beginSubscribe()
		ctx, cancel := s.withTimeout(context.Background())
		res, err := s.request(ctx, sub.payload)
		cancel()
		if err == nil {
			_, err = unwrap(sub.payload, res)
		}
		if err == nil && protocol.IDKey(res.Result) == "" {
			err = fmt.Errorf("%w: %s returned no subscription id", ErrInvalidResponse, sub.payload.Method)
		}
		if err != nil {
			s.endSubscribe("", nil, nil)
			s.logger.Warn("Resubscribe failed", "method", sub.payload.Method, "handle", sub.handle, "error", err)
			continue
		}

		old := sub.ID()
		rebound := false
		s.endSubscribe(protocol.IDKey(res.Result), sub, func() {
			rebound = s.subs.rebind(sub.handle, res.Result)
		})
		if !rebound {
			// closed while the request was in flight
			continue
		}
		s.logger.Info("Resubscribed", "method", sub.payload.Method, "old_id", old, "id", sub.ID())
	}
}

// Close detaches every subscription and disconnects the transport.
func (s *Session) Close() error {
	s.subs.clear()
	return s.transport.Disconnect()
}
