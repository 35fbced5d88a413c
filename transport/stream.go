package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/localrivet/chainrpc/logx"
	"github.com/localrivet/chainrpc/protocol"
)

// Conn is a framed, message oriented connection. ReadMessage is only ever
// called from one goroutine; WriteMessage calls are serialised by Stream.
type Conn interface {
	ReadMessage() ([]byte, error)
	WriteMessage(data []byte) error
	Close() error
}

// Pinger is implemented by connections that support keepalive probes.
type Pinger interface {
	Ping() error
}

// DialFunc opens a new connection.
type DialFunc func(ctx context.Context) (Conn, error)

// StreamConfig configures a Stream.
type StreamConfig struct {
	Kind        Kind
	Endpoint    string
	Dial        DialFunc
	Reconnect   ReconnectPolicy
	DialTimeout time.Duration
	// KeepAlive is the ping interval; zero disables pings.
	KeepAlive time.Duration
	Logger    *slog.Logger
	// NotifyBuffer bounds the queue of server pushes waiting for handlers.
	NotifyBuffer int
}

type reply struct {
	data []byte
	err  error
}

// call is one outstanding request. It is indexed under every id it
// carries and answered at most once.
type call struct {
	ch    chan reply
	ids   []string
	batch bool
	seq   uint64
	done  bool
}

// Stream implements Transport on top of any duplex Conn. Replies are matched
// to requests by id, so they may arrive in any order. A batch reply goes to
// the batch that carries any of its ids, and an id-less reply that is not a
// notification goes to the oldest outstanding batch, so partial or
// malformed batch replies still resolve. Notifications are emitted as
// EventMessage from a single dispatch goroutine, in arrival order.
type Stream struct {
	cfg     StreamConfig
	backoff BackoffStrategy
	logger  *slog.Logger
	events  Emitter

	mu           sync.Mutex
	conn         Conn
	connecting   bool
	reconnecting bool
	closed       bool
	ready        chan struct{} // closed while conn != nil
	pending      map[string]*call
	seq          uint64

	writeMu sync.Mutex
	notify  chan []byte

	ctx    context.Context
	cancel context.CancelFunc
}

// Ensure Stream implements Transport
var _ Transport = (*Stream)(nil)

// NewStream creates a stream. No connection is made until Connect.
func NewStream(cfg StreamConfig) *Stream {
	logger := cfg.Logger
	if logger == nil {
		logger = logx.Discard()
	}
	if cfg.NotifyBuffer <= 0 {
		cfg.NotifyBuffer = 1024
	}

	s := &Stream{
		cfg:     cfg,
		backoff: cfg.Reconnect.strategy(),
		logger:  logger.With("transport", cfg.Kind.String(), "endpoint", cfg.Endpoint),
		ready:   make(chan struct{}),
		pending: make(map[string]*call),
		notify:  make(chan []byte, cfg.NotifyBuffer),
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())

	go s.dispatchLoop()
	return s
}

// Kind implements Transport.
func (s *Stream) Kind() Kind {
	return s.cfg.Kind
}

// On implements Transport.
func (s *Stream) On(event Event, handler Handler) {
	s.events.On(event, handler)
}

// IsReady implements Transport.
func (s *Stream) IsReady() bool {
	return s.State() == StateReady
}

// State reports the current connection state.
func (s *Stream) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.closed:
		return StateClosed
	case s.conn != nil:
		return StateReady
	case s.connecting || s.reconnecting:
		return StateConnecting
	default:
		return StateDisconnected
	}
}

// Connect implements Transport.
func (s *Stream) Connect(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.conn != nil {
		s.mu.Unlock()
		return nil
	}
	s.connecting = true
	s.mu.Unlock()

	conn, err := s.dial(ctx)

	s.mu.Lock()
	s.connecting = false
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", s.cfg.Endpoint, err)
	}
	return s.attach(conn)
}

// Request implements Transport.
func (s *Stream) Request(ctx context.Context, payload []byte) ([]byte, error) {
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil, ErrEmptyPayload
	}

	ids, batch, err := requestIDs(payload)
	if err != nil {
		return nil, err
	}

	conn, err := s.waitReady(ctx)
	if err != nil {
		return nil, err
	}

	// Nothing comes back for a notification.
	if len(ids) == 0 {
		return nil, s.write(conn, payload)
	}

	c := &call{ch: make(chan reply, 1), ids: ids, batch: batch}
	s.mu.Lock()
	for _, id := range ids {
		if _, dup := s.pending[id]; dup {
			s.mu.Unlock()
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
	}
	s.seq++
	c.seq = s.seq
	for _, id := range ids {
		s.pending[id] = c
	}
	s.mu.Unlock()

	if err := s.write(conn, payload); err != nil {
		s.forget(c)
		return nil, err
	}

	select {
	case r := <-c.ch:
		return r.data, r.err
	case <-ctx.Done():
		s.forget(c)
		return nil, ctx.Err()
	}
}

// Disconnect implements Transport. Pending requests fail with ErrClosed and
// no reconnection is attempted afterwards.
func (s *Stream) Disconnect() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	conn := s.conn
	s.conn = nil
	if conn == nil {
		// wake anyone blocked in waitReady
		close(s.ready)
	}
	pending := s.drain()
	s.mu.Unlock()

	s.cancel()
	for _, c := range pending {
		c.ch <- reply{err: ErrClosed}
	}

	if conn != nil {
		s.logger.Debug("Disconnecting")
		return conn.Close()
	}
	return nil
}

func (s *Stream) dial(ctx context.Context) (Conn, error) {
	if _, ok := ctx.Deadline(); !ok && s.cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.DialTimeout)
		defer cancel()
	}
	return s.cfg.Dial(ctx)
}

// attach installs a freshly dialed connection.
func (s *Stream) attach(conn Conn) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = conn.Close()
		return ErrClosed
	}
	if s.conn != nil {
		s.mu.Unlock()
		_ = conn.Close()
		return nil
	}
	s.conn = conn
	s.reconnecting = false
	close(s.ready)
	s.mu.Unlock()

	go s.readLoop(conn)
	if s.cfg.KeepAlive > 0 {
		if p, ok := conn.(Pinger); ok {
			go s.keepAlive(conn, p)
		}
	}

	s.logger.Debug("Connected")
	s.events.Emit(EventConnect, nil)
	return nil
}

func (s *Stream) waitReady(ctx context.Context) (Conn, error) {
	for {
		s.mu.Lock()
		switch {
		case s.closed:
			s.mu.Unlock()
			return nil, ErrClosed
		case s.conn != nil:
			conn := s.conn
			s.mu.Unlock()
			return conn, nil
		case !s.connecting && !s.reconnecting:
			s.mu.Unlock()
			return nil, ErrNotConnected
		}
		ready := s.ready
		s.mu.Unlock()

		select {
		case <-ready:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (s *Stream) write(conn Conn, payload []byte) error {
	s.writeMu.Lock()
	err := conn.WriteMessage(payload)
	s.writeMu.Unlock()

	if err != nil {
		s.lost(conn, err)
		return fmt.Errorf("failed to write to %s: %w", s.cfg.Endpoint, err)
	}
	s.logger.Debug("Sent", "bytes", len(payload))
	return nil
}

func (s *Stream) forget(c *call) {
	s.mu.Lock()
	s.release(c)
	s.mu.Unlock()
}

// release removes c from the pending index and reports whether it was
// still unanswered. s.mu is held.
func (s *Stream) release(c *call) bool {
	if c.done {
		return false
	}
	c.done = true
	for _, id := range c.ids {
		if s.pending[id] == c {
			delete(s.pending, id)
		}
	}
	return true
}

// drain empties the pending index and returns every unanswered call.
// s.mu is held.
func (s *Stream) drain() []*call {
	calls := make([]*call, 0, len(s.pending))
	for _, c := range s.pending {
		if s.release(c) {
			calls = append(calls, c)
		}
	}
	s.pending = make(map[string]*call)
	return calls
}

// oldest returns the longest outstanding batch, or unless batchOnly the
// longest outstanding single request when no batch is pending. s.mu is held.
func (s *Stream) oldest(batchOnly bool) *call {
	var best *call
	for _, c := range s.pending {
		switch {
		case batchOnly && !c.batch:
		case best == nil:
			best = c
		case c.batch != best.batch:
			if c.batch {
				best = c
			}
		case c.seq < best.seq:
			best = c
		}
	}
	return best
}

func (s *Stream) readLoop(conn Conn) {
	for {
		data, err := conn.ReadMessage()
		if err != nil {
			s.lost(conn, err)
			return
		}
		if len(bytes.TrimSpace(data)) == 0 {
			continue
		}
		s.route(data)
	}
}

// route hands a reply to its waiting request or queues a server push.
func (s *Stream) route(data []byte) {
	if protocol.IsBatch(data) {
		var probes []protocol.Probe
		if err := json.Unmarshal(data, &probes); err != nil {
			s.logger.Warn("Discarding unparseable batch reply", "error", err)
			return
		}
		s.mu.Lock()
		var c *call
		anonymous := true
		for _, p := range probes {
			key := protocol.IDKey(p.ID)
			if key == "" {
				continue
			}
			anonymous = false
			if c = s.pending[key]; c != nil {
				break
			}
		}
		if c == nil && anonymous {
			c = s.oldest(true)
		}
		s.mu.Unlock()
		s.deliver(c, "batch", data)
		return
	}

	var probe protocol.Probe
	if err := json.Unmarshal(data, &probe); err != nil {
		s.logger.Warn("Discarding unparseable message", "error", err)
		return
	}
	if probe.IsNotification() {
		select {
		case s.notify <- data:
		case <-s.ctx.Done():
		}
		return
	}

	key := protocol.IDKey(probe.ID)
	s.mu.Lock()
	c := s.pending[key]
	if c == nil && key == "" {
		// error replies to unparseable requests carry a null id
		c = s.oldest(false)
	}
	s.mu.Unlock()
	s.deliver(c, key, data)
}

func (s *Stream) deliver(c *call, key string, data []byte) {
	s.mu.Lock()
	ok := c != nil && s.release(c)
	s.mu.Unlock()

	if !ok {
		s.logger.Debug("No pending request for reply", "id", key)
		return
	}
	c.ch <- reply{data: data}
}

func (s *Stream) dispatchLoop() {
	for {
		select {
		case msg := <-s.notify:
			s.events.Emit(EventMessage, msg)
		case <-s.ctx.Done():
			return
		}
	}
}

// lost tears down a connection that failed underneath us.
func (s *Stream) lost(conn Conn, cause error) {
	s.mu.Lock()
	if s.conn != conn {
		s.mu.Unlock()
		return
	}
	s.conn = nil
	s.ready = make(chan struct{})
	pending := s.drain()
	reconnect := s.cfg.Reconnect.AutoReconnect
	if reconnect {
		s.reconnecting = true
	}
	s.mu.Unlock()

	_ = conn.Close()
	for _, c := range pending {
		c.ch <- reply{err: fmt.Errorf("%w: %v", ErrConnectionLost, cause)}
	}

	s.logger.Warn("Connection lost", "error", cause, "reconnect", reconnect)
	s.events.Emit(EventError, []byte(cause.Error()))
	s.events.Emit(EventDisconnect, nil)

	if reconnect {
		go s.reconnectLoop()
	}
}

func (s *Stream) reconnectLoop() {
	maxAttempts := s.backoff.MaxAttempts()
	for attempt := 1; maxAttempts == 0 || attempt <= maxAttempts; attempt++ {
		timer := time.NewTimer(s.backoff.NextDelay(attempt))
		select {
		case <-s.ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		s.mu.Lock()
		done := s.closed || s.conn != nil
		s.mu.Unlock()
		if done {
			return
		}

		s.logger.Info("Reconnecting", "attempt", attempt)
		conn, err := s.dial(s.ctx)
		if err != nil {
			s.logger.Warn("Reconnect attempt failed", "attempt", attempt, "error", err)
			s.events.Emit(EventError, []byte(err.Error()))
			continue
		}
		_ = s.attach(conn)
		return
	}

	s.mu.Lock()
	s.reconnecting = false
	if s.conn == nil && !s.closed {
		close(s.ready)
		s.ready = make(chan struct{})
	}
	s.mu.Unlock()
	s.logger.Error("Giving up reconnecting", "attempts", maxAttempts)
}

func (s *Stream) keepAlive(conn Conn, p Pinger) {
	ticker := time.NewTicker(s.cfg.KeepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
		}

		s.mu.Lock()
		current := s.conn == conn
		s.mu.Unlock()
		if !current {
			return
		}

		s.writeMu.Lock()
		err := p.Ping()
		s.writeMu.Unlock()
		if err != nil {
			s.lost(conn, err)
			return
		}
	}
}

// requestIDs returns the ids of an outbound payload and whether it is a
// batch. No ids means nothing is expected back.
func requestIDs(payload []byte) ([]string, bool, error) {
	if protocol.IsBatch(payload) {
		var probes []protocol.Probe
		if err := json.Unmarshal(payload, &probes); err != nil {
			return nil, true, fmt.Errorf("invalid batch payload: %w", err)
		}
		ids := make([]string, 0, len(probes))
		seen := make(map[string]bool, len(probes))
		for _, p := range probes {
			if k := protocol.IDKey(p.ID); k != "" && !seen[k] {
				seen[k] = true
				ids = append(ids, k)
			}
		}
		return ids, true, nil
	}

	var probe protocol.Probe
	if err := json.Unmarshal(payload, &probe); err != nil {
		return nil, false, fmt.Errorf("invalid payload: %w", err)
	}
	if k := protocol.IDKey(probe.ID); k != "" {
		return []string{k}, false, nil
	}
	return nil, false, nil
}
