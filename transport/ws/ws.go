// Package ws provides the WebSocket implementation of the chainrpc transport.
//
// The transport keeps one long-lived connection, correlates replies by id,
// emits server pushes as transport.EventMessage and reconnects according to
// its transport.ReconnectPolicy.
package ws

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"

	"github.com/localrivet/chainrpc/auth"
	"github.com/localrivet/chainrpc/transport"
)

// DefaultDialTimeout bounds the opening handshake.
const DefaultDialTimeout = 10 * time.Second

type options struct {
	headers     map[string]string
	auth        auth.Provider
	reconnect   transport.ReconnectPolicy
	dialTimeout time.Duration
	keepAlive   time.Duration
	logger      *slog.Logger
}

// Option configures the WebSocket transport.
type Option func(*options)

// WithHeaders adds headers to the opening handshake.
func WithHeaders(headers map[string]string) Option {
	return func(o *options) {
		for k, v := range headers {
			o.headers[k] = v
		}
	}
}

// WithAuth sets the auth provider consulted on every handshake.
func WithAuth(p auth.Provider) Option {
	return func(o *options) {
		o.auth = p
	}
}

// WithReconnect sets the reconnect policy.
func WithReconnect(p transport.ReconnectPolicy) Option {
	return func(o *options) {
		o.reconnect = p
	}
}

// WithDialTimeout bounds each handshake.
func WithDialTimeout(d time.Duration) Option {
	return func(o *options) {
		o.dialTimeout = d
	}
}

// WithKeepAlive sends a ping frame at the given interval.
func WithKeepAlive(d time.Duration) Option {
	return func(o *options) {
		o.keepAlive = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New creates a WebSocket transport for a ws:// or wss:// endpoint. No
// connection is made until Connect.
func New(endpoint string, opts ...Option) *transport.Stream {
	o := &options{
		headers:     make(map[string]string),
		reconnect:   transport.DefaultReconnectPolicy(),
		dialTimeout: DefaultDialTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}

	return transport.NewStream(transport.StreamConfig{
		Kind:        transport.KindWebSocket,
		Endpoint:    endpoint,
		Dial:        dialer(endpoint, o),
		Reconnect:   o.reconnect,
		DialTimeout: o.dialTimeout,
		KeepAlive:   o.keepAlive,
		Logger:      o.logger,
	})
}

func dialer(endpoint string, o *options) transport.DialFunc {
	return func(ctx context.Context) (transport.Conn, error) {
		h := http.Header{}
		for k, v := range o.headers {
			h.Set(k, v)
		}
		// Auth is resolved per handshake so JWTs are fresh on reconnect.
		if err := auth.Apply(o.auth, h); err != nil {
			return nil, err
		}

		d := ws.Dialer{
			Header: ws.HandshakeHeaderHTTP(h),
		}
		conn, br, _, err := d.Dial(ctx, endpoint)
		if err != nil {
			return nil, fmt.Errorf("websocket handshake failed: %w", err)
		}
		return newConn(conn, br), nil
	}
}

// Conn adapts a client side WebSocket connection to transport.Conn.
type Conn struct {
	conn net.Conn
	rw   io.ReadWriter
}

type readWriter struct {
	io.Reader
	io.Writer
}

func newConn(conn net.Conn, br *bufio.Reader) *Conn {
	c := &Conn{conn: conn, rw: conn}
	// The handshake may have buffered the first frames.
	if br != nil {
		c.rw = readWriter{Reader: io.MultiReader(br, conn), Writer: conn}
	}
	return c
}

// ReadMessage returns the next text or binary message. Control frames are
// handled internally.
func (c *Conn) ReadMessage() ([]byte, error) {
	data, _, err := wsutil.ReadServerData(c.rw)
	return data, err
}

// WriteMessage sends data as a single text frame.
func (c *Conn) WriteMessage(data []byte) error {
	return wsutil.WriteClientMessage(c.conn, ws.OpText, data)
}

// Ping sends a ping control frame.
func (c *Conn) Ping() error {
	return wsutil.WriteClientMessage(c.conn, ws.OpPing, nil)
}

// Close sends a close frame and closes the socket.
func (c *Conn) Close() error {
	_ = wsutil.WriteClientMessage(c.conn, ws.OpClose, ws.NewCloseFrameBody(ws.StatusNormalClosure, ""))
	return c.conn.Close()
}
