// Package ipc provides the Unix domain socket implementation of the
// chainrpc transport, as exposed by geth style nodes at paths like
// ~/.ethereum/geth.ipc.
//
// Messages on the socket are concatenated JSON values; the stream is framed
// by decoding one value at a time rather than by delimiters.
package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/localrivet/chainrpc/transport"
)

// DefaultBufferSize is the read buffer size of the socket.
const DefaultBufferSize = 64 * 1024

// DefaultDialTimeout bounds each connection attempt.
const DefaultDialTimeout = 5 * time.Second

type options struct {
	bufferSize  int
	reconnect   transport.ReconnectPolicy
	dialTimeout time.Duration
	logger      *slog.Logger
}

// Option configures the IPC transport.
type Option func(*options)

// WithBufferSize sets the read buffer size.
func WithBufferSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.bufferSize = size
		}
	}
}

// WithReconnect sets the reconnect policy.
func WithReconnect(p transport.ReconnectPolicy) Option {
	return func(o *options) {
		o.reconnect = p
	}
}

// WithDialTimeout bounds each connection attempt.
func WithDialTimeout(d time.Duration) Option {
	return func(o *options) {
		o.dialTimeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New creates an IPC transport for a socket path. An ipc:// prefix is
// accepted and stripped. No connection is made until Connect.
func New(path string, opts ...Option) *transport.Stream {
	o := &options{
		bufferSize:  DefaultBufferSize,
		reconnect:   transport.DefaultReconnectPolicy(),
		dialTimeout: DefaultDialTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}

	socketPath := SocketPath(path)
	return transport.NewStream(transport.StreamConfig{
		Kind:        transport.KindIPC,
		Endpoint:    socketPath,
		Dial:        dialer(socketPath, o.bufferSize),
		Reconnect:   o.reconnect,
		DialTimeout: o.dialTimeout,
		Logger:      o.logger,
	})
}

// SocketPath strips an ipc:// scheme from an endpoint.
func SocketPath(endpoint string) string {
	return strings.TrimPrefix(endpoint, "ipc://")
}

func dialer(path string, bufferSize int) transport.DialFunc {
	return func(ctx context.Context) (transport.Conn, error) {
		var d net.Dialer
		conn, err := d.DialContext(ctx, "unix", path)
		if err != nil {
			return nil, err
		}
		return newConn(conn, bufferSize), nil
	}
}

// Conn adapts a socket carrying concatenated JSON values to transport.Conn.
type Conn struct {
	conn    net.Conn
	decoder *json.Decoder
	writeMu sync.Mutex
}

func newConn(conn net.Conn, bufferSize int) *Conn {
	return &Conn{
		conn:    conn,
		decoder: json.NewDecoder(bufio.NewReaderSize(conn, bufferSize)),
	}
}

// ReadMessage decodes the next JSON value from the socket.
func (c *Conn) ReadMessage() ([]byte, error) {
	var msg json.RawMessage
	if err := c.decoder.Decode(&msg); err != nil {
		return nil, fmt.Errorf("failed to read from socket: %w", err)
	}
	return msg, nil
}

// WriteMessage writes data followed by a newline.
func (c *Conn) WriteMessage(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	buf := make([]byte, 0, len(data)+1)
	buf = append(buf, data...)
	buf = append(buf, '\n')
	_, err := c.conn.Write(buf)
	return err
}

// Close closes the socket.
func (c *Conn) Close() error {
	return c.conn.Close()
}
