// Package transport provides the transport layer used by chainrpc sessions.
//
// This package contains the Transport interface shared by the HTTP, WebSocket
// and IPC implementations, the reconnect policy, and Stream, the duplex
// engine the WebSocket and IPC transports are built on.
package transport

import (
	"context"
	"errors"
	"fmt"
)

// Kind identifies one of the supported transport families.
type Kind int

// Transport kinds
const (
	KindHTTP Kind = iota + 1
	KindWebSocket
	KindIPC
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindHTTP:
		return "http"
	case KindWebSocket:
		return "websocket"
	case KindIPC:
		return "ipc"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Event names a transport lifecycle or traffic event.
type Event string

// Events emitted by transports. HTTP transports never emit.
const (
	// EventMessage carries a server push (a message without an id).
	EventMessage Event = "message"
	// EventConnect fires each time a connection is established.
	EventConnect Event = "connect"
	// EventDisconnect fires when an established connection is lost.
	EventDisconnect Event = "disconnect"
	// EventError carries the text of a connection level error.
	EventError Event = "error"
)

// Handler receives the payload of an event. For EventConnect and
// EventDisconnect the payload is nil.
type Handler func(data []byte)

// Transport represents a connection to a JSON-RPC node.
type Transport interface {
	// Kind reports which family the transport belongs to.
	Kind() Kind

	// Connect establishes the underlying connection. It is a no-op for
	// transports that are already connected or connectionless.
	Connect(ctx context.Context) error

	// IsReady reports whether a request can be written right now.
	IsReady() bool

	// Request writes a single JSON-RPC request or a batch array and returns
	// the raw reply (an object or an array).
	Request(ctx context.Context, payload []byte) ([]byte, error)

	// On registers a handler for an event.
	On(event Event, handler Handler)

	// Disconnect releases the connection. It is terminal.
	Disconnect() error
}

// State is the connection state of a duplex transport.
type State int

// Connection states
const (
	StateDisconnected State = iota
	StateConnecting
	StateReady
	StateClosed
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateReady:
		return "ready"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Standard error values that can be used with errors.Is()
var (
	ErrClosed         = errors.New("transport is closed")
	ErrNotConnected   = errors.New("transport is not connected")
	ErrConnectionLost = errors.New("connection lost before the reply arrived")
	ErrDuplicateID    = errors.New("a request with the same id is already in flight")
	ErrEmptyPayload   = errors.New("cannot send empty payload")
)
