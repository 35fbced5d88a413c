package client

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/localrivet/chainrpc/auth"
	"github.com/localrivet/chainrpc/transport"
	httptransport "github.com/localrivet/chainrpc/transport/http"
	"github.com/localrivet/chainrpc/transport/ipc"
	"github.com/localrivet/chainrpc/transport/ws"
)

// TransportOption configures the transport selected for an endpoint.
// Options that do not apply to the selected kind are ignored.
type TransportOption func(*transportConfig)

type transportConfig struct {
	httpClient  *http.Client
	headers     map[string]string
	auth        auth.Provider
	reconnect   *transport.ReconnectPolicy
	dialTimeout time.Duration
	keepAlive   time.Duration
	logger      *slog.Logger
}

// WithHTTPClient sets the client used by HTTP transports.
func WithHTTPClient(c *http.Client) TransportOption {
	return func(cfg *transportConfig) {
		cfg.httpClient = c
	}
}

// WithHeaders adds headers to HTTP requests and WebSocket handshakes.
func WithHeaders(headers map[string]string) TransportOption {
	return func(cfg *transportConfig) {
		if cfg.headers == nil {
			cfg.headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			cfg.headers[k] = v
		}
	}
}

// WithAuth sets the auth provider for HTTP and WebSocket transports.
func WithAuth(p auth.Provider) TransportOption {
	return func(cfg *transportConfig) {
		cfg.auth = p
	}
}

// WithReconnect sets the reconnect policy of WebSocket and IPC transports.
func WithReconnect(p transport.ReconnectPolicy) TransportOption {
	return func(cfg *transportConfig) {
		cfg.reconnect = &p
	}
}

// WithDialTimeout bounds connection attempts of WebSocket and IPC
// transports.
func WithDialTimeout(d time.Duration) TransportOption {
	return func(cfg *transportConfig) {
		cfg.dialTimeout = d
	}
}

// WithKeepAlive enables WebSocket pings at the given interval.
func WithKeepAlive(d time.Duration) TransportOption {
	return func(cfg *transportConfig) {
		cfg.keepAlive = d
	}
}

// WithTransportLogger sets the transport's logger.
func WithTransportLogger(logger *slog.Logger) TransportOption {
	return func(cfg *transportConfig) {
		cfg.logger = logger
	}
}

// Classify maps an endpoint to a transport kind. Rules apply in order:
// an "http" prefix, a "ws" prefix, then a ".ipc" suffix.
func Classify(endpoint string) (transport.Kind, error) {
	switch {
	case strings.HasPrefix(endpoint, "http"):
		return transport.KindHTTP, nil
	case strings.HasPrefix(endpoint, "ws"):
		return transport.KindWebSocket, nil
	case strings.HasSuffix(endpoint, ".ipc"):
		return transport.KindIPC, nil
	default:
		return 0, &UnsupportedProtocolError{Endpoint: endpoint}
	}
}

// NewTransport instantiates the transport for endpoint. No connection is
// opened.
func NewTransport(endpoint string, opts ...TransportOption) (transport.Transport, error) {
	kind, err := Classify(endpoint)
	if err != nil {
		return nil, err
	}

	cfg := &transportConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	switch kind {
	case transport.KindHTTP:
		return httptransport.New(endpoint,
			httptransport.WithClient(cfg.httpClient),
			httptransport.WithHeaders(cfg.headers),
			httptransport.WithAuth(cfg.auth),
			httptransport.WithLogger(cfg.logger),
		), nil

	case transport.KindWebSocket:
		wsOpts := []ws.Option{
			ws.WithHeaders(cfg.headers),
			ws.WithAuth(cfg.auth),
			ws.WithLogger(cfg.logger),
			ws.WithKeepAlive(cfg.keepAlive),
		}
		if cfg.reconnect != nil {
			wsOpts = append(wsOpts, ws.WithReconnect(*cfg.reconnect))
		}
		if cfg.dialTimeout > 0 {
			wsOpts = append(wsOpts, ws.WithDialTimeout(cfg.dialTimeout))
		}
		return ws.New(endpoint, wsOpts...), nil

	default:
		ipcOpts := []ipc.Option{ipc.WithLogger(cfg.logger)}
		if cfg.reconnect != nil {
			ipcOpts = append(ipcOpts, ipc.WithReconnect(*cfg.reconnect))
		}
		if cfg.dialTimeout > 0 {
			ipcOpts = append(ipcOpts, ipc.WithDialTimeout(cfg.dialTimeout))
		}
		return ipc.New(endpoint, ipcOpts...), nil
	}
}
