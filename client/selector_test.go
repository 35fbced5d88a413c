package client

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localrivet/chainrpc/transport"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		endpoint string
		want     transport.Kind
	}{
		{"http://x", transport.KindHTTP},
		{"https://mainnet.example/v3/key", transport.KindHTTP},
		{"ws://localhost:8546", transport.KindWebSocket},
		{"wss://x", transport.KindWebSocket},
		{"/var/run/x.ipc", transport.KindIPC},
		{"ipc:///home/me/.ethereum/geth.ipc", transport.KindIPC},
		// prefix rules take precedence over the suffix rule
		{"http://host/node.ipc", transport.KindHTTP},
	}
	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			kind, err := Classify(tt.endpoint)
			require.NoError(t, err)
			assert.Equal(t, tt.want, kind)
		})
	}
}

func TestClassifyUnsupported(t *testing.T) {
	for _, endpoint := range []string{"ftp://x", "", "/tmp/geth.sock", "grpc://x"} {
		_, err := Classify(endpoint)
		require.Error(t, err, endpoint)
		assert.True(t, errors.Is(err, ErrUnsupportedProtocol))
		assert.True(t, IsUnsupportedProtocol(err))

		var upErr *UnsupportedProtocolError
		require.True(t, errors.As(err, &upErr))
		assert.Equal(t, endpoint, upErr.Endpoint)
		assert.Contains(t, err.Error(), endpoint)
	}
}

func TestNewTransportSelectsExactlyOneKind(t *testing.T) {
	for endpoint, kind := range map[string]transport.Kind{
		"http://127.0.0.1:8545": transport.KindHTTP,
		"ws://127.0.0.1:8546":   transport.KindWebSocket,
		"/tmp/chainrpc.ipc":     transport.KindIPC,
	} {
		tr, err := NewTransport(endpoint,
			WithHeaders(map[string]string{"X-Api-Key": "k"}),
			WithReconnect(transport.ReconnectPolicy{}),
			WithDialTimeout(0),
		)
		require.NoError(t, err)
		assert.Equal(t, kind, tr.Kind())
		// nothing is dialed until Connect
		if kind != transport.KindHTTP {
			assert.False(t, tr.IsReady())
		}
		assert.NoError(t, tr.Disconnect())
	}

	_, err := NewTransport("ftp://x")
	assert.ErrorIs(t, err, ErrUnsupportedProtocol)
}
