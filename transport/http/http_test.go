package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localrivet/chainrpc/auth"
	"github.com/localrivet/chainrpc/transport"
)

func TestRequestPostsPayload(t *testing.T) {
	var gotBody, gotType, gotAuth, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotType = r.Header.Get("Content-Type")
		gotAuth = r.Header.Get("Authorization")
		gotKey = r.Header.Get("X-Api-Key")
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":"0x1"}`))
	}))
	defer server.Close()

	tr := New(server.URL,
		WithHeaders(map[string]string{"X-Api-Key": "secret"}),
		WithAuth(auth.NewBearer("tok")))

	assert.Equal(t, transport.KindHTTP, tr.Kind())
	assert.True(t, tr.IsReady())
	require.NoError(t, tr.Connect(context.Background()))

	payload := `{"jsonrpc":"2.0","id":1,"method":"eth_chainId","params":[]}`
	res, err := tr.Request(context.Background(), []byte(payload))
	require.NoError(t, err)

	assert.JSONEq(t, `{"jsonrpc":"2.0","id":1,"result":"0x1"}`, string(res))
	assert.Equal(t, payload, gotBody)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "secret", gotKey)

	assert.NoError(t, tr.Disconnect())
}

func TestRequestNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("slow down\n"))
	}))
	defer server.Close()

	_, err := New(server.URL).Request(context.Background(), []byte(`{"id":1}`))
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
	assert.Equal(t, "slow down", statusErr.Body)
	assert.Contains(t, err.Error(), "429")
}

func TestRequestNon2xxWithRPCErrorBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"error object", `{"jsonrpc":"2.0","id":1,"error":{"code":-32005,"message":"daily request count exceeded"}}`},
		{"batch", `[{"jsonrpc":"2.0","id":1,"error":{"code":-32005,"message":"limit"}}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			res, err := New(server.URL).Request(context.Background(), []byte(`{"id":1}`))
			require.NoError(t, err)
			assert.JSONEq(t, tt.body, string(res))
		})
	}

	// a JSON object without an error member is still a status failure
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"message":"upstream unavailable"}`))
	}))
	defer server.Close()
	_, err := New(server.URL).Request(context.Background(), []byte(`{"id":1}`))
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
}

func TestRequestContextCancelled(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := New(server.URL).Request(ctx, []byte(`{"id":1}`))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

type failingAuth struct{}

func (failingAuth) Headers() (map[string]string, error) {
	return nil, errors.New("no key")
}

func TestRequestErrors(t *testing.T) {
	tr := New("http://127.0.0.1:0")
	_, err := tr.Request(context.Background(), nil)
	assert.ErrorIs(t, err, transport.ErrEmptyPayload)

	tr = New("http://127.0.0.1:0", WithAuth(failingAuth{}))
	_, err = tr.Request(context.Background(), []byte(`{"id":1}`))
	assert.ErrorContains(t, err, "no key")

	// On is accepted and ignored
	tr.On(transport.EventMessage, func([]byte) {})
}
