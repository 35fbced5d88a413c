package client

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localrivet/chainrpc/payload"
)

// newIPCNode serves a unix socket that answers eth_subscribe with "0x<id>"
// and a notification for it in the same write. Batches whose first method
// is "partial" get a reply for their first entry only, and batches whose
// first method is "reject" get a single error with a null id.
func newIPCNode(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "ipc")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	path := filepath.Join(dir, "node.ipc")

	l, err := net.Listen("unix", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })

	go func() {
		for {
			conn, err := l.Accept()
			if err != nil {
				return
			}
			go serveIPC(conn)
		}
	}()
	return path
}

type ipcRequest struct {
	ID     json.RawMessage `json:"id"`
	Method string          `json:"method"`
}

func serveIPC(conn net.Conn) {
	defer conn.Close()
	dec := json.NewDecoder(bufio.NewReader(conn))
	for {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return
		}

		var out string
		if raw[0] == '[' {
			var reqs []ipcRequest
			if json.Unmarshal(raw, &reqs) != nil || len(reqs) == 0 {
				return
			}
			switch reqs[0].Method {
			case "reject":
				out = `{"jsonrpc":"2.0","id":null,"error":{"code":-32600,"message":"batch rejected"}}`
			case "partial":
				out = `[{"jsonrpc":"2.0","id":` + string(reqs[0].ID) + `,"result":"0x1"}]`
			}
		} else {
			var req ipcRequest
			if json.Unmarshal(raw, &req) != nil {
				return
			}
			if req.Method == "eth_subscribe" {
				sub := `"0x` + string(req.ID) + `"`
				out = `{"jsonrpc":"2.0","id":` + string(req.ID) + `,"result":` + sub + `}` +
					`{"jsonrpc":"2.0","method":"eth_subscription","params":{"subscription":` + sub + `,"result":"first"}}`
			} else {
				out = `{"jsonrpc":"2.0","id":` + string(req.ID) + `,"result":"ok"}`
			}
		}
		if _, err := conn.Write([]byte(out)); err != nil {
			return
		}
	}
}

func TestIPCSessionDeliversPushWrittenWithSubscribeReply(t *testing.T) {
	s, err := New(context.Background(), newIPCNode(t))
	require.NoError(t, err)
	defer s.Close()

	const n = 200
	for i := 0; i < n; i++ {
		got := make(chan string, 1)
		sub, err := s.Subscribe(context.Background(), payload.New("eth_subscribe", "newHeads"), false, func(result json.RawMessage, id string) {
			got <- id + "=" + string(result)
		})
		require.NoError(t, err)

		select {
		case v := <-got:
			assert.Equal(t, sub.ID()+`="first"`, v)
		case <-time.After(2 * time.Second):
			t.Fatalf("first notification for subscription %d was dropped", i)
		}
		sub.Close()
	}
}

func TestIPCSessionNullIDBatchErrorFailsBatch(t *testing.T) {
	s, err := New(context.Background(), newIPCNode(t), WithRequestTimeout(2*time.Second))
	require.NoError(t, err)
	defer s.Close()

	_, err = s.SendBatch(context.Background(), payload.New("reject"), payload.New("eth_chainId"))
	var batchErr *BatchError
	require.True(t, errors.As(err, &batchErr), "got %v", err)
	assert.Contains(t, batchErr.Raw, "batch rejected")
	assert.ErrorIs(t, err, ErrBatchRequestFailed)
}

func TestIPCSessionPartialBatchReply(t *testing.T) {
	s, err := New(context.Background(), newIPCNode(t), WithRequestTimeout(2*time.Second))
	require.NoError(t, err)
	defer s.Close()

	res, err := s.SendBatch(context.Background(), payload.New("partial"), payload.New("eth_chainId"))
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.NoError(t, res[0].Err)
	assert.Equal(t, json.RawMessage(`"0x1"`), res[0].Value)
	assert.ErrorIs(t, res[1].Err, ErrMissingResponse)
}
