package ethereum

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localrivet/chainrpc/client"
	eth "github.com/localrivet/chainrpc/payload/ethereum"
)

// node serves canned results keyed by method and records the params of
// the last call.
func node(t *testing.T, results map[string]string) (*RPC, *[]any) {
	t.Helper()
	var lastParams []any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     uint64 `json:"id"`
			Method string `json:"method"`
			Params []any  `json:"params"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		lastParams = req.Params

		result, ok := results[req.Method]
		if !ok {
			fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%d,"error":{"code":-32601,"message":"the method %s does not exist/is not available"}}`, req.ID, req.Method)
			return
		}
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%d,"result":%s}`, req.ID, result)
	}))
	t.Cleanup(server.Close)

	s, err := client.New(context.Background(), server.URL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return New(s), &lastParams
}

func TestQuantities(t *testing.T) {
	r, _ := node(t, map[string]string{
		"eth_chainId":     `"0x1"`,
		"eth_blockNumber": `"0x12a05f200"`,
		"eth_gasPrice":    `"0x3b9aca00"`,
		"net_peerCount":   `"0x19"`,
	})
	ctx := context.Background()

	chainID, err := r.ChainID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), chainID.Int64())

	number, err := r.BlockNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5000000000), number.Int64())

	price, err := r.GasPrice(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1000000000", price.String())

	peers, err := r.NetPeerCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(25), peers.Int64())
}

func TestGetBalanceSendsDefaultTag(t *testing.T) {
	r, params := node(t, map[string]string{"eth_getBalance": `"0x0234c8a3397aab58"`})

	balance, err := r.GetBalance(context.Background(), "0xc94770007dda54cF92009BFF0dE90c06F603a09f", "")
	require.NoError(t, err)
	assert.Equal(t, "158972490234375000", balance.String())
	assert.Equal(t, []any{"0xc94770007dda54cF92009BFF0dE90c06F603a09f", "latest"}, *params)
}

func TestStringsAndBools(t *testing.T) {
	r, _ := node(t, map[string]string{
		"web3_clientVersion": `"Geth/v1.14.0-stable/linux-amd64/go1.22.2"`,
		"net_listening":      `true`,
		"net_version":        `"1"`,
		"eth_syncing":        `false`,
	})
	ctx := context.Background()

	v, err := r.ClientVersion(ctx)
	require.NoError(t, err)
	assert.Contains(t, v, "Geth")

	listening, err := r.NetListening(ctx)
	require.NoError(t, err)
	assert.True(t, listening)

	version, err := r.NetVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1", version)

	status, err := r.Syncing(ctx)
	require.NoError(t, err)
	assert.Nil(t, status)
}

func TestStructuredResults(t *testing.T) {
	r, _ := node(t, map[string]string{
		"txpool_status": `{"pending":"0xa","queued":"0x7"}`,
		"eth_getLogs":   `[{"address":"0xb59f67a8bff5d8cd03f6ac17265c550ed8f33907","topics":["0xddf2"],"data":"0x","blockNumber":"0x429d3b","transactionIndex":"0x1","logIndex":"0x2","removed":false}]`,
	})
	ctx := context.Background()

	status, err := r.TxPoolStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, eth.TxPoolStatusResult{Pending: 10, Queued: 7}, status)

	logs, err := r.GetLogs(ctx, map[string]any{"fromBlock": "0x429d3b"})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, uint64(0x429d3b), logs[0].BlockNumber)
	assert.Equal(t, uint64(2), logs[0].LogIndex)
}

func TestRPCErrorSurfaces(t *testing.T) {
	r, _ := node(t, map[string]string{})

	_, err := r.AdminPeers(context.Background())
	require.Error(t, err)
	rpcErr, ok := client.IsRPCError(err)
	require.True(t, ok)
	assert.Equal(t, -32601, rpcErr.Code)
	assert.Equal(t, "admin_peers", rpcErr.Method)
}

func TestSubscribeOverHTTPIsRejected(t *testing.T) {
	r, _ := node(t, map[string]string{"eth_subscribe": `"0x1"`})
	_, err := r.SubscribeNewHeads(context.Background(), false, func(json.RawMessage) {})
	assert.ErrorIs(t, err, client.ErrNotSubscribable)
}
