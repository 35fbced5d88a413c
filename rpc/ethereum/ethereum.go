// Package ethereum is a typed facade over a client.Session for Ethereum
// style nodes. Each method sends the matching payload from
// payload/ethereum.
package ethereum

import (
	"context"
	"encoding/json"
	"math/big"

	"github.com/localrivet/chainrpc/client"
	"github.com/localrivet/chainrpc/payload"
	eth "github.com/localrivet/chainrpc/payload/ethereum"
)

// RPC wraps a session.
type RPC struct {
	session *client.Session
}

// New creates a facade over s.
func New(s *client.Session) *RPC {
	return &RPC{session: s}
}

// Session returns the wrapped session.
func (r *RPC) Session() *client.Session {
	return r.session
}

func (r *RPC) Accounts(ctx context.Context) ([]string, error) {
	return client.Call[[]string](ctx, r.session, eth.Accounts())
}

func (r *RPC) BlobBaseFee(ctx context.Context) (*big.Int, error) {
	return client.Call[*big.Int](ctx, r.session, eth.BlobBaseFee())
}

func (r *RPC) BlockNumber(ctx context.Context) (*big.Int, error) {
	return client.Call[*big.Int](ctx, r.session, eth.BlockNumber())
}

func (r *RPC) Call(ctx context.Context, tx any, block string, stateOverride any) (string, error) {
	return client.Call[string](ctx, r.session, eth.Call(tx, block, stateOverride))
}

func (r *RPC) ChainID(ctx context.Context) (*big.Int, error) {
	return client.Call[*big.Int](ctx, r.session, eth.ChainID())
}

func (r *RPC) EstimateGas(ctx context.Context, tx any, block string, stateOverride any) (*big.Int, error) {
	return client.Call[*big.Int](ctx, r.session, eth.EstimateGas(tx, block, stateOverride))
}

func (r *RPC) FeeHistory(ctx context.Context, blockCount uint64, newestBlock string, rewardPercentiles []float64) (eth.FeeHistory, error) {
	return client.Call[eth.FeeHistory](ctx, r.session, eth.FeeHistoryOf(blockCount, newestBlock, rewardPercentiles))
}

func (r *RPC) GasPrice(ctx context.Context) (*big.Int, error) {
	return client.Call[*big.Int](ctx, r.session, eth.GasPrice())
}

func (r *RPC) GetAccount(ctx context.Context, address, block string) (eth.Account, error) {
	return client.Call[eth.Account](ctx, r.session, eth.GetAccount(address, block))
}

func (r *RPC) GetBalance(ctx context.Context, address, block string) (*big.Int, error) {
	return client.Call[*big.Int](ctx, r.session, eth.GetBalance(address, block))
}

func (r *RPC) GetBlockByHash(ctx context.Context, hash string, fullTransactions bool) (json.RawMessage, error) {
	return client.Call[json.RawMessage](ctx, r.session, eth.GetBlockByHash(hash, fullTransactions))
}

func (r *RPC) GetBlockByNumber(ctx context.Context, block string, fullTransactions bool) (json.RawMessage, error) {
	return client.Call[json.RawMessage](ctx, r.session, eth.GetBlockByNumber(block, fullTransactions))
}

func (r *RPC) GetBlockReceipts(ctx context.Context, block string) (json.RawMessage, error) {
	return client.Call[json.RawMessage](ctx, r.session, eth.GetBlockReceipts(block))
}

func (r *RPC) GetCode(ctx context.Context, address, block string) (string, error) {
	return client.Call[string](ctx, r.session, eth.GetCode(address, block))
}

func (r *RPC) GetLogs(ctx context.Context, filter any) ([]eth.Log, error) {
	return client.Call[[]eth.Log](ctx, r.session, eth.GetLogs(filter))
}

func (r *RPC) GetProof(ctx context.Context, address string, storageKeys []string, block string) (eth.Proof, error) {
	return client.Call[eth.Proof](ctx, r.session, eth.GetProof(address, storageKeys, block))
}

func (r *RPC) GetStorageAt(ctx context.Context, address, position, block string) (string, error) {
	return client.Call[string](ctx, r.session, eth.GetStorageAt(address, position, block))
}

func (r *RPC) GetTransactionByHash(ctx context.Context, hash string) (json.RawMessage, error) {
	return client.Call[json.RawMessage](ctx, r.session, eth.GetTransactionByHash(hash))
}

func (r *RPC) GetTransactionCount(ctx context.Context, address, block string) (*big.Int, error) {
	return client.Call[*big.Int](ctx, r.session, eth.GetTransactionCount(address, block))
}

func (r *RPC) GetTransactionReceipt(ctx context.Context, hash string) (json.RawMessage, error) {
	return client.Call[json.RawMessage](ctx, r.session, eth.GetTransactionReceipt(hash))
}

func (r *RPC) MaxPriorityFeePerGas(ctx context.Context) (*big.Int, error) {
	return client.Call[*big.Int](ctx, r.session, eth.MaxPriorityFeePerGas())
}

func (r *RPC) NewFilter(ctx context.Context, filter any) (string, error) {
	return client.Call[string](ctx, r.session, eth.NewFilter(filter))
}

func (r *RPC) GetFilterChanges(ctx context.Context, filterID string) (json.RawMessage, error) {
	return client.Call[json.RawMessage](ctx, r.session, eth.GetFilterChanges(filterID))
}

func (r *RPC) UninstallFilter(ctx context.Context, filterID string) (bool, error) {
	return client.Call[bool](ctx, r.session, eth.UninstallFilter(filterID))
}

func (r *RPC) SendRawTransaction(ctx context.Context, signedTx string) (string, error) {
	return client.Call[string](ctx, r.session, eth.SendRawTransaction(signedTx))
}

// Syncing returns nil when the node is not syncing.
func (r *RPC) Syncing(ctx context.Context) (*eth.SyncStatus, error) {
	return client.Call[*eth.SyncStatus](ctx, r.session, eth.SyncingStatus())
}

func (r *RPC) NetListening(ctx context.Context) (bool, error) {
	return client.Call[bool](ctx, r.session, eth.NetListening())
}

func (r *RPC) NetPeerCount(ctx context.Context) (*big.Int, error) {
	return client.Call[*big.Int](ctx, r.session, eth.NetPeerCount())
}

func (r *RPC) NetVersion(ctx context.Context) (string, error) {
	return client.Call[string](ctx, r.session, eth.NetVersion())
}

func (r *RPC) ClientVersion(ctx context.Context) (string, error) {
	return client.Call[string](ctx, r.session, eth.Web3ClientVersion())
}

func (r *RPC) Sha3(ctx context.Context, data string) (string, error) {
	return client.Call[string](ctx, r.session, eth.Web3Sha3(data))
}

func (r *RPC) TxPoolContent(ctx context.Context) (json.RawMessage, error) {
	return client.Call[json.RawMessage](ctx, r.session, eth.TxPoolContent())
}

func (r *RPC) TxPoolStatus(ctx context.Context) (eth.TxPoolStatusResult, error) {
	return client.Call[eth.TxPoolStatusResult](ctx, r.session, eth.TxPoolStatus())
}

func (r *RPC) AdminNodeInfo(ctx context.Context) (json.RawMessage, error) {
	return client.Call[json.RawMessage](ctx, r.session, eth.AdminNodeInfo())
}

func (r *RPC) AdminPeers(ctx context.Context) (json.RawMessage, error) {
	return client.Call[json.RawMessage](ctx, r.session, eth.AdminPeers())
}

func (r *RPC) TraceTransaction(ctx context.Context, hash string, opts *eth.TraceOptions) (json.RawMessage, error) {
	return client.Call[json.RawMessage](ctx, r.session, eth.DebugTraceTransaction(hash, opts))
}

func (r *RPC) TraceCall(ctx context.Context, tx any, block string, opts *eth.TraceOptions) (json.RawMessage, error) {
	return client.Call[json.RawMessage](ctx, r.session, eth.DebugTraceCall(tx, block, opts))
}

// Subscribe opens an eth_subscribe channel. data is the log filter for
// "logs" and nil otherwise.
func (r *RPC) Subscribe(ctx context.Context, name string, data any, autoResubscribe bool, cb client.Callback) (*client.Subscription, error) {
	return r.session.Subscribe(ctx, eth.Subscribe(name, data), autoResubscribe, cb)
}

// SubscribeNewHeads delivers each new block header, raw.
func (r *RPC) SubscribeNewHeads(ctx context.Context, autoResubscribe bool, cb func(header json.RawMessage)) (*client.Subscription, error) {
	return r.Subscribe(ctx, eth.NewHeads, nil, autoResubscribe, func(result json.RawMessage, _ string) {
		cb(result)
	})
}

// SubscribeLogs delivers decoded logs matching filter. Logs that fail to
// decode are passed with a non-nil error.
func (r *RPC) SubscribeLogs(ctx context.Context, filter any, autoResubscribe bool, cb func(l eth.Log, err error)) (*client.Subscription, error) {
	return r.Subscribe(ctx, eth.Logs, filter, autoResubscribe, func(result json.RawMessage, _ string) {
		var l eth.Log
		err := payload.DecodeStruct(result, &l)
		cb(l, err)
	})
}

// Unsubscribe cancels a subscription by its server id.
func (r *RPC) Unsubscribe(ctx context.Context, id string) (bool, error) {
	return client.Call[bool](ctx, r.session, eth.Unsubscribe(id))
}

