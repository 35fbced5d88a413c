// Package solana is a typed facade over a client.Session for Solana nodes.
package solana

import (
	"context"
	"encoding/json"

	"github.com/localrivet/chainrpc/client"
	sol "github.com/localrivet/chainrpc/payload/solana"
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

// GetAccountInfo returns the raw account, null when it does not exist.
func (r *RPC) GetAccountInfo(ctx context.Context, address string, config sol.Config) (json.RawMessage, error) {
	return client.Call[json.RawMessage](ctx, r.session, sol.GetAccountInfo(address, config))
}

func (r *RPC) GetBalance(ctx context.Context, address string, config sol.Config) (uint64, error) {
	return client.Call[uint64](ctx, r.session, sol.GetBalance(address, config))
}

func (r *RPC) GetBlock(ctx context.Context, slot uint64, config sol.Config) (json.RawMessage, error) {
	return client.Call[json.RawMessage](ctx, r.session, sol.GetBlock(slot, config))
}

func (r *RPC) GetBlockHeight(ctx context.Context, config sol.Config) (uint64, error) {
	return client.Call[uint64](ctx, r.session, sol.GetBlockHeight(config))
}

func (r *RPC) GetBlocks(ctx context.Context, startSlot, endSlot uint64, config sol.Config) ([]uint64, error) {
	return client.Call[[]uint64](ctx, r.session, sol.GetBlocks(startSlot, endSlot, config))
}

// GetBlockTime reports false when the node has no time for slot.
func (r *RPC) GetBlockTime(ctx context.Context, slot uint64) (int64, bool, error) {
	v, err := r.session.Send(ctx, sol.GetBlockTime(slot))
	if err != nil || v == nil {
		return 0, false, err
	}
	return v.(int64), true, nil
}

func (r *RPC) GetEpochInfo(ctx context.Context, config sol.Config) (sol.EpochInfo, error) {
	return client.Call[sol.EpochInfo](ctx, r.session, sol.GetEpochInfo(config))
}

// GetFeeForMessage reports false when the message blockhash has expired.
func (r *RPC) GetFeeForMessage(ctx context.Context, message string, config sol.Config) (uint64, bool, error) {
	v, err := r.session.Send(ctx, sol.GetFeeForMessage(message, config))
	if err != nil || v == nil {
		return 0, false, err
	}
	return v.(uint64), true, nil
}

func (r *RPC) GetGenesisHash(ctx context.Context) (string, error) {
	return client.Call[string](ctx, r.session, sol.GetGenesisHash())
}

func (r *RPC) GetHealth(ctx context.Context) (string, error) {
	return client.Call[string](ctx, r.session, sol.GetHealth())
}

func (r *RPC) GetIdentity(ctx context.Context) (sol.Identity, error) {
	return client.Call[sol.Identity](ctx, r.session, sol.GetIdentity())
}

func (r *RPC) GetLatestBlockhash(ctx context.Context, config sol.Config) (sol.LatestBlockhash, error) {
	return client.Call[sol.LatestBlockhash](ctx, r.session, sol.GetLatestBlockhash(config))
}

func (r *RPC) GetMinimumBalanceForRentExemption(ctx context.Context, dataLength uint64, config sol.Config) (uint64, error) {
	return client.Call[uint64](ctx, r.session, sol.GetMinimumBalanceForRentExemption(dataLength, config))
}

func (r *RPC) GetMultipleAccounts(ctx context.Context, addresses []string, config sol.Config) (json.RawMessage, error) {
	return client.Call[json.RawMessage](ctx, r.session, sol.GetMultipleAccounts(addresses, config))
}

func (r *RPC) GetProgramAccounts(ctx context.Context, programID string, config sol.Config) (json.RawMessage, error) {
	return client.Call[json.RawMessage](ctx, r.session, sol.GetProgramAccounts(programID, config))
}

func (r *RPC) GetSignatureStatuses(ctx context.Context, signatures []string, config sol.Config) (json.RawMessage, error) {
	return client.Call[json.RawMessage](ctx, r.session, sol.GetSignatureStatuses(signatures, config))
}

func (r *RPC) GetSlot(ctx context.Context, config sol.Config) (uint64, error) {
	return client.Call[uint64](ctx, r.session, sol.GetSlot(config))
}

func (r *RPC) GetSlotLeader(ctx context.Context, config sol.Config) (string, error) {
	return client.Call[string](ctx, r.session, sol.GetSlotLeader(config))
}

func (r *RPC) GetTransaction(ctx context.Context, signature string, config sol.Config) (json.RawMessage, error) {
	return client.Call[json.RawMessage](ctx, r.session, sol.GetTransaction(signature, config))
}

func (r *RPC) GetTransactionCount(ctx context.Context, config sol.Config) (uint64, error) {
	return client.Call[uint64](ctx, r.session, sol.GetTransactionCount(config))
}

func (r *RPC) GetVersion(ctx context.Context) (sol.Version, error) {
	return client.Call[sol.Version](ctx, r.session, sol.GetVersion())
}

func (r *RPC) IsBlockhashValid(ctx context.Context, blockhash string, config sol.Config) (bool, error) {
	return client.Call[bool](ctx, r.session, sol.IsBlockhashValid(blockhash, config))
}

func (r *RPC) RequestAirdrop(ctx context.Context, address string, lamports uint64, config sol.Config) (string, error) {
	return client.Call[string](ctx, r.session, sol.RequestAirdrop(address, lamports, config))
}

func (r *RPC) SendTransaction(ctx context.Context, rawTx string, config sol.Config) (string, error) {
	return client.Call[string](ctx, r.session, sol.SendTransaction(rawTx, config))
}

func (r *RPC) SimulateTransaction(ctx context.Context, rawTx string, config sol.Config) (json.RawMessage, error) {
	return client.Call[json.RawMessage](ctx, r.session, sol.SimulateTransaction(rawTx, config))
}

// Notification results are delivered raw. Unsubscribing a returned
// subscription sends the matching *Unsubscribe method with its integer id.

func (r *RPC) AccountSubscribe(ctx context.Context, address string, config sol.Config, autoResubscribe bool, cb client.Callback) (*client.Subscription, error) {
	return r.session.Subscribe(ctx, sol.AccountSubscribe(address, config), autoResubscribe, cb)
}

func (r *RPC) LogsSubscribe(ctx context.Context, filter any, config sol.Config, autoResubscribe bool, cb client.Callback) (*client.Subscription, error) {
	return r.session.Subscribe(ctx, sol.LogsSubscribe(filter, config), autoResubscribe, cb)
}

func (r *RPC) ProgramSubscribe(ctx context.Context, programID string, config sol.Config, autoResubscribe bool, cb client.Callback) (*client.Subscription, error) {
	return r.session.Subscribe(ctx, sol.ProgramSubscribe(programID, config), autoResubscribe, cb)
}

func (r *RPC) SignatureSubscribe(ctx context.Context, signature string, config sol.Config, cb client.Callback) (*client.Subscription, error) {
	// signature subscriptions end after the first notification, so they are
	// never replayed on reconnect
	return r.session.Subscribe(ctx, sol.SignatureSubscribe(signature, config), false, cb)
}

func (r *RPC) SlotSubscribe(ctx context.Context, autoResubscribe bool, cb client.Callback) (*client.Subscription, error) {
	return r.session.Subscribe(ctx, sol.SlotSubscribe(), autoResubscribe, cb)
}

func (r *RPC) RootSubscribe(ctx context.Context, autoResubscribe bool, cb client.Callback) (*client.Subscription, error) {
	return r.session.Subscribe(ctx, sol.RootSubscribe(), autoResubscribe, cb)
}
