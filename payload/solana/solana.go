// Package solana builds payloads for the Solana JSON-RPC API, including the
// pubsub subscription methods.
//
// Methods that answer with a {"context", "value"} wrapper are formatted to
// their value. Optional configuration objects are passed as Config; a nil
// Config is omitted from the params.
package solana

import (
	"github.com/localrivet/chainrpc/payload"
)

// Config is an optional configuration object, e.g.
// Config{"commitment": Finalized, "encoding": Base64}.
type Config map[string]any

// Commitment levels.
const (
	Processed = "processed"
	Confirmed = "confirmed"
	Finalized = "finalized"
)

// Account data encodings.
const (
	Base58     = "base58"
	Base64     = "base64"
	Base64Zstd = "base64+zstd"
	JSONParsed = "jsonParsed"
)

// Version is the result of getVersion.
type Version struct {
	SolanaCore string `json:"solana-core"`
	FeatureSet uint64 `json:"feature-set"`
}

// EpochInfo is the result of getEpochInfo.
type EpochInfo struct {
	AbsoluteSlot     uint64 `json:"absoluteSlot"`
	BlockHeight      uint64 `json:"blockHeight"`
	Epoch            uint64 `json:"epoch"`
	SlotIndex        uint64 `json:"slotIndex"`
	SlotsInEpoch     uint64 `json:"slotsInEpoch"`
	TransactionCount uint64 `json:"transactionCount"`
}

// LatestBlockhash is the value of getLatestBlockhash.
type LatestBlockhash struct {
	Blockhash            string `json:"blockhash"`
	LastValidBlockHeight uint64 `json:"lastValidBlockHeight"`
}

// Identity is the result of getIdentity.
type Identity struct {
	Identity string `json:"identity"`
}

func params(required []any, config Config) []any {
	if required == nil {
		required = []any{}
	}
	if config != nil {
		return append(required, config)
	}
	return required
}

// GetAccountInfo returns the raw account object, or null when the account
// does not exist.
func GetAccountInfo(address string, config Config) payload.Payload {
	return payload.Build("getAccountInfo", params([]any{address}, config), payload.Value(nil))
}

// GetBalance returns the lamport balance.
func GetBalance(address string, config Config) payload.Payload {
	return payload.Build("getBalance", params([]any{address}, config), payload.Value(payload.Uint64))
}

func GetBlock(slot uint64, config Config) payload.Payload {
	return payload.Build("getBlock", params([]any{slot}, config), nil)
}

func GetBlockHeight(config Config) payload.Payload {
	return payload.Build("getBlockHeight", params(nil, config), payload.Uint64)
}

func GetBlockProduction(config Config) payload.Payload {
	return payload.Build("getBlockProduction", params(nil, config), payload.Value(nil))
}

func GetBlockCommitment(slot uint64) payload.Payload {
	return payload.Build("getBlockCommitment", []any{slot}, nil)
}

// GetBlocks lists confirmed blocks from startSlot up to endSlot. An endSlot
// of zero is omitted.
func GetBlocks(startSlot, endSlot uint64, config Config) payload.Payload {
	p := []any{startSlot}
	if endSlot != 0 {
		p = append(p, endSlot)
	}
	return payload.Build("getBlocks", params(p, config), payload.Into[[]uint64]())
}

func GetBlocksWithLimit(startSlot, limit uint64, config Config) payload.Payload {
	return payload.Build("getBlocksWithLimit", params([]any{startSlot, limit}, config), payload.Into[[]uint64]())
}

// GetBlockTime returns the estimated unix production time, nil if unknown.
func GetBlockTime(slot uint64) payload.Payload {
	return payload.Build("getBlockTime", []any{slot}, payload.Nullable(payload.Int))
}

func GetClusterNodes() payload.Payload {
	return payload.Build("getClusterNodes", nil, nil)
}

func GetEpochInfo(config Config) payload.Payload {
	return payload.Build("getEpochInfo", params(nil, config), payload.Struct[EpochInfo]())
}

func GetEpochSchedule() payload.Payload {
	return payload.Build("getEpochSchedule", nil, nil)
}

// GetFeeForMessage returns the fee in lamports, nil if the blockhash has
// expired.
func GetFeeForMessage(message string, config Config) payload.Payload {
	return payload.Build("getFeeForMessage", params([]any{message}, config), payload.Value(payload.Nullable(payload.Uint64)))
}

func GetFirstAvailableBlock() payload.Payload {
	return payload.Build("getFirstAvailableBlock", nil, payload.Uint64)
}

func GetGenesisHash() payload.Payload {
	return payload.Build("getGenesisHash", nil, payload.String)
}

func GetHealth() payload.Payload {
	return payload.Build("getHealth", nil, payload.String)
}

func GetHighestSnapshotSlot() payload.Payload {
	return payload.Build("getHighestSnapshotSlot", nil, nil)
}

func GetIdentity() payload.Payload {
	return payload.Build("getIdentity", nil, payload.Struct[Identity]())
}

func GetInflationGovernor(config Config) payload.Payload {
	return payload.Build("getInflationGovernor", params(nil, config), nil)
}

func GetInflationRate() payload.Payload {
	return payload.Build("getInflationRate", nil, nil)
}

func GetInflationReward(addresses []string, config Config) payload.Payload {
	return payload.Build("getInflationReward", params([]any{addresses}, config), nil)
}

func GetLargestAccounts(config Config) payload.Payload {
	return payload.Build("getLargestAccounts", params(nil, config), payload.Value(nil))
}

func GetLatestBlockhash(config Config) payload.Payload {
	return payload.Build("getLatestBlockhash", params(nil, config), payload.Value(payload.Struct[LatestBlockhash]()))
}

// GetLeaderSchedule returns the schedule for the epoch containing slot. A
// nil slot selects the current epoch; it is sent as null when a config is
// given.
func GetLeaderSchedule(slot *uint64, config Config) payload.Payload {
	var p []any
	switch {
	case slot != nil:
		p = []any{*slot}
	case config != nil:
		p = []any{nil}
	}
	return payload.Build("getLeaderSchedule", params(p, config), payload.Nullable(payload.Into[map[string][]uint64]()))
}

func GetMaxRetransmitSlot() payload.Payload {
	return payload.Build("getMaxRetransmitSlot", nil, payload.Uint64)
}

func GetMaxShredInsertSlot() payload.Payload {
	return payload.Build("getMaxShredInsertSlot", nil, payload.Uint64)
}

func GetMinimumBalanceForRentExemption(dataLength uint64, config Config) payload.Payload {
	return payload.Build("getMinimumBalanceForRentExemption", params([]any{dataLength}, config), payload.Uint64)
}

func GetMultipleAccounts(addresses []string, config Config) payload.Payload {
	return payload.Build("getMultipleAccounts", params([]any{addresses}, config), payload.Value(nil))
}

func GetProgramAccounts(programID string, config Config) payload.Payload {
	return payload.Build("getProgramAccounts", params([]any{programID}, config), nil)
}

// GetRecentPerformanceSamples omits a zero limit.
func GetRecentPerformanceSamples(limit int) payload.Payload {
	var p []any
	if limit > 0 {
		p = []any{limit}
	}
	return payload.Build("getRecentPerformanceSamples", p, nil)
}

func GetSignaturesForAddress(address string, config Config) payload.Payload {
	return payload.Build("getSignaturesForAddress", params([]any{address}, config), nil)
}

func GetSignatureStatuses(signatures []string, config Config) payload.Payload {
	return payload.Build("getSignatureStatuses", params([]any{signatures}, config), payload.Value(nil))
}

func GetSlot(config Config) payload.Payload {
	return payload.Build("getSlot", params(nil, config), payload.Uint64)
}

func GetSlotLeader(config Config) payload.Payload {
	return payload.Build("getSlotLeader", params(nil, config), payload.String)
}

func GetStakeActivation(publicKey string, config Config) payload.Payload {
	return payload.Build("getStakeActivation", params([]any{publicKey}, config), nil)
}

func GetSupply(config Config) payload.Payload {
	return payload.Build("getSupply", params(nil, config), payload.Value(nil))
}

func GetTokenAccountBalance(account string, config Config) payload.Payload {
	return payload.Build("getTokenAccountBalance", params([]any{account}, config), payload.Value(nil))
}

// GetTokenAccountsByDelegate takes a filter of {"mint": ...} or
// {"programId": ...}.
func GetTokenAccountsByDelegate(delegate string, filter map[string]string, config Config) payload.Payload {
	return payload.Build("getTokenAccountsByDelegate", params([]any{delegate, filter}, config), payload.Value(nil))
}

func GetTokenAccountsByOwner(owner string, filter map[string]string, config Config) payload.Payload {
	return payload.Build("getTokenAccountsByOwner", params([]any{owner, filter}, config), payload.Value(nil))
}

func GetTokenLargestAccounts(mint string, config Config) payload.Payload {
	return payload.Build("getTokenLargestAccounts", params([]any{mint}, config), payload.Value(nil))
}

func GetTokenSupply(mint string, config Config) payload.Payload {
	return payload.Build("getTokenSupply", params([]any{mint}, config), payload.Value(nil))
}

func GetTransaction(signature string, config Config) payload.Payload {
	return payload.Build("getTransaction", params([]any{signature}, config), nil)
}

func GetTransactionCount(config Config) payload.Payload {
	return payload.Build("getTransactionCount", params(nil, config), payload.Uint64)
}

func GetVersion() payload.Payload {
	return payload.Build("getVersion", nil, payload.Struct[Version]())
}

func GetVoteAccounts(config Config) payload.Payload {
	return payload.Build("getVoteAccounts", params(nil, config), nil)
}

func IsBlockhashValid(blockhash string, config Config) payload.Payload {
	return payload.Build("isBlockhashValid", params([]any{blockhash}, config), payload.Value(payload.Bool))
}

func MinimumLedgerSlot() payload.Payload {
	return payload.Build("minimumLedgerSlot", nil, payload.Uint64)
}

// RequestAirdrop returns the airdrop transaction signature.
func RequestAirdrop(address string, lamports uint64, config Config) payload.Payload {
	return payload.Build("requestAirdrop", params([]any{address, lamports}, config), payload.String)
}

func SendTransaction(rawTx string, config Config) payload.Payload {
	return payload.Build("sendTransaction", params([]any{rawTx}, config), payload.String)
}

func SimulateTransaction(rawTx string, config Config) payload.Payload {
	return payload.Build("simulateTransaction", params([]any{rawTx}, config), payload.Value(nil))
}
