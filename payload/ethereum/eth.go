package ethereum

import (
	"github.com/localrivet/chainrpc/payload"
)

func Accounts() payload.Payload {
	return payload.Build("eth_accounts", nil, payload.Into[[]string]())
}

func BlobBaseFee() payload.Payload {
	return payload.Build("eth_blobBaseFee", nil, payload.BigInt)
}

func BlockNumber() payload.Payload {
	return payload.Build("eth_blockNumber", nil, payload.BigInt)
}

// Call executes tx against the state at block without creating a
// transaction. stateOverride may be nil.
func Call(tx any, block string, stateOverride any) payload.Payload {
	return payload.Build("eth_call", payload.Optional([]any{tx, tag(block)}, stateOverride), payload.String)
}

// CallMany simulates a sequence of bundles. Unset trailing arguments are
// omitted.
func CallMany(bundles any, block string, blockOverride, simulationContext, stateOverride any, timeout int) payload.Payload {
	params := []any{bundles, tag(block)}
	if timeout > 0 {
		params = append(params, blockOverride, simulationContext, stateOverride, timeout)
	} else {
		params = payload.Optional(params, blockOverride, simulationContext, stateOverride)
	}
	return payload.Build("eth_callMany", params, nil)
}

func ChainID() payload.Payload {
	return payload.Build("eth_chainId", nil, payload.BigInt)
}

func EstimateGas(tx any, block string, stateOverride any) payload.Payload {
	return payload.Build("eth_estimateGas", payload.Optional([]any{tx, tag(block)}, stateOverride), payload.BigInt)
}

// FeeHistoryOf returns base fees and priority fee percentiles for blockCount
// blocks ending at newestBlock. rewardPercentiles may be nil.
func FeeHistoryOf(blockCount uint64, newestBlock string, rewardPercentiles []float64) payload.Payload {
	params := []any{BlockNumberTag(blockCount), tag(newestBlock)}
	if rewardPercentiles != nil {
		params = append(params, rewardPercentiles)
	}
	return payload.Build("eth_feeHistory", params, payload.Struct[FeeHistory]())
}

func GasPrice() payload.Payload {
	return payload.Build("eth_gasPrice", nil, payload.BigInt)
}

func GetAccount(address, block string) payload.Payload {
	return payload.Build("eth_getAccount", []any{address, tag(block)}, payload.Struct[Account]())
}

func GetBalance(address, block string) payload.Payload {
	return payload.Build("eth_getBalance", []any{address, tag(block)}, payload.BigInt)
}

func GetBlockByHash(hash string, fullTransactions bool) payload.Payload {
	return payload.Build("eth_getBlockByHash", []any{hash, fullTransactions}, nil)
}

func GetBlockByNumber(block string, fullTransactions bool) payload.Payload {
	return payload.Build("eth_getBlockByNumber", []any{tag(block), fullTransactions}, nil)
}

func GetBlockReceipts(block string) payload.Payload {
	return payload.Build("eth_getBlockReceipts", []any{tag(block)}, nil)
}

func GetBlockTransactionCountByHash(hash string) payload.Payload {
	return payload.Build("eth_getBlockTransactionCountByHash", []any{hash}, payload.BigInt)
}

func GetBlockTransactionCountByNumber(block string) payload.Payload {
	return payload.Build("eth_getBlockTransactionCountByNumber", []any{tag(block)}, payload.BigInt)
}

func GetCode(address, block string) payload.Payload {
	return payload.Build("eth_getCode", []any{address, tag(block)}, payload.String)
}

// GetFilterChanges returns logs or hashes depending on the filter kind, so
// the result is left raw.
func GetFilterChanges(filterID string) payload.Payload {
	return payload.Build("eth_getFilterChanges", []any{filterID}, nil)
}

func GetFilterLogs(filterID string) payload.Payload {
	return payload.Build("eth_getFilterLogs", []any{filterID}, payload.Struct[[]Log]())
}

func GetLogs(filter any) payload.Payload {
	return payload.Build("eth_getLogs", []any{filter}, payload.Struct[[]Log]())
}

func GetProof(address string, storageKeys []string, block string) payload.Payload {
	if storageKeys == nil {
		storageKeys = []string{}
	}
	return payload.Build("eth_getProof", []any{address, storageKeys, tag(block)}, payload.Struct[Proof]())
}

func GetStorageAt(address, position, block string) payload.Payload {
	return payload.Build("eth_getStorageAt", []any{address, position, tag(block)}, payload.String)
}

func GetTransactionByBlockHashAndIndex(hash, index string) payload.Payload {
	return payload.Build("eth_getTransactionByBlockHashAndIndex", []any{hash, index}, nil)
}

func GetTransactionByBlockNumberAndIndex(block, index string) payload.Payload {
	return payload.Build("eth_getTransactionByBlockNumberAndIndex", []any{tag(block), index}, nil)
}

func GetTransactionByHash(hash string) payload.Payload {
	return payload.Build("eth_getTransactionByHash", []any{hash}, nil)
}

func GetRawTransactionByHash(hash string) payload.Payload {
	return payload.Build("eth_getRawTransactionByHash", []any{hash}, payload.String)
}

func GetTransactionCount(address, block string) payload.Payload {
	return payload.Build("eth_getTransactionCount", []any{address, tag(block)}, payload.BigInt)
}

func GetTransactionReceipt(hash string) payload.Payload {
	return payload.Build("eth_getTransactionReceipt", []any{hash}, nil)
}

func GetUncleCountByBlockHash(hash string) payload.Payload {
	return payload.Build("eth_getUncleCountByBlockHash", []any{hash}, payload.BigInt)
}

func GetUncleCountByBlockNumber(block string) payload.Payload {
	return payload.Build("eth_getUncleCountByBlockNumber", []any{tag(block)}, payload.BigInt)
}

func Hashrate() payload.Payload {
	return payload.Build("eth_hashrate", nil, payload.BigInt)
}

func MaxPriorityFeePerGas() payload.Payload {
	return payload.Build("eth_maxPriorityFeePerGas", nil, payload.BigInt)
}

func Mining() payload.Payload {
	return payload.Build("eth_mining", nil, payload.Bool)
}

func NewBlockFilter() payload.Payload {
	return payload.Build("eth_newBlockFilter", nil, payload.String)
}

func NewFilter(filter any) payload.Payload {
	return payload.Build("eth_newFilter", []any{filter}, payload.String)
}

func NewPendingTransactionFilter() payload.Payload {
	return payload.Build("eth_newPendingTransactionFilter", nil, payload.String)
}

func SendRawTransaction(signedTx string) payload.Payload {
	return payload.Build("eth_sendRawTransaction", []any{signedTx}, payload.String)
}

func SignTransaction(tx any) payload.Payload {
	return payload.Build("eth_signTransaction", []any{tx}, nil)
}

// SimulateV1 takes either a single simulation payload or a slice of them.
func SimulateV1(simulation any, block string) payload.Payload {
	return payload.Build("eth_simulateV1", []any{simulation, tag(block)}, nil)
}

func SubmitWork(nonce, powHash, digest string) payload.Payload {
	return payload.Build("eth_submitWork", []any{nonce, powHash, digest}, payload.Bool)
}

// Subscribe opens an eth_subscribe channel. data carries the filter for
// log subscriptions and may be nil.
func Subscribe(name string, data any) payload.Payload {
	return payload.Build("eth_subscribe", payload.Optional([]any{name}, data), payload.String)
}

// SyncingStatus formats false as a nil *SyncStatus.
func SyncingStatus() payload.Payload {
	return payload.Build("eth_syncing", nil, formatSyncing)
}

func UninstallFilter(filterID string) payload.Payload {
	return payload.Build("eth_uninstallFilter", []any{filterID}, payload.Bool)
}

func Unsubscribe(subscriptionID string) payload.Payload {
	return payload.Build("eth_unsubscribe", []any{subscriptionID}, payload.Bool)
}
