// Package ethereum builds payloads for Ethereum style JSON-RPC namespaces:
// eth, net, web3, txpool, admin, debug and les.
//
// Quantities are formatted as *big.Int, booleans and strings as their Go
// types. Results whose shape varies between clients and forks (blocks,
// transactions, receipts, traces) are returned as json.RawMessage.
package ethereum

import (
	"bytes"
	"encoding/json"
	"math/big"

	"github.com/localrivet/chainrpc/payload"
)

// Block tags accepted wherever a block parameter is taken.
const (
	Latest    = "latest"
	Earliest  = "earliest"
	Pending   = "pending"
	Safe      = "safe"
	Finalized = "finalized"
)

// Subscription names for eth_subscribe.
const (
	NewHeads               = "newHeads"
	Logs                   = "logs"
	NewPendingTransactions = "newPendingTransactions"
	Syncing                = "syncing"
)

// tag defaults an empty block parameter to latest.
func tag(block string) string {
	if block == "" {
		return Latest
	}
	return block
}

// BlockNumberTag encodes a block number as a hex quantity usable as a block
// parameter.
func BlockNumberTag(n uint64) string {
	return "0x" + new(big.Int).SetUint64(n).Text(16)
}

// Account is the result of eth_getAccount.
type Account struct {
	Balance     *big.Int `json:"balance"`
	Nonce       *big.Int `json:"nonce"`
	CodeHash    string   `json:"codeHash"`
	StorageRoot string   `json:"storageRoot"`
}

// StorageProof is one entry of Proof.StorageProof.
type StorageProof struct {
	Key   string   `json:"key"`
	Value *big.Int `json:"value"`
	Proof []string `json:"proof"`
}

// Proof is the result of eth_getProof.
type Proof struct {
	Address      string         `json:"address"`
	AccountProof []string       `json:"accountProof"`
	Balance      *big.Int       `json:"balance"`
	CodeHash     string         `json:"codeHash"`
	Nonce        *big.Int       `json:"nonce"`
	StorageHash  string         `json:"storageHash"`
	StorageProof []StorageProof `json:"storageProof"`
}

// SyncStatus is the object form of eth_syncing.
type SyncStatus struct {
	StartingBlock uint64 `json:"startingBlock"`
	CurrentBlock  uint64 `json:"currentBlock"`
	HighestBlock  uint64 `json:"highestBlock"`
}

// FeeHistory is the result of eth_feeHistory.
type FeeHistory struct {
	OldestBlock       uint64       `json:"oldestBlock"`
	BaseFeePerGas     []*big.Int   `json:"baseFeePerGas"`
	BaseFeePerBlobGas []*big.Int   `json:"baseFeePerBlobGas"`
	GasUsedRatio      []float64    `json:"gasUsedRatio"`
	BlobGasUsedRatio  []float64    `json:"blobGasUsedRatio"`
	Reward            [][]*big.Int `json:"reward"`
}

// Log is an entry returned by eth_getLogs and log subscriptions.
type Log struct {
	Address          string   `json:"address"`
	Topics           []string `json:"topics"`
	Data             string   `json:"data"`
	BlockNumber      uint64   `json:"blockNumber"`
	BlockHash        string   `json:"blockHash"`
	TransactionHash  string   `json:"transactionHash"`
	TransactionIndex uint64   `json:"transactionIndex"`
	LogIndex         uint64   `json:"logIndex"`
	Removed          bool     `json:"removed"`
}

// TxPoolStatusResult is the result of txpool_status.
type TxPoolStatusResult struct {
	Pending uint64 `json:"pending"`
	Queued  uint64 `json:"queued"`
}

// formatSyncing yields nil when the node reports false and a *SyncStatus
// otherwise.
func formatSyncing(raw json.RawMessage) (any, error) {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("false")) {
		return (*SyncStatus)(nil), nil
	}
	var s SyncStatus
	if err := payload.DecodeStruct(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
