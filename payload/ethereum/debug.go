package ethereum

import "github.com/localrivet/chainrpc/payload"

// TraceOptions configures the debug_trace* family. A nil *TraceOptions
// omits the argument.
type TraceOptions struct {
	Tracer         string         `json:"tracer,omitempty"`
	TracerConfig   map[string]any `json:"tracerConfig,omitempty"`
	Timeout        string         `json:"timeout,omitempty"`
	Reexec         uint64         `json:"reexec,omitempty"`
	DisableStorage bool           `json:"disableStorage,omitempty"`
	DisableStack   bool           `json:"disableStack,omitempty"`
	EnableMemory   bool           `json:"enableMemory,omitempty"`
	EnableReturn   bool           `json:"enableReturnData,omitempty"`
}

func DebugDumpBlock(block string) payload.Payload {
	return payload.Build("debug_dumpBlock", []any{tag(block)}, nil)
}

func DebugGcStats() payload.Payload {
	return payload.Build("debug_gcStats", nil, nil)
}

func DebugGetBadBlocks() payload.Payload {
	return payload.Build("debug_getBadBlocks", nil, nil)
}

func DebugStorageRangeAt(blockHash string, txIndex int, address, start string, limit int) payload.Payload {
	return payload.Build("debug_storageRangeAt", []any{blockHash, txIndex, address, start, limit}, nil)
}

func DebugTraceBlock(rlp string, opts *TraceOptions) payload.Payload {
	return payload.Build("debug_traceBlock", payload.Optional([]any{rlp}, opts), nil)
}

func DebugTraceBlockByHash(hash string, opts *TraceOptions) payload.Payload {
	return payload.Build("debug_traceBlockByHash", payload.Optional([]any{hash}, opts), nil)
}

func DebugTraceBlockByNumber(block string, opts *TraceOptions) payload.Payload {
	return payload.Build("debug_traceBlockByNumber", payload.Optional([]any{tag(block)}, opts), nil)
}

func DebugTraceCall(tx any, block string, opts *TraceOptions) payload.Payload {
	return payload.Build("debug_traceCall", payload.Optional([]any{tx, tag(block)}, opts), nil)
}

func DebugTraceTransaction(hash string, opts *TraceOptions) payload.Payload {
	return payload.Build("debug_traceTransaction", payload.Optional([]any{hash}, opts), nil)
}
