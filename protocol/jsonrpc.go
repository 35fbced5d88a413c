// Package protocol defines the JSON-RPC 2.0 wire structures exchanged with
// blockchain nodes over any transport.
package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Version is the only JSON-RPC version spoken on the wire.
const Version = "2.0"

// ErrorPayload is the 'error' member of a JSON-RPC response.
type ErrorPayload struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Request is a JSON-RPC request envelope.
type Request struct {
	JSONRPC string `json:"jsonrpc"` // MUST be "2.0"
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

// Response is a raw JSON-RPC response as returned by a node. Result is kept
// undecoded so that formatters see the exact bytes the node sent.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *ErrorPayload   `json:"error,omitempty"`
}

// HasError reports whether the response carries a non-null error member.
func (r *Response) HasError() bool {
	return r != nil && r.Error != nil
}

// Notification is a server push without an id, e.g. eth_subscription.
type Notification struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// SubscriptionParams is the params member of a subscription notification.
type SubscriptionParams struct {
	Subscription json.RawMessage `json:"subscription"`
	Result       json.RawMessage `json:"result"`
}

// NewRequest builds a request envelope. A nil params slice is sent as [].
func NewRequest(id uint64, method string, params []any) *Request {
	if params == nil {
		params = []any{}
	}
	return &Request{
		JSONRPC: Version,
		ID:      id,
		Method:  method,
		Params:  params,
	}
}

// IDKey canonicalises a raw JSON id (or subscription id) so that "0x1f",
// 31 and "31" style values can be compared as map keys. Strings are
// unquoted; numbers keep their literal text.
func IDKey(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	if raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9') {
		if n, err := strconv.ParseUint(string(raw), 10, 64); err == nil {
			return strconv.FormatUint(n, 10)
		}
	}
	return string(raw)
}

// NumericID decodes a raw id into the uint64 this client issued.
func NumericID(raw json.RawMessage) (uint64, error) {
	key := IDKey(raw)
	if key == "" {
		return 0, fmt.Errorf("missing id")
	}
	n, err := strconv.ParseUint(key, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("id %s is not an unsigned integer: %w", raw, err)
	}
	return n, nil
}

// IsBatch reports whether a JSON document is an array.
func IsBatch(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == '['
}

// Probe is used to classify an inbound message without fully decoding it.
type Probe struct {
	ID     json.RawMessage `json:"id,omitempty"`
	Method string          `json:"method,omitempty"`
}

// IsNotification reports whether the probed message is a server push.
func (p Probe) IsNotification() bool {
	return IDKey(p.ID) == "" && p.Method != ""
}
