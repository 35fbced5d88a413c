// Package payload describes RPC calls independently of any session: a
// method, its positional params and an optional formatter that turns the raw
// result into a Go value.
package payload

import (
	"encoding/json"
)

// FormatFunc converts the raw result member of a response.
type FormatFunc func(raw json.RawMessage) (any, error)

// Payload is a method call waiting to be enveloped and sent.
type Payload struct {
	Method string
	Params []any
	// Format is applied to the result. When nil the raw result is returned
	// unchanged as a json.RawMessage.
	Format FormatFunc
}

// Build creates a payload. A nil params slice is sent as [].
func Build(method string, params []any, format FormatFunc) Payload {
	if params == nil {
		params = []any{}
	}
	return Payload{Method: method, Params: params, Format: format}
}

// New creates a payload without a formatter.
func New(method string, params ...any) Payload {
	return Build(method, params, nil)
}

// Reformat returns a copy of p with its formatter replaced.
func Reformat(p Payload, format FormatFunc) Payload {
	p.Format = format
	return p
}

// Apply runs the payload's formatter over a raw result.
func (p Payload) Apply(raw json.RawMessage) (any, error) {
	if p.Format == nil {
		return raw, nil
	}
	return p.Format(raw)
}

// Optional appends the trailing params that are set, stopping at the first
// unset one so that positional meaning is kept. A value is unset when it is
// nil or a nil pointer, map or slice.
func Optional(params []any, optional ...any) []any {
	for _, v := range optional {
		if isUnset(v) {
			break
		}
		params = append(params, v)
	}
	return params
}
