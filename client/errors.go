package client

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Standard error types that can be used with errors.Is()
var (
	ErrUnsupportedProtocol = errors.New("network type is not supported, only http, ws and .ipc endpoints are")
	ErrRPC                 = errors.New("server reported error")
	ErrBatchRequestFailed  = errors.New("batch request failed")
	ErrMissingResponse     = errors.New("no response for request in batch")
	ErrInvalidResponse     = errors.New("invalid response from server")
	ErrNotSubscribable     = errors.New("transport does not support subscriptions")
)

// UnsupportedProtocolError names an endpoint that matches no transport.
type UnsupportedProtocolError struct {
	Endpoint string
}

// Error implements the error interface
func (e *UnsupportedProtocolError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnsupportedProtocol.Error(), e.Endpoint)
}

// Is makes errors.Is(err, ErrUnsupportedProtocol) hold.
func (e *UnsupportedProtocolError) Is(target error) bool {
	return target == ErrUnsupportedProtocol
}

// RPCError carries the error object a node returned for a request.
type RPCError struct {
	Method  string
	Code    int
	Message string
	Data    json.RawMessage
}

// Error implements the error interface
func (e *RPCError) Error() string {
	if e.Method == "" {
		return fmt.Sprintf("rpc error (code=%d): %s", e.Code, e.Message)
	}
	return fmt.Sprintf("rpc error during %s (code=%d): %s", e.Method, e.Code, e.Message)
}

// Is makes errors.Is(err, ErrRPC) hold.
func (e *RPCError) Is(target error) bool {
	return target == ErrRPC
}

// BatchError reports a batch reply that was not an array.
type BatchError struct {
	Raw string
}

// Error implements the error interface
func (e *BatchError) Error() string {
	return fmt.Sprintf("%s: %s", ErrBatchRequestFailed.Error(), e.Raw)
}

// Is makes errors.Is(err, ErrBatchRequestFailed) hold.
func (e *BatchError) Is(target error) bool {
	return target == ErrBatchRequestFailed
}

// IsRPCError checks if an error was reported by the node, returning it.
func IsRPCError(err error) (*RPCError, bool) {
	var rpcErr *RPCError
	if errors.As(err, &rpcErr) {
		return rpcErr, true
	}
	return nil, false
}

// IsUnsupportedProtocol checks if an error is an unsupported endpoint error
func IsUnsupportedProtocol(err error) bool {
	return errors.Is(err, ErrUnsupportedProtocol)
}
