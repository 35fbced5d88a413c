package protocol

import "fmt"

// Error implements the error interface so an ErrorPayload can be returned
// directly where no request context is available.
func (e *ErrorPayload) Error() string {
	return fmt.Sprintf("jsonrpc error %d: %s", e.Code, e.Message)
}

// IsServerError reports whether the code lies in the implementation-defined
// server error range.
func (e *ErrorPayload) IsServerError() bool {
	return e.Code >= CodeServerErrorStart && e.Code <= CodeServerErrorEnd
}
