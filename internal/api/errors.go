// Package api provides the typed HTTP client for the Arabic Music AI backend.
package api

import (
	"errors"
	"fmt"
)

// NetworkError indicates the request never completed: connection failure,
// timeout, or retries exhausted. The operation may be retried by the user.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: request did not complete: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerRejectedError indicates the HTTP exchange succeeded but the backend
// answered success=false. Message carries the backend's error string verbatim.
type ServerRejectedError struct {
	Op      string
	Message string
}

func (e *ServerRejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: rejected by server", e.Op)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// MalformedResponseError indicates the response body could not be decoded
// into the expected shape. Treated as a defect and logged for diagnostics.
type MalformedResponseError struct {
	Op  string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: malformed response: %v", e.Op, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// IsNetworkError checks whether err is (or wraps) a NetworkError.
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// ServerMessage extracts the backend's verbatim error string when err is a
// server rejection. Returns false for any other error kind.
func ServerMessage(err error) (string, bool) {
	var rejected *ServerRejectedError
	if errors.As(err, &rejected) {
		return rejected.Message, true
	}
	return "", false
}

// IsMalformedResponse checks whether err is (or wraps) a MalformedResponseError.
func IsMalformedResponse(err error) bool {
	var malformed *MalformedResponseError
	return errors.As(err, &malformed)
}
