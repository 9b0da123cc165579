// Package workflow implements the client-side coordination for uploads,
// generation runs and training sessions: staged file selection, request
// validation and encoding, single-flight submission guards, and polling of
// long-running server jobs.
package workflow

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAlreadyInProgress is returned synchronously when a submission is
// attempted while another one for the same workflow is still outstanding.
// No network call is made.
var ErrAlreadyInProgress = errors.New("a submission for this workflow is already in progress")

// ErrAlreadyPolling is returned when a status watcher is started while one
// is already attached to the same job slot.
var ErrAlreadyPolling = errors.New("a status watcher is already attached")

// ErrSuperseded is returned by a running poller when a newer session took
// over its job slot; its remaining snapshots are discarded.
var ErrSuperseded = errors.New("status watcher superseded by a newer session")

// ValidationError reports every missing or invalid field of a request at
// once. It is resolved at the point of submission and never reaches the
// network layer.
type ValidationError struct {
	MissingFields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid fields: %s", strings.Join(e.MissingFields, ", "))
}

// InvalidFileKindError reports a staged file whose type is outside the
// slot's allow-list.
type InvalidFileKindError struct {
	Name    string
	Allowed []string
}

func (e *InvalidFileKindError) Error() string {
	return fmt.Sprintf("file %q is not an accepted type (allowed: %s)", e.Name, strings.Join(e.Allowed, ", "))
}

// FileTooLargeError reports a staged file exceeding the upload size cap.
type FileTooLargeError struct {
	Name      string
	SizeBytes int64
	MaxBytes  int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file %q is %d bytes, above the %d byte limit", e.Name, e.SizeBytes, e.MaxBytes)
}

// IsValidationError checks whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
