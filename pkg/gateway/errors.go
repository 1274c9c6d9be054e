package gateway

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned when no destination spreadsheet is set.
var ErrNotConfigured = errors.New("spreadsheet ID not configured")

// ValidationError reports a malformed request payload.
type ValidationError struct {
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid payload: %s: %v", e.Reason, e.Err)
	}
	return "invalid payload: " + e.Reason
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// RemoteIOError wraps a failed call to the external store.
type RemoteIOError struct {
	Op  string
	Err error
}

func (e *RemoteIOError) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *RemoteIOError) Unwrap() error {
	return e.Err
}
