package client

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying everything that can go wrong at an operation
// boundary. Callers check them with errors.Is.
var (
	// ErrValidation means a pre-flight check failed before any network call.
	ErrValidation = errors.New("validation failed")

	// ErrTransport means the server was unreachable or answered with an
	// unexpected status.
	ErrTransport = errors.New("transport failure")

	// ErrNotFound means the server does not know the requested contact.
	ErrNotFound = errors.New("contact not found")

	// ErrConflict means the server rejected the request as conflicting,
	// e.g. a phone number already in use.
	ErrConflict = errors.New("conflict")

	// ErrPartial means some calls of a batch group operation failed while
	// others succeeded. The BatchResult names the failed ids.
	ErrPartial = errors.New("partial failure")
)

// OpError wraps a sentinel with the operation that failed and the underlying
// cause, so callers can either classify with errors.Is or inspect the
// original error.
type OpError struct {
	Op       string
	Sentinel error
	Message  string
	Cause    error
}

func (e *OpError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Sentinel, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Sentinel)
}

func (e *OpError) Is(target error) bool { return errors.Is(e.Sentinel, target) }

func (e *OpError) Unwrap() error { return e.Cause }
