package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthorized covers rejected credentials and revoked/expired tokens.
	// Any operation that surfaces it has already torn the session down.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNoSavedSession means the vault slot is empty. Not a failure.
	ErrNoSavedSession = errors.New("no saved session")
)

// NetworkError wraps a transport-level failure. Connectivity problems do
// not imply an invalid credential, so callers must never treat this as a
// logout trigger.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// PersistenceError wraps a secure-storage read or write failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// APIError is a non-auth HTTP failure from the remote service.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: status %d", e.Status)
}

// IsNetwork reports whether err is (or wraps) a NetworkError.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsPersistence reports whether err is (or wraps) a PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
