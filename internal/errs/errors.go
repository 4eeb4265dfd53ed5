// Package errs defines the error kinds shared by the data access layer,
// the explore engine and the user state store.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the provider has no record for the requested code.
	ErrNotFound = errors.New("country not found")
	// ErrStorageCorrupt means the persisted user state could not be decoded.
	ErrStorageCorrupt = errors.New("stored user state is corrupt")
	// ErrCapacity means the comparison selection is already full.
	ErrCapacity = errors.New("comparison selection is full")
)

// NetworkError is a request that failed in transport or returned a non-2xx status.
type NetworkError struct {
	URL        string
	StatusCode int
	Status     string
	Err        error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("request %s failed: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("request %s failed: %s", e.URL, e.Status)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsNetwork reports whether err carries a NetworkError.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// StatusCode returns the HTTP status of a NetworkError in err's chain, or 0.
func StatusCode(err error) int {
	var ne *NetworkError
	if errors.As(err, &ne) {
		return ne.StatusCode
	}
	return 0
}
