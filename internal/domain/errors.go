package domain

import (
	"errors"
	"fmt"
)

// Shape-level resolution failures. Each of these is recovered inside the
// resolver by falling back to the next source; none of them reaches the
// caller on its own.
var (
	// ErrRemoteDisabled signals that no remote endpoint is configured. A
	// routing decision, not a fault.
	ErrRemoteDisabled = errors.New("remote source not configured")

	// ErrTimeout signals a remote call exceeded its deadline and was aborted.
	ErrTimeout = errors.New("remote request timed out")

	// ErrParse signals a response or bundled snapshot could not be decoded.
	ErrParse = errors.New("malformed payload")

	// ErrIdentifierMismatch signals a resolved record names neither the
	// requested nor the default identifier.
	ErrIdentifierMismatch = errors.New("record identifier does not match request")
)

// ErrDataUnavailable is the only error the core surfaces to callers: the
// summary shape could not be resolved from any source, even after retrying
// with the default identifier.
var ErrDataUnavailable = errors.New("weather data unavailable")

// TransportError wraps a network or HTTP-level remote failure. Status is zero
// when the request never produced a response.
type TransportError struct {
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("remote request failed: status %d", e.Status)
	}
	return fmt.Sprintf("remote request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
