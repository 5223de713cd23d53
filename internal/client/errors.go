package client

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthorized is returned when the NVR answers 401 or 403.
	// Credentials are static for the life of the process, so no retry
	// is attempted.
	ErrNotAuthorized = errors.New("nvr reported authorization failure")

	// ErrNotFound is returned when a camera name resolves to nothing.
	ErrNotFound = errors.New("no camera with that name")
)

// ConnError is a transport-level failure (DNS, refused, reset) as
// opposed to an HTTP-level one.
type ConnError struct {
	Err error
}

func (e *ConnError) Error() string {
	return fmt.Sprintf("failed to contact nvr: %v", e.Err)
}

func (e *ConnError) Unwrap() error { return e.Err }

// RequestError is a non-2xx response other than 401/403.
type RequestError struct {
	Status int
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed: %d", e.Status)
}

// InvalidArgumentError reports a setter value outside the field's
// accepted vocabulary. It is raised before any request is issued.
type InvalidArgumentError struct {
	Field string
	Value string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid value %q for %s", e.Value, e.Field)
}
