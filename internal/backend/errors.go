package backend

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned for any 401 response. Handlers treat it
// globally: flash a session-expired notice and send the user to the login
// page, the same way for every operation.
var ErrUnauthorized = errors.New("backend: unauthorized")

// RequestError wraps a transport-level failure (connection refused, timeout,
// canceled context). The backend was never reached or never answered.
type RequestError struct {
	Op  string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("backend: %s: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// StatusError is a non-2xx answer from the backend, carrying the
// user-facing message the backend sent, if any.
type StatusError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend: %s: status %d: %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend: %s: status %d", e.Op, e.StatusCode)
}

// UserMessage returns the backend's message or a generic fallback suitable
// for showing to the user.
func (e *StatusError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return "Something went wrong. Please try again."
}

// DecodeError means the backend answered 2xx but the body did not match the
// expected schema. Distinct from StatusError so callers never mistake a
// malformed response for a clean rejection.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("backend: %s: malformed response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
