package dispatch

import (
	"errors"
	"fmt"
)

// ErrRetryExhausted marks a call whose shared retry budget ran out.
// Errors returned on that path wrap the last underlying cause, so both
// errors.Is(err, ErrRetryExhausted) and errors.As against the cause work.
var ErrRetryExhausted = errors.New("maximum retry attempts exceeded")

// CodeMalformedResponse is the APIError code set when a 2xx body fails
// to decode as JSON, so callers can tell gateway rejections from garbage
// responses without matching message text.
const CodeMalformedResponse = "malformed_response"

// APIError is a well-formed error payload from the gateway.
type APIError struct {
	Code       string
	Message    string
	HTTPStatus int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bkash api error: %s (code %s, http %d)", e.Message, e.Code, e.HTTPStatus)
}

// NetworkError is a transport-level failure: timeout, connection refused,
// broken pipe.
type NetworkError struct {
	Cause error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Cause)
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

type retryExhaustedError struct {
	last error
}

func (e *retryExhaustedError) Error() string {
	return fmt.Sprintf("%v: %v", ErrRetryExhausted, e.last)
}

func (e *retryExhaustedError) Unwrap() error {
	return e.last
}

func (e *retryExhaustedError) Is(target error) bool {
	return target == ErrRetryExhausted
}

func exhausted(last error) error {
	if last == nil {
		return ErrRetryExhausted
	}
	return &retryExhaustedError{last: last}
}
