package domain

import (
	"errors"
	"fmt"
)

// ErrKind classifies Host App error responses for callers to branch on.
type ErrKind int

const (
	ErrGeneric      ErrKind = iota // any other >= 400
	ErrNotFound                    // 404 Not Found
	ErrUnauthorized                // 401/403
)

func (k ErrKind) String() string {
	switch k {
	case ErrNotFound:
		return "not found"
	case ErrUnauthorized:
		return "unauthorized"
	default:
		return "api error"
	}
}

// APIError is an error response from the Host App, classified by status code.
type APIError struct {
	Kind       ErrKind
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// TransportError is a failure that occurred before any HTTP status was
// obtained: connection refused, DNS, TLS handshake, request timeout.
// UI layers treat it as "service unreachable" rather than "service errored".
type TransportError struct {
	Op  string // method + path
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("host app unreachable (%s): %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError is a malformed JSON body on a nominally successful response.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed response body (%s): %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a classified 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == ErrNotFound
}

// IsUnauthorized reports whether err is a classified 401/403.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == ErrUnauthorized
}

// IsTransport reports whether err happened before an HTTP status was obtained.
func IsTransport(err error) bool {
	var tErr *TransportError
	return errors.As(err, &tErr)
}

// IsDecode reports whether err is a malformed success-body failure.
func IsDecode(err error) bool {
	var dErr *DecodeError
	return errors.As(err, &dErr)
}
