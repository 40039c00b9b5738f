package kobis

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrNotFound is the single externally visible failure of a lookup
	ErrNotFound = errors.New("Not found")
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid kobis configuration")
	// ErrMissingResult indicates the response envelope lacked its result object
	ErrMissingResult = errors.New("missing result object in response")
)

// Kind classifies the underlying cause of a failed lookup
type Kind string

const (
	// KindHTTPStatus indicates a non-2xx response from the provider
	KindHTTPStatus Kind = "http_status"
	// KindTransport indicates a network level failure (DNS, refused, timeout)
	KindTransport Kind = "transport"
	// KindParse indicates the body could not be decoded or projected
	KindParse Kind = "parse"
	// KindFault indicates the provider answered with a faultInfo envelope
	KindFault Kind = "fault"
)

// Error is returned for every failed lookup. Whatever the Kind, callers
// present it as a 404 "Not found"; the cause is kept for diagnostics.
type Error struct {
	Kind Kind
	// URL with the API key redacted
	URL string
	// Status is the provider HTTP status, zero when no response was received
	Status int
	Err    error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("kobis %s error", e.Kind)
	if e.Status != 0 {
		msg += fmt.Sprintf(": status %d", e.Status)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

// Unwrap returns the original cause
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports every lookup failure as ErrNotFound
func (e *Error) Is(target error) bool {
	return target == ErrNotFound
}

// StatusCode is the HTTP status presented to end users
func (e *Error) StatusCode() int {
	return http.StatusNotFound
}

// PublicMessage is the message presented to end users
func (e *Error) PublicMessage() string {
	return ErrNotFound.Error()
}

// IsKind checks whether err is a lookup failure of the given kind
func IsKind(err error, kind Kind) bool {
	var ke *Error
	if errors.As(err, &ke) {
		return ke.Kind == kind
	}
	return false
}

// FaultError carries the provider's faultInfo payload
type FaultError struct {
	Code    string
	Message string
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("provider fault %s: %s", e.Code, e.Message)
}
