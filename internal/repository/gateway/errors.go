package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized indicates the gateway rejected the bearer token. A
	// locally valid session signature is necessary but not sufficient;
	// callers treat this as session-ending.
	ErrUnauthorized = errors.New("gateway rejected credentials")
	// ErrTimeout indicates the call exceeded its deadline. Distinguished from
	// authentication failures so the user sees "check your connection"
	// rather than "invalid credentials".
	ErrTimeout = errors.New("gateway request timed out")
	// ErrUnavailable indicates a connectivity failure reaching the gateway.
	ErrUnavailable = errors.New("gateway unreachable")
	// ErrNotFound indicates the requested resource does not exist upstream.
	ErrNotFound = errors.New("resource not found")
)

// APIError is a gateway-reported failure carrying the upstream status code
// and message.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements error.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("gateway error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("gateway error (%d)", e.StatusCode)
}
