package bridge

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrorCategory classifies why a bridge call produced no response.
type ErrorCategory string

const (
	// ErrorTimeout indicates the backend took too long to respond
	ErrorTimeout ErrorCategory = "timeout"

	// ErrorCanceled indicates the caller gave up on the request
	ErrorCanceled ErrorCategory = "canceled"

	// ErrorBadData indicates the request could not be encoded or the response body could not be read
	ErrorBadData ErrorCategory = "bad_data"

	// ErrorProviderOutage indicates the backend could not be reached
	ErrorProviderOutage ErrorCategory = "provider_outage"

	// ErrorInternal indicates an unexpected client-side failure
	ErrorInternal ErrorCategory = "internal"
)

// TransportError is returned when a call produced no HTTP response. Any
// response, whatever its status, is returned as a Response instead.
type TransportError struct {
	Category   ErrorCategory
	Method     string
	Path       string
	Underlying error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("bridge %s %s [%s]: %v", e.Method, e.Path, e.Category, e.Underlying)
}

func (e *TransportError) Unwrap() error {
	return e.Underlying
}

func newTransportError(category ErrorCategory, method, path string, err error) *TransportError {
	return &TransportError{Category: category, Method: method, Path: path, Underlying: err}
}

// categorize maps a client.Do failure onto the taxonomy.
func categorize(err error) ErrorCategory {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ErrorTimeout
	case errors.Is(err, context.Canceled):
		return ErrorCanceled
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrorTimeout
	}
	return ErrorProviderOutage
}

// GetCategory extracts the category from err, defaulting to ErrorInternal.
func GetCategory(err error) ErrorCategory {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Category
	}
	return ErrorInternal
}
