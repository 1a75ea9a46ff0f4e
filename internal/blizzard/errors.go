package blizzard

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Sentinel errors for Blizzard API operations.
var (
	// ErrAuthFailed is returned when the client-credentials exchange is
	// rejected or the token response is malformed. Fatal to a run.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrNotAuthenticated is returned when an API call is attempted before
	// a token has been acquired.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrBracketUnavailable is returned when a bracket is requested for a
	// season that does not serve it.
	ErrBracketUnavailable = errors.New("bracket not available for season")

	// ErrEmptyResponse is returned when the API answers 200 with an empty
	// body.
	ErrEmptyResponse = errors.New("empty response body")

	// ErrRequestTimeout is returned when a request exceeds the client
	// timeout.
	ErrRequestTimeout = errors.New("request timed out")

	// ErrConnectionFailed is returned for transport errors other than
	// timeouts.
	ErrConnectionFailed = errors.New("connection failed")
)

// APIError is a non-200 HTTP response from the API.
type APIError struct {
	StatusCode int
	Body       string
}

// Error returns the error message.
func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("API error (status %d)", e.StatusCode)
}

// NewAPIError creates a new APIError.
func NewAPIError(statusCode int, body string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Body:       body,
	}
}

// VendorError is an error payload the API delivers inside a 200 response.
type VendorError struct {
	Message string
}

// Error returns the vendor-reported message.
func (e *VendorError) Error() string {
	return fmt.Sprintf("vendor error: %s", e.Message)
}

// classifyTransport maps a transport-level failure onto the sentinel it
// belongs to, keeping timeouts distinct from connection failures.
func classifyTransport(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrRequestTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrRequestTimeout, err)
	}

	if errors.Is(err, context.Canceled) {
		return err
	}

	return fmt.Errorf("%w: %v", ErrConnectionFailed, err)
}
