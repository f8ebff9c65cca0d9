package ariston

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the Ariston client.
// All errors are defined here for easy discovery and consistent organization.
var (
	// Credential validation errors
	ErrEmptyUsername = errors.New("ariston: username cannot be empty")
	ErrEmptyPassword = errors.New("ariston: password cannot be empty")

	// Authentication errors
	ErrInvalidCredentials = errors.New("ariston: invalid credentials")
	ErrLoginFailed        = errors.New("ariston: login failed (password changed?)")
	ErrInvalidToken       = errors.New("ariston: invalid token")

	// Lookup errors
	ErrGatewayNotFound   = errors.New("ariston: gateway not found")
	ErrUnsupportedDevice = errors.New("ariston: unsupported device type")

	// State errors
	ErrNotConnected = errors.New("ariston: not connected (call Connect first)")

	// Data errors
	ErrNoData = errors.New("ariston: no data available")
)

// APIError represents an error response from the Ariston NET API.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Endpoint != "" {
		return fmt.Sprintf("ariston: API error %d: %s (endpoint: %s)", e.StatusCode, e.Message, e.Endpoint)
	}
	return fmt.Sprintf("ariston: API error %d: %s", e.StatusCode, e.Message)
}

// IsAuthError returns true if the error indicates an authentication failure.
func IsAuthError(err error) bool {
	if errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrLoginFailed) || errors.Is(err, ErrInvalidToken) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401 || apiErr.StatusCode == 403 || apiErr.StatusCode == 405
	}
	return false
}

// IsNotFound returns true if the error indicates the resource was not found.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrGatewayNotFound) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	return false
}

// IsTimeout returns true if the error indicates a timeout.
func IsTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
