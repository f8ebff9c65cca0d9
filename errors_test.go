package ariston

import (
	"errors"
	"fmt"
	"testing"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *APIError
		wantMsg string
	}{
		{
			name: "with endpoint",
			err: &APIError{
				StatusCode: 500,
				Message:    "Internal server error",
				Endpoint:   "remote/plants",
			},
			wantMsg: "ariston: API error 500: Internal server error (endpoint: remote/plants)",
		},
		{
			name: "without endpoint",
			err: &APIError{
				StatusCode: 400,
				Message:    "Bad request",
			},
			wantMsg: "ariston: API error 400: Bad request",
		},
		{
			name: "empty message",
			err: &APIError{
				StatusCode: 503,
			},
			wantMsg: "ariston: API error 503: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.wantMsg {
				t.Errorf("APIError.Error() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestIsAuthError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "ErrInvalidCredentials", err: ErrInvalidCredentials, want: true},
		{name: "ErrLoginFailed", err: ErrLoginFailed, want: true},
		{name: "ErrInvalidToken", err: ErrInvalidToken, want: true},
		{name: "wrapped ErrLoginFailed", err: fmt.Errorf("%w: boom", ErrLoginFailed), want: true},
		{name: "401 APIError", err: &APIError{StatusCode: 401}, want: true},
		{name: "403 APIError", err: &APIError{StatusCode: 403}, want: true},
		{name: "405 APIError", err: &APIError{StatusCode: 405}, want: true},
		{name: "500 APIError", err: &APIError{StatusCode: 500}, want: false},
		{name: "unrelated error", err: errors.New("boom"), want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAuthError(tt.err); got != tt.want {
				t.Errorf("IsAuthError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "ErrGatewayNotFound", err: ErrGatewayNotFound, want: true},
		{name: "wrapped ErrGatewayNotFound", err: fmt.Errorf("%w: gw1", ErrGatewayNotFound), want: true},
		{name: "404 APIError", err: &APIError{StatusCode: 404}, want: true},
		{name: "500 APIError", err: &APIError{StatusCode: 500}, want: false},
		{name: "unrelated error", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFound(tt.err); got != tt.want {
				t.Errorf("IsNotFound() = %v, want %v", got, tt.want)
			}
		})
	}
}

type timeoutErr struct{ timeout bool }

func (e *timeoutErr) Error() string { return "timeout" }
func (e *timeoutErr) Timeout() bool { return e.timeout }

func TestIsTimeout(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "timeout net error", err: &timeoutErr{timeout: true}, want: true},
		{name: "non-timeout net error", err: &timeoutErr{timeout: false}, want: false},
		{name: "wrapped timeout", err: fmt.Errorf("request failed: %w", &timeoutErr{timeout: true}), want: true},
		{name: "plain error", err: errors.New("boom"), want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTimeout(tt.err); got != tt.want {
				t.Errorf("IsTimeout() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSentinelWrapping(t *testing.T) {
	err := fmt.Errorf("%w: whe type 99", ErrUnsupportedDevice)
	if !errors.Is(err, ErrUnsupportedDevice) {
		t.Error("wrapped ErrUnsupportedDevice not matched by errors.Is")
	}
}
