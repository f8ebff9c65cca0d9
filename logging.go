package ariston

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Logger is the minimal structured logging interface the client emits to.
// Messages carry alternating key-value pairs in the slog convention, and
// *slog.Logger satisfies the interface directly.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

var _ Logger = (*slog.Logger)(nil)

// noopLogger discards everything. It is the default when no logger is set,
// so logging calls never need nil checks.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// NewSlogLogger returns a Logger backed by the given slog handler.
// A nil handler selects slog's process-wide default.
func NewSlogLogger(h slog.Handler) Logger {
	if h == nil {
		return slog.Default()
	}
	return slog.New(h)
}

// WithLogger configures a structured logger for the client.
// When set, the client logs API requests and responses.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
//	client, _ := ariston.NewClient(user, pass, ariston.WithLogger(logger))
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// LoggingTransport wraps an http.RoundTripper and logs requests/responses.
// The auth token header is redacted before headers reach the log; request
// bodies are never logged (the login body carries the account password).
type LoggingTransport struct {
	Base   http.RoundTripper
	Logger Logger
}

// RoundTrip implements http.RoundTripper with logging.
func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	start := time.Now()

	// Log request
	if t.Logger != nil {
		t.Logger.Debug("api_request",
			"method", req.Method,
			"url", req.URL.String(),
			"headers", sanitizeHeaders(req.Header),
		)
	}

	resp, err := base.RoundTrip(req)
	duration := time.Since(start)

	// Log response or error
	if t.Logger != nil {
		if err != nil {
			t.Logger.Error("api_error",
				"method", req.Method,
				"url", req.URL.String(),
				"duration", duration,
				"error", err.Error(),
			)
		} else {
			args := []any{
				"method", req.Method,
				"url", req.URL.String(),
				"status", resp.StatusCode,
				"duration", duration,
			}
			switch {
			case resp.StatusCode >= 500:
				t.Logger.Error("api_response", args...)
			case resp.StatusCode >= 400:
				t.Logger.Warn("api_response", args...)
			default:
				t.Logger.Debug("api_response", args...)
			}
		}
	}

	return resp, err
}

// sanitizeHeaders flattens headers for logging with the auth token redacted.
func sanitizeHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, vs := range h {
		if len(vs) == 0 {
			continue
		}
		if strings.EqualFold(k, authTokenHeader) {
			out[k] = "[redacted]"
			continue
		}
		out[k] = vs[0]
	}
	return out
}

// logResponse logs one API exchange, escalating the level with the status.
func (c *Client) logResponse(method, path string, statusCode int, duration time.Duration, err error) {
	args := []any{
		"method", method,
		"path", path,
		"status", statusCode,
		"duration", duration,
	}
	if err != nil {
		args = append(args, "error", err.Error())
		c.logger.Error("api_response", args...)
		return
	}
	switch {
	case statusCode >= 500:
		c.logger.Error("api_response", args...)
	case statusCode >= 400:
		c.logger.Warn("api_response", args...)
	default:
		c.logger.Debug("api_response", args...)
	}
}

// NewLoggingClient creates a client with transport-level request logging
// enabled. This is a convenience wrapper over NewClient.
//
// Example:
//
//	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
//	client, err := ariston.NewLoggingClient(user, pass, logger)
func NewLoggingClient(username, password string, logger Logger, opts ...Option) (*Client, error) {
	transport := &LoggingTransport{
		Base:   newTransport(),
		Logger: logger,
	}

	httpClient := &http.Client{
		Timeout:   DefaultTimeout,
		Transport: transport,
	}

	allOpts := append([]Option{WithHTTPClient(httpClient), WithLogger(logger)}, opts...)

	return NewClient(username, password, allOpts...)
}
