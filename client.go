package ariston

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultBaseURL is the Ariston NET remote thermo API base URL.
	// Paths are appended without a leading slash.
	DefaultBaseURL = "https://www.ariston-net.remotethermo.com/api/v2/"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// authTokenHeader carries the session token on every authenticated call.
	authTokenHeader = "ar.authToken"
)

// Client is an Ariston NET API client. It authenticates with account
// credentials, holds the resulting session token, and transparently logs
// in again when the service reports the token expired.
//
// A Client is safe for concurrent use by multiple goroutines.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	logger     Logger

	featuresCache Cache
	featuresTTL   time.Duration

	tokenMu sync.RWMutex
	token   string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL for the API.
// The URL must end with a trailing slash.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP request timeout.
// This option can be applied in any order relative to other options.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if c.httpClient == nil {
			c.httpClient = &http.Client{}
		}
		c.httpClient.Timeout = timeout
	}
}

// newTransport returns the tuned transport shared by the constructors.
func newTransport() *http.Transport {
	return &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		DisableKeepAlives:   false,
	}
}

// NewClient creates a new Ariston NET API client.
// Returns ErrEmptyUsername or ErrEmptyPassword if a credential is missing.
// The client holds no session yet; call Connect (or any operation, which
// logs in on demand when the service rejects the empty token).
func NewClient(username, password string, opts ...Option) (*Client, error) {
	if username == "" {
		return nil, ErrEmptyUsername
	}
	if password == "" {
		return nil, ErrEmptyPassword
	}

	c := &Client{
		baseURL:  DefaultBaseURL,
		username: username,
		password: password,
		httpClient: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: newTransport(),
		},
		logger: noopLogger{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Connect authenticates and stores the session token.
func (c *Client) Connect() error {
	return c.ConnectContext(context.Background())
}

// ConnectContext authenticates against the account service and stores the
// session token used by subsequent requests. Rejected credentials map to
// ErrInvalidCredentials.
func (c *Client) ConnectContext(ctx context.Context) error {
	return c.login(ctx)
}

// loginResponse is the subset of the login reply the client needs.
type loginResponse struct {
	Token string `json:"token"`
}

// login posts the account credentials and stores the returned token.
// It deliberately bypasses do: a login must never trigger the expired-token
// replay that do performs.
func (c *Client) login(ctx context.Context) error {
	payload := map[string]string{"usr": c.username, "pwd": c.password}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("ariston: failed to marshal login body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"accounts/login", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("ariston: failed to create login request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logResponse(http.MethodPost, "accounts/login", 0, time.Since(start), err)
		return fmt.Errorf("ariston: login request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ariston: failed to read login response: %w", err)
	}
	c.logResponse(http.MethodPost, "accounts/login", resp.StatusCode, time.Since(start), nil)

	if resp.StatusCode >= 400 {
		if resp.StatusCode < 500 {
			return ErrInvalidCredentials
		}
		return c.handleError(resp.StatusCode, "accounts/login", body)
	}

	parsed, err := unmarshalResponse[loginResponse](body, "login response")
	if err != nil {
		return err
	}
	if parsed.Token == "" {
		return ErrLoginFailed
	}

	c.setToken(parsed.Token)
	c.logger.Debug("session established", "user", c.username)
	return nil
}

// do performs an authenticated request and returns the response body.
//
// Vendor quirks handled here, once, for every operation:
//   - 405 means the session token expired. The client logs in again and
//     replays the request a single time; a second 405 is ErrInvalidToken.
//   - 404 means "nothing there yet" rather than a routing error, and is
//     returned as (nil, nil).
//   - A 2xx with an empty body is also (nil, nil).
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	return c.doOnce(ctx, method, path, body, false)
}

func (c *Client) doOnce(ctx context.Context, method, path string, body any, retried bool) ([]byte, error) {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("ariston: failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("ariston: failed to create request: %w", err)
	}

	req.Header.Set(authTokenHeader, c.Token())
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logResponse(method, path, 0, time.Since(start), err)
		return nil, fmt.Errorf("ariston: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ariston: failed to read response body: %w", err)
	}
	c.logResponse(method, path, resp.StatusCode, time.Since(start), nil)

	switch {
	case resp.StatusCode == http.StatusMethodNotAllowed:
		if retried {
			return nil, ErrInvalidToken
		}
		if err := c.login(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoginFailed, err)
		}
		return c.doOnce(ctx, method, path, body, true)

	case resp.StatusCode == http.StatusNotFound:
		return nil, nil

	case resp.StatusCode >= 400:
		return nil, c.handleError(resp.StatusCode, path, respBody)
	}

	if len(respBody) == 0 {
		return nil, nil
	}
	return respBody, nil
}

// handleError converts HTTP error responses to *APIError.
// Vendor error bodies are unstructured, so the trimmed body doubles as the
// message.
func (c *Client) handleError(statusCode int, endpoint string, body []byte) error {
	msg := strings.TrimSpace(truncatePreview(body))
	if msg == "" {
		msg = http.StatusText(statusCode)
	}
	return &APIError{
		StatusCode: statusCode,
		Message:    msg,
		Endpoint:   endpoint,
	}
}

// setToken stores the session token.
func (c *Client) setToken(token string) {
	c.tokenMu.Lock()
	c.token = token
	c.tokenMu.Unlock()
}

// Token returns the current session token, or the empty string before the
// first successful login. Useful for persisting sessions across restarts
// together with SetToken.
func (c *Client) Token() string {
	c.tokenMu.RLock()
	defer c.tokenMu.RUnlock()
	return c.token
}

// SetToken seeds the client with a previously obtained session token.
// The client still falls back to a credential login when the service
// rejects it.
func (c *Client) SetToken(token string) {
	c.setToken(token)
}

// get performs a GET request.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// post performs a POST request.
func (c *Client) post(ctx context.Context, path string, body any) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, body)
}
