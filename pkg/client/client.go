// Package client is the HTTP gateway to the hotel-management backend.
//
// Every outbound request is classified as public or protected before
// dispatch. Protected requests carry the current bearer token; public
// requests never do. A 401 on a protected request triggers a
// refresh-then-retry cascade that retries the original request at most
// once, and expires the local session when the cascade cannot recover.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultTimeout = 30 * time.Second

// AuthProvider supplies bearer tokens and reacts to authorization failures.
// *session.Manager implements it.
type AuthProvider interface {
	// AccessToken returns the current access token, or "" when anonymous.
	AccessToken() string

	// Refresh exchanges the refresh token for a new access token. It must be
	// safe for concurrent callers: overlapping calls share one attempt.
	Refresh(ctx context.Context) error

	// Expire clears the local session after an irrecoverable 401.
	Expire()
}

// Config configures a Client.
type Config struct {
	// BaseURL is the backend root, e.g. "https://walc.dotprogrammers.com/api".
	BaseURL string

	// HTTPClient is the underlying transport. A 30s-timeout client is used
	// when nil.
	HTTPClient *http.Client

	// Logger receives request diagnostics. slog.Default() when nil.
	Logger *slog.Logger
}

// Client dispatches JSON requests to the backend.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *slog.Logger
	auth    AuthProvider
}

// New creates a Client. The auth provider is attached separately via
// SetAuthProvider because the session manager needs the client for its own
// transport.
func New(cfg Config) *Client {
	httpc := cfg.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: defaultTimeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpc:   httpc,
		logger:  logger,
	}
}

// SetAuthProvider attaches the token source used for protected routes.
func (c *Client) SetAuthProvider(p AuthProvider) {
	c.auth = p
}

// Get issues a GET request and decodes the response body into out when out
// is non-nil.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, nil, body, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	data, err := c.Do(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}

// Do dispatches a request and returns the raw response body. Callers that
// need envelope normalization decode the bytes with DecodeList or
// DecodeObject.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	var payload []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding %s %s body: %w", method, path, err)
		}
		payload = encoded
	}
	return c.dispatch(ctx, method, path, query, payload, false)
}

// dispatch sends one attempt. retried marks a request redispatched after a
// successful refresh; such a request is never refreshed again.
func (c *Client) dispatch(ctx context.Context, method, path string, query url.Values, payload []byte, retried bool) ([]byte, error) {
	requestID := uuid.NewString()

	req, err := c.newRequest(ctx, method, path, query, payload)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Request-Id", requestID)
	c.attachAuthorization(req, path, requestID)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dispatching %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s %s response: %w", method, path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return c.handleUnauthorized(ctx, method, path, query, payload, retried, requestID)
	}
	if resp.StatusCode >= 400 {
		return nil, apiErrorFromBody(resp.StatusCode, requestID, data)
	}
	return data, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, payload []byte) (*http.Request, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("building %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// attachAuthorization applies the route classification rules: protected
// routes get the bearer token when one exists, public routes never do.
func (c *Client) attachAuthorization(req *http.Request, path, requestID string) {
	if Classify(path) != RouteProtected {
		return
	}

	token := ""
	if c.auth != nil {
		token = c.auth.AccessToken()
	}
	if token == "" {
		// Proceed anyway: the server rejects the call, the client does not
		// block it.
		c.logger.Warn("no access token for protected route",
			"path", path, "request_id", requestID)
		return
	}
	req.Header.Set("Authorization", "Bearer "+token)
}

// handleUnauthorized runs the 401 cascade: refresh and retry once, or
// expire the session. The refresh and logout endpoints are excluded from
// refresh so a failed refresh can never trigger another one.
func (c *Client) handleUnauthorized(ctx context.Context, method, path string, query url.Values, payload []byte, retried bool, requestID string) ([]byte, error) {
	refreshable := !retried && path != PathRefresh && path != PathLogout && c.auth != nil
	if refreshable {
		if err := c.auth.Refresh(ctx); err != nil {
			c.logger.Warn("token refresh failed",
				"path", path, "request_id", requestID, "error", err)
		} else {
			c.logger.Debug("retrying request after refresh",
				"path", path, "request_id", requestID)
			return c.dispatch(ctx, method, path, query, payload, true)
		}
	}

	// Terminal: clear the session, except for the logout call, which
	// handles its own local teardown.
	if c.auth != nil && path != PathLogout {
		c.auth.Expire()
	}
	return nil, fmt.Errorf("%s %s: %w", method, path, ErrUnauthorized)
}
