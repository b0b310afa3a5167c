package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/dotprogrammers/walc-admin/pkg/client"
)

// Transport is the subset of the HTTP gateway the manager needs. The
// gateway applies route classification, so login and refresh go out
// without an Authorization header while logout carries one.
type Transport interface {
	Do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error)
}

// ManagerConfig configures a Manager.
type ManagerConfig struct {
	API   Transport
	Store Store

	// Logger receives logout and refresh diagnostics. slog.Default() when
	// nil.
	Logger *slog.Logger

	// OnExpired runs once when an authenticated session is expired by the
	// 401 cascade. The CLI uses it to tell the operator to log in again.
	OnExpired func()
}

// Manager owns the session lifecycle. It implements client.AuthProvider,
// closing the loop between the gateway's 401 cascade and the stored token
// pair.
type Manager struct {
	api       Transport
	store     Store
	logger    *slog.Logger
	onExpired func()

	// mu guards the cached session. refreshMu serializes refresh attempts
	// so concurrent 401s share a single flight instead of each issuing
	// their own refresh call.
	mu        sync.Mutex
	current   Session
	loaded    bool
	refreshMu sync.Mutex
}

// NewManager creates a Manager. The stored session, if any, is loaded
// lazily on first use.
func NewManager(cfg ManagerConfig) *Manager {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		api:       cfg.API,
		store:     cfg.Store,
		logger:    logger,
		onExpired: cfg.OnExpired,
	}
}

// Login exchanges credentials for a token pair and persists it.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	data, err := m.api.Do(ctx, http.MethodPost, client.PathLogin, nil, body)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("login request: %w", err)
	}

	access, refresh := extractTokens(data)
	if access == "" {
		return ErrNoTokenInResponse
	}

	sess := Session{
		AccessToken:  access,
		RefreshToken: refresh,
		IssuedAt:     time.Now(),
	}
	if err := m.setSession(sess); err != nil {
		return fmt.Errorf("persisting session: %w", err)
	}
	return nil
}

// Refresh exchanges the stored refresh token for a new access token.
// Overlapping calls share one flight: a caller that waited while another
// refresh completed returns success without issuing a second exchange.
func (m *Manager) Refresh(ctx context.Context) error {
	before := m.AccessToken()

	m.refreshMu.Lock()
	defer m.refreshMu.Unlock()

	if tok := m.AccessToken(); tok != "" && tok != before {
		// Another flight rotated the pair while this caller waited.
		return nil
	}

	sess, err := m.snapshot()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}
	if sess.RefreshToken == "" {
		return fmt.Errorf("%w: %w", ErrRefreshFailed, ErrNoRefreshToken)
	}

	body := map[string]string{"refresh_token": sess.RefreshToken}
	data, err := m.api.Do(ctx, http.MethodPost, client.PathRefresh, nil, body)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}

	access, refresh := extractTokens(data)
	if access == "" {
		return fmt.Errorf("%w: %w", ErrRefreshFailed, ErrNoTokenInResponse)
	}
	if refresh == "" {
		// The backend does not always rotate the refresh token.
		refresh = sess.RefreshToken
	}

	next := Session{
		AccessToken:  access,
		RefreshToken: refresh,
		IssuedAt:     time.Now(),
	}
	if err := m.setSession(next); err != nil {
		return fmt.Errorf("%w: persisting session: %w", ErrRefreshFailed, err)
	}
	return nil
}

// Logout revokes the token server-side on a best-effort basis and always
// clears the local session. Network failure is logged, never surfaced: the
// user-visible effect of logging out must always succeed.
func (m *Manager) Logout(ctx context.Context) {
	sess, err := m.snapshot()
	if err != nil {
		m.logger.Warn("loading session before logout", "error", err)
	}

	if sess.Authenticated() {
		if _, err := m.api.Do(ctx, http.MethodPost, client.PathLogout, nil, struct{}{}); err != nil {
			m.logger.Warn("logout request failed, clearing local session anyway", "error", err)
		}
	} else {
		m.logger.Warn("no access token held at logout")
	}

	m.clear()
}

// IsAuthenticated reports whether an access token is present.
func (m *Manager) IsAuthenticated() bool {
	sess, err := m.snapshot()
	return err == nil && sess.Authenticated()
}

// AccessToken returns the current access token, or "" when anonymous.
func (m *Manager) AccessToken() string {
	sess, err := m.snapshot()
	if err != nil {
		m.logger.Warn("loading session", "error", err)
		return ""
	}
	return sess.AccessToken
}

// Current returns the stored session.
func (m *Manager) Current() (Session, error) {
	return m.snapshot()
}

// TokenInfo decodes the current access token's claims for display.
func (m *Manager) TokenInfo() (TokenInfo, error) {
	sess, err := m.snapshot()
	if err != nil {
		return TokenInfo{}, err
	}
	if !sess.Authenticated() {
		return TokenInfo{}, errors.New("session: not authenticated")
	}
	return InspectToken(sess.AccessToken)
}

// Expire discards the session after an irrecoverable 401. The OnExpired
// hook fires only when an authenticated session was actually dropped, so a
// plain failed login does not announce an expiry.
func (m *Manager) Expire() {
	hadToken := m.AccessToken() != ""
	m.clear()
	if hadToken && m.onExpired != nil {
		m.onExpired()
	}
}

// snapshot returns the cached session, loading it from the store on first
// use.
func (m *Manager) snapshot() (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.loaded {
		sess, err := m.store.Load()
		if err != nil {
			return Session{}, err
		}
		m.current = sess
		m.loaded = true
	}
	return m.current, nil
}

func (m *Manager) setSession(sess Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Save(sess); err != nil {
		return err
	}
	m.current = sess
	m.loaded = true
	return nil
}

func (m *Manager) clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Clear(); err != nil {
		m.logger.Warn("clearing session store", "error", err)
	}
	m.current = Session{}
	m.loaded = true
}

// Verify interface compliance.
var _ client.AuthProvider = (*Manager)(nil)
