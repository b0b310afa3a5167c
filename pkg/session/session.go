// Package session owns the access/refresh token pair for the admin
// backend: login, logout, refresh-token exchange, and persistence across
// invocations through an injected Store.
package session

import (
	"errors"
	"time"
)

// Session is the persisted token pair. The user is considered
// authenticated iff AccessToken is non-empty.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	IssuedAt     time.Time `json:"issued_at"`
}

// Authenticated reports whether the session holds an access token.
func (s Session) Authenticated() bool {
	return s.AccessToken != ""
}

// Store persists a session between invocations. Implementations must treat
// Clear as atomic: one call removes the access token, the refresh token and
// the issue timestamp together.
type Store interface {
	// Load returns the stored session, or a zero Session when none exists.
	Load() (Session, error)

	// Save replaces the stored session.
	Save(Session) error

	// Clear removes the stored session. Clearing an empty store is not an
	// error.
	Clear() error
}

var (
	// ErrNoTokenInResponse means login or refresh succeeded at the
	// transport level but none of the known response shapes yielded a
	// token.
	ErrNoTokenInResponse = errors.New("session: no token in response")

	// ErrRefreshFailed means the refresh endpoint returned non-success or
	// an unusable body.
	ErrRefreshFailed = errors.New("session: refresh failed")

	// ErrNoRefreshToken means a refresh was requested but no refresh token
	// is stored.
	ErrNoRefreshToken = errors.New("session: no refresh token")

	// ErrInvalidCredentials means the backend rejected the login.
	ErrInvalidCredentials = errors.New("session: invalid credentials")
)
