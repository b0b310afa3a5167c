package session

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenEnvelope matches the top level of the login/refresh response. The
// backend's envelope has shipped in several shapes across deployments, so
// every historically observed field is checked. Data stays raw because
// some deployments nest the tokens one level down.
type tokenEnvelope struct {
	Token        string          `json:"token"`
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	Data         json.RawMessage `json:"data"`
}

type nestedTokens struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// extractTokens pulls the access and refresh tokens out of a login or
// refresh response body. Extraction order for the access token is
// access_token, token, data.token; for the refresh token refresh_token,
// data.refresh_token. Both may be empty.
func extractTokens(body []byte) (access, refresh string) {
	var env tokenEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", ""
	}

	access = env.AccessToken
	if access == "" {
		access = env.Token
	}
	refresh = env.RefreshToken

	if access != "" && refresh != "" {
		return access, refresh
	}

	inner := bytes.TrimSpace(env.Data)
	if len(inner) == 0 || inner[0] != '{' {
		return access, refresh
	}
	var nested nestedTokens
	if err := json.Unmarshal(inner, &nested); err != nil {
		return access, refresh
	}
	if access == "" {
		access = nested.Token
	}
	if refresh == "" {
		refresh = nested.RefreshToken
	}
	return access, refresh
}

// TokenInfo is the displayable subset of the access token's claims. The
// token is parsed without signature verification; the client has no key
// material and only uses the claims for display and expiry hints.
type TokenInfo struct {
	Subject   string
	Email     string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// Expired reports whether the token's exp claim has passed. Tokens without
// an exp claim never report expired.
func (i TokenInfo) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}

// InspectToken decodes a JWT access token's claims without verifying the
// signature.
func InspectToken(token string) (TokenInfo, error) {
	parser := jwt.NewParser()
	parsed, _, err := parser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return TokenInfo{}, fmt.Errorf("parsing access token: %w", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return TokenInfo{}, fmt.Errorf("unexpected claims type %T", parsed.Claims)
	}

	info := TokenInfo{}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if email, ok := claims["email"].(string); ok {
		info.Email = email
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}
	return info, nil
}
