package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}

func TestExtractTokens(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantAccess  string
		wantRefresh string
	}{
		{"access_token wins", `{"access_token":"a","token":"b"}`, "a", ""},
		{"token fallback", `{"token":"b"}`, "b", ""},
		{"nested fallback", `{"data":{"token":"c","refresh_token":"r"}}`, "c", "r"},
		{"flat refresh", `{"access_token":"a","refresh_token":"r"}`, "a", "r"},
		{"data is not an object", `{"token":"b","data":"ignored"}`, "b", ""},
		{"nothing", `{"success":true}`, "", ""},
		{"not json", `<html>`, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			access, refresh := extractTokens([]byte(tt.body))
			assert.Equal(t, tt.wantAccess, access)
			assert.Equal(t, tt.wantRefresh, refresh)
		})
	}
}

func TestInspectToken(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	iat := time.Now().Truncate(time.Second)
	token := signedToken(t, jwt.MapClaims{
		"sub":   "42",
		"email": "admin@example.com",
		"exp":   exp.Unix(),
		"iat":   iat.Unix(),
	})

	info, err := InspectToken(token)
	require.NoError(t, err)
	assert.Equal(t, "42", info.Subject)
	assert.Equal(t, "admin@example.com", info.Email)
	assert.True(t, info.ExpiresAt.Equal(exp))
	assert.True(t, info.IssuedAt.Equal(iat))
	assert.False(t, info.Expired(time.Now()))
	assert.True(t, info.Expired(exp.Add(time.Minute)))
}

func TestInspectToken_WithoutExpiry(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "42"})

	info, err := InspectToken(token)
	require.NoError(t, err)
	assert.True(t, info.ExpiresAt.IsZero())
	assert.False(t, info.Expired(time.Now()), "tokens without exp never expire locally")
}

func TestInspectToken_Malformed(t *testing.T) {
	_, err := InspectToken("not-a-jwt")
	assert.Error(t, err)
}
