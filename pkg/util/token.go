package util

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrMalformedToken = errors.New("malformed token")

// TokenInfo carries the claims the storefront reads from a backend
// session token.
type TokenInfo struct {
	Username  string
	ExpiresAt time.Time
}

// PeekToken decodes a backend token without verifying its signature. The
// backend remains the authority on token validity; the storefront only
// uses the claims to warn about sessions that would be rejected anyway.
func PeekToken(token string) (*TokenInfo, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, ErrMalformedToken
	}

	info := &TokenInfo{}
	if username, ok := claims["username"].(string); ok {
		info.Username = username
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info, nil
}

// Expired reports whether the token is past its expiry. Tokens without
// an exp claim never expire client-side.
func (t *TokenInfo) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt)
}
