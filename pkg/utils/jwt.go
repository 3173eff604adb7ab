package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims are the claims the backend puts in its access tokens
type TokenClaims struct {
	UserID    *uint  `json:"user_id,omitempty"`
	TokenType string `json:"token_type,omitempty"`
	jwt.RegisteredClaims
}

// ParseTokenClaims decodes an access token WITHOUT verifying its signature.
// The client holds no signing key; the result is for display and logging,
// never for authorization decisions.
func ParseTokenClaims(tokenString string) (*TokenClaims, error) {
	if tokenString == "" {
		return nil, errors.New("empty token")
	}
	claims := &TokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// ExpiresIn reports the time left until exp, relative to now. ok is false
// when the token carries no exp claim.
func (c *TokenClaims) ExpiresIn(now time.Time) (d time.Duration, ok bool) {
	if c.ExpiresAt == nil {
		return 0, false
	}
	return c.ExpiresAt.Sub(now), true
}
