package oauth2

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// AccessTokenClaims is the inspectable payload of a JWT access token.
// eSignBase access tokens are opaque to the client; when they happen to be
// JWTs the claims are useful for diagnostics (expiry, granted scopes).
type AccessTokenClaims struct {
	jwt.RegisteredClaims
	Scope    string `json:"scope,omitempty"`
	ClientID string `json:"client_id,omitempty"`
}

// Scopes returns the space-separated scope claim as a slice.
func (c *AccessTokenClaims) Scopes() []string {
	return strings.Fields(c.Scope)
}

// Expiry returns the exp claim, or the zero time when absent.
func (c *AccessTokenClaims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// ParseAccessTokenClaims decodes the claims of a JWT access token WITHOUT
// verifying its signature. Never use the result for authorization decisions.
func ParseAccessTokenClaims(raw string) (*AccessTokenClaims, error) {
	if raw == "" {
		return nil, ErrEmptyAccessToken
	}
	if strings.Count(raw, ".") != 2 {
		return nil, ErrMalformedJWT
	}

	claims := &AccessTokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, errors.Wrap(ErrMalformedJWT, err.Error())
	}
	return claims, nil
}
