package oauth2

import (
	"strings"
	"time"

	"github.com/jrsteele09/go-esignbase/internal/utils"
	xoauth2 "golang.org/x/oauth2"
)

// TokenResponse represents the response from an OAuth2 token request.
// This is the standard OAuth2 token endpoint response format as defined in RFC 6749.
// Returned from the eSignBase /oauth2/token endpoint for both supported grant types.
type TokenResponse struct {
	// AccessToken is the bearer credential used to access the eSignBase API.
	// Example: "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."
	// Usage: Include in Authorization header: "Bearer <access_token>"
	AccessToken *string `json:"access_token,omitempty"`

	// TokenType indicates how to use the access token.
	// Example: "bearer"
	// Usage: Tells client to use "Authorization: Bearer <token>" header
	TokenType string `json:"token_type,omitempty"`

	// ExpiresIn is the lifetime in seconds of the access token.
	// Example: 3600
	// Note: The client never refreshes; an expired token requires a new Connect.
	ExpiresIn int `json:"expires_in,omitempty"`

	// Scope indicates the access token's granted permissions.
	// Example: "read create_document"
	// Usage: Space-separated list of scopes
	Scope string `json:"scope,omitempty"`
}

// NewTokenResponse describes tok as a token endpoint response, computing
// ExpiresIn relative to now. An unknown expiry yields ExpiresIn of zero.
func NewTokenResponse(tok *xoauth2.Token, now time.Time) TokenResponse {
	if tok == nil {
		return TokenResponse{}
	}
	resp := TokenResponse{
		AccessToken: utils.Ptr(tok.AccessToken),
		TokenType:   tok.Type(),
	}
	if !tok.Expiry.IsZero() {
		if remaining := tok.Expiry.Sub(now); remaining > 0 {
			resp.ExpiresIn = int(remaining.Round(time.Second) / time.Second)
		}
	}
	if scope, ok := tok.Extra("scope").(string); ok {
		resp.Scope = scope
	}
	return resp
}

// Scopes returns the granted scopes as a slice.
func (r TokenResponse) Scopes() []string {
	return strings.Fields(r.Scope)
}

// Token converts the response into an x/oauth2 token, anchoring the
// expiry at now.
func (r TokenResponse) Token(now time.Time) (*xoauth2.Token, error) {
	accessToken := utils.Value(r.AccessToken)
	if accessToken == "" {
		return nil, ErrEmptyAccessToken
	}
	tok := &xoauth2.Token{
		AccessToken: accessToken,
		TokenType:   r.TokenType,
	}
	if r.ExpiresIn > 0 {
		tok.Expiry = now.Add(time.Duration(r.ExpiresIn) * time.Second)
	}
	return tok, nil
}
