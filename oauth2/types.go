package oauth2

import (
	"fmt"
	"strings"
)

// GrantType represents the OAuth 2.0 grant type sent to the token endpoint.
// Determines what credentials are required to obtain an access token.
type GrantType string

const (
	// ClientCredentialsGrant allows machine-to-machine authentication.
	// Used in: Backend integrations acting on behalf of the account itself
	// Token request includes: client_id, client_secret, scope
	// Returns: access_token (no refresh_token)
	ClientCredentialsGrant GrantType = "client_credentials"

	// AuthorizationCodeGrant is the user/password variant accepted by eSignBase.
	// Used in: Integrations acting on behalf of a named eSignBase user
	// Token request includes: client_id, client_secret, scope, username, password
	// Note: eSignBase expects the "authorization_code" identifier for this flow
	// rather than the RFC 6749 "password" identifier.
	AuthorizationCodeGrant GrantType = "authorization_code"
)

// GrantTypes lists every grant type the client can request.
var GrantTypes = []GrantType{ClientCredentialsGrant, AuthorizationCodeGrant}

// Valid reports whether g is one of the supported grant types.
func (g GrantType) Valid() bool {
	for _, v := range GrantTypes {
		if g == v {
			return true
		}
	}
	return false
}

// RequiresUserCredentials reports whether the grant needs a username and password.
func (g GrantType) RequiresUserCredentials() bool {
	return g == AuthorizationCodeGrant
}

func (g GrantType) String() string {
	return string(g)
}

// ParseGrantType converts s into a GrantType. Hyphenated spellings such as
// "client-credentials" are accepted.
func ParseGrantType(s string) (GrantType, error) {
	g := GrantType(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if !g.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidGrantType, s)
	}
	return g, nil
}
