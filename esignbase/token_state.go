package esignbase

import (
	"net/http"

	xoauth2 "golang.org/x/oauth2"
)

// tokenState is the only mutable part of an OAuth2Client: either no token
// (not connected) or exactly one token from the latest successful Connect.
type tokenState struct {
	tok *xoauth2.Token
}

func (s *tokenState) present() bool {
	return s.tok != nil && s.tok.AccessToken != ""
}

func (s *tokenState) accessToken() string {
	if s.tok == nil {
		return ""
	}
	return s.tok.AccessToken
}

// replace swaps in tok unconditionally. Callers only pass tokens that
// carry an access token.
func (s *tokenState) replace(tok *xoauth2.Token) {
	s.tok = tok
}

func (s *tokenState) clear() {
	s.tok = nil
}

// authorize sets the Authorization header on req. The token type reported
// by the server is ignored; eSignBase only issues bearer tokens.
func (s *tokenState) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+s.tok.AccessToken)
}
