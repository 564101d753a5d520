package esignbase

import (
	"fmt"
	"strings"

	"github.com/jrsteele09/go-esignbase/internal/utils"
)

// Scope is a permission bucket requested from the token endpoint.
type Scope string

const (
	ScopeAll            Scope = "all"
	ScopeRead           Scope = "read"
	ScopeCreateDocument Scope = "create_document"
	ScopeDelete         Scope = "delete"
	ScopeSandbox        Scope = "sandbox"
)

// Scopes lists every scope eSignBase understands.
var Scopes = []Scope{ScopeAll, ScopeRead, ScopeCreateDocument, ScopeDelete, ScopeSandbox}

// Valid reports whether s is a known scope.
func (s Scope) Valid() bool {
	for _, v := range Scopes {
		if s == v {
			return true
		}
	}
	return false
}

func (s Scope) String() string {
	return string(s)
}

// ParseScope converts s into a Scope. Hyphenated spellings such as
// "create-document" are accepted.
func ParseScope(s string) (Scope, error) {
	scope := Scope(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if !scope.Valid() {
		return "", fmt.Errorf("unknown scope %q", s)
	}
	return scope, nil
}

// ParseScopes splits a comma or space separated list into scopes.
func ParseScopes(s string) ([]Scope, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' '
	})
	scopes := make([]Scope, 0, len(fields))
	for _, f := range fields {
		scope, err := ParseScope(f)
		if err != nil {
			return nil, err
		}
		scopes = append(scopes, scope)
	}
	return scopes, nil
}

func joinScopes(scopes []Scope) string {
	return strings.Join(utils.ToStrings(scopes), " ")
}
