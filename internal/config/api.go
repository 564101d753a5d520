package config

import (
	"time"

	"github.com/pkg/errors"
)

const (
	clientIDVar     = "ESIGNBASE_CLIENT_ID"
	clientSecretVar = "ESIGNBASE_CLIENT_SECRET"
	grantTypeVar    = "ESIGNBASE_GRANT_TYPE"
	userNameVar     = "ESIGNBASE_USERNAME"
	passwordVar     = "ESIGNBASE_PASSWORD"
	scopesVar       = "ESIGNBASE_SCOPES"
	baseURLVar      = "ESIGNBASE_BASE_URL"
	timeoutVar      = "ESIGNBASE_TIMEOUT"
)

// API reads the eSignBase connection settings from the environment.
// Values are returned raw; the client validates them.
type API struct{}

var _ APIConfig = API{}

func (API) GetClientID() string {
	return GetEnv(clientIDVar, "")
}

func (API) GetClientSecret() string {
	return GetEnv(clientSecretVar, "")
}

func (API) GetGrantType() string {
	return GetEnv(grantTypeVar, "client_credentials")
}

// GetUserName is only used with the authorization_code grant type.
func (API) GetUserName() string {
	return GetEnv(userNameVar, "")
}

func (API) GetPassword() string {
	return GetEnv(passwordVar, "")
}

// GetScopes returns a comma or space separated scope list, e.g. "read,create_document".
func (API) GetScopes() string {
	return GetEnv(scopesVar, "all")
}

// GetBaseURL returns the API host, e.g. "https://app.esignbase.com/".
func (API) GetBaseURL() string {
	return GetEnv(baseURLVar, "https://app.esignbase.com/")
}

// GetTimeout parses ESIGNBASE_TIMEOUT as a Go duration ("15s", "1m").
func (API) GetTimeout() (time.Duration, error) {
	raw := GetEnv(timeoutVar, "15s")
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "%s", timeoutVar)
	}
	if d <= 0 {
		return 0, errors.Errorf("%s must be positive, got %s", timeoutVar, raw)
	}
	return d, nil
}
