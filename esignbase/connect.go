package esignbase

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"

	"github.com/jrsteele09/go-esignbase/internal/utils"
	pkgerrors "github.com/pkg/errors"
	xoauth2 "golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Connect exchanges the client's credentials for an access token with a
// single POST to the token endpoint and caches the result, replacing any
// previous token. It never retries. On failure the cached token is left
// untouched and the error has KindAuthentication or KindTransport.
func (c *OAuth2Client) Connect(ctx context.Context) error {
	const op = "connect"

	cfg := c.tokenConfig()
	ctx = context.WithValue(ctx, xoauth2.HTTPClient, c.httpClient)

	tok, err := cfg.Token(ctx)
	if err != nil {
		return c.tokenError(op, err)
	}
	if tok == nil || tok.AccessToken == "" {
		return newError(KindAuthentication, op, ErrMissingAccessToken)
	}

	c.token.replace(tok)

	event := c.logger.Debug().
		Str("grant_type", c.creds.GrantType.String()).
		Str("scope", joinScopes(c.creds.Scopes))
	if !tok.Expiry.IsZero() {
		event = event.Time("expiry", tok.Expiry)
	}
	event.Msg("esignbase: obtained access token")

	return nil
}

// tokenConfig builds the token request. Client id and secret travel in the
// form body; the password grant adds username and password and overrides
// grant_type.
func (c *OAuth2Client) tokenConfig() *clientcredentials.Config {
	cfg := &clientcredentials.Config{
		ClientID:     c.creds.ClientID,
		ClientSecret: c.creds.ClientSecret,
		TokenURL:     c.endpoint(tokenPath).String(),
		Scopes:       utils.ToStrings(c.creds.Scopes),
		AuthStyle:    xoauth2.AuthStyleInParams,
	}
	if c.creds.GrantType.RequiresUserCredentials() {
		cfg.EndpointParams = url.Values{
			"grant_type": {c.creds.GrantType.String()},
			"username":   {c.creds.UserName},
			"password":   {c.creds.Password},
		}
	}
	return cfg
}

func (c *OAuth2Client) tokenError(op string, err error) *Error {
	var retrieveErr *xoauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		e := newError(KindAuthentication, op, pkgerrors.Wrap(err, "token endpoint rejected the request"))
		if retrieveErr.Response != nil {
			e.StatusCode = retrieveErr.Response.StatusCode
		}
		e.Message = retrieveErrorMessage(retrieveErr)
		return e
	}
	if isTransportError(err) {
		return newError(KindTransport, op, pkgerrors.Wrap(err, "token request failed"))
	}
	return newError(KindAuthentication, op, pkgerrors.Wrap(err, "invalid token response"))
}

func retrieveErrorMessage(err *xoauth2.RetrieveError) string {
	if err.ErrorDescription != "" {
		return err.ErrorDescription
	}
	if err.ErrorCode != "" {
		return err.ErrorCode
	}
	return strings.TrimSpace(string(err.Body))
}

// isTransportError reports whether err happened before an HTTP response
// was received.
func isTransportError(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
