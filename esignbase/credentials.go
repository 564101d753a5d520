package esignbase

import (
	"slices"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jrsteele09/go-esignbase/internal/utils"
	"github.com/jrsteele09/go-esignbase/oauth2"
)

// Credentials identifies the caller to the eSignBase authorization server.
type Credentials struct {
	ClientID     string
	ClientSecret string
	GrantType    oauth2.GrantType
	// UserName and Password are only sent for oauth2.AuthorizationCodeGrant.
	UserName string
	Password string
	Scopes   []Scope
}

// Validate checks the structural requirements of c: client id and secret,
// a supported grant type, user credentials when the grant needs them and at
// least one known scope.
func (c Credentials) Validate() error {
	needsUser := c.GrantType.RequiresUserCredentials()
	err := validation.ValidateStruct(&c,
		validation.Field(&c.ClientID, validation.Required),
		validation.Field(&c.ClientSecret, validation.Required),
		validation.Field(&c.GrantType,
			validation.Required,
			validation.In(utils.ToAnySlice(oauth2.GrantTypes)...).Error("must be client_credentials or authorization_code"),
		),
		validation.Field(&c.UserName, validation.When(needsUser, validation.Required.Error("is required for the authorization code grant type"))),
		validation.Field(&c.Password, validation.When(needsUser, validation.Required.Error("is required for the authorization code grant type"))),
		validation.Field(&c.Scopes,
			validation.Required.Error("at least one scope must be provided"),
			validation.Each(validation.Required, validation.In(utils.ToAnySlice(Scopes)...).Error("unknown scope")),
		),
	)
	if err != nil {
		return newError(KindConfiguration, "validate credentials", err)
	}
	return nil
}

func (c Credentials) clone() Credentials {
	c.Scopes = slices.Clone(c.Scopes)
	return c
}
