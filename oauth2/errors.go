package oauth2

import "errors"

var (
	ErrInvalidGrantType = errors.New("unsupported grant type")
	ErrMalformedJWT     = errors.New("access token is not a JWT")
	ErrEmptyAccessToken = errors.New("empty access token")
)
