package esignbase

import (
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-esignbase/oauth2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the eSignBase API host.
	DefaultBaseURL = "https://app.esignbase.com/"
	// DefaultTimeout bounds every round trip made by the default HTTP client.
	DefaultTimeout = 15 * time.Second

	tokenPath = "oauth2/token"
)

// OAuth2Client holds the caller's credentials and the access token obtained
// by Connect. Every resource operation reuses the cached token.
//
// An OAuth2Client is not safe for concurrent use. Callers sharing one
// instance between goroutines must serialise access themselves.
type OAuth2Client struct {
	creds Credentials
	token tokenState

	baseURL      *url.URL
	httpClient   *http.Client
	timeout      time.Duration
	logger       zerolog.Logger
	newRequestID func() string
	nowFunc      func() time.Time
}

type Option func(*OAuth2Client) error

// WithBaseURL points the client at a different API host, e.g. a test server.
func WithBaseURL(rawURL string) Option {
	return func(c *OAuth2Client) error {
		u, err := url.Parse(rawURL)
		if err != nil {
			return errors.Wrap(err, "parse base url")
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return errors.Errorf("base url must use http or https scheme, got %q", u.Scheme)
		}
		if u.Host == "" {
			return errors.Errorf("base url %q has no host", rawURL)
		}
		if u.Path == "" {
			u.Path = "/"
		}
		c.baseURL = u
		return nil
	}
}

// WithHTTPClient replaces the HTTP client used for both the token exchange
// and the API calls. WithTimeout is ignored when a client is supplied.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *OAuth2Client) error {
		if hc == nil {
			return errors.New("http client is nil")
		}
		c.httpClient = hc
		return nil
	}
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *OAuth2Client) error {
		if d <= 0 {
			return errors.Errorf("timeout must be positive, got %s", d)
		}
		c.timeout = d
		return nil
	}
}

// WithLogger enables debug logging of token exchanges and requests.
// Secrets and tokens are never logged.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *OAuth2Client) error {
		c.logger = logger
		return nil
	}
}

// WithRequestIDFunc overrides the X-Request-Id generator.
func WithRequestIDFunc(f func() string) Option {
	return func(c *OAuth2Client) error {
		if f == nil {
			return errors.New("request id func is nil")
		}
		c.newRequestID = f
		return nil
	}
}

func WithNowFunc(now func() time.Time) Option {
	return func(c *OAuth2Client) error {
		if now == nil {
			return errors.New("now func is nil")
		}
		c.nowFunc = now
		return nil
	}
}

// NewOAuth2Client validates creds and returns an unconnected client.
// Invalid credentials fail here with KindConfiguration; no request is made.
func NewOAuth2Client(creds Credentials, opts ...Option) (*OAuth2Client, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	base, _ := url.Parse(DefaultBaseURL)
	c := &OAuth2Client{
		creds:        creds.clone(),
		baseURL:      base,
		timeout:      DefaultTimeout,
		logger:       zerolog.Nop(),
		newRequestID: uuid.NewString,
		nowFunc:      time.Now,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, newError(KindConfiguration, "configure client", err)
		}
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}

	return c, nil
}

// Credentials returns a copy of the credentials the client was built with.
func (c *OAuth2Client) Credentials() Credentials {
	return c.creds.clone()
}

// IsConnected reports whether an access token is cached.
func (c *OAuth2Client) IsConnected() bool {
	return c.token.present()
}

// AccessToken returns the cached access token, or "" when not connected.
func (c *OAuth2Client) AccessToken() string {
	return c.token.accessToken()
}

// TokenResponse describes the cached token. ok is false when not connected.
func (c *OAuth2Client) TokenResponse() (resp oauth2.TokenResponse, ok bool) {
	if !c.token.present() {
		return oauth2.TokenResponse{}, false
	}
	return oauth2.NewTokenResponse(c.token.tok, c.nowFunc()), true
}

// Disconnect drops the cached token. Subsequent resource operations fail
// with KindNotAuthenticated until Connect succeeds again.
func (c *OAuth2Client) Disconnect() {
	c.token.clear()
}

// BaseURL returns the API host the client talks to.
func (c *OAuth2Client) BaseURL() string {
	return c.baseURL.String()
}

// endpoint resolves an already escaped relative path against the base URL.
func (c *OAuth2Client) endpoint(path string) *url.URL {
	return c.baseURL.JoinPath(path)
}
