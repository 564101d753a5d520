package base

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/jrsteele09/go-esignbase/esignbase"
	"github.com/jrsteele09/go-esignbase/internal/config"
	"github.com/jrsteele09/go-esignbase/oauth2"
	"github.com/mitchellh/cli"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Command holds what every subcommand shares: the logger, the UI and the
// environment configuration.
type Command struct {
	Log    zerolog.Logger
	UI     cli.Ui
	Config config.Config
}

func NewCommand(log zerolog.Logger, ui cli.Ui, cfg config.Config) *Command {
	return &Command{Log: log, UI: ui, Config: cfg}
}

// Context is cancelled on interrupt.
func (c *Command) Context() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// Credentials builds client credentials from the environment.
func (c *Command) Credentials() (esignbase.Credentials, error) {
	grantType, err := oauth2.ParseGrantType(c.Config.GetGrantType())
	if err != nil {
		return esignbase.Credentials{}, errors.Wrap(err, "ESIGNBASE_GRANT_TYPE")
	}
	scopes, err := esignbase.ParseScopes(c.Config.GetScopes())
	if err != nil {
		return esignbase.Credentials{}, errors.Wrap(err, "ESIGNBASE_SCOPES")
	}
	return esignbase.Credentials{
		ClientID:     c.Config.GetClientID(),
		ClientSecret: c.Config.GetClientSecret(),
		GrantType:    grantType,
		UserName:     c.Config.GetUserName(),
		Password:     c.Config.GetPassword(),
		Scopes:       scopes,
	}, nil
}

// NewClient returns an unconnected client configured from the environment.
func (c *Command) NewClient() (*esignbase.OAuth2Client, error) {
	creds, err := c.Credentials()
	if err != nil {
		return nil, err
	}
	timeout, err := c.Config.GetTimeout()
	if err != nil {
		return nil, err
	}
	return esignbase.NewOAuth2Client(creds,
		esignbase.WithBaseURL(c.Config.GetBaseURL()),
		esignbase.WithTimeout(timeout),
		esignbase.WithLogger(c.Log),
	)
}

// Connect returns a client that already holds an access token.
func (c *Command) Connect(ctx context.Context) (*esignbase.OAuth2Client, error) {
	client, err := c.NewClient()
	if err != nil {
		return nil, err
	}
	if err := client.Connect(ctx); err != nil {
		return nil, err
	}
	return client, nil
}

// Output writes v to the UI as indented JSON.
func (c *Command) Output(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode output")
	}
	c.UI.Output(string(b))
	return nil
}

// Fail reports err and returns the exit code for it. Usage mistakes exit
// with 2, everything else with 1.
func (c *Command) Fail(err error) int {
	c.UI.Error(fmt.Sprintf("error: %v", err))
	switch esignbase.KindOf(err) {
	case esignbase.KindConfiguration, esignbase.KindInvalidArgument:
		return 2
	default:
		return 1
	}
}
