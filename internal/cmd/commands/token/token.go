package token

import (
	"flag"
	"fmt"

	"github.com/jrsteele09/go-esignbase/internal/cmd/base"
	"github.com/jrsteele09/go-esignbase/oauth2"
)

type Command struct {
	*base.Command

	flagClaims bool
}

func (c *Command) Synopsis() string {
	return "Obtain an access token and describe it"
}

func (c *Command) Help() string {
	return `Usage: esignbase token [options]

  This command performs the token exchange with the configured credentials
  and prints the token response. It is useful to check that credentials
  and scopes are accepted.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("token", flag.ContinueOnError))

	f.BoolVar(&c.flagClaims, "claims", false,
		"Also decode the access token claims when the token is a JWT. The signature is not verified.")

	return f
}

type output struct {
	Token  oauth2.TokenResponse      `json:"token"`
	Claims *oauth2.AccessTokenClaims `json:"claims,omitempty"`
}

func (c *Command) Run(args []string) int {
	if err := c.Flags().Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 2
	}

	ctx, cancel := c.Context()
	defer cancel()

	client, err := c.Connect(ctx)
	if err != nil {
		return c.Fail(err)
	}
	resp, _ := client.TokenResponse()
	out := output{Token: resp}

	if c.flagClaims {
		claims, err := oauth2.ParseAccessTokenClaims(client.AccessToken())
		if err != nil {
			c.UI.Warn(fmt.Sprintf("cannot decode claims: %v", err))
		} else {
			out.Claims = claims
		}
	}

	if err := c.Output(out); err != nil {
		return c.Fail(err)
	}
	return 0
}
