package credits

import (
	"github.com/jrsteele09/go-esignbase/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Show the remaining credit balance"
}

func (c *Command) Help() string {
	return `Usage: esignbase credits

  This command prints the account's remaining signing credits.`
}

func (c *Command) Run(args []string) int {
	ctx, cancel := c.Context()
	defer cancel()

	client, err := c.Connect(ctx)
	if err != nil {
		return c.Fail(err)
	}
	credits, err := client.GetCredits(ctx)
	if err != nil {
		return c.Fail(err)
	}
	if err := c.Output(credits); err != nil {
		return c.Fail(err)
	}
	return 0
}
