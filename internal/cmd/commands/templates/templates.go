package templates

import (
	"flag"
	"fmt"

	"github.com/jrsteele09/go-esignbase/internal/cmd/base"
)

// ListCommand prints every template of the account.
type ListCommand struct {
	*base.Command
}

func (c *ListCommand) Synopsis() string {
	return "List templates"
}

func (c *ListCommand) Help() string {
	return `Usage: esignbase templates

  This command lists the templates available to the configured client.`
}

func (c *ListCommand) Run(args []string) int {
	ctx, cancel := c.Context()
	defer cancel()

	client, err := c.Connect(ctx)
	if err != nil {
		return c.Fail(err)
	}
	templates, err := client.GetTemplates(ctx)
	if err != nil {
		return c.Fail(err)
	}
	if err := c.Output(templates); err != nil {
		return c.Fail(err)
	}
	return 0
}

// GetCommand prints one template.
type GetCommand struct {
	*base.Command
}

func (c *GetCommand) Synopsis() string {
	return "Show a template and its recipient roles"
}

func (c *GetCommand) Help() string {
	return `Usage: esignbase template <template-id>

  This command shows a single template, including the role names that
  recipients of a new document must use.`
}

func (c *GetCommand) Run(args []string) int {
	f := base.NewFlagSet(flag.NewFlagSet("template", flag.ContinueOnError))
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 2
	}
	if f.NArg() != 1 {
		c.UI.Error("expected exactly one template id")
		return 2
	}

	ctx, cancel := c.Context()
	defer cancel()

	client, err := c.Connect(ctx)
	if err != nil {
		return c.Fail(err)
	}
	template, err := client.GetTemplate(ctx, f.Arg(0))
	if err != nil {
		return c.Fail(err)
	}
	if err := c.Output(template); err != nil {
		return c.Fail(err)
	}
	return 0
}
