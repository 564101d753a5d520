package version

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-esignbase/internal/cmd/base"
	appversion "github.com/jrsteele09/go-esignbase/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the version"
}

func (c *Command) Help() string {
	return `Usage: esignbase version

  This command prints the application banner and version.`
}

func (c *Command) Run(args []string) int {
	banner := figure.NewFigure(c.Config.GetAppName(), "cybermedium", true)
	c.UI.Output(banner.String())
	c.UI.Output(fmt.Sprintf("%s %s", c.Config.GetAppName(), appversion.Version))
	return 0
}
