package cmd

import (
	"github.com/jrsteele09/go-esignbase/internal/cmd/base"
	"github.com/jrsteele09/go-esignbase/internal/cmd/commands/credits"
	"github.com/jrsteele09/go-esignbase/internal/cmd/commands/documents"
	"github.com/jrsteele09/go-esignbase/internal/cmd/commands/templates"
	"github.com/jrsteele09/go-esignbase/internal/cmd/commands/token"
	versioncmd "github.com/jrsteele09/go-esignbase/internal/cmd/commands/version"
	"github.com/jrsteele09/go-esignbase/internal/config"
	"github.com/mitchellh/cli"
	"github.com/rs/zerolog"
)

// Commands returns the subcommand factories for the CLI.
func Commands(log zerolog.Logger, ui cli.Ui, cfg config.Config) map[string]cli.CommandFactory {
	b := base.NewCommand(log, ui, cfg)

	return map[string]cli.CommandFactory{
		"templates": func() (cli.Command, error) {
			return &templates.ListCommand{Command: b}, nil
		},
		"template": func() (cli.Command, error) {
			return &templates.GetCommand{Command: b}, nil
		},
		"documents": func() (cli.Command, error) {
			return &documents.ListCommand{Command: b}, nil
		},
		"document": func() (cli.Command, error) {
			return &documents.GetCommand{Command: b}, nil
		},
		"create-document": func() (cli.Command, error) {
			return &documents.CreateCommand{Command: b}, nil
		},
		"delete-document": func() (cli.Command, error) {
			return &documents.DeleteCommand{Command: b}, nil
		},
		"download-document": func() (cli.Command, error) {
			return &documents.DownloadCommand{Command: b}, nil
		},
		"credits": func() (cli.Command, error) {
			return &credits.Command{Command: b}, nil
		},
		"token": func() (cli.Command, error) {
			return &token.Command{Command: b}, nil
		},
		"version": func() (cli.Command, error) {
			return &versioncmd.Command{Command: b}, nil
		},
	}
}
