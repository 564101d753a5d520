package cmd

import (
	"bufio"
	"os"

	"github.com/jrsteele09/go-esignbase/internal/config"
	"github.com/jrsteele09/go-esignbase/internal/version"
	"github.com/mitchellh/cli"
	"github.com/rs/zerolog"
)

// Main runs the CLI with the given arguments and returns the exit code.
func Main(args []string) int {
	cfg := config.New()

	level, err := zerolog.ParseLevel(cfg.GetLogLevel())
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Str("env", cfg.GetEnv()).
		Logger()

	ui := &cli.BasicUi{
		Reader:      bufio.NewReader(os.Stdin),
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
	}

	return Run(args, log, ui, cfg)
}

// Run is Main with its dependencies supplied by the caller.
func Run(args []string, log zerolog.Logger, ui cli.Ui, cfg config.Config) int {
	cliName := args[0]

	if len(args) == 2 &&
		(args[1] == "-version" ||
			args[1] == "-v") {
		args = []string{cliName, "version"}
	}

	c := &cli.CLI{
		Name:     cliName,
		Args:     args[1:],
		Version:  version.Version,
		Commands: Commands(log, ui, cfg),
	}

	exitCode, err := c.Run()
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	return exitCode
}
