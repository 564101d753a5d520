package documents

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jrsteele09/go-esignbase/internal/cmd/base"
	"github.com/pkg/errors"
)

type DownloadCommand struct {
	*base.Command

	flagOut string
}

func (c *DownloadCommand) Synopsis() string {
	return "Download the PDF of a document"
}

func (c *DownloadCommand) Help() string {
	return `Usage: esignbase download-document [options] <document-id>

  This command saves the document's PDF. Without -out the file is written
  to <document-id>.pdf in the current directory.` + c.Flags().Help()
}

func (c *DownloadCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("download-document", flag.ContinueOnError))

	f.StringVar(&c.flagOut, "out", "", `Output path, or "-" for stdout.`)

	return f
}

func (c *DownloadCommand) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 2
	}
	if f.NArg() != 1 {
		c.UI.Error("expected exactly one document id")
		return 2
	}
	id := f.Arg(0)
	out := c.flagOut
	if out == "" {
		out = id + ".pdf"
	}

	ctx, cancel := c.Context()
	defer cancel()

	client, err := c.Connect(ctx)
	if err != nil {
		return c.Fail(err)
	}
	rc, err := client.DownloadDocument(ctx, id)
	if err != nil {
		return c.Fail(err)
	}
	defer rc.Close()

	n, err := write(out, rc)
	if err != nil {
		return c.Fail(err)
	}
	if out != "-" {
		c.UI.Info(fmt.Sprintf("Wrote %d bytes to %s", n, out))
	}
	return 0
}

func write(path string, r io.Reader) (int64, error) {
	if path == "-" {
		return io.Copy(os.Stdout, r)
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, errors.Wrap(err, "create output file")
	}
	n, err := io.Copy(f, r)
	if err != nil {
		_ = f.Close()
		return n, errors.Wrap(err, "write output file")
	}
	return n, errors.Wrap(f.Close(), "close output file")
}
