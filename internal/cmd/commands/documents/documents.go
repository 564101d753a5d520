package documents

import (
	"flag"
	"fmt"

	"github.com/jrsteele09/go-esignbase/internal/cmd/base"
)

type ListCommand struct {
	*base.Command

	flagLimit  int
	flagOffset int
}

func (c *ListCommand) Synopsis() string {
	return "List documents"
}

func (c *ListCommand) Help() string {
	return `Usage: esignbase documents [options]

  This command lists documents one page at a time.` + c.Flags().Help()
}

func (c *ListCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("documents", flag.ContinueOnError))

	f.IntVar(&c.flagLimit, "limit", 20, "Maximum number of documents to return.")
	f.IntVar(&c.flagOffset, "offset", 0, "Number of documents to skip.")

	return f
}

func (c *ListCommand) Run(args []string) int {
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
	docs, err := client.GetDocuments(ctx, c.flagLimit, c.flagOffset)
	if err != nil {
		return c.Fail(err)
	}
	if err := c.Output(docs); err != nil {
		return c.Fail(err)
	}
	return 0
}

type GetCommand struct {
	*base.Command
}

func (c *GetCommand) Synopsis() string {
	return "Show a document and its signing status"
}

func (c *GetCommand) Help() string {
	return `Usage: esignbase document <document-id>

  This command shows a single document.`
}

func (c *GetCommand) Run(args []string) int {
	id, code := documentID(c.Command, "document", args)
	if code != 0 {
		return code
	}

	ctx, cancel := c.Context()
	defer cancel()

	client, err := c.Connect(ctx)
	if err != nil {
		return c.Fail(err)
	}
	doc, err := client.GetDocument(ctx, id)
	if err != nil {
		return c.Fail(err)
	}
	if err := c.Output(doc); err != nil {
		return c.Fail(err)
	}
	return 0
}

type DeleteCommand struct {
	*base.Command
}

func (c *DeleteCommand) Synopsis() string {
	return "Delete a document"
}

func (c *DeleteCommand) Help() string {
	return `Usage: esignbase delete-document <document-id>

  This command permanently deletes a document.`
}

func (c *DeleteCommand) Run(args []string) int {
	id, code := documentID(c.Command, "delete-document", args)
	if code != 0 {
		return code
	}

	ctx, cancel := c.Context()
	defer cancel()

	client, err := c.Connect(ctx)
	if err != nil {
		return c.Fail(err)
	}
	if err := client.DeleteDocument(ctx, id); err != nil {
		return c.Fail(err)
	}
	c.UI.Info(fmt.Sprintf("Deleted document %s", id))
	return 0
}

// documentID parses a command line holding exactly one document id.
func documentID(c *base.Command, name string, args []string) (string, int) {
	f := base.NewFlagSet(flag.NewFlagSet(name, flag.ContinueOnError))
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return "", 2
	}
	if f.NArg() != 1 {
		c.UI.Error("expected exactly one document id")
		return "", 2
	}
	return f.Arg(0), 0
}
