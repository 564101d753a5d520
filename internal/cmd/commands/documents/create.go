package documents

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jrsteele09/go-esignbase/esignbase"
	"github.com/jrsteele09/go-esignbase/internal/cmd/base"
	"github.com/pkg/errors"
)

type CreateCommand struct {
	*base.Command

	flagTemplate   string
	flagName       string
	flagRecipients base.StringSliceValue
	flagMetadata   base.StringSliceValue
	flagExpires    string
}

func (c *CreateCommand) Synopsis() string {
	return "Create a document from a template and send it for signing"
}

func (c *CreateCommand) Help() string {
	return `Usage: esignbase create-document [options]

  This command creates a document from a template. Every recipient is given
  as email,first_name,last_name,role_name,locale and the role name must
  match a role of the template.

  Example:

    esignbase create-document -template t1 -name "Contract" \
      -recipient "jane@example.com,Jane,Doe,Signer,en" \
      -metadata order=A-17 -expires 2026-12-31T23:59:00+01:00` + c.Flags().Help()
}

func (c *CreateCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("create-document", flag.ContinueOnError))

	f.StringVar(&c.flagTemplate, "template", "", "(Required) Template id.")
	f.StringVar(&c.flagName, "name", "", "(Required) Document name.")
	f.Var(&c.flagRecipients, "recipient",
		"(Required, repeatable) Recipient as email,first_name,last_name,role_name,locale.")
	f.Var(&c.flagMetadata, "metadata",
		"(Repeatable) User defined metadata as key=value. Integer values are sent as numbers.")
	f.StringVar(&c.flagExpires, "expires", "", "Expiration date in RFC 3339 format.")

	return f
}

func (c *CreateCommand) Run(args []string) int {
	c.flagRecipients = nil
	c.flagMetadata = nil
	if err := c.Flags().Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 2
	}

	req, err := c.request()
	if err != nil {
		c.UI.Error(fmt.Sprintf("error: %v", err))
		return 2
	}

	ctx, cancel := c.Context()
	defer cancel()

	client, err := c.Connect(ctx)
	if err != nil {
		return c.Fail(err)
	}
	doc, err := client.CreateDocument(ctx, req)
	if err != nil {
		return c.Fail(err)
	}
	if err := c.Output(doc); err != nil {
		return c.Fail(err)
	}
	return 0
}

func (c *CreateCommand) request() (esignbase.CreateDocumentRequest, error) {
	req := esignbase.CreateDocumentRequest{
		TemplateID:   c.flagTemplate,
		DocumentName: c.flagName,
	}

	for _, raw := range c.flagRecipients {
		r, err := ParseRecipient(raw)
		if err != nil {
			return req, err
		}
		req.Recipients = append(req.Recipients, r)
	}

	if len(c.flagMetadata) > 0 {
		metadata, err := ParseMetadata(c.flagMetadata)
		if err != nil {
			return req, err
		}
		req.UserDefinedMetadata = metadata
	}

	if c.flagExpires != "" {
		expires, err := time.Parse(time.RFC3339, c.flagExpires)
		if err != nil {
			return req, errors.Wrap(err, "invalid -expires")
		}
		req.ExpirationDate = &expires
	}

	return req, nil
}

// ParseRecipient parses "email,first_name,last_name,role_name,locale".
func ParseRecipient(raw string) (esignbase.Recipient, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 5 {
		return esignbase.Recipient{}, errors.Errorf("recipient %q must have 5 comma separated fields, got %d", raw, len(parts))
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return esignbase.Recipient{
		Email:     parts[0],
		FirstName: parts[1],
		LastName:  parts[2],
		RoleName:  parts[3],
		Locale:    parts[4],
	}, nil
}

// ParseMetadata turns key=value pairs into a metadata map.
func ParseMetadata(pairs []string) (map[string]any, error) {
	metadata := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, errors.Errorf("metadata %q must be key=value", pair)
		}
		if n, err := strconv.Atoi(value); err == nil {
			metadata[key] = n
			continue
		}
		metadata[key] = value
	}
	return metadata, nil
}
