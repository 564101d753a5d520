package esignbase

import (
	"context"
	"net/http"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pkg/errors"
)

// GetTemplates lists the account's templates.
func (c *OAuth2Client) GetTemplates(ctx context.Context) (any, error) {
	return c.request(ctx, apiRequest{
		op:     "get templates",
		method: http.MethodGet,
		path:   "api/templates",
	})
}

// GetTemplate fetches one template, including its recipient roles.
func (c *OAuth2Client) GetTemplate(ctx context.Context, templateID string) (any, error) {
	return c.request(ctx, apiRequest{
		op:       "get template",
		method:   http.MethodGet,
		path:     "api/template/" + url.PathEscape(templateID),
		validate: requireID("template id", templateID),
	})
}

func requireID(name, id string) func() error {
	return func() error {
		return errors.Wrap(validation.Validate(id, validation.Required), name)
	}
}
