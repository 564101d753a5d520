package esignbase

import (
	"context"
	"net/http"
)

// GetCredits returns the account's remaining credit balance.
func (c *OAuth2Client) GetCredits(ctx context.Context) (any, error) {
	return c.request(ctx, apiRequest{
		op:     "get credits",
		method: http.MethodGet,
		path:   "api/credits",
	})
}
