package partyapi

import (
	"context"
	"net/http"

	"github.com/partyline/partyline/internal/record"
)

const resourceAdmin = "check-admin"

// CheckAdmin asks the backend whether the bearer token's user is an admin
// there. The answer is merged with the local allow-list by the handler.
func (c *Client) CheckAdmin(ctx context.Context, authorization string) (record.Record, error) {
	return c.getRecord(ctx, request{
		method:        http.MethodGet,
		path:          "/api/check-admin/",
		resource:      resourceAdmin,
		authorization: authorization,
	})
}
