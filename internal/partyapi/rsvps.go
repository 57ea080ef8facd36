package partyapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/partyline/partyline/internal/record"
)

const resourceRSVPs = "rsvps"

// HeaderDeleteRole hints to the backend whether a delete runs under owner or
// admin rights. Advisory; the backend enforces its own rules.
const HeaderDeleteRole = "X-Delete-Role"

func (c *Client) ListRSVPs(ctx context.Context, authorization string, query url.Values) ([]record.Record, error) {
	return c.getList(ctx, request{
		path:          "/api/rsvps/",
		resource:      resourceRSVPs,
		query:         query,
		authorization: authorization,
	}, "rsvps")
}

func (c *Client) GetRSVP(ctx context.Context, authorization, id string) (record.Record, error) {
	return c.getRecord(ctx, request{
		method:        http.MethodGet,
		path:          "/api/rsvps/" + url.PathEscape(id) + "/",
		resource:      resourceRSVPs,
		authorization: authorization,
	})
}

func (c *Client) CreateRSVP(ctx context.Context, authorization string, payload map[string]any) (record.Record, error) {
	return c.getRecord(ctx, request{
		method:        http.MethodPost,
		path:          "/api/rsvps/",
		resource:      resourceRSVPs,
		authorization: authorization,
		body:          payload,
	})
}

func (c *Client) DeleteRSVP(ctx context.Context, authorization, id, role string) error {
	header := http.Header{}
	if role != "" {
		header.Set(HeaderDeleteRole, role)
	}
	return c.discard(ctx, request{
		method:        http.MethodDelete,
		path:          "/api/rsvps/" + url.PathEscape(id) + "/",
		resource:      resourceRSVPs,
		authorization: authorization,
		header:        header,
	})
}
