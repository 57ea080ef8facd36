package partyapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/partyline/partyline/internal/record"
)

const resourceGuestbook = "guestbook"

func (c *Client) ListGuestbook(ctx context.Context, authorization string) ([]record.Record, error) {
	return c.getList(ctx, request{
		path:          "/api/guestbook/",
		resource:      resourceGuestbook,
		authorization: authorization,
	}, "messages")
}

func (c *Client) GetGuestbookMessage(ctx context.Context, authorization, id string) (record.Record, error) {
	return c.getRecord(ctx, request{
		method:        http.MethodGet,
		path:          "/api/guestbook/" + url.PathEscape(id) + "/",
		resource:      resourceGuestbook,
		authorization: authorization,
	})
}

func (c *Client) CreateGuestbookMessage(ctx context.Context, authorization string, payload map[string]any) (record.Record, error) {
	return c.getRecord(ctx, request{
		method:        http.MethodPost,
		path:          "/api/guestbook/",
		resource:      resourceGuestbook,
		authorization: authorization,
		body:          payload,
	})
}

func (c *Client) UpdateGuestbookMessage(ctx context.Context, authorization, id string, payload map[string]any) (record.Record, error) {
	return c.getRecord(ctx, request{
		method:        http.MethodPatch,
		path:          "/api/guestbook/" + url.PathEscape(id) + "/",
		resource:      resourceGuestbook,
		authorization: authorization,
		body:          payload,
	})
}

func (c *Client) DeleteGuestbookMessage(ctx context.Context, authorization, id, role string) error {
	header := http.Header{}
	if role != "" {
		header.Set(HeaderDeleteRole, role)
	}
	return c.discard(ctx, request{
		method:        http.MethodDelete,
		path:          "/api/guestbook/" + url.PathEscape(id) + "/",
		resource:      resourceGuestbook,
		authorization: authorization,
		header:        header,
	})
}
