package partyapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/partyline/partyline/internal/record"
)

const resourcePhotos = "photos"

func (c *Client) ListPhotos(ctx context.Context, authorization string, query url.Values) ([]record.Record, error) {
	return c.getList(ctx, request{
		path:          "/api/photos/",
		resource:      resourcePhotos,
		query:         query,
		authorization: authorization,
	}, "photos")
}

func (c *Client) GetPhoto(ctx context.Context, authorization, id string) (record.Record, error) {
	return c.getRecord(ctx, request{
		method:        http.MethodGet,
		path:          "/api/photos/" + url.PathEscape(id) + "/",
		resource:      resourcePhotos,
		authorization: authorization,
	})
}

func (c *Client) UploadPhoto(ctx context.Context, authorization string, payload map[string]any) (record.Record, error) {
	return c.getRecord(ctx, request{
		method:        http.MethodPost,
		path:          "/api/photos/",
		resource:      resourcePhotos,
		authorization: authorization,
		body:          payload,
	})
}

func (c *Client) DeletePhoto(ctx context.Context, authorization, id, role string) error {
	header := http.Header{}
	if role != "" {
		header.Set(HeaderDeleteRole, role)
	}
	return c.discard(ctx, request{
		method:        http.MethodDelete,
		path:          "/api/photos/" + url.PathEscape(id) + "/",
		resource:      resourcePhotos,
		authorization: authorization,
		header:        header,
	})
}

func (c *Client) LikePhoto(ctx context.Context, authorization, id string) (record.Record, error) {
	return c.getRecord(ctx, request{
		method:        http.MethodPost,
		path:          "/api/photos/" + url.PathEscape(id) + "/like/",
		resource:      resourcePhotos,
		authorization: authorization,
	})
}
