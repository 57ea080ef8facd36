package partyapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/partyline/partyline/internal/record"
)

const resourceTimeline = "timeline"

func (c *Client) ListTimelineEvents(ctx context.Context, authorization string, query url.Values) ([]record.Record, error) {
	return c.getList(ctx, request{
		path:          "/api/timeline-events/",
		resource:      resourceTimeline,
		query:         query,
		authorization: authorization,
	}, "events")
}

func (c *Client) CreateTimelineEvent(ctx context.Context, authorization string, payload map[string]any) (record.Record, error) {
	return c.getRecord(ctx, request{
		method:        http.MethodPost,
		path:          "/api/timeline-events/",
		resource:      resourceTimeline,
		authorization: authorization,
		body:          payload,
	})
}

func (c *Client) UpdateTimelineEvent(ctx context.Context, authorization, id string, payload map[string]any) (record.Record, error) {
	return c.getRecord(ctx, request{
		method:        http.MethodPatch,
		path:          "/api/timeline-events/" + url.PathEscape(id) + "/",
		resource:      resourceTimeline,
		authorization: authorization,
		body:          payload,
	})
}

func (c *Client) DeleteTimelineEvent(ctx context.Context, authorization, id string) error {
	return c.discard(ctx, request{
		method:        http.MethodDelete,
		path:          "/api/timeline-events/" + url.PathEscape(id) + "/",
		resource:      resourceTimeline,
		authorization: authorization,
	})
}
