package partyapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/partyline/partyline/internal/record"
)

const resourceScores = "scores"

func (c *Client) ListScores(ctx context.Context, authorization string, query url.Values) ([]record.Record, error) {
	return c.getList(ctx, request{
		path:          "/api/scores/",
		resource:      resourceScores,
		query:         query,
		authorization: authorization,
	}, "scores")
}

func (c *Client) CreateScore(ctx context.Context, authorization string, payload map[string]any) (record.Record, error) {
	return c.getRecord(ctx, request{
		method:        http.MethodPost,
		path:          "/api/scores/",
		resource:      resourceScores,
		authorization: authorization,
		body:          payload,
	})
}

func (c *Client) UpdateScore(ctx context.Context, authorization, id string, payload map[string]any) (record.Record, error) {
	return c.getRecord(ctx, request{
		method:        http.MethodPatch,
		path:          "/api/scores/" + url.PathEscape(id) + "/",
		resource:      resourceScores,
		authorization: authorization,
		body:          payload,
	})
}

func (c *Client) AddScorePoints(ctx context.Context, authorization, id string, payload map[string]any) (record.Record, error) {
	return c.getRecord(ctx, request{
		method:        http.MethodPost,
		path:          "/api/scores/" + url.PathEscape(id) + "/add_points/",
		resource:      resourceScores,
		authorization: authorization,
		body:          payload,
	})
}

func (c *Client) Leaderboard(ctx context.Context, authorization string, query url.Values) ([]record.Record, error) {
	return c.getList(ctx, request{
		path:          "/api/scores/leaderboard/",
		resource:      resourceScores,
		query:         query,
		authorization: authorization,
	}, "leaderboard", "scores")
}

func (c *Client) MyScores(ctx context.Context, authorization string, query url.Values) ([]record.Record, error) {
	return c.getList(ctx, request{
		path:          "/api/scores/my_scores/",
		resource:      resourceScores,
		query:         query,
		authorization: authorization,
	}, "scores")
}
