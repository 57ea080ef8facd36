package partyapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/partyline/partyline/internal/record"
)

const resourceTrivia = "trivia"

func (c *Client) ListTriviaQuestions(ctx context.Context, authorization string, query url.Values) ([]record.Record, error) {
	return c.getList(ctx, request{
		path:          "/api/trivia-questions/",
		resource:      resourceTrivia,
		query:         query,
		authorization: authorization,
	}, "questions")
}

func (c *Client) CreateTriviaQuestion(ctx context.Context, authorization string, payload map[string]any) (record.Record, error) {
	return c.getRecord(ctx, request{
		method:        http.MethodPost,
		path:          "/api/trivia-questions/",
		resource:      resourceTrivia,
		authorization: authorization,
		body:          payload,
	})
}

func (c *Client) UpdateTriviaQuestion(ctx context.Context, authorization, id string, payload map[string]any) (record.Record, error) {
	return c.getRecord(ctx, request{
		method:        http.MethodPatch,
		path:          "/api/trivia-questions/" + url.PathEscape(id) + "/",
		resource:      resourceTrivia,
		authorization: authorization,
		body:          payload,
	})
}

func (c *Client) DeleteTriviaQuestion(ctx context.Context, authorization, id string) error {
	return c.discard(ctx, request{
		method:        http.MethodDelete,
		path:          "/api/trivia-questions/" + url.PathEscape(id) + "/",
		resource:      resourceTrivia,
		authorization: authorization,
	})
}

// SubmitTrivia records a completed trivia round for the signed-in guest.
func (c *Client) SubmitTrivia(ctx context.Context, authorization string, payload map[string]any) (record.Record, error) {
	return c.getRecord(ctx, request{
		method:        http.MethodPost,
		path:          "/api/trivia/submit/",
		resource:      resourceTrivia,
		authorization: authorization,
		body:          payload,
	})
}

func (c *Client) TriviaCategories(ctx context.Context, authorization string) ([]record.Record, error) {
	return c.getList(ctx, request{
		path:          "/api/trivia/categories/",
		resource:      resourceTrivia,
		authorization: authorization,
	}, "categories")
}
