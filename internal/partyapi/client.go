// Package partyapi is the REST client for the external party backend. The
// backend owns every durable record; this client forwards the caller's
// bearer token verbatim and never retries; failures surface as APIError or
// transport errors for the proxy layer to translate.
package partyapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/partyline/partyline/internal/metrics"
	"github.com/partyline/partyline/internal/record"
)

const defaultTimeout = 30 * time.Second

const maxErrorBody = 8 << 10

var ErrAPI = errors.New("party api error")

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	status := strings.TrimSpace(e.Status)
	body := strings.TrimSpace(e.Body)
	if status != "" && body != "" {
		return fmt.Sprintf("party api error: %s: %s", status, body)
	}
	if status != "" {
		return fmt.Sprintf("party api error: %s", status)
	}
	return "party api error"
}

func (e *APIError) Unwrap() error {
	return ErrAPI
}

// StatusOf returns the upstream status code carried by err, or 0 when err is
// not an APIError.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// Client talks to the party backend. BaseURL has no trailing slash.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("party api base URL is required")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{BaseURL: baseURL, HTTP: &http.Client{Timeout: timeout}}, nil
}

type request struct {
	method        string
	path          string // upstream path, e.g. "/api/rsvps/"
	resource      string // metrics label
	query         url.Values
	authorization string // full Authorization header value, forwarded verbatim
	body          any
	header        http.Header
}

func (c *Client) do(ctx context.Context, req request) (*http.Response, error) {
	if c.BaseURL == "" {
		return nil, errors.New("party api base URL is required")
	}

	target := c.BaseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		raw, err := json.Marshal(req.body)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return nil, err
	}
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.authorization != "" {
		httpReq.Header.Set("Authorization", req.authorization)
	}
	for key, values := range req.header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	start := time.Now()
	resp, err := c.httpClient().Do(httpReq)
	metrics.UpstreamRequestDuration.WithLabelValues(req.resource, req.method).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(req.resource, req.method, "error").Inc()
		return nil, err
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(req.resource, req.method, strconv.Itoa(resp.StatusCode)).Inc()
	return resp, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP == nil {
		return &http.Client{Timeout: defaultTimeout}
	}
	return c.HTTP
}

// getList performs a GET and normalizes the response envelope: a bare array,
// or an object wrapping the array under "results" or a resource-specific key.
// Anything else yields an empty list.
func (c *Client) getList(ctx context.Context, req request, envelopeKeys ...string) ([]record.Record, error) {
	req.method = http.MethodGet
	resp, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return normalizeList(payload, envelopeKeys...), nil
}

// getRecord performs a request expecting a single JSON object back.
func (c *Client) getRecord(ctx context.Context, req request) (record.Record, error) {
	resp, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return record.Record(payload), nil
}

// discard performs a request where only the status matters (deletes).
func (c *Client) discard(ctx context.Context, req request) error {
	resp, err := c.do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &APIError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       strings.TrimSpace(string(raw)),
	}
}

func normalizeList(payload any, envelopeKeys ...string) []record.Record {
	switch v := payload.(type) {
	case []any:
		return toRecords(v)
	case map[string]any:
		for _, key := range append([]string{"results"}, envelopeKeys...) {
			if list, ok := v[key].([]any); ok {
				return toRecords(list)
			}
		}
	}
	return []record.Record{}
}

func toRecords(items []any) []record.Record {
	out := make([]record.Record, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, record.Record(m))
		}
	}
	return out
}
