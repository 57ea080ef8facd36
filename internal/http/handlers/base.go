// Package handlers contains HTTP handler logic split by resource.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v5"
	"github.com/patrickmn/go-cache"
	"github.com/partyline/partyline/internal/authz"
	"github.com/partyline/partyline/internal/config"
	"github.com/partyline/partyline/internal/http/authn"
	"github.com/partyline/partyline/internal/metrics"
	"github.com/partyline/partyline/internal/partyapi"
	"github.com/partyline/partyline/internal/record"
)

const (
	// ContextKeyRequestID stores the request id (X-Request-ID) for logging and client error references.
	ContextKeyRequestID = "request_id"

	// InternalErrorCode is a stable error code safe to return to clients.
	InternalErrorCode = "INTERNAL_ERROR"

	maxBodyBytes = 1 << 20
)

// Handlers groups all HTTP handlers and shared dependencies.
type Handlers struct {
	Cfg   config.Config
	API   *partyapi.Client
	Auth  authz.Authorizer
	Lists *cache.Cache
}

// New wires the handler set for the given configuration.
func New(cfg config.Config, api *partyapi.Client) *Handlers {
	return &Handlers{
		Cfg:   cfg,
		API:   api,
		Auth:  authz.Authorizer{Admins: authz.ParseAllowList(cfg.AdminEmails)},
		Lists: cache.New(cfg.ListCacheTTL, 2*cfg.ListCacheTTL),
	}
}

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Status  int    `json:"status,omitempty"`
}

func errJSON(c *echo.Context, status int, message, details string) error {
	return c.JSON(status, errorBody{Error: message, Details: details, Status: status})
}

// upstreamError translates a party API client failure into the proxy error
// envelope. Upstream rejections keep their status code and body; transport
// failures become a 502 naming the unreachable service.
func upstreamError(c *echo.Context, failMsg, service string, err error) error {
	var apiErr *partyapi.APIError
	if errors.As(err, &apiErr) {
		return errJSON(c, apiErr.StatusCode, failMsg, strings.TrimSpace(apiErr.Body))
	}
	return c.JSON(http.StatusBadGateway, errorBody{
		Error: fmt.Sprintf("%s service unavailable", service),
	})
}

// bindPayload decodes the request body into a generic payload. An empty body
// yields an empty map so callers can still inject the party id.
func bindPayload(c *echo.Context) (map[string]any, error) {
	payload := map[string]any{}
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return payload, nil
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid JSON body")
	}
	return payload, nil
}

func principal(c *echo.Context) authn.Principal {
	if p, ok := authn.PrincipalFromContext(c); ok {
		return p
	}
	return authn.LoadPrincipal(c)
}

// cachedList serves list fetches through the short-lived in-process cache.
// Keys include the caller's Authorization header because the upstream may
// tailor results to the caller.
func (h *Handlers) cachedList(c *echo.Context, resource string, fetch func() ([]record.Record, error)) ([]record.Record, error) {
	if h.Lists == nil {
		return fetch()
	}
	key := resource
	if p := principal(c); p.Authorization != "" {
		key = resource + "|" + p.Authorization
	}
	if raw := c.Request().URL.RawQuery; raw != "" {
		key = key + "?" + raw
	}
	if cached, ok := h.Lists.Get(key); ok {
		if records, ok := cached.([]record.Record); ok {
			metrics.ListCacheHitsTotal.WithLabelValues(resource).Inc()
			return records, nil
		}
	}
	records, err := fetch()
	if err != nil {
		return nil, err
	}
	h.Lists.SetDefault(key, records)
	return records, nil
}

// invalidateLists drops every cached list after a mutation.
func (h *Handlers) invalidateLists() {
	if h.Lists != nil {
		h.Lists.Flush()
	}
}

// listJSON renders a list response, never null.
func listJSON(c *echo.Context, records []record.Record) error {
	if records == nil {
		records = []record.Record{}
	}
	return c.JSON(http.StatusOK, records)
}

// emptyList is the response for callers the upstream refuses to serve.
func emptyList(c *echo.Context) error {
	return c.JSON(http.StatusOK, []record.Record{})
}

// HandleHealthz returns a simple health check response.
func (h *Handlers) HandleHealthz(c *echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
