package handlers

import (
	"net/http"

	"github.com/labstack/echo/v5"
	"github.com/partyline/partyline/internal/metrics"
	"github.com/partyline/partyline/internal/partyapi"
	"github.com/partyline/partyline/internal/record"
)

// HandleListRSVPs proxies the RSVP list, scoped to the configured party.
func (h *Handlers) HandleListRSVPs(c *echo.Context) error {
	p := principal(c)
	records, err := h.cachedList(c, "rsvps", func() ([]record.Record, error) {
		return h.API.ListRSVPs(c.Request().Context(), p.Authorization, nil)
	})
	if err != nil {
		if partyapi.StatusOf(err) == http.StatusForbidden {
			return emptyList(c)
		}
		return upstreamError(c, "Failed to fetch RSVPs", "RSVP", err)
	}
	return listJSON(c, record.FilterParty(records, h.Cfg.PartyID))
}

// HandleCreateRSVP forwards a new RSVP upstream, stamping the party id.
func (h *Handlers) HandleCreateRSVP(c *echo.Context) error {
	p := principal(c)
	payload, err := bindPayload(c)
	if err != nil {
		return err
	}
	payload["party"] = h.Cfg.PartyID

	created, err := h.API.CreateRSVP(c.Request().Context(), p.Authorization, payload)
	if err != nil {
		return upstreamError(c, "Failed to create RSVP", "RSVP", err)
	}
	h.invalidateLists()
	return c.JSON(http.StatusCreated, created)
}

// HandleDeleteRSVP deletes an RSVP after checking the caller may touch it.
// The upstream delete carries X-Delete-Role so the backend can tell an
// owner delete from an admin one.
func (h *Handlers) HandleDeleteRSVP(c *echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return errJSON(c, http.StatusBadRequest, "RSVP id is required", "")
	}
	p := principal(c)

	rec, err := h.API.GetRSVP(c.Request().Context(), p.Authorization, id)
	if err != nil {
		if partyapi.StatusOf(err) == http.StatusNotFound {
			return errJSON(c, http.StatusNotFound, "RSVP not found", "")
		}
		return upstreamError(c, "Unable to load RSVP", "RSVP", err)
	}

	if !h.Auth.CanMutate(rec, p.User) {
		metrics.ProxyDenialsTotal.WithLabelValues("rsvps").Inc()
		return errJSON(c, http.StatusForbidden, "You can only delete your own RSVP", "")
	}

	role := h.Auth.DeleteRole(rec, p.User)
	if err := h.API.DeleteRSVP(c.Request().Context(), p.Authorization, id, role); err != nil {
		return upstreamError(c, "Failed to delete RSVP", "RSVP", err)
	}
	h.invalidateLists()
	return c.NoContent(http.StatusNoContent)
}
