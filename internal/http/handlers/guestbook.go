package handlers

import (
	"net/http"

	"github.com/labstack/echo/v5"
	"github.com/partyline/partyline/internal/metrics"
	"github.com/partyline/partyline/internal/partyapi"
	"github.com/partyline/partyline/internal/record"
)

// HandleListGuestbook proxies the guestbook, scoped to the configured party.
func (h *Handlers) HandleListGuestbook(c *echo.Context) error {
	p := principal(c)
	records, err := h.cachedList(c, "guestbook", func() ([]record.Record, error) {
		return h.API.ListGuestbook(c.Request().Context(), p.Authorization)
	})
	if err != nil {
		if partyapi.StatusOf(err) == http.StatusForbidden {
			return emptyList(c)
		}
		return upstreamError(c, "Failed to fetch guestbook messages", "Guestbook", err)
	}
	return listJSON(c, record.FilterParty(records, h.Cfg.PartyID))
}

// HandleCreateGuestbookMessage posts a new guestbook message upstream.
func (h *Handlers) HandleCreateGuestbookMessage(c *echo.Context) error {
	p := principal(c)
	payload, err := bindPayload(c)
	if err != nil {
		return err
	}
	payload["party"] = h.Cfg.PartyID

	created, err := h.API.CreateGuestbookMessage(c.Request().Context(), p.Authorization, payload)
	if err != nil {
		return upstreamError(c, "Failed to post message", "Guestbook", err)
	}
	h.invalidateLists()
	return c.JSON(http.StatusCreated, created)
}

// HandleUpdateGuestbookMessage edits a message after an ownership check.
func (h *Handlers) HandleUpdateGuestbookMessage(c *echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return errJSON(c, http.StatusBadRequest, "Message id is required", "")
	}
	p := principal(c)

	rec, err := h.API.GetGuestbookMessage(c.Request().Context(), p.Authorization, id)
	if err != nil {
		if partyapi.StatusOf(err) == http.StatusNotFound {
			return errJSON(c, http.StatusNotFound, "Message not found", "")
		}
		return upstreamError(c, "Unable to load message", "Guestbook", err)
	}

	if !h.Auth.CanMutate(rec, p.User) {
		metrics.ProxyDenialsTotal.WithLabelValues("guestbook").Inc()
		return errJSON(c, http.StatusForbidden, "You can only edit your own message", "")
	}

	payload, err := bindPayload(c)
	if err != nil {
		return err
	}
	updated, err := h.API.UpdateGuestbookMessage(c.Request().Context(), p.Authorization, id, payload)
	if err != nil {
		return upstreamError(c, "Failed to update message", "Guestbook", err)
	}
	h.invalidateLists()
	return c.JSON(http.StatusOK, updated)
}

// HandleDeleteGuestbookMessage deletes a message after an ownership check.
func (h *Handlers) HandleDeleteGuestbookMessage(c *echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return errJSON(c, http.StatusBadRequest, "Message id is required", "")
	}
	p := principal(c)

	rec, err := h.API.GetGuestbookMessage(c.Request().Context(), p.Authorization, id)
	if err != nil {
		if partyapi.StatusOf(err) == http.StatusNotFound {
			return errJSON(c, http.StatusNotFound, "Message not found", "")
		}
		return upstreamError(c, "Unable to load message", "Guestbook", err)
	}

	if !h.Auth.CanMutate(rec, p.User) {
		metrics.ProxyDenialsTotal.WithLabelValues("guestbook").Inc()
		return errJSON(c, http.StatusForbidden, "You can only delete your own message", "")
	}

	role := h.Auth.DeleteRole(rec, p.User)
	if err := h.API.DeleteGuestbookMessage(c.Request().Context(), p.Authorization, id, role); err != nil {
		return upstreamError(c, "Failed to delete message", "Guestbook", err)
	}
	h.invalidateLists()
	return c.NoContent(http.StatusNoContent)
}
