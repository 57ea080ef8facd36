package handlers

import (
	"net/http"

	"github.com/labstack/echo/v5"
	"github.com/partyline/partyline/internal/partyapi"
	"github.com/partyline/partyline/internal/record"
)

// HandleListTimelineEvents proxies the party timeline.
func (h *Handlers) HandleListTimelineEvents(c *echo.Context) error {
	p := principal(c)
	query := c.Request().URL.Query()
	records, err := h.cachedList(c, "timeline", func() ([]record.Record, error) {
		return h.API.ListTimelineEvents(c.Request().Context(), p.Authorization, query)
	})
	if err != nil {
		if partyapi.StatusOf(err) == http.StatusForbidden {
			return emptyList(c)
		}
		return upstreamError(c, "Failed to fetch timeline events", "Timeline", err)
	}
	return listJSON(c, record.FilterParty(records, h.Cfg.PartyID))
}

// HandleCreateTimelineEvent adds an event to the timeline. Admin only.
func (h *Handlers) HandleCreateTimelineEvent(c *echo.Context) error {
	p := principal(c)
	if !h.Auth.IsAdmin(p.User) {
		return errJSON(c, http.StatusForbidden, "Admin access required", "")
	}
	payload, err := bindPayload(c)
	if err != nil {
		return err
	}
	payload["party"] = h.Cfg.PartyID

	created, err := h.API.CreateTimelineEvent(c.Request().Context(), p.Authorization, payload)
	if err != nil {
		return upstreamError(c, "Failed to create timeline event", "Timeline", err)
	}
	h.invalidateLists()
	return c.JSON(http.StatusCreated, created)
}

// HandleUpdateTimelineEvent edits a timeline event. Admin only.
func (h *Handlers) HandleUpdateTimelineEvent(c *echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return errJSON(c, http.StatusBadRequest, "Event id is required", "")
	}
	p := principal(c)
	if !h.Auth.IsAdmin(p.User) {
		return errJSON(c, http.StatusForbidden, "Admin access required", "")
	}
	payload, err := bindPayload(c)
	if err != nil {
		return err
	}

	updated, err := h.API.UpdateTimelineEvent(c.Request().Context(), p.Authorization, id, payload)
	if err != nil {
		return upstreamError(c, "Failed to update timeline event", "Timeline", err)
	}
	h.invalidateLists()
	return c.JSON(http.StatusOK, updated)
}

// HandleDeleteTimelineEvent removes a timeline event. Admin only.
func (h *Handlers) HandleDeleteTimelineEvent(c *echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return errJSON(c, http.StatusBadRequest, "Event id is required", "")
	}
	p := principal(c)
	if !h.Auth.IsAdmin(p.User) {
		return errJSON(c, http.StatusForbidden, "Admin access required", "")
	}

	if err := h.API.DeleteTimelineEvent(c.Request().Context(), p.Authorization, id); err != nil {
		return upstreamError(c, "Failed to delete timeline event", "Timeline", err)
	}
	h.invalidateLists()
	return c.NoContent(http.StatusNoContent)
}
