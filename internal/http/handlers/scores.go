package handlers

import (
	"net/http"

	"github.com/labstack/echo/v5"
	"github.com/partyline/partyline/internal/partyapi"
	"github.com/partyline/partyline/internal/record"
)

// HandleListScores proxies game scores, forwarding any query filters.
func (h *Handlers) HandleListScores(c *echo.Context) error {
	p := principal(c)
	query := c.Request().URL.Query()
	records, err := h.cachedList(c, "scores", func() ([]record.Record, error) {
		return h.API.ListScores(c.Request().Context(), p.Authorization, query)
	})
	if err != nil {
		if partyapi.StatusOf(err) == http.StatusForbidden {
			return emptyList(c)
		}
		return upstreamError(c, "Failed to fetch scores", "Score", err)
	}
	return listJSON(c, records)
}

// HandleCreateScore records a new game score.
func (h *Handlers) HandleCreateScore(c *echo.Context) error {
	p := principal(c)
	payload, err := bindPayload(c)
	if err != nil {
		return err
	}
	payload["party"] = h.Cfg.PartyID

	created, err := h.API.CreateScore(c.Request().Context(), p.Authorization, payload)
	if err != nil {
		return upstreamError(c, "Failed to save score", "Score", err)
	}
	h.invalidateLists()
	return c.JSON(http.StatusCreated, created)
}

// HandleUpdateScore updates an existing score record.
func (h *Handlers) HandleUpdateScore(c *echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return errJSON(c, http.StatusBadRequest, "Score id is required", "")
	}
	p := principal(c)
	payload, err := bindPayload(c)
	if err != nil {
		return err
	}

	updated, err := h.API.UpdateScore(c.Request().Context(), p.Authorization, id, payload)
	if err != nil {
		return upstreamError(c, "Failed to update score", "Score", err)
	}
	h.invalidateLists()
	return c.JSON(http.StatusOK, updated)
}

// HandleAddScorePoints adds points to an existing score.
func (h *Handlers) HandleAddScorePoints(c *echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return errJSON(c, http.StatusBadRequest, "Score id is required", "")
	}
	p := principal(c)
	payload, err := bindPayload(c)
	if err != nil {
		return err
	}

	updated, err := h.API.AddScorePoints(c.Request().Context(), p.Authorization, id, payload)
	if err != nil {
		return upstreamError(c, "Failed to add points", "Score", err)
	}
	h.invalidateLists()
	return c.JSON(http.StatusOK, updated)
}

// HandleLeaderboard proxies the game leaderboard.
func (h *Handlers) HandleLeaderboard(c *echo.Context) error {
	p := principal(c)
	query := c.Request().URL.Query()
	records, err := h.cachedList(c, "leaderboard", func() ([]record.Record, error) {
		return h.API.Leaderboard(c.Request().Context(), p.Authorization, query)
	})
	if err != nil {
		if partyapi.StatusOf(err) == http.StatusForbidden {
			return emptyList(c)
		}
		return upstreamError(c, "Failed to fetch leaderboard", "Score", err)
	}
	return listJSON(c, records)
}

// HandleMyScores returns the caller's own scores.
func (h *Handlers) HandleMyScores(c *echo.Context) error {
	p := principal(c)
	records, err := h.API.MyScores(c.Request().Context(), p.Authorization, c.Request().URL.Query())
	if err != nil {
		if partyapi.StatusOf(err) == http.StatusForbidden {
			return emptyList(c)
		}
		return upstreamError(c, "Failed to fetch your scores", "Score", err)
	}
	return listJSON(c, records)
}
