package handlers

import (
	"net/http"

	"github.com/labstack/echo/v5"
	"github.com/partyline/partyline/internal/partyapi"
	"github.com/partyline/partyline/internal/record"
)

// HandleListTriviaQuestions proxies the trivia question bank.
func (h *Handlers) HandleListTriviaQuestions(c *echo.Context) error {
	p := principal(c)
	query := c.Request().URL.Query()
	records, err := h.cachedList(c, "trivia", func() ([]record.Record, error) {
		return h.API.ListTriviaQuestions(c.Request().Context(), p.Authorization, query)
	})
	if err != nil {
		if partyapi.StatusOf(err) == http.StatusForbidden {
			return emptyList(c)
		}
		return upstreamError(c, "Failed to fetch trivia questions", "Trivia", err)
	}
	return listJSON(c, records)
}

// HandleCreateTriviaQuestion adds a question to the bank. Admin only.
func (h *Handlers) HandleCreateTriviaQuestion(c *echo.Context) error {
	p := principal(c)
	if !h.Auth.IsAdmin(p.User) {
		return errJSON(c, http.StatusForbidden, "Admin access required", "")
	}
	payload, err := bindPayload(c)
	if err != nil {
		return err
	}
	payload["party"] = h.Cfg.PartyID

	created, err := h.API.CreateTriviaQuestion(c.Request().Context(), p.Authorization, payload)
	if err != nil {
		return upstreamError(c, "Failed to create trivia question", "Trivia", err)
	}
	h.invalidateLists()
	return c.JSON(http.StatusCreated, created)
}

// HandleUpdateTriviaQuestion edits a question. Admin only.
func (h *Handlers) HandleUpdateTriviaQuestion(c *echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return errJSON(c, http.StatusBadRequest, "Question id is required", "")
	}
	p := principal(c)
	if !h.Auth.IsAdmin(p.User) {
		return errJSON(c, http.StatusForbidden, "Admin access required", "")
	}
	payload, err := bindPayload(c)
	if err != nil {
		return err
	}

	updated, err := h.API.UpdateTriviaQuestion(c.Request().Context(), p.Authorization, id, payload)
	if err != nil {
		return upstreamError(c, "Failed to update trivia question", "Trivia", err)
	}
	h.invalidateLists()
	return c.JSON(http.StatusOK, updated)
}

// HandleDeleteTriviaQuestion removes a question. Admin only.
func (h *Handlers) HandleDeleteTriviaQuestion(c *echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return errJSON(c, http.StatusBadRequest, "Question id is required", "")
	}
	p := principal(c)
	if !h.Auth.IsAdmin(p.User) {
		return errJSON(c, http.StatusForbidden, "Admin access required", "")
	}

	if err := h.API.DeleteTriviaQuestion(c.Request().Context(), p.Authorization, id); err != nil {
		return upstreamError(c, "Failed to delete trivia question", "Trivia", err)
	}
	h.invalidateLists()
	return c.NoContent(http.StatusNoContent)
}

// HandleSubmitTrivia forwards a trivia answer submission.
func (h *Handlers) HandleSubmitTrivia(c *echo.Context) error {
	p := principal(c)
	payload, err := bindPayload(c)
	if err != nil {
		return err
	}

	result, err := h.API.SubmitTrivia(c.Request().Context(), p.Authorization, payload)
	if err != nil {
		return upstreamError(c, "Failed to submit answer", "Trivia", err)
	}
	return c.JSON(http.StatusOK, result)
}

// HandleTriviaCategories lists the available trivia categories.
func (h *Handlers) HandleTriviaCategories(c *echo.Context) error {
	p := principal(c)
	records, err := h.cachedList(c, "trivia-categories", func() ([]record.Record, error) {
		return h.API.TriviaCategories(c.Request().Context(), p.Authorization)
	})
	if err != nil {
		if partyapi.StatusOf(err) == http.StatusForbidden {
			return emptyList(c)
		}
		return upstreamError(c, "Failed to fetch trivia categories", "Trivia", err)
	}
	return listJSON(c, records)
}
