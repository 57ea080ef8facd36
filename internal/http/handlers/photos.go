package handlers

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v5"
	"github.com/partyline/partyline/internal/metrics"
	"github.com/partyline/partyline/internal/partyapi"
	"github.com/partyline/partyline/internal/record"
)

// HandleListPhotos proxies the photo gallery. Party scoping happens upstream
// through the party query parameter; a caller-supplied ?party= wins over the
// configured default.
func (h *Handlers) HandleListPhotos(c *echo.Context) error {
	p := principal(c)
	partyID := c.QueryParam("party")
	if partyID == "" {
		partyID = h.Cfg.PartyID
	}
	query := url.Values{"party": []string{partyID}}

	records, err := h.cachedList(c, "photos", func() ([]record.Record, error) {
		return h.API.ListPhotos(c.Request().Context(), p.Authorization, query)
	})
	if err != nil {
		if partyapi.StatusOf(err) == http.StatusForbidden {
			return emptyList(c)
		}
		return upstreamError(c, "Failed to fetch photos", "Photo", err)
	}
	return listJSON(c, record.DropDeleted(records))
}

// HandleUploadPhoto forwards a photo upload upstream.
func (h *Handlers) HandleUploadPhoto(c *echo.Context) error {
	p := principal(c)
	payload, err := bindPayload(c)
	if err != nil {
		return err
	}
	payload["party"] = h.Cfg.PartyID

	created, err := h.API.UploadPhoto(c.Request().Context(), p.Authorization, payload)
	if err != nil {
		return upstreamError(c, "Failed to upload photo", "Photo", err)
	}
	h.invalidateLists()
	return c.JSON(http.StatusCreated, created)
}

// HandleLikePhoto toggles a like on a photo.
func (h *Handlers) HandleLikePhoto(c *echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return errJSON(c, http.StatusBadRequest, "Photo id is required", "")
	}
	p := principal(c)

	liked, err := h.API.LikePhoto(c.Request().Context(), p.Authorization, id)
	if err != nil {
		return upstreamError(c, "Failed to like photo", "Photo", err)
	}
	h.invalidateLists()
	return c.JSON(http.StatusOK, liked)
}

// HandleDeletePhoto deletes a photo after checking the caller may touch it.
func (h *Handlers) HandleDeletePhoto(c *echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return errJSON(c, http.StatusBadRequest, "Photo id is required", "")
	}
	p := principal(c)

	rec, err := h.API.GetPhoto(c.Request().Context(), p.Authorization, id)
	if err != nil {
		if partyapi.StatusOf(err) == http.StatusNotFound {
			return errJSON(c, http.StatusNotFound, "Photo not found", "")
		}
		return upstreamError(c, "Unable to load photo", "Photo", err)
	}

	if !h.Auth.CanMutate(rec, p.User) {
		metrics.ProxyDenialsTotal.WithLabelValues("photos").Inc()
		return errJSON(c, http.StatusForbidden, "You can only delete your own photo", "")
	}

	role := h.Auth.DeleteRole(rec, p.User)
	if err := h.API.DeletePhoto(c.Request().Context(), p.Authorization, id, role); err != nil {
		return upstreamError(c, "Failed to delete photo", "Photo", err)
	}
	h.invalidateLists()
	return c.NoContent(http.StatusNoContent)
}
