package handlers

import (
	"net/http"

	"github.com/labstack/echo/v5"
	"github.com/partyline/partyline/internal/partyapi"
	"github.com/partyline/partyline/internal/record"
)

// HandleCheckAdmin reports whether the caller is a party admin. The local
// allow-list wins over the upstream answer, so a configured admin stays an
// admin even when the backend disagrees or is down.
func (h *Handlers) HandleCheckAdmin(c *echo.Context) error {
	p := principal(c)
	if p.Authorization == "" {
		return c.JSON(http.StatusUnauthorized, map[string]any{
			"error":    "Authentication required",
			"is_admin": false,
		})
	}

	listed := h.Auth.IsAdmin(p.User)

	rec, err := h.API.CheckAdmin(c.Request().Context(), p.Authorization)
	if err != nil {
		if listed {
			return c.JSON(http.StatusOK, map[string]any{"is_admin": true})
		}
		if status := partyapi.StatusOf(err); status != 0 {
			return c.JSON(status, map[string]any{
				"error":    "Failed to check admin status",
				"is_admin": false,
			})
		}
		return c.JSON(http.StatusBadGateway, map[string]any{
			"error":    "Admin check service unavailable",
			"is_admin": false,
		})
	}

	if rec == nil {
		rec = record.Record{}
	}
	if listed {
		rec["is_admin"] = true
	}
	return c.JSON(http.StatusOK, rec)
}

// isAdminRequest resolves admin status for gated routes, consulting the
// allow-list first and the upstream check second.
func (h *Handlers) isAdminRequest(c *echo.Context) bool {
	p := principal(c)
	if p.Authorization == "" {
		return false
	}
	if h.Auth.IsAdmin(p.User) {
		return true
	}
	rec, err := h.API.CheckAdmin(c.Request().Context(), p.Authorization)
	if err != nil {
		return false
	}
	flag, _ := rec["is_admin"].(bool)
	return flag
}

// adminRSVPView is the normalized row the admin dashboard consumes.
type adminRSVPView struct {
	ID          string        `json:"id"`
	DisplayName string        `json:"display_name"`
	OwnerUID    string        `json:"owner_uid,omitempty"`
	OwnerEmail  string        `json:"owner_email,omitempty"`
	Record      record.Record `json:"record"`
}

// HandleAdminRSVPs lists all RSVPs for the configured party with resolved
// display names and owner identities. Admin only.
func (h *Handlers) HandleAdminRSVPs(c *echo.Context) error {
	if !h.isAdminRequest(c) {
		return errJSON(c, http.StatusForbidden, "Admin access required", "")
	}
	p := principal(c)

	records, err := h.API.ListRSVPs(c.Request().Context(), p.Authorization, nil)
	if err != nil {
		return upstreamError(c, "Failed to fetch RSVPs", "RSVP", err)
	}

	scoped := record.FilterParty(records, h.Cfg.PartyID)
	views := make([]adminRSVPView, 0, len(scoped))
	for _, r := range scoped {
		views = append(views, adminRSVPView{
			ID:          r.ID(),
			DisplayName: r.DisplayName(record.KindRSVP),
			OwnerUID:    r.OwnerUID(),
			OwnerEmail:  r.OwnerEmail(),
			Record:      r,
		})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"count": len(views),
		"rsvps": views,
	})
}
