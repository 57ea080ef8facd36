package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v5"
)

// partyView is the public party configuration served to guests.
type partyView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Location  string `json:"location"`
	Theme     string `json:"theme"`
	Latitude  string `json:"latitude,omitempty"`
	Longitude string `json:"longitude,omitempty"`

	FacebookLive  string `json:"facebook_live_url,omitempty"`
	VenmoUsername string `json:"venmo_username,omitempty"`

	WelcomeMessage string `json:"welcome_message,omitempty"`
	RSVPMessage    string `json:"rsvp_message,omitempty"`
	GiftMessage    string `json:"gift_message,omitempty"`

	Features map[string]bool `json:"features"`
}

// HandleParty returns the configured party details and feature flags.
func (h *Handlers) HandleParty(c *echo.Context) error {
	cfg := h.Cfg
	return c.JSON(http.StatusOK, partyView{
		ID:             cfg.PartyID,
		Name:           cfg.PartyName,
		Date:           cfg.PartyDate,
		Time:           cfg.PartyTime,
		Location:       cfg.PartyLocation,
		Theme:          cfg.PartyTheme,
		Latitude:       cfg.PartyLatitude,
		Longitude:      cfg.PartyLongitude,
		FacebookLive:   cfg.FacebookLiveURL,
		VenmoUsername:  cfg.VenmoUsername,
		WelcomeMessage: cfg.WelcomeMessage,
		RSVPMessage:    cfg.RSVPMessage,
		GiftMessage:    cfg.GiftMessage,
		Features: map[string]bool{
			"photos":    cfg.EnablePhotos,
			"rsvp":      cfg.EnableRSVP,
			"games":     cfg.EnableGames,
			"gifts":     cfg.EnableGifts,
			"guestbook": cfg.EnableGuestbook,
			"timeline":  cfg.EnableTimeline,
		},
	})
}

var partyDateLayouts = []string{"Jan 2, 2006", "January 2, 2006", "2006-01-02"}

var partyTimeLayouts = []string{"3:04 PM", "3 PM", "15:04"}

func parsePartyDate(date string) (time.Time, bool) {
	date = strings.TrimSpace(date)
	for _, layout := range partyDateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parsePartyClock(clock string) (time.Duration, bool) {
	clock = strings.TrimSpace(clock)
	for _, layout := range partyTimeLayouts {
		if t, err := time.Parse(layout, clock); err == nil {
			return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, true
		}
	}
	return 0, false
}

func icsEscape(s string) string {
	r := strings.NewReplacer("\\", "\\\\", ";", "\\;", ",", "\\,", "\n", "\\n")
	return r.Replace(s)
}

// HandleCalendar renders the party as a downloadable iCalendar event. The
// configured date and time are free text, so parsing is best effort: an
// unparseable time range degrades to an all-day event.
func (h *Handlers) HandleCalendar(c *echo.Context) error {
	cfg := h.Cfg
	day, ok := parsePartyDate(cfg.PartyDate)
	if !ok {
		return errJSON(c, http.StatusNotFound, "Party date is not configured", "")
	}

	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\r\n")
	b.WriteString("VERSION:2.0\r\n")
	b.WriteString("PRODID:-//partyline//party//EN\r\n")
	b.WriteString("BEGIN:VEVENT\r\n")
	fmt.Fprintf(&b, "UID:party-%s@partyline\r\n", cfg.PartyID)
	fmt.Fprintf(&b, "DTSTAMP:%s\r\n", time.Now().UTC().Format("20060102T150405Z"))

	parts := strings.SplitN(cfg.PartyTime, " - ", 2)
	if start, ok := parsePartyClock(parts[0]); ok {
		begin := day.Add(start)
		end := begin.Add(3 * time.Hour)
		if len(parts) == 2 {
			if until, ok := parsePartyClock(parts[1]); ok {
				end = day.Add(until)
				if !end.After(begin) {
					end = end.Add(24 * time.Hour)
				}
			}
		}
		fmt.Fprintf(&b, "DTSTART:%s\r\n", begin.Format("20060102T150405"))
		fmt.Fprintf(&b, "DTEND:%s\r\n", end.Format("20060102T150405"))
	} else {
		fmt.Fprintf(&b, "DTSTART;VALUE=DATE:%s\r\n", day.Format("20060102"))
		fmt.Fprintf(&b, "DTEND;VALUE=DATE:%s\r\n", day.Add(24*time.Hour).Format("20060102"))
	}

	fmt.Fprintf(&b, "SUMMARY:%s\r\n", icsEscape(cfg.PartyName))
	if cfg.PartyLocation != "" {
		fmt.Fprintf(&b, "LOCATION:%s\r\n", icsEscape(cfg.PartyLocation))
	}
	if cfg.WelcomeMessage != "" {
		fmt.Fprintf(&b, "DESCRIPTION:%s\r\n", icsEscape(cfg.WelcomeMessage))
	}
	if cfg.PartyLatitude != "" && cfg.PartyLongitude != "" {
		fmt.Fprintf(&b, "GEO:%s;%s\r\n", cfg.PartyLatitude, cfg.PartyLongitude)
	}
	b.WriteString("END:VEVENT\r\n")
	b.WriteString("END:VCALENDAR\r\n")

	c.Response().Header().Set("Content-Disposition", `attachment; filename="party.ics"`)
	return c.Blob(http.StatusOK, "text/calendar; charset=utf-8", []byte(b.String()))
}
