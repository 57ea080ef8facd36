package handlers

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/partyline/partyline/internal/config"
	"github.com/partyline/partyline/internal/partyapi"
)

func testConfig(upstream string) config.Config {
	return config.Config{
		PartyAPIURL:  upstream,
		PartyID:      "1",
		PartyName:    "Test Party",
		AdminEmails:  "host@example.com",
		ListCacheTTL: time.Minute,
	}
}

func newHandlers(t *testing.T, upstream string) *Handlers {
	t.Helper()
	api, err := partyapi.New(upstream, time.Second)
	if err != nil {
		t.Fatalf("partyapi.New: %v", err)
	}
	return New(testConfig(upstream), api)
}

func newContext(t *testing.T, method, target, authorization string, body string) (*echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func serveRoute(t *testing.T, method, pattern string, handler echo.HandlerFunc, target, authorization, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	switch method {
	case http.MethodDelete:
		e.DELETE(pattern, handler)
	case http.MethodPut:
		e.PUT(pattern, handler)
	case http.MethodPatch:
		e.PATCH(pattern, handler)
	case http.MethodPost:
		e.POST(pattern, handler)
	default:
		e.GET(pattern, handler)
	}
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func bearer(t *testing.T, claims map[string]any) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none"}`))
	payload, err := json.Marshal(claims)
	if err != nil {
		t.Fatalf("marshal claims: %v", err)
	}
	return "Bearer " + header + "." + base64.RawURLEncoding.EncodeToString(payload) + "."
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var items []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode list: %v (%s)", err, rec.Body.String())
	}
	return items
}

func TestListRSVPsFiltersToConfiguredParty(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/rsvps/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[
			{"id": 1, "party": 1, "name": "Ada"},
			{"id": 2, "party": "1", "name": "Grace"},
			{"id": 3, "party": 2, "name": "Elsewhere"},
			{"id": 4, "party": 1, "name": "Gone", "is_deleted": true},
			{"id": 5, "name": "No Party"}
		]`))
	}))
	defer srv.Close()

	h := newHandlers(t, srv.URL)
	c, rec := newContext(t, http.MethodGet, "/api/rsvps", "", "")
	if err := h.HandleListRSVPs(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d want %d", rec.Code, http.StatusOK)
	}

	items := decodeList(t, rec)
	if len(items) != 2 {
		t.Fatalf("got %d records, want 2: %s", len(items), rec.Body.String())
	}
	for _, item := range items {
		name, _ := item["name"].(string)
		if name != "Ada" && name != "Grace" {
			t.Fatalf("unexpected record %v", item)
		}
	}
}

func TestListRSVPsReturnsEmptyListOnUpstreamForbidden(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"forbidden"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	h := newHandlers(t, srv.URL)
	c, rec := newContext(t, http.MethodGet, "/api/rsvps", "", "")
	if err := h.HandleListRSVPs(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d want %d", rec.Code, http.StatusOK)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("body=%q want []", got)
	}
}

func TestListRSVPsUnavailableUpstreamIsBadGateway(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	h := newHandlers(t, srv.URL)
	c, rec := newContext(t, http.MethodGet, "/api/rsvps", "", "")
	if err := h.HandleListRSVPs(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status=%d want %d", rec.Code, http.StatusBadGateway)
	}
	if !strings.Contains(rec.Body.String(), "RSVP service unavailable") {
		t.Fatalf("body=%q", rec.Body.String())
	}
}

func TestListRSVPsServedFromCache(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`[{"id": 1, "party": 1}]`))
	}))
	defer srv.Close()

	h := newHandlers(t, srv.URL)
	for i := 0; i < 3; i++ {
		c, rec := newContext(t, http.MethodGet, "/api/rsvps", "", "")
		if err := h.HandleListRSVPs(c); err != nil {
			t.Fatalf("handler: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("status=%d", rec.Code)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("upstream calls=%d want 1", got)
	}
}

func TestCreateRSVPStampsParty(t *testing.T) {
	t.Parallel()

	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method=%s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode upstream body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 9}`))
	}))
	defer srv.Close()

	h := newHandlers(t, srv.URL)
	c, rec := newContext(t, http.MethodPost, "/api/rsvps", bearer(t, map[string]any{"uid": "u1"}), `{"name":"Ada","attending":true}`)
	if err := h.HandleCreateRSVP(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status=%d want %d", rec.Code, http.StatusCreated)
	}
	if received["party"] != "1" {
		t.Fatalf("party=%v want %q", received["party"], "1")
	}
	if received["name"] != "Ada" {
		t.Fatalf("name=%v", received["name"])
	}
}

func TestDeleteRSVPOwnerSendsOwnerRole(t *testing.T) {
	t.Parallel()

	var deleteRole string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`{"id": 42, "firebase_uid": "u1"}`))
		case http.MethodDelete:
			deleteRole = r.Header.Get(partyapi.HeaderDeleteRole)
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	}))
	defer srv.Close()

	h := newHandlers(t, srv.URL)
	rec := serveRoute(t, http.MethodDelete, "/api/rsvps/:id", h.HandleDeleteRSVP,
		"/api/rsvps/42", bearer(t, map[string]any{"uid": "u1"}), "")

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status=%d want %d: %s", rec.Code, http.StatusNoContent, rec.Body.String())
	}
	if deleteRole != "owner" {
		t.Fatalf("X-Delete-Role=%q want owner", deleteRole)
	}
}

func TestDeleteRSVPAdminSendsAdminRole(t *testing.T) {
	t.Parallel()

	var deleteRole string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`{"id": 42, "firebase_uid": "someone-else"}`))
		case http.MethodDelete:
			deleteRole = r.Header.Get(partyapi.HeaderDeleteRole)
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()

	h := newHandlers(t, srv.URL)
	rec := serveRoute(t, http.MethodDelete, "/api/rsvps/:id", h.HandleDeleteRSVP,
		"/api/rsvps/42", bearer(t, map[string]any{"uid": "u2", "email": "Host@Example.com"}), "")

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status=%d: %s", rec.Code, rec.Body.String())
	}
	if deleteRole != "admin" {
		t.Fatalf("X-Delete-Role=%q want admin", deleteRole)
	}
}

func TestDeleteRSVPStrangerIsForbiddenBeforeUpstreamDelete(t *testing.T) {
	t.Parallel()

	var deleted atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`{"id": 42, "firebase_uid": "owner-uid"}`))
		case http.MethodDelete:
			deleted.Store(true)
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()

	h := newHandlers(t, srv.URL)
	rec := serveRoute(t, http.MethodDelete, "/api/rsvps/:id", h.HandleDeleteRSVP,
		"/api/rsvps/42", bearer(t, map[string]any{"uid": "stranger"}), "")

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status=%d want %d", rec.Code, http.StatusForbidden)
	}
	if deleted.Load() {
		t.Fatalf("upstream delete happened despite denial")
	}
}

func TestDeleteRSVPMissingRecordIs404(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	h := newHandlers(t, srv.URL)
	rec := serveRoute(t, http.MethodDelete, "/api/rsvps/:id", h.HandleDeleteRSVP,
		"/api/rsvps/42", bearer(t, map[string]any{"uid": "u1"}), "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status=%d want %d", rec.Code, http.StatusNotFound)
	}
	if !strings.Contains(rec.Body.String(), "RSVP not found") {
		t.Fatalf("body=%q", rec.Body.String())
	}
}

func TestUpdateGuestbookMessageCanEditBypassesIdentity(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`{"id": 7, "can_edit": true}`))
		case http.MethodPatch:
			_, _ = w.Write([]byte(`{"id": 7, "message": "updated"}`))
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	}))
	defer srv.Close()

	h := newHandlers(t, srv.URL)
	rec := serveRoute(t, http.MethodPut, "/api/guestbook/:id", h.HandleUpdateGuestbookMessage,
		"/api/guestbook/7", bearer(t, map[string]any{"uid": "whoever"}), `{"message":"updated"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d: %s", rec.Code, rec.Body.String())
	}
}

func TestListPhotosForwardsPartyQueryUpstream(t *testing.T) {
	t.Parallel()

	var gotParty string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotParty = r.URL.Query().Get("party")
		_, _ = w.Write([]byte(`{"photos": [{"id": 1}, {"id": 2, "is_deleted": "true"}]}`))
	}))
	defer srv.Close()

	h := newHandlers(t, srv.URL)
	c, rec := newContext(t, http.MethodGet, "/api/photos", "", "")
	if err := h.HandleListPhotos(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if gotParty != "1" {
		t.Fatalf("party query=%q want %q", gotParty, "1")
	}
	items := decodeList(t, rec)
	if len(items) != 1 {
		t.Fatalf("got %d photos, want deleted one dropped: %s", len(items), rec.Body.String())
	}
}

func TestCheckAdminAllowListWinsWhenUpstreamIsDown(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	h := newHandlers(t, srv.URL)
	c, rec := newContext(t, http.MethodGet, "/api/check-admin", bearer(t, map[string]any{"uid": "u1", "email": "host@example.com"}), "")
	if err := h.HandleCheckAdmin(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d: %s", rec.Code, rec.Body.String())
	}
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out["is_admin"] != true {
		t.Fatalf("is_admin=%v want true", out["is_admin"])
	}
}

func TestCheckAdminWithoutAuthIs401(t *testing.T) {
	t.Parallel()

	h := newHandlers(t, "http://upstream.invalid")
	c, rec := newContext(t, http.MethodGet, "/api/check-admin", "", "")
	if err := h.HandleCheckAdmin(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAdminRSVPsDeniesNonAdmins(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/check-admin") {
			_, _ = w.Write([]byte(`{"is_admin": false}`))
			return
		}
		t.Errorf("unexpected upstream call %s", r.URL.Path)
	}))
	defer srv.Close()

	h := newHandlers(t, srv.URL)
	c, rec := newContext(t, http.MethodGet, "/api/admin/rsvps", bearer(t, map[string]any{"uid": "u1", "email": "guest@example.com"}), "")
	if err := h.HandleAdminRSVPs(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status=%d want %d", rec.Code, http.StatusForbidden)
	}
}

func TestAdminRSVPsResolvesDisplayNames(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id": 1, "party": 1, "user": {"email": "jane@example.com"}, "firebase_uid": "u-jane"},
			{"id": 2, "party": 1, "name": "Ada Lovelace"},
			{"id": 3, "party": 2, "name": "Other Party"}
		]`))
	}))
	defer srv.Close()

	h := newHandlers(t, srv.URL)
	c, rec := newContext(t, http.MethodGet, "/api/admin/rsvps", bearer(t, map[string]any{"uid": "u1", "email": "host@example.com"}), "")
	if err := h.HandleAdminRSVPs(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d: %s", rec.Code, rec.Body.String())
	}

	var out struct {
		Count int `json:"count"`
		RSVPs []struct {
			ID          string `json:"id"`
			DisplayName string `json:"display_name"`
			OwnerUID    string `json:"owner_uid"`
		} `json:"rsvps"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Count != 2 {
		t.Fatalf("count=%d want 2", out.Count)
	}
	byID := map[string]string{}
	for _, r := range out.RSVPs {
		byID[r.ID] = r.DisplayName
	}
	if byID["1"] != "jane" {
		t.Fatalf("display name for 1 = %q want %q", byID["1"], "jane")
	}
	if byID["2"] != "Ada Lovelace" {
		t.Fatalf("display name for 2 = %q", byID["2"])
	}
}

func TestBindPayloadRejectsInvalidJSON(t *testing.T) {
	t.Parallel()

	c, _ := newContext(t, http.MethodPost, "/api/rsvps", "", `{not json`)
	if _, err := bindPayload(c); err == nil {
		t.Fatalf("expected error for invalid JSON")
	}
}

func TestBindPayloadEmptyBodyYieldsEmptyMap(t *testing.T) {
	t.Parallel()

	c, _ := newContext(t, http.MethodPost, "/api/rsvps", "", "")
	payload, err := bindPayload(c)
	if err != nil {
		t.Fatalf("bindPayload: %v", err)
	}
	if len(payload) != 0 {
		t.Fatalf("payload=%v want empty", payload)
	}
}
