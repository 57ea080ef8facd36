package httpapp

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
	"github.com/partyline/partyline/internal/config"
	"github.com/partyline/partyline/internal/http/authn"
	"github.com/partyline/partyline/internal/http/handlers"
	"github.com/partyline/partyline/internal/partyapi"
)

// EchoServer is the HTTP server wrapper.
type EchoServer struct {
	h *handlers.Handlers
	e *echo.Echo
}

// NewEchoServer creates a new HTTP server.
func NewEchoServer(cfg config.Config, api *partyapi.Client, logger *slog.Logger) (*EchoServer, error) {
	es := &EchoServer{h: handlers.New(cfg, api), e: echo.New()}
	if logger != nil {
		es.e.Logger = logger
	}
	es.e.HTTPErrorHandler = es.httpErrorHandler
	es.registerRoutes()
	return es, nil
}

func (es *EchoServer) registerRoutes() {
	cfg := es.h.Cfg

	es.e.Use(requestID())
	es.e.Use(authn.WithPrincipal())

	es.e.GET("/healthz", es.h.HandleHealthz)
	es.e.GET("/api/party", es.h.HandleParty)
	es.e.GET("/api/party/calendar.ics", es.h.HandleCalendar)
	es.e.GET("/api/check-admin", es.h.HandleCheckAdmin)

	authed := es.e.Group("", authn.RequireAuth())

	if cfg.EnableRSVP {
		es.e.GET("/api/rsvps", es.h.HandleListRSVPs)
		authed.POST("/api/rsvps", es.h.HandleCreateRSVP)
		authed.DELETE("/api/rsvps/:id", es.h.HandleDeleteRSVP)
		authed.GET("/api/admin/rsvps", es.h.HandleAdminRSVPs)
	}
	if cfg.EnableGuestbook {
		es.e.GET("/api/guestbook", es.h.HandleListGuestbook)
		authed.POST("/api/guestbook", es.h.HandleCreateGuestbookMessage)
		authed.PATCH("/api/guestbook/:id", es.h.HandleUpdateGuestbookMessage)
		authed.PUT("/api/guestbook/:id", es.h.HandleUpdateGuestbookMessage)
		authed.DELETE("/api/guestbook/:id", es.h.HandleDeleteGuestbookMessage)
	}
	if cfg.EnablePhotos {
		es.e.GET("/api/photos", es.h.HandleListPhotos)
		authed.POST("/api/photos", es.h.HandleUploadPhoto)
		authed.POST("/api/photos/:id/like", es.h.HandleLikePhoto)
		authed.DELETE("/api/photos/:id", es.h.HandleDeletePhoto)
	}
	if cfg.EnableGames {
		es.e.GET("/api/scores", es.h.HandleListScores)
		es.e.GET("/api/scores/leaderboard", es.h.HandleLeaderboard)
		authed.GET("/api/scores/my_scores", es.h.HandleMyScores)
		authed.POST("/api/scores", es.h.HandleCreateScore)
		authed.PATCH("/api/scores/:id", es.h.HandleUpdateScore)
		authed.PUT("/api/scores/:id", es.h.HandleUpdateScore)
		authed.POST("/api/scores/:id/add_points", es.h.HandleAddScorePoints)

		es.e.GET("/api/trivia-questions", es.h.HandleListTriviaQuestions)
		es.e.GET("/api/trivia/categories", es.h.HandleTriviaCategories)
		authed.POST("/api/trivia-questions", es.h.HandleCreateTriviaQuestion)
		authed.PATCH("/api/trivia-questions/:id", es.h.HandleUpdateTriviaQuestion)
		authed.PUT("/api/trivia-questions/:id", es.h.HandleUpdateTriviaQuestion)
		authed.DELETE("/api/trivia-questions/:id", es.h.HandleDeleteTriviaQuestion)
		authed.POST("/api/trivia/submit", es.h.HandleSubmitTrivia)
	}
	if cfg.EnableTimeline {
		es.e.GET("/api/timeline-events", es.h.HandleListTimelineEvents)
		authed.POST("/api/timeline-events", es.h.HandleCreateTimelineEvent)
		authed.PATCH("/api/timeline-events/:id", es.h.HandleUpdateTimelineEvent)
		authed.PUT("/api/timeline-events/:id", es.h.HandleUpdateTimelineEvent)
		authed.DELETE("/api/timeline-events/:id", es.h.HandleDeleteTimelineEvent)
	}
}

// requestID tags each request with an id for log correlation and client
// error references. An inbound X-Request-ID is trusted when present.
func requestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			id := strings.TrimSpace(c.Request().Header.Get(echo.HeaderXRequestID))
			if id == "" {
				id = uuid.NewString()
			}
			c.Set(handlers.ContextKeyRequestID, id)
			c.Response().Header().Set(echo.HeaderXRequestID, id)
			return next(c)
		}
	}
}

func (es *EchoServer) httpErrorHandler(c *echo.Context, err error) {
	if r, _ := echo.UnwrapResponse(c.Response()); r != nil && r.Committed {
		return
	}

	status := httpStatusFromError(err)
	if status == http.StatusNotFound {
		_ = c.String(http.StatusNotFound, "404 page not found")
		return
	}
	if status != http.StatusInternalServerError {
		_ = c.String(status, http.StatusText(status))
		return
	}

	requestID, _ := c.Get(handlers.ContextKeyRequestID).(string)
	path := ""
	if req := c.Request(); req != nil && req.URL != nil {
		path = req.URL.Path
	}
	method := ""
	if req := c.Request(); req != nil {
		method = req.Method
	}
	c.Logger().Error("http error",
		"request_id", requestID,
		"method", method,
		"path", path,
		"ip", c.RealIP(),
		"error", err,
	)

	msg := "Internal server error."
	if requestID != "" {
		msg = fmt.Sprintf("%s Reference: %s.", msg, requestID)
	}
	msg = fmt.Sprintf("%s Code: %s.", msg, handlers.InternalErrorCode)
	_ = c.String(http.StatusInternalServerError, msg)
}

func httpStatusFromError(err error) int {
	var coder echo.HTTPStatusCoder
	if errors.As(err, &coder) {
		return coder.StatusCode()
	}
	return http.StatusInternalServerError
}

// Handler exposes the router for mounting on an http.Server.
func (es *EchoServer) Handler() http.Handler {
	return es.e
}
