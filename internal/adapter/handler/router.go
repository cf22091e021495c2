package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-scribe/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	meetingHandler *Meeting
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, meetingHandler *Meeting) *Router {
	return &Router{
		cfg:            cfg,
		meetingHandler: meetingHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupMeetingRoutes(v1)
	rt.setupTranscriptRoutes(v1)
}

// setupMeetingRoutes configures meeting processing and artifact routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetingGroup := g.Group("/meetings")

	if rt.meetingHandler != nil {
		meetingGroup.POST("/process", rt.meetingHandler.ProcessMeeting)
		meetingGroup.GET("/:id", rt.meetingHandler.GetArtifact)
		meetingGroup.GET("/:id/report", rt.meetingHandler.GetReport)
		meetingGroup.GET("/:id/actions", rt.meetingHandler.GetActionWorkbook)
		meetingGroup.DELETE("/:id", rt.meetingHandler.DeleteArtifact)
	} else {
		meetingGroup.POST("/process", rt.notImplemented)
		meetingGroup.GET("/:id", rt.notImplemented)
		meetingGroup.GET("/:id/report", rt.notImplemented)
		meetingGroup.GET("/:id/actions", rt.notImplemented)
		meetingGroup.DELETE("/:id", rt.notImplemented)
	}
}

// setupTranscriptRoutes configures transcript file routes
func (rt *Router) setupTranscriptRoutes(g *echo.Group) {
	transcriptGroup := g.Group("/transcripts")

	if rt.meetingHandler != nil {
		transcriptGroup.POST("/reveal", rt.meetingHandler.RevealTranscript)
	} else {
		transcriptGroup.POST("/reveal", rt.notImplemented)
	}
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":   "This endpoint is not yet implemented",
		"path":    c.Request().URL.Path,
		"method":  c.Request().Method,
		"message": "Please initialize the required handler in main.go",
	})
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
