package handler

import (
	"errors"
	"fmt"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jengzang/tracker-dashboard-go/internal/analysis/viz"
	"github.com/jengzang/tracker-dashboard-go/internal/models"
	"github.com/jengzang/tracker-dashboard-go/internal/service"
	"github.com/jengzang/tracker-dashboard-go/pkg/response"
)

// SessionHandler handles HTTP requests for tracking sessions
type SessionHandler struct {
	sessionService *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
	}
}

// ListSessions handles GET /api/v1/sessions
func (h *SessionHandler) ListSessions(c *gin.Context) {
	var query models.SessionQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	list, err := h.sessionService.ListSessions(c.Request.Context(), service.SessionOptions{
		MinRecords: query.MinRecords,
		Render:     query.Render,
		Padded:     query.Padded,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, list)
}

// GetSession handles GET /api/v1/sessions/:key
func (h *SessionHandler) GetSession(c *gin.Context) {
	var query models.SessionQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	summary, err := h.sessionService.GetSession(c.Request.Context(), c.Param("key"), service.SessionOptions{
		MinRecords: query.MinRecords,
		Padded:     query.Padded,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, summary)
}

// ExportSession handles GET /api/v1/sessions/:key/export
func (h *SessionHandler) ExportSession(c *gin.Context) {
	var query models.ExportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid export format")
		return
	}
	format := query.Format
	if format == "" {
		format = viz.FormatGeoJSON
	}

	key := c.Param("key")
	summary, err := h.sessionService.GetSession(c.Request.Context(), key, service.SessionOptions{})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	data, err := viz.Export(*summary, format)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": fmt.Sprintf("session-%s.%s", key, format),
	}))
	c.Data(http.StatusOK, viz.ContentType(format), data)
}

// writeServiceError maps service errors onto status codes
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, "Session not found")
	case errors.Is(err, service.ErrFetchFailed):
		logrus.WithError(err).Error("[SessionHandler] Location store unavailable")
		response.ServiceUnavailable(c, "Location store unavailable")
	case errors.Is(err, service.ErrPruneInProgress):
		response.Conflict(c, err.Error())
	default:
		response.InternalError(c, err.Error())
	}
}
