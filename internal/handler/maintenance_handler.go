package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/tracker-dashboard-go/internal/models"
	"github.com/jengzang/tracker-dashboard-go/internal/service"
	"github.com/jengzang/tracker-dashboard-go/pkg/response"
)

// MaintenanceHandler handles HTTP requests for maintenance operations
type MaintenanceHandler struct {
	pruneService *service.PruneService
}

// NewMaintenanceHandler creates a new maintenance handler
func NewMaintenanceHandler(pruneService *service.PruneService) *MaintenanceHandler {
	return &MaintenanceHandler{
		pruneService: pruneService,
	}
}

// PruneIncomplete handles POST /api/v1/maintenance/prune
func (h *MaintenanceHandler) PruneIncomplete(c *gin.Context) {
	var query models.PruneQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "minRecords must be a positive integer")
		return
	}

	minRecords := 0
	if query.MinRecords != nil {
		minRecords = *query.MinRecords
	}

	report, err := h.pruneService.PruneIncomplete(c.Request.Context(), minRecords)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, report)
}

// ListRuns handles GET /api/v1/maintenance/runs
func (h *MaintenanceHandler) ListRuns(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		response.BadRequest(c, "Invalid limit parameter")
		return
	}

	runs, err := h.pruneService.ListRuns(c.Request.Context(), limit)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, runs)
}
