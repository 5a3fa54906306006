package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/latlong-terrain/internal/service"
	"github.com/jengzang/latlong-terrain/pkg/response"
)

// PointHandler handles HTTP requests for stored distance records
type PointHandler struct {
	pointService  *service.PointService
	reportService *service.ReportService
}

// NewPointHandler creates a new point handler
func NewPointHandler(pointService *service.PointService, reportService *service.ReportService) *PointHandler {
	return &PointHandler{
		pointService:  pointService,
		reportService: reportService,
	}
}

// ListPoints handles GET /api/v1/points
func (h *PointHandler) ListPoints(c *gin.Context) {
	points, err := h.pointService.ListPoints(c.Request.Context())
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"points": points,
		"count":  len(points),
	})
}

// GetPointByID handles GET /api/v1/points/:id
func (h *PointHandler) GetPointByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "Invalid point ID")
		return
	}

	point, err := h.pointService.GetPointByID(c.Request.Context(), id)
	if errors.Is(err, service.ErrPointNotFound) {
		response.NotFound(c, "Point not found")
		return
	}
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, point)
}

// RoadPoints handles GET /api/v1/points/road
func (h *PointHandler) RoadPoints(c *gin.Context) {
	points, err := h.reportService.RoadPoints(c.Request.Context())
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"points": points,
		"count":  len(points),
	})
}

// Summary handles GET /api/v1/points/summary
func (h *PointHandler) Summary(c *gin.Context) {
	summary, err := h.pointService.Summary(c.Request.Context())
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, summary)
}
