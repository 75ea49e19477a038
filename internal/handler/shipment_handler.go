package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/modan/fas/internal/dto"
	"github.com/modan/fas/internal/logger"
	"github.com/modan/fas/internal/logic"
	"github.com/modan/fas/internal/model"
	"gorm.io/gorm"
)

// ShipmentHandler 배송 콘솔 API
type ShipmentHandler struct {
	shipmentLogic *logic.ShipmentLogic
}

func NewShipmentHandler(db *gorm.DB, bulkWorkers int) *ShipmentHandler {
	return &ShipmentHandler{
		shipmentLogic: logic.NewShipmentLogic(db, bulkWorkers),
	}
}

// List GET /api/maker/projects/:projectId/shipments?status&page&size
func (h *ShipmentHandler) List(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Param("projectId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "유효하지 않은 프로젝트 ID"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	status := c.Query("status")

	shipments, total, err := h.shipmentLogic.List(c.Request.Context(), projectID, status, page, size)
	if err != nil {
		logger.Error("list shipments failed: %v", err)
		respondError(c, err)
		return
	}

	content := make([]dto.ShipmentDTO, 0, len(shipments))
	for i := range shipments {
		content = append(content, dto.FromShipment(&shipments[i]))
	}

	c.JSON(http.StatusOK, dto.ShipmentPage{
		Content:       content,
		Number:        page,
		Size:          size,
		TotalPages:    dto.TotalPages(total, size),
		TotalElements: total,
	})
}

// Get GET /api/maker/projects/:projectId/shipments/:id
func (h *ShipmentHandler) Get(c *gin.Context) {
	projectID, shipmentID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	shipment, err := h.shipmentLogic.Get(c.Request.Context(), projectID, shipmentID)
	if err != nil {
		respondError(c, err)
		return
	}

	result := dto.FromShipment(shipment)
	c.JSON(http.StatusOK, result)
}

// UpdateStatus PATCH /api/maker/projects/:projectId/shipments/:id/status
func (h *ShipmentHandler) UpdateStatus(c *gin.Context) {
	projectID, shipmentID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	var req dto.ShipmentStatusUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shipment, err := h.shipmentLogic.UpdateStatus(c.Request.Context(),
		projectID, shipmentID, model.ShipmentStatus(req.Status), req.IssueReason)
	if err != nil {
		logger.Error("update shipment %d failed: %v", shipmentID, err)
		respondError(c, err)
		return
	}

	result := dto.FromShipment(shipment)
	c.JSON(http.StatusOK, result)
}

// BulkStatus PATCH /api/maker/projects/:projectId/shipments/bulk-status
func (h *ShipmentHandler) BulkStatus(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Param("projectId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "유효하지 않은 프로젝트 ID"})
		return
	}

	var req dto.BulkShipmentStatusUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.shipmentLogic.BulkUpdateStatus(c.Request.Context(),
		projectID, req.ShipmentIDs, model.ShipmentStatus(req.Status), req.IssueReason)
	if err != nil {
		logger.Error("bulk shipment status update failed: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// BulkTracking POST /api/maker/projects/:projectId/shipments/bulk-tracking
func (h *ShipmentHandler) BulkTracking(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Param("projectId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "유효하지 않은 프로젝트 ID"})
		return
	}

	var req dto.BulkTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.shipmentLogic.BulkUploadTracking(c.Request.Context(), projectID, req.Shipments)
	if err != nil {
		logger.Error("bulk tracking upload failed: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ShipmentHandler) pathIDs(c *gin.Context) (projectID, shipmentID int64, ok bool) {
	projectID, err := strconv.ParseInt(c.Param("projectId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "유효하지 않은 프로젝트 ID"})
		return 0, 0, false
	}
	shipmentID, err = strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "유효하지 않은 배송 ID"})
		return 0, 0, false
	}
	return projectID, shipmentID, true
}
