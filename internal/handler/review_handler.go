package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/modan/fas/internal/dto"
	"github.com/modan/fas/internal/logger"
	"github.com/modan/fas/internal/logic"
	"gorm.io/gorm"
)

// ReviewHandler 심사 콘솔 API
type ReviewHandler struct {
	reviewLogic *logic.ReviewLogic
}

func NewReviewHandler(db *gorm.DB, presets []string) *ReviewHandler {
	return &ReviewHandler{
		reviewLogic: logic.NewReviewLogic(db, presets),
	}
}

// ListReviewProjects GET /admin/project/review
func (h *ReviewHandler) ListReviewProjects(c *gin.Context) {
	projects, err := h.reviewLogic.ListReviewProjects(c.Request.Context())
	if err != nil {
		logger.Error("list review projects failed: %v", err)
		respondError(c, err)
		return
	}

	summaries := make([]dto.ReviewProjectSummary, 0, len(projects))
	for i := range projects {
		summaries = append(summaries, dto.FromProjectSummary(&projects[i]))
	}
	c.JSON(http.StatusOK, summaries)
}

// GetProjectDetail GET /admin/project/review/:id
func (h *ReviewHandler) GetProjectDetail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "유효하지 않은 프로젝트 ID"})
		return
	}

	project, err := h.reviewLogic.GetProjectDetail(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromProjectDetail(project))
}

// Approve PATCH /admin/project/:id/approve
func (h *ReviewHandler) Approve(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "유효하지 않은 프로젝트 ID"})
		return
	}

	project, err := h.reviewLogic.Approve(c.Request.Context(), id)
	if err != nil {
		logger.Error("approve project %d failed: %v", id, err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromReviewDecision(project))
}

// Reject PATCH /admin/project/:id/reject
func (h *ReviewHandler) Reject(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "유효하지 않은 프로젝트 ID"})
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.reviewLogic.Reject(c.Request.Context(), id, req.Reason)
	if err != nil {
		logger.Error("reject project %d failed: %v", id, err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromReviewDecision(project))
}

// RejectReasonPresets GET /admin/project/reject-reason-presets
func (h *ReviewHandler) RejectReasonPresets(c *gin.Context) {
	c.JSON(http.StatusOK, dto.RejectReasonPresets{
		Presets: h.reviewLogic.RejectReasonPresets(),
	})
}
