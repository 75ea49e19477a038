package handler

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/modan/fas/internal/cache"
	"github.com/modan/fas/internal/config"
	"github.com/modan/fas/internal/dto"
	"github.com/modan/fas/internal/logger"
	"github.com/modan/fas/internal/logic"
	"github.com/modan/fas/internal/model"
	"github.com/modan/fas/internal/payment"
	"gorm.io/gorm"
)

// SettlementHandler 정산 콘솔 API
type SettlementHandler struct {
	settlementLogic *logic.SettlementLogic
}

func NewSettlementHandler(db *gorm.DB, c *cache.Cache, pay *payment.Client, fees config.PaymentConfig) *SettlementHandler {
	return &SettlementHandler{
		settlementLogic: logic.NewSettlementLogic(db, c, pay, fees),
	}
}

// Summary GET /api/admin/settlements/summary
func (h *SettlementHandler) Summary(c *gin.Context) {
	summary, err := h.settlementLogic.Summary(c.Request.Context())
	if err != nil {
		logger.Error("settlement summary failed: %v", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// List GET /api/admin/settlements?page&size[&status]
func (h *SettlementHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	status := c.Query("status")

	settlements, total, err := h.settlementLogic.List(c.Request.Context(), page, size, status)
	if err != nil {
		logger.Error("list settlements failed: %v", err)
		respondError(c, err)
		return
	}

	content := make([]dto.SettlementDTO, 0, len(settlements))
	for i := range settlements {
		content = append(content, dto.FromSettlement(&settlements[i]))
	}

	c.JSON(http.StatusOK, dto.SettlementPage{
		Content:       content,
		Number:        page,
		Size:          size,
		TotalPages:    dto.TotalPages(total, size),
		TotalElements: total,
	})
}

// Get GET /api/admin/settlements/:id
func (h *SettlementHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "유효하지 않은 정산 ID"})
		return
	}

	settlement, err := h.settlementLogic.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	result := dto.FromSettlement(settlement)
	c.JSON(http.StatusOK, result)
}

// Create POST /api/admin/settlements/:id. The path segment is the PROJECT
// id here, not a settlement id; the settlement does not exist yet.
func (h *SettlementHandler) Create(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "유효하지 않은 프로젝트 ID"})
		return
	}

	settlement, err := h.settlementLogic.Create(c.Request.Context(), projectID)
	if err != nil {
		logger.Error("create settlement for project %d failed: %v", projectID, err)
		respondError(c, err)
		return
	}

	result := dto.FromSettlement(settlement)
	c.JSON(http.StatusCreated, result)
}

// FirstPayout POST /api/admin/settlements/:id/first-payout
func (h *SettlementHandler) FirstPayout(c *gin.Context) {
	h.transition(c, h.settlementLogic.FirstPayout)
}

// FinalReady POST /api/admin/settlements/:id/final-ready
func (h *SettlementHandler) FinalReady(c *gin.Context) {
	h.transition(c, h.settlementLogic.FinalReady)
}

// FinalPayout POST /api/admin/settlements/:id/final-payout
func (h *SettlementHandler) FinalPayout(c *gin.Context) {
	h.transition(c, h.settlementLogic.FinalPayout)
}

func (h *SettlementHandler) transition(c *gin.Context, fn func(ctx context.Context, id int64) (*model.Settlement, error)) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "유효하지 않은 정산 ID"})
		return
	}

	settlement, err := fn(c.Request.Context(), id)
	if err != nil {
		logger.Error("settlement %d transition failed: %v", id, err)
		respondError(c, err)
		return
	}

	result := dto.FromSettlement(settlement)
	c.JSON(http.StatusOK, result)
}

// Export GET /api/admin/settlements/export
func (h *SettlementHandler) Export(c *gin.Context) {
	settlements, err := h.settlementLogic.ListAll(c.Request.Context())
	if err != nil {
		logger.Error("settlement export failed: %v", err)
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("settlements-%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	w := csv.NewWriter(c.Writer)
	defer w.Flush()

	w.Write([]string{
		"settlement_id", "project_id", "project_title", "status",
		"total_order_amount", "pg_fee_amount", "platform_fee_amount",
		"net_amount", "first_payment_amount", "final_payment_amount",
		"first_paid_at", "completed_at",
	})
	for i := range settlements {
		s := &settlements[i]
		w.Write([]string{
			strconv.FormatInt(s.ID, 10),
			strconv.FormatInt(s.ProjectID, 10),
			s.Project.Title,
			string(s.Status),
			strconv.FormatInt(s.TotalOrderAmount, 10),
			strconv.FormatInt(s.PGFeeAmount, 10),
			strconv.FormatInt(s.PlatformFeeAmount, 10),
			strconv.FormatInt(s.NetAmount, 10),
			strconv.FormatInt(s.FirstPaymentAmount, 10),
			strconv.FormatInt(s.FinalPaymentAmount, 10),
			formatTime(s.FirstPaidAt),
			formatTime(s.CompletedAt),
		})
	}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
