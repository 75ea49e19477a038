package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/modan/fas/internal/cache"
	"github.com/modan/fas/internal/logger"
	"github.com/modan/fas/internal/logic"
	"gorm.io/gorm"
)

// StatsHandler 통계/대시보드 API
type StatsHandler struct {
	statsLogic *logic.StatsLogic
}

func NewStatsHandler(db *gorm.DB, c *cache.Cache) *StatsHandler {
	return &StatsHandler{statsLogic: logic.NewStatsLogic(db, c)}
}

// Dashboard GET /api/admin/stats/dashboard
func (h *StatsHandler) Dashboard(c *gin.Context) {
	stats, err := h.statsLogic.Dashboard(c.Request.Context())
	if err != nil {
		logger.Error("dashboard stats failed: %v", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Daily GET /api/admin/stats/daily?from&to
func (h *StatsHandler) Daily(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")

	rows, err := h.statsLogic.Daily(c.Request.Context(), from, to)
	if err != nil {
		logger.Error("daily stats failed: %v", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Monthly GET /api/admin/stats/monthly?year
func (h *StatsHandler) Monthly(c *gin.Context) {
	year := c.DefaultQuery("year", strconv.Itoa(time.Now().Year()))

	rows, err := h.statsLogic.Monthly(c.Request.Context(), year)
	if err != nil {
		logger.Error("monthly stats failed: %v", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Revenue GET /api/admin/stats/revenue?from&to
func (h *StatsHandler) Revenue(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")

	rows, err := h.statsLogic.Revenue(c.Request.Context(), from, to)
	if err != nil {
		logger.Error("revenue stats failed: %v", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// ProjectPerformance GET /api/admin/stats/project-performance
func (h *StatsHandler) ProjectPerformance(c *gin.Context) {
	rows, err := h.statsLogic.ProjectPerformance(c.Request.Context())
	if err != nil {
		logger.Error("project performance stats failed: %v", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
