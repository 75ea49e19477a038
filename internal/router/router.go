package router

import (
	"github.com/gin-gonic/gin"
	"github.com/modan/fas/internal/cache"
	"github.com/modan/fas/internal/config"
	"github.com/modan/fas/internal/handler"
	"github.com/modan/fas/internal/payment"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, cacheClient *cache.Cache, payClient *payment.Client, cfg *config.Config) *gin.Engine {
	r := gin.New()

	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "funding-admin-service",
		})
	})

	reviewHandler := handler.NewReviewHandler(db, cfg.Review.RejectReasonPresets)
	makerHandler := handler.NewMakerHandler(db)
	settlementHandler := handler.NewSettlementHandler(db, cacheClient, payClient, cfg.Payment)
	shipmentHandler := handler.NewShipmentHandler(db, cfg.Task.BulkWorkers)
	statsHandler := handler.NewStatsHandler(db, cacheClient)

	// Review console
	admin := r.Group("/admin")
	{
		admin.GET("/project/review", reviewHandler.ListReviewProjects)
		admin.GET("/project/review/:id", reviewHandler.GetProjectDetail)
		admin.PATCH("/project/:id/approve", reviewHandler.Approve)
		admin.PATCH("/project/:id/reject", reviewHandler.Reject)
		admin.GET("/project/reject-reason-presets", reviewHandler.RejectReasonPresets)
		admin.GET("/maker/:makerId", makerHandler.GetMaker)
	}

	// Settlement console
	settlements := r.Group("/api/admin/settlements")
	{
		settlements.GET("/summary", settlementHandler.Summary)
		settlements.GET("/export", settlementHandler.Export)
		settlements.GET("", settlementHandler.List)
		settlements.GET("/:id", settlementHandler.Get)
		// the :id on create is the project id; see handler
		settlements.POST("/:id", settlementHandler.Create)
		settlements.POST("/:id/first-payout", settlementHandler.FirstPayout)
		settlements.POST("/:id/final-ready", settlementHandler.FinalReady)
		settlements.POST("/:id/final-payout", settlementHandler.FinalPayout)
	}

	// Statistics dashboards
	stats := r.Group("/api/admin/stats")
	{
		stats.GET("/dashboard", statsHandler.Dashboard)
		stats.GET("/daily", statsHandler.Daily)
		stats.GET("/monthly", statsHandler.Monthly)
		stats.GET("/revenue", statsHandler.Revenue)
		stats.GET("/project-performance", statsHandler.ProjectPerformance)
	}

	// Maker shipment console
	shipments := r.Group("/api/maker/projects/:projectId/shipments")
	{
		shipments.GET("", shipmentHandler.List)
		shipments.GET("/:id", shipmentHandler.Get)
		shipments.PATCH("/:id/status", shipmentHandler.UpdateStatus)
		shipments.PATCH("/bulk-status", shipmentHandler.BulkStatus)
		shipments.POST("/bulk-tracking", shipmentHandler.BulkTracking)
	}

	return r
}

// CORS for the browser console origins.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
