package analytics

import (
	"practipulse/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupAnalyticsRoutes(rg *gin.RouterGroup, controller *Controller) {
	analytics := rg.Group("/analytics")
	analytics.Use(middleware.JWTAuth())
	{
		analytics.POST("/period", controller.GetPeriodMetrics)        // POST /api/v1/analytics/period
		analytics.POST("/breakdown", controller.GetLocationBreakdown) // POST /api/v1/analytics/breakdown
		analytics.POST("/trends", controller.GetTrends)               // POST /api/v1/analytics/trends
		analytics.POST("/compare", controller.ComparePeriods)         // POST /api/v1/analytics/compare
	}
}
