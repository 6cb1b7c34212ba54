package costs

import (
	"practipulse/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupCostRoutes(rg *gin.RouterGroup, controller *Controller) {
	costs := rg.Group("/costs")
	costs.Use(middleware.JWTAuth())
	{
		costs.GET("", controller.GetEntries)              // GET /api/v1/costs
		costs.GET("/summary", controller.GetSpendSummary) // GET /api/v1/costs/summary
		costs.GET("/:id", controller.GetEntry)            // GET /api/v1/costs/:id
		costs.POST("", controller.CreateEntry)            // POST /api/v1/costs
		costs.PUT("/:id", controller.UpdateEntry)         // PUT /api/v1/costs/:id
		costs.DELETE("/:id", controller.DeleteEntry)      // DELETE /api/v1/costs/:id
	}
}
