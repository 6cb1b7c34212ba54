package locations

import (
	"practipulse/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupLocationRoutes(rg *gin.RouterGroup, controller *Controller) {
	// Read routes for any authenticated dashboard user
	locations := rg.Group("/locations")
	locations.Use(middleware.JWTAuth())
	{
		locations.GET("", controller.GetLocations)              // GET /api/v1/locations
		locations.GET("/active", controller.GetActiveLocations) // GET /api/v1/locations/active
		locations.GET("/:id", controller.GetLocation)           // GET /api/v1/locations/:id
	}

	// Catalog management is admin only
	admin := rg.Group("/admin/locations")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.POST("", controller.CreateLocation)       // POST /api/v1/admin/locations
		admin.PUT("/:id", controller.UpdateLocation)    // PUT /api/v1/admin/locations/:id
		admin.DELETE("/:id", controller.DeleteLocation) // DELETE /api/v1/admin/locations/:id
	}
}
