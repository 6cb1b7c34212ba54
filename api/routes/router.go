// api/routes/router.go
package routes

import (
	"net/http"
	"practipulse/internal/analytics"
	"practipulse/internal/costs"
	"practipulse/internal/locations"
	"practipulse/internal/shared/config"
	"practipulse/internal/shared/database"
	"practipulse/pkg/cache"
	"time"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config          *config.Config
	db              *database.DB
	cacheService    cache.Service             // For dependency injection
	reportPublisher analytics.ReportPublisher // Optional, set by main when Kafka is enabled
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB) *Router {
	r := &Router{
		config: cfg,
		db:     db,
	}

	// Cache service is shared by every feature; skip it when Redis is down
	// so the services fall back to the database.
	if db.Redis != nil {
		r.cacheService = cache.NewService(db.Redis)
	}

	return r
}

// SetReportPublisher injects the report event publisher dependency
func (r *Router) SetReportPublisher(publisher analytics.ReportPublisher) {
	r.reportPublisher = publisher
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		// Setup location routes
		r.setupLocationRoutes(api)

		// Setup cost entry routes
		r.setupCostRoutes(api)

		// Setup analytics routes
		r.setupAnalyticsRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		// Perform health checks
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "practipulse-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "practipulse-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupLocationRoutes configures location management routes
func (r *Router) setupLocationRoutes(rg *gin.RouterGroup) {
	// Initialize location dependencies
	locationRepo := locations.NewRepository(r.db.GetPostgreSQL())
	locationService := locations.NewService(locationRepo)

	// Inject cache service dependency
	if r.cacheService != nil {
		locationService.SetCacheService(r.cacheService)
	}

	locationController := locations.NewController(locationService)

	// Setup location routes
	locations.SetupLocationRoutes(rg, locationController)
}

// setupCostRoutes configures acquisition cost entry routes
func (r *Router) setupCostRoutes(rg *gin.RouterGroup) {
	// Initialize cost dependencies
	costRepo := costs.NewRepository(r.db.GetPostgreSQL())
	costService := costs.NewService(costRepo)

	// Inject cache service dependency
	if r.cacheService != nil {
		costService.SetCacheService(r.cacheService)
	}

	costController := costs.NewController(costService)

	// Setup cost routes
	costs.SetupCostRoutes(rg, costController)
}

// setupAnalyticsRoutes configures analytics and reporting routes
func (r *Router) setupAnalyticsRoutes(rg *gin.RouterGroup) {
	// Initialize analytics dependencies
	analyticsRepo := analytics.NewRepository(r.db.GetPostgreSQL())
	analyticsService := analytics.NewService(analyticsRepo, analytics.Assumptions{
		CostPerLead:      r.config.Analytics.CostPerLead,
		AppointmentValue: r.config.Analytics.AppointmentValue,
	})

	// Inject cache service dependency
	if r.cacheService != nil {
		analyticsService.SetCacheService(r.cacheService)
	}

	// Inject report publisher dependency
	if r.reportPublisher != nil {
		analyticsService.SetPublisher(r.reportPublisher)
	}

	analyticsController := analytics.NewController(analyticsService)

	// Setup analytics routes
	analytics.SetupAnalyticsRoutes(rg, analyticsController)
}
