package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"practipulse/api/routes"
	"practipulse/internal/analytics"
	"practipulse/internal/ingest"
	"practipulse/internal/shared/config"
	"practipulse/internal/shared/database"
	"practipulse/pkg/logger"
	"practipulse/pkg/ratelimit"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load environment variables
	appLogger := logger.GetDefault()

	// Smart environment loading
	if err := godotenv.Load(); err != nil {
		// Check if we're in production/container mode
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	// Load config
	cfg := config.Load()

	// Set Gin mode (debug/release)
	gin.SetMode(cfg.GinMode)

	// Initialize DB
	db, err := database.InitDB(cfg)
	if err != nil {
		appLogger.Error("failed to connect:", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Initialize Rate Limiter
	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiterConfig := &ratelimit.Config{
			Enabled:           cfg.RateLimit.Enabled,
			WindowDuration:    cfg.RateLimit.WindowDuration,
			DefaultRequests:   cfg.RateLimit.DefaultRequests,
			PublicRequests:    cfg.RateLimit.PublicRequests,
			AnalyticsRequests: cfg.RateLimit.AnalyticsRequests,
			CostsRequests:     cfg.RateLimit.CostsRequests,
			AdminRequests:     cfg.RateLimit.AdminRequests,
			HealthRequests:    cfg.RateLimit.HealthRequests,
			WhitelistedIPs:    cfg.RateLimit.WhitelistedIPs,
		}

		rateLimiter = ratelimit.NewRateLimiter(db.GetRedisClient(), rateLimiterConfig)
		appLogger.Info("Rate limiter initialized",
			slog.Bool("enabled", cfg.RateLimit.Enabled),
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("default_requests", cfg.RateLimit.DefaultRequests),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	// Initialize Kafka record sync and report publishing
	var reportPublisher analytics.ReportPublisher
	if cfg.Kafka.Enabled {
		syncCtx, syncCancel := context.WithCancel(context.Background())
		defer syncCancel()

		consumerConfig := ingest.DefaultConsumerConfig()
		consumerConfig.Brokers = cfg.Kafka.Brokers
		consumerConfig.GroupID = cfg.Kafka.ConsumerGroup
		consumerConfig.Topics = []string{cfg.Kafka.SyncTopic}

		syncService := ingest.NewService(db.GetPostgreSQL())
		syncConsumer, err := ingest.NewKafkaSyncConsumer(consumerConfig, syncService)
		if err != nil {
			appLogger.Error("Failed to initialize sync consumer", slog.Any("error", err))
			appLogger.Info("Continuing without record sync - incoming sync events will not be processed")
		} else {
			if err := syncConsumer.StartConsumers(syncCtx, cfg.Kafka.SyncWorkers); err != nil {
				appLogger.Error("Failed to start sync consumers", slog.Any("error", err))
			} else {
				appLogger.Info("Record sync consumers started",
					slog.String("topic", cfg.Kafka.SyncTopic),
					slog.Int("workers", cfg.Kafka.SyncWorkers),
				)
			}

			// Ensure sync consumer is stopped on shutdown
			defer func() {
				appLogger.Info("Stopping sync consumer...")
				if err := syncConsumer.Stop(); err != nil {
					appLogger.Error("Error stopping sync consumer", slog.Any("error", err))
				}
			}()
		}

		if cfg.Kafka.PublishReports {
			producerConfig := ingest.DefaultKafkaProducerConfig()
			producerConfig.Brokers = cfg.Kafka.Brokers
			producerConfig.ReportTopic = cfg.Kafka.ReportTopic

			producer, err := ingest.NewKafkaReportProducer(producerConfig)
			if err != nil {
				appLogger.Error("Failed to initialize report producer", slog.Any("error", err))
				appLogger.Info("Continuing without report publishing")
			} else {
				reportPublisher = producer
				appLogger.Info("Report producer initialized", slog.String("topic", cfg.Kafka.ReportTopic))

				defer func() {
					if err := producer.Close(); err != nil {
						appLogger.Error("Error closing report producer", slog.Any("error", err))
					}
				}()
			}
		}
	}

	// Setup router with rate limiter
	router := setupRouter(cfg, db, rateLimiter, reportPublisher)

	// HTTP server
	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		appLogger.Info("🚀 Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("api_status", fmt.Sprintf("http://localhost:%s%s/status", cfg.Port, cfg.GetAPIBasePath())),
			slog.String("version", cfg.APIVersion),
			slog.Bool("redis_cache", (db.Redis != nil)),
			slog.Bool("rate_limiting", cfg.RateLimit.Enabled),
			slog.Bool("record_sync", cfg.Kafka.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
}

func setupRouter(cfg *config.Config, db *database.DB, rateLimiter *ratelimit.RateLimiter, reportPublisher analytics.ReportPublisher) *gin.Engine {
	engine := gin.New()
	appLogger := logger.GetDefault()

	// Built-in middleware: logs requests + recovers from panics
	engine.Use(RequestLoggerMiddleware(appLogger), gin.Recovery())

	// CORS configuration
	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true // allow every origin dynamically
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-RateLimit-*"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Global rate limiting middleware (applied to all routes)
	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter))
		appLogger.Info("Rate limiting middleware applied to all routes")
	}

	// Initialize and setup routes
	appRouter := routes.NewRouter(cfg, db)
	if reportPublisher != nil {
		appRouter.SetReportPublisher(reportPublisher)
	}
	appRouter.SetupRoutes(engine)

	return engine
}

func RequestLoggerMiddleware(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		l.LogHTTPRequest(c, duration)
	}
}
