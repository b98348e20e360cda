package http

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/AbhinayVamshi07/Restaurant-Menu-Search-Engine/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger *logrus.Entry) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if logger == nil {
		logger = logrus.WithField("component", "http")
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// Landing page is optional; the search API works without it
	if cfg.Server.LandingPage != "" {
		router.StaticFile("/", cfg.Server.LandingPage)
	}

	search := router.Group("/")
	if cfg.RateLimit.PerIP > 0 {
		search.Use(RateLimitMiddleware(cfg.RateLimit.PerIP, cfg.RateLimit.Burst))
	}
	{
		// Route used by the landing page form
		search.POST("/search", handler.Search)

		// API v1 routes
		v1 := search.Group("/api/v1")
		{
			menu := v1.Group("/menu")
			{
				menu.POST("/search", handler.Search)
			}
		}
	}

	return router
}
