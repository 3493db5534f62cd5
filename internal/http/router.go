package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/rentals/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.AuthConfig.SecureCookies))
	}

	// Session runs after CSRF so session context isn't overwritten by CSRF's
	// request replacement
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	}

	// Auth routes (signup, login, logout, me)
	if cfg.AuthService != nil {
		authController := auth.NewAuthController(cfg.AuthService, cfg.SessionManager, cfg.AuthConfig, cfg.Auditor)
		authController.RegisterRoutes(router)
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Vehicle endpoints
	if cfg.VehicleStore != nil {
		vehiclesController := NewVehiclesController(cfg.VehicleStore, cfg.Auditor)
		router.GET("/api/vehicles", vehiclesController.GetAllVehicles)
		router.GET("/api/vehicles/available", vehiclesController.GetAvailableVehicles)
		router.GET("/api/vehicles/:id", vehiclesController.GetVehicle)

		// Fleet management is restricted to administrators
		admin := router.Group("/api/vehicles")
		if cfg.AuthMiddleware != nil {
			admin.Use(cfg.AuthMiddleware.RequireAdmin())
		}
		admin.POST("", vehiclesController.AddVehicle)
		admin.PATCH("/:id/availability", vehiclesController.SetAvailability)
	}

	// Rental endpoints
	if cfg.RentalStore != nil && cfg.Booker != nil {
		rentalsController := NewRentalsController(cfg.Booker, cfg.RentalStore, cfg.ReviewStore, cfg.Auditor)
		router.POST("/api/rentals", rentalsController.Book)
		router.GET("/api/rentals", rentalsController.History)
		router.POST("/api/rentals/:id/cancel", rentalsController.Cancel)
		router.POST("/api/rentals/:id/return", rentalsController.Return)

		if cfg.ReviewStore != nil {
			router.POST("/api/rentals/:id/review", rentalsController.Review)
			router.GET("/api/vehicles/:id/reviews", rentalsController.VehicleReviews)
		}
	}

	return router
}
