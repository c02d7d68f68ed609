// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/lucapp/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/lucapp/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	authController        *controller.AuthController
	transactionController *controller.TransactionController
	statisticsController  *controller.StatisticsController
	dashboardController   *controller.DashboardController
	loginRateLimiter      *middleware.RateLimiter
	authMiddleware        *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	transactionController *controller.TransactionController,
	statisticsController *controller.StatisticsController,
	dashboardController *controller.DashboardController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:      healthController,
		authController:        authController,
		transactionController: transactionController,
		statisticsController:  statisticsController,
		dashboardController:   dashboardController,
		loginRateLimiter:      loginRateLimiter,
		authMiddleware:        authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	if environment == "test" {
		r.engine = gin.New()
		r.engine.Use(gin.Recovery())
	} else {
		r.engine = gin.Default()
	}

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
		}

		protected := v1.Group("")
		protected.Use(r.authMiddleware.Authenticate())

		transactions := protected.Group("/transactions")
		{
			transactions.GET("", r.transactionController.List)
			transactions.POST("", r.transactionController.Create)
			transactions.POST("/migrate-legacy", r.transactionController.MigrateLegacy)
			transactions.GET("/:id", r.transactionController.Get)
			transactions.DELETE("/:id", r.transactionController.Delete)
		}

		statistics := protected.Group("/statistics")
		{
			statistics.GET("", r.statisticsController.Get)
			statistics.GET("/compare", r.statisticsController.Compare)
			statistics.GET("/trend", r.statisticsController.Trend)
			statistics.GET("/top-categories", r.statisticsController.TopCategories)
			statistics.GET("/export", r.statisticsController.Export)
		}

		protected.GET("/dashboard", r.dashboardController.GetMonthly)
	}
}
