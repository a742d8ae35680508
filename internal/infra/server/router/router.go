// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/patungan/backend/internal/integration/entrypoint/controller"
	"github.com/patungan/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine           *gin.Engine
	healthController *controller.HealthController
	authController   *controller.AuthController
	draftController  *controller.DraftController
	billController   *controller.BillController
	loginRateLimiter *middleware.RateLimiter
	authMiddleware   *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	draftController *controller.DraftController,
	billController *controller.BillController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController: healthController,
		authController:   authController,
		draftController:  draftController,
		billController:   billController,
		loginRateLimiter: loginRateLimiter,
		authMiddleware:   authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

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
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Auth routes (only setup if auth controller is available)
		if r.authController != nil && r.loginRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/register", r.authController.Register)
				auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
			}
		}

		// Draft routes (require authentication)
		if r.draftController != nil && r.authMiddleware != nil {
			draft := v1.Group("/draft")
			draft.Use(r.authMiddleware.Authenticate())
			{
				draft.GET("", r.draftController.GetDraft)
				draft.GET("/categories", r.draftController.ListCategories)
				draft.DELETE("", r.draftController.ResetDraft)
				draft.POST("/items", r.draftController.AddItem)
				draft.DELETE("/items/:id", r.draftController.RemoveItem)
				draft.POST("/participants", r.draftController.AddParticipant)
				draft.DELETE("/participants/:id", r.draftController.RemoveParticipant)
				draft.POST("/assignments", r.draftController.ToggleAssignment)
				draft.PUT("/surcharge", r.draftController.SetSurcharge)
				draft.PUT("/info", r.draftController.SetInfo)
				draft.POST("/scan", r.draftController.ScanReceipt)
				draft.POST("/save", r.draftController.SaveBill)
			}
		}

		// Saved bill routes (require authentication)
		if r.billController != nil && r.authMiddleware != nil {
			bills := v1.Group("/bills")
			bills.Use(r.authMiddleware.Authenticate())
			{
				bills.GET("", r.billController.ListBills)
				bills.GET("/:id", r.billController.GetBill)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
