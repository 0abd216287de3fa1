package api

import (
	"github.com/labstack/echo/v4"

	"gkk99-backend/internal/auth"
	"gkk99-backend/internal/content"
	"gkk99-backend/internal/database"
)

// Handlers bundles the services the API layer depends on
type Handlers struct {
	Auth         *auth.Service
	Content      *content.Service
	Audit        *database.AuditRepo
	LoginLimiter *auth.RateLimiter
}

// NewHandlers creates the API handler set
func NewHandlers(authSvc *auth.Service, contentSvc *content.Service, audit *database.AuditRepo) *Handlers {
	return &Handlers{
		Auth:         authSvc,
		Content:      contentSvc,
		Audit:        audit,
		LoginLimiter: auth.DefaultRateLimiter(),
	}
}

// RegisterRoutes sets up all API routes
func (h *Handlers) RegisterRoutes(api *echo.Group) {
	// Health check (public)
	api.GET("/health", healthCheck)

	// Auth routes (login is public, rate limited)
	authGroup := api.Group("/auth")
	authGroup.POST("/login", h.loginHandler, h.LoginLimiter.Middleware())
	authGroup.GET("/verify", h.verifyHandler)
	authGroup.POST("/logout", h.logoutHandler)

	// Site content (read is public, write requires an active admin)
	api.GET("/content", h.getContentHandler)
	api.PUT("/content", h.updateContentHandler, auth.RequireAuth(h.Auth))

	// Admin routes (main admin only, except analytics)
	admin := api.Group("/admin")
	admin.Use(auth.RequireAuth(h.Auth))
	admin.GET("/analytics", h.analyticsHandler)

	users := admin.Group("/users")
	users.Use(auth.RequireMainAdmin())
	users.GET("", h.listAccountsHandler)
	users.POST("", h.createSubAdminHandler)
	users.PATCH("/:id/status", h.updateAccountStatusHandler)

	admin.GET("/audit", h.listAuditLogsHandler, auth.RequireMainAdmin())
}
