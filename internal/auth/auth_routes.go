package auth

import (
	"go-hr-portal/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the public auth endpoints on r and /auth/me on the
// already authenticated group.
func RegisterRoutes(r *gin.RouterGroup, protected *gin.RouterGroup, handler *Handler) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(0.08, 5), handler.Login)
		auth.POST("/register", middleware.RateLimitByIP(0.1, 1), handler.RegisterEmployer)
		auth.POST("/refresh", middleware.RateLimitByIP(0.5, 5), handler.RefreshToken)
		auth.POST("/logout", handler.Logout)
	}

	protected.GET("/auth/me", middleware.RateLimitByUser(2, 5), handler.Me)
}
