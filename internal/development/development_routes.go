package development

import (
	"go-hr-portal/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	dev := r.Group("/development")
	{
		dev.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "development", "read"),
			handler.ListForEmployee,
		)

		dev.POST("/enrollments",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, "development", "create"),
			handler.Enroll,
		)

		dev.PATCH("/enrollments/:id/complete",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, "development", "update"),
			handler.CompleteEnrollment,
		)

		dev.POST("/badges",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, "development", "create"),
			handler.AwardBadge,
		)
	}
}
