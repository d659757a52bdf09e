package review

import (
	"go-hr-portal/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	reviews := r.Group("/reviews")
	{
		reviews.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "review", "read"),
			handler.GetAll,
		)

		reviews.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "review", "read"),
			handler.GetByID,
		)

		reviews.POST("",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, "review", "create"),
			handler.Create,
		)

		reviews.PATCH("/:id/status",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "review", "update"),
			handler.UpdateStatus,
		)

		reviews.POST("/:id/notes",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "review", "update"),
			handler.AddManagerNote,
		)

		reviews.POST("/:id/goals",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "review", "update"),
			handler.AddGoal,
		)
	}
}
