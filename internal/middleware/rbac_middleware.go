package middleware

import (
	"net/http"

	"go-hr-portal/internal/domain"
	"go-hr-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RBACService is satisfied by rbac.Service.
type RBACService interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userType := c.GetString("user_type")
		if userType == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing auth context", nil)
			c.Abort()
			return
		}

		allowed, err := service.Enforce(domain.EnforceRequest{
			UserType: userType,
			Resource: resource,
			Action:   action,
		})
		if err != nil || !allowed {
			response.Error(c, http.StatusForbidden, "FORBIDDEN",
				"You do not have permission to access this resource",
				gin.H{"required": resource + ":" + action},
			)
			c.Abort()
			return
		}

		c.Next()
	}
}

// Can is the non-aborting form used by handlers that widen results for
// privileged callers.
func Can(c *gin.Context, service RBACService, resource, action string) bool {
	allowed, err := service.Enforce(domain.EnforceRequest{
		UserType: c.GetString("user_type"),
		Resource: resource,
		Action:   action,
	})
	return err == nil && allowed
}
