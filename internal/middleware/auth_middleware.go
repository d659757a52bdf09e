package middleware

import (
	"errors"
	"net/http"
	"strings"

	autherrors "go-hr-portal/internal/auth/errors"
	"go-hr-portal/internal/auth/token"
	"go-hr-portal/internal/shared/contextutil"
	"go-hr-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// TokenParser is satisfied by *token.Manager.
type TokenParser interface {
	Parse(raw, tokenType string) (*token.Claims, error)
}

// AuthMiddleware accepts a bearer token or the access_token cookie and puts
// the identity on both the gin and the request context.
func AuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token not found", nil)
			c.Abort()
			return
		}

		claims, err := tokens.Parse(tokenString, token.TypeAccess)
		if err != nil {
			errObj := autherrors.ErrInvalidToken
			if errors.Is(err, token.ErrExpired) {
				errObj = autherrors.ErrTokenExpired
			}
			response.Error(c, errObj.HTTPStatus, errObj.Code, errObj.Message, nil)
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_type", claims.UserType)
		c.Set("company_id", claims.CompanyID)
		c.Set("employee_id", claims.EmployeeID)

		ctx := contextutil.WithUserID(c.Request.Context(), claims.UserID)
		ctx = contextutil.WithUserType(ctx, claims.UserType)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireEmployee rejects callers whose token carries no employee profile.
func RequireEmployee() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("employee_id") == "" {
			response.Error(c, autherrors.ErrForbidden.HTTPStatus, autherrors.ErrForbidden.Code, "Employee profile required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
