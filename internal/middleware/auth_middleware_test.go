package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-hr-portal/internal/auth/token"
	"go-hr-portal/internal/config"
	"go-hr-portal/internal/domain"
	"go-hr-portal/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type staticRBAC struct {
	allowed bool
}

func (s staticRBAC) Enforce(domain.EnforceRequest) (bool, error) {
	return s.allowed, nil
}

func newTokens() *token.Manager {
	return token.NewManager(config.AuthConfig{
		JWTSecret:       "middleware-secret-123456",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
	})
}

func newProtectedRouter(tokens *token.Manager, rbac middleware.RBACService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/leaves",
		middleware.AuthMiddleware(tokens),
		middleware.RBACAuthorize(rbac, "leave", "read"),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"user_type":   c.GetString("user_type"),
				"employee_id": c.GetString("employee_id"),
			})
		},
	)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	tokens := newTokens()
	access, refresh, err := tokens.IssuePair(token.Subject{UserID: "u1", UserType: domain.UserTypeEmployee, CompanyID: "c1", EmployeeID: "e1"})
	assert.NoError(t, err)

	t.Run("bearer token accepted", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/leaves", nil)
		req.Header.Set("Authorization", "Bearer "+access)

		newProtectedRouter(tokens, staticRBAC{allowed: true}).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_type":"EMPLOYEE","employee_id":"e1"}`, w.Body.String())
	})

	t.Run("cookie accepted", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/leaves", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: access})

		newProtectedRouter(tokens, staticRBAC{allowed: true}).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		newProtectedRouter(tokens, staticRBAC{allowed: true}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/leaves", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
	})

	t.Run("negative refresh token used as access", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/leaves", nil)
		req.Header.Set("Authorization", "Bearer "+refresh)

		newProtectedRouter(tokens, staticRBAC{allowed: true}).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("negative forbidden by policy", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/leaves", nil)
		req.Header.Set("Authorization", "Bearer "+access)

		newProtectedRouter(tokens, staticRBAC{allowed: false}).ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "leave:read")
	})
}

func TestRequireEmployee(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", func(c *gin.Context) {
		c.Set("employee_id", c.Query("e"))
		c.Next()
	}, middleware.RequireEmployee(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me?e=e1", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRateLimitByIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/login", middleware.RateLimitByIP(0.001, 1), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
