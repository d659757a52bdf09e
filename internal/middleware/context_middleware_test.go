package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hr-portal/internal/auth/token"
	"go-hr-portal/internal/domain"
	"go-hr-portal/internal/middleware"
	"go-hr-portal/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestContextLogger_CarriesRequestIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)
	tokens := newTokens()

	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/ping",
		middleware.AuthMiddleware(tokens),
		middleware.ContextLogger(zap.New(core)),
		func(c *gin.Context) {
			contextutil.GetLogger(c.Request.Context(), nil).Info("handled")
			c.Status(http.StatusNoContent)
		},
	)

	access, _, err := tokens.IssuePair(token.Subject{UserID: "u1", UserType: domain.UserTypeEmployer, CompanyID: "c1"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	req.Header.Set("X-Request-ID", "rid-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "rid-42", fields["request_id"])
	assert.Equal(t, "u1", fields["user_id"])
	assert.Equal(t, domain.UserTypeEmployer, fields["user_type"])
}
