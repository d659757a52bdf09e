package development_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hr-portal/internal/development"
	developmenterrors "go-hr-portal/internal/development/errors"
	"go-hr-portal/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDevelopmentService struct {
	awardFn func(ctx context.Context, companyID, awarderID string, req development.AwardBadgeRequest) (development.BadgeResponse, error)
	listFn  func(ctx context.Context, companyID, employeeID string) (development.ProgressResponse, error)
}

func (f *fakeDevelopmentService) Enroll(context.Context, string, development.EnrollRequest) (development.EnrollmentResponse, error) {
	return development.EnrollmentResponse{}, nil
}

func (f *fakeDevelopmentService) CompleteEnrollment(context.Context, string, string) (development.EnrollmentResponse, error) {
	return development.EnrollmentResponse{}, nil
}

func (f *fakeDevelopmentService) AwardBadge(ctx context.Context, companyID, awarderID string, req development.AwardBadgeRequest) (development.BadgeResponse, error) {
	return f.awardFn(ctx, companyID, awarderID, req)
}

func (f *fakeDevelopmentService) ListForEmployee(ctx context.Context, companyID, employeeID string) (development.ProgressResponse, error) {
	return f.listFn(ctx, companyID, employeeID)
}

type employerOnlyRBAC struct{}

func (employerOnlyRBAC) Enforce(req domain.EnforceRequest) (bool, error) {
	return req.UserType == domain.UserTypeEmployer, nil
}

func newDevelopmentRouter(svc development.Service, userType, employeeID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("company_id", "company-1")
		c.Set("user_id", "user-1")
		c.Set("user_type", userType)
		if employeeID != "" {
			c.Set("employee_id", employeeID)
		}
		c.Next()
	})
	h := development.NewHandler(svc, employerOnlyRBAC{})
	r.GET("/development", h.ListForEmployee)
	r.POST("/development/badges", h.AwardBadge)
	return r
}

func TestDevelopmentHandler_ListScopesEmployees(t *testing.T) {
	var got string
	svc := &fakeDevelopmentService{
		listFn: func(_ context.Context, _ string, employeeID string) (development.ProgressResponse, error) {
			got = employeeID
			return development.ProgressResponse{EmployeeID: employeeID}, nil
		},
	}

	r := newDevelopmentRouter(svc, domain.UserTypeEmployee, "emp-self")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/development?employee_id=emp-other", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "emp-self", got)

	r = newDevelopmentRouter(svc, domain.UserTypeEmployer, "")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/development?employee_id=emp-other", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "emp-other", got)
}

func TestDevelopmentHandler_DuplicateBadgeIsConflict(t *testing.T) {
	svc := &fakeDevelopmentService{
		awardFn: func(context.Context, string, string, development.AwardBadgeRequest) (development.BadgeResponse, error) {
			return development.BadgeResponse{}, developmenterrors.ErrBadgeAlreadyAwarded
		},
	}

	r := newDevelopmentRouter(svc, domain.UserTypeEmployer, "")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/development/badges", strings.NewReader(`{"employee_id":"e1","badge_code":"MENTOR"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, w.Body.String(), "CONFLICT")
}
