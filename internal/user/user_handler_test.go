package user_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hr-portal/internal/user"
	usererrors "go-hr-portal/internal/user/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUserService struct {
	GetAllFn             func(ctx context.Context, companyID string) ([]user.UserResponse, error)
	GetByIDFn            func(ctx context.Context, companyID, id string) (user.UserResponse, error)
	ToggleStatusFn       func(ctx context.Context, companyID, actorID, id string, isActive bool) error
	ChangePasswordFn     func(ctx context.Context, companyID, userID string, req user.ChangePasswordRequest) error
	ForceResetPasswordFn func(ctx context.Context, companyID, userID, newPassword string) error
}

func (f *fakeUserService) GetAll(ctx context.Context, cid string) ([]user.UserResponse, error) {
	return f.GetAllFn(ctx, cid)
}

func (f *fakeUserService) GetByID(ctx context.Context, cid, id string) (user.UserResponse, error) {
	return f.GetByIDFn(ctx, cid, id)
}

func (f *fakeUserService) ToggleStatus(ctx context.Context, cid, actorID, id string, isActive bool) error {
	return f.ToggleStatusFn(ctx, cid, actorID, id, isActive)
}

func (f *fakeUserService) ChangePassword(ctx context.Context, cid, id string, req user.ChangePasswordRequest) error {
	return f.ChangePasswordFn(ctx, cid, id, req)
}

func (f *fakeUserService) ForceResetPassword(ctx context.Context, cid, id, pw string) error {
	return f.ForceResetPasswordFn(ctx, cid, id, pw)
}

func newUserRouter(svc user.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := user.NewHandler(svc, zap.NewNop())
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("company_id", "comp-1")
		c.Set("user_id", "user-1")
		c.Next()
	})
	r.GET("/users", h.GetAll)
	r.GET("/users/me", h.GetMe)
	r.GET("/users/:id", h.GetByID)
	r.PATCH("/users/:id/status", h.ToggleStatus)
	r.PUT("/users/me/password", h.ChangePassword)
	r.POST("/users/:id/force-reset-password", h.ForceResetPassword)
	return r
}

func TestUserHandler_GetAll(t *testing.T) {
	svc := &fakeUserService{
		GetAllFn: func(_ context.Context, cid string) ([]user.UserResponse, error) {
			assert.Equal(t, "comp-1", cid)
			return []user.UserResponse{
				{ID: "1", Email: "zed@acme.test"},
				{ID: "2", Email: "amy@acme.test"},
				{ID: "3", Email: "bob@other.test"},
			}, nil
		},
	}

	w := httptest.NewRecorder()
	newUserRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users?q=acme&sort_dir=asc&page_size=1", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []user.UserResponse `json:"data"`
		Meta struct {
			Total      int64 `json:"total"`
			TotalPages int   `json:"totalPages"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "amy@acme.test", body.Data[0].Email)
	assert.EqualValues(t, 2, body.Meta.Total)
	assert.Equal(t, 2, body.Meta.TotalPages)
}

func TestUserHandler_GetByID(t *testing.T) {
	t.Run("negative not found", func(t *testing.T) {
		svc := &fakeUserService{
			GetByIDFn: func(context.Context, string, string) (user.UserResponse, error) {
				return user.UserResponse{}, usererrors.ErrUserNotFound
			},
		}

		w := httptest.NewRecorder()
		newUserRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/abc", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("me uses caller id", func(t *testing.T) {
		svc := &fakeUserService{
			GetByIDFn: func(_ context.Context, _ string, id string) (user.UserResponse, error) {
				assert.Equal(t, "user-1", id)
				return user.UserResponse{ID: id}, nil
			},
		}

		w := httptest.NewRecorder()
		newUserRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/me", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestUserHandler_ToggleStatus(t *testing.T) {
	svc := &fakeUserService{
		ToggleStatusFn: func(_ context.Context, _, actorID, id string, isActive bool) error {
			assert.Equal(t, "user-1", actorID)
			assert.Equal(t, "user-2", id)
			assert.False(t, isActive)
			return nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/users/user-2/status", bytes.NewBufferString(`{"is_active":false}`))
	req.Header.Set("Content-Type", "application/json")
	newUserRouter(svc).ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPatch, "/users/user-2/status", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	newUserRouter(svc).ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserHandler_ChangePassword(t *testing.T) {
	svc := &fakeUserService{
		ChangePasswordFn: func(_ context.Context, _, id string, req user.ChangePasswordRequest) error {
			assert.Equal(t, "user-1", id)
			if req.CurrentPassword != "password123" {
				return usererrors.ErrWrongPassword
			}
			return nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/users/me/password",
		bytes.NewBufferString(`{"current_password":"password123","new_password":"newpassword1"}`))
	req.Header.Set("Content-Type", "application/json")
	newUserRouter(svc).ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/users/me/password",
		bytes.NewBufferString(`{"current_password":"wrong","new_password":"newpassword1"}`))
	req.Header.Set("Content-Type", "application/json")
	newUserRouter(svc).ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Current password is incorrect")
}

func TestUserHandler_ForceResetPassword(t *testing.T) {
	svc := &fakeUserService{
		ForceResetPasswordFn: func(_ context.Context, _, id, pw string) error {
			assert.Equal(t, "user-9", id)
			assert.Equal(t, "resetpass99", pw)
			return nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users/user-9/force-reset-password",
		bytes.NewBufferString(`{"new_password":"resetpass99"}`))
	req.Header.Set("Content-Type", "application/json")
	newUserRouter(svc).ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
