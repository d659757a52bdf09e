package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

const (
	testCacheKey = "idemp:/leaves:user-1:key-1"
	testLockKey  = testCacheKey + ":lock"
)

func newIdempotencyRouter(t *testing.T, calls *int) (*gin.Engine, redismock.ClientMock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rdb, mock := redismock.NewClientMock()
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id_validated", "user-1")
		c.Next()
	})
	r.Use(Idempotency(rdb, zap.NewNop()))
	r.POST("/leaves", func(c *gin.Context) {
		*calls++
		c.JSON(http.StatusCreated, gin.H{"id": "leave-1"})
	})
	return r, mock
}

func postLeave(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
	req.Header.Set(IdempotencyHeader, "key-1")
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency(t *testing.T) {
	t.Run("first request runs handler and stores response", func(t *testing.T) {
		calls := 0
		r, mock := newIdempotencyRouter(t, &calls)

		stored, _ := json.Marshal(cachedResponse{Status: http.StatusCreated, Body: []byte(`{"id":"leave-1"}`)})
		mock.ExpectGet(testCacheKey).RedisNil()
		mock.ExpectSetNX(testLockKey, idempotencyLockMarker, idempotencyLockTTL).SetVal(true)
		mock.ExpectSet(testCacheKey, string(stored), idempotencyResultTTL).SetVal("OK")
		mock.ExpectDel(testLockKey).SetVal(1)

		w := postLeave(r)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("replay returns cached response", func(t *testing.T) {
		calls := 0
		r, mock := newIdempotencyRouter(t, &calls)

		stored, _ := json.Marshal(cachedResponse{Status: http.StatusCreated, Body: []byte(`{"id":"leave-1"}`)})
		mock.ExpectGet(testCacheKey).SetVal(string(stored))

		w := postLeave(r)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "true", w.Header().Get(IdempotencyReplayed))
		assert.JSONEq(t, `{"id":"leave-1"}`, w.Body.String())
		assert.Equal(t, 0, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative concurrent duplicate", func(t *testing.T) {
		calls := 0
		r, mock := newIdempotencyRouter(t, &calls)

		mock.ExpectGet(testCacheKey).RedisNil()
		mock.ExpectSetNX(testLockKey, idempotencyLockMarker, idempotencyLockTTL).SetVal(false)

		w := postLeave(r)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "PROCESSING")
		assert.Equal(t, 0, calls)
	})

	t.Run("redis down falls through", func(t *testing.T) {
		calls := 0
		r, mock := newIdempotencyRouter(t, &calls)

		mock.ExpectGet(testCacheKey).SetErr(errors.New("connection refused"))

		w := postLeave(r)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
	})

	t.Run("no header skips redis", func(t *testing.T) {
		calls := 0
		r, mock := newIdempotencyRouter(t, &calls)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leaves", nil))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
