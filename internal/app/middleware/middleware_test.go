package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/stretchr/testify/assert"
	"paysaga/internal/app/handler"
	"paysaga/internal/app/logger"
	"paysaga/pkg/api"
)

func TestUserID(t *testing.T) {
	var seen string
	h := UserID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = handler.ReadContextUser(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("header present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
		req.Header.Set(api.HeaderUserID, "  alice ")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "alice", seen)
	})

	t.Run("header missing", func(t *testing.T) {
		seen = ""
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/orders", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, seen)
		assert.Contains(t, rec.Body.String(), "user id is required")
	})
}

func TestLog(t *testing.T) {
	buf := &bytes.Buffer{}
	l := logger.Logger{Logger: zerolog.New(buf).Level(zerolog.DebugLevel)}

	var hasLogger bool
	h := Log(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hasLogger = hlog.FromRequest(r).GetLevel() != zerolog.Disabled
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.True(t, hasLogger)
	assert.Contains(t, buf.String(), `"status":418`)
	assert.Contains(t, buf.String(), `"req_id"`)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
