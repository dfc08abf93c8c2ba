package api

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/meghashyamc/sitesearch/app"
	"github.com/meghashyamc/sitesearch/config"
	"github.com/meghashyamc/sitesearch/logger"
	"github.com/meghashyamc/sitesearch/validation"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(t *testing.T, assert *require.Assertions) *gin.Engine {
	t.Setenv("KVDB_PATH", filepath.Join(t.TempDir(), "sitesearch.db"))
	gin.SetMode(gin.TestMode)

	cfg, err := config.Load("test")
	assert.NoError(err, "could not load config")

	testLogger := logger.NewDiscard()
	a, err := app.New(cfg, testLogger)
	assert.NoError(err, "could not create app")
	t.Cleanup(func() { a.Close() })

	validator, err := validation.New(testLogger)
	assert.NoError(err, "could not create validator")

	s := &server{app: a, validator: validator, logger: testLogger}
	s.setupRouter()
	return s.router
}

func TestHealth(t *testing.T) {
	assert := require.New(t)
	router := setupTestRouter(t, assert)

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, "/health", nil)
	assert.NoError(err)
	router.ServeHTTP(w, req)

	assert.Equal(http.StatusOK, w.Code)
	assert.Equal("OK", w.Body.String())

	_, err = uuid.Parse(w.Header().Get(HeaderRequestID))
	assert.NoError(err, "a request ID should be generated")
}

func TestRequestIDIsEchoed(t *testing.T) {
	assert := require.New(t)
	router := setupTestRouter(t, assert)

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, "/searches/popular", nil)
	assert.NoError(err)
	req.Header.Set(HeaderRequestID, "req-123")
	router.ServeHTTP(w, req)

	assert.Equal(http.StatusOK, w.Code)
	assert.Equal("req-123", w.Header().Get(HeaderRequestID))
}

func TestCORSPreflight(t *testing.T) {
	assert := require.New(t)
	router := setupTestRouter(t, assert)

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodOptions, "/search", nil)
	assert.NoError(err)
	router.ServeHTTP(w, req)

	assert.Equal(http.StatusNoContent, w.Code)
	assert.Contains(w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}
