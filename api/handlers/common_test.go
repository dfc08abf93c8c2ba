// Common test helpers
package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/meghashyamc/sitesearch/app"
	"github.com/meghashyamc/sitesearch/config"
	"github.com/meghashyamc/sitesearch/logger"
	"github.com/meghashyamc/sitesearch/validation"
	"github.com/stretchr/testify/require"
)

var defaultTestRequestHeaders = map[string]string{"Content-Type": "application/json"}

var testContent = map[string]any{
	"projects": []any{
		map[string]any{
			"id": "p1", "title": "Elegant Spring Wedding", "slug": "elegant-spring-wedding",
			"description": "Peonies and garden roses", "category": "wedding", "event_date": "2024-04-20T00:00:00Z",
		},
		map[string]any{
			"id": "p2", "title": "Corporate Gala Dinner", "slug": "corporate-gala",
			"category": "corporate", "created_at": "2023-11-02T00:00:00Z",
		},
	},
	"services": []any{
		map[string]any{
			"id": "s1", "name": "Wedding Floral Design", "slug": "wedding-floral",
			"features": []any{"bouquets", "arches"}, "category": "wedding",
		},
	},
	"articles": []any{
		map[string]any{
			"id": "a1", "title": "Choosing Spring Flowers", "slug": "spring-flowers",
			"excerpt": "Seasonal blooms for your wedding", "tags": []any{"spring"}, "created_at": "2024-03-01T00:00:00Z",
		},
	},
	"testimonials": []any{
		map[string]any{
			"id": "t1", "author": "Ana Costa", "quote": "The roses were breathtaking",
			"event": "Spring wedding in Sintra", "created_at": "2024-05-10T00:00:00Z",
		},
	},
}

type testCase struct {
	name             string
	requestHeaders   map[string]string
	requestBody      map[string]any
	queryParams      map[string]string
	expectedStatus   int
	expectedResponse map[string]any
}

func newTestLogger() logger.Logger {

	opts := &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	}
	handler := slog.NewJSONHandler(os.Stderr, opts)
	return slog.New(handler)
}

func setupTestServer(t *testing.T, assert *require.Assertions) (*gin.Engine, *app.App) {

	t.Setenv("ENV", "test")
	t.Setenv("KVDB_PATH", filepath.Join(t.TempDir(), "sitesearch.db"))

	cfg, err := config.Load("")
	assert.NoError(err, "could not load config")

	testLogger := newTestLogger()

	a, err := app.New(cfg, testLogger)
	assert.NoError(err, "could not create app")
	t.Cleanup(func() { a.Close() })

	validator, err := validation.New(testLogger)
	assert.NoError(err, "could not create validator")
	gin.SetMode(gin.TestMode)
	router := gin.New()

	SetupSearch(router, testLogger, a.Session, validator, cfg.GetPageSize(), cfg.GetSupersedeInFlight())
	SetupSuggestions(router, testLogger, a.Session, validator)
	SetupContent(router, testLogger, a.Catalog)

	return router, a
}

func setupSeededTestServer(t *testing.T, assert *require.Assertions) (*gin.Engine, *app.App) {
	router, a := setupTestServer(t, assert)

	w := makeTestHTTPRequest(router, assert, http.MethodPost, "/content", defaultTestRequestHeaders, testContent, nil)
	assert.Equal(http.StatusNoContent, w.Code, "content import should succeed before running tests")

	return router, a
}

func makeTestHTTPRequest(router *gin.Engine, assert *require.Assertions, method string, endpoint string, headers map[string]string, requestBodyMap map[string]interface{}, queryParams map[string]string) *httptest.ResponseRecorder {

	var err error
	w := httptest.NewRecorder()

	if len(queryParams) > 0 {
		params := url.Values{}
		for key, value := range queryParams {
			params.Set(key, value)
		}
		endpoint = endpoint + "?" + params.Encode()
	}
	var jsonBody []byte
	var req *http.Request
	if requestBodyMap != nil {
		jsonBody, err = json.Marshal(requestBodyMap)
		assert.NoError(err)
	}

	slog.Info("Making test request", "method", method, "endpoint", endpoint, "headers", headers, "body", string(jsonBody))

	if len(jsonBody) > 0 {
		req, err = http.NewRequest(method, endpoint, bytes.NewBuffer(jsonBody))
	} else {
		req, err = http.NewRequest(method, endpoint, nil)
	}
	assert.NoError(err)

	for key, value := range headers {
		req.Header.Set(key, value)
	}
	router.ServeHTTP(w, req)

	return w
}

func decodeResponse(assert *require.Assertions, w *httptest.ResponseRecorder) map[string]any {
	var responseMap map[string]any
	err := json.Unmarshal(w.Body.Bytes(), &responseMap)
	assert.NoError(err, "could not unmarshal response %s", w.Body.String())
	return responseMap
}

// resultIDs returns the ids of data.results in a decoded search response.
func resultIDs(responseMap map[string]any) []string {
	data := responseMap["data"].(map[string]any)
	ids := []string{}
	for _, result := range data["results"].([]any) {
		ids = append(ids, result.(map[string]any)["id"].(string))
	}
	return ids
}
