package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"excusegen/middleware"
)

func setupMiddlewareRouter(cfg *middleware.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	middleware.SetupMiddleware(r, cfg)
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":    "pong",
			"request_id": middleware.GetRequestID(c),
		})
	})
	return r
}

func TestRequestID_Generated(t *testing.T) {
	r := setupMiddlewareRouter(&middleware.Config{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, http.StatusOK, w.Code)

	requestID := w.Header().Get("X-Request-ID")
	require.NotEmpty(t, requestID, "X-Request-ID header must be set")

	_, err := uuid.Parse(requestID)
	assert.NoError(t, err, "generated request ID must be a UUID")
}

func TestRequestID_Propagated(t *testing.T) {
	r := setupMiddlewareRouter(&middleware.Config{})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "client-supplied-id")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "client-supplied-id", w.Header().Get("X-Request-ID"))
	assert.Contains(t, w.Body.String(), "client-supplied-id")
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	r := setupMiddlewareRouter(&middleware.Config{EnableCORS: true})

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestCORSMiddleware_SimpleRequest(t *testing.T) {
	r := setupMiddlewareRouter(&middleware.Config{EnableCORS: true})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
