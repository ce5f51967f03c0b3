package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestIDMiddleware(), MetricsMiddleware())
	router.GET("/items/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"gin":     c.GetString(RequestIDKey),
			"context": GetRequestID(c.Request.Context()),
		})
	})
	return router
}

func TestRequestIDMiddleware(t *testing.T) {
	router := newTestRouter()

	t.Run("generates an id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/items/1", nil)
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		rid := rr.Header().Get(RequestIDHeader)
		assert.NotEmpty(t, rid)
		assert.JSONEq(t, `{"gin":"`+rid+`","context":"`+rid+`"}`, rr.Body.String())
	})

	t.Run("reuses the incoming id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/items/1", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		router.ServeHTTP(rr, req)

		assert.Equal(t, "abc-123", rr.Header().Get(RequestIDHeader))
		assert.JSONEq(t, `{"gin":"abc-123","context":"abc-123"}`, rr.Body.String())
	})
}

func TestMetricsMiddleware(t *testing.T) {
	router := newTestRouter()

	okBefore := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/items/:id", "200"))
	missBefore := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, unmatchedRoute, "404"))

	for _, path := range []string{"/items/1", "/items/2", "/nowhere"} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, okBefore+2, testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/items/:id", "200")))
	assert.Equal(t, missBefore+1, testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, unmatchedRoute, "404")))
}
