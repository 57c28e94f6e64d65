package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"greencity/config"
	"greencity/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestAccessLogUsesRouteTemplate(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	t.Cleanup(logger.ReplaceForTest(zap.New(core)))

	engine := gin.New()
	engine.Use(RequestID(), AccessLog())
	engine.GET("/events/:eventId", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	req := httptest.NewRequest(http.MethodGet, "/events/42?lang=ua", nil)
	req.Header.Set(RequestIDHeader, "req-7")
	engine.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/events/:eventId", fields["route"])
	assert.Equal(t, "/events/42?lang=ua", fields["uri"])
	assert.Equal(t, "req-7", fields["request_id"])
	assert.EqualValues(t, http.StatusNotFound, fields["status"])
}

func TestRecoveryKeepsPartialResponse(t *testing.T) {
	engine := gin.New()
	engine.Use(Recovery())
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "partial")
		panic("late failure")
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "partial", w.Body.String())
}

func TestCORSIgnoresUnknownOrigin(t *testing.T) {
	engine := gin.New()
	engine.Use(CORS(config.CORSConfig{AllowOrigins: []string{"http://localhost:4200"}}))
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", w.Header().Get("Vary"))
}
