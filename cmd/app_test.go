package cmd

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"greencity/api/middleware"
	"greencity/application/email"
	"greencity/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.App.Env = "test"
	cfg.Server.ShutdownTimeout = time.Second
	cfg.Server.RateLimit.Enabled = false
	cfg.Storage.UploadDir = t.TempDir()
	cfg.Auth.JWTSecret = "test-secret"
	return cfg
}

func bearer(t *testing.T, secret string, userID int64) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, middleware.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	return "Bearer " + token
}

func TestBuildServesApiWithInMemoryRepositories(t *testing.T) {
	cfg := testConfig(t)
	sender := &email.RecordingSender{}

	app, err := NewBuilder(cfg).WithEmailSender(sender).Build()
	require.NoError(t, err)
	engine := app.GetServer()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	start := time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)
	finish := time.Now().Add(50 * time.Hour).UTC().Format(time.RFC3339)
	body := fmt.Sprintf(`{"title":"Riverside cleanup","description":"Bring gloves, we clean the riverside.","open":true,
		"tags":["Environmental"],"datesLocations":[{"startDate":%q,"finishDate":%q,"onlineLink":"https://meet.example.com/x"}]}`, start, finish)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/events", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, cfg.Auth.JWTSecret, 2))
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// Shutdown 等待邮件池处理完已入队的任务
	require.NoError(t, app.mailer.Shutdown(context.Background()))
	assert.Len(t, sender.Created, 1)
}
