package health

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"greencity/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backlog struct{ queued, capacity int }

func (b backlog) Backlog() (int, int) { return b.queued, b.capacity }

func newEngine(c *Controller) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	c.RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func get(t *testing.T, engine *gin.Engine, path string) (int, Report) {
	t.Helper()
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	var body Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHealthWithoutProbes(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Version: "1.2.3", Env: "production"}}
	engine := newEngine(NewController(cfg))

	code, body := get(t, engine, "/api/v1/health")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "up", body.Status)
	assert.Equal(t, "1.2.3", body.Version)
	assert.Nil(t, body.Runtime)

	code, _ = get(t, engine, "/api/v1/health/live")
	assert.Equal(t, http.StatusOK, code)
	code, _ = get(t, engine, "/api/v1/health/ready")
	assert.Equal(t, http.StatusOK, code)
}

func TestDatabaseDownMakesServiceUnready(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	cfg := &config.Config{App: config.AppConfig{Env: "development"}}
	engine := newEngine(NewController(cfg, DatabaseProbe(db), MailerProbe(backlog{1, 10})))

	code, body := get(t, engine, "/api/v1/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "down", body.Status)

	code, body = get(t, engine, "/api/v1/health")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "down", body.Checks["database"].Status)
	assert.Equal(t, "connection refused", body.Checks["database"].Error)
	assert.Equal(t, "up", body.Checks["mailer"].Status)
	assert.NotNil(t, body.Runtime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFullMailerQueueDegradesButStaysReady(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "production"}}
	engine := newEngine(NewController(cfg, MailerProbe(backlog{queued: 95, capacity: 100})))

	code, body := get(t, engine, "/api/v1/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "degraded", body.Status)
	assert.Contains(t, body.Checks["mailer"].Error, "95/100")

	code, _ = get(t, engine, "/api/v1/health/ready")
	assert.Equal(t, http.StatusOK, code)
}
