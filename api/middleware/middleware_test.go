package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"greencity/api/ctxutil"
	"greencity/config"
	"greencity/infrastructure/persistence"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func sign(t *testing.T, claims Claims, key string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return token
}

func authEngine(handler gin.HandlerFunc) *gin.Engine {
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/me", handler, func(c *gin.Context) {
		u, ok := ctxutil.GetCurrentUser(c)
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, "%d:%s:%s", u.ID, u.Name, persistence.BearerTokenFromContext(c.Request.Context()))
	})
	return engine
}

func call(engine *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	auth := NewAuthenticator(config.AuthConfig{JWTSecret: secret, Issuer: "greencity-user"})
	engine := authEngine(auth.Required())

	valid := sign(t, Claims{
		UserID: 2,
		Name:   "taras",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "greencity-user",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, secret)

	w := call(engine, valid)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2:taras:"+valid, w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, call(engine, "").Code)
	assert.Equal(t, http.StatusUnauthorized, call(engine, sign(t, Claims{UserID: 2, RegisteredClaims: jwt.RegisteredClaims{Issuer: "greencity-user"}}, "other")).Code)
	assert.Equal(t, http.StatusUnauthorized, call(engine, sign(t, Claims{UserID: 2, RegisteredClaims: jwt.RegisteredClaims{Issuer: "someone-else"}}, secret)).Code)

	expired := sign(t, Claims{UserID: 2, RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    "greencity-user",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}}, secret)
	assert.Equal(t, http.StatusUnauthorized, call(engine, expired).Code)
}

func TestAuthOptional(t *testing.T) {
	auth := NewAuthenticator(config.AuthConfig{JWTSecret: secret})
	engine := authEngine(auth.Optional())

	w := call(engine, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, call(engine, "garbage").Code)
}

func TestRequestIDIsEchoedAndPropagated(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, persistence.RequestIDFromContext(c.Request.Context()))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestRecoveryReturns500(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestID(), Recovery())
	engine.GET("/", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}

func TestRateLimit(t *testing.T) {
	engine := gin.New()
	engine.Use(RateLimit(config.RateLimitConfig{Enabled: true, Rate: 0.001, Burst: 1}))
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	first := httptest.NewRecorder()
	engine.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	second := httptest.NewRecorder()
	engine.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestCORSPreflight(t *testing.T) {
	engine := gin.New()
	engine.Use(CORS(config.CORSConfig{
		AllowOrigins: []string{"http://localhost:4200"},
		AllowMethods: []string{"GET", "POST"},
		MaxAge:       600,
	}))
	engine.OPTIONS("/", func(c *gin.Context) {})

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:4200")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:4200", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "600", w.Header().Get("Access-Control-Max-Age"))
}
