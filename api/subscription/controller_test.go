package subscription

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	subscriptionapp "greencity/application/subscription"
	"greencity/infrastructure/persistence/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func setup() *gin.Engine {
	svc := subscriptionapp.NewApplicationService(mocks.NewMockNewsSubscriptionRepository(), mocks.NewMockUnitOfWork())
	engine := gin.New()
	NewController(svc).RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func send(engine *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestSubscriptionLifecycle(t *testing.T) {
	engine := setup()

	w, env := send(engine, http.MethodPost, "/api/v1/newsSubscriptions/subscribe", `{"email":"Olena@GreenCity.ua"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var sub subscriptionapp.SubscriptionResponse
	require.NoError(t, json.Unmarshal(env.Data, &sub))
	assert.Equal(t, "olena@greencity.ua", sub.Email)
	require.NotEmpty(t, sub.Token)

	w, env = send(engine, http.MethodPost, "/api/v1/newsSubscriptions/subscribe", `{"email":"olena@greencity.ua"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ALREADY_SUBSCRIBED", env.Error)

	w, env = send(engine, http.MethodGet, "/api/v1/newsSubscriptions/isSubscribed?email=OLENA@greencity.ua", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "true", string(env.Data))

	w, _ = send(engine, http.MethodGet, "/api/v1/newsSubscriptions/token/"+sub.Token, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = send(engine, http.MethodGet, "/api/v1/newsSubscriptions", "")
	require.Equal(t, http.StatusOK, w.Code)
	var all []subscriptionapp.SubscriptionResponse
	require.NoError(t, json.Unmarshal(env.Data, &all))
	assert.Len(t, all, 1)

	w, env = send(engine, http.MethodPost, "/api/v1/newsSubscriptions/unsubscribe?token="+sub.Token, "")
	require.Equal(t, http.StatusOK, w.Code)
	var removed subscriptionapp.SubscriptionResponse
	require.NoError(t, json.Unmarshal(env.Data, &removed))
	assert.Equal(t, sub.ID, removed.ID)

	w, _ = send(engine, http.MethodPost, "/api/v1/newsSubscriptions/unsubscribe?token="+sub.Token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubscribeRejectsInvalidEmail(t *testing.T) {
	engine := setup()

	w, env := send(engine, http.MethodPost, "/api/v1/newsSubscriptions/subscribe", `{"email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error)

	w, _ = send(engine, http.MethodPost, "/api/v1/newsSubscriptions/unsubscribe", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
