package attendee

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	attendeeapp "greencity/application/attendee"
	"greencity/domain/event"
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

func setup(t *testing.T, open bool) (*gin.Engine, int64) {
	t.Helper()
	attendees := mocks.NewMockEventAttendeeRepository()
	events := mocks.NewMockEventRepository(attendees, mocks.NewMockEventCommentRepository())

	now := time.Now()
	slot, err := event.NewDateLocation(now.Add(time.Hour), now.Add(2*time.Hour), nil, "https://meet.example.com/eco", now)
	require.NoError(t, err)
	e, err := event.NewEvent(1, event.Details{
		Title:          "Tree planting",
		Description:    "A description that is long enough.",
		Open:           open,
		Tags:           []string{"Social"},
		DatesLocations: []event.DateLocation{slot},
	}, nil, now)
	require.NoError(t, err)
	require.NoError(t, events.Save(context.Background(), e))

	svc := attendeeapp.NewApplicationService(attendees, events, mocks.NewMockUserRepository(), mocks.NewMockUnitOfWork())
	engine := gin.New()
	NewController(svc).RegisterRoutes(engine.Group("/api/v1"))
	return engine, e.ID()
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

func TestAttendeeLifecycle(t *testing.T) {
	engine, eventID := setup(t, true)

	w, env := send(engine, http.MethodPost, "/api/v1/event-attendees", fmt.Sprintf(`{"eventId":%d,"userId":2}`, eventID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created attendeeapp.AttendeeResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "PLANNED", created.Status)

	w, env = send(engine, http.MethodPost, "/api/v1/event-attendees", fmt.Sprintf(`{"eventId":%d,"userId":2}`, eventID))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "USER_ALREADY_ATTACHED", env.Error)

	path := fmt.Sprintf("/api/v1/event-attendees/%d", created.ID)
	w, env = send(engine, http.MethodPatch, path, `{"status":"ATTENDED","mark":"HIGH"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated attendeeapp.AttendeeResponse
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "ATTENDED", updated.Status)
	require.NotNil(t, updated.Mark)
	assert.Equal(t, "HIGH", *updated.Mark)

	w, env = send(engine, http.MethodPatch, path, `{"status":"PLANNED"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "STATUS_CANNOT_BE_UPDATED", env.Error)

	w, env = send(engine, http.MethodGet, fmt.Sprintf("/api/v1/event-attendees/by-event/%d", eventID), "")
	require.Equal(t, http.StatusOK, w.Code)
	var byEvent []attendeeapp.AttendeeResponse
	require.NoError(t, json.Unmarshal(env.Data, &byEvent))
	assert.Len(t, byEvent, 1)

	w, _ = send(engine, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, _ = send(engine, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateValidation(t *testing.T) {
	engine, _ := setup(t, true)

	w, env := send(engine, http.MethodPost, "/api/v1/event-attendees", `{"eventId":0,"userId":2}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error)

	w, _ = send(engine, http.MethodPost, "/api/v1/event-attendees", `{"eventId":999,"userId":2}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = send(engine, http.MethodGet, "/api/v1/event-attendees/by-user/-1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOnClosedEvent(t *testing.T) {
	engine, eventID := setup(t, false)

	w, _ := send(engine, http.MethodPost, "/api/v1/event-attendees", fmt.Sprintf(`{"eventId":%d,"userId":2}`, eventID))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteByEvent(t *testing.T) {
	engine, eventID := setup(t, true)
	for _, userID := range []int{2, 3} {
		w, _ := send(engine, http.MethodPost, "/api/v1/event-attendees", fmt.Sprintf(`{"eventId":%d,"userId":%d}`, eventID, userID))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, _ := send(engine, http.MethodDelete, fmt.Sprintf("/api/v1/event-attendees/by-event/%d", eventID), "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, env := send(engine, http.MethodGet, "/api/v1/event-attendees/by-user/2", "")
	require.Equal(t, http.StatusOK, w.Code)
	var byUser []attendeeapp.AttendeeResponse
	require.NoError(t, json.Unmarshal(env.Data, &byUser))
	assert.Empty(t, byUser)
}
