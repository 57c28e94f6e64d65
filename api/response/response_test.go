package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"greencity/domain/attendee"
	"greencity/domain/friend"
	"greencity/domain/shared"
	"greencity/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/things", nil)
	c.Set(RequestIDKey, "req-1")
	handler(c)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestHandleAppErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", shared.NewEntityNotFoundError("event", 1), http.StatusNotFound, "NOT_FOUND"},
		{"already attached", attendee.NewUserAlreadyAttachedError(1, 2), http.StatusBadRequest, "USER_ALREADY_ATTACHED"},
		{"forbidden", shared.NewForbiddenError("event comment", "not yours"), http.StatusForbidden, "FORBIDDEN"},
		{"pending", friend.NewRequestAlreadyPendingError(1, 2), http.StatusConflict, "FRIEND_REQUEST_PENDING"},
		{"not saved", shared.NewDomainError(shared.ErrNotSaved, "event attendee", "fk"), http.StatusBadRequest, "NOT_SAVED"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, body := serve(t, func(c *gin.Context) { HandleAppError(c, tc.err) })
			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.code, body.Error)
			assert.Equal(t, "req-1", body.RequestID)
			assert.False(t, body.Success)
		})
	}
}

func TestHandleAppErrorMasksInternalErrors(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	defer logger.ReplaceForTest(zap.New(core))()

	w, body := serve(t, func(c *gin.Context) { HandleAppError(c, fmt.Errorf("dial tcp: connection refused")) })

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", body.Message)

	entries := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "req-1", entries[0].ContextMap()["request_id"])
	assert.Contains(t, entries[0].ContextMap(), "stack")
}

func TestHandleValidationError(t *testing.T) {
	w, body := serve(t, func(c *gin.Context) { HandleValidationError(c, fmt.Errorf("title is required")) })

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", body.Error)
	assert.Equal(t, "title is required", body.Message)
}

func TestHandlePage(t *testing.T) {
	page := shared.NewPage([]string{"a", "b"}, 5, shared.NewPageRequest(1, 2))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	HandlePage(c, page, "ok")

	var body PaginatedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, Pagination{Page: 1, PageSize: 2, TotalItems: 5, TotalPages: 3}, body.Pagination)
	assert.Equal(t, []interface{}{"a", "b"}, body.Data)
}

func TestHandleValidationErrorListsFields(t *testing.T) {
	type body struct {
		Title string `binding:"required"`
		Dates []int  `binding:"min=1"`
	}
	err := binding.Validator.ValidateStruct(&body{})
	require.Error(t, err)

	_, resp := serve(t, func(c *gin.Context) { HandleValidationError(c, err) })
	assert.Equal(t, "Title: required; Dates: min=1", resp.Message)
}

func TestUnknownCodeIsInternal(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusOf("SOMETHING_NEW"))
	assert.Equal(t, http.StatusConflict, StatusOf("FRIEND_REQUEST_PENDING"))
}
