// Black-box tests: only the exported API of the package is used.
package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"echo-widget/internal/api"
	app_errors "echo-widget/internal/errors"
	"echo-widget/internal/interfaces/mocks"
	"echo-widget/internal/model"
	"echo-widget/internal/widgetconfig"
)

func setupWidgetHandler(t *testing.T) (*api.WidgetHandler, *mocks.MockWidgetService) {
	mockSvc := mocks.NewMockWidgetService(t)
	return api.NewWidgetHandler(mockSvc), mockSvc
}

// addChiURLParams injects URL parameters the way the chi router does, so
// handlers can read them with chi.URLParam.
func addChiURLParams(req *http.Request, params map[string]string) *http.Request {
	chiCtx := chi.NewRouteContext()
	for key, value := range params {
		chiCtx.URLParams.Add(key, value)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, chiCtx))
}

func TestWidgetHandler_CreateSession(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// ARRANGE
		handler, mockSvc := setupWidgetHandler(t)
		view := &model.SessionView{ID: "s1", RecordID: "rec-1", Config: widgetconfig.Defaults()}
		mockSvc.On("CreateSession", mock.Anything, "rec-1").Return(view, nil).Once()

		// ACT
		req := httptest.NewRequest(http.MethodPost, "/v1/sessions", strings.NewReader(`{"user_record_id":"rec-1"}`))
		rr := httptest.NewRecorder()
		handler.CreateSession(rr, req)

		// ASSERT
		assert.Equal(t, http.StatusCreated, rr.Code)
		var got map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "s1", got["id"])
		assert.Equal(t, "Echo Bot", got["config"].(map[string]any)["botName"])
	})

	t.Run("Success - empty body opens a default instance", func(t *testing.T) {
		handler, mockSvc := setupWidgetHandler(t)
		mockSvc.On("CreateSession", mock.Anything, "").Return(&model.SessionView{ID: "s2"}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/v1/sessions", http.NoBody)
		rr := httptest.NewRecorder()
		handler.CreateSession(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("Failure - Invalid JSON", func(t *testing.T) {
		handler, _ := setupWidgetHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/v1/sessions", strings.NewReader(`{invalid`))
		rr := httptest.NewRecorder()
		handler.CreateSession(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestWidgetHandler_GetSession(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockSvc := setupWidgetHandler(t)
		view := &model.SessionView{
			ID: "s1",
			Transcript: model.Transcript{
				Messages: []model.Message{{Role: model.RoleUser, Content: "Hello"}},
				Pending:  &model.Message{Role: model.RoleBot, Content: "..."},
			},
			Busy: true,
		}
		mockSvc.On("GetSession", mock.Anything, "s1").Return(view, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/v1/sessions/s1", nil)
		req = addChiURLParams(req, map[string]string{"sessionID": "s1"})
		rr := httptest.NewRecorder()
		handler.GetSession(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"busy":true`)
		assert.Contains(t, rr.Body.String(), `"pending":{`)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		handler, mockSvc := setupWidgetHandler(t)
		mockSvc.On("GetSession", mock.Anything, "missing").Return(nil, app_errors.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/v1/sessions/missing", nil)
		req = addChiURLParams(req, map[string]string{"sessionID": "missing"})
		rr := httptest.NewRecorder()
		handler.GetSession(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestWidgetHandler_SendMessage(t *testing.T) {
	sessionID := "s1"
	newRequest := func(body string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/v1/sessions/"+sessionID+"/messages", strings.NewReader(body))
		return addChiURLParams(req, map[string]string{"sessionID": sessionID})
	}

	t.Run("Success", func(t *testing.T) {
		// ARRANGE
		handler, mockSvc := setupWidgetHandler(t)
		reply := &model.Message{ID: "m2", Role: model.RoleBot, Content: "Hello!"}
		mockSvc.On("SendMessage", mock.Anything, sessionID, "Hi").Return(reply, nil).Once()

		// ACT
		rr := httptest.NewRecorder()
		handler.SendMessage(rr, newRequest(`{"message":"Hi"}`))

		// ASSERT
		assert.Equal(t, http.StatusOK, rr.Code)
		var got model.Message
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "Hello!", got.Content)
		assert.False(t, got.Error)
	})

	t.Run("Failure - Validation Error (empty message)", func(t *testing.T) {
		handler, _ := setupWidgetHandler(t)

		rr := httptest.NewRecorder()
		handler.SendMessage(rr, newRequest(`{"message":""}`))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Field 'Message' failed on the 'required' tag")
	})

	t.Run("Failure - Blank message rejected by the service", func(t *testing.T) {
		handler, mockSvc := setupWidgetHandler(t)
		mockSvc.On("SendMessage", mock.Anything, sessionID, "   ").
			Return(nil, errors.Join(app_errors.ErrValidation, errors.New("message is empty"))).Once()

		rr := httptest.NewRecorder()
		handler.SendMessage(rr, newRequest(`{"message":"   "}`))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Failure - Reply outstanding", func(t *testing.T) {
		handler, mockSvc := setupWidgetHandler(t)
		mockSvc.On("SendMessage", mock.Anything, sessionID, "Hi again").Return(nil, app_errors.ErrConflict).Once()

		rr := httptest.NewRecorder()
		handler.SendMessage(rr, newRequest(`{"message":"Hi again"}`))

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("Failure - Internal error is not leaked", func(t *testing.T) {
		handler, mockSvc := setupWidgetHandler(t)
		mockSvc.On("SendMessage", mock.Anything, sessionID, "Hi").Return(nil, errors.New("pending state corrupted")).Once()

		rr := httptest.NewRecorder()
		handler.SendMessage(rr, newRequest(`{"message":"Hi"}`))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "corrupted")
	})
}

func TestWidgetHandler_CloseSession(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockSvc := setupWidgetHandler(t)
		mockSvc.On("CloseSession", mock.Anything, "s1").Return(nil).Once()

		req := addChiURLParams(httptest.NewRequest(http.MethodDelete, "/v1/sessions/s1", nil), map[string]string{"sessionID": "s1"})
		rr := httptest.NewRecorder()
		handler.CloseSession(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		handler, mockSvc := setupWidgetHandler(t)
		mockSvc.On("CloseSession", mock.Anything, "s1").Return(app_errors.ErrNotFound).Once()

		req := addChiURLParams(httptest.NewRequest(http.MethodDelete, "/v1/sessions/s1", nil), map[string]string{"sessionID": "s1"})
		rr := httptest.NewRecorder()
		handler.CloseSession(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestWidgetHandler_StreamPlaceholder(t *testing.T) {
	t.Run("Animated frames", func(t *testing.T) {
		// ARRANGE
		handler, mockSvc := setupWidgetHandler(t)
		frames := make(chan model.PlaceholderFrame, 3)
		frames <- model.PlaceholderFrame{Text: "A"}
		frames <- model.PlaceholderFrame{Text: "As"}
		frames <- model.PlaceholderFrame{Text: "Ask"}
		close(frames)
		mockSvc.On("StreamPlaceholder", mock.Anything, "s1").Return((<-chan model.PlaceholderFrame)(frames), nil).Once()

		// ACT
		req := addChiURLParams(httptest.NewRequest(http.MethodGet, "/v1/sessions/s1/placeholder", nil), map[string]string{"sessionID": "s1"})
		rr := httptest.NewRecorder()
		handler.StreamPlaceholder(rr, req)

		// ASSERT
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "text/event-stream", rr.Header().Get("Content-Type"))
		expected := "data: {\"text\":\"A\"}\n\n" +
			"data: {\"text\":\"As\"}\n\n" +
			"data: {\"text\":\"Ask\"}\n\n"
		assert.Equal(t, expected, rr.Body.String())
	})

	t.Run("Static placeholder", func(t *testing.T) {
		handler, mockSvc := setupWidgetHandler(t)
		frames := make(chan model.PlaceholderFrame, 1)
		frames <- model.PlaceholderFrame{Text: "Ask your question...", Static: true}
		close(frames)
		mockSvc.On("StreamPlaceholder", mock.Anything, "s1").Return((<-chan model.PlaceholderFrame)(frames), nil).Once()

		req := addChiURLParams(httptest.NewRequest(http.MethodGet, "/v1/sessions/s1/placeholder", nil), map[string]string{"sessionID": "s1"})
		rr := httptest.NewRecorder()
		handler.StreamPlaceholder(rr, req)

		assert.Equal(t, "event: static\ndata: {\"text\":\"Ask your question...\",\"static\":true}\n\n", rr.Body.String())
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		handler, mockSvc := setupWidgetHandler(t)
		mockSvc.On("StreamPlaceholder", mock.Anything, "s1").Return(nil, app_errors.ErrNotFound).Once()

		req := addChiURLParams(httptest.NewRequest(http.MethodGet, "/v1/sessions/s1/placeholder", nil), map[string]string{"sessionID": "s1"})
		rr := httptest.NewRecorder()
		handler.StreamPlaceholder(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	})
}

func TestWidgetHandler_RenderWidget(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockSvc := setupWidgetHandler(t)
		mockSvc.On("RenderWidget", mock.Anything, "s1", mock.Anything).
			Run(func(args mock.Arguments) {
				_, _ = io.WriteString(args.Get(2).(io.Writer), "<div>widget</div>")
			}).Return(nil).Once()

		req := addChiURLParams(httptest.NewRequest(http.MethodGet, "/widget/s1", nil), map[string]string{"sessionID": "s1"})
		rr := httptest.NewRecorder()
		handler.RenderWidget(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
		assert.Equal(t, "<div>widget</div>", rr.Body.String())
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		handler, mockSvc := setupWidgetHandler(t)
		mockSvc.On("RenderWidget", mock.Anything, "s1", mock.Anything).Return(app_errors.ErrNotFound).Once()

		req := addChiURLParams(httptest.NewRequest(http.MethodGet, "/widget/s1", nil), map[string]string{"sessionID": "s1"})
		rr := httptest.NewRecorder()
		handler.RenderWidget(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
