package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"echo-widget/internal/interfaces"
)

// WidgetHandler serves widget instances: their lifecycle, messages,
// placeholder animation and rendered HTML.
type WidgetHandler struct {
	service interfaces.WidgetService
}

func NewWidgetHandler(svc interfaces.WidgetService) *WidgetHandler {
	return &WidgetHandler{service: svc}
}

// CreateSession godoc
// @Summary      Open a widget instance
// @Description  Resolves the brand configuration for the record id and opens a widget instance seeded with the welcome message.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        request  body      CreateSessionRequest  false  "Brand record id"
// @Success      201      {object}  model.SessionView
// @Failure      400      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /v1/sessions [post]
func (h *WidgetHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := decodeRequest(r, &req, true); err != nil {
		respondWithError(w, err)
		return
	}

	view, err := h.service.CreateSession(r.Context(), req.UserRecordID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, view)
}

// GetSession godoc
// @Summary      Get a widget instance
// @Description  Returns the configuration, transcript, pending indicator and busy flag of a widget instance.
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  model.SessionView
// @Failure      404        {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID} [get]
func (h *WidgetHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	view, err := h.service.GetSession(r.Context(), sessionID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

// SendMessage godoc
// @Summary      Send a message
// @Description  Relays the message and conversation history to the webhook and returns the bot reply, or the apology if the webhook failed.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string              true  "Session ID"
// @Param        request    body      SendMessageRequest  true  "Message text"
// @Success      200        {object}  model.Message
// @Failure      400        {object}  ErrorResponse
// @Failure      404        {object}  ErrorResponse
// @Failure      409        {object}  ErrorResponse "A reply is still outstanding"
// @Router       /v1/sessions/{sessionID}/messages [post]
func (h *WidgetHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req SendMessageRequest
	if err := decodeRequest(r, &req, false); err != nil {
		respondWithError(w, err)
		return
	}

	msg, err := h.service.SendMessage(r.Context(), sessionID, req.Message)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, msg)
}

// CloseSession godoc
// @Summary      Close a widget instance
// @Description  Tears the instance down and stops its placeholder animation.
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  StatusResponse
// @Failure      404        {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID} [delete]
func (h *WidgetHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if err := h.service.CloseSession(r.Context(), sessionID); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// StreamPlaceholder godoc
// @Summary      Stream the input placeholder
// @Description  Streams the typing and erasing placeholder animation as Server-Sent Events. A placeholder that does not animate is sent once as a `static` event.
// @Tags         Sessions
// @Produce      text/event-stream
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  model.PlaceholderFrame "Stream of frames"
// @Failure      404        {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID}/placeholder [get]
func (h *WidgetHandler) StreamPlaceholder(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	frames, err := h.service.StreamPlaceholder(r.Context(), sessionID)
	if err != nil {
		respondWithError(w, err)
		return
	}

	setStreamHeaders(w)
	w.WriteHeader(http.StatusOK)

	for frame := range frames {
		event := ""
		if frame.Static {
			event = "static"
		}
		if err := writeStreamEvent(w, event, frame); err != nil {
			slog.Info("Placeholder stream client disconnected", "session_id", sessionID, "error", err)
			break
		}
	}
}

// RenderWidget godoc
// @Summary      Render a widget instance
// @Description  Returns the server-rendered HTML of the widget panel.
// @Tags         Widget
// @Produce      html
// @Param        sessionID  path  string  true  "Session ID"
// @Success      200
// @Failure      404  {object}  ErrorResponse
// @Router       /widget/{sessionID} [get]
func (h *WidgetHandler) RenderWidget(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.service.RenderWidget(r.Context(), sessionID, w); err != nil {
		respondWithError(w, err)
	}
}
