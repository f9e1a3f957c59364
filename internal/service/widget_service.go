package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"echo-widget/internal/model"
	"echo-widget/internal/placeholder"
	"echo-widget/internal/render"
	"echo-widget/internal/widget"
)

// placeholderBuffer is how many frames a slow stream consumer may fall behind
// before frames are dropped.
const placeholderBuffer = 16

// WidgetService exposes widget instances to the transport layer.
type WidgetService struct {
	manager  *widget.Manager
	renderer *render.Renderer
}

func NewWidgetService(manager *widget.Manager, renderer *render.Renderer) *WidgetService {
	return &WidgetService{manager: manager, renderer: renderer}
}

// CreateSession opens a widget instance for recordID, which may be empty.
func (s *WidgetService) CreateSession(ctx context.Context, recordID string) (*model.SessionView, error) {
	sess, err := s.manager.Create(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("could not create session: %w", err)
	}
	return sessionView(sess), nil
}

// GetSession returns the current state of a widget instance.
func (s *WidgetService) GetSession(ctx context.Context, sessionID string) (*model.SessionView, error) {
	sess, err := s.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return sessionView(sess), nil
}

// SendMessage relays text through the instance and returns the bot message
// that ended the exchange.
func (s *WidgetService) SendMessage(ctx context.Context, sessionID, text string) (*model.Message, error) {
	sess, err := s.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}
	msg, err := sess.Send(ctx, text)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// CloseSession tears a widget instance down.
func (s *WidgetService) CloseSession(ctx context.Context, sessionID string) error {
	return s.manager.Close(sessionID)
}

// StreamPlaceholder returns the placeholder frames of an instance. A static
// placeholder yields a single frame. Otherwise frames flow until ctx is done
// or the instance is closed, and then the channel is closed.
func (s *WidgetService) StreamPlaceholder(ctx context.Context, sessionID string) (<-chan model.PlaceholderFrame, error) {
	sess, err := s.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}

	frames := make(chan model.PlaceholderFrame, placeholderBuffer)
	stop, err := sess.StartPlaceholder(func(text string) {
		select {
		case frames <- model.PlaceholderFrame{Text: text}:
		default:
			// Consumer is behind; the next frame supersedes this one.
		}
	})
	if errors.Is(err, placeholder.ErrNoCandidates) {
		frames <- model.PlaceholderFrame{Text: sess.Config().InputPlaceholder.Static(), Static: true}
		close(frames)
		return frames, nil
	}
	if err != nil {
		return nil, err
	}

	go func() {
		select {
		case <-ctx.Done():
		case <-sess.Done():
		}
		stop()
		close(frames)
		slog.Debug("Placeholder stream ended", "session_id", sessionID)
	}()
	return frames, nil
}

// RenderWidget writes the HTML of an instance to w.
func (s *WidgetService) RenderWidget(ctx context.Context, sessionID string, w io.Writer) error {
	sess, err := s.manager.Get(sessionID)
	if err != nil {
		return err
	}
	transcript := sess.Transcript()
	view := render.View{
		SessionID: sess.ID(),
		Config:    sess.Config(),
		Messages:  transcript.Messages,
		Pending:   transcript.Pending,
		Busy:      sess.Busy(),
	}
	if view.Config.InputPlaceholder.Animated() {
		view.PlaceholderStream = fmt.Sprintf("/api/v1/sessions/%s/placeholder", sess.ID())
	}
	return s.renderer.Widget(w, view)
}

func sessionView(sess *widget.Session) *model.SessionView {
	return &model.SessionView{
		ID:         sess.ID(),
		RecordID:   sess.RecordID(),
		Config:     sess.Config(),
		Transcript: sess.Transcript(),
		Busy:       sess.Busy(),
	}
}
