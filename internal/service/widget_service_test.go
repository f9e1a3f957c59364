package service_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"echo-widget/internal/brandconfig"
	"echo-widget/internal/dispatch"
	dispatch_mocks "echo-widget/internal/dispatch/mocks"
	app_errors "echo-widget/internal/errors"
	"echo-widget/internal/model"
	"echo-widget/internal/placeholder"
	"echo-widget/internal/render"
	"echo-widget/internal/service"
	"echo-widget/internal/widget"
	"echo-widget/internal/widgetconfig"
)

type fixedResolver struct {
	cfg model.Config
}

func (r fixedResolver) Resolve(context.Context, string) (model.Config, brandconfig.Source) {
	return r.cfg, brandconfig.SourceRemote
}

func fastTimings() placeholder.Timings {
	return placeholder.Timings{
		Type: time.Millisecond, PauseAfterTyping: time.Millisecond,
		Erase: time.Millisecond, PauseAfterErasing: time.Millisecond, Tick: time.Millisecond,
	}
}

func setupWidgetService(t *testing.T, cfg model.Config) (*service.WidgetService, *dispatch_mocks.MockSender) {
	sender := dispatch_mocks.NewMockSender(t)
	manager := widget.NewManager(fixedResolver{cfg: cfg}, sender, widget.Options{
		Animator: placeholder.NewAnimator(fastTimings()),
	})
	t.Cleanup(manager.CloseAll)
	renderer, err := render.NewRenderer(false)
	require.NoError(t, err)
	return service.NewWidgetService(manager, renderer), sender
}

func TestWidgetService_SessionLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, sender := setupWidgetService(t, widgetconfig.Defaults())

	created, err := svc.CreateSession(ctx, "rec-1")
	require.NoError(t, err)
	assert.Equal(t, "rec-1", created.RecordID)
	require.Len(t, created.Transcript.Messages, 1)

	sender.On("Send", mock.Anything, "Hello", mock.Anything, mock.Anything, "rec-1").
		Return(dispatch.Result{Reply: "Hi there"}).Once()

	msg, err := svc.SendMessage(ctx, created.ID, "Hello")
	require.NoError(t, err)
	assert.Equal(t, "Hi there", msg.Content)

	view, err := svc.GetSession(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, view.Transcript.Messages, 3)
	assert.False(t, view.Busy)

	require.NoError(t, svc.CloseSession(ctx, created.ID))
	_, err = svc.GetSession(ctx, created.ID)
	assert.ErrorIs(t, err, app_errors.ErrNotFound)
	_, err = svc.SendMessage(ctx, created.ID, "again")
	assert.ErrorIs(t, err, app_errors.ErrNotFound)
}

func TestWidgetService_StreamPlaceholder(t *testing.T) {
	t.Run("Static placeholder yields one frame", func(t *testing.T) {
		svc, _ := setupWidgetService(t, widgetconfig.Defaults())
		created, err := svc.CreateSession(context.Background(), "")
		require.NoError(t, err)

		frames, err := svc.StreamPlaceholder(context.Background(), created.ID)
		require.NoError(t, err)

		var got []model.PlaceholderFrame
		for f := range frames {
			got = append(got, f)
		}
		assert.Equal(t, []model.PlaceholderFrame{{Text: "Ask your question...", Static: true}}, got)
	})

	t.Run("Animated placeholder streams until cancelled", func(t *testing.T) {
		cfg := widgetconfig.Normalize(widgetconfig.Defaults(), model.Options{"inputPlaceholder": []any{"ab", "cd"}})
		svc, _ := setupWidgetService(t, cfg)
		created, err := svc.CreateSession(context.Background(), "")
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		frames, err := svc.StreamPlaceholder(ctx, created.ID)
		require.NoError(t, err)

		first := <-frames
		assert.False(t, first.Static)
		cancel()

		for range frames {
			// Drain until the stream closes.
		}
	})

	t.Run("Closing the session ends the stream", func(t *testing.T) {
		cfg := widgetconfig.Normalize(widgetconfig.Defaults(), model.Options{"inputPlaceholder": `["one","two"]`})
		svc, _ := setupWidgetService(t, cfg)
		created, err := svc.CreateSession(context.Background(), "")
		require.NoError(t, err)

		frames, err := svc.StreamPlaceholder(context.Background(), created.ID)
		require.NoError(t, err)
		<-frames

		require.NoError(t, svc.CloseSession(context.Background(), created.ID))

		done := make(chan struct{})
		go func() {
			for range frames {
			}
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("stream did not end after the session was closed")
		}
	})

	t.Run("Unknown session", func(t *testing.T) {
		svc, _ := setupWidgetService(t, widgetconfig.Defaults())

		_, err := svc.StreamPlaceholder(context.Background(), "missing")
		assert.ErrorIs(t, err, app_errors.ErrNotFound)
	})
}

func TestWidgetService_RenderWidget(t *testing.T) {
	cfg := widgetconfig.Normalize(widgetconfig.Defaults(), model.Options{"botName": "Aria", "inputPlaceholder": `["one","two"]`})
	svc, _ := setupWidgetService(t, cfg)
	created, err := svc.CreateSession(context.Background(), "")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.RenderWidget(context.Background(), created.ID, &buf))

	assert.Contains(t, buf.String(), "Aria")
	assert.Contains(t, buf.String(), "/api/v1/sessions/"+created.ID+"/placeholder")

	assert.ErrorIs(t, svc.RenderWidget(context.Background(), "missing", &buf), app_errors.ErrNotFound)
}
