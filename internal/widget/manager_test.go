package widget_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"echo-widget/internal/brandconfig"
	"echo-widget/internal/dispatch"
	"echo-widget/internal/dispatch/mocks"
	app_errors "echo-widget/internal/errors"
	"echo-widget/internal/model"
	"echo-widget/internal/widget"
	"echo-widget/internal/widgetconfig"
)

type stubResolver struct {
	configs map[string]model.Config
}

func (r stubResolver) Resolve(_ context.Context, recordID string) (model.Config, brandconfig.Source) {
	if cfg, ok := r.configs[recordID]; ok {
		return cfg, brandconfig.SourceRemote
	}
	return widgetconfig.Defaults(), brandconfig.SourceDefault
}

type countingObserver struct {
	opened, closed atomic.Int32
	outcomes       chan string
}

func (o *countingObserver) DispatchFinished(outcome string) { o.outcomes <- outcome }
func (o *countingObserver) SessionOpened()                  { o.opened.Add(1) }
func (o *countingObserver) SessionClosed()                  { o.closed.Add(1) }

func TestManager_Lifecycle(t *testing.T) {
	ctx := context.Background()
	observer := &countingObserver{outcomes: make(chan string, 10)}
	m := widget.NewManager(stubResolver{}, mocks.NewMockSender(t), widget.Options{Observer: observer})

	s, err := m.Create(ctx, "")
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID())
	assert.Equal(t, 1, m.Len())

	got, err := m.Get(s.ID())
	require.NoError(t, err)
	assert.Same(t, s, got)

	require.NoError(t, m.Close(s.ID()))
	assert.Equal(t, 0, m.Len())

	_, err = m.Get(s.ID())
	assert.ErrorIs(t, err, app_errors.ErrNotFound)
	assert.ErrorIs(t, m.Close(s.ID()), app_errors.ErrNotFound)

	assert.Equal(t, int32(1), observer.opened.Load())
	assert.Equal(t, int32(1), observer.closed.Load())
}

func TestManager_InstancesAreIsolated(t *testing.T) {
	ctx := context.Background()
	branded := widgetconfig.Normalize(widgetconfig.Defaults(), model.Options{"botName": "Aria", "primaryColor": "#112233"})
	sender := mocks.NewMockSender(t)
	observer := &countingObserver{outcomes: make(chan string, 10)}
	m := widget.NewManager(stubResolver{configs: map[string]model.Config{"brand-a": branded}}, sender, widget.Options{Observer: observer})

	a, err := m.Create(ctx, "brand-a")
	require.NoError(t, err)
	b, err := m.Create(ctx, "")
	require.NoError(t, err)

	sender.On("Send", mock.Anything, "hello", mock.Anything, mock.Anything, "brand-a").
		Return(dispatch.Result{Reply: "hi from a"}).Once()

	_, err = a.Send(ctx, "hello")
	require.NoError(t, err)

	assert.Equal(t, "Aria", a.Config().BotName)
	assert.Equal(t, "Echo Bot", b.Config().BotName)
	assert.Len(t, a.History(), 3)
	assert.Len(t, b.History(), 1)
	assert.Equal(t, "ok", <-observer.outcomes)
}

func TestManager_Reap(t *testing.T) {
	ctx := context.Background()
	m := widget.NewManager(stubResolver{}, mocks.NewMockSender(t), widget.Options{})

	_, err := m.Create(ctx, "")
	require.NoError(t, err)
	_, err = m.Create(ctx, "")
	require.NoError(t, err)

	assert.Equal(t, 0, m.Reap(time.Hour), "fresh sessions are kept")
	assert.Equal(t, 2, m.Len())

	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, 2, m.Reap(time.Millisecond))
	assert.Equal(t, 0, m.Len())
}

func TestManager_ReapSkipsBusySessions(t *testing.T) {
	ctx := context.Background()
	sender := newBlockingSender()
	m := widget.NewManager(stubResolver{}, sender, widget.Options{})

	s, err := m.Create(ctx, "")
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = s.Send(ctx, "hi")
	}()
	<-sender.started
	time.Sleep(5 * time.Millisecond)

	assert.Equal(t, 0, m.Reap(time.Millisecond))
	assert.Equal(t, 1, m.Len())

	close(sender.release)
	<-done
	m.CloseAll()
	assert.Equal(t, 0, m.Len())
}
