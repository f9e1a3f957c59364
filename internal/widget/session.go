// Package widget ties configuration, conversation state, placeholder
// animation and dispatch together into isolated widget instances.
package widget

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"echo-widget/internal/conversation"
	"echo-widget/internal/dispatch"
	app_errors "echo-widget/internal/errors"
	"echo-widget/internal/model"
	"echo-widget/internal/placeholder"
)

// ApologyMessage replaces the reply whenever a dispatch fails.
const ApologyMessage = "Sorry, I encountered an error. Please try again."

const defaultPendingInterval = 500 * time.Millisecond

// Observer is told about session activity.
type Observer interface {
	DispatchFinished(outcome string)
	SessionOpened()
	SessionClosed()
}

// Options tune a session. Zero values take defaults.
type Options struct {
	Animator        *placeholder.Animator
	PendingInterval time.Duration // Step of the "." ".." "..." pending animation.
	Observer        Observer
}

// Session is one widget instance. Its configuration is fixed at creation.
type Session struct {
	id       string
	recordID string
	cfg      model.Config
	conv     *conversation.State
	sender   dispatch.Sender
	animator *placeholder.Animator
	observer Observer

	pendingInterval time.Duration
	inFlight        atomic.Bool

	mu         sync.Mutex
	animations map[uint64]func()
	nextAnim   uint64
	closed     bool
	done       chan struct{}
	lastActive time.Time
}

// NewSession creates a session and seeds the transcript with the welcome message.
func NewSession(id, recordID string, cfg model.Config, sender dispatch.Sender, opts Options) *Session {
	if opts.Animator == nil {
		opts.Animator = placeholder.NewAnimator(placeholder.DefaultTimings())
	}
	if opts.PendingInterval <= 0 {
		opts.PendingInterval = defaultPendingInterval
	}
	s := &Session{
		id:              id,
		recordID:        recordID,
		cfg:             cfg,
		conv:            conversation.New(),
		sender:          sender,
		animator:        opts.Animator,
		observer:        opts.Observer,
		pendingInterval: opts.PendingInterval,
		animations:      make(map[uint64]func()),
		done:            make(chan struct{}),
		lastActive:      time.Now(),
	}
	if cfg.WelcomeMessage != "" {
		if _, err := s.conv.Append(model.RoleBot, cfg.WelcomeMessage); err != nil {
			slog.Error("Failed to seed welcome message", "session_id", id, "error", err)
		}
	}
	return s
}

func (s *Session) ID() string           { return s.id }
func (s *Session) RecordID() string     { return s.recordID }
func (s *Session) Config() model.Config { return s.cfg }

// Busy reports whether a dispatch is outstanding.
func (s *Session) Busy() bool { return s.inFlight.Load() }

// History returns the transcript without the pending entry.
func (s *Session) History() []model.Message { return s.conv.History() }

// Transcript returns the transcript including the pending entry.
func (s *Session) Transcript() model.Transcript { return s.conv.Transcript() }

// LastActive returns when the session was created or last sent a message.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Send appends the user's message, dispatches it with the conversation so
// far and appends exactly one terminal bot message: the reply, or
// ApologyMessage on any failure. It returns ErrConflict while another send is
// outstanding and ErrValidation for blank input. Failures of the webhook are
// not returned; they are logged and turned into the apology.
func (s *Session) Send(ctx context.Context, text string) (model.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Message{}, fmt.Errorf("%w: message is empty", app_errors.ErrValidation)
	}
	if !s.inFlight.CompareAndSwap(false, true) {
		return model.Message{}, fmt.Errorf("%w: a message is already being sent", app_errors.ErrConflict)
	}
	defer s.inFlight.Store(false)

	s.touch()
	if _, err := s.conv.Append(model.RoleUser, text); err != nil {
		return model.Message{}, err
	}

	stopDots := s.showPending()
	var cleanupOnce sync.Once
	cleanup := func() {
		cleanupOnce.Do(func() {
			stopDots()
			if !s.conv.ClearPending() {
				slog.Warn("Pending indicator was already gone", "session_id", s.id)
			}
		})
	}
	defer cleanup()

	result := s.sender.Send(ctx, text, s.conv.History(), s.cfg.WebhookURL, s.recordID)
	cleanup()

	if !result.OK() {
		slog.Warn("Dispatch failed", "session_id", s.id, "reason", result.Failure.Reason, "error", result.Failure)
		s.observe(string(result.Failure.Reason))
		return s.conv.AppendError(ApologyMessage)
	}
	s.observe("ok")
	return s.conv.Append(model.RoleBot, result.Reply)
}

// showPending puts up the pending entry and animates it. The returned stop
// function is safe to call more than once.
func (s *Session) showPending() func() {
	if err := s.conv.SetPending("."); err != nil {
		slog.Warn("Could not show pending indicator", "session_id", s.id, "error", err)
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(s.pendingInterval)
		defer ticker.Stop()
		dots := 1
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				dots = dots%3 + 1
				_ = s.conv.UpdatePending(strings.Repeat(".", dots))
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			<-done
		})
	}
}

// StartPlaceholder animates the configured placeholder candidates, calling
// onFrame with each frame until stop or Close is called. It returns
// placeholder.ErrNoCandidates when the placeholder is a single static string.
// onFrame must not call stop or Close itself; both wait for the animation.
func (s *Session) StartPlaceholder(onFrame func(string)) (func(), error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: session is closed", app_errors.ErrNotFound)
	}
	s.mu.Unlock()

	if !s.cfg.InputPlaceholder.Animated() {
		return nil, placeholder.ErrNoCandidates
	}
	cancel, err := s.animator.Start(s.cfg.InputPlaceholder.Candidates, onFrame)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		cancel()
		return nil, fmt.Errorf("%w: session is closed", app_errors.ErrNotFound)
	}
	key := s.nextAnim
	s.nextAnim++
	s.animations[key] = cancel
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.animations, key)
			s.mu.Unlock()
			cancel()
		})
	}, nil
}

// Close tears the session down and cancels every running animation. It is
// safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.done)
	cancels := make([]func(), 0, len(s.animations))
	for key, cancel := range s.animations {
		cancels = append(cancels, cancel)
		delete(s.animations, key)
	}
	s.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
}

// Done is closed once the session has been closed.
func (s *Session) Done() <-chan struct{} { return s.done }

func (s *Session) touch() {
	s.mu.Lock()
	s.lastActive = time.Now()
	s.mu.Unlock()
}

func (s *Session) observe(outcome string) {
	if s.observer != nil {
		s.observer.DispatchFinished(outcome)
	}
}
