// Package conversation holds the ordered transcript of one widget instance
// and its transient pending indicator.
package conversation

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	app_errors "echo-widget/internal/errors"
	"echo-widget/internal/model"
)

// State is an append-only transcript plus at most one pending entry. It is
// safe for concurrent use.
type State struct {
	mu       sync.RWMutex
	messages []model.Message
	pending  *model.Message
	now      func() time.Time
}

// New returns an empty conversation.
func New() *State {
	return &State{now: time.Now}
}

// Append adds a message to the end of the transcript.
func (s *State) Append(role model.Role, content string) (model.Message, error) {
	return s.append(model.Message{Role: role, Content: content})
}

// AppendError adds the bot message shown after a failed dispatch.
func (s *State) AppendError(content string) (model.Message, error) {
	return s.append(model.Message{Role: model.RoleBot, Content: content, Error: true})
}

func (s *State) append(msg model.Message) (model.Message, error) {
	if !msg.Role.Valid() {
		return model.Message{}, fmt.Errorf("%w: unknown role %q", app_errors.ErrValidation, msg.Role)
	}
	msg.ID = uuid.NewString()
	msg.Timestamp = s.now()

	s.mu.Lock()
	s.messages = append(s.messages, msg)
	s.mu.Unlock()
	return msg, nil
}

// History returns a copy of the transcript in insertion order. The pending
// entry is never part of it.
func (s *State) History() []model.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of messages in the transcript.
func (s *State) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// SetPending shows a pending bot entry. It fails with ErrInvalidState when
// one is already active.
func (s *State) SetPending(content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil {
		return fmt.Errorf("%w: a pending entry is already active", app_errors.ErrInvalidState)
	}
	s.pending = &model.Message{
		ID:        uuid.NewString(),
		Role:      model.RoleBot,
		Content:   content,
		Timestamp: s.now(),
	}
	return nil
}

// UpdatePending replaces the content of the active pending entry.
func (s *State) UpdatePending(content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return fmt.Errorf("%w: no pending entry", app_errors.ErrInvalidState)
	}
	s.pending.Content = content
	return nil
}

// ClearPending removes the pending entry and reports whether there was one.
func (s *State) ClearPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	had := s.pending != nil
	s.pending = nil
	return had
}

// Pending returns a copy of the pending entry, if any.
func (s *State) Pending() (model.Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.pending == nil {
		return model.Message{}, false
	}
	return *s.pending, true
}

// Transcript returns everything a renderer needs, including the pending entry.
func (s *State) Transcript() model.Transcript {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t := model.Transcript{Messages: make([]model.Message, len(s.messages))}
	copy(t.Messages, s.messages)
	if s.pending != nil {
		p := *s.pending
		t.Pending = &p
	}
	return t
}
