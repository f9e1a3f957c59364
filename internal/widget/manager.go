package widget

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"echo-widget/internal/brandconfig"
	"echo-widget/internal/dispatch"
	app_errors "echo-widget/internal/errors"
	"echo-widget/internal/model"
)

// ConfigResolver produces the configuration of a new instance.
type ConfigResolver interface {
	Resolve(ctx context.Context, recordID string) (model.Config, brandconfig.Source)
}

// Manager keeps the open widget instances. Instances share nothing but the
// resolver and the sender.
type Manager struct {
	resolver ConfigResolver
	sender   dispatch.Sender
	opts     Options

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates an empty Manager.
func NewManager(resolver ConfigResolver, sender dispatch.Sender, opts Options) *Manager {
	return &Manager{
		resolver: resolver,
		sender:   sender,
		opts:     opts,
		sessions: make(map[string]*Session),
	}
}

// Create resolves the configuration for recordID and opens a new instance.
func (m *Manager) Create(ctx context.Context, recordID string) (*Session, error) {
	cfg, source := m.resolver.Resolve(ctx, recordID)
	s := NewSession(uuid.NewString(), recordID, cfg, m.sender, m.opts)

	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()

	if m.opts.Observer != nil {
		m.opts.Observer.SessionOpened()
	}
	slog.Info("Opened widget session", "session_id", s.ID(), "record_id", recordID, "config_source", source)
	return s, nil
}

// Get returns the instance with the given id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: session %s", app_errors.ErrNotFound, id)
	}
	return s, nil
}

// Close tears down and forgets the instance with the given id.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: session %s", app_errors.ErrNotFound, id)
	}
	m.closeSession(s)
	return nil
}

// Reap closes instances that have been idle for longer than idle and are not
// waiting on a dispatch. It returns how many were closed.
func (m *Manager) Reap(idle time.Duration) int {
	cutoff := time.Now().Add(-idle)

	m.mu.Lock()
	var stale []*Session
	for id, s := range m.sessions {
		if !s.Busy() && s.LastActive().Before(cutoff) {
			stale = append(stale, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range stale {
		m.closeSession(s)
	}
	return len(stale)
}

// CloseAll tears down every instance.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	all := make([]*Session, 0, len(m.sessions))
	for id, s := range m.sessions {
		all = append(all, s)
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	for _, s := range all {
		m.closeSession(s)
	}
}

// Len returns the number of open instances.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) closeSession(s *Session) {
	s.Close()
	if m.opts.Observer != nil {
		m.opts.Observer.SessionClosed()
	}
	slog.Debug("Closed widget session", "session_id", s.ID())
}
