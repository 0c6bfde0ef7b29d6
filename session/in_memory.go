package session

import (
	"sync"

	"github.com/hupe1980/agentdesk/core"
	"github.com/hupe1980/agentdesk/logging"
)

// Store resolves the run context of a session.
type Store interface {
	Get(sessionID string) (*core.RunContext, error)
	Create(sessionID string) (*core.RunContext, error)
	Delete(sessionID string) error
}

// Options configures an InMemoryStore.
type Options struct {
	// Logger is attached to every run context the store creates.
	Logger logging.Logger
}

// InMemoryStore is a volatile Store keeping run contexts in a process local
// map. It is safe for concurrent access. The same *core.RunContext is
// returned for every Get of a session, so conversation mutations are shared.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*core.RunContext
	logger   logging.Logger
}

// NewInMemoryStore constructs an empty in-memory session store.
func NewInMemoryStore(optFns ...func(o *Options)) *InMemoryStore {
	opts := Options{Logger: logging.NoOpLogger{}}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &InMemoryStore{
		sessions: make(map[string]*core.RunContext),
		logger:   logging.OrNoOp(opts.Logger),
	}
}

// Get returns the run context of a session, creating it lazily. An empty id
// creates a session with a generated id.
func (s *InMemoryStore) Get(sessionID string) (*core.RunContext, error) {
	if sessionID != "" {
		s.mu.RLock()
		rc, ok := s.sessions[sessionID]
		s.mu.RUnlock()

		if ok {
			return rc, nil
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// re-check; another goroutine may have created it
	if rc, ok := s.sessions[sessionID]; ok {
		return rc, nil
	}

	return s.createLocked(sessionID), nil
}

// Create forces the creation (or overwriting) of a session with the given id.
func (s *InMemoryStore) Create(sessionID string) (*core.RunContext, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.createLocked(sessionID), nil
}

// Delete removes a session. Deleting an unknown session is a no-op.
func (s *InMemoryStore) Delete(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)

	return nil
}

// Len returns the number of stored sessions.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}

// createLocked allocates and stores a new run context; caller must already
// hold the write lock.
func (s *InMemoryStore) createLocked(sessionID string) *core.RunContext {
	rc := core.NewRunContext(sessionID, nil, s.logger)
	s.sessions[rc.SessionID] = rc

	s.logger.Debug("session.created", "session_id", rc.SessionID)

	return rc
}
