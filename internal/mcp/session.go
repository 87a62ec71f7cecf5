package mcp

import (
	"sync"
)

// Session binds an open SSE stream to the side channel used to deliver
// requests destined for it. The outbound queue is unbounded: a stalled
// client grows it without backpressure, which is an accepted trade-off
// for this single-process scope.
type Session struct {
	ID string

	mu     sync.Mutex
	queue  [][]byte
	closed bool

	notify chan struct{}
}

func NewSession(id string) *Session {
	return &Session{
		ID:     id,
		notify: make(chan struct{}, 1),
	}
}

// Push queues one serialized message for delivery on the stream. It never
// blocks; messages pushed after Close are dropped.
func (s *Session) Push(b []byte) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.queue = append(s.queue, b)
	s.mu.Unlock()

	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// Ready signals when queued messages await delivery.
func (s *Session) Ready() <-chan struct{} {
	return s.notify
}

// Drain returns and clears everything queued so far.
func (s *Session) Drain() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := s.queue
	s.queue = nil
	return q
}

// Close marks the session dead so late pushes are dropped instead of
// accumulating against a stream nobody reads.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.queue = nil
}

// SessionTable maps session ids to live sessions. Stream-open inserts under
// the write lock; message-post lookups take the read lock, so concurrent
// posts to different sessions do not serialize.
type SessionTable struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionTable() *SessionTable {
	return &SessionTable{
		sessions: make(map[string]*Session),
	}
}

func (t *SessionTable) Add(s *Session) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sessions[s.ID] = s
}

func (t *SessionTable) Get(id string) *Session {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.sessions[id]
}

func (t *SessionTable) Remove(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.sessions, id)
}

func (t *SessionTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.sessions)
}
