package conversation

import (
	"context"
	"sync"
	"time"
)

const (
	defaultMaxHistory = 20
	defaultSessionTTL = 24 * time.Hour
)

type session struct {
	messages []ChatMessage
	lastSeen time.Time
}

// SessionStore keeps a rolling per-session conversation history in memory.
// History is capped at maxHistory entries and sessions idle past the TTL are
// dropped by the sweeper.
type SessionStore struct {
	mu         sync.RWMutex
	sessions   map[string]*session
	maxHistory int
	ttl        time.Duration
	now        func() time.Time
}

// NewSessionStore creates a session store. Non-positive arguments fall back
// to the defaults (20 entries, 24h TTL).
func NewSessionStore(maxHistory int, ttl time.Duration) *SessionStore {
	if maxHistory <= 0 {
		maxHistory = defaultMaxHistory
	}
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStore{
		sessions:   make(map[string]*session),
		maxHistory: maxHistory,
		ttl:        ttl,
		now:        time.Now,
	}
}

// History returns a copy of the session's messages, oldest first. Unknown
// sessions yield an empty history.
func (s *SessionStore) History(sessionID string) []ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	out := make([]ChatMessage, len(sess.messages))
	copy(out, sess.messages)
	return out
}

// RecordTurn appends a user/assistant exchange and trims the history to the
// newest maxHistory entries.
func (s *SessionStore) RecordTurn(sessionID, userText, assistantText string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &session{}
		s.sessions[sessionID] = sess
	}

	sess.messages = append(sess.messages,
		ChatMessage{Role: ChatRoleUser, Content: userText},
		ChatMessage{Role: ChatRoleAssistant, Content: assistantText},
	)
	if len(sess.messages) > s.maxHistory {
		sess.messages = sess.messages[len(sess.messages)-s.maxHistory:]
	}
	sess.lastSeen = s.now()
}

// Touch refreshes a session's idle timer without recording a turn.
func (s *SessionStore) Touch(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[sessionID]; ok {
		sess.lastSeen = s.now()
	}
}

// ActiveSessions returns the number of sessions currently held.
func (s *SessionStore) ActiveSessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// StartSweeper evicts idle sessions every interval until ctx is cancelled.
func (s *SessionStore) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep()
			}
		}
	}()
}

func (s *SessionStore) sweep() {
	cutoff := s.now().Add(-s.ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}
