// Package session holds the in-memory session table: consent flags plus the
// append-only message transcript, keyed by session id.
package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sjsu-mhc/concierge/internal/model/chat"
)

var ErrSessionNotFound = errors.New("session not found")

// entry is the per-session record. Each entry carries its own mutex so
// operations on distinct sessions never contend; same-session operations
// serialize here, which is what keeps transcripts free of interleaved writes.
type entry struct {
	mu           sync.Mutex
	session      chat.Session
	messages     []chat.Message
	lastActivity time.Time
}

// Store is the in-memory session table. The outer lock only guards the map
// itself; all record state is guarded by the entry lock.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

// NewStore bootstraps an empty session table.
func NewStore() *Store {
	return &Store{entries: make(map[string]*entry)}
}

// Create provisions a fresh session with consent withheld. It never fails.
func (s *Store) Create(_ context.Context) chat.Session {
	now := time.Now().UTC()
	session := chat.Session{
		ID:           uuid.NewString(),
		ConsentGiven: false,
		CreatedAt:    now,
		LastActivity: now,
	}

	s.mu.Lock()
	s.entries[session.ID] = &entry{
		session:      session,
		messages:     make([]chat.Message, 0, 16),
		lastActivity: now,
	}
	s.mu.Unlock()

	return session
}

// SetConsent records or withdraws consent for a session.
func (s *Store) SetConsent(_ context.Context, sessionID string, given bool) (chat.Session, error) {
	e, ok := s.lookup(sessionID)
	if !ok {
		return chat.Session{}, ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now := time.Now().UTC()
	e.session.ConsentGiven = given
	e.session.ConsentTimestamp = &now
	e.session.LastActivity = now
	e.lastActivity = now
	return e.session, nil
}

// Consent reports the consent flag and whether a record exists at all.
// A missing session reads as consent withheld, not as an error.
func (s *Store) Consent(_ context.Context, sessionID string) (given bool, exists bool) {
	e, ok := s.lookup(sessionID)
	if !ok {
		return false, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.ConsentGiven, true
}

// AppendMessage appends to the end of the session transcript, assigning the
// message id and timestamp when absent.
func (s *Store) AppendMessage(_ context.Context, sessionID string, message chat.Message) (chat.Message, error) {
	e, ok := s.lookup(sessionID)
	if !ok {
		return chat.Message{}, ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if message.ID == "" {
		message.ID = uuid.NewString()
	}
	message.SessionID = sessionID
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now().UTC()
	}

	e.messages = append(e.messages, message)
	e.session.LastActivity = time.Now().UTC()
	e.lastActivity = e.session.LastActivity
	return message, nil
}

// History returns a copy of the transcript in append order.
func (s *Store) History(_ context.Context, sessionID string) ([]chat.Message, error) {
	e, ok := s.lookup(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	copied := make([]chat.Message, len(e.messages))
	copy(copied, e.messages)
	return copied, nil
}

// MessageCount returns the transcript length.
func (s *Store) MessageCount(_ context.Context, sessionID string) (int, error) {
	e, ok := s.lookup(sessionID)
	if !ok {
		return 0, ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.messages), nil
}

// Delete removes a session and its transcript, reporting whether it existed.
func (s *Store) Delete(_ context.Context, sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[sessionID]; !ok {
		return false
	}
	delete(s.entries, sessionID)
	return true
}

// Count returns the number of live sessions.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// StartSweeper evicts sessions idle longer than ttl, checking every interval,
// until ctx is cancelled. A non-positive ttl disables eviction entirely.
func (s *Store) StartSweeper(ctx context.Context, ttl, interval time.Duration) {
	if ttl <= 0 {
		return
	}
	if interval <= 0 {
		interval = time.Minute
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if evicted := s.sweep(ttl); evicted > 0 {
					log.Printf("[session] evicted %d idle sessions", evicted)
				}
			}
		}
	}()
}

func (s *Store) sweep(ttl time.Duration) int {
	cutoff := time.Now().UTC().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, e := range s.entries {
		e.mu.Lock()
		idle := e.lastActivity.Before(cutoff)
		e.mu.Unlock()
		if idle {
			delete(s.entries, id)
			evicted++
		}
	}
	return evicted
}

func (s *Store) lookup(sessionID string) (*entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[sessionID]
	return e, ok
}
