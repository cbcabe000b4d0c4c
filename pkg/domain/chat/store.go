package chat

import (
	"sync"
	"time"

	"github.com/felixgeelhaar/agenthub/pkg/domain/planning"
)

// Store is the append-only message log of one chat session plus the
// session's current plan. Append order is display order is chronological
// order; nothing already appended is reordered or changed.
type Store struct {
	mu       sync.RWMutex
	messages []Message
	plan     *planning.AgentPlan
	lastID   MessageID
	now      func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{now: time.Now}
}

// NewStoreWithClock creates an empty store with an injected clock.
func NewStoreWithClock(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{now: now}
}

// Append assigns the next ID and a timestamp to msg, stores it and returns
// the stored copy.
func (s *Store) Append(msg Message) Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendLocked(msg)
}

func (s *Store) appendLocked(msg Message) Message {
	s.lastID++
	msg = msg.Clone()
	msg.ID = s.lastID
	msg.CreatedAt = s.now()
	s.messages = append(s.messages, msg)
	return msg.Clone()
}

// SetPlan replaces the current plan wholesale.
func (s *Store) SetPlan(plan planning.AgentPlan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := plan.Clone()
	s.plan = &p
}

// Commit appends msg and, if plan is non-nil, installs it as the current
// plan in the same critical section. Readers never observe the message
// without its plan or the plan before its message.
func (s *Store) Commit(msg Message, plan *planning.AgentPlan) Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	if plan != nil {
		p := plan.Clone()
		s.plan = &p
	}
	return s.appendLocked(msg)
}

// Clear removes every message and the plan. IDs keep increasing afterwards
// so an ID is never reused within the store's lifetime.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
	s.plan = nil
}

// Messages returns a copy of the ordered message sequence.
func (s *Store) Messages() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Message, len(s.messages))
	for i, m := range s.messages {
		out[i] = m.Clone()
	}
	return out
}

// Last returns the most recent message.
func (s *Store) Last() (Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.messages) == 0 {
		return Message{}, false
	}
	return s.messages[len(s.messages)-1].Clone(), true
}

// Get returns the message with the given ID.
func (s *Store) Get(id MessageID) (Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.messages {
		if m.ID == id {
			return m.Clone(), true
		}
	}
	return Message{}, false
}

// Plan returns the current plan, if any.
func (s *Store) Plan() (planning.AgentPlan, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.plan == nil {
		return planning.AgentPlan{}, false
	}
	return s.plan.Clone(), true
}

// Len returns the number of messages.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// Snapshot returns messages and plan read under one lock.
func (s *Store) Snapshot() ([]Message, *planning.AgentPlan) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := make([]Message, len(s.messages))
	for i, m := range s.messages {
		msgs[i] = m.Clone()
	}
	if s.plan == nil {
		return msgs, nil
	}
	p := s.plan.Clone()
	return msgs, &p
}
