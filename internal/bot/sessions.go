package bot

import "sync"

// Sessions holds the active drafts keyed by applicant id.
type Sessions struct {
	mu     sync.Mutex
	drafts map[int64]*Draft
}

func NewSessions() *Sessions {
	return &Sessions{
		drafts: make(map[int64]*Draft),
	}
}

// Start replaces any existing draft of userID with a fresh one.
func (s *Sessions) Start(userID int64) *Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft := NewDraft()
	s.drafts[userID] = draft

	return draft
}

func (s *Sessions) Get(userID int64) (*Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, ok := s.drafts[userID]
	return draft, ok
}

func (s *Sessions) Destroy(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.drafts, userID)
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.drafts)
}
