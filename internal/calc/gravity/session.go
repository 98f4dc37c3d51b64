package gravity

import "sync"

// Session is the list of samples a user has entered so far. It lives in
// memory only.
type Session struct {
	mu      sync.Mutex
	samples []FormInput
}

// Add appends a sample and returns the new length.
func (s *Session) Add(f FormInput) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.samples = append(s.samples, f)
	return len(s.samples)
}

func (s *Session) Samples() []FormInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]FormInput, len(s.samples))
	copy(out, s.samples)
	return out
}

func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.samples = nil
}

// Sessions keeps one Session per user. A user's entry exists from the first
// sample until the list is cleared.
type Sessions struct {
	mu     sync.Mutex
	byUser map[int]*Session
}

func NewSessions() *Sessions {
	return &Sessions{byUser: make(map[int]*Session)}
}

func (s *Sessions) For(userID int) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byUser[userID]
	if !ok {
		sess = &Session{}
		s.byUser[userID] = sess
	}
	return sess
}

// Samples returns a copy of the user's list without creating a session.
func (s *Sessions) Samples(userID int) []FormInput {
	s.mu.Lock()
	sess, ok := s.byUser[userID]
	s.mu.Unlock()
	if !ok {
		return nil
	}
	return sess.Samples()
}

// Clear empties the user's list and forgets the user.
func (s *Sessions) Clear(userID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.byUser[userID]; ok {
		sess.Clear()
		delete(s.byUser, userID)
	}
}

// Len is the number of users with a session.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byUser)
}
