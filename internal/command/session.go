package command

import "sync"

// Session holds the process-wide chat state: who declared themselves
// home (and where), and the correct answer of the most recent trivia
// question. All of it is lost on restart. Every access goes through
// the lock; handlers never touch the maps directly.
type Session struct {
	mu       sync.Mutex
	presence map[string][]string
	answer   string
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{presence: make(map[string][]string)}
}

// SetPresence declares user as present with the given location tags.
func (s *Session) SetPresence(user string, tags []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.presence[user] = append([]string(nil), tags...)
}

// ClearPresence removes user from the presence map.
func (s *Session) ClearPresence(user string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.presence, user)
}

// Presence returns a copy of the presence map.
func (s *Session) Presence() map[string][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string][]string, len(s.presence))
	for user, tags := range s.presence {
		out[user] = append([]string(nil), tags...)
	}
	return out
}

// SetAnswer stores the correct answer of a new trivia question,
// overwriting any unsolved one.
func (s *Session) SetAnswer(answer string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answer = answer
}

// TakeAnswer returns the pending answer and clears the slot. The
// second result is false when no question is pending.
func (s *Session) TakeAnswer() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.answer == "" {
		return "", false
	}
	a := s.answer
	s.answer = ""
	return a, true
}
