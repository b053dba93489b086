package identity

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"animetracker/internal/domain"
)

// Identity is the signed-in user. The zero value is a guest.
type Identity struct {
	UserID string
	Token  string
}

func (i Identity) Guest() bool {
	return i.UserID == ""
}

// Session holds the current identity and tells subscribers when it changes.
type Session struct {
	mu          sync.Mutex
	current     Identity
	subscribers map[int]func(Identity)
	nextID      int
}

func NewSession() *Session {
	return &Session{subscribers: make(map[int]func(Identity))}
}

func (s *Session) Current() Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Session) SignIn(id Identity) error {
	id.UserID = strings.TrimSpace(id.UserID)
	if id.UserID == "" {
		return fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	s.set(id)
	return nil
}

func (s *Session) SignOut() {
	s.set(Identity{})
}

// Subscribe registers fn for identity changes. fn runs synchronously on the
// goroutine that changed the identity. The returned func unsubscribes.
func (s *Session) Subscribe(fn func(Identity)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *Session) set(id Identity) {
	s.mu.Lock()
	if s.current == id {
		s.mu.Unlock()
		return
	}
	s.current = id

	ids := make([]int, 0, len(s.subscribers))
	for k := range s.subscribers {
		ids = append(ids, k)
	}
	subs := make([]func(Identity), 0, len(ids))
	slices.Sort(ids)
	for _, k := range ids {
		subs = append(subs, s.subscribers[k])
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(id)
	}
}
