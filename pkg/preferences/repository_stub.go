package preferences

import (
	"context"
	"sync"
)

type RepositoryStub struct {
	mu    sync.Mutex
	prefs map[string]UserPreferences
	reads int
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{prefs: make(map[string]UserPreferences)}
}

func (s *RepositoryStub) GetUserPreferences(ctx context.Context, userId string) (UserPreferences, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	p, ok := s.prefs[userId]
	return p, ok, nil
}

func (s *RepositoryStub) UpsertUserPreferences(ctx context.Context, userId string, prefs UserPreferences) (UserPreferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs[userId] = prefs
	return prefs, nil
}

// Reads counts GetUserPreferences calls, so tests can tell cached answers apart.
func (s *RepositoryStub) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

func (s *RepositoryStub) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs = make(map[string]UserPreferences)
	s.reads = 0
}
