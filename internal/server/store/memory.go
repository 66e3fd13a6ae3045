package store

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/gatekeeper/internal/common"
	"github.com/dmitrijs2005/gatekeeper/internal/server/models"
)

// MemoryStore keeps users in a map. It is safe for concurrent use and never
// reports the store as unavailable.
type MemoryStore struct {
	mu     sync.RWMutex
	users  map[string]models.User
	nextID int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]models.User)}
}

// Put stores u, replacing any record with the same identifier. A zero ID is
// assigned the next free one.
func (s *MemoryStore) Put(u models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.put(u)
}

func (s *MemoryStore) put(u models.User) models.User {
	if u.ID == 0 {
		s.nextID++
		u.ID = s.nextID
	} else if u.ID > s.nextID {
		s.nextID = u.ID
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	s.users[u.Identifier] = u
	return u
}

func (s *MemoryStore) Lookup(_ context.Context, identifier string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[identifier]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Provision(_ context.Context, users []models.User) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := 0
	for _, u := range users {
		if _, ok := s.users[u.Identifier]; ok {
			continue
		}
		s.put(u)
		created++
	}
	return created, nil
}

func (s *MemoryStore) Close() error { return nil }
