package auth

import (
	"context"
	"sync"
	"time"
)

// MemStore is an in-memory Store with the same semantics as GormStore.
// It backs tests and local runs without a database.
type MemStore struct {
	mu    sync.Mutex
	users []User
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Register(ctx context.Context, name, email, password string) (*User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	email = normalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	var maxID uint64
	for _, u := range s.users {
		if u.Email == email {
			return nil, ErrEmailTaken
		}
		if u.ID > maxID {
			maxID = u.ID
		}
	}

	u := User{
		ID:           maxID + 1,
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	s.users = append(s.users, u)
	return &u, nil
}

func (s *MemStore) Authenticate(ctx context.Context, email, password string) (*User, error) {
	email = normalizeEmail(email)

	s.mu.Lock()
	var found *User
	for i := range s.users {
		if s.users[i].Email == email {
			u := s.users[i]
			found = &u
			break
		}
	}
	s.mu.Unlock()

	if found == nil {
		ComparePassword(dummyHash, password)
		return nil, ErrInvalidCredentials
	}
	if !ComparePassword(found.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return found, nil
}

func (s *MemStore) Lookup(ctx context.Context, id uint64) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == id {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}
