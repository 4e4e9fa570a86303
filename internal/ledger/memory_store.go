package ledger

import (
	"context"
	"sort"
	"sync"
)

// MemStore is an in-memory Store with the same contract as GormStore.
type MemStore struct {
	mu  sync.Mutex
	log []Transaction
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Append(ctx context.Context, t *Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var maxID uint64
	for _, x := range s.log {
		if x.ID > maxID {
			maxID = x.ID
		}
	}
	t.ID = maxID + 1
	s.log = append(s.log, *t)
	return nil
}

func (s *MemStore) ForUser(ctx context.Context, userID uint64) ([]Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Transaction, 0)
	for _, t := range s.log {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
