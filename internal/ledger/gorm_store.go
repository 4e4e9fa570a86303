package ledger

import (
	"context"
	"sync"

	"gorm.io/gorm"
)

// GormStore persists the log in Postgres. Writes are serialized by the mutex;
// max+1 id allocation is only safe inside that critical section.
type GormStore struct {
	DB *gorm.DB

	mu sync.Mutex
}

func (s *GormStore) Append(ctx context.Context, t *Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxID uint64
		if err := tx.Model(&Transaction{}).Select("coalesce(max(id), 0)").Scan(&maxID).Error; err != nil {
			return err
		}
		t.ID = maxID + 1
		return tx.Create(t).Error
	})
}

func (s *GormStore) ForUser(ctx context.Context, userID uint64) ([]Transaction, error) {
	var txs []Transaction
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date asc, id asc").
		Find(&txs).Error
	if err != nil {
		return nil, err
	}
	return txs, nil
}
