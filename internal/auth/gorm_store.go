package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"
)

// GormStore persists users in Postgres. The mutex serializes writes so that
// max+1 id allocation cannot race between concurrent registrations.
type GormStore struct {
	DB *gorm.DB

	mu sync.Mutex
}

func (s *GormStore) Register(ctx context.Context, name, email, password string) (*User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Email:        normalizeEmail(email),
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&User{}).Where("email = ?", u.Email).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrEmailTaken
		}

		var maxID uint64
		if err := tx.Model(&User{}).Select("coalesce(max(id), 0)").Scan(&maxID).Error; err != nil {
			return err
		}
		u.ID = maxID + 1

		return tx.Create(u).Error
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *GormStore) Authenticate(ctx context.Context, email, password string) (*User, error) {
	var u User
	err := s.DB.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Burn a verification anyway so a missing email costs the same
			// as a wrong password.
			ComparePassword(dummyHash, password)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !ComparePassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

func (s *GormStore) Lookup(ctx context.Context, id uint64) (*User, error) {
	var u User
	err := s.DB.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

var dummyHash = mustDummyHash()

func mustDummyHash() string {
	h, err := HashPassword("finbook-dummy-credential")
	if err != nil {
		panic(err)
	}
	return h
}
