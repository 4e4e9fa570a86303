package db

import (
	"fmt"

	"finbook/internal/auth"
	"finbook/internal/ledger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return gdb, nil
}

func AutoMigrateAndIndexes(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&auth.User{},
		&ledger.Transaction{},
	); err != nil {
		return err
	}

	// Read path for balance and the cumulative series.
	stmts := []string{
		`create index if not exists idx_tx_user_date on transactions(user_id, date, id);`,
	}
	for _, s := range stmts {
		if err := gdb.Exec(s).Error; err != nil {
			return fmt.Errorf("index exec failed: %w (sql=%s)", err, s)
		}
	}

	return nil
}
