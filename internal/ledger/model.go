package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

type Direction string

const (
	Deposit  Direction = "deposit"
	Withdraw Direction = "withdraw"
)

// Transaction is append-only. Once written it is never updated or deleted.
// Date is the user-supplied calendar day (ISO YYYY-MM-DD, sorts lexically);
// CreatedAt is the server insertion instant.
type Transaction struct {
	ID          uint64          `gorm:"primaryKey"`
	UserID      uint64          `gorm:"index;not null"`
	Direction   Direction       `gorm:"type:text;not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Description string          `gorm:"type:text;not null;default:''"`
	Date        string          `gorm:"type:text;not null"`
	CreatedAt   time.Time       `gorm:"not null;default:now()"`
}

// signed is the transaction's effect on balance.
func (t Transaction) signed() decimal.Decimal {
	if t.Direction == Withdraw {
		return t.Amount.Neg()
	}
	return t.Amount
}
