package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const dateFormat = "2006-01-02"

// Store holds the append-only transaction log. Append allocates the
// transaction id (max across the whole ledger + 1) inside its write-critical
// section and persists atomically. ForUser returns one user's transactions
// sorted by date ascending, ties broken by id ascending.
type Store interface {
	Append(ctx context.Context, t *Transaction) error
	ForUser(ctx context.Context, userID uint64) ([]Transaction, error)
}

type Service struct {
	Store Store
}

type AppendInput struct {
	Direction   string
	Amount      string
	Description string
	Date        string
}

type Summary struct {
	Balance decimal.Decimal
	Count   int
}

type Series struct {
	Labels []string
	Data   []decimal.Decimal
}

// Append validates in order direction, amount, date. Amounts are rounded
// half-to-even to two fractional digits at ingress.
func (s *Service) Append(ctx context.Context, userID uint64, in AppendInput) (*Transaction, error) {
	dir := Direction(strings.ToLower(strings.TrimSpace(in.Direction)))
	switch {
	case dir == "":
		return nil, invalid(MissingField, "Direction is required")
	case dir != Deposit && dir != Withdraw:
		return nil, invalid(BadDirection, "Direction must be deposit or withdraw")
	}

	raw := strings.TrimSpace(in.Amount)
	if raw == "" {
		return nil, invalid(MissingField, "Amount is required")
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, invalid(BadAmount, "Amount must be a number")
	}
	amount = amount.RoundBank(2)
	if !amount.IsPositive() {
		return nil, invalid(BadAmount, "Amount must be greater than zero")
	}

	day := strings.TrimSpace(in.Date)
	if day == "" {
		return nil, invalid(MissingField, "Date is required")
	}
	if _, err := time.Parse(dateFormat, day); err != nil {
		return nil, invalid(BadDate, "Date must be YYYY-MM-DD")
	}

	t := &Transaction{
		UserID:      userID,
		Direction:   dir,
		Amount:      amount,
		Description: strings.TrimSpace(in.Description),
		Date:        day,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Store.Append(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Balance folds the user's full log on every call. No cached aggregates, so
// it always agrees with the last point of CumulativeSeries.
func (s *Service) Balance(ctx context.Context, userID uint64) (Summary, error) {
	txs, err := s.Store.ForUser(ctx, userID)
	if err != nil {
		return Summary{}, err
	}

	balance := decimal.Zero
	for _, t := range txs {
		balance = balance.Add(t.signed())
	}
	return Summary{Balance: balance, Count: len(txs)}, nil
}

// CumulativeSeries produces one point per transaction in date order, each
// point the running balance so far. Two transactions on the same day appear
// as two consecutive points sharing a label.
func (s *Service) CumulativeSeries(ctx context.Context, userID uint64) (Series, error) {
	txs, err := s.Store.ForUser(ctx, userID)
	if err != nil {
		return Series{}, err
	}

	series := Series{
		Labels: make([]string, 0, len(txs)),
		Data:   make([]decimal.Decimal, 0, len(txs)),
	}
	running := decimal.Zero
	for _, t := range txs {
		running = running.Add(t.signed())
		series.Labels = append(series.Labels, t.Date)
		series.Data = append(series.Data, running)
	}
	return series, nil
}
