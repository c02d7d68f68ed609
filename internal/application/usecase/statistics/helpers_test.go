package statistics

import (
	"context"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/lucapp/internal/application/adapter"
	"github.com/finance-tracker/lucapp/internal/domain/entity"
	domainerror "github.com/finance-tracker/lucapp/internal/domain/error"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type stubFormatter struct{}

func (stubFormatter) MonthName(month time.Month) string { return month.String() }

func (stubFormatter) ShortMonthLabel(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", month.String()[:3], year)
}

func (stubFormatter) MonthLabel(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", month, year)
}

func (stubFormatter) WeekLabel(start, end time.Time) string {
	return start.Format(time.DateOnly) + " - " + end.Format(time.DateOnly)
}

func (stubFormatter) YearLabel(year int) string { return strconv.Itoa(year) }

func (stubFormatter) FormatCurrency(amount decimal.Decimal) string { return "$" + amount.String() }

// stubTransactionRepository serves a fixed history per owner.
type stubTransactionRepository struct {
	byOwner map[string][]entity.Transaction
	err     error
}

func (r *stubTransactionRepository) GetAllTransactions(_ context.Context, ownerID string) ([]entity.Transaction, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.byOwner[ownerID], nil
}

func (r *stubTransactionRepository) CreateTransaction(_ context.Context, tx *entity.Transaction) error {
	r.byOwner[tx.UserID] = append(r.byOwner[tx.UserID], *tx)
	return nil
}

func (r *stubTransactionRepository) DeleteTransaction(_ context.Context, _, _ string) error {
	return nil
}

func (r *stubTransactionRepository) FindByID(_ context.Context, ownerID, id string) (*entity.Transaction, error) {
	for _, tx := range r.byOwner[ownerID] {
		if tx.ID == id {
			return &tx, nil
		}
	}
	return nil, domainerror.ErrTransactionNotFound
}

func (r *stubTransactionRepository) SaveAll(_ context.Context, ownerID string, txs []entity.Transaction) error {
	r.byOwner[ownerID] = txs
	return nil
}

func (r *stubTransactionRepository) AssignTypes(_ context.Context, _ string, _ adapter.TypeAssigner) ([]string, error) {
	return nil, nil
}

func newTestResolver(t *testing.T, now time.Time) *Resolver {
	t.Helper()
	resolver, err := NewResolver(fixedClock{now: now}, stubFormatter{}, now.Location())
	if err != nil {
		t.Fatalf("failed to create resolver: %v", err)
	}
	return resolver
}

func newTestEngine(t *testing.T, now time.Time) *Engine {
	t.Helper()
	engine, err := NewEngine(newTestResolver(t, now), stubFormatter{})
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	return engine
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 12, 0, 0, 0, time.UTC)
}

func tx(id, category string, amount int64, txType entity.TransactionType, date time.Time) entity.Transaction {
	return entity.Transaction{
		ID:       id,
		UserID:   "user_1",
		Amount:   decimal.NewFromInt(amount),
		Category: category,
		Type:     txType,
		Date:     date,
	}
}

func amountEquals(t *testing.T, field string, got decimal.Decimal, want int64) {
	t.Helper()
	if !got.Equal(decimal.NewFromInt(want)) {
		t.Errorf("expected %s %d, got %s", field, want, got)
	}
}

// marchHistory is a salary recorded before types existed plus one typed expense.
func marchHistory() []entity.Transaction {
	return []entity.Transaction{
		tx("tx_1", "Ingreso", 2000, "", day(2024, time.March, 1)),
		tx("tx_2", "Comida", 100, entity.TransactionTypeExpense, day(2024, time.March, 5)),
	}
}
