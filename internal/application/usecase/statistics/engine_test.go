package statistics

import (
	"errors"
	"testing"
	"time"

	"github.com/finance-tracker/lucapp/internal/domain/entity"
	domainerror "github.com/finance-tracker/lucapp/internal/domain/error"
)

func TestNewEngine_MissingCollaborators(t *testing.T) {
	if _, err := NewEngine(nil, stubFormatter{}); !errors.Is(err, domainerror.ErrMissingCollaborator) {
		t.Errorf("expected ErrMissingCollaborator for nil resolver, got %v", err)
	}

	resolver := newTestResolver(t, day(2024, time.March, 1))
	if _, err := NewEngine(resolver, nil); !errors.Is(err, domainerror.ErrMissingCollaborator) {
		t.Errorf("expected ErrMissingCollaborator for nil formatter, got %v", err)
	}
}

func TestEngine_BuildStatistics(t *testing.T) {
	engine := newTestEngine(t, day(2024, time.March, 20))

	result, err := engine.BuildStatistics(marchHistory(), NewMonthSelector(2024, time.March))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Period.Label != "March 2024" {
		t.Errorf("expected label March 2024, got %s", result.Period.Label)
	}
	if len(result.Transactions) != 2 {
		t.Errorf("expected 2 transactions, got %d", len(result.Transactions))
	}
	amountEquals(t, "balance", result.Totals.Balance, 1900)

	if _, err := engine.BuildStatistics(marchHistory(), NewMonthSelector(2024, 13)); !errors.Is(err, domainerror.ErrInvalidMonth) {
		t.Errorf("expected ErrInvalidMonth, got %v", err)
	}
}

func TestEngine_CompareWithPreviousPeriod(t *testing.T) {
	engine := newTestEngine(t, day(2024, time.March, 20))

	history := append(marchHistory(),
		tx("tx_3", "Sueldo", 1000, entity.TransactionTypeIncome, day(2024, time.February, 1)),
		tx("tx_4", "Comida", 300, entity.TransactionTypeExpense, day(2024, time.February, 10)),
	)

	comparison, err := engine.CompareWithPreviousPeriod(history, NewMonthSelector(2024, time.March))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if comparison.Previous.Period.Month != int(time.February) {
		t.Errorf("expected previous period February, got %d", comparison.Previous.Period.Month)
	}
	amountEquals(t, "income change", comparison.Change.Income, 1000)
	amountEquals(t, "expense change", comparison.Change.Expenses, -200)
	amountEquals(t, "balance change", comparison.Change.Balance, 1200)
}

func TestEngine_BuildTrendDefaultsToClock(t *testing.T) {
	engine := newTestEngine(t, day(2024, time.March, 20))

	points := engine.BuildTrend(marchHistory(), time.Time{}, 0)

	if len(points) != DefaultTrendWindow {
		t.Fatalf("expected %d points, got %d", DefaultTrendWindow, len(points))
	}
	last := points[len(points)-1]
	if last.Year != 2024 || last.Month != 3 {
		t.Errorf("expected trend to end in March 2024, got %d-%d", last.Year, last.Month)
	}
	amountEquals(t, "march balance", last.Balance, 1900)
	if first := points[0]; first.Year != 2023 || first.Month != 10 {
		t.Errorf("expected trend to start in October 2023, got %d-%d", first.Year, first.Month)
	}
}

func TestEngine_CompareWeekWithoutAnchor(t *testing.T) {
	engine := newTestEngine(t, day(2024, time.March, 20))

	history := []entity.Transaction{
		tx("tx_1", "Comida", 100, entity.TransactionTypeExpense, day(2024, time.March, 18)),
		tx("tx_2", "Comida", 40, entity.TransactionTypeExpense, day(2024, time.March, 8)),
	}

	comparison, err := engine.CompareWithPreviousPeriod(history, Selector{Kind: KindWeek})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantEnd := time.Date(2024, time.March, 13, 0, 0, 0, 0, time.UTC)
	if !comparison.Previous.Period.End.Equal(wantEnd) {
		t.Errorf("expected previous week to end on 2024-03-13, got %s", comparison.Previous.Period.End)
	}
	amountEquals(t, "current expenses", comparison.Current.Totals.Expenses, 100)
	amountEquals(t, "previous expenses", comparison.Previous.Totals.Expenses, 40)
}
