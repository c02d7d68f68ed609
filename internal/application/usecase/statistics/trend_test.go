package statistics

import (
	"testing"
	"time"

	"github.com/finance-tracker/lucapp/internal/domain/entity"
)

func TestBuildTrend_WindowLength(t *testing.T) {
	reference := day(2024, time.March, 15)

	tests := []struct {
		window   int
		expected int
	}{
		{0, DefaultTrendWindow},
		{-3, DefaultTrendWindow},
		{1, 1},
		{3, 3},
		{12, 12},
		{25, 25},
	}

	for _, tt := range tests {
		points := BuildTrend(nil, reference, tt.window, stubFormatter{})
		if len(points) != tt.expected {
			t.Errorf("window %d: expected %d points, got %d", tt.window, tt.expected, len(points))
		}
		last := points[len(points)-1]
		if last.Year != 2024 || last.Month != 3 {
			t.Errorf("window %d: expected last point March 2024, got %d-%d", tt.window, last.Year, last.Month)
		}
	}
}

func TestBuildTrend_SumsAcrossYearBoundary(t *testing.T) {
	history := []entity.Transaction{
		tx("tx_1", "Sueldo", 500, entity.TransactionTypeIncome, day(2023, time.December, 15)),
		tx("tx_2", "Comida", 200, entity.TransactionTypeExpense, day(2024, time.January, 10)),
		tx("tx_3", "Ingreso", 1000, "", day(2024, time.February, 1)),
		tx("tx_4", "Comida", 999, entity.TransactionTypeExpense, day(2023, time.November, 30)),
		tx("tx_5", "Comida", 999, entity.TransactionTypeExpense, time.Time{}),
	}

	points := BuildTrend(history, day(2024, time.February, 20), 3, stubFormatter{})

	expected := []struct {
		label                      string
		income, expenses, balance int64
	}{
		{"Dec 2023", 500, 0, 500},
		{"Jan 2024", 0, 200, -200},
		{"Feb 2024", 1000, 0, 1000},
	}

	if len(points) != len(expected) {
		t.Fatalf("expected %d points, got %d", len(expected), len(points))
	}
	for i, want := range expected {
		got := points[i]
		if got.PeriodLabel != want.label {
			t.Errorf("point %d: expected label %s, got %s", i, want.label, got.PeriodLabel)
		}
		amountEquals(t, want.label+" income", got.Income, want.income)
		amountEquals(t, want.label+" expenses", got.Expenses, want.expenses)
		amountEquals(t, want.label+" balance", got.Balance, want.balance)
	}
}
