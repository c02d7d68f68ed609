package statistics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/lucapp/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Totals holds the summed flow of a period.
type Totals struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"`
}

// CategoryAggregate summarizes the transactions sharing a category label.
// Percentage is the category's share of total flow (income plus expenses).
type CategoryAggregate struct {
	Category         string          `json:"category"`
	Amount           decimal.Decimal `json:"amount"`
	TransactionCount int             `json:"transaction_count"`
	Percentage       int             `json:"percentage"`
	Color            string          `json:"color"`
	IncomeCount      int             `json:"income_count"`
	ExpenseCount     int             `json:"expense_count"`
}

// HasIncome reports whether at least one member was classified as income.
func (c CategoryAggregate) HasIncome() bool {
	return c.IncomeCount > 0
}

// HasExpense reports whether at least one member was classified as expense.
func (c CategoryAggregate) HasExpense() bool {
	return c.ExpenseCount > 0
}

// CategoryViews exposes the category breakdown three ways. A category with
// members of both types appears in Income and in Expenses.
type CategoryViews struct {
	All      []CategoryAggregate `json:"all"`
	Income   []CategoryAggregate `json:"income"`
	Expenses []CategoryAggregate `json:"expenses"`
}

// ChartPoint is a library-agnostic chart datum.
type ChartPoint struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
	Color string          `json:"color"`
}

// Charts holds ready-to-render series.
type Charts struct {
	Pie []ChartPoint `json:"pie"`
	Bar []ChartPoint `json:"bar"`
}

// Aggregation is the result of aggregating one period.
type Aggregation struct {
	Transactions []entity.Transaction
	Totals       Totals
	Categories   CategoryViews
	Charts       Charts
	// Undated counts records skipped because they carry no usable date.
	Undated int
}

// Aggregate filters transactions to the period and derives totals, the
// category breakdown and chart series. Categories are ordered by label.
func Aggregate(transactions []entity.Transaction, period Period) Aggregation {
	result := Aggregation{
		Transactions: make([]entity.Transaction, 0),
		Totals: Totals{
			Income:   decimal.Zero,
			Expenses: decimal.Zero,
			Balance:  decimal.Zero,
		},
		Categories: CategoryViews{
			All:      make([]CategoryAggregate, 0),
			Income:   make([]CategoryAggregate, 0),
			Expenses: make([]CategoryAggregate, 0),
		},
		Charts: Charts{
			Pie: make([]ChartPoint, 0),
			Bar: make([]ChartPoint, 0),
		},
	}

	groups := make(map[string]*CategoryAggregate)

	for _, tx := range transactions {
		if !tx.HasDate() {
			result.Undated++
			continue
		}
		if !period.Contains(tx.Date) {
			continue
		}
		result.Transactions = append(result.Transactions, tx)

		group, ok := groups[tx.Category]
		if !ok {
			group = &CategoryAggregate{Category: tx.Category, Amount: decimal.Zero}
			groups[tx.Category] = group
		}
		group.Amount = group.Amount.Add(tx.Amount)
		group.TransactionCount++

		if Classify(tx) == entity.TransactionTypeIncome {
			result.Totals.Income = result.Totals.Income.Add(tx.Amount)
			group.IncomeCount++
		} else {
			result.Totals.Expenses = result.Totals.Expenses.Add(tx.Amount)
			group.ExpenseCount++
		}
	}

	result.Totals.Balance = result.Totals.Income.Sub(result.Totals.Expenses)
	flow := result.Totals.Income.Add(result.Totals.Expenses)

	labels := make([]string, 0, len(groups))
	for label := range groups {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		group := groups[label]
		group.Percentage = percentageOf(group.Amount, flow)
		group.Color = ColorFor(label)

		result.Categories.All = append(result.Categories.All, *group)
		if group.HasIncome() {
			result.Categories.Income = append(result.Categories.Income, *group)
		}
		if group.HasExpense() {
			result.Categories.Expenses = append(result.Categories.Expenses, *group)
		}

		point := ChartPoint{Label: label, Value: group.Amount, Color: group.Color}
		result.Charts.Pie = append(result.Charts.Pie, point)
		result.Charts.Bar = append(result.Charts.Bar, point)
	}

	return result
}

// percentageOf returns round(100 * part / whole), or 0 when whole is zero.
func percentageOf(part, whole decimal.Decimal) int {
	if whole.IsZero() {
		return 0
	}
	return int(part.Mul(hundred).Div(whole).Round(0).IntPart())
}
