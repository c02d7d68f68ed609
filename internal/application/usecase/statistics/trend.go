package statistics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/lucapp/internal/application/adapter"
	"github.com/finance-tracker/lucapp/internal/domain/entity"
)

// DefaultTrendWindow is the number of months in a trend when none is requested.
const DefaultTrendWindow = 6

// TrendPoint is the flow of a single month.
type TrendPoint struct {
	PeriodLabel string          `json:"period_label"`
	Year        int             `json:"year"`
	Month       int             `json:"month"`
	Income      decimal.Decimal `json:"income"`
	Expenses    decimal.Decimal `json:"expenses"`
	Balance     decimal.Decimal `json:"balance"`
}

// BuildTrend returns exactly window monthly points, oldest first, ending at
// the month of reference. Months without transactions are zero-filled.
// Month membership is evaluated in the location of reference.
func BuildTrend(
	transactions []entity.Transaction,
	reference time.Time,
	window int,
	formatter adapter.LabelFormatter,
) []TrendPoint {
	if window <= 0 {
		window = DefaultTrendWindow
	}
	loc := reference.Location()
	first := time.Date(reference.Year(), reference.Month(), 1, 0, 0, 0, 0, loc)

	type monthKey struct {
		year  int
		month time.Month
	}

	// Build the gap-free series first so every month has a slot
	points := make([]TrendPoint, window)
	index := make(map[monthKey]int, window)
	for i := 0; i < window; i++ {
		month := first.AddDate(0, i-window+1, 0)
		points[i] = TrendPoint{
			PeriodLabel: formatter.ShortMonthLabel(month.Year(), month.Month()),
			Year:        month.Year(),
			Month:       int(month.Month()),
			Income:      decimal.Zero,
			Expenses:    decimal.Zero,
			Balance:     decimal.Zero,
		}
		index[monthKey{month.Year(), month.Month()}] = i
	}

	for _, tx := range transactions {
		if !tx.HasDate() {
			continue
		}
		date := tx.Date.In(loc)
		i, ok := index[monthKey{date.Year(), date.Month()}]
		if !ok {
			continue
		}
		if Classify(tx) == entity.TransactionTypeIncome {
			points[i].Income = points[i].Income.Add(tx.Amount)
		} else {
			points[i].Expenses = points[i].Expenses.Add(tx.Amount)
		}
	}

	for i := range points {
		points[i].Balance = points[i].Income.Sub(points[i].Expenses)
	}

	return points
}
