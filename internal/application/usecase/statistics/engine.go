package statistics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/lucapp/internal/application/adapter"
	"github.com/finance-tracker/lucapp/internal/domain/entity"
)

// StatisticsResult is the complete statistics of one period.
type StatisticsResult struct {
	Period       Period               `json:"period"`
	Transactions []entity.Transaction `json:"-"`
	Totals       Totals               `json:"totals"`
	Categories   CategoryViews        `json:"categories"`
	Charts       Charts               `json:"charts"`
	Undated      int                  `json:"undated"`
}

// TotalsChange holds current minus previous totals.
type TotalsChange struct {
	Income   decimal.Decimal `json:"income_change"`
	Expenses decimal.Decimal `json:"expense_change"`
	Balance  decimal.Decimal `json:"balance_change"`
}

// PeriodComparison pairs a period with the one before it.
type PeriodComparison struct {
	Current  *StatisticsResult `json:"current"`
	Previous *StatisticsResult `json:"previous"`
	Change   TotalsChange      `json:"comparison"`
}

// Engine orchestrates period resolution, aggregation and trend building.
// It holds no mutable state, so a single instance may serve concurrent callers.
type Engine struct {
	resolver  *Resolver
	formatter adapter.LabelFormatter
}

// NewEngine creates a new Engine instance.
func NewEngine(resolver *Resolver, formatter adapter.LabelFormatter) (*Engine, error) {
	if resolver == nil {
		return nil, missingCollaborator("period resolver")
	}
	if formatter == nil {
		return nil, missingCollaborator("label formatter")
	}
	return &Engine{
		resolver:  resolver,
		formatter: formatter,
	}, nil
}

// Resolver returns the period resolver the engine works with.
func (e *Engine) Resolver() *Resolver {
	return e.resolver
}

// BuildStatistics computes the statistics of the period named by selector.
func (e *Engine) BuildStatistics(transactions []entity.Transaction, selector Selector) (*StatisticsResult, error) {
	period, err := e.resolver.Resolve(selector)
	if err != nil {
		return nil, err
	}

	aggregation := Aggregate(transactions, period)

	return &StatisticsResult{
		Period:       period,
		Transactions: aggregation.Transactions,
		Totals:       aggregation.Totals,
		Categories:   aggregation.Categories,
		Charts:       aggregation.Charts,
		Undated:      aggregation.Undated,
	}, nil
}

// CompareWithPreviousPeriod computes the selected period and the one before it.
func (e *Engine) CompareWithPreviousPeriod(transactions []entity.Transaction, selector Selector) (*PeriodComparison, error) {
	if selector.Kind == KindWeek && selector.Anchor.IsZero() {
		selector.Anchor = e.resolver.Now()
	}

	current, err := e.BuildStatistics(transactions, selector)
	if err != nil {
		return nil, err
	}

	previous, err := e.BuildStatistics(transactions, selector.Previous())
	if err != nil {
		return nil, err
	}

	return &PeriodComparison{
		Current:  current,
		Previous: previous,
		Change: TotalsChange{
			Income:   current.Totals.Income.Sub(previous.Totals.Income),
			Expenses: current.Totals.Expenses.Sub(previous.Totals.Expenses),
			Balance:  current.Totals.Balance.Sub(previous.Totals.Balance),
		},
	}, nil
}

// BuildTrend returns the monthly trend ending at reference. A zero reference
// means the resolver's current time.
func (e *Engine) BuildTrend(transactions []entity.Transaction, reference time.Time, window int) []TrendPoint {
	if reference.IsZero() {
		reference = e.resolver.Now()
	} else {
		reference = reference.In(e.resolver.Location())
	}
	return BuildTrend(transactions, reference, window, e.formatter)
}
