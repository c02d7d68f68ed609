package statistics

import (
	"context"

	"github.com/finance-tracker/lucapp/internal/application/adapter"
)

// ComparePeriodsInput represents the input for comparing a period with the previous one.
type ComparePeriodsInput struct {
	UserID   string
	Selector Selector
}

// ComparePeriodsUseCase handles period-over-period comparison.
type ComparePeriodsUseCase struct {
	transactionRepo adapter.TransactionRepository
	engine          *Engine
}

// NewComparePeriodsUseCase creates a new ComparePeriodsUseCase instance.
func NewComparePeriodsUseCase(transactionRepo adapter.TransactionRepository, engine *Engine) *ComparePeriodsUseCase {
	return &ComparePeriodsUseCase{
		transactionRepo: transactionRepo,
		engine:          engine,
	}
}

// Execute returns the selected period, the previous one and the deltas between them.
func (uc *ComparePeriodsUseCase) Execute(ctx context.Context, input ComparePeriodsInput) (*PeriodComparison, error) {
	transactions, err := loadTransactions(ctx, uc.transactionRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	comparison, err := uc.engine.CompareWithPreviousPeriod(transactions, input.Selector)
	if err != nil {
		return nil, err
	}

	warnUndated(input.UserID, comparison.Current.Undated)

	return comparison, nil
}
