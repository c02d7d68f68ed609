package statistics

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/finance-tracker/lucapp/internal/application/adapter"
	"github.com/finance-tracker/lucapp/internal/domain/entity"
	domainerror "github.com/finance-tracker/lucapp/internal/domain/error"
)

// GetStatisticsInput represents the input for getting period statistics.
type GetStatisticsInput struct {
	UserID   string
	Selector Selector
}

// GetStatisticsUseCase handles computing statistics for a period.
type GetStatisticsUseCase struct {
	transactionRepo adapter.TransactionRepository
	engine          *Engine
}

// NewGetStatisticsUseCase creates a new GetStatisticsUseCase instance.
func NewGetStatisticsUseCase(transactionRepo adapter.TransactionRepository, engine *Engine) *GetStatisticsUseCase {
	return &GetStatisticsUseCase{
		transactionRepo: transactionRepo,
		engine:          engine,
	}
}

// Execute loads the user's transactions and aggregates the selected period.
func (uc *GetStatisticsUseCase) Execute(ctx context.Context, input GetStatisticsInput) (*StatisticsResult, error) {
	transactions, err := loadTransactions(ctx, uc.transactionRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	result, err := uc.engine.BuildStatistics(transactions, input.Selector)
	if err != nil {
		return nil, err
	}

	warnUndated(input.UserID, result.Undated)

	return result, nil
}

// loadTransactions fetches the full history of a user.
func loadTransactions(ctx context.Context, repo adapter.TransactionRepository, userID string) ([]entity.Transaction, error) {
	if userID == "" {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeMissingOwner,
			"user id is required",
			domainerror.ErrMissingOwner,
		)
	}

	transactions, err := repo.GetAllTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	return transactions, nil
}

func warnUndated(userID string, count int) {
	if count > 0 {
		slog.Warn("skipped transactions without a valid date",
			"user_id", userID,
			"count", count,
		)
	}
}
