package statistics

import (
	"context"
	"time"

	"github.com/finance-tracker/lucapp/internal/application/adapter"
)

// GetTrendInput represents the input for getting a monthly trend.
// A zero Reference means now; a non-positive Window means the configured default.
type GetTrendInput struct {
	UserID    string
	Reference time.Time
	Window    int
}

// GetTrendOutput represents the output of getting a monthly trend.
type GetTrendOutput struct {
	Window int          `json:"window"`
	Points []TrendPoint `json:"points"`
}

// GetTrendUseCase handles building the trailing monthly trend of a user.
type GetTrendUseCase struct {
	transactionRepo adapter.TransactionRepository
	engine          *Engine
	defaultWindow   int
}

// NewGetTrendUseCase creates a new GetTrendUseCase instance.
func NewGetTrendUseCase(transactionRepo adapter.TransactionRepository, engine *Engine, defaultWindow int) *GetTrendUseCase {
	if defaultWindow <= 0 {
		defaultWindow = DefaultTrendWindow
	}
	return &GetTrendUseCase{
		transactionRepo: transactionRepo,
		engine:          engine,
		defaultWindow:   defaultWindow,
	}
}

// Execute builds the trend over the user's full history.
func (uc *GetTrendUseCase) Execute(ctx context.Context, input GetTrendInput) (*GetTrendOutput, error) {
	transactions, err := loadTransactions(ctx, uc.transactionRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	window := input.Window
	if window <= 0 {
		window = uc.defaultWindow
	}

	return &GetTrendOutput{
		Window: window,
		Points: uc.engine.BuildTrend(transactions, input.Reference, window),
	}, nil
}
