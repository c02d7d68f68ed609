package statistics

import (
	"context"
	"sort"

	"github.com/finance-tracker/lucapp/internal/application/adapter"
	"github.com/finance-tracker/lucapp/internal/domain/entity"
	domainerror "github.com/finance-tracker/lucapp/internal/domain/error"
)

// GetTopCategoriesInput represents the input for ranking categories.
// An empty Type ranks every category.
type GetTopCategoriesInput struct {
	UserID   string
	Selector Selector
	Type     entity.TransactionType
	Limit    int
}

// GetTopCategoriesOutput represents the output of ranking categories.
type GetTopCategoriesOutput struct {
	Period     Period              `json:"period"`
	Categories []CategoryAggregate `json:"categories"`
}

// GetTopCategoriesUseCase handles ranking the categories of a period by amount.
type GetTopCategoriesUseCase struct {
	transactionRepo adapter.TransactionRepository
	engine          *Engine
	defaultLimit    int
}

// NewGetTopCategoriesUseCase creates a new GetTopCategoriesUseCase instance.
func NewGetTopCategoriesUseCase(transactionRepo adapter.TransactionRepository, engine *Engine, defaultLimit int) *GetTopCategoriesUseCase {
	if defaultLimit <= 0 {
		defaultLimit = 5
	}
	return &GetTopCategoriesUseCase{
		transactionRepo: transactionRepo,
		engine:          engine,
		defaultLimit:    defaultLimit,
	}
}

// Execute returns at most Limit categories of the chosen view, largest amount first.
func (uc *GetTopCategoriesUseCase) Execute(ctx context.Context, input GetTopCategoriesInput) (*GetTopCategoriesOutput, error) {
	if input.Type != "" && !input.Type.IsValid() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"type must be: income or expense",
			domainerror.ErrInvalidTransactionType,
		)
	}

	transactions, err := loadTransactions(ctx, uc.transactionRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	result, err := uc.engine.BuildStatistics(transactions, input.Selector)
	if err != nil {
		return nil, err
	}

	var view []CategoryAggregate
	switch input.Type {
	case entity.TransactionTypeIncome:
		view = result.Categories.Income
	case entity.TransactionTypeExpense:
		view = result.Categories.Expenses
	default:
		view = result.Categories.All
	}

	limit := input.Limit
	if limit <= 0 {
		limit = uc.defaultLimit
	}

	return &GetTopCategoriesOutput{
		Period:     result.Period,
		Categories: TopCategories(view, limit),
	}, nil
}

// TopCategories returns a copy of categories sorted by amount descending and
// truncated to limit. Ties keep their label order.
func TopCategories(categories []CategoryAggregate, limit int) []CategoryAggregate {
	ranked := make([]CategoryAggregate, len(categories))
	copy(ranked, categories)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amount.GreaterThan(ranked[j].Amount)
	})

	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
