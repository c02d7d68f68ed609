// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"

	"github.com/finance-tracker/lucapp/internal/application/adapter"
)

// GetTransactionInput represents the input for fetching one transaction.
type GetTransactionInput struct {
	TransactionID string
	UserID        string
}

// GetTransactionUseCase handles fetching a single transaction.
type GetTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetTransactionUseCase creates a new GetTransactionUseCase instance.
func NewGetTransactionUseCase(transactionRepo adapter.TransactionRepository) *GetTransactionUseCase {
	return &GetTransactionUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute returns the transaction when it belongs to the user.
func (uc *GetTransactionUseCase) Execute(ctx context.Context, input GetTransactionInput) (*TransactionOutput, error) {
	transaction, err := uc.transactionRepo.FindByID(ctx, input.UserID, input.TransactionID)
	if err != nil {
		return nil, notFoundOr(err, "failed to find transaction")
	}
	return toTransactionOutput(*transaction), nil
}
