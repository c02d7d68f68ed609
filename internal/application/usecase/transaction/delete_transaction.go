// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/finance-tracker/lucapp/internal/application/adapter"
	domainerror "github.com/finance-tracker/lucapp/internal/domain/error"
)

// DeleteTransactionInput represents the input for transaction deletion.
type DeleteTransactionInput struct {
	TransactionID string
	UserID        string
}

// DeleteTransactionOutput represents the output of transaction deletion.
type DeleteTransactionOutput struct {
	Success bool
}

// DeleteTransactionUseCase handles transaction deletion logic.
type DeleteTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(transactionRepo adapter.TransactionRepository) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute performs the transaction deletion.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) (*DeleteTransactionOutput, error) {
	// Transactions are stored per owner, so a lookup in the owner's
	// collection doubles as the authorization check.
	if _, err := uc.transactionRepo.FindByID(ctx, input.UserID, input.TransactionID); err != nil {
		return nil, notFoundOr(err, "failed to find transaction")
	}

	if err := uc.transactionRepo.DeleteTransaction(ctx, input.UserID, input.TransactionID); err != nil {
		return nil, notFoundOr(err, "failed to delete transaction")
	}

	return &DeleteTransactionOutput{
		Success: true,
	}, nil
}

// notFoundOr maps repository misses to a coded error and wraps anything else.
func notFoundOr(err error, message string) error {
	if errors.Is(err, domainerror.ErrTransactionNotFound) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}
	return fmt.Errorf("%s: %w", message, err)
}
