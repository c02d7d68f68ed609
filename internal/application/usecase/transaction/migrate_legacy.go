// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/finance-tracker/lucapp/internal/application/adapter"
	"github.com/finance-tracker/lucapp/internal/application/usecase/statistics"
)

// MigrateLegacyInput represents the input for migrating untyped transactions.
type MigrateLegacyInput struct {
	UserID string
}

// MigrateLegacyOutput represents the output of a legacy migration.
type MigrateLegacyOutput struct {
	Migrated       int
	TransactionIDs []string
}

// MigrateLegacyUseCase fills in the type of records stored before types existed.
type MigrateLegacyUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewMigrateLegacyUseCase creates a new MigrateLegacyUseCase instance.
func NewMigrateLegacyUseCase(transactionRepo adapter.TransactionRepository) *MigrateLegacyUseCase {
	return &MigrateLegacyUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute classifies untyped records and stores only their new type. Nothing
// is written when every record already has a type.
func (uc *MigrateLegacyUseCase) Execute(ctx context.Context, input MigrateLegacyInput) (*MigrateLegacyOutput, error) {
	changed, err := uc.transactionRepo.AssignTypes(ctx, input.UserID, statistics.LegacyType)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate transactions: %w", err)
	}

	if len(changed) > 0 {
		slog.Info("Migrated legacy transactions",
			"user_id", input.UserID,
			"count", len(changed),
		)
	}

	return &MigrateLegacyOutput{
		Migrated:       len(changed),
		TransactionIDs: changed,
	}, nil
}
