// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/finance-tracker/lucapp/internal/domain/entity"
)

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// GetAllTransactions retrieves every transaction owned by ownerID.
	// An owner with no stored data yields an empty slice.
	GetAllTransactions(ctx context.Context, ownerID string) ([]entity.Transaction, error)

	// CreateTransaction appends a transaction to its owner's collection.
	CreateTransaction(ctx context.Context, transaction *entity.Transaction) error

	// DeleteTransaction removes a transaction by ID from the owner's collection.
	DeleteTransaction(ctx context.Context, ownerID, id string) error

	// FindByID retrieves a single transaction of the owner.
	FindByID(ctx context.Context, ownerID, id string) (*entity.Transaction, error)

	// SaveAll replaces the owner's whole collection.
	SaveAll(ctx context.Context, ownerID string, transactions []entity.Transaction) error

	// AssignTypes sets the type of every stored record for which assign
	// reports one and leaves all other stored fields as they are. The read
	// and the write are atomic with respect to the other write operations.
	// It returns the IDs of the updated records in stored order.
	AssignTypes(ctx context.Context, ownerID string, assign TypeAssigner) ([]string, error)
}

// TypeAssigner decides the type to store for a transaction. ok is false when
// the record should be left untouched.
type TypeAssigner func(tx entity.Transaction) (transactionType entity.TransactionType, ok bool)
