// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// Legacy category sentinels written by early versions of the app, before the
// explicit type field existed.
const (
	LegacyCategoryIncome  = "Ingreso"
	LegacyCategoryExpense = "Gasto"
)

// TransactionIDPrefix prefixes every generated transaction identifier.
const TransactionIDPrefix = "tx_"

// IsValid reports whether the type is one of the two known classifications.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction represents a financial transaction recorded by a user.
// Amount is always a non-negative magnitude; the sign is implied by Type.
type Transaction struct {
	ID          string
	UserID      string
	Description string
	Amount      decimal.Decimal
	Category    string
	Type        TransactionType // Empty on legacy records
	Date        time.Time       // Zero when missing or unparseable
	CreatedAt   time.Time
}

// NewTransaction creates a new Transaction entity with a generated ID.
func NewTransaction(
	userID string,
	description string,
	amount decimal.Decimal,
	transactionType TransactionType,
	category string,
	date time.Time,
) *Transaction {
	return &Transaction{
		ID:          TransactionIDPrefix + uuid.NewString(),
		UserID:      userID,
		Description: description,
		Amount:      amount,
		Category:    category,
		Type:        transactionType,
		Date:        date,
		CreatedAt:   time.Now().UTC(),
	}
}

// HasDate reports whether the transaction carries a usable date.
func (t Transaction) HasDate() bool {
	return !t.Date.IsZero()
}
