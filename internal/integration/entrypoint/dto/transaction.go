// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/lucapp/internal/application/usecase/transaction"
)

// CreateTransactionRequest represents the request body for transaction creation.
// Amount accepts a JSON number or a numeric string.
type CreateTransactionRequest struct {
	Date        string          `json:"date" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type" binding:"required"`
	Category    string          `json:"category" binding:"required"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Date        string    `json:"date,omitempty"`
	Description string    `json:"description"`
	Amount      string    `json:"amount"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int                   `json:"total"`
}

// MigrateLegacyResponse represents the response for the legacy migration endpoint.
type MigrateLegacyResponse struct {
	Migrated       int      `json:"migrated"`
	TransactionIDs []string `json:"transaction_ids"`
}

// ToTransactionResponse converts a TransactionOutput to a TransactionResponse DTO.
func ToTransactionResponse(txn *transaction.TransactionOutput) TransactionResponse {
	response := TransactionResponse{
		ID:          txn.ID,
		UserID:      txn.UserID,
		Description: txn.Description,
		Amount:      txn.Amount.StringFixed(2),
		Type:        string(txn.Type),
		Category:    txn.Category,
		CreatedAt:   txn.CreatedAt,
	}
	if !txn.Date.IsZero() {
		response.Date = txn.Date.Format(time.DateOnly)
	}
	return response
}

// ToTransactionListResponse converts a ListTransactionsOutput to a TransactionListResponse DTO.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	transactions := make([]TransactionResponse, 0, len(output.Transactions))
	for _, txn := range output.Transactions {
		transactions = append(transactions, ToTransactionResponse(txn))
	}
	return TransactionListResponse{
		Transactions: transactions,
		Total:        output.Total,
	}
}

// ToMigrateLegacyResponse converts a MigrateLegacyOutput to a MigrateLegacyResponse DTO.
func ToMigrateLegacyResponse(output *transaction.MigrateLegacyOutput) MigrateLegacyResponse {
	ids := output.TransactionIDs
	if ids == nil {
		ids = []string{}
	}
	return MigrateLegacyResponse{
		Migrated:       output.Migrated,
		TransactionIDs: ids,
	}
}
