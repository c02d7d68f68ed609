// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/lucapp/internal/application/adapter"
	"github.com/finance-tracker/lucapp/internal/application/usecase/statistics"
	"github.com/finance-tracker/lucapp/internal/domain/entity"
	domainerror "github.com/finance-tracker/lucapp/internal/domain/error"
)

// ListTransactionsInput represents the input for listing transactions.
// Year and Month restrict the list to one calendar month when both are set.
type ListTransactionsInput struct {
	UserID string
	Year   int
	Month  time.Month
	Type   entity.TransactionType
	Search string // Case-insensitive match on description or category
}

// TransactionOutput represents a single transaction in the output.
// Type is the effective classification, so legacy records report one too.
type TransactionOutput struct {
	ID          string
	UserID      string
	Description string
	Amount      decimal.Decimal
	Category    string
	Type        entity.TransactionType
	Date        time.Time
	CreatedAt   time.Time
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*TransactionOutput
	Total        int
}

// ListTransactionsUseCase handles listing a user's transactions.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
	location        *time.Location
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository, location *time.Location) *ListTransactionsUseCase {
	if location == nil {
		location = time.UTC
	}
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
		location:        location,
	}
}

// Execute returns the matching transactions, newest first.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	if input.Month != 0 && (input.Month < time.January || input.Month > time.December) {
		return nil, domainerror.NewStatisticsError(
			domainerror.ErrCodeInvalidMonth,
			fmt.Sprintf("invalid month %d", input.Month),
			domainerror.ErrInvalidMonth,
		)
	}
	if input.Type != "" && !input.Type.IsValid() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}

	transactions, err := uc.transactionRepo.GetAllTransactions(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	search := strings.ToLower(strings.TrimSpace(input.Search))
	filtered := make([]entity.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if input.Year != 0 && input.Month != 0 && !uc.inMonth(tx, input.Year, input.Month) {
			continue
		}
		if input.Type != "" && statistics.Classify(tx) != input.Type {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(tx.Description), search) &&
			!strings.Contains(strings.ToLower(tx.Category), search) {
			continue
		}
		filtered = append(filtered, tx)
	}

	// Newest first; undated records sink to the end
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date.After(filtered[j].Date)
	})

	output := &ListTransactionsOutput{
		Transactions: make([]*TransactionOutput, 0, len(filtered)),
		Total:        len(filtered),
	}
	for _, tx := range filtered {
		output.Transactions = append(output.Transactions, toTransactionOutput(tx))
	}

	return output, nil
}

func (uc *ListTransactionsUseCase) inMonth(tx entity.Transaction, year int, month time.Month) bool {
	if !tx.HasDate() {
		return false
	}
	date := tx.Date.In(uc.location)
	return date.Year() == year && date.Month() == month
}

func toTransactionOutput(tx entity.Transaction) *TransactionOutput {
	return &TransactionOutput{
		ID:          tx.ID,
		UserID:      tx.UserID,
		Description: tx.Description,
		Amount:      tx.Amount,
		Category:    tx.Category,
		Type:        statistics.Classify(tx),
		Date:        tx.Date,
		CreatedAt:   tx.CreatedAt,
	}
}
