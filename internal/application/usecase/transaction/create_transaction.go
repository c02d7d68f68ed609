// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/lucapp/internal/application/adapter"
	"github.com/finance-tracker/lucapp/internal/domain/entity"
	domainerror "github.com/finance-tracker/lucapp/internal/domain/error"
)

const (
	// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
	MaxDescriptionLength = 200
	// MaxAmountDecimals is the number of decimal places an amount may carry.
	MaxAmountDecimals = 2
)

var (
	minAmount = decimal.RequireFromString("0.01")
	maxAmount = decimal.NewFromInt(1_000_000)
)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	UserID      string
	Description string
	Amount      decimal.Decimal
	Type        entity.TransactionType
	Category    string
	Date        time.Time
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *TransactionOutput
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(transactionRepo adapter.TransactionRepository, clock adapter.Clock) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Execute validates the input and stores a new transaction.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	input.Description = strings.TrimSpace(input.Description)
	input.Category = strings.TrimSpace(input.Category)

	if err := uc.validate(input); err != nil {
		return nil, err
	}

	transaction := entity.NewTransaction(
		input.UserID,
		input.Description,
		input.Amount,
		input.Type,
		input.Category,
		input.Date,
	)

	if err := uc.transactionRepo.CreateTransaction(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return &CreateTransactionOutput{
		Transaction: toTransactionOutput(*transaction),
	}, nil
}

// validate applies the field rules shared by every client.
func (uc *CreateTransactionUseCase) validate(input CreateTransactionInput) error {
	if input.UserID == "" {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeMissingOwner,
			"user id is required",
			domainerror.ErrMissingOwner,
		)
	}

	length := utf8.RuneCountInString(input.Description)
	if length == 0 || length > MaxDescriptionLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidDescription,
			fmt.Sprintf("description must be between 1 and %d characters", MaxDescriptionLength),
			domainerror.ErrInvalidDescription,
		)
	}

	if input.Amount.LessThan(minAmount) || input.Amount.GreaterThan(maxAmount) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			fmt.Sprintf("amount must be between %s and %s", minAmount, maxAmount),
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	if !input.Amount.Equal(input.Amount.Truncate(MaxAmountDecimals)) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			fmt.Sprintf("amount must not have more than %d decimal places", MaxAmountDecimals),
			domainerror.ErrInvalidTransactionAmount,
		)
	}

	if !input.Type.IsValid() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}

	if input.Category == "" {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeMissingCategory,
			"category is required",
			domainerror.ErrMissingCategory,
		)
	}

	if input.Date.IsZero() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"date is required",
			domainerror.ErrInvalidTransactionDate,
		)
	}
	now := uc.clock.Now()
	maxDate := time.Date(now.Year()+1, now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if input.Date.After(maxDate) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"date cannot be more than one year in the future",
			domainerror.ErrInvalidTransactionDate,
		)
	}

	return nil
}
