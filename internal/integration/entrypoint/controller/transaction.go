// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/lucapp/internal/application/usecase/transaction"
	"github.com/finance-tracker/lucapp/internal/domain/entity"
	domainerror "github.com/finance-tracker/lucapp/internal/domain/error"
	"github.com/finance-tracker/lucapp/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	listUseCase    *transaction.ListTransactionsUseCase
	getUseCase     *transaction.GetTransactionUseCase
	createUseCase  *transaction.CreateTransactionUseCase
	deleteUseCase  *transaction.DeleteTransactionUseCase
	migrateUseCase *transaction.MigrateLegacyUseCase
	location       *time.Location
}

// NewTransactionController creates a new transaction controller instance.
// Dates in requests are interpreted in location.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	getUseCase *transaction.GetTransactionUseCase,
	createUseCase *transaction.CreateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
	migrateUseCase *transaction.MigrateLegacyUseCase,
	location *time.Location,
) *TransactionController {
	if location == nil {
		location = time.UTC
	}
	return &TransactionController{
		listUseCase:    listUseCase,
		getUseCase:     getUseCase,
		createUseCase:  createUseCase,
		deleteUseCase:  deleteUseCase,
		migrateUseCase: migrateUseCase,
		location:       location,
	}
}

// List handles GET /transactions requests.
// Optional query parameters: year, month, type, search.
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	input := transaction.ListTransactionsInput{
		UserID: userID,
		Type:   entity.TransactionType(strings.ToLower(ctx.Query("type"))),
		Search: ctx.Query("search"),
	}
	if yearStr := ctx.Query("year"); yearStr != "" {
		if year, err := strconv.Atoi(yearStr); err == nil {
			input.Year = year
		}
	}
	if monthStr := ctx.Query("month"); monthStr != "" {
		if month, err := strconv.Atoi(monthStr); err == nil {
			input.Month = time.Month(month)
		}
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output))
}

// Get handles GET /transactions/:id requests.
func (c *TransactionController) Get(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), transaction.GetTransactionInput{
		TransactionID: ctx.Param("id"),
		UserID:        userID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeMissingTransactionFields),
			Details: err.Error(),
		})
		return
	}

	date, err := c.parseDate(req.Date)
	if err != nil {
		handleError(ctx, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"date must be in YYYY-MM-DD format",
			domainerror.ErrInvalidTransactionDate,
		))
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), transaction.CreateTransactionInput{
		UserID:      userID,
		Description: req.Description,
		Amount:      req.Amount,
		Type:        entity.TransactionType(strings.ToLower(req.Type)),
		Category:    req.Category,
		Date:        date,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	_, err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		TransactionID: ctx.Param("id"),
		UserID:        userID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// MigrateLegacy handles POST /transactions/migrate-legacy requests.
func (c *TransactionController) MigrateLegacy(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.migrateUseCase.Execute(ctx.Request.Context(), transaction.MigrateLegacyInput{
		UserID: userID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMigrateLegacyResponse(output))
}

// parseDate accepts a calendar date or a full RFC 3339 timestamp.
func (c *TransactionController) parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if date, err := time.ParseInLocation(time.DateOnly, value, c.location); err == nil {
		return date, nil
	}
	date, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return date.In(c.location), nil
}
