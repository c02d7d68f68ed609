package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/finance-tracker/lucapp/internal/domain/error"
	"github.com/finance-tracker/lucapp/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/lucapp/internal/integration/entrypoint/middleware"
)

// handleError maps coded domain errors to HTTP responses. Anything uncoded is
// logged and reported as an internal error.
func handleError(ctx *gin.Context, err error) {
	var (
		authErr  *domainerror.AuthError
		txnErr   *domainerror.TransactionError
		statsErr *domainerror.StatisticsError
		storeErr *domainerror.StorageError
	)

	switch {
	case errors.As(err, &authErr):
		ctx.JSON(statusForAuthError(authErr.Code), dto.ErrorResponse{
			Error: authErr.Message,
			Code:  string(authErr.Code),
		})
	case errors.As(err, &txnErr):
		ctx.JSON(statusForTransactionError(txnErr.Code), dto.ErrorResponse{
			Error: txnErr.Message,
			Code:  string(txnErr.Code),
		})
	case errors.As(err, &statsErr):
		ctx.JSON(statusForStatisticsError(statsErr.Code), dto.ErrorResponse{
			Error: statsErr.Message,
			Code:  string(statsErr.Code),
		})
	case errors.As(err, &storeErr):
		slog.Error("Storage error", "path", ctx.FullPath(), "code", storeErr.Code, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Stored data could not be read",
			Code:  string(storeErr.Code),
		})
	default:
		slog.Error("Request failed", "path", ctx.FullPath(), "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
	}
}

// statusForAuthError maps auth error codes to HTTP status codes.
func statusForAuthError(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeEmailExists,
		domainerror.ErrCodeUsernameExists:
		return http.StatusConflict
	case domainerror.ErrCodeWeakPassword,
		domainerror.ErrCodeInvalidEmail,
		domainerror.ErrCodeInvalidUsername,
		domainerror.ErrCodeMissingFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeInvalidCredentials,
		domainerror.ErrCodeUserNotFound,
		domainerror.ErrCodeInvalidToken,
		domainerror.ErrCodeMissingToken:
		return http.StatusUnauthorized
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// statusForTransactionError maps transaction error codes to HTTP status codes.
func statusForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeMissingOwner:
		return http.StatusUnauthorized
	case domainerror.ErrCodeInvalidTransactionType,
		domainerror.ErrCodeInvalidTransactionDate,
		domainerror.ErrCodeInvalidTransactionAmount,
		domainerror.ErrCodeInvalidDescription,
		domainerror.ErrCodeMissingCategory,
		domainerror.ErrCodeMissingTransactionFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// statusForStatisticsError maps statistics error codes to HTTP status codes.
func statusForStatisticsError(code domainerror.StatisticsErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidPeriodKind,
		domainerror.ErrCodeInvalidMonth,
		domainerror.ErrCodeInvalidNavigation,
		domainerror.ErrCodeInvalidDateFormat,
		domainerror.ErrCodeUnsupportedExportFormat:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// requireUser reads the authenticated user or writes a 401.
func requireUser(ctx *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return "", false
	}
	return userID, true
}
