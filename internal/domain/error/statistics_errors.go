// Package error defines domain-specific errors for the Finance Tracker application.
package error

import "errors"

// Statistics domain errors.
var (
	// ErrInvalidPeriodKind is returned when a period selector names an unknown kind.
	ErrInvalidPeriodKind = errors.New("period must be: week, month, or year")

	// ErrInvalidMonth is returned when an explicit month is outside 1-12.
	ErrInvalidMonth = errors.New("month must be between 1 and 12")

	// ErrInvalidNavigation is returned when a navigation direction is not prev or next.
	ErrInvalidNavigation = errors.New("navigation must be: prev or next")

	// ErrInvalidDateFormat is returned when a date parameter cannot be parsed.
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrUnsupportedExportFormat is returned when an export format is not json or csv.
	ErrUnsupportedExportFormat = errors.New("export format must be: json or csv")

	// ErrMissingCollaborator is returned when a required dependency was not provided.
	ErrMissingCollaborator = errors.New("required collaborator is missing")
)

// StatisticsErrorCode defines error codes for statistics errors.
// Format: STA-XXYYYY where XX is category and YYYY is specific error.
type StatisticsErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidPeriodKind       StatisticsErrorCode = "STA-010001"
	ErrCodeInvalidMonth            StatisticsErrorCode = "STA-010002"
	ErrCodeInvalidNavigation       StatisticsErrorCode = "STA-010003"
	ErrCodeInvalidDateFormat       StatisticsErrorCode = "STA-010004"
	ErrCodeUnsupportedExportFormat StatisticsErrorCode = "STA-010005"

	// Wiring errors (02XXXX)
	ErrCodeMissingCollaborator StatisticsErrorCode = "STA-020001"

	// Internal errors (99XXXX)
	ErrCodeStatisticsInternalError StatisticsErrorCode = "STA-990001"
)

// StatisticsError represents a statistics error with code and message.
type StatisticsError struct {
	Code    StatisticsErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *StatisticsError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *StatisticsError) Unwrap() error {
	return e.Err
}

// NewStatisticsError creates a new StatisticsError with the given code and message.
func NewStatisticsError(code StatisticsErrorCode, message string, err error) *StatisticsError {
	return &StatisticsError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
