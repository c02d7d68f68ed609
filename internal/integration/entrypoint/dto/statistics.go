// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/finance-tracker/lucapp/internal/application/usecase/statistics"
)

// PeriodResponse represents a resolved period in API responses.
type PeriodResponse struct {
	Kind  string `json:"kind"`
	Year  int    `json:"year"`
	Month int    `json:"month,omitempty"`
	Start string `json:"start"`
	End   string `json:"end"`
	Label string `json:"label"`
}

// StatisticsResponse represents the statistics of one period.
type StatisticsResponse struct {
	Period           PeriodResponse           `json:"period"`
	TransactionCount int                      `json:"transaction_count"`
	Totals           statistics.Totals        `json:"totals"`
	Categories       statistics.CategoryViews `json:"categories"`
	Charts           statistics.Charts        `json:"charts"`
	Undated          int                      `json:"undated"`
}

// ComparisonResponse represents a period compared with the one before it.
type ComparisonResponse struct {
	Current    StatisticsResponse      `json:"current"`
	Previous   StatisticsResponse      `json:"previous"`
	Comparison statistics.TotalsChange `json:"comparison"`
}

// TrendResponse represents the monthly trend series.
type TrendResponse struct {
	Window int                     `json:"window"`
	Points []statistics.TrendPoint `json:"points"`
}

// TopCategoriesResponse represents the largest categories of a period.
type TopCategoriesResponse struct {
	Period     PeriodResponse                 `json:"period"`
	Categories []statistics.CategoryAggregate `json:"categories"`
}

// ToPeriodResponse converts a statistics Period to PeriodResponse DTO.
func ToPeriodResponse(period statistics.Period) PeriodResponse {
	return PeriodResponse{
		Kind:  string(period.Kind),
		Year:  period.Year,
		Month: period.Month,
		Start: period.Start.Format(time.DateOnly),
		End:   period.End.Format(time.DateOnly),
		Label: period.Label,
	}
}

// ToStatisticsResponse converts a StatisticsResult to StatisticsResponse DTO.
func ToStatisticsResponse(result *statistics.StatisticsResult) StatisticsResponse {
	return StatisticsResponse{
		Period:           ToPeriodResponse(result.Period),
		TransactionCount: len(result.Transactions),
		Totals:           result.Totals,
		Categories:       result.Categories,
		Charts:           result.Charts,
		Undated:          result.Undated,
	}
}

// ToComparisonResponse converts a PeriodComparison to ComparisonResponse DTO.
func ToComparisonResponse(comparison *statistics.PeriodComparison) ComparisonResponse {
	return ComparisonResponse{
		Current:    ToStatisticsResponse(comparison.Current),
		Previous:   ToStatisticsResponse(comparison.Previous),
		Comparison: comparison.Change,
	}
}

// ToTrendResponse converts a GetTrendOutput to TrendResponse DTO.
func ToTrendResponse(output *statistics.GetTrendOutput) TrendResponse {
	return TrendResponse{
		Window: output.Window,
		Points: output.Points,
	}
}

// ToTopCategoriesResponse converts a GetTopCategoriesOutput to TopCategoriesResponse DTO.
func ToTopCategoriesResponse(output *statistics.GetTopCategoriesOutput) TopCategoriesResponse {
	return TopCategoriesResponse{
		Period:     ToPeriodResponse(output.Period),
		Categories: output.Categories,
	}
}
