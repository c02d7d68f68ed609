// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"time"

	"github.com/shopspring/decimal"
)

// LabelFormatter produces the human-readable strings attached to statistics.
// Labels are presentational only; no computation depends on them.
type LabelFormatter interface {
	// MonthName returns the full month name, e.g. "marzo".
	MonthName(month time.Month) string

	// ShortMonthLabel returns an abbreviated month plus year, e.g. "mar 2024".
	ShortMonthLabel(year int, month time.Month) string

	// MonthLabel returns the label of a month period, e.g. "marzo de 2024".
	MonthLabel(year int, month time.Month) string

	// WeekLabel returns the label of a trailing week ending at the given day.
	WeekLabel(start, end time.Time) string

	// YearLabel returns the label of a calendar year.
	YearLabel(year int) string

	// FormatCurrency renders an amount in the configured currency.
	FormatCurrency(amount decimal.Decimal) string
}

// Clock supplies the current instant. Injected so "now" is deterministic in tests.
type Clock interface {
	Now() time.Time
}
