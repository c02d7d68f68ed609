// Package statistics contains the transaction aggregation engine and the
// statistics use cases built on top of it.
package statistics

import (
	"fmt"
	"time"

	"github.com/finance-tracker/lucapp/internal/application/adapter"
	domainerror "github.com/finance-tracker/lucapp/internal/domain/error"
)

// Kind identifies the span of a statistics period.
type Kind string

const (
	KindWeek  Kind = "week"
	KindMonth Kind = "month"
	KindYear  Kind = "year"
)

// IsValid reports whether the kind is one of the supported spans.
func (k Kind) IsValid() bool {
	return k == KindWeek || k == KindMonth || k == KindYear
}

// weekSpanDays is the length of the trailing week window.
const weekSpanDays = 7

// Selector names the period a query is about. Selectors are values: navigation
// returns a new selector and never changes the receiver.
//
// Month selectors use Year and Month. Year selectors use Year. Week selectors
// use Anchor as "now"; a zero Anchor means the resolver's clock.
type Selector struct {
	Kind   Kind
	Year   int
	Month  time.Month
	Anchor time.Time
}

// NewMonthSelector returns a selector for the given calendar month.
func NewMonthSelector(year int, month time.Month) Selector {
	return Selector{Kind: KindMonth, Year: year, Month: month}
}

// NewWeekSelector returns a selector for the seven days ending at anchor.
func NewWeekSelector(anchor time.Time) Selector {
	return Selector{Kind: KindWeek, Anchor: anchor}
}

// NewYearSelector returns a selector for the given calendar year.
func NewYearSelector(year int) Selector {
	return Selector{Kind: KindYear, Year: year}
}

// Previous returns the selector immediately before s.
func (s Selector) Previous() Selector {
	return s.shift(-1)
}

// Next returns the selector immediately after s.
func (s Selector) Next() Selector {
	return s.shift(1)
}

func (s Selector) shift(step int) Selector {
	switch s.Kind {
	case KindMonth:
		if s.Month < time.January || s.Month > time.December {
			return s
		}
		month := int(s.Month) + step
		year := s.Year
		if month < 1 {
			month = 12
			year--
		} else if month > 12 {
			month = 1
			year++
		}
		s.Year, s.Month = year, time.Month(month)
	case KindYear:
		s.Year += step
	case KindWeek:
		if !s.Anchor.IsZero() {
			s.Anchor = s.Anchor.AddDate(0, 0, step*weekSpanDays)
		}
	}
	return s
}

// Period is a resolved, inclusive date range. Start and End are midnight of
// the first and last day in the resolver's location.
type Period struct {
	Kind  Kind      `json:"kind"`
	Year  int       `json:"year"`
	Month int       `json:"month"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

// Contains reports whether t falls on a day within the period.
func (p Period) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	day := startOfDay(t.In(p.Start.Location()))
	return !day.Before(p.Start) && !day.After(p.End)
}

// Resolver turns selectors into concrete periods.
type Resolver struct {
	clock     adapter.Clock
	formatter adapter.LabelFormatter
	location  *time.Location
}

// NewResolver creates a new Resolver. A nil location means UTC.
func NewResolver(clock adapter.Clock, formatter adapter.LabelFormatter, location *time.Location) (*Resolver, error) {
	if clock == nil {
		return nil, missingCollaborator("clock")
	}
	if formatter == nil {
		return nil, missingCollaborator("label formatter")
	}
	if location == nil {
		location = time.UTC
	}
	return &Resolver{
		clock:     clock,
		formatter: formatter,
		location:  location,
	}, nil
}

// Now returns the clock's current instant in the resolver's location.
func (r *Resolver) Now() time.Time {
	return r.clock.Now().In(r.location)
}

// Location returns the location period boundaries are computed in.
func (r *Resolver) Location() *time.Location {
	return r.location
}

// Resolve computes the date range described by the selector.
func (r *Resolver) Resolve(s Selector) (Period, error) {
	switch s.Kind {
	case KindMonth:
		if s.Month < time.January || s.Month > time.December {
			return Period{}, domainerror.NewStatisticsError(
				domainerror.ErrCodeInvalidMonth,
				fmt.Sprintf("invalid month %d", s.Month),
				domainerror.ErrInvalidMonth,
			)
		}
		year := s.Year
		if year == 0 {
			year = r.Now().Year()
		}
		start := time.Date(year, s.Month, 1, 0, 0, 0, 0, r.location)
		return Period{
			Kind:  KindMonth,
			Year:  year,
			Month: int(s.Month),
			Start: start,
			End:   start.AddDate(0, 1, -1),
			Label: r.formatter.MonthLabel(year, s.Month),
		}, nil

	case KindWeek:
		now := s.Anchor
		if now.IsZero() {
			now = r.Now()
		}
		end := startOfDay(now.In(r.location))
		start := end.AddDate(0, 0, -weekSpanDays)
		return Period{
			Kind:  KindWeek,
			Year:  end.Year(),
			Month: int(end.Month()),
			Start: start,
			End:   end,
			Label: r.formatter.WeekLabel(start, end),
		}, nil

	case KindYear:
		year := s.Year
		if year == 0 {
			year = r.Now().Year()
		}
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, r.location)
		return Period{
			Kind:  KindYear,
			Year:  year,
			Start: start,
			End:   time.Date(year, time.December, 31, 0, 0, 0, 0, r.location),
			Label: r.formatter.YearLabel(year),
		}, nil

	default:
		return Period{}, domainerror.NewStatisticsError(
			domainerror.ErrCodeInvalidPeriodKind,
			fmt.Sprintf("invalid period %q", s.Kind),
			domainerror.ErrInvalidPeriodKind,
		)
	}
}

// Current builds a selector of the given kind positioned at the clock's now.
func (r *Resolver) Current(kind Kind) (Selector, error) {
	now := r.Now()
	switch kind {
	case KindMonth:
		return NewMonthSelector(now.Year(), now.Month()), nil
	case KindWeek:
		return NewWeekSelector(now), nil
	case KindYear:
		return NewYearSelector(now.Year()), nil
	default:
		return Selector{}, domainerror.NewStatisticsError(
			domainerror.ErrCodeInvalidPeriodKind,
			fmt.Sprintf("invalid period %q", kind),
			domainerror.ErrInvalidPeriodKind,
		)
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func missingCollaborator(name string) error {
	return domainerror.NewStatisticsError(
		domainerror.ErrCodeMissingCollaborator,
		name+" is required",
		domainerror.ErrMissingCollaborator,
	)
}
