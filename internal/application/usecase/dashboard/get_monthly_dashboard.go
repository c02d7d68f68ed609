// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/lucapp/internal/application/adapter"
	"github.com/finance-tracker/lucapp/internal/application/usecase/statistics"
	"github.com/finance-tracker/lucapp/internal/domain/entity"
	domainerror "github.com/finance-tracker/lucapp/internal/domain/error"
)

// Navigation directions accepted by the monthly dashboard.
const (
	NavigatePrevious = "prev"
	NavigateNext     = "next"
)

// TopTransactionsLimit is the size of the top income and expense lists.
const TopTransactionsLimit = 5

// GetMonthlyDashboardInput represents the input for the monthly dashboard.
// A zero Year or Month means the current month. Navigate moves one month
// before resolving.
type GetMonthlyDashboardInput struct {
	UserID   string
	Year     int
	Month    time.Month
	Navigate string
}

// MonthInfo describes the month shown by the dashboard.
type MonthInfo struct {
	Year        int
	Month       time.Month
	Name        string
	Label       string
	FirstDay    time.Time
	LastDay     time.Time
	DaysInMonth int
}

// Stats holds transaction counts for the month.
type Stats struct {
	TransactionCount   int
	IncomeCount        int
	ExpenseCount       int
	AverageTransaction decimal.Decimal
}

// SummaryCards holds the derived figures shown next to the totals.
type SummaryCards struct {
	AverageExpense decimal.Decimal
	AverageIncome  decimal.Decimal
	DailyBalance   decimal.Decimal
}

// FormattedTotals holds the totals rendered in the configured currency.
type FormattedTotals struct {
	Income   string
	Expenses string
	Balance  string
}

// GetMonthlyDashboardOutput represents the output of the monthly dashboard.
type GetMonthlyDashboardOutput struct {
	MonthInfo       MonthInfo
	Transactions    []entity.Transaction
	Totals          statistics.Totals
	FormattedTotals FormattedTotals
	Stats           Stats
	SummaryCards    SummaryCards
	TopExpenses     []entity.Transaction
	TopIncomes      []entity.Transaction
}

// GetMonthlyDashboardUseCase handles building the monthly dashboard.
type GetMonthlyDashboardUseCase struct {
	transactionRepo adapter.TransactionRepository
	engine          *statistics.Engine
	formatter       adapter.LabelFormatter
}

// NewGetMonthlyDashboardUseCase creates a new GetMonthlyDashboardUseCase instance.
func NewGetMonthlyDashboardUseCase(
	transactionRepo adapter.TransactionRepository,
	engine *statistics.Engine,
	formatter adapter.LabelFormatter,
) *GetMonthlyDashboardUseCase {
	return &GetMonthlyDashboardUseCase{
		transactionRepo: transactionRepo,
		engine:          engine,
		formatter:       formatter,
	}
}

// Execute builds the dashboard for the requested month.
func (uc *GetMonthlyDashboardUseCase) Execute(ctx context.Context, input GetMonthlyDashboardInput) (*GetMonthlyDashboardOutput, error) {
	selector, err := uc.selectorFor(input)
	if err != nil {
		return nil, err
	}

	transactions, err := uc.transactionRepo.GetAllTransactions(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	result, err := uc.engine.BuildStatistics(transactions, selector)
	if err != nil {
		return nil, err
	}

	monthTransactions := make([]entity.Transaction, len(result.Transactions))
	copy(monthTransactions, result.Transactions)
	sort.SliceStable(monthTransactions, func(i, j int) bool {
		return monthTransactions[i].Date.After(monthTransactions[j].Date)
	})

	var incomes, expenses []entity.Transaction
	for _, tx := range monthTransactions {
		if statistics.Classify(tx) == entity.TransactionTypeIncome {
			incomes = append(incomes, tx)
		} else {
			expenses = append(expenses, tx)
		}
	}

	period := result.Period
	days := period.End.Day()
	totals := result.Totals

	return &GetMonthlyDashboardOutput{
		MonthInfo: MonthInfo{
			Year:        period.Year,
			Month:       time.Month(period.Month),
			Name:        uc.formatter.MonthName(time.Month(period.Month)),
			Label:       period.Label,
			FirstDay:    period.Start,
			LastDay:     period.End,
			DaysInMonth: days,
		},
		Transactions: monthTransactions,
		Totals:       totals,
		FormattedTotals: FormattedTotals{
			Income:   uc.formatter.FormatCurrency(totals.Income),
			Expenses: uc.formatter.FormatCurrency(totals.Expenses),
			Balance:  uc.formatter.FormatCurrency(totals.Balance),
		},
		Stats: Stats{
			TransactionCount:   len(monthTransactions),
			IncomeCount:        len(incomes),
			ExpenseCount:       len(expenses),
			AverageTransaction: average(totals.Income.Add(totals.Expenses), len(monthTransactions)),
		},
		SummaryCards: SummaryCards{
			AverageExpense: average(totals.Expenses, len(expenses)),
			AverageIncome:  average(totals.Income, len(incomes)),
			DailyBalance:   average(totals.Balance, days),
		},
		TopExpenses: topByAmount(expenses, TopTransactionsLimit),
		TopIncomes:  topByAmount(incomes, TopTransactionsLimit),
	}, nil
}

// selectorFor resolves the requested month and applies navigation.
func (uc *GetMonthlyDashboardUseCase) selectorFor(input GetMonthlyDashboardInput) (statistics.Selector, error) {
	var selector statistics.Selector
	if input.Year == 0 || input.Month == 0 {
		current, err := uc.engine.Resolver().Current(statistics.KindMonth)
		if err != nil {
			return statistics.Selector{}, err
		}
		selector = current
	} else {
		selector = statistics.NewMonthSelector(input.Year, input.Month)
	}

	switch input.Navigate {
	case "":
		return selector, nil
	case NavigatePrevious:
		return selector.Previous(), nil
	case NavigateNext:
		return selector.Next(), nil
	default:
		return statistics.Selector{}, domainerror.NewStatisticsError(
			domainerror.ErrCodeInvalidNavigation,
			fmt.Sprintf("invalid navigation %q", input.Navigate),
			domainerror.ErrInvalidNavigation,
		)
	}
}

// average divides total by count, rounded to cents; zero when count is zero.
func average(total decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(count))).Round(2)
}

// topByAmount returns up to limit transactions, largest amount first.
func topByAmount(transactions []entity.Transaction, limit int) []entity.Transaction {
	ranked := make([]entity.Transaction, len(transactions))
	copy(ranked, transactions)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amount.GreaterThan(ranked[j].Amount)
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
