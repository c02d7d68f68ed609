// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/finance-tracker/lucapp/internal/application/usecase/dashboard"
	"github.com/finance-tracker/lucapp/internal/application/usecase/statistics"
	"github.com/finance-tracker/lucapp/internal/domain/entity"
)

// MonthlyDashboardResponse represents the response for the monthly dashboard API.
type MonthlyDashboardResponse struct {
	Data MonthlyDashboardData `json:"data"`
}

// MonthlyDashboardData represents the data section of the dashboard response.
type MonthlyDashboardData struct {
	Month           MonthInfoResponse       `json:"month"`
	Totals          statistics.Totals       `json:"totals"`
	FormattedTotals FormattedTotalsResponse `json:"formatted_totals"`
	Stats           DashboardStatsResponse  `json:"stats"`
	SummaryCards    SummaryCardsResponse    `json:"summary_cards"`
	Transactions    []DashboardTransaction  `json:"transactions"`
	TopExpenses     []DashboardTransaction  `json:"top_expenses"`
	TopIncomes      []DashboardTransaction  `json:"top_incomes"`
}

// MonthInfoResponse describes the month rendered by the dashboard.
type MonthInfoResponse struct {
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	Name        string `json:"name"`
	Label       string `json:"label"`
	FirstDay    string `json:"first_day"`
	LastDay     string `json:"last_day"`
	DaysInMonth int    `json:"days_in_month"`
}

// FormattedTotalsResponse holds the totals rendered as currency strings.
type FormattedTotalsResponse struct {
	Income   string `json:"income"`
	Expenses string `json:"expenses"`
	Balance  string `json:"balance"`
}

// DashboardStatsResponse holds transaction counts for the month.
type DashboardStatsResponse struct {
	TransactionCount   int    `json:"transaction_count"`
	IncomeCount        int    `json:"income_count"`
	ExpenseCount       int    `json:"expense_count"`
	AverageTransaction string `json:"average_transaction"`
}

// SummaryCardsResponse holds the derived averages.
type SummaryCardsResponse struct {
	AverageExpense string `json:"average_expense"`
	AverageIncome  string `json:"average_income"`
	DailyBalance   string `json:"daily_balance"`
}

// DashboardTransaction is a transaction as listed on the dashboard.
type DashboardTransaction struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Color       string `json:"color"`
}

// ToMonthlyDashboardResponse converts a GetMonthlyDashboardOutput to MonthlyDashboardResponse DTO.
func ToMonthlyDashboardResponse(output *dashboard.GetMonthlyDashboardOutput) MonthlyDashboardResponse {
	info := output.MonthInfo
	return MonthlyDashboardResponse{
		Data: MonthlyDashboardData{
			Month: MonthInfoResponse{
				Year:        info.Year,
				Month:       int(info.Month),
				Name:        info.Name,
				Label:       info.Label,
				FirstDay:    info.FirstDay.Format(time.DateOnly),
				LastDay:     info.LastDay.Format(time.DateOnly),
				DaysInMonth: info.DaysInMonth,
			},
			Totals: output.Totals,
			FormattedTotals: FormattedTotalsResponse{
				Income:   output.FormattedTotals.Income,
				Expenses: output.FormattedTotals.Expenses,
				Balance:  output.FormattedTotals.Balance,
			},
			Stats: DashboardStatsResponse{
				TransactionCount:   output.Stats.TransactionCount,
				IncomeCount:        output.Stats.IncomeCount,
				ExpenseCount:       output.Stats.ExpenseCount,
				AverageTransaction: output.Stats.AverageTransaction.StringFixed(2),
			},
			SummaryCards: SummaryCardsResponse{
				AverageExpense: output.SummaryCards.AverageExpense.StringFixed(2),
				AverageIncome:  output.SummaryCards.AverageIncome.StringFixed(2),
				DailyBalance:   output.SummaryCards.DailyBalance.StringFixed(2),
			},
			Transactions: toDashboardTransactions(output.Transactions),
			TopExpenses:  toDashboardTransactions(output.TopExpenses),
			TopIncomes:   toDashboardTransactions(output.TopIncomes),
		},
	}
}

func toDashboardTransactions(txs []entity.Transaction) []DashboardTransaction {
	result := make([]DashboardTransaction, 0, len(txs))
	for _, tx := range txs {
		result = append(result, DashboardTransaction{
			ID:          tx.ID,
			Date:        tx.Date.Format(time.DateOnly),
			Description: tx.Description,
			Amount:      tx.Amount.StringFixed(2),
			Type:        string(statistics.Classify(tx)),
			Category:    tx.Category,
			Color:       statistics.ColorFor(tx.Category),
		})
	}
	return result
}
