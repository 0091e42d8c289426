package dto

import (
	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OverviewResponse mirrors domain.FinancialOverview.
type OverviewResponse struct {
	TotalIncome        decimal.Decimal `json:"totalIncome"`
	TotalExpenses      decimal.Decimal `json:"totalExpenses"`
	NetAmount          decimal.Decimal `json:"netAmount"`
	SavingsRate        decimal.Decimal `json:"savingsRate"`
	SubscriptionsTotal decimal.Decimal `json:"subscriptionsTotal"`
	Period             string          `json:"period"`
}

// ToOverviewResponse converts a domain overview to its response DTO.
func ToOverviewResponse(o domain.FinancialOverview) OverviewResponse {
	return OverviewResponse(o)
}

// CategoryBreakdownResponse is one category's share of total expenses.
type CategoryBreakdownResponse struct {
	CategoryID   string          `json:"categoryID"`
	CategoryName string          `json:"categoryName"`
	Amount       decimal.Decimal `json:"amount"`
	Percentage   decimal.Decimal `json:"percentage"`
	Color        string          `json:"color"`
}

// ToCategoryBreakdownResponses converts domain breakdown rows.
func ToCategoryBreakdownResponses(rows []domain.CategoryBreakdown) []CategoryBreakdownResponse {
	out := make([]CategoryBreakdownResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, CategoryBreakdownResponse(r))
	}
	return out
}

// MonthlyTrendResponse is one month's bucket in the trend series.
type MonthlyTrendResponse struct {
	Month    string          `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Savings  decimal.Decimal `json:"savings"`
}

// ToMonthlyTrendResponses converts domain trend buckets.
func ToMonthlyTrendResponses(trends []domain.MonthlyTrend) []MonthlyTrendResponse {
	out := make([]MonthlyTrendResponse, 0, len(trends))
	for _, t := range trends {
		out = append(out, MonthlyTrendResponse(t))
	}
	return out
}
