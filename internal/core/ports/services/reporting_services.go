package services

import (
	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingService derives overview totals, category breakdowns and monthly
// trend series from a transaction snapshot. All methods are pure and
// synchronous; they never mutate their input.
type ReportingService interface {
	Overview(txns []domain.Transaction, subscriptionsMonthlyTotal decimal.Decimal) domain.FinancialOverview
	CategoryBreakdown(txns []domain.Transaction) []domain.CategoryBreakdown
	MonthlyTrends(txns []domain.Transaction, windowMonths int) []domain.MonthlyTrend
}
