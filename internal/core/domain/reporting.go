package domain

import (
	"github.com/shopspring/decimal"
)

// FinancialOverview summarises a transaction set plus the subscription burden.
// Derived on read; never persisted.
type FinancialOverview struct {
	TotalIncome        decimal.Decimal `json:"totalIncome"`
	TotalExpenses      decimal.Decimal `json:"totalExpenses"` // transaction expenses + subscriptions total
	NetAmount          decimal.Decimal `json:"netAmount"`
	SavingsRate        decimal.Decimal `json:"savingsRate"` // percent; 0 when income is 0
	SubscriptionsTotal decimal.Decimal `json:"subscriptionsTotal"`
	Period             string          `json:"period"`
}

// CategoryBreakdown is one expense category's share of total expenses.
type CategoryBreakdown struct {
	CategoryID   string          `json:"categoryID"`
	CategoryName string          `json:"categoryName"`
	Amount       decimal.Decimal `json:"amount"`
	Percentage   decimal.Decimal `json:"percentage"` // of total expenses; 0 when total is 0
	Color        string          `json:"color"`
}

// MonthlyTrend is one month's income/expense bucket in a trend series.
type MonthlyTrend struct {
	Month    string          `json:"month"` // YYYY-MM
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Savings  decimal.Decimal `json:"savings"` // income - expenses
}

// RenewalUrgency classifies how close a subscription renewal is.
type RenewalUrgency string

const (
	UrgencyCritical RenewalUrgency = "critical" // due within 3 days
	UrgencyWarning  RenewalUrgency = "warning"  // due within 7 days
	UrgencyNormal   RenewalUrgency = "normal"
)

// Renewal pairs a subscription with its distance to the next billing date.
type Renewal struct {
	Subscription Subscription   `json:"subscription"`
	DaysUntil    int            `json:"daysUntil"` // negative when overdue
	Urgency      RenewalUrgency `json:"urgency"`
}
