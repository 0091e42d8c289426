package services

import (
	"sort"
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	portssvc "github.com/fintrack-app/fintrack_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// DefaultTrendWindowMonths is the default width of the monthly trend series.
const DefaultTrendWindowMonths = 6

// monthKeyLayout formats a date as its YYYY-MM bucket key. Lexicographic
// order of these keys is date order.
const monthKeyLayout = "2006-01"

// reportingService derives overview totals, category breakdowns and monthly
// trend series from transaction snapshots. Everything here is pure; the only
// state is the clock used to seed trend buckets.
type reportingService struct {
	BaseService
	nowFn func() time.Time
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingClock overrides the clock used to seed trend buckets.
func WithReportingClock(nowFn func() time.Time) ReportingServiceOption {
	return func(s *reportingService) {
		s.nowFn = nowFn
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{nowFn: time.Now}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// Overview partitions transactions by type and folds the subscription burden
// into total expenses. The savings rate is net/income as a percentage and is
// 0 when there is no income; that is a contract, not an error.
func (s *reportingService) Overview(txns []domain.Transaction, subscriptionsMonthlyTotal decimal.Decimal) domain.FinancialOverview {
	totalIncome := decimal.Zero
	expenseSum := decimal.Zero
	for _, txn := range txns {
		if txn.Type == domain.Income {
			totalIncome = totalIncome.Add(txn.Amount)
		} else {
			expenseSum = expenseSum.Add(txn.Amount)
		}
	}

	totalExpenses := expenseSum.Add(subscriptionsMonthlyTotal)
	netAmount := totalIncome.Sub(totalExpenses)

	savingsRate := decimal.Zero
	if totalIncome.IsPositive() {
		savingsRate = netAmount.Div(totalIncome).Mul(oneHundred)
	}

	return domain.FinancialOverview{
		TotalIncome:        totalIncome,
		TotalExpenses:      totalExpenses,
		NetAmount:          netAmount,
		SavingsRate:        savingsRate,
		SubscriptionsTotal: subscriptionsMonthlyTotal,
		Period:             "current",
	}
}

// CategoryBreakdown groups expense transactions by category and computes each
// group's share of the expense total. Groups come back sorted by amount
// descending; equal amounts keep first-seen order so the result is
// deterministic. Unknown category ids resolve to the raw id and the default
// gray color.
func (s *reportingService) CategoryBreakdown(txns []domain.Transaction) []domain.CategoryBreakdown {
	sums := make(map[string]decimal.Decimal)
	order := make([]string, 0)
	totalExpenses := decimal.Zero

	for _, txn := range txns {
		if txn.Type != domain.Expense {
			continue
		}
		if _, seen := sums[txn.CategoryID]; !seen {
			order = append(order, txn.CategoryID)
		}
		sums[txn.CategoryID] = sums[txn.CategoryID].Add(txn.Amount)
		totalExpenses = totalExpenses.Add(txn.Amount)
	}

	breakdown := make([]domain.CategoryBreakdown, 0, len(order))
	for _, categoryID := range order {
		amount := sums[categoryID]
		percentage := decimal.Zero
		if totalExpenses.IsPositive() {
			percentage = amount.Div(totalExpenses).Mul(oneHundred)
		}
		category := domain.LookupCategory(categoryID)
		breakdown = append(breakdown, domain.CategoryBreakdown{
			CategoryID:   categoryID,
			CategoryName: category.Name,
			Amount:       amount,
			Percentage:   percentage,
			Color:        category.Color,
		})
	}

	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Amount.GreaterThan(breakdown[j].Amount)
	})
	return breakdown
}

// MonthlyTrends buckets transactions by calendar month. The windowMonths
// buckets ending at the current month are pre-seeded with zeros so empty
// months still appear; transactions outside the window get buckets on demand
// rather than being dropped. The series is ascending by month key.
func (s *reportingService) MonthlyTrends(txns []domain.Transaction, windowMonths int) []domain.MonthlyTrend {
	if windowMonths <= 0 {
		windowMonths = DefaultTrendWindowMonths
	}

	type bucket struct {
		income   decimal.Decimal
		expenses decimal.Decimal
	}
	buckets := make(map[string]*bucket, windowMonths)

	now := s.nowFn().UTC()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := windowMonths - 1; i >= 0; i-- {
		key := firstOfMonth.AddDate(0, -i, 0).Format(monthKeyLayout)
		buckets[key] = &bucket{income: decimal.Zero, expenses: decimal.Zero}
	}

	for _, txn := range txns {
		key := txn.Date.Format(monthKeyLayout)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{income: decimal.Zero, expenses: decimal.Zero}
			buckets[key] = b
		}
		if txn.Type == domain.Income {
			b.income = b.income.Add(txn.Amount)
		} else {
			b.expenses = b.expenses.Add(txn.Amount)
		}
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	trends := make([]domain.MonthlyTrend, 0, len(keys))
	for _, key := range keys {
		b := buckets[key]
		trends = append(trends, domain.MonthlyTrend{
			Month:    key,
			Income:   b.income,
			Expenses: b.expenses,
			Savings:  b.income.Sub(b.expenses),
		})
	}
	return trends
}
