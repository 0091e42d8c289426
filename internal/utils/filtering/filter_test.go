package filtering

import (
	"testing"
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func txn(id string, amount int64, txnType domain.TransactionType, category, description string, date time.Time) domain.Transaction {
	return domain.Transaction{
		TransactionID: id,
		Amount:        decimal.NewFromInt(amount),
		Type:          txnType,
		CategoryID:    category,
		Description:   description,
		Date:          date,
	}
}

func ids(txns []domain.Transaction) []string {
	out := make([]string, 0, len(txns))
	for _, t := range txns {
		out = append(out, t.TransactionID)
	}
	return out
}

func sampleTransactions() []domain.Transaction {
	return []domain.Transaction{
		txn("t1", 50, domain.Expense, "food", "Grocery run", time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)),
		txn("t2", 10, domain.Income, "other", "Refund from Store", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)),
		txn("t3", 30, domain.Expense, "transport", "Bus pass", time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)),
	}
}

func TestApplyEmptyFilter(t *testing.T) {
	input := sampleTransactions()
	result := Apply(input, domain.TransactionFilter{})

	assert.Equal(t, []string{"t1", "t2", "t3"}, ids(result), "Empty filter should keep everything in order")

	// The result is a fresh slice; mutating it must not touch the input
	result[0].Description = "changed"
	assert.Equal(t, "Grocery run", input[0].Description)
}

func TestApplyDateRange(t *testing.T) {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	result := Apply(sampleTransactions(), domain.TransactionFilter{StartDate: &start, EndDate: &end})
	assert.Equal(t, []string{"t2"}, ids(result), "Bounds are inclusive")
}

func TestApplyCategories(t *testing.T) {
	result := Apply(sampleTransactions(), domain.TransactionFilter{Categories: []string{"food", "transport"}})
	assert.Equal(t, []string{"t1", "t3"}, ids(result))
}

func TestApplyType(t *testing.T) {
	result := Apply(sampleTransactions(), domain.TransactionFilter{Type: domain.Income})
	assert.Equal(t, []string{"t2"}, ids(result))

	result = Apply(sampleTransactions(), domain.TransactionFilter{Type: domain.AllTypes})
	assert.Len(t, result, 3, "The all type should match both directions")
}

func TestApplyAmountRange(t *testing.T) {
	min := decimal.NewFromInt(30)
	max := decimal.NewFromInt(50)

	result := Apply(sampleTransactions(), domain.TransactionFilter{MinAmount: &min, MaxAmount: &max})
	assert.Equal(t, []string{"t1", "t3"}, ids(result), "Amount bounds are inclusive")
}

func TestApplySearch(t *testing.T) {
	result := Apply(sampleTransactions(), domain.TransactionFilter{Search: "STORE"})
	assert.Equal(t, []string{"t2"}, ids(result), "Search should be case-insensitive")

	result = Apply(sampleTransactions(), domain.TransactionFilter{Search: "no such thing"})
	assert.Empty(t, result)
}

func TestApplyCombinedPredicates(t *testing.T) {
	min := decimal.NewFromInt(20)
	result := Apply(sampleTransactions(), domain.TransactionFilter{
		Type:       domain.Expense,
		MinAmount:  &min,
		Categories: []string{"transport"},
	})
	assert.Equal(t, []string{"t3"}, ids(result), "Predicates combine with AND")
}

func TestApplySortAmount(t *testing.T) {
	input := sampleTransactions() // amounts 50, 10, 30

	result := Apply(input, domain.TransactionFilter{SortBy: domain.SortByAmount, SortDir: domain.SortAsc})
	assert.Equal(t, []string{"t2", "t3", "t1"}, ids(result))

	result = Apply(input, domain.TransactionFilter{SortBy: domain.SortByAmount, SortDir: domain.SortDesc})
	assert.Equal(t, []string{"t1", "t3", "t2"}, ids(result))
}

func TestApplySortDate(t *testing.T) {
	result := Apply(sampleTransactions(), domain.TransactionFilter{SortBy: domain.SortByDate, SortDir: domain.SortDesc})
	assert.Equal(t, []string{"t3", "t2", "t1"}, ids(result))
}

func TestApplySortStableOnTies(t *testing.T) {
	d := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	input := []domain.Transaction{
		txn("a", 20, domain.Expense, "food", "first", d),
		txn("b", 20, domain.Expense, "food", "second", d),
		txn("c", 20, domain.Expense, "food", "third", d),
	}

	result := Apply(input, domain.TransactionFilter{SortBy: domain.SortByAmount, SortDir: domain.SortDesc})
	assert.Equal(t, []string{"a", "b", "c"}, ids(result), "Equal amounts should keep their original order")
}
