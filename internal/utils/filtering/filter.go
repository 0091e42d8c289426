// Package filtering applies declarative filter specifications to in-memory
// transaction collections and orders the result.
package filtering

import (
	"sort"
	"strings"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
)

// Apply filters transactions by every field present on the filter (logical
// AND) and then sorts by the requested key and direction. The input slice is
// never mutated; the result is a fresh slice. With an empty filter the result
// is a copy in the original order. Ties keep their original relative order.
func Apply(transactions []domain.Transaction, filter domain.TransactionFilter) []domain.Transaction {
	result := make([]domain.Transaction, 0, len(transactions))
	for _, txn := range transactions {
		if matches(txn, filter) {
			result = append(result, txn)
		}
	}

	if filter.SortBy != "" {
		sortTransactions(result, filter.SortBy, filter.SortDir)
	}
	return result
}

func matches(txn domain.Transaction, f domain.TransactionFilter) bool {
	if f.StartDate != nil && txn.Date.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && txn.Date.After(*f.EndDate) {
		return false
	}
	if len(f.Categories) > 0 && !containsString(f.Categories, txn.CategoryID) {
		return false
	}
	if f.Type != "" && f.Type != domain.AllTypes && txn.Type != f.Type {
		return false
	}
	if f.MinAmount != nil && txn.Amount.LessThan(*f.MinAmount) {
		return false
	}
	if f.MaxAmount != nil && txn.Amount.GreaterThan(*f.MaxAmount) {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(txn.Description), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

func sortTransactions(txns []domain.Transaction, by domain.SortField, dir domain.SortDirection) {
	asc := dir == domain.SortAsc

	var less func(a, b domain.Transaction) bool
	switch by {
	case domain.SortByDate:
		less = func(a, b domain.Transaction) bool { return a.Date.Before(b.Date) }
	case domain.SortByAmount:
		less = func(a, b domain.Transaction) bool { return a.Amount.LessThan(b.Amount) }
	case domain.SortByCategory:
		less = func(a, b domain.Transaction) bool { return a.CategoryID < b.CategoryID }
	default:
		return
	}

	sort.SliceStable(txns, func(i, j int) bool {
		if asc {
			return less(txns[i], txns[j])
		}
		return less(txns[j], txns[i])
	})
}

func containsString(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
