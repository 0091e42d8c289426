package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SortField selects the key transactions are ordered by.
type SortField string

const (
	SortByDate     SortField = "date"
	SortByAmount   SortField = "amount"
	SortByCategory SortField = "category"
)

// SortDirection selects ascending or descending order.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// AllTypes is the filter value that matches both income and expense records.
const AllTypes TransactionType = "all"

// TransactionFilter is the declarative filter specification for transaction
// queries. Every field is optional; absent fields impose no constraint.
// Provided fields are combined with logical AND.
type TransactionFilter struct {
	StartDate  *time.Time       // inclusive
	EndDate    *time.Time       // inclusive
	Categories []string         // match if transaction category is in the set
	Type       TransactionType  // income, expense; empty or "all" means both
	MinAmount  *decimal.Decimal // inclusive
	MaxAmount  *decimal.Decimal // inclusive
	Search     string           // case-insensitive substring over description
	SortBy     SortField        // empty means keep store ordering
	SortDir    SortDirection    // defaults to desc when SortBy is set
}
