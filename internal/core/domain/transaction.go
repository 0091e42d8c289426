package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction is income or an expense.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// Transaction represents a single income or expense record.
// Amount is always positive; direction is carried by Type, never by sign.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	UserID        string          `json:"userID"`        // Owner of the record (Not Null)
	Amount        decimal.Decimal `json:"amount"`        // Positive value; precise decimal type
	Type          TransactionType `json:"type"`          // income or expense (Not Null)
	Description   string          `json:"description"`   // 1-100 characters
	CategoryID    string          `json:"categoryID"`    // References the category catalog, or free-form
	Date          time.Time       `json:"date"`          // Calendar date, midnight UTC
	IsRecurring   bool            `json:"isRecurring"`
	RecurringID   string          `json:"recurringID"` // Nullable; links to the originating subscription
	Notes         string          `json:"notes"`       // Nullable
	ReceiptURL    string          `json:"receiptURL"`  // Nullable
	AuditFields
}

// TransactionPatch carries a partial update for a transaction.
// Nil fields are left unchanged by the record store.
type TransactionPatch struct {
	Amount      *decimal.Decimal
	Type        *TransactionType
	Description *string
	CategoryID  *string
	Date        *time.Time
	IsRecurring *bool
	Notes       *string
	ReceiptURL  *string
}
