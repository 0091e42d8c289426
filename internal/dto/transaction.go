package dto

import (
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for calendar dates. Transactions carry a
// date with no time component.
const DateLayout = "2006-01-02"

// CreateTransactionRequest defines the data needed to record a transaction.
type CreateTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Type        string          `json:"type" binding:"required,oneof=income expense"`
	Description string          `json:"description" binding:"required,min=1,max=100"`
	Category    string          `json:"category" binding:"required"`
	Date        string          `json:"date" binding:"required,datetime=2006-01-02"`
	IsRecurring bool            `json:"isRecurring"`
	RecurringID *string         `json:"recurringID"` // Optional, use pointer for nullability
	Notes       *string         `json:"notes"`       // Optional
	ReceiptURL  *string         `json:"receiptURL"`  // Optional
}

// UpdateTransactionRequest defines the data allowed for updating a transaction.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateTransactionRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	Type        *string          `json:"type" binding:"omitempty,oneof=income expense"`
	Description *string          `json:"description" binding:"omitempty,min=1,max=100"`
	Category    *string          `json:"category"`
	Date        *string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	IsRecurring *bool            `json:"isRecurring"`
	Notes       *string          `json:"notes"`
	ReceiptURL  *string          `json:"receiptURL"`
}

// ListTransactionsQuery carries the filter specification as query parameters.
// All fields are optional; provided fields are combined with logical AND.
type ListTransactionsQuery struct {
	StartDate  string   `form:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate    string   `form:"endDate" binding:"omitempty,datetime=2006-01-02"`
	Categories []string `form:"category"`
	Type       string   `form:"type" binding:"omitempty,oneof=income expense all"`
	MinAmount  *string  `form:"minAmount"`
	MaxAmount  *string  `form:"maxAmount"`
	Search     string   `form:"search"`
	SortBy     string   `form:"sortBy" binding:"omitempty,oneof=date amount category"`
	SortDir    string   `form:"sortDirection" binding:"omitempty,oneof=asc desc"`
}

// ToFilter converts the query DTO into the domain filter specification.
func (q ListTransactionsQuery) ToFilter() (domain.TransactionFilter, error) {
	var f domain.TransactionFilter

	if q.StartDate != "" {
		d, err := time.Parse(DateLayout, q.StartDate)
		if err != nil {
			return f, err
		}
		f.StartDate = &d
	}
	if q.EndDate != "" {
		d, err := time.Parse(DateLayout, q.EndDate)
		if err != nil {
			return f, err
		}
		f.EndDate = &d
	}
	f.Categories = q.Categories
	f.Type = domain.TransactionType(q.Type)
	if q.MinAmount != nil {
		min, err := decimal.NewFromString(*q.MinAmount)
		if err != nil {
			return f, err
		}
		f.MinAmount = &min
	}
	if q.MaxAmount != nil {
		max, err := decimal.NewFromString(*q.MaxAmount)
		if err != nil {
			return f, err
		}
		f.MaxAmount = &max
	}
	f.Search = q.Search
	f.SortBy = domain.SortField(q.SortBy)
	f.SortDir = domain.SortDirection(q.SortDir)
	if f.SortBy != "" && f.SortDir == "" {
		f.SortDir = domain.SortDesc
	}
	return f, nil
}

// TransactionResponse defines the data returned for a transaction.
// Mirrors domain.Transaction with the date flattened to YYYY-MM-DD.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	UserID        string          `json:"userID"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Date          string          `json:"date"`
	IsRecurring   bool            `json:"isRecurring"`
	RecurringID   string          `json:"recurringID,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	ReceiptURL    string          `json:"receiptURL,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		UserID:        txn.UserID,
		Amount:        txn.Amount,
		Type:          string(txn.Type),
		Description:   txn.Description,
		Category:      txn.CategoryID,
		Date:          txn.Date.Format(DateLayout),
		IsRecurring:   txn.IsRecurring,
		RecurringID:   txn.RecurringID,
		Notes:         txn.Notes,
		ReceiptURL:    txn.ReceiptURL,
		CreatedAt:     txn.CreatedAt,
		LastUpdatedAt: txn.LastUpdatedAt,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txns))
	for i := range txns {
		out = append(out, ToTransactionResponse(&txns[i]))
	}
	return out
}
