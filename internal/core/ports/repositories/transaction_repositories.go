package repositories

import (
	"context"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
)

// TransactionReader defines read operations against the external record store.
type TransactionReader interface {
	// ListTransactions retrieves one owner's transactions, applying any filter
	// fields the store can push down, pre-sorted by the store's own ordering.
	ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations against the external record store.
type TransactionWriter interface {
	// SaveTransaction persists a new transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransaction applies a partial update and returns the stored entity.
	UpdateTransaction(ctx context.Context, transactionID string, patch domain.TransactionPatch) (*domain.Transaction, error)

	// DeleteTransaction removes a transaction.
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionRepository combines all transaction record-store operations.
type TransactionRepository interface {
	TransactionReader
	TransactionWriter
}
