package services

import (
	"context"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/fintrack-app/fintrack_backend/internal/dto"
)

// TransactionSvcFacade is the record-store facade for transactions: it owns the
// in-memory per-owner collection, applies optimistic local mutation and
// dispatches persistence calls to the external record store.
type TransactionSvcFacade interface {
	// FetchTransactions retrieves from the store, replaces the in-memory
	// collection and returns the (optionally filtered/sorted) result.
	FetchTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error)

	// CachedTransactions returns a snapshot of the owner's in-memory
	// collection, fetching it first if no collection is held yet.
	CachedTransactions(ctx context.Context, userID string) ([]domain.Transaction, error)

	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, userID string, transactionID string) error
}
