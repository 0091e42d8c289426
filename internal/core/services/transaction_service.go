package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/apperrors"
	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack-app/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrack-app/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-app/fintrack_backend/internal/dto"
	"github.com/fintrack-app/fintrack_backend/internal/utils/filtering"
	"github.com/google/uuid"
)

// TransactionService is the record-store facade for transactions. It owns the
// per-owner in-memory collection, mirrors confirmed store mutations into it
// and hands read-only snapshots to the aggregation layer.
type TransactionService struct {
	BaseService
	repo  portsrepo.TransactionRepository
	cache *sessionCache[domain.Transaction]
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(repo portsrepo.TransactionRepository) *TransactionService {
	return &TransactionService{
		repo:  repo,
		cache: newSessionCache[domain.Transaction](),
	}
}

// Ensure TransactionService implements the facade interface
var _ portssvc.TransactionSvcFacade = (*TransactionService)(nil)

// FetchTransactions retrieves the owner's transactions from the record store,
// replaces the in-memory collection and returns the filtered, sorted result.
// A fetch that resolves after a newer fetch has already replaced the
// collection leaves the collection alone; its result is still returned to the
// caller that asked for it.
func (s *TransactionService) FetchTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	gen := s.cache.beginFetch(userID)

	txns, err := s.repo.ListTransactions(ctx, userID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions from record store", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to fetch transactions: %w", apperrors.StoreFailure(err))
	}

	if !s.cache.completeFetch(userID, gen, txns) {
		s.LogDebug(ctx, "Discarding superseded transaction fetch", slog.String("user_id", userID), slog.Uint64("fetch_gen", gen))
	}

	// The store returns its own ordering; apply the requested sort (and
	// re-check predicates) locally.
	return filtering.Apply(txns, filter), nil
}

// CachedTransactions returns a snapshot of the owner's in-memory collection,
// fetching from the store first when none is held yet.
func (s *TransactionService) CachedTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	if txns, ok := s.cache.snapshot(userID); ok {
		return txns, nil
	}
	return s.FetchTransactions(ctx, userID, domain.TransactionFilter{})
}

// CreateTransaction validates the request, persists the new transaction and
// prepends it to the in-memory collection on success.
func (s *TransactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	date, err := validateTransactionInput(req.Type, req.Description, req.Date)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		Amount:        req.Amount,
		Type:          domain.TransactionType(req.Type),
		Description:   req.Description,
		CategoryID:    req.Category,
		Date:          date,
		IsRecurring:   req.IsRecurring,
		RecurringID:   deref(req.RecurringID),
		Notes:         deref(req.Notes),
		ReceiptURL:    deref(req.ReceiptURL),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.repo.SaveTransaction(ctx, txn); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to save transaction in record store", slog.String("transaction_id", txn.TransactionID))
		return nil, fmt.Errorf("failed to create transaction: %w", apperrors.StoreFailure(err))
	}

	s.cache.prepend(userID, txn)
	s.LogInfo(ctx, "Transaction created", slog.String("transaction_id", txn.TransactionID), slog.String("user_id", userID))
	return &txn, nil
}

// UpdateTransaction validates the partial payload, applies it through the
// record store and mirrors the stored entity into the in-memory collection.
func (s *TransactionService) UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	patch, err := buildTransactionPatch(req)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateTransaction(ctx, transactionID, patch)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to update transaction in record store", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to update transaction: %w", apperrors.StoreFailure(err))
	}

	s.cache.replaceWhere(userID, func(t domain.Transaction) bool { return t.TransactionID == transactionID }, *updated)
	s.LogInfo(ctx, "Transaction updated", slog.String("transaction_id", transactionID))
	return updated, nil
}

// DeleteTransaction removes the transaction from the record store and, on
// success, from the in-memory collection.
func (s *TransactionService) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	if err := s.repo.DeleteTransaction(ctx, transactionID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		s.LogError(ctx, err, "Failed to delete transaction in record store", slog.String("transaction_id", transactionID))
		return fmt.Errorf("failed to delete transaction: %w", apperrors.StoreFailure(err))
	}

	s.cache.removeWhere(userID, func(t domain.Transaction) bool { return t.TransactionID == transactionID })
	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

// validateTransactionInput enforces the field rules that must hold before a
// payload reaches the record store.
func validateTransactionInput(txnType, description, date string) (time.Time, error) {
	if t := domain.TransactionType(txnType); t != domain.Income && t != domain.Expense {
		return time.Time{}, fmt.Errorf("%w: type must be income or expense", apperrors.ErrValidation)
	}
	if len(description) == 0 || len(description) > 100 {
		return time.Time{}, fmt.Errorf("%w: description must be 1-100 characters", apperrors.ErrValidation)
	}
	parsed, err := time.ParseInLocation(dto.DateLayout, date, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be a valid YYYY-MM-DD date", apperrors.ErrValidation)
	}
	return parsed, nil
}

// buildTransactionPatch converts an update request into a store patch,
// validating every provided field.
func buildTransactionPatch(req dto.UpdateTransactionRequest) (domain.TransactionPatch, error) {
	var patch domain.TransactionPatch

	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return patch, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
		}
		patch.Amount = req.Amount
	}
	if req.Type != nil {
		t := domain.TransactionType(*req.Type)
		if t != domain.Income && t != domain.Expense {
			return patch, fmt.Errorf("%w: type must be income or expense", apperrors.ErrValidation)
		}
		patch.Type = &t
	}
	if req.Description != nil {
		if len(*req.Description) == 0 || len(*req.Description) > 100 {
			return patch, fmt.Errorf("%w: description must be 1-100 characters", apperrors.ErrValidation)
		}
		patch.Description = req.Description
	}
	patch.CategoryID = req.Category
	if req.Date != nil {
		parsed, err := time.ParseInLocation(dto.DateLayout, *req.Date, time.UTC)
		if err != nil {
			return patch, fmt.Errorf("%w: date must be a valid YYYY-MM-DD date", apperrors.ErrValidation)
		}
		patch.Date = &parsed
	}
	patch.IsRecurring = req.IsRecurring
	patch.Notes = req.Notes
	patch.ReceiptURL = req.ReceiptURL
	return patch, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
