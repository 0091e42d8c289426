package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/apperrors"
	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack-app/fintrack_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `transaction_id, user_id, amount, type, description, category_id, date, is_recurring, recurring_id, notes, receipt_url, created_at, last_updated_at`

type transactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new repository for transaction data.
func NewTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepository {
	return &transactionRepository{pool: pool}
}

// ListTransactions retrieves one owner's transactions. Provided filter fields
// are pushed down to the store query; ordering is the store's own (date, then
// creation time, newest first).
func (r *transactionRepository) ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1`
	args := []any{userID}

	appendCond := func(cond string, val any) {
		args = append(args, val)
		query += fmt.Sprintf(cond, len(args))
	}

	if filter.StartDate != nil {
		appendCond(" AND date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		appendCond(" AND date <= $%d", *filter.EndDate)
	}
	if len(filter.Categories) > 0 {
		appendCond(" AND category_id = ANY($%d)", filter.Categories)
	}
	if filter.Type != "" && filter.Type != domain.AllTypes {
		appendCond(" AND type = $%d", string(filter.Type))
	}
	if filter.MinAmount != nil {
		appendCond(" AND amount >= $%d", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		appendCond(" AND amount <= $%d", *filter.MaxAmount)
	}
	if filter.Search != "" {
		appendCond(" AND description ILIKE '%%' || $%d || '%%'", filter.Search)
	}

	query += " ORDER BY date DESC, created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for user %s: %w", userID, err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transaction rows: %w", err)
	}
	return txns, nil
}

// SaveTransaction inserts a new transaction.
func (r *transactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.pool.Exec(ctx, query,
		txn.TransactionID,
		txn.UserID,
		txn.Amount,
		string(txn.Type),
		txn.Description,
		txn.CategoryID,
		txn.Date,
		txn.IsRecurring,
		nullIfEmpty(txn.RecurringID),
		nullIfEmpty(txn.Notes),
		nullIfEmpty(txn.ReceiptURL),
		txn.CreatedAt,
		txn.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicate, txn.TransactionID)
		}
		return fmt.Errorf("failed to save transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}

// UpdateTransaction applies the non-nil patch fields and returns the stored row.
func (r *transactionRepository) UpdateTransaction(ctx context.Context, transactionID string, patch domain.TransactionPatch) (*domain.Transaction, error) {
	var set []string
	var args []any
	addSet := func(column string, val any) {
		args = append(args, val)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Amount != nil {
		addSet("amount", *patch.Amount)
	}
	if patch.Type != nil {
		addSet("type", string(*patch.Type))
	}
	if patch.Description != nil {
		addSet("description", *patch.Description)
	}
	if patch.CategoryID != nil {
		addSet("category_id", *patch.CategoryID)
	}
	if patch.Date != nil {
		addSet("date", *patch.Date)
	}
	if patch.IsRecurring != nil {
		addSet("is_recurring", *patch.IsRecurring)
	}
	if patch.Notes != nil {
		addSet("notes", nullIfEmpty(*patch.Notes))
	}
	if patch.ReceiptURL != nil {
		addSet("receipt_url", nullIfEmpty(*patch.ReceiptURL))
	}
	addSet("last_updated_at", time.Now().UTC())

	args = append(args, transactionID)
	query := fmt.Sprintf(
		`UPDATE transactions SET %s WHERE transaction_id = $%d RETURNING %s`,
		strings.Join(set, ", "), len(args), transactionColumns,
	)

	txn, err := scanTransaction(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update transaction %s: %w", transactionID, err)
	}
	return &txn, nil
}

// DeleteTransaction removes a transaction.
func (r *transactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// scanTransaction reads one transaction row, mapping NULL text columns to
// empty strings.
func scanTransaction(row pgx.Row) (domain.Transaction, error) {
	var txn domain.Transaction
	var txnType string
	var recurringID, notes, receiptURL *string

	err := row.Scan(
		&txn.TransactionID,
		&txn.UserID,
		&txn.Amount,
		&txnType,
		&txn.Description,
		&txn.CategoryID,
		&txn.Date,
		&txn.IsRecurring,
		&recurringID,
		&notes,
		&receiptURL,
		&txn.CreatedAt,
		&txn.LastUpdatedAt,
	)
	if err != nil {
		return domain.Transaction{}, err
	}

	txn.Type = domain.TransactionType(txnType)
	txn.RecurringID = derefOrEmpty(recurringID)
	txn.Notes = derefOrEmpty(notes)
	txn.ReceiptURL = derefOrEmpty(receiptURL)
	return txn, nil
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
