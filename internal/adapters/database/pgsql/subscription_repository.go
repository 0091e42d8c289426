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
	"github.com/jackc/pgx/v5/pgxpool"
)

const subscriptionColumns = `subscription_id, user_id, name, amount, billing_cycle, category_id, start_date, next_billing_date, notes, website, is_active, created_at, last_updated_at`

type subscriptionRepository struct {
	pool *pgxpool.Pool
}

// NewSubscriptionRepository creates a new repository for subscription data.
func NewSubscriptionRepository(pool *pgxpool.Pool) portsrepo.SubscriptionRepository {
	return &subscriptionRepository{pool: pool}
}

// ListSubscriptions retrieves one owner's subscriptions in the store's own
// ordering: next billing date descending.
func (r *subscriptionRepository) ListSubscriptions(ctx context.Context, userID string) ([]domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE user_id = $1 ORDER BY next_billing_date DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions for user %s: %w", userID, err)
	}
	defer rows.Close()

	var subs []domain.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscription row: %w", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read subscription rows: %w", err)
	}
	return subs, nil
}

// FindSubscriptionByID retrieves a subscription by its ID.
func (r *subscriptionRepository) FindSubscriptionByID(ctx context.Context, subscriptionID string) (*domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE subscription_id = $1`

	sub, err := scanSubscription(r.pool.QueryRow(ctx, query, subscriptionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find subscription %s: %w", subscriptionID, err)
	}
	return &sub, nil
}

// SaveSubscription inserts a new subscription.
func (r *subscriptionRepository) SaveSubscription(ctx context.Context, sub domain.Subscription) error {
	query := `
		INSERT INTO subscriptions (` + subscriptionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.pool.Exec(ctx, query,
		sub.SubscriptionID,
		sub.UserID,
		sub.Name,
		sub.Amount,
		string(sub.BillingCycle),
		sub.CategoryID,
		sub.StartDate,
		sub.NextBillingDate,
		nullIfEmpty(sub.Notes),
		nullIfEmpty(sub.Website),
		sub.IsActive,
		sub.CreatedAt,
		sub.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: subscription %s", apperrors.ErrDuplicate, sub.SubscriptionID)
		}
		return fmt.Errorf("failed to save subscription %s: %w", sub.SubscriptionID, err)
	}
	return nil
}

// UpdateSubscription applies the non-nil patch fields and returns the stored row.
func (r *subscriptionRepository) UpdateSubscription(ctx context.Context, subscriptionID string, patch domain.SubscriptionPatch) (*domain.Subscription, error) {
	var set []string
	var args []any
	addSet := func(column string, val any) {
		args = append(args, val)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		addSet("name", *patch.Name)
	}
	if patch.Amount != nil {
		addSet("amount", *patch.Amount)
	}
	if patch.BillingCycle != nil {
		addSet("billing_cycle", string(*patch.BillingCycle))
	}
	if patch.CategoryID != nil {
		addSet("category_id", *patch.CategoryID)
	}
	if patch.StartDate != nil {
		addSet("start_date", *patch.StartDate)
	}
	if patch.NextBillingDate != nil {
		addSet("next_billing_date", *patch.NextBillingDate)
	}
	if patch.Notes != nil {
		addSet("notes", nullIfEmpty(*patch.Notes))
	}
	if patch.Website != nil {
		addSet("website", nullIfEmpty(*patch.Website))
	}
	if patch.IsActive != nil {
		addSet("is_active", *patch.IsActive)
	}
	addSet("last_updated_at", time.Now().UTC())

	args = append(args, subscriptionID)
	query := fmt.Sprintf(
		`UPDATE subscriptions SET %s WHERE subscription_id = $%d RETURNING %s`,
		strings.Join(set, ", "), len(args), subscriptionColumns,
	)

	sub, err := scanSubscription(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update subscription %s: %w", subscriptionID, err)
	}
	return &sub, nil
}

// DeleteSubscription removes a subscription.
func (r *subscriptionRepository) DeleteSubscription(ctx context.Context, subscriptionID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM subscriptions WHERE subscription_id = $1`, subscriptionID)
	if err != nil {
		return fmt.Errorf("failed to delete subscription %s: %w", subscriptionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// scanSubscription reads one subscription row, mapping NULL text columns to
// empty strings.
func scanSubscription(row pgx.Row) (domain.Subscription, error) {
	var sub domain.Subscription
	var cycle string
	var notes, website *string

	err := row.Scan(
		&sub.SubscriptionID,
		&sub.UserID,
		&sub.Name,
		&sub.Amount,
		&cycle,
		&sub.CategoryID,
		&sub.StartDate,
		&sub.NextBillingDate,
		&notes,
		&website,
		&sub.IsActive,
		&sub.CreatedAt,
		&sub.LastUpdatedAt,
	)
	if err != nil {
		return domain.Subscription{}, err
	}

	sub.BillingCycle = domain.BillingCycle(cycle)
	sub.Notes = derefOrEmpty(notes)
	sub.Website = derefOrEmpty(website)
	return sub, nil
}
