package repositories

import (
	"context"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
)

// SubscriptionReader defines read operations against the external record store.
type SubscriptionReader interface {
	// ListSubscriptions retrieves one owner's subscriptions, pre-sorted by the
	// store's own ordering (next billing date descending).
	ListSubscriptions(ctx context.Context, userID string) ([]domain.Subscription, error)

	// FindSubscriptionByID retrieves a specific subscription.
	FindSubscriptionByID(ctx context.Context, subscriptionID string) (*domain.Subscription, error)
}

// SubscriptionWriter defines write operations against the external record store.
type SubscriptionWriter interface {
	// SaveSubscription persists a new subscription.
	SaveSubscription(ctx context.Context, sub domain.Subscription) error

	// UpdateSubscription applies a partial update and returns the stored entity.
	UpdateSubscription(ctx context.Context, subscriptionID string, patch domain.SubscriptionPatch) (*domain.Subscription, error)

	// DeleteSubscription removes a subscription.
	DeleteSubscription(ctx context.Context, subscriptionID string) error
}

// SubscriptionRepository combines all subscription record-store operations.
type SubscriptionRepository interface {
	SubscriptionReader
	SubscriptionWriter
}
