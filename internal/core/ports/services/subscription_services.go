package services

import (
	"context"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/fintrack-app/fintrack_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// SubscriptionSvcFacade is the record-store facade for subscriptions plus the
// cost engine that normalizes billing cycles to a monthly basis.
type SubscriptionSvcFacade interface {
	// FetchSubscriptions retrieves from the store and replaces the in-memory
	// collection.
	FetchSubscriptions(ctx context.Context, userID string) ([]domain.Subscription, error)

	CreateSubscription(ctx context.Context, userID string, req dto.CreateSubscriptionRequest) (*domain.Subscription, error)
	UpdateSubscription(ctx context.Context, userID string, subscriptionID string, req dto.UpdateSubscriptionRequest) (*domain.Subscription, error)
	DeleteSubscription(ctx context.Context, userID string, subscriptionID string) error

	// RecordBillingEvent advances the next billing date by one cycle, anchored
	// to the current next billing date rather than today.
	RecordBillingEvent(ctx context.Context, userID string, subscriptionID string) (*domain.Subscription, error)

	// MonthlyCost normalizes one subscription to its month-equivalent cost.
	MonthlyCost(sub domain.Subscription) decimal.Decimal

	// TotalMonthlyCost sums MonthlyCost over active subscriptions only.
	TotalMonthlyCost(subs []domain.Subscription) decimal.Decimal

	// UpcomingRenewals selects active subscriptions renewing within
	// [now, now+windowDays], soonest first.
	UpcomingRenewals(subs []domain.Subscription, windowDays int) []domain.Renewal
}
