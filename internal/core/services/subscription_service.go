package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/apperrors"
	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack-app/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrack-app/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-app/fintrack_backend/internal/dto"
	"github.com/fintrack-app/fintrack_backend/internal/utils/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Month-equivalent divisors per billing cycle.
var (
	three  = decimal.NewFromInt(3)
	six    = decimal.NewFromInt(6)
	twelve = decimal.NewFromInt(12)
)

// SubscriptionService is the record-store facade for subscriptions plus the
// cost engine that normalizes heterogeneous billing cycles to a monthly basis.
type SubscriptionService struct {
	BaseService
	repo  portsrepo.SubscriptionRepository
	cache *sessionCache[domain.Subscription]
	nowFn func() time.Time
}

// SubscriptionServiceOption is a functional option for configuring the service.
type SubscriptionServiceOption func(*SubscriptionService)

// WithSubscriptionClock overrides the clock used for renewal windows.
func WithSubscriptionClock(nowFn func() time.Time) SubscriptionServiceOption {
	return func(s *SubscriptionService) {
		s.nowFn = nowFn
	}
}

// NewSubscriptionService creates a new subscription service.
func NewSubscriptionService(repo portsrepo.SubscriptionRepository, options ...SubscriptionServiceOption) *SubscriptionService {
	svc := &SubscriptionService{
		repo:  repo,
		cache: newSessionCache[domain.Subscription](),
		nowFn: time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure SubscriptionService implements the facade interface
var _ portssvc.SubscriptionSvcFacade = (*SubscriptionService)(nil)

// FetchSubscriptions retrieves the owner's subscriptions from the record
// store and replaces the in-memory collection.
func (s *SubscriptionService) FetchSubscriptions(ctx context.Context, userID string) ([]domain.Subscription, error) {
	gen := s.cache.beginFetch(userID)

	subs, err := s.repo.ListSubscriptions(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list subscriptions from record store", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to fetch subscriptions: %w", apperrors.StoreFailure(err))
	}

	if !s.cache.completeFetch(userID, gen, subs) {
		s.LogDebug(ctx, "Discarding superseded subscription fetch", slog.String("user_id", userID), slog.Uint64("fetch_gen", gen))
	}
	return subs, nil
}

// CreateSubscription validates the request, persists the new subscription and
// prepends it to the in-memory collection on success.
func (s *SubscriptionService) CreateSubscription(ctx context.Context, userID string, req dto.CreateSubscriptionRequest) (*domain.Subscription, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	cycle := domain.BillingCycle(req.BillingCycle)
	if !cycle.IsValid() {
		return nil, fmt.Errorf("%w: billing cycle must be monthly, quarterly, biannual or annual", apperrors.ErrValidation)
	}
	start, err := time.ParseInLocation(dto.DateLayout, req.StartDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: start date must be a valid YYYY-MM-DD date", apperrors.ErrValidation)
	}
	next, err := time.ParseInLocation(dto.DateLayout, req.NextBillingDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: next billing date must be a valid YYYY-MM-DD date", apperrors.ErrValidation)
	}
	if next.Before(start) {
		return nil, fmt.Errorf("%w: next billing date must not precede the start date", apperrors.ErrValidation)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	now := time.Now().UTC()
	sub := domain.Subscription{
		SubscriptionID:  uuid.NewString(),
		UserID:          userID,
		Name:            req.Name,
		Amount:          req.Amount,
		BillingCycle:    cycle,
		CategoryID:      req.Category,
		StartDate:       start,
		NextBillingDate: next,
		Notes:           deref(req.Notes),
		Website:         deref(req.Website),
		IsActive:        isActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.repo.SaveSubscription(ctx, sub); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to save subscription in record store", slog.String("subscription_id", sub.SubscriptionID))
		return nil, fmt.Errorf("failed to create subscription: %w", apperrors.StoreFailure(err))
	}

	s.cache.prepend(userID, sub)
	s.LogInfo(ctx, "Subscription created", slog.String("subscription_id", sub.SubscriptionID), slog.String("user_id", userID))
	return &sub, nil
}

// UpdateSubscription validates the partial payload, applies it through the
// record store and mirrors the stored entity into the in-memory collection.
func (s *SubscriptionService) UpdateSubscription(ctx context.Context, userID string, subscriptionID string, req dto.UpdateSubscriptionRequest) (*domain.Subscription, error) {
	patch, err := buildSubscriptionPatch(req)
	if err != nil {
		return nil, err
	}
	if err := s.validatePatchedBillingDates(ctx, subscriptionID, patch); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateSubscription(ctx, subscriptionID, patch)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to update subscription in record store", slog.String("subscription_id", subscriptionID))
		return nil, fmt.Errorf("failed to update subscription: %w", apperrors.StoreFailure(err))
	}

	s.cache.replaceWhere(userID, func(sub domain.Subscription) bool { return sub.SubscriptionID == subscriptionID }, *updated)
	s.LogInfo(ctx, "Subscription updated", slog.String("subscription_id", subscriptionID))
	return updated, nil
}

// DeleteSubscription removes the subscription from the record store and, on
// success, from the in-memory collection.
func (s *SubscriptionService) DeleteSubscription(ctx context.Context, userID string, subscriptionID string) error {
	if err := s.repo.DeleteSubscription(ctx, subscriptionID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		s.LogError(ctx, err, "Failed to delete subscription in record store", slog.String("subscription_id", subscriptionID))
		return fmt.Errorf("failed to delete subscription: %w", apperrors.StoreFailure(err))
	}

	s.cache.removeWhere(userID, func(sub domain.Subscription) bool { return sub.SubscriptionID == subscriptionID })
	s.LogInfo(ctx, "Subscription deleted", slog.String("subscription_id", subscriptionID))
	return nil
}

// RecordBillingEvent advances the subscription's next billing date by one
// cycle. The advance is seeded from the current next billing date, not from
// today, so the schedule stays anchored to its original cadence however late
// the event is recorded.
func (s *SubscriptionService) RecordBillingEvent(ctx context.Context, userID string, subscriptionID string) (*domain.Subscription, error) {
	sub, err := s.repo.FindSubscriptionByID(ctx, subscriptionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find subscription in record store", slog.String("subscription_id", subscriptionID))
		}
		return nil, err
	}
	if sub.UserID != userID {
		return nil, apperrors.ErrNotFound
	}

	next := billing.AdvanceBillingDate(sub.NextBillingDate, sub.BillingCycle)
	patch := domain.SubscriptionPatch{NextBillingDate: &next}

	updated, err := s.repo.UpdateSubscription(ctx, subscriptionID, patch)
	if err != nil {
		s.LogError(ctx, err, "Failed to advance billing date in record store", slog.String("subscription_id", subscriptionID))
		return nil, fmt.Errorf("failed to record billing event: %w", apperrors.StoreFailure(err))
	}

	s.cache.replaceWhere(userID, func(sub domain.Subscription) bool { return sub.SubscriptionID == subscriptionID }, *updated)
	s.LogInfo(ctx, "Billing event recorded",
		slog.String("subscription_id", subscriptionID),
		slog.String("next_billing_date", next.Format(dto.DateLayout)))
	return updated, nil
}

// MonthlyCost normalizes one subscription to its month-equivalent cost.
// Unknown cycles contribute nothing rather than failing.
func (s *SubscriptionService) MonthlyCost(sub domain.Subscription) decimal.Decimal {
	switch sub.BillingCycle {
	case domain.CycleMonthly:
		return sub.Amount
	case domain.CycleQuarterly:
		return sub.Amount.Div(three)
	case domain.CycleBiannual:
		return sub.Amount.Div(six)
	case domain.CycleAnnual:
		return sub.Amount.Div(twelve)
	default:
		return decimal.Zero
	}
}

// TotalMonthlyCost sums the month-equivalent cost of active subscriptions.
// Inactive subscriptions contribute zero.
func (s *SubscriptionService) TotalMonthlyCost(subs []domain.Subscription) decimal.Decimal {
	total := decimal.Zero
	for _, sub := range subs {
		if !sub.IsActive {
			continue
		}
		total = total.Add(s.MonthlyCost(sub))
	}
	return total
}

// UpcomingRenewals selects active subscriptions whose next billing date falls
// within [now, now+windowDays] inclusive, soonest first. Unlike the due-soon
// check, past-due subscriptions are excluded: this feeds the renewals list,
// not the notification badge.
func (s *SubscriptionService) UpcomingRenewals(subs []domain.Subscription, windowDays int) []domain.Renewal {
	now := s.nowFn()

	renewals := make([]domain.Renewal, 0, len(subs))
	for _, sub := range subs {
		if !sub.IsActive {
			continue
		}
		days := billing.DaysUntil(sub.NextBillingDate, now)
		if days < 0 || days > windowDays {
			continue
		}
		renewals = append(renewals, domain.Renewal{
			Subscription: sub,
			DaysUntil:    days,
			Urgency:      billing.UrgencyFor(days),
		})
	}

	sort.SliceStable(renewals, func(i, j int) bool {
		return renewals[i].Subscription.NextBillingDate.Before(renewals[j].Subscription.NextBillingDate)
	})
	return renewals
}

// validatePatchedBillingDates enforces next billing date >= start date when a
// patch carries exactly one of the two dates, by checking the patched value
// against the stored counterpart. Patches carrying both dates are already
// cross-checked in buildSubscriptionPatch; patches carrying neither cannot
// move the dates.
func (s *SubscriptionService) validatePatchedBillingDates(ctx context.Context, subscriptionID string, patch domain.SubscriptionPatch) error {
	if (patch.StartDate == nil) == (patch.NextBillingDate == nil) {
		return nil
	}

	stored, err := s.repo.FindSubscriptionByID(ctx, subscriptionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		s.LogError(ctx, err, "Failed to load subscription for date validation", slog.String("subscription_id", subscriptionID))
		return fmt.Errorf("failed to update subscription: %w", apperrors.StoreFailure(err))
	}

	start := stored.StartDate
	if patch.StartDate != nil {
		start = *patch.StartDate
	}
	next := stored.NextBillingDate
	if patch.NextBillingDate != nil {
		next = *patch.NextBillingDate
	}
	if next.Before(start) {
		return fmt.Errorf("%w: next billing date must not precede the start date", apperrors.ErrValidation)
	}
	return nil
}

// buildSubscriptionPatch converts an update request into a store patch,
// validating every provided field.
func buildSubscriptionPatch(req dto.UpdateSubscriptionRequest) (domain.SubscriptionPatch, error) {
	var patch domain.SubscriptionPatch

	if req.Name != nil {
		if len(*req.Name) == 0 || len(*req.Name) > 100 {
			return patch, fmt.Errorf("%w: name must be 1-100 characters", apperrors.ErrValidation)
		}
		patch.Name = req.Name
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return patch, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
		}
		patch.Amount = req.Amount
	}
	if req.BillingCycle != nil {
		cycle := domain.BillingCycle(*req.BillingCycle)
		if !cycle.IsValid() {
			return patch, fmt.Errorf("%w: billing cycle must be monthly, quarterly, biannual or annual", apperrors.ErrValidation)
		}
		patch.BillingCycle = &cycle
	}
	patch.CategoryID = req.Category
	if req.StartDate != nil {
		start, err := time.ParseInLocation(dto.DateLayout, *req.StartDate, time.UTC)
		if err != nil {
			return patch, fmt.Errorf("%w: start date must be a valid YYYY-MM-DD date", apperrors.ErrValidation)
		}
		patch.StartDate = &start
	}
	if req.NextBillingDate != nil {
		next, err := time.ParseInLocation(dto.DateLayout, *req.NextBillingDate, time.UTC)
		if err != nil {
			return patch, fmt.Errorf("%w: next billing date must be a valid YYYY-MM-DD date", apperrors.ErrValidation)
		}
		if patch.StartDate != nil && next.Before(*patch.StartDate) {
			return patch, fmt.Errorf("%w: next billing date must not precede the start date", apperrors.ErrValidation)
		}
		patch.NextBillingDate = &next
	}
	patch.Notes = req.Notes
	patch.Website = req.Website
	patch.IsActive = req.IsActive
	return patch, nil
}
