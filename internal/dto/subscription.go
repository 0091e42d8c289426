package dto

import (
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSubscriptionRequest defines the data needed to track a subscription.
type CreateSubscriptionRequest struct {
	Name            string          `json:"name" binding:"required,min=1,max=100"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	BillingCycle    string          `json:"billingCycle" binding:"required,oneof=monthly quarterly biannual annual"`
	Category        string          `json:"category" binding:"required"`
	StartDate       string          `json:"startDate" binding:"required,datetime=2006-01-02"`
	NextBillingDate string          `json:"nextBillingDate" binding:"required,datetime=2006-01-02"`
	Notes           *string         `json:"notes"`   // Optional
	Website         *string         `json:"website"` // Optional
	IsActive        *bool           `json:"isActive"`
}

// UpdateSubscriptionRequest defines the data allowed for updating a subscription.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateSubscriptionRequest struct {
	Name            *string          `json:"name" binding:"omitempty,min=1,max=100"`
	Amount          *decimal.Decimal `json:"amount"`
	BillingCycle    *string          `json:"billingCycle" binding:"omitempty,oneof=monthly quarterly biannual annual"`
	Category        *string          `json:"category"`
	StartDate       *string          `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
	NextBillingDate *string          `json:"nextBillingDate" binding:"omitempty,datetime=2006-01-02"`
	Notes           *string          `json:"notes"`
	Website         *string          `json:"website"`
	IsActive        *bool            `json:"isActive"`
}

// SubscriptionResponse defines the data returned for a subscription.
type SubscriptionResponse struct {
	SubscriptionID  string          `json:"subscriptionID"`
	UserID          string          `json:"userID"`
	Name            string          `json:"name"`
	Amount          decimal.Decimal `json:"amount"`
	BillingCycle    string          `json:"billingCycle"`
	Category        string          `json:"category"`
	StartDate       string          `json:"startDate"`
	NextBillingDate string          `json:"nextBillingDate"`
	Notes           string          `json:"notes,omitempty"`
	Website         string          `json:"website,omitempty"`
	IsActive        bool            `json:"isActive"`
	CreatedAt       time.Time       `json:"createdAt"`
	LastUpdatedAt   time.Time       `json:"lastUpdatedAt"`
}

// ToSubscriptionResponse converts a domain.Subscription to its response DTO.
func ToSubscriptionResponse(sub *domain.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		SubscriptionID:  sub.SubscriptionID,
		UserID:          sub.UserID,
		Name:            sub.Name,
		Amount:          sub.Amount,
		BillingCycle:    string(sub.BillingCycle),
		Category:        sub.CategoryID,
		StartDate:       sub.StartDate.Format(DateLayout),
		NextBillingDate: sub.NextBillingDate.Format(DateLayout),
		Notes:           sub.Notes,
		Website:         sub.Website,
		IsActive:        sub.IsActive,
		CreatedAt:       sub.CreatedAt,
		LastUpdatedAt:   sub.LastUpdatedAt,
	}
}

// ToSubscriptionResponses converts a slice of domain subscriptions.
func ToSubscriptionResponses(subs []domain.Subscription) []SubscriptionResponse {
	out := make([]SubscriptionResponse, 0, len(subs))
	for i := range subs {
		out = append(out, ToSubscriptionResponse(&subs[i]))
	}
	return out
}

// SubscriptionSummaryResponse carries the normalized cost totals.
type SubscriptionSummaryResponse struct {
	MonthlyCost decimal.Decimal `json:"monthlyCost"`
	AnnualCost  decimal.Decimal `json:"annualCost"`
	ActiveCount int             `json:"activeCount"`
	TotalCount  int             `json:"totalCount"`
}

// RenewalResponse is one entry in the upcoming-renewals list.
type RenewalResponse struct {
	Subscription SubscriptionResponse `json:"subscription"`
	DaysUntil    int                  `json:"daysUntil"`
	Urgency      string               `json:"urgency"`
}

// ToRenewalResponses converts domain renewals to response DTOs.
func ToRenewalResponses(renewals []domain.Renewal) []RenewalResponse {
	out := make([]RenewalResponse, 0, len(renewals))
	for i := range renewals {
		out = append(out, RenewalResponse{
			Subscription: ToSubscriptionResponse(&renewals[i].Subscription),
			DaysUntil:    renewals[i].DaysUntil,
			Urgency:      string(renewals[i].Urgency),
		})
	}
	return out
}
