package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillingCycle is the cadence at which a subscription renews.
type BillingCycle string

const (
	CycleMonthly   BillingCycle = "monthly"
	CycleQuarterly BillingCycle = "quarterly"
	CycleBiannual  BillingCycle = "biannual"
	CycleAnnual    BillingCycle = "annual"
)

// IsValid reports whether the cycle is one of the recognized cadences.
func (c BillingCycle) IsValid() bool {
	switch c {
	case CycleMonthly, CycleQuarterly, CycleBiannual, CycleAnnual:
		return true
	}
	return false
}

// Subscription represents a recurring payment commitment.
// NextBillingDate always points at the next unpaid occurrence; advancing it is
// the only way billing state changes.
type Subscription struct {
	SubscriptionID  string          `json:"subscriptionID"` // Primary Key (UUID)
	UserID          string          `json:"userID"`         // Owner of the record (Not Null)
	Name            string          `json:"name"`
	Amount          decimal.Decimal `json:"amount"` // Positive value per billing occurrence
	BillingCycle    BillingCycle    `json:"billingCycle"`
	CategoryID      string          `json:"categoryID"`
	StartDate       time.Time       `json:"startDate"`       // Calendar date, midnight UTC
	NextBillingDate time.Time       `json:"nextBillingDate"` // Must be >= StartDate
	Notes           string          `json:"notes"`           // Nullable
	Website         string          `json:"website"`         // Nullable
	IsActive        bool            `json:"isActive"`
	AuditFields
}

// SubscriptionPatch carries a partial update for a subscription.
// Nil fields are left unchanged by the record store.
type SubscriptionPatch struct {
	Name            *string
	Amount          *decimal.Decimal
	BillingCycle    *BillingCycle
	CategoryID      *string
	StartDate       *time.Time
	NextBillingDate *time.Time
	Notes           *string
	Website         *string
	IsActive        *bool
}
