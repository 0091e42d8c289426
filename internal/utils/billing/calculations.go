// Package billing contains pure date arithmetic for subscription billing
// cycles: cycle advancement, due-soon checks and day-count deltas.
// Functions take explicit time parameters so callers control the clock.
package billing

import (
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
)

// cycleMonths maps each billing cycle to its length in calendar months.
var cycleMonths = map[domain.BillingCycle]int{
	domain.CycleMonthly:   1,
	domain.CycleQuarterly: 3,
	domain.CycleBiannual:  6,
	domain.CycleAnnual:    12,
}

// AdvanceBillingDate returns date advanced by one billing cycle.
// An unrecognized cycle advances by one month.
//
// The day of month is clamped to the last day of the target month, so a
// Jan 31 monthly subscription bills next on Feb 28 (or 29), not Mar 2/3 as
// time.AddDate's overflow normalization would give.
func AdvanceBillingDate(date time.Time, cycle domain.BillingCycle) time.Time {
	months, ok := cycleMonths[cycle]
	if !ok {
		months = 1
	}
	return addMonthsClamped(date, months)
}

// addMonthsClamped adds months to date keeping the day of month where
// possible and clamping to the end of shorter target months.
func addMonthsClamped(date time.Time, months int) time.Time {
	year, month, day := date.Date()
	firstOfTarget := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, date.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, date.Location())
}

// DaysUntil returns the signed whole-day distance from now to nextBillingDate,
// comparing calendar days. Negative when the billing date is already past.
func DaysUntil(nextBillingDate, now time.Time) int {
	from := midnightUTC(now)
	to := midnightUTC(nextBillingDate)
	return int(to.Sub(from).Hours() / 24)
}

// IsDueWithin reports whether nextBillingDate falls at or before
// now + thresholdDays. There is no lower bound: past-due dates still count as
// due, so overdue subscriptions keep surfacing in notifications.
func IsDueWithin(nextBillingDate, now time.Time, thresholdDays int) bool {
	return DaysUntil(nextBillingDate, now) <= thresholdDays
}

// UrgencyFor maps a day distance to a renewal urgency tier.
func UrgencyFor(daysUntil int) domain.RenewalUrgency {
	switch {
	case daysUntil <= 3:
		return domain.UrgencyCritical
	case daysUntil <= 7:
		return domain.UrgencyWarning
	default:
		return domain.UrgencyNormal
	}
}

func midnightUTC(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
