package billing

import (
	"testing"
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAdvanceBillingDate(t *testing.T) {
	// One month forward, plain case
	next := AdvanceBillingDate(date(2025, time.January, 15), domain.CycleMonthly)
	assert.Equal(t, date(2025, time.February, 15), next, "Mid-month dates should keep their day")

	// Jan 31 + 1 month must clamp to the end of February, not roll into March
	next = AdvanceBillingDate(date(2025, time.January, 31), domain.CycleMonthly)
	assert.Equal(t, date(2025, time.February, 28), next, "Day should clamp to the last day of February")

	// Leap year February has 29 days
	next = AdvanceBillingDate(date(2024, time.January, 31), domain.CycleMonthly)
	assert.Equal(t, date(2024, time.February, 29), next, "Leap-year February should clamp to the 29th")

	// Clamping is not sticky: a clamped date advanced again keeps the
	// clamped day, it does not snap back to the 31st
	next = AdvanceBillingDate(date(2025, time.February, 28), domain.CycleMonthly)
	assert.Equal(t, date(2025, time.March, 28), next)

	next = AdvanceBillingDate(date(2025, time.January, 15), domain.CycleQuarterly)
	assert.Equal(t, date(2025, time.April, 15), next)

	next = AdvanceBillingDate(date(2025, time.January, 15), domain.CycleBiannual)
	assert.Equal(t, date(2025, time.July, 15), next)

	// Annual advance crosses the year boundary
	next = AdvanceBillingDate(date(2025, time.March, 1), domain.CycleAnnual)
	assert.Equal(t, date(2026, time.March, 1), next)

	// Quarterly from end of November lands on end of February
	next = AdvanceBillingDate(date(2025, time.November, 30), domain.CycleQuarterly)
	assert.Equal(t, date(2026, time.February, 28), next)

	// Unknown cycles fall back to one month
	next = AdvanceBillingDate(date(2025, time.May, 10), domain.BillingCycle("weekly"))
	assert.Equal(t, date(2025, time.June, 10), next, "Unrecognized cycle should advance by one month")
}

func TestDaysUntil(t *testing.T) {
	now := date(2025, time.June, 10)

	assert.Equal(t, 0, DaysUntil(date(2025, time.June, 10), now), "Same day should be zero")
	assert.Equal(t, 5, DaysUntil(date(2025, time.June, 15), now))
	assert.Equal(t, -3, DaysUntil(date(2025, time.June, 7), now), "Past dates should be negative")

	// Calendar days, not 24h periods: a late-evening now still counts
	// tomorrow as one day away
	evening := time.Date(2025, time.June, 10, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysUntil(date(2025, time.June, 11), evening))
}

func TestIsDueWithin(t *testing.T) {
	now := date(2025, time.June, 10)

	assert.True(t, IsDueWithin(date(2025, time.June, 13), now, 3))
	assert.False(t, IsDueWithin(date(2025, time.June, 14), now, 3))
	assert.True(t, IsDueWithin(date(2025, time.June, 10), now, 0), "Due today counts as due")

	// No lower bound: overdue subscriptions stay due
	assert.True(t, IsDueWithin(date(2025, time.May, 1), now, 3), "Past-due dates should still report due")
}

func TestUrgencyFor(t *testing.T) {
	assert.Equal(t, domain.UrgencyCritical, UrgencyFor(0))
	assert.Equal(t, domain.UrgencyCritical, UrgencyFor(3))
	assert.Equal(t, domain.UrgencyWarning, UrgencyFor(4))
	assert.Equal(t, domain.UrgencyWarning, UrgencyFor(7))
	assert.Equal(t, domain.UrgencyNormal, UrgencyFor(8))
	assert.Equal(t, domain.UrgencyCritical, UrgencyFor(-2), "Overdue should be critical")
}
