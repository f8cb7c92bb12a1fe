package model

import "time"

// PlanCadence is a billing cadence determining subscription period length.
type PlanCadence string

const (
	PlanDaily   PlanCadence = "daily"
	PlanWeekly  PlanCadence = "weekly"
	PlanMonthly PlanCadence = "monthly"
	PlanYearly  PlanCadence = "yearly"
)

// periodDays is the fixed policy table. Not configurable per deployment.
var periodDays = map[PlanCadence]int{
	PlanDaily:   1,
	PlanWeekly:  7,
	PlanMonthly: 30,
	PlanYearly:  365,
}

const fallbackPeriodDays = 30

// PeriodDays returns the period length for a cadence; unrecognized cadences
// fall back to 30 days.
func PeriodDays(plan PlanCadence) int {
	if d, ok := periodDays[plan]; ok {
		return d
	}
	return fallbackPeriodDays
}

// PeriodEnd derives the new subscription expiry from a cadence and now.
// Pure and total: deterministic given inputs, no side effects.
func PeriodEnd(plan PlanCadence, now time.Time) time.Time {
	return now.Add(time.Duration(PeriodDays(plan)) * 24 * time.Hour)
}
