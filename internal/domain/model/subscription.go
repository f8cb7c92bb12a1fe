package model

import "time"

// SubscriptionStatus is the entitlement state of a user's subscription.
type SubscriptionStatus string

const (
	SubscriptionStatusTrial   SubscriptionStatus = "trial"
	SubscriptionStatusActive  SubscriptionStatus = "active"
	SubscriptionStatusExpired SubscriptionStatus = "expired"
)

// Subscription is per-user entitlement state. One row per user: the store
// upserts by UserID, it never appends.
type Subscription struct {
	ID               string
	UserID           string
	Role             Role
	Plan             PlanCadence
	Status           SubscriptionStatus
	CurrentPeriodEnd time.Time
	CreatedAt        time.Time
}

// IsActive reports whether the subscription entitles the user at t.
func (s *Subscription) IsActive(t time.Time) bool {
	return s != nil && s.Status == SubscriptionStatusActive && t.Before(s.CurrentPeriodEnd)
}
