package domain

import "time"

// SubscriptionStatus enumerates subscription lifecycle states.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
	SubscriptionExpired   SubscriptionStatus = "expired"
	SubscriptionPending   SubscriptionStatus = "pending"
)

// SubscriptionStatuses lists every status in breakdown-reporting order.
var SubscriptionStatuses = []SubscriptionStatus{
	SubscriptionActive,
	SubscriptionCancelled,
	SubscriptionExpired,
	SubscriptionPending,
}

// Subscription links a user to a plan for a period of time.
type Subscription struct {
	ID        string
	UserID    string
	PlanID    string
	Status    SubscriptionStatus
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time

	// Denormalized plan fields filled by list queries for display purposes.
	PlanName  string
	PlanPrice float64
}
