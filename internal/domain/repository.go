package domain

import (
	"context"
	"time"
)

// UserRepository defines access methods for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, search string, limit, offset int) ([]User, error)
	ListRecent(ctx context.Context, limit int) ([]User, error)
	ListActiveIDsByRole(ctx context.Context, role UserRole) ([]string, error)
	UpdateProfile(ctx context.Context, id, name, locale string) (*User, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

// PlanRepository handles immutable plan reference data.
type PlanRepository interface {
	Create(ctx context.Context, plan *Plan) (*Plan, error)
	GetByID(ctx context.Context, id string) (*Plan, error)
	List(ctx context.Context) ([]Plan, error)
}

// PlanCharge is a price/cycle pair for one active subscription, used for
// monthly revenue normalization.
type PlanCharge struct {
	Price float64
	Cycle BillingCycle
}

// YearPlanCount is one plan's subscription volume within a single year.
type YearPlanCount struct {
	Year    int
	Ranking PlanRanking
}

// SubscriptionRepository defines persistence and aggregate queries over
// subscriptions. Aggregate methods return unordered rows; ordering,
// tie-breaking and gap-filling belong to the analytics service.
type SubscriptionRepository interface {
	ListByUser(ctx context.Context, userID string) ([]Subscription, error)
	ListRecent(ctx context.Context, limit int) ([]Subscription, error)
	GetActiveForUser(ctx context.Context, userID string) (*Subscription, error)
	CountsByStatus(ctx context.Context) (map[SubscriptionStatus]int, error)
	ActiveCharges(ctx context.Context) ([]PlanCharge, error)
	MonthlyCounts(ctx context.Context, since time.Time) ([]TrendBucket, error)
	PlanCounts(ctx context.Context) ([]PlanRanking, error)
	PlanCountsByYear(ctx context.Context) ([]YearPlanCount, error)
	PlanCountsSince(ctx context.Context, since time.Time) ([]PlanRanking, error)
}

// NotificationRepository persists notifications and their read state.
type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID string, limit int) ([]Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	// MarkRead flips one notification owned by userID; it reports whether a
	// row matched so callers can distinguish not-found from success.
	MarkRead(ctx context.Context, userID, notificationID string) (bool, error)
	MarkAllRead(ctx context.Context, userID string) (int, error)
}

// DiscountRepository reads offers and their usage history.
type DiscountRepository interface {
	GetByID(ctx context.Context, id string) (*Discount, error)
	List(ctx context.Context, activeOnly bool, limit int) ([]Discount, error)
	ListUsage(ctx context.Context, limit int) ([]DiscountUsage, error)
}

// UsageRepository reads append-only usage records.
type UsageRepository interface {
	ListByUser(ctx context.Context, userID string, limit int) ([]UsageRecord, error)
}

// StatsRepository computes point-in-time dashboard counts.
type StatsRepository interface {
	Overview(ctx context.Context) (*Overview, error)
}
