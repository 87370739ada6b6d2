package domain

// Overview holds point-in-time dashboard counts.
type Overview struct {
	TotalUsers          int `json:"total_users"`
	ActiveSubscriptions int `json:"active_subscriptions"`
	TotalSubscriptions  int `json:"total_subscriptions"`
	TotalPlans          int `json:"total_plans"`
}

// RevenueStats holds the monthly-normalized revenue over active subscriptions.
type RevenueStats struct {
	TotalMonthlyRevenue float64 `json:"total_monthly_revenue"`
}

// TrendBucket is one month of subscription creation activity.
type TrendBucket struct {
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// PlanRanking is one plan's position in a top-plans listing.
type PlanRanking struct {
	PlanID            string  `json:"plan_id"`
	PlanName          string  `json:"plan_name"`
	PlanType          string  `json:"plan_type"`
	PlanPrice         float64 `json:"plan_price"`
	SubscriptionCount int     `json:"subscription_count"`
	UniqueSubscribers int     `json:"unique_subscribers,omitempty"`
}
