package handlers

import (
	"net/http"
	"time"
)

// Dashboard returns the admin landing-page bundle. Recent users and
// subscriptions are re-mapped so password hashes never reach the wire.
func (a *App) Dashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := a.Analytics.BuildDashboard(r.Context())
	if err != nil {
		a.domainError(w, err)
		return
	}

	recentUsers := make([]userResponse, 0, len(dash.RecentUsers))
	for i := range dash.RecentUsers {
		recentUsers = append(recentUsers, toUserResponse(&dash.RecentUsers[i]))
	}
	recentSubs := make([]subscriptionResponse, 0, len(dash.RecentSubscriptions))
	for _, s := range dash.RecentSubscriptions {
		recentSubs = append(recentSubs, toSubscriptionResponse(s))
	}

	a.json(w, http.StatusOK, map[string]any{
		"overview":                      dash.Overview,
		"top_plans":                     dash.TopPlans,
		"monthly_trends":                dash.MonthlyTrends,
		"recent_users":                  recentUsers,
		"recent_subscriptions":          recentSubs,
		"revenue_stats":                 dash.RevenueStats,
		"subscription_status_breakdown": dash.StatusBreakdown,
	})
}

// TopPlans serves /analytics/top-plans. The "by" query selects the grouping:
// all-time (default), per-year, or the current month/year pair.
func (a *App) TopPlans(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 5)
	ctx := r.Context()

	switch r.URL.Query().Get("by") {
	case "", "all":
		rankings, err := a.Analytics.TopPlans(ctx, limit)
		if err != nil {
			a.domainError(w, err)
			return
		}
		a.json(w, http.StatusOK, map[string]any{"top_plans": rankings})
	case "year":
		byYear, err := a.Analytics.TopPlansByYear(ctx, limit)
		if err != nil {
			a.domainError(w, err)
			return
		}
		a.json(w, http.StatusOK, map[string]any{"by_year": byYear})
	case "current":
		current, err := a.Analytics.TopPlansCurrent(ctx, limit)
		if err != nil {
			a.domainError(w, err)
			return
		}
		a.json(w, http.StatusOK, current)
	default:
		a.error(w, http.StatusBadRequest, "bad_request", "by must be all, year or current")
	}
}

type discountUsageResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Code           string    `json:"code"`
	AmountBefore   float64   `json:"amount_before"`
	DiscountAmount float64   `json:"discount_amount"`
	AmountAfter    float64   `json:"amount_after"`
	AppliedAt      time.Time `json:"applied_at"`
}

func (a *App) DiscountUsage(w http.ResponseWriter, r *http.Request) {
	rows, err := a.Analytics.DiscountUsage(r.Context(), queryInt(r, "limit", 50))
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]discountUsageResponse, 0, len(rows))
	for _, u := range rows {
		items = append(items, discountUsageResponse{
			ID:             u.ID,
			UserID:         u.UserID,
			Code:           u.Code,
			AmountBefore:   u.AmountBefore,
			DiscountAmount: u.DiscountAmount,
			AmountAfter:    u.AmountAfter,
			AppliedAt:      u.AppliedAt,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

type discountResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Value     float64   `json:"value"`
	Active    bool      `json:"active"`
	ExpiresAt time.Time `json:"expires_at"`
}

// DiscountsList backs the offer picker on the admin send form: active offers
// only by default, soonest expiry first.
func (a *App) DiscountsList(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") != "false"
	rows, err := a.Discounts.List(r.Context(), activeOnly, queryInt(r, "limit", 50))
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]discountResponse, 0, len(rows))
	for _, d := range rows {
		items = append(items, discountResponse{
			ID:        d.ID,
			Code:      d.Code,
			Name:      d.Name,
			Type:      string(d.Type),
			Value:     d.Value,
			Active:    d.Active,
			ExpiresAt: d.ExpiresAt,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}
