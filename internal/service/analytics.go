package service

import (
	"context"
	"math"
	"sort"
	"time"

	"subtrack/internal/domain"
)

const (
	defaultTrendWindow  = 12
	defaultRankingLimit = 5
	defaultRecentLimit  = 5
)

// Analytics computes the dashboard and reporting aggregates. Repositories
// return database-grouped rows; ordering, tie-breaking and gap-filling happen
// here so the rules are enforced in one place.
type Analytics struct {
	subscriptions domain.SubscriptionRepository
	stats         domain.StatsRepository
	discounts     domain.DiscountRepository
	usage         domain.UsageRepository
	users         domain.UserRepository

	now func() time.Time
}

// NewAnalytics constructs the analytics service.
func NewAnalytics(
	subscriptions domain.SubscriptionRepository,
	stats domain.StatsRepository,
	discounts domain.DiscountRepository,
	usage domain.UsageRepository,
	users domain.UserRepository,
) *Analytics {
	return &Analytics{
		subscriptions: subscriptions,
		stats:         stats,
		discounts:     discounts,
		usage:         usage,
		users:         users,
		now:           time.Now,
	}
}

// WithClock overrides the time source. Intended for tests.
func (a *Analytics) WithClock(now func() time.Time) *Analytics {
	a.now = now
	return a
}

// Overview returns point-in-time dashboard counts.
func (a *Analytics) Overview(ctx context.Context) (*domain.Overview, error) {
	return a.stats.Overview(ctx)
}

// RevenueStats sums the monthly-normalized price of every active subscription.
func (a *Analytics) RevenueStats(ctx context.Context) (*domain.RevenueStats, error) {
	charges, err := a.subscriptions.ActiveCharges(ctx)
	if err != nil {
		return nil, err
	}
	var total float64
	for _, c := range charges {
		total += domain.NormalizeMonthly(c.Price, c.Cycle)
	}
	return &domain.RevenueStats{TotalMonthlyRevenue: round2(total)}, nil
}

// StatusBreakdown returns counts for all four statuses, zero-filled.
func (a *Analytics) StatusBreakdown(ctx context.Context) (map[domain.SubscriptionStatus]int, error) {
	raw, err := a.subscriptions.CountsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[domain.SubscriptionStatus]int, len(domain.SubscriptionStatuses))
	for _, status := range domain.SubscriptionStatuses {
		out[status] = raw[status]
	}
	return out, nil
}

// MonthlyTrends returns one bucket per month of the trailing window ending at
// the current month, oldest first. Months without subscriptions are present
// with zero count and revenue; consumers never need to fill gaps themselves.
func (a *Analytics) MonthlyTrends(ctx context.Context, windowMonths int) ([]domain.TrendBucket, error) {
	if windowMonths <= 0 {
		windowMonths = defaultTrendWindow
	}
	now := a.now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(windowMonths - 1), 0)

	sparse, err := a.subscriptions.MonthlyCounts(ctx, start)
	if err != nil {
		return nil, err
	}
	byMonth := make(map[int]domain.TrendBucket, len(sparse))
	for _, b := range sparse {
		byMonth[b.Year*100+b.Month] = b
	}

	out := make([]domain.TrendBucket, 0, windowMonths)
	for i := 0; i < windowMonths; i++ {
		m := start.AddDate(0, i, 0)
		key := m.Year()*100 + int(m.Month())
		if b, ok := byMonth[key]; ok {
			out = append(out, b)
			continue
		}
		out = append(out, domain.TrendBucket{Year: m.Year(), Month: int(m.Month())})
	}
	return out, nil
}

// TopPlans ranks plans by all-time subscription volume.
func (a *Analytics) TopPlans(ctx context.Context, limit int) ([]domain.PlanRanking, error) {
	rows, err := a.subscriptions.PlanCounts(ctx)
	if err != nil {
		return nil, err
	}
	return rankPlans(rows, limit), nil
}

// TopPlansByYear ranks plans within every year present in subscription history.
func (a *Analytics) TopPlansByYear(ctx context.Context, limit int) (map[int][]domain.PlanRanking, error) {
	rows, err := a.subscriptions.PlanCountsByYear(ctx)
	if err != nil {
		return nil, err
	}
	byYear := make(map[int][]domain.PlanRanking)
	for _, row := range rows {
		byYear[row.Year] = append(byYear[row.Year], row.Ranking)
	}
	for year, rankings := range byYear {
		byYear[year] = rankPlans(rankings, limit)
	}
	return byYear, nil
}

// CurrentRankings holds independent rankings for the current calendar month
// and the current calendar year.
type CurrentRankings struct {
	Month []domain.PlanRanking `json:"month"`
	Year  []domain.PlanRanking `json:"year"`
}

// TopPlansCurrent ranks plans by volume within the current month and year.
func (a *Analytics) TopPlansCurrent(ctx context.Context, limit int) (*CurrentRankings, error) {
	now := a.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)

	monthRows, err := a.subscriptions.PlanCountsSince(ctx, monthStart)
	if err != nil {
		return nil, err
	}
	yearRows, err := a.subscriptions.PlanCountsSince(ctx, yearStart)
	if err != nil {
		return nil, err
	}
	return &CurrentRankings{
		Month: rankPlans(monthRows, limit),
		Year:  rankPlans(yearRows, limit),
	}, nil
}

// DiscountUsage returns applied discount events, most recent first.
func (a *Analytics) DiscountUsage(ctx context.Context, limit int) ([]domain.DiscountUsage, error) {
	if limit <= 0 {
		limit = 50
	}
	return a.discounts.ListUsage(ctx, limit)
}

// UsageSummaryForUser returns the usage history window plus its summary.
// averageDailyUsage divides by the distinct days present in the window, not
// by the calendar span, so sparse histories are not diluted.
func (a *Analytics) UsageSummaryForUser(ctx context.Context, userID string, limit int) ([]domain.UsageRecord, domain.UsageSummary, error) {
	if limit <= 0 {
		limit = 30
	}
	history, err := a.usage.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, domain.UsageSummary{}, err
	}
	return history, summarizeUsage(history), nil
}

// Dashboard bundles everything the admin landing page renders.
type Dashboard struct {
	Overview            *domain.Overview                   `json:"overview"`
	TopPlans            []domain.PlanRanking               `json:"top_plans"`
	MonthlyTrends       []domain.TrendBucket               `json:"monthly_trends"`
	RecentUsers         []domain.User                      `json:"-"`
	RecentSubscriptions []domain.Subscription              `json:"-"`
	RevenueStats        *domain.RevenueStats               `json:"revenue_stats"`
	StatusBreakdown     map[domain.SubscriptionStatus]int  `json:"subscription_status_breakdown"`
}

// BuildDashboard assembles the admin dashboard bundle.
func (a *Analytics) BuildDashboard(ctx context.Context) (*Dashboard, error) {
	overview, err := a.Overview(ctx)
	if err != nil {
		return nil, err
	}
	topPlans, err := a.TopPlans(ctx, defaultRankingLimit)
	if err != nil {
		return nil, err
	}
	trends, err := a.MonthlyTrends(ctx, defaultTrendWindow)
	if err != nil {
		return nil, err
	}
	recentUsers, err := a.users.ListRecent(ctx, defaultRecentLimit)
	if err != nil {
		return nil, err
	}
	recentSubs, err := a.subscriptions.ListRecent(ctx, defaultRecentLimit)
	if err != nil {
		return nil, err
	}
	revenue, err := a.RevenueStats(ctx)
	if err != nil {
		return nil, err
	}
	breakdown, err := a.StatusBreakdown(ctx)
	if err != nil {
		return nil, err
	}
	return &Dashboard{
		Overview:            overview,
		TopPlans:            topPlans,
		MonthlyTrends:       trends,
		RecentUsers:         recentUsers,
		RecentSubscriptions: recentSubs,
		RevenueStats:        revenue,
		StatusBreakdown:     breakdown,
	}, nil
}

// rankPlans orders by subscription count descending, breaking ties by plan
// name ascending, and truncates to limit.
func rankPlans(rows []domain.PlanRanking, limit int) []domain.PlanRanking {
	if limit <= 0 {
		limit = defaultRankingLimit
	}
	out := make([]domain.PlanRanking, len(rows))
	copy(out, rows)
	sort.Slice(out, func(i, j int) bool {
		if out[i].SubscriptionCount != out[j].SubscriptionCount {
			return out[i].SubscriptionCount > out[j].SubscriptionCount
		}
		return out[i].PlanName < out[j].PlanName
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func summarizeUsage(history []domain.UsageRecord) domain.UsageSummary {
	if len(history) == 0 {
		return domain.UsageSummary{}
	}
	var summary domain.UsageSummary
	var speedSum float64
	days := make(map[string]struct{}, len(history))
	for _, rec := range history {
		summary.TotalDataUsed += rec.DataUsed
		speedSum += rec.AvgSpeed
		if rec.DataUsed > summary.PeakUsage {
			summary.PeakUsage = rec.DataUsed
		}
		days[rec.Day.Format("2006-01-02")] = struct{}{}
	}
	summary.AverageDailyUsage = round2(summary.TotalDataUsed / float64(len(days)))
	summary.AverageSpeed = round2(speedSum / float64(len(history)))
	summary.TotalDataUsed = round2(summary.TotalDataUsed)
	return summary
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
