package repo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"subtrack/internal/domain"
	"subtrack/internal/infra"
	"subtrack/internal/sqlinline"
)

// SubscriptionRepositoryPG implements domain.SubscriptionRepository backed by
// PostgreSQL. Aggregate methods return rows as grouped by the database; the
// analytics service owns ordering and gap-filling.
type SubscriptionRepositoryPG struct {
	db infra.SQLExecutor
}

// NewSubscriptionRepository creates a new SubscriptionRepositoryPG.
func NewSubscriptionRepository(db infra.SQLExecutor) *SubscriptionRepositoryPG {
	return &SubscriptionRepositoryPG{db: db}
}

// ListByUser returns the user's subscriptions, newest first, with plan fields joined in.
func (r *SubscriptionRepositoryPG) ListByUser(ctx context.Context, userID string) ([]domain.Subscription, error) {
	rows, err := r.db.Query(ctx, sqlinline.QListSubscriptionsByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSubscriptions(rows)
}

// ListRecent returns the most recently created subscriptions across all users.
func (r *SubscriptionRepositoryPG) ListRecent(ctx context.Context, limit int) ([]domain.Subscription, error) {
	rows, err := r.db.Query(ctx, sqlinline.QListRecentSubscriptions, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSubscriptions(rows)
}

// GetActiveForUser returns the user's current active subscription, if any.
func (r *SubscriptionRepositoryPG) GetActiveForUser(ctx context.Context, userID string) (*domain.Subscription, error) {
	row := r.db.QueryRow(ctx, sqlinline.QSelectActiveSubscriptionForUser, userID)
	var s domain.Subscription
	if err := scanSubscription(row, &s); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// CountsByStatus returns raw per-status counts; statuses with no rows are absent.
func (r *SubscriptionRepositoryPG) CountsByStatus(ctx context.Context) (map[domain.SubscriptionStatus]int, error) {
	rows, err := r.db.Query(ctx, sqlinline.QSubscriptionStatusCounts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.SubscriptionStatus]int)
	for rows.Next() {
		var status domain.SubscriptionStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

// ActiveCharges returns the price/cycle pair of every active subscription.
func (r *SubscriptionRepositoryPG) ActiveCharges(ctx context.Context) ([]domain.PlanCharge, error) {
	rows, err := r.db.Query(ctx, sqlinline.QActiveSubscriptionCharges)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var charges []domain.PlanCharge
	for rows.Next() {
		var c domain.PlanCharge
		if err := rows.Scan(&c.Price, &c.Cycle); err != nil {
			return nil, err
		}
		charges = append(charges, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return charges, nil
}

// MonthlyCounts returns sparse creation-month buckets since the given time.
func (r *SubscriptionRepositoryPG) MonthlyCounts(ctx context.Context, since time.Time) ([]domain.TrendBucket, error) {
	rows, err := r.db.Query(ctx, sqlinline.QMonthlySubscriptionCounts, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buckets []domain.TrendBucket
	for rows.Next() {
		var b domain.TrendBucket
		if err := rows.Scan(&b.Year, &b.Month, &b.Count, &b.Revenue); err != nil {
			return nil, err
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return buckets, nil
}

// PlanCounts returns per-plan subscription volume over all time.
func (r *SubscriptionRepositoryPG) PlanCounts(ctx context.Context) ([]domain.PlanRanking, error) {
	rows, err := r.db.Query(ctx, sqlinline.QPlanSubscriptionCounts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPlanRankings(rows)
}

// PlanCountsByYear returns per-plan volume for every year present in history.
func (r *SubscriptionRepositoryPG) PlanCountsByYear(ctx context.Context) ([]domain.YearPlanCount, error) {
	rows, err := r.db.Query(ctx, sqlinline.QPlanSubscriptionCountsByYear)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.YearPlanCount
	for rows.Next() {
		var y domain.YearPlanCount
		if err := rows.Scan(&y.Year, &y.Ranking.PlanID, &y.Ranking.PlanName, &y.Ranking.PlanType,
			&y.Ranking.PlanPrice, &y.Ranking.SubscriptionCount, &y.Ranking.UniqueSubscribers); err != nil {
			return nil, err
		}
		items = append(items, y)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// PlanCountsSince returns per-plan volume for subscriptions created at or after since.
func (r *SubscriptionRepositoryPG) PlanCountsSince(ctx context.Context, since time.Time) ([]domain.PlanRanking, error) {
	rows, err := r.db.Query(ctx, sqlinline.QPlanSubscriptionCountsSince, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPlanRankings(rows)
}

func scanSubscription(row pgx.Row, s *domain.Subscription) error {
	return row.Scan(&s.ID, &s.UserID, &s.PlanID, &s.Status, &s.StartDate, &s.EndDate, &s.CreatedAt,
		&s.PlanName, &s.PlanPrice)
}

func collectSubscriptions(rows pgx.Rows) ([]domain.Subscription, error) {
	var items []domain.Subscription
	for rows.Next() {
		var s domain.Subscription
		if err := scanSubscription(rows, &s); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func collectPlanRankings(rows pgx.Rows) ([]domain.PlanRanking, error) {
	var items []domain.PlanRanking
	for rows.Next() {
		var p domain.PlanRanking
		if err := rows.Scan(&p.PlanID, &p.PlanName, &p.PlanType, &p.PlanPrice, &p.SubscriptionCount); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

var _ domain.SubscriptionRepository = (*SubscriptionRepositoryPG)(nil)
