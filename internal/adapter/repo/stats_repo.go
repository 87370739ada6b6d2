package repo

import (
	"context"

	"subtrack/internal/domain"
	"subtrack/internal/infra"
	"subtrack/internal/sqlinline"
)

// StatsRepositoryPG implements domain.StatsRepository backed by PostgreSQL.
type StatsRepositoryPG struct {
	db infra.SQLExecutor
}

// NewStatsRepository creates a new StatsRepositoryPG.
func NewStatsRepository(db infra.SQLExecutor) *StatsRepositoryPG {
	return &StatsRepositoryPG{db: db}
}

// Overview returns point-in-time dashboard counts in a single round trip.
func (r *StatsRepositoryPG) Overview(ctx context.Context) (*domain.Overview, error) {
	row := r.db.QueryRow(ctx, sqlinline.QOverviewCounts)
	var o domain.Overview
	if err := row.Scan(&o.TotalUsers, &o.ActiveSubscriptions, &o.TotalSubscriptions, &o.TotalPlans); err != nil {
		return nil, err
	}
	return &o, nil
}

var _ domain.StatsRepository = (*StatsRepositoryPG)(nil)
