package repo

import (
	"context"

	"subtrack/internal/domain"
	"subtrack/internal/infra"
	"subtrack/internal/sqlinline"
)

// UsageRepositoryPG implements domain.UsageRepository backed by PostgreSQL.
type UsageRepositoryPG struct {
	db infra.SQLExecutor
}

// NewUsageRepository creates a new UsageRepositoryPG.
func NewUsageRepository(db infra.SQLExecutor) *UsageRepositoryPG {
	return &UsageRepositoryPG{db: db}
}

// ListByUser returns the user's usage records, newest day first.
func (r *UsageRepositoryPG) ListByUser(ctx context.Context, userID string, limit int) ([]domain.UsageRecord, error) {
	rows, err := r.db.Query(ctx, sqlinline.QListUsageByUser, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.UsageRecord
	for rows.Next() {
		var u domain.UsageRecord
		if err := rows.Scan(&u.ID, &u.UserID, &u.Day, &u.DataUsed, &u.AvgSpeed, &u.PeakSpeed, &u.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

var _ domain.UsageRepository = (*UsageRepositoryPG)(nil)
