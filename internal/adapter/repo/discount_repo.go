package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"subtrack/internal/domain"
	"subtrack/internal/infra"
	"subtrack/internal/sqlinline"
)

// DiscountRepositoryPG implements domain.DiscountRepository backed by PostgreSQL.
type DiscountRepositoryPG struct {
	db infra.SQLExecutor
}

// NewDiscountRepository creates a new DiscountRepositoryPG.
func NewDiscountRepository(db infra.SQLExecutor) *DiscountRepositoryPG {
	return &DiscountRepositoryPG{db: db}
}

// GetByID fetches a discount by id.
func (r *DiscountRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Discount, error) {
	row := r.db.QueryRow(ctx, sqlinline.QSelectDiscountByID, id)
	var d domain.Discount
	if err := row.Scan(&d.ID, &d.Code, &d.Name, &d.Type, &d.Value, &d.Active, &d.ExpiresAt, &d.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// List returns discounts ordered by expiry ascending, optionally active-only.
func (r *DiscountRepositoryPG) List(ctx context.Context, activeOnly bool, limit int) ([]domain.Discount, error) {
	rows, err := r.db.Query(ctx, sqlinline.QListDiscounts, activeOnly, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Discount
	for rows.Next() {
		var d domain.Discount
		if err := rows.Scan(&d.ID, &d.Code, &d.Name, &d.Type, &d.Value, &d.Active, &d.ExpiresAt, &d.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// ListUsage returns applied discount events, most recent first.
func (r *DiscountRepositoryPG) ListUsage(ctx context.Context, limit int) ([]domain.DiscountUsage, error) {
	rows, err := r.db.Query(ctx, sqlinline.QListDiscountUsage, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.DiscountUsage
	for rows.Next() {
		var u domain.DiscountUsage
		if err := rows.Scan(&u.ID, &u.UserID, &u.Code, &u.AmountBefore, &u.DiscountAmount, &u.AmountAfter, &u.AppliedAt); err != nil {
			return nil, err
		}
		items = append(items, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

var _ domain.DiscountRepository = (*DiscountRepositoryPG)(nil)
