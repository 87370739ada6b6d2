package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"subtrack/internal/domain"
	"subtrack/internal/infra"
	"subtrack/internal/sqlinline"
)

// PlanRepositoryPG implements domain.PlanRepository backed by PostgreSQL.
type PlanRepositoryPG struct {
	db infra.SQLExecutor
}

// NewPlanRepository creates a new PlanRepositoryPG.
func NewPlanRepository(db infra.SQLExecutor) *PlanRepositoryPG {
	return &PlanRepositoryPG{db: db}
}

// Create inserts a plan and returns the stored record.
func (r *PlanRepositoryPG) Create(ctx context.Context, plan *domain.Plan) (*domain.Plan, error) {
	row := r.db.QueryRow(ctx, sqlinline.QInsertPlan, plan.Name, plan.Type, plan.Price, plan.BillingCycle)
	return scanPlan(row)
}

// GetByID fetches a plan by id.
func (r *PlanRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	return scanPlan(r.db.QueryRow(ctx, sqlinline.QSelectPlanByID, id))
}

// List returns all plans ordered by price then name.
func (r *PlanRepositoryPG) List(ctx context.Context) ([]domain.Plan, error) {
	rows, err := r.db.Query(ctx, sqlinline.QListPlans)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Plan
	for rows.Next() {
		var p domain.Plan
		if err := rows.Scan(&p.ID, &p.Name, &p.Type, &p.Price, &p.BillingCycle, &p.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanPlan(row pgx.Row) (*domain.Plan, error) {
	var p domain.Plan
	if err := row.Scan(&p.ID, &p.Name, &p.Type, &p.Price, &p.BillingCycle, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

var _ domain.PlanRepository = (*PlanRepositoryPG)(nil)
