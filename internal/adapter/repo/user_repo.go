package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"subtrack/internal/domain"
	"subtrack/internal/infra"
	"subtrack/internal/sqlinline"
)

// UserRepositoryPG implements domain.UserRepository backed by PostgreSQL.
type UserRepositoryPG struct {
	db infra.SQLExecutor
}

// NewUserRepository creates a new UserRepositoryPG.
func NewUserRepository(db infra.SQLExecutor) *UserRepositoryPG {
	return &UserRepositoryPG{db: db}
}

// Create inserts a new user row and returns the stored record.
func (r *UserRepositoryPG) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	row := r.db.QueryRow(ctx, sqlinline.QInsertUser,
		user.Email, user.Name, user.PasswordHash, user.Role, user.Locale)
	return scanUser(row)
}

// GetByID fetches a user by id.
func (r *UserRepositoryPG) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, sqlinline.QSelectUserByID, id))
}

// GetByEmail fetches a user by email, matched case-insensitively.
func (r *UserRepositoryPG) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, sqlinline.QSelectUserByEmail, email))
}

// List returns users filtered by a search term over email and name.
func (r *UserRepositoryPG) List(ctx context.Context, search string, limit, offset int) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, sqlinline.QListUsers, search, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

// ListRecent returns the most recently created users.
func (r *UserRepositoryPG) ListRecent(ctx context.Context, limit int) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, sqlinline.QListRecentUsers, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

// ListActiveIDsByRole resolves the ids of active users holding the given role.
func (r *UserRepositoryPG) ListActiveIDsByRole(ctx context.Context, role domain.UserRole) ([]string, error) {
	rows, err := r.db.Query(ctx, sqlinline.QListActiveUserIDsByRole, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// UpdateProfile updates mutable profile fields and returns the stored record.
func (r *UserRepositoryPG) UpdateProfile(ctx context.Context, id, name, locale string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, sqlinline.QUpdateUserProfile, id, name, locale))
}

// SetActive toggles the active flag.
func (r *UserRepositoryPG) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := r.db.Exec(ctx, sqlinline.QSetUserActive, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a user row.
func (r *UserRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, sqlinline.QDeleteUser, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.Locale, &u.Active, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func collectUsers(rows pgx.Rows) ([]domain.User, error) {
	var items []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.Locale, &u.Active, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

var _ domain.UserRepository = (*UserRepositoryPG)(nil)
