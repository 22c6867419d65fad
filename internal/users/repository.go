package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hagwonhq/hagwon/internal/entitlement"
	"github.com/hagwonhq/hagwon/internal/platform/httpx"
)

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetUser returns a single member by id.
func (r *Repository) GetUser(ctx context.Context, id int64) (User, error) {
	var u User
	var role string
	err := r.pool.QueryRow(ctx, `SELECT id, email, name, role, created_at FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Email, &u.Name, &role, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, fmt.Errorf("users: id %d: %w", id, httpx.ErrNotFound)
	}
	if err != nil {
		return User{}, fmt.Errorf("users: get: %w", err)
	}
	u.Role = entitlement.Role(role)
	return u, nil
}

// UpdateRole stores a new membership role for the member.
func (r *Repository) UpdateRole(ctx context.Context, id int64, role entitlement.Role) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET role = $2, updated_at = NOW() WHERE id = $1`, id, string(role))
	if err != nil {
		return fmt.Errorf("users: update role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("users: id %d: %w", id, httpx.ErrNotFound)
	}
	return nil
}
