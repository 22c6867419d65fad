package plans

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hagwonhq/hagwon/internal/entitlement"
)

// Repository provides PostgreSQL backed access to the plan catalog.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListPlans returns every listed plan, cheapest first.
func (r *Repository) ListPlans(ctx context.Context) ([]Plan, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, code, name, price, currency, grant_role FROM membership_plans ORDER BY price ASC`)
	if err != nil {
		return nil, fmt.Errorf("plans: list: %w", err)
	}
	defer rows.Close()

	var out []Plan
	for rows.Next() {
		var p Plan
		var grantRole string
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.Price, &p.Currency, &grantRole); err != nil {
			return nil, fmt.Errorf("plans: scan: %w", err)
		}
		p.GrantRole = entitlement.Role(grantRole)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("plans: rows: %w", err)
	}
	return out, nil
}
