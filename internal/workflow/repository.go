package workflow

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed access to workflow rules.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListRules returns every rule in catalog order.
func (r *Repository) ListRules(ctx context.Context) ([]Rule, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, on_event, actions FROM workflow_rules ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("workflow: list rules: %w", err)
	}
	defer rows.Close()

	var out []Rule
	for rows.Next() {
		var rule Rule
		var actions []byte
		if err := rows.Scan(&rule.ID, &rule.Name, &rule.OnEvent, &actions); err != nil {
			return nil, fmt.Errorf("workflow: scan rule: %w", err)
		}
		if err := json.Unmarshal(actions, &rule.Actions); err != nil {
			return nil, fmt.Errorf("workflow: rule %q actions: %w", rule.Name, err)
		}
		out = append(out, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("workflow: rows: %w", err)
	}
	return out, nil
}
