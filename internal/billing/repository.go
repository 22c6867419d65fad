package billing

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence for the payment ledger.
// The ledger is append-only: inserts and reads, no update or delete.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreatePayment appends a ledger row and fills in the generated id and
// creation time.
func (r *Repository) CreatePayment(ctx context.Context, p Payment) (Payment, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO payments (reference, user_id, plan_code, amount, currency) VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`,
		p.Reference, p.UserID, p.PlanCode, p.Amount, p.Currency,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return Payment{}, fmt.Errorf("billing: insert payment: %w", err)
	}
	return p, nil
}

// ListPaymentsByUser returns a member's payment history, newest first.
func (r *Repository) ListPaymentsByUser(ctx context.Context, userID int64) ([]Payment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, reference, user_id, plan_code, amount, currency, created_at FROM payments WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("billing: list payments: %w", err)
	}
	defer rows.Close()

	var out []Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.Reference, &p.UserID, &p.PlanCode, &p.Amount, &p.Currency, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("billing: scan payment: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("billing: rows: %w", err)
	}
	return out, nil
}
