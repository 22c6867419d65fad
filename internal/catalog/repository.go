package catalog

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

const courseColumns = `id, title, description, required_role, video_id, duration_minutes, enrolled_count, created_at`

func scanCourse(row pgx.Row) (Course, error) {
	var c Course
	var role string
	if err := row.Scan(&c.ID, &c.Title, &c.Description, &role, &c.VideoID, &c.DurationMinutes, &c.EnrolledCount, &c.CreatedAt); err != nil {
		return Course{}, err
	}
	c.RequiredRole = entitlement.Role(role)
	return c, nil
}

// ListCourses returns the catalog, newest first.
func (r *Repository) ListCourses(ctx context.Context) ([]Course, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+courseColumns+` FROM courses ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("catalog: list: %w", err)
	}
	defer rows.Close()

	var out []Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("catalog: scan: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: rows: %w", err)
	}
	return out, nil
}

// GetCourse returns a single course by id.
func (r *Repository) GetCourse(ctx context.Context, id int64) (Course, error) {
	c, err := scanCourse(r.pool.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Course{}, fmt.Errorf("catalog: course %d: %w", id, httpx.ErrNotFound)
	}
	if err != nil {
		return Course{}, fmt.Errorf("catalog: get: %w", err)
	}
	return c, nil
}
