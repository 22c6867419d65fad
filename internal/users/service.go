package users

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hagwonhq/hagwon/internal/entitlement"
)

// RepositoryPort defines data access methods for users.
type RepositoryPort interface {
	GetUser(ctx context.Context, id int64) (User, error)
	UpdateRole(ctx context.Context, id int64, role entitlement.Role) error
}

// Service handles member business logic.
type Service struct {
	repo   RepositoryPort
	logger *slog.Logger
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Get returns the member by id.
func (s *Service) Get(ctx context.Context, id int64) (User, error) {
	return s.repo.GetUser(ctx, id)
}

// AssignRole adopts a new membership role for the member. It rejects
// roles outside the known tier set.
func (s *Service) AssignRole(ctx context.Context, id int64, role entitlement.Role) error {
	if !role.Valid() {
		return fmt.Errorf("users: refusing to assign unknown role %q", role)
	}
	if err := s.repo.UpdateRole(ctx, id, role); err != nil {
		return err
	}
	s.logger.Info("users: role updated", slog.Int64("user", id), slog.String("role", string(role)))
	return nil
}
