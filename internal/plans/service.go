package plans

import (
	"context"
	"log/slog"

	"github.com/hagwonhq/hagwon/internal/notify"
)

// RepositoryPort defines data access methods for the plan catalog.
type RepositoryPort interface {
	ListPlans(ctx context.Context) ([]Plan, error)
}

// Service handles plan catalog reads.
type Service struct {
	repo     RepositoryPort
	cache    *Cache
	notifier notify.Notifier
	logger   *slog.Logger
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, cache *Cache, notifier notify.Notifier, logger *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, notifier: notifier, logger: logger}
}

func (s *Service) load(ctx context.Context) ([]Plan, error) {
	key, err := s.cache.BuildKey(ctx, "plans", "catalog")
	if err != nil {
		s.logger.Warn("plans: cache key unavailable, reading direct", slog.Any("error", err))
		return s.repo.ListPlans(ctx)
	}
	var out []Plan
	err = s.cache.FetchJSON(ctx, key, &out, func(ctx context.Context) (interface{}, error) {
		return s.repo.ListPlans(ctx)
	})
	if err != nil {
		// A cache read failure is not a catalog failure. Plans still
		// have to resolve while Redis is down, purchases depend on it.
		s.logger.Warn("plans: cache fetch failed, reading direct", slog.Any("error", err))
		return s.repo.ListPlans(ctx)
	}
	return out, nil
}

// Catalog returns every listed plan ordered by ascending price. A listing
// failure degrades to an empty catalog and surfaces a user-visible notice;
// it never errors past this boundary.
func (s *Service) Catalog(ctx context.Context) []Plan {
	out, err := s.load(ctx)
	if err != nil {
		s.logger.Error("plans: catalog unavailable", slog.Any("error", err))
		if s.notifier != nil {
			notice := notify.Notification{Message: "플랜 정보를 불러오지 못했습니다. 잠시 후 다시 시도해주세요.", Level: notify.LevelError}
			if nerr := s.notifier.Notify(ctx, notice); nerr != nil {
				s.logger.Warn("plans: notify catalog failure", slog.Any("error", nerr))
			}
		}
		return []Plan{}
	}
	if out == nil {
		out = []Plan{}
	}
	return out
}

// FindPlan resolves a plan by its public code.
func (s *Service) FindPlan(ctx context.Context, code string) (Plan, error) {
	out, err := s.load(ctx)
	if err != nil {
		return Plan{}, err
	}
	for _, p := range out {
		if p.Code == code {
			return p, nil
		}
	}
	return Plan{}, ErrPlanNotFound
}

// WarmCache primes the catalog cache, used by the scheduled warmup job.
func (s *Service) WarmCache(ctx context.Context) error {
	_, err := s.load(ctx)
	return err
}
