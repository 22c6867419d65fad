package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/hagwonhq/hagwon/internal/billing"
	"github.com/hagwonhq/hagwon/internal/catalog"
	"github.com/hagwonhq/hagwon/internal/observability"
	"github.com/hagwonhq/hagwon/internal/plans"
	"github.com/hagwonhq/hagwon/internal/study"
	"github.com/hagwonhq/hagwon/internal/users"
	"github.com/hagwonhq/hagwon/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	PlansHandler   *plans.Handler
	BillingHandler *billing.Handler
	CatalogHandler *catalog.Handler
	StudyHandler   *study.Handler
	UsersHandler   *users.Handler
	JobHandler     *jobs.Handler
	Metrics        *observability.Metrics
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/plans", params.PlansHandler.MountRoutes)
	r.Route("/courses", params.CatalogHandler.MountRoutes)
	r.Route("/study", params.StudyHandler.MountRoutes)
	r.Route("/users", params.UsersHandler.MountRoutes)
	params.BillingHandler.MountRoutes(r)
	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}

	return r
}
