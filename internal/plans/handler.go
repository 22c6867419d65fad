package plans

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hagwonhq/hagwon/internal/platform/httpx"
)

// Handler exposes plan catalog endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers plan routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.listPlans)
}

func (h *Handler) listPlans(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]any{"plans": h.service.Catalog(r.Context())})
}
