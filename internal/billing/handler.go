package billing

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/hagwonhq/hagwon/internal/plans"
	"github.com/hagwonhq/hagwon/internal/platform/httpx"
)

// Handler exposes subscription and payment-history endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers billing routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/subscriptions", h.subscribe)
	r.Get("/payments", h.listPayments)
}

type subscribeRequest struct {
	PlanCode string `json:"plan_code" validate:"required"`
	UserID   int64  `json:"user_id" validate:"required,gt=0"`
}

func (h *Handler) subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	sub, err := h.service.Subscribe(r.Context(), req.PlanCode, req.UserID)
	switch {
	case errors.Is(err, plans.ErrPlanNotFound):
		httpx.Problem(w, http.StatusNotFound, "Plan Not Found", "plan "+req.PlanCode+" is not listed")
	case errors.Is(err, ErrPaymentFailed):
		httpx.Problem(w, http.StatusPaymentRequired, "Payment Failed", "payment could not be completed")
	case err != nil:
		h.logger.Error("billing: subscribe", slog.String("plan", req.PlanCode), slog.Any("error", err))
		httpx.RespondError(w, err)
	default:
		httpx.JSON(w, http.StatusCreated, sub)
	}
}

func (h *Handler) listPayments(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user"), 10, 64)
	if err != nil || userID <= 0 {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Query", "user query parameter must be a positive id")
		return
	}
	out, err := h.service.Payments(r.Context(), userID)
	if err != nil {
		h.logger.Error("billing: list payments", slog.Int64("user", userID), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if out == nil {
		out = []Payment{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"payments": out})
}
