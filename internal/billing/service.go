package billing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hagwonhq/hagwon/internal/plans"
	"github.com/hagwonhq/hagwon/internal/workflow"
)

// RepositoryPort defines data access methods for the payment ledger.
type RepositoryPort interface {
	CreatePayment(ctx context.Context, p Payment) (Payment, error)
	ListPaymentsByUser(ctx context.Context, userID int64) ([]Payment, error)
}

// PlanSource resolves plan codes against the catalog.
type PlanSource interface {
	FindPlan(ctx context.Context, code string) (plans.Plan, error)
}

// EventEmitter hands events to the workflow dispatcher. Emission is
// fire-and-forget: by the time it runs the subscription already succeeded.
type EventEmitter interface {
	EmitEvent(ctx context.Context, name string, payload map[string]any) error
}

// Service handles subscription purchases.
type Service struct {
	repo    RepositoryPort
	plans   PlanSource
	emitter EventEmitter
	logger  *slog.Logger
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, planSource PlanSource, emitter EventEmitter, logger *slog.Logger) *Service {
	return &Service{repo: repo, plans: planSource, emitter: emitter, logger: logger}
}

// Subscribe purchases the plan for the member. On success the payment is
// recorded, subscription.paid is emitted for the workflow dispatcher, and
// the plan's granted role is returned immediately. Callers must not assume
// workflow actions have completed when Subscribe returns.
func (s *Service) Subscribe(ctx context.Context, planCode string, userID int64) (Subscription, error) {
	plan, err := s.plans.FindPlan(ctx, planCode)
	if err != nil {
		return Subscription{}, err
	}

	payment, err := s.repo.CreatePayment(ctx, Payment{
		Reference: uuid.NewString(),
		UserID:    userID,
		PlanCode:  plan.Code,
		Amount:    plan.Price,
		Currency:  plan.Currency,
	})
	if err != nil {
		return Subscription{}, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	payload := map[string]any{
		"plan": map[string]any{
			"code":      plan.Code,
			"name":      plan.Name,
			"price":     plan.Price,
			"currency":  plan.Currency,
			"grantRole": string(plan.GrantRole),
		},
		"user": userID,
		"payment": map[string]any{
			"id":        payment.ID,
			"reference": payment.Reference,
			"amount":    payment.Amount,
			"currency":  payment.Currency,
			"createdAt": payment.CreatedAt.Format(time.RFC3339),
		},
	}
	if err := s.emitter.EmitEvent(ctx, workflow.EventSubscriptionPaid, payload); err != nil {
		// The ledger row exists, so the purchase stands. Workflow side
		// effects are best effort.
		s.logger.Error("billing: emit subscription.paid",
			slog.Int64("user", userID),
			slog.String("plan", plan.Code),
			slog.Any("error", err))
	}

	return Subscription{
		GrantedRole: plan.GrantRole,
		PaymentID:   payment.ID,
		Reference:   payment.Reference,
	}, nil
}

// Payments returns the member's payment history, newest first.
func (s *Service) Payments(ctx context.Context, userID int64) ([]Payment, error) {
	return s.repo.ListPaymentsByUser(ctx, userID)
}
