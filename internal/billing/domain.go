// Package billing records payments and initiates membership subscriptions.
package billing

import (
	"errors"
	"time"

	"github.com/hagwonhq/hagwon/internal/entitlement"
)

// Payment is one entry of the append-only payment ledger. Ledger rows are
// created exactly once per successful purchase and never mutated.
type Payment struct {
	ID        int64     `json:"id"`
	Reference string    `json:"reference"`
	UserID    int64     `json:"user_id"`
	PlanCode  string    `json:"plan_code"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
}

// Subscription is the immediate result of a successful purchase. The
// granted role comes from the plan mapping so the caller can update its
// local state without waiting on the workflow dispatcher.
type Subscription struct {
	GrantedRole entitlement.Role `json:"granted_role"`
	PaymentID   int64            `json:"payment_id"`
	Reference   string           `json:"reference"`
}

// ErrPaymentFailed indicates the payment collaborator rejected or errored.
// No event is emitted and no role is granted.
var ErrPaymentFailed = errors.New("billing: payment failed")
