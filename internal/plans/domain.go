// Package plans serves the purchasable membership plan catalog.
package plans

import (
	"errors"

	"github.com/hagwonhq/hagwon/internal/entitlement"
)

// Plan is a purchasable membership plan. The catalog is read-only here;
// plans are created and retired by an external admin surface.
type Plan struct {
	ID        int64            `json:"id"`
	Code      string           `json:"code"`
	Name      string           `json:"name"`
	Price     int64            `json:"price"`
	Currency  string           `json:"currency"`
	GrantRole entitlement.Role `json:"grant_role"`
}

// ErrPlanNotFound indicates the requested plan code is absent from the catalog.
var ErrPlanNotFound = errors.New("plans: plan not found")
