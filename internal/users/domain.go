// Package users owns member identity and membership role state.
package users

import (
	"time"

	"github.com/hagwonhq/hagwon/internal/entitlement"
)

// User represents a platform member.
type User struct {
	ID        int64            `json:"id"`
	Email     string           `json:"email"`
	Name      string           `json:"name"`
	Role      entitlement.Role `json:"role"`
	CreatedAt time.Time        `json:"created_at"`
}
