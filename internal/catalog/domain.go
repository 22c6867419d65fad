// Package catalog serves the course catalog with role-gated content access.
package catalog

import (
	"time"

	"github.com/hagwonhq/hagwon/internal/entitlement"
)

// Course is a single lecture entry in the catalog. Listing metadata is
// public; the video content is gated at RequiredRole.
type Course struct {
	ID              int64            `json:"id"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	RequiredRole    entitlement.Role `json:"required_role"`
	VideoID         string           `json:"video_id,omitempty"`
	DurationMinutes int              `json:"duration_minutes"`
	EnrolledCount   int              `json:"enrolled_count"`
	CreatedAt       time.Time        `json:"created_at"`
}

// Content is the gated payload returned once access is granted.
type Content struct {
	CourseID int64  `json:"course_id"`
	VideoID  string `json:"video_id"`
}
