package catalog

import (
	"context"
	"fmt"

	"github.com/hagwonhq/hagwon/internal/entitlement"
	"github.com/hagwonhq/hagwon/internal/platform/httpx"
	"github.com/hagwonhq/hagwon/internal/users"
)

// RepositoryPort defines data access methods for courses.
type RepositoryPort interface {
	ListCourses(ctx context.Context) ([]Course, error)
	GetCourse(ctx context.Context, id int64) (Course, error)
}

// MemberSource resolves the requesting member, owner of the role state.
type MemberSource interface {
	Get(ctx context.Context, id int64) (users.User, error)
}

// Service handles catalog reads and access gating.
type Service struct {
	repo    RepositoryPort
	members MemberSource
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, members MemberSource) *Service {
	return &Service{repo: repo, members: members}
}

// ListCourses returns the public catalog. Video IDs are stripped so the
// listing never leaks gated content.
func (s *Service) ListCourses(ctx context.Context) ([]Course, error) {
	out, err := s.repo.ListCourses(ctx)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].VideoID = ""
	}
	return out, nil
}

// GetCourse returns public course metadata.
func (s *Service) GetCourse(ctx context.Context, id int64) (Course, error) {
	c, err := s.repo.GetCourse(ctx, id)
	if err != nil {
		return Course{}, err
	}
	c.VideoID = ""
	return c, nil
}

// OpenCourse returns gated content when the member's role ranks at or
// above the course requirement. Unknown roles fail closed.
func (s *Service) OpenCourse(ctx context.Context, userID, courseID int64) (Content, error) {
	course, err := s.repo.GetCourse(ctx, courseID)
	if err != nil {
		return Content{}, err
	}
	member, err := s.members.Get(ctx, userID)
	if err != nil {
		return Content{}, err
	}
	if !entitlement.CanAccess(member.Role, course.RequiredRole) {
		return Content{}, fmt.Errorf("catalog: course %d requires %s: %w", courseID, course.RequiredRole, httpx.ErrForbidden)
	}
	return Content{CourseID: course.ID, VideoID: course.VideoID}, nil
}
