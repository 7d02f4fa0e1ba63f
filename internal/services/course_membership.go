package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/identity-service/internal/models"
	"github.com/SAP-F-2025/identity-service/internal/repositories"
)

type courseMembershipService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewCourseMembershipService(repo repositories.Repository, logger *slog.Logger) CourseMembershipService {
	return &courseMembershipService{
		repo:   repo,
		logger: logger,
	}
}

// CoursesInstructedBy returns the courses the user instructs. A user with no
// instructor records simply gets an empty set; callers gate on role first.
func (s *courseMembershipService) CoursesInstructedBy(ctx context.Context, user *models.User) ([]*models.Course, error) {
	courses, err := s.repo.Course().GetByInstructor(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve instructed courses for user %d: %w", user.ID, err)
	}
	return courses, nil
}

func (s *courseMembershipService) CoursesAssistedBy(ctx context.Context, user *models.User) ([]*models.Course, error) {
	courses, err := s.repo.Course().GetByTeachingAssistant(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve assisted courses for user %d: %w", user.ID, err)
	}
	return courses, nil
}

// ParticipatesIn reports whether the student is enrolled in any assignment
// of the course.
func (s *courseMembershipService) ParticipatesIn(ctx context.Context, student *models.User, course *models.Course) (bool, error) {
	ok, err := s.repo.Course().HasParticipant(ctx, course.ID, student.ID)
	if err != nil {
		return false, fmt.Errorf("failed to check participation of user %d in course %d: %w", student.ID, course.ID, err)
	}
	return ok, nil
}

// SharedCourseExists reports whether the two course sets intersect.
func SharedCourseExists(a, b []*models.Course) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}

	ids := make(map[uint]bool, len(a))
	for _, c := range a {
		ids[c.ID] = true
	}
	for _, c := range b {
		if ids[c.ID] {
			return true
		}
	}
	return false
}
