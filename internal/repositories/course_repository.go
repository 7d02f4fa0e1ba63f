package repositories

import (
	"context"

	"github.com/SAP-F-2025/identity-service/internal/models"
)

// CourseRepository reads course, TA and assignment-participation facts owned
// by the course service. Queries for a user with no matching records return
// empty results, not errors.
type CourseRepository interface {
	// GetByInstructor returns all courses where the user is the instructor
	// of record.
	GetByInstructor(ctx context.Context, instructorID uint) ([]*models.Course, error)

	// GetByTeachingAssistant returns all courses the user has a TA
	// assignment on.
	GetByTeachingAssistant(ctx context.Context, taID uint) ([]*models.Course, error)

	// HasParticipant reports whether the student is enrolled as a
	// participant in any assignment belonging to the course.
	HasParticipant(ctx context.Context, courseID, studentID uint) (bool, error)
}
