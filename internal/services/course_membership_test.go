package services

import (
	"context"
	"testing"

	"github.com/SAP-F-2025/identity-service/internal/models"
)

func TestCourseMembershipService(t *testing.T) {
	ctx := context.Background()

	repo := newMockRepository()
	repo.addRole(1, models.RoleStudent, nil)
	repo.addRole(2, models.RoleTeachingAssistant, nil)
	repo.addRole(3, models.RoleInstructor, nil)

	instructor := repo.addUser(&models.User{Name: "ike", FullName: "Ike", Email: "ike@uni.edu", RoleID: 3})
	ta := repo.addUser(&models.User{Name: "tom", FullName: "Tom", Email: "tom@uni.edu", RoleID: 2})
	student := repo.addUser(&models.User{Name: "sam", FullName: "Sam", Email: "sam@uni.edu", RoleID: 1})

	c1 := repo.addCourse(1, "Algorithms", instructor.ID)
	c2 := repo.addCourse(2, "Databases", instructor.ID)
	repo.addTA(ta.ID, 1)
	repo.addParticipant(1, student.ID)

	svc := NewCourseMembershipService(repo, testLogger())

	t.Run("CoursesInstructedBy", func(t *testing.T) {
		courses, err := svc.CoursesInstructedBy(ctx, instructor)
		if err != nil {
			t.Fatalf("CoursesInstructedBy returned error: %v", err)
		}
		if len(courses) != 2 {
			t.Errorf("Expected 2 instructed courses, got %d", len(courses))
		}

		courses, err = svc.CoursesInstructedBy(ctx, student)
		if err != nil {
			t.Fatalf("CoursesInstructedBy returned error: %v", err)
		}
		if len(courses) != 0 {
			t.Errorf("Student should instruct no courses, got %d", len(courses))
		}
	})

	t.Run("CoursesAssistedBy", func(t *testing.T) {
		courses, err := svc.CoursesAssistedBy(ctx, ta)
		if err != nil {
			t.Fatalf("CoursesAssistedBy returned error: %v", err)
		}
		if len(courses) != 1 || courses[0].ID != c1.ID {
			t.Errorf("Expected [course 1], got %+v", courses)
		}
	})

	t.Run("ParticipatesIn", func(t *testing.T) {
		ok, err := svc.ParticipatesIn(ctx, student, c1)
		if err != nil {
			t.Fatalf("ParticipatesIn returned error: %v", err)
		}
		if !ok {
			t.Error("Student participates in course 1")
		}

		ok, err = svc.ParticipatesIn(ctx, student, c2)
		if err != nil {
			t.Fatalf("ParticipatesIn returned error: %v", err)
		}
		if ok {
			t.Error("Student does not participate in course 2")
		}
	})
}

func TestSharedCourseExists(t *testing.T) {
	c1 := &models.Course{ID: 1}
	c2 := &models.Course{ID: 2}
	c3 := &models.Course{ID: 3}

	tests := []struct {
		name string
		a, b []*models.Course
		want bool
	}{
		{"Overlap", []*models.Course{c1, c2}, []*models.Course{c2, c3}, true},
		{"Disjoint", []*models.Course{c1}, []*models.Course{c3}, false},
		{"EmptyLeft", nil, []*models.Course{c1}, false},
		{"EmptyRight", []*models.Course{c1}, nil, false},
		{"BothEmpty", nil, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SharedCourseExists(tt.a, tt.b); got != tt.want {
				t.Errorf("SharedCourseExists = %v, want %v", got, tt.want)
			}
		})
	}
}
