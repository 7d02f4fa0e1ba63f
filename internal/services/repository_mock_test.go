package services

import (
	"context"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/identity-service/internal/models"
	"github.com/SAP-F-2025/identity-service/internal/repositories"
)

// mockRepository is an in-memory Repository for service tests.
type mockRepository struct {
	users   map[uint]*models.User
	roles   map[uint]*models.Role
	courses map[uint]*models.Course

	// taID -> course IDs
	taCourses map[uint][]uint
	// courseID -> participating student IDs
	participants map[uint][]uint

	nextUserID uint
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		users:        make(map[uint]*models.User),
		roles:        make(map[uint]*models.Role),
		courses:      make(map[uint]*models.Course),
		taCourses:    make(map[uint][]uint),
		participants: make(map[uint][]uint),
		nextUserID:   1,
	}
}

func (m *mockRepository) User() repositories.UserRepository     { return (*mockUserRepo)(m) }
func (m *mockRepository) Role() repositories.RoleRepository     { return (*mockRoleRepo)(m) }
func (m *mockRepository) Course() repositories.CourseRepository { return (*mockCourseRepo)(m) }

func (m *mockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

func (m *mockRepository) Ping(ctx context.Context) error { return nil }
func (m *mockRepository) Close() error                   { return nil }

// ===== SEED HELPERS =====

func (m *mockRepository) addRole(id uint, name models.RoleKind, parentID *uint) *models.Role {
	role := &models.Role{ID: id, Name: name, ParentID: parentID}
	m.roles[id] = role
	return role
}

func (m *mockRepository) addUser(user *models.User) *models.User {
	if user.ID == 0 {
		user.ID = m.nextUserID
	}
	if user.ID >= m.nextUserID {
		m.nextUserID = user.ID + 1
	}
	if user.Role == nil {
		user.Role = m.roles[user.RoleID]
	}
	m.users[user.ID] = user
	return user
}

func (m *mockRepository) addCourse(id uint, name string, instructorID uint) *models.Course {
	course := &models.Course{ID: id, Name: name, InstructorID: instructorID}
	m.courses[id] = course
	return course
}

func (m *mockRepository) addTA(taID, courseID uint) {
	m.taCourses[taID] = append(m.taCourses[taID], courseID)
}

func (m *mockRepository) addParticipant(courseID, studentID uint) {
	m.participants[courseID] = append(m.participants[courseID], studentID)
}

// ===== USER REPOSITORY =====

type mockUserRepo mockRepository

func (m *mockUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) FindByName(ctx context.Context, name string) ([]*models.User, error) {
	var matches []*models.User
	for _, user := range m.users {
		if user.Name == name {
			matches = append(matches, user)
		}
	}
	return matches, nil
}

func (m *mockUserRepo) SearchByFullName(ctx context.Context, pattern string, limit int) ([]*models.User, error) {
	needle := strings.ToLower(pattern)

	var matches []*models.User
	for _, user := range m.users {
		if strings.Contains(strings.ToLower(user.FullName), needle) {
			matches = append(matches, user)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Name < matches[j].Name })

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (m *mockUserRepo) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	var all []*models.User
	for _, user := range m.users {
		if filters.RoleID != nil && user.RoleID != *filters.RoleID {
			continue
		}
		if len(filters.RoleIDs) > 0 {
			found := false
			for _, id := range filters.RoleIDs {
				if user.RoleID == id {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		all = append(all, user)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })

	total := int64(len(all))
	if filters.Offset > 0 {
		if filters.Offset >= len(all) {
			all = nil
		} else {
			all = all[filters.Offset:]
		}
	}
	if filters.Limit > 0 && len(all) > filters.Limit {
		all = all[:filters.Limit]
	}
	return all, total, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	(*mockRepository)(m).addUser(user)
	return nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id uint) error {
	for _, user := range m.users {
		if user.ParentID != nil && *user.ParentID == id {
			user.ParentID = nil
		}
	}
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	return err == nil, nil
}

func (m *mockUserRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	matches, _ := m.FindByName(ctx, name)
	return len(matches) > 0, nil
}

// ===== ROLE REPOSITORY =====

type mockRoleRepo mockRepository

func (m *mockRoleRepo) GetByID(ctx context.Context, id uint) (*models.Role, error) {
	role, ok := m.roles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return role, nil
}

func (m *mockRoleRepo) GetByName(ctx context.Context, name models.RoleKind) (*models.Role, error) {
	for _, role := range m.roles {
		if role.Name == name {
			return role, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoleRepo) List(ctx context.Context) ([]*models.Role, error) {
	var all []*models.Role
	for _, role := range m.roles {
		all = append(all, role)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

// ===== COURSE REPOSITORY =====

type mockCourseRepo mockRepository

func (m *mockCourseRepo) GetByInstructor(ctx context.Context, instructorID uint) ([]*models.Course, error) {
	var courses []*models.Course
	for _, course := range m.courses {
		if course.InstructorID == instructorID {
			courses = append(courses, course)
		}
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	return courses, nil
}

func (m *mockCourseRepo) GetByTeachingAssistant(ctx context.Context, taID uint) ([]*models.Course, error) {
	var courses []*models.Course
	for _, courseID := range m.taCourses[taID] {
		if course, ok := m.courses[courseID]; ok {
			courses = append(courses, course)
		}
	}
	return courses, nil
}

func (m *mockCourseRepo) HasParticipant(ctx context.Context, courseID, studentID uint) (bool, error) {
	for _, id := range m.participants[courseID] {
		if id == studentID {
			return true, nil
		}
	}
	return false, nil
}
