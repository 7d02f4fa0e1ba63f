package services

import (
	"context"

	"github.com/SAP-F-2025/identity-service/internal/models"
	"github.com/SAP-F-2025/identity-service/internal/repositories"
	"github.com/SAP-F-2025/identity-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use validator types for request payloads
type CreateUserRequest = validator.UserCreateRequest
type UpdateUserRequest = validator.UserUpdateRequest
type LoginRequest = validator.LoginRequest
type ImpersonateRequest = validator.ImpersonateRequest

type UserResponse struct {
	*models.User
	RoleName models.RoleKind `json:"role_name,omitempty"`
}

type UserListResponse struct {
	Users []*UserResponse `json:"users"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Size  int             `json:"size"`
}

type ImpersonationDecision struct {
	ActorID  uint `json:"actor_id"`
	TargetID uint `json:"target_id"`
	Granted  bool `json:"granted"`
}

// ===== SERVICE INTERFACES =====

// RoleGraphService models the role hierarchy: rank ordering, visibility
// bounds and the parent-chain delegation walk.
type RoleGraphService interface {
	// Rank returns the role's position in the fixed total order
	// student < teaching assistant < instructor < administrator <
	// super administrator. Unrecognized kinds are data corruption.
	Rank(kind models.RoleKind) (int, error)

	// SubordinateRolesAndSelf returns every role at or below the given
	// role's rank, the role itself included.
	SubordinateRolesAndSelf(ctx context.Context, role *models.Role) ([]*models.Role, error)

	// IsAncestor reports whether candidateParent appears on role's parent
	// chain. The walk stops without a match at a nil parent or once it
	// reaches a super-administrator role.
	IsAncestor(ctx context.Context, candidateParent, role *models.Role) (bool, error)
}

// CourseMembershipService resolves course-association facts consumed by the
// authorization predicates.
type CourseMembershipService interface {
	CoursesInstructedBy(ctx context.Context, user *models.User) ([]*models.Course, error)
	CoursesAssistedBy(ctx context.Context, user *models.User) ([]*models.Course, error)
	ParticipatesIn(ctx context.Context, student *models.User, course *models.Course) (bool, error)
}

// AuthorizationService answers whether one user may act on behalf of, or is
// pedagogically responsible for, another.
type AuthorizationService interface {
	CanImpersonate(ctx context.Context, actor, target *models.User) (bool, error)
	IsInstructorFor(ctx context.Context, actor, target *models.User) (bool, error)
	IsTeachingAssistantFor(ctx context.Context, actor, target *models.User) (bool, error)

	// InstructorID returns the id of the instructor responsible for the
	// user's work: the user's own id for instructors and administrators,
	// the supervising instructor for a TA. Any other role is a
	// programming-contract violation (ErrUnsupportedRole).
	InstructorID(ctx context.Context, user *models.User) (uint, error)
}

// UserDirectoryService is the lookup/search surface over users, bounded by
// the authorization visibility rules.
type UserDirectoryService interface {
	// ResolveLogin resolves a login identifier to a user: exact email
	// first, then the portion before "@" as a login name, succeeding only
	// on an unambiguous name match. Absence is (nil, nil).
	ResolveLogin(ctx context.Context, identifier string) (*models.User, error)

	// SearchVisibleByName finds up to 10 users whose full name contains
	// the query, restricted to roles visible to the requester. At most the
	// first 20 substring matches are examined.
	SearchVisibleByName(ctx context.Context, requester *models.User, query string) ([]*models.User, error)
}

// UserService owns the user lifecycle: registration, authentication,
// profile updates and deletion.
type UserService interface {
	Register(ctx context.Context, req *CreateUserRequest) (*UserResponse, error)
	Authenticate(ctx context.Context, identifier, password string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*UserResponse, error)
	Update(ctx context.Context, id uint, req *UpdateUserRequest) (*UserResponse, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters repositories.UserFilters) (*UserListResponse, error)
}

// AuditService publishes authorization decisions to the audit stream.
type AuditService interface {
	RecordImpersonation(ctx context.Context, actor, target *models.User, granted bool) error
	RecordUserRegistered(ctx context.Context, user *models.User) error
	RecordUserDeleted(ctx context.Context, userID uint) error
}

// RosterExportService renders user rosters for administrators.
type RosterExportService interface {
	// ExportVisibleUsers builds an xlsx workbook of every user whose role
	// is visible to the requester.
	ExportVisibleUsers(ctx context.Context, requester *models.User) ([]byte, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	RoleGraph() RoleGraphService
	Membership() CourseMembershipService
	Authorization() AuthorizationService
	Directory() UserDirectoryService
	User() UserService
	Audit() AuditService
	Export() RosterExportService

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
