package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/identity-service/internal/models"
	"github.com/SAP-F-2025/identity-service/internal/repositories"
)

// ErrUnsupportedRole signals an InstructorID call for a role that has no
// responsible instructor. This is a contract violation by the caller, not a
// recoverable condition.
var ErrUnsupportedRole = errors.New("role has no responsible instructor")

type authorizationService struct {
	repo       repositories.Repository
	roleGraph  RoleGraphService
	membership CourseMembershipService
	logger     *slog.Logger
}

func NewAuthorizationService(
	repo repositories.Repository,
	roleGraph RoleGraphService,
	membership CourseMembershipService,
	logger *slog.Logger,
) AuthorizationService {
	return &authorizationService{
		repo:       repo,
		roleGraph:  roleGraph,
		membership: membership,
		logger:     logger,
	}
}

// CanImpersonate evaluates the impersonation policy. The order is
// load-bearing: an instructor or TA with no course relationship to the
// target is refused outright and never falls through to the role-chain
// check, even when their role would otherwise delegate down to the target's.
func (s *authorizationService) CanImpersonate(ctx context.Context, actor, target *models.User) (bool, error) {
	actorRole, err := s.roleOf(ctx, actor)
	if err != nil {
		return false, err
	}

	if actorRole.Name == models.RoleSuperAdministrator {
		return true, nil
	}

	instructorFor, err := s.IsInstructorFor(ctx, actor, target)
	if err != nil {
		return false, err
	}
	if instructorFor {
		return true, nil
	}
	if actorRole.Name == models.RoleInstructor {
		return false, nil
	}

	taFor, err := s.IsTeachingAssistantFor(ctx, actor, target)
	if err != nil {
		return false, err
	}
	if taFor {
		return true, nil
	}
	if actorRole.Name == models.RoleTeachingAssistant {
		return false, nil
	}

	targetRole, err := s.roleOf(ctx, target)
	if err != nil {
		return false, err
	}

	return s.roleGraph.IsAncestor(ctx, actorRole, targetRole)
}

// IsInstructorFor reports whether the actor instructs the target: a student
// target must participate in one of the actor's courses, a TA target must
// share a course with the actor.
func (s *authorizationService) IsInstructorFor(ctx context.Context, actor, target *models.User) (bool, error) {
	actorRole, err := s.roleOf(ctx, actor)
	if err != nil {
		return false, err
	}
	if actorRole.Name != models.RoleInstructor {
		return false, nil
	}

	targetRole, err := s.roleOf(ctx, target)
	if err != nil {
		return false, err
	}

	instructed, err := s.membership.CoursesInstructedBy(ctx, actor)
	if err != nil {
		return false, err
	}

	switch targetRole.Name {
	case models.RoleStudent:
		for _, course := range instructed {
			participates, err := s.membership.ParticipatesIn(ctx, target, course)
			if err != nil {
				return false, err
			}
			if participates {
				return true, nil
			}
		}
		return false, nil

	case models.RoleTeachingAssistant:
		assisted, err := s.membership.CoursesAssistedBy(ctx, target)
		if err != nil {
			return false, err
		}
		return SharedCourseExists(instructed, assisted), nil

	default:
		return false, nil
	}
}

// IsTeachingAssistantFor reports whether the actor TAs a course with an
// assignment the student target participates in.
func (s *authorizationService) IsTeachingAssistantFor(ctx context.Context, actor, target *models.User) (bool, error) {
	actorRole, err := s.roleOf(ctx, actor)
	if err != nil {
		return false, err
	}
	if actorRole.Name != models.RoleTeachingAssistant {
		return false, nil
	}

	targetRole, err := s.roleOf(ctx, target)
	if err != nil {
		return false, err
	}
	if targetRole.Name != models.RoleStudent {
		return false, nil
	}

	assisted, err := s.membership.CoursesAssistedBy(ctx, actor)
	if err != nil {
		return false, err
	}

	for _, course := range assisted {
		participates, err := s.membership.ParticipatesIn(ctx, target, course)
		if err != nil {
			return false, err
		}
		if participates {
			return true, nil
		}
	}
	return false, nil
}

func (s *authorizationService) InstructorID(ctx context.Context, user *models.User) (uint, error) {
	role, err := s.roleOf(ctx, user)
	if err != nil {
		return 0, err
	}

	switch role.Name {
	case models.RoleInstructor, models.RoleAdministrator, models.RoleSuperAdministrator:
		return user.ID, nil

	case models.RoleTeachingAssistant:
		assisted, err := s.membership.CoursesAssistedBy(ctx, user)
		if err != nil {
			return 0, err
		}
		if len(assisted) == 0 {
			return 0, fmt.Errorf("teaching assistant %d has no supervising instructor", user.ID)
		}
		return assisted[0].InstructorID, nil

	default:
		return 0, fmt.Errorf("instructor lookup for user %d with role %q: %w", user.ID, role.Name, ErrUnsupportedRole)
	}
}

// roleOf resolves the user's role, preferring the preloaded association.
func (s *authorizationService) roleOf(ctx context.Context, user *models.User) (*models.Role, error) {
	if user.Role != nil {
		return user.Role, nil
	}

	role, err := s.repo.Role().GetByID(ctx, user.RoleID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve role for user %d: %w", user.ID, err)
	}
	return role, nil
}
