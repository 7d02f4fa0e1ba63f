package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/identity-service/internal/models"
	"github.com/SAP-F-2025/identity-service/internal/repositories"
)

// roleRanks is the fixed total order between role kinds. Ranks are derived
// from the kind, never stored, so the ordering cannot drift in the database.
var roleRanks = map[models.RoleKind]int{
	models.RoleStudent:            1,
	models.RoleTeachingAssistant:  2,
	models.RoleInstructor:         3,
	models.RoleAdministrator:      4,
	models.RoleSuperAdministrator: 5,
}

// maxParentChainDepth bounds the delegation walk. The chain is acyclic by
// construction; the bound turns corrupted data into a terminating miss
// instead of an infinite loop.
const maxParentChainDepth = 64

type roleGraphService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewRoleGraphService(repo repositories.Repository, logger *slog.Logger) RoleGraphService {
	return &roleGraphService{
		repo:   repo,
		logger: logger,
	}
}

func (s *roleGraphService) Rank(kind models.RoleKind) (int, error) {
	rank, ok := roleRanks[kind]
	if !ok {
		return 0, fmt.Errorf("role kind %q has no rank: data corruption", kind)
	}
	return rank, nil
}

func (s *roleGraphService) SubordinateRolesAndSelf(ctx context.Context, role *models.Role) ([]*models.Role, error) {
	ceiling, err := s.Rank(role.Name)
	if err != nil {
		return nil, err
	}

	all, err := s.repo.Role().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}

	var subordinates []*models.Role
	for _, r := range all {
		rank, err := s.Rank(r.Name)
		if err != nil {
			return nil, err
		}
		if rank <= ceiling {
			subordinates = append(subordinates, r)
		}
	}

	return subordinates, nil
}

// IsAncestor walks role's parent chain upward looking for candidateParent.
// A match is checked before the super-administrator boundary, so delegation
// from a super-administrator's own role is still visible one hop down; past
// that the chain is not traversed.
func (s *roleGraphService) IsAncestor(ctx context.Context, candidateParent, role *models.Role) (bool, error) {
	if candidateParent == nil || role == nil {
		return false, nil
	}

	visited := map[uint]bool{role.ID: true}
	current := role

	for depth := 0; depth < maxParentChainDepth; depth++ {
		parent, err := s.parentOf(ctx, current)
		if err != nil {
			return false, err
		}
		if parent == nil {
			return false, nil
		}
		if parent.ID == candidateParent.ID {
			return true, nil
		}
		if parent.Name == models.RoleSuperAdministrator {
			// Authority does not traverse past the top of the hierarchy.
			return false, nil
		}
		if visited[parent.ID] {
			s.logger.Error("Role parent chain contains a cycle", "role_id", parent.ID)
			return false, fmt.Errorf("role parent chain cycle at role %d: data corruption", parent.ID)
		}
		visited[parent.ID] = true
		current = parent
	}

	return false, fmt.Errorf("role parent chain exceeds depth %d: data corruption", maxParentChainDepth)
}

func (s *roleGraphService) parentOf(ctx context.Context, role *models.Role) (*models.Role, error) {
	if role.ParentID == nil {
		return nil, nil
	}
	if role.Parent != nil {
		return role.Parent, nil
	}

	parent, err := s.repo.Role().GetByID(ctx, *role.ParentID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve parent role %d: %w", *role.ParentID, err)
	}
	return parent, nil
}
