package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/identity-service/internal/models"
	"github.com/SAP-F-2025/identity-service/internal/repositories"
)

// Search bounds: the repository hands back at most searchScanLimit substring
// matches, and at most searchResultLimit of those survive visibility
// filtering. A query matching many invisible users can therefore return
// fewer results than exist.
const (
	searchScanLimit   = 20
	searchResultLimit = 10
)

type userDirectoryService struct {
	repo      repositories.Repository
	roleGraph RoleGraphService
	logger    *slog.Logger
}

func NewUserDirectoryService(repo repositories.Repository, roleGraph RoleGraphService, logger *slog.Logger) UserDirectoryService {
	return &userDirectoryService{
		repo:      repo,
		roleGraph: roleGraph,
		logger:    logger,
	}
}

// ResolveLogin maps a login identifier to a user. Exact email wins; failing
// that, the portion before "@" is tried as a login name, succeeding only when
// it matches exactly one user. Absence is not an error.
func (s *userDirectoryService) ResolveLogin(ctx context.Context, identifier string) (*models.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, nil
	}

	user, err := s.repo.User().GetByEmail(ctx, identifier)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to resolve login %q by email: %w", identifier, err)
	}

	name := identifier
	if at := strings.Index(identifier, "@"); at >= 0 {
		name = identifier[:at]
	}

	matches, err := s.repo.User().FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve login %q by name: %w", identifier, err)
	}
	if len(matches) != 1 {
		if len(matches) > 1 {
			s.logger.Warn("Ambiguous login name", "name", name, "matches", len(matches))
		}
		return nil, nil
	}

	return matches[0], nil
}

// SearchVisibleByName finds users by full-name substring, restricted to the
// roles at or below the requester's rank.
func (s *userDirectoryService) SearchVisibleByName(ctx context.Context, requester *models.User, query string) ([]*models.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	requesterRole, err := s.requesterRole(ctx, requester)
	if err != nil {
		return nil, err
	}

	visible, err := s.roleGraph.SubordinateRolesAndSelf(ctx, requesterRole)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve visible roles for user %d: %w", requester.ID, err)
	}

	visibleRoleIDs := make(map[uint]bool, len(visible))
	for _, role := range visible {
		visibleRoleIDs[role.ID] = true
	}

	candidates, err := s.repo.User().SearchByFullName(ctx, query, searchScanLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search users by name %q: %w", query, err)
	}

	results := make([]*models.User, 0, searchResultLimit)
	for _, user := range candidates {
		if !visibleRoleIDs[user.RoleID] {
			continue
		}
		results = append(results, user)
		if len(results) == searchResultLimit {
			break
		}
	}

	return results, nil
}

func (s *userDirectoryService) requesterRole(ctx context.Context, requester *models.User) (*models.Role, error) {
	if requester.Role != nil {
		return requester.Role, nil
	}

	role, err := s.repo.Role().GetByID(ctx, requester.RoleID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve role for user %d: %w", requester.ID, err)
	}
	return role, nil
}
