package repositories

import (
	"context"

	"github.com/SAP-F-2025/identity-service/internal/models"
)

// RoleRepository reads the role reference data. Roles are seeded, never
// created through this service.
type RoleRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Role, error)
	GetByName(ctx context.Context, name models.RoleKind) (*models.Role, error)
	List(ctx context.Context) ([]*models.Role, error)
}
