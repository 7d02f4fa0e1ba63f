package repositories

import (
	"context"

	"github.com/SAP-F-2025/identity-service/internal/models"
)

// UserRepository persists user records. Lookups that can legitimately miss
// (email, name) return gorm.ErrRecordNotFound wrapped; callers that treat
// absence as a normal outcome check for it with errors.Is.
type UserRepository interface {
	// Basic read operations
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByName returns every user carrying the exact login name. The
	// directory layer resolves ambiguity; the repository does not.
	FindByName(ctx context.Context, name string) ([]*models.User, error)

	// SearchByFullName returns at most limit users whose full name contains
	// the pattern, case-insensitively, in name order.
	SearchByFullName(ctx context.Context, pattern string, limit int) ([]*models.User, error)

	// List and search operations
	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)

	// Write operations
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	// Delete removes the user and detaches (nullifies) child accounts.
	Delete(ctx context.Context, id uint) error

	// Validation and checks
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}
