package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/identity-service/internal/cache"
	"github.com/SAP-F-2025/identity-service/internal/models"
	"github.com/SAP-F-2025/identity-service/internal/repositories"
)

type UserPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewUserPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.UserRepository {
	return &UserPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (u *UserPostgreSQL) GetByID(ctx context.Context, id uint) (*models.User, error) {
	cacheKey := fmt.Sprintf("id:%d", id)
	var user models.User

	err := u.cacheManager.User.CacheOrExecute(ctx, cacheKey, &user, cache.UserCacheConfig.TTL, func() (interface{}, error) {
		var dbUser models.User
		if err := u.db.WithContext(ctx).Preload("Role").Preload("Role.Parent").First(&dbUser, id).Error; err != nil {
			return nil, fmt.Errorf("failed to get user: %w", err)
		}
		return &dbUser, nil
	})

	return &user, err
}

func (u *UserPostgreSQL) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).
		Preload("Role").
		Where("email = ?", email).
		First(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (u *UserPostgreSQL) FindByName(ctx context.Context, name string) ([]*models.User, error) {
	var users []*models.User
	if err := u.db.WithContext(ctx).
		Preload("Role").
		Where("name = ?", name).
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to find users by name: %w", err)
	}
	return users, nil
}

func (u *UserPostgreSQL) SearchByFullName(ctx context.Context, pattern string, limit int) ([]*models.User, error) {
	var users []*models.User
	if err := u.db.WithContext(ctx).
		Preload("Role").
		Where("LOWER(full_name) LIKE ?", "%"+strings.ToLower(pattern)+"%").
		Order("name ASC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to search users by full name: %w", err)
	}
	return users, nil
}

func (u *UserPostgreSQL) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	var users []*models.User
	var total int64

	// apply filters first
	query := u.db.WithContext(ctx).Model(&models.User{})
	query = u.applyFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// then apply pagination and sorting
	query = u.applyPaginationAndSort(query, filters)

	if err := query.Preload("Role").Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (u *UserPostgreSQL) Create(ctx context.Context, user *models.User) error {
	if err := u.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (u *UserPostgreSQL) Update(ctx context.Context, user *models.User) error {
	if err := u.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	cache.InvalidateUserCache(ctx, u.cacheManager, user.ID, user.Email, user.Name)
	return nil
}

// Delete removes the user and nullifies the parent reference of any child
// accounts in the same transaction.
func (u *UserPostgreSQL) Delete(ctx context.Context, id uint) error {
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).
			Where("parent_id = ?", id).
			Update("parent_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach child users: %w", err)
		}
		if err := tx.Delete(&models.User{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	cache.SafeDelete(ctx, u.cacheManager.User, fmt.Sprintf("id:%d", id))
	return nil
}

func (u *UserPostgreSQL) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := u.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check user email: %w", err)
	}
	return count > 0, nil
}

func (u *UserPostgreSQL) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := u.db.WithContext(ctx).
		Model(&models.User{}).
		Where("name = ?", name).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check user name: %w", err)
	}
	return count > 0, nil
}

// ===== HELPER METHODS =====

func (u *UserPostgreSQL) applyFilters(query *gorm.DB, filters repositories.UserFilters) *gorm.DB {
	if filters.Query != "" {
		pattern := "%" + strings.ToLower(filters.Query) + "%"
		query = query.Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ? OR name LIKE ?", pattern, pattern, pattern)
	}
	if filters.RoleID != nil {
		query = query.Where("role_id = ?", *filters.RoleID)
	}
	if len(filters.RoleIDs) > 0 {
		query = query.Where("role_id IN ?", filters.RoleIDs)
	}
	if filters.InstitutionID != nil {
		query = query.Where("institution_id = ?", *filters.InstitutionID)
	}
	if filters.ParentID != nil {
		query = query.Where("parent_id = ?", *filters.ParentID)
	}
	return query
}

func (u *UserPostgreSQL) applyPaginationAndSort(query *gorm.DB, filters repositories.UserFilters) *gorm.DB {
	switch filters.SortBy {
	case "full_name":
		query = query.Order("full_name " + sortOrder(filters.SortOrder))
	case "created_at":
		query = query.Order("created_at " + sortOrder(filters.SortOrder))
	default:
		query = query.Order("name " + sortOrder(filters.SortOrder))
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}
	return query
}

func sortOrder(order string) string {
	if strings.EqualFold(order, "desc") {
		return "DESC"
	}
	return "ASC"
}
