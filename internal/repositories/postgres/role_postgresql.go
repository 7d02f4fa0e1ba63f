package postgres

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/identity-service/internal/cache"
	"github.com/SAP-F-2025/identity-service/internal/models"
	"github.com/SAP-F-2025/identity-service/internal/repositories"
)

type RolePostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewRolePostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.RoleRepository {
	return &RolePostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (r *RolePostgreSQL) GetByID(ctx context.Context, id uint) (*models.Role, error) {
	cacheKey := fmt.Sprintf("id:%d", id)
	var role models.Role

	err := r.cacheManager.Role.CacheOrExecute(ctx, cacheKey, &role, cache.RoleCacheConfig.TTL, func() (interface{}, error) {
		var dbRole models.Role
		if err := r.db.WithContext(ctx).Preload("Parent").First(&dbRole, id).Error; err != nil {
			return nil, fmt.Errorf("failed to get role: %w", err)
		}
		return &dbRole, nil
	})

	return &role, err
}

func (r *RolePostgreSQL) GetByName(ctx context.Context, name models.RoleKind) (*models.Role, error) {
	cacheKey := fmt.Sprintf("name:%s", name)
	var role models.Role

	err := r.cacheManager.Role.CacheOrExecute(ctx, cacheKey, &role, cache.RoleCacheConfig.TTL, func() (interface{}, error) {
		var dbRole models.Role
		if err := r.db.WithContext(ctx).Preload("Parent").Where("name = ?", name).First(&dbRole).Error; err != nil {
			return nil, fmt.Errorf("failed to get role by name: %w", err)
		}
		return &dbRole, nil
	})

	return &role, err
}

func (r *RolePostgreSQL) List(ctx context.Context) ([]*models.Role, error) {
	var roles []*models.Role

	err := r.cacheManager.Role.CacheOrExecute(ctx, "list", &roles, cache.RoleCacheConfig.TTL, func() (interface{}, error) {
		var dbRoles []*models.Role
		if err := r.db.WithContext(ctx).Order("id ASC").Find(&dbRoles).Error; err != nil {
			return nil, fmt.Errorf("failed to list roles: %w", err)
		}
		return dbRoles, nil
	})

	return roles, err
}
