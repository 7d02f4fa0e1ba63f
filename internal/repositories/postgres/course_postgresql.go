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

type CoursePostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewCoursePostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.CourseRepository {
	return &CoursePostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (c *CoursePostgreSQL) GetByInstructor(ctx context.Context, instructorID uint) ([]*models.Course, error) {
	cacheKey := fmt.Sprintf("user:%d:instructed", instructorID)
	var courses []*models.Course

	err := c.cacheManager.Membership.CacheOrExecute(ctx, cacheKey, &courses, cache.MembershipCacheConfig.TTL, func() (interface{}, error) {
		var dbCourses []*models.Course
		if err := c.db.WithContext(ctx).
			Where("instructor_id = ?", instructorID).
			Find(&dbCourses).Error; err != nil {
			return nil, fmt.Errorf("failed to get courses by instructor: %w", err)
		}
		return dbCourses, nil
	})

	return courses, err
}

func (c *CoursePostgreSQL) GetByTeachingAssistant(ctx context.Context, taID uint) ([]*models.Course, error) {
	cacheKey := fmt.Sprintf("user:%d:assisted", taID)
	var courses []*models.Course

	err := c.cacheManager.Membership.CacheOrExecute(ctx, cacheKey, &courses, cache.MembershipCacheConfig.TTL, func() (interface{}, error) {
		var dbCourses []*models.Course
		if err := c.db.WithContext(ctx).
			Joins("JOIN ta_mappings ON ta_mappings.course_id = courses.id").
			Where("ta_mappings.ta_id = ?", taID).
			Find(&dbCourses).Error; err != nil {
			return nil, fmt.Errorf("failed to get courses by teaching assistant: %w", err)
		}
		return dbCourses, nil
	})

	return courses, err
}

func (c *CoursePostgreSQL) HasParticipant(ctx context.Context, courseID, studentID uint) (bool, error) {
	var count int64
	if err := c.db.WithContext(ctx).
		Model(&models.AssignmentParticipant{}).
		Joins("JOIN assignments ON assignments.id = assignment_participants.assignment_id").
		Where("assignments.course_id = ? AND assignment_participants.user_id = ?", courseID, studentID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check course participation: %w", err)
	}
	return count > 0, nil
}
