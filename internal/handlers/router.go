package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/identity-service/internal/config"
	"github.com/SAP-F-2025/identity-service/internal/models"
	"github.com/SAP-F-2025/identity-service/internal/repositories"
	"github.com/SAP-F-2025/identity-service/internal/services"
	"github.com/SAP-F-2025/identity-service/internal/utils"
)

type HandlerManager struct {
	authHandler    *AuthHandler
	userHandler    *UserHandler
	authMiddleware *CasdoorAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	casdoorConfig config.CasdoorConfig,
	userRepo repositories.UserRepository,
) *HandlerManager {
	authMiddleware := NewCasdoorAuthMiddleware(casdoorConfig, userRepo)

	return &HandlerManager{
		authHandler: NewAuthHandler(
			serviceManager.User(),
			serviceManager.Directory(),
			serviceManager.Authorization(),
			serviceManager.Audit(),
			logger,
		),
		userHandler: NewUserHandler(
			serviceManager.User(),
			serviceManager.Directory(),
			serviceManager.Export(),
			logger,
		),
		authMiddleware: authMiddleware,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Login is the only unauthenticated API endpoint
	router.POST("/api/v1/auth/login", hm.authHandler.Login)

	v1 := router.Group("/api/v1")
	v1.Use(hm.authMiddleware.AuthMiddleware())
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/impersonate", hm.authHandler.Impersonate)
		}

		users := v1.Group("/users")
		{
			// Account management - Administrators only
			users.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdministrator), hm.userHandler.RegisterUser)
			users.DELETE("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdministrator), hm.userHandler.DeleteUser)
			users.GET("", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdministrator), hm.userHandler.ListUsers)
			users.GET("/export", hm.authMiddleware.RequireRoleMiddleware(models.RoleInstructor, models.RoleAdministrator), hm.userHandler.ExportUsers)

			// All authenticated users
			users.GET("/search", hm.userHandler.SearchVisibleUsers)
			users.GET("/:id", hm.userHandler.GetUser)
			users.PUT("/:id", hm.userHandler.UpdateUser)
			users.GET("/:id/instructor", hm.authHandler.GetResponsibleInstructor)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "identity-service",
		})
	})
}
