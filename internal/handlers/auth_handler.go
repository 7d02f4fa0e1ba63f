package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/identity-service/internal/services"
	"github.com/SAP-F-2025/identity-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	userService   services.UserService
	directory     services.UserDirectoryService
	authorization services.AuthorizationService
	audit         services.AuditService
}

func NewAuthHandler(
	userService services.UserService,
	directory services.UserDirectoryService,
	authorization services.AuthorizationService,
	audit services.AuditService,
	logger utils.Logger,
) *AuthHandler {
	return &AuthHandler{
		BaseHandler:   NewBaseHandler(logger),
		userService:   userService,
		directory:     directory,
		authorization: authorization,
		audit:         audit,
	}
}

// Login verifies credentials against the directory
// @Summary Log in
// @Description Verify an email-or-login-name identifier plus password
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body services.LoginRequest true "Login credentials"
// @Success 200 {object} SuccessResponse{data=services.UserResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	user, err := h.userService.Authenticate(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		h.handleServiceError(c, err, "Failed to authenticate")
		return
	}

	h.LogRequest(c, "User logged in", "user_id", user.ID)

	resp := &services.UserResponse{User: user}
	if user.Role != nil {
		resp.RoleName = user.Role.Name
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: resp})
}

// Impersonate asks whether the caller may act as the target user
// @Summary Request impersonation
// @Description Evaluate whether the authenticated user may act as the target
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.ImpersonateRequest true "Impersonation target"
// @Success 200 {object} SuccessResponse{data=services.ImpersonationDecision}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /auth/impersonate [post]
func (h *AuthHandler) Impersonate(c *gin.Context) {
	actor, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "user not authenticated",
		})
		return
	}

	var req services.ImpersonateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	targetResp, err := h.userService.GetByID(c.Request.Context(), req.TargetID)
	if err != nil {
		h.handleServiceError(c, err, "Failed to load impersonation target")
		return
	}
	target := targetResp.User

	granted, err := h.authorization.CanImpersonate(c.Request.Context(), actor, target)
	if err != nil {
		h.handleServiceError(c, err, "Failed to evaluate impersonation")
		return
	}

	if err := h.audit.RecordImpersonation(c.Request.Context(), actor, target, granted); err != nil {
		h.LogError(c, err, "Failed to record impersonation decision")
	}

	decision := services.ImpersonationDecision{
		ActorID:  actor.ID,
		TargetID: target.ID,
		Granted:  granted,
	}

	if !granted {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "forbidden",
			Message: "impersonation not permitted",
			Details: decision,
		})
		return
	}

	h.LogRequest(c, "Impersonation granted", "actor_id", actor.ID, "target_id", target.ID)
	c.JSON(http.StatusOK, SuccessResponse{Data: decision})
}

// GetResponsibleInstructor resolves the instructor responsible for a user
// @Summary Responsible instructor
// @Description Get the id of the instructor responsible for the user's work
// @Tags auth
// @Produce json
// @Param id path uint true "User ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /users/{id}/instructor [get]
func (h *AuthHandler) GetResponsibleInstructor(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	userResp, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "Failed to load user")
		return
	}

	instructorID, err := h.authorization.InstructorID(c.Request.Context(), userResp.User)
	if err != nil {
		h.handleServiceError(c, err, "Failed to resolve responsible instructor")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Data: gin.H{
		"user_id":       id,
		"instructor_id": instructorID,
	}})
}
