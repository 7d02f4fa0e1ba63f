package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/identity-service/internal/repositories"
	"github.com/SAP-F-2025/identity-service/internal/services"
	"github.com/SAP-F-2025/identity-service/internal/utils"
)

type UserHandler struct {
	BaseHandler
	userService services.UserService
	directory   services.UserDirectoryService
	export      services.RosterExportService
}

func NewUserHandler(
	userService services.UserService,
	directory services.UserDirectoryService,
	export services.RosterExportService,
	logger utils.Logger,
) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		userService: userService,
		directory:   directory,
		export:      export,
	}
}

// RegisterUser creates a new user account
// @Summary Register user
// @Description Create a user with login name, email, password and role
// @Tags users
// @Accept json
// @Produce json
// @Param user body services.CreateUserRequest true "User data"
// @Success 201 {object} SuccessResponse{data=services.UserResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /users [post]
func (h *UserHandler) RegisterUser(c *gin.Context) {
	var req services.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Registering user", "name", req.Name)

	user, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err, "Failed to register user")
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{Data: user})
}

// GetUser retrieves a user by ID
// @Summary Get user by ID
// @Tags users
// @Produce json
// @Param id path uint true "User ID"
// @Success 200 {object} SuccessResponse{data=services.UserResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "Failed to get user")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Data: user})
}

// UpdateUser updates profile fields and preferences
// @Summary Update user
// @Tags users
// @Accept json
// @Produce json
// @Param id path uint true "User ID"
// @Param user body services.UpdateUserRequest true "Fields to update"
// @Success 200 {object} SuccessResponse{data=services.UserResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	user, err := h.userService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err, "Failed to update user")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Data: user})
}

// DeleteUser removes a user; child accounts are detached, not removed
// @Summary Delete user
// @Tags users
// @Produce json
// @Param id path uint true "User ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	h.LogRequest(c, "Deleting user", "user_id", id)

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err, "Failed to delete user")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "user deleted"})
}

// ListUsers lists users with optional filtering
// @Summary List users
// @Tags users
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 20, max: 100)"
// @Param q query string false "Search query (name or email)"
// @Param role_id query int false "Filter by role id"
// @Success 200 {object} services.UserListResponse
// @Failure 401 {object} ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	filters := h.parseUserFilters(c)

	response, err := h.userService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err, "Failed to list users")
		return
	}

	c.JSON(http.StatusOK, response)
}

// SearchVisibleUsers searches users by full name within the caller's
// visibility bound
// @Summary Search visible users
// @Description Find up to 10 users whose full name contains the query,
// restricted to roles at or below the caller's
// @Tags users
// @Produce json
// @Param q query string true "Name fragment"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /users/search [get]
func (h *UserHandler) SearchVisibleUsers(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "search query parameter 'q' is required",
		})
		return
	}

	requester, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "user not authenticated",
		})
		return
	}

	h.LogRequest(c, "Searching users", "query", query, "requester_id", requester.ID)

	users, err := h.directory.SearchVisibleByName(c.Request.Context(), requester, query)
	if err != nil {
		h.handleServiceError(c, err, "Failed to search users")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Data: gin.H{
		"users": users,
		"count": len(users),
	}})
}

// ExportUsers streams an xlsx roster of all users visible to the caller
// @Summary Export user roster
// @Tags users
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Failure 401 {object} ErrorResponse
// @Router /users/export [get]
func (h *UserHandler) ExportUsers(c *gin.Context) {
	requester, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "user not authenticated",
		})
		return
	}

	h.LogRequest(c, "Exporting user roster", "requester_id", requester.ID)

	workbook, err := h.export.ExportVisibleUsers(c.Request.Context(), requester)
	if err != nil {
		h.handleServiceError(c, err, "Failed to export users")
		return
	}

	filename := fmt.Sprintf("users-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}

// ===== HELPER METHODS =====

func (h *UserHandler) parseUserFilters(c *gin.Context) repositories.UserFilters {
	page := 1
	size := 20

	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}

	if sizeStr := c.Query("size"); sizeStr != "" {
		if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 && s <= 100 {
			size = s
		}
	}

	filters := repositories.UserFilters{
		Limit:     size,
		Offset:    (page - 1) * size,
		Query:     c.Query("q"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if roleIDStr := c.Query("role_id"); roleIDStr != "" {
		if roleID, err := strconv.ParseUint(roleIDStr, 10, 32); err == nil {
			id := uint(roleID)
			filters.RoleID = &id
		}
	}

	return filters
}
