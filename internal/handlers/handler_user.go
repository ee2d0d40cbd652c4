package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edusuite/school_finance_api/internal/core/domain"
	portssvc "github.com/edusuite/school_finance_api/internal/core/ports/services"
	"github.com/edusuite/school_finance_api/internal/dto"
)

type userHandler struct {
	userSvc portssvc.UserSvcFacade
}

func registerUserRoutes(rg *gin.RouterGroup, userSvc portssvc.UserSvcFacade) {
	h := &userHandler{userSvc: userSvc}

	users := rg.Group("/users")
	{
		users.GET("", h.listUsers)
		users.GET("/me", h.getCurrentUser)
		users.GET("/:id", h.getUser)
		users.PUT("/:id", h.updateUser)
		users.PUT("/:id/role", h.updateUserRole)
		users.DELETE("/:id", h.deactivateUser)
	}
}

// listUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.UserResponse
// @Security BearerAuth
// @Router /api/v1/users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}

	var params dto.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	users, err := h.userSvc.ListUsers(c.Request.Context(), actorID, params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponses(users))
}

// getCurrentUser returns the profile of the authenticated user.
func (h *userHandler) getCurrentUser(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}

	user, err := h.userSvc.GetUserByID(c.Request.Context(), actorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// getUser godoc
// @Summary Get a user by ID
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /api/v1/users/{id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	user, err := h.userSvc.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// updateUser godoc
// @Summary Update a user's profile
// @Description Users may edit their own profile; SUPER_ADMIN may edit anyone.
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param user body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Security BearerAuth
// @Router /api/v1/users/{id} [put]
func (h *userHandler) updateUser(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.userSvc.UpdateUser(c.Request.Context(), actorID, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// updateUserRole godoc
// @Summary Change a user's role
// @Description Only SUPER_ADMIN may reassign roles.
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param role body dto.UpdateUserRoleRequest true "New role"
// @Success 200 {object} dto.UserResponse
// @Failure 403 {object} map[string]string "Insufficient permissions"
// @Security BearerAuth
// @Router /api/v1/users/{id}/role [put]
func (h *userHandler) updateUserRole(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.userSvc.UpdateUserRole(c.Request.Context(), actorID, c.Param("id"), domain.Role(req.Role))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// deactivateUser godoc
// @Summary Deactivate a user
// @Description Soft delete. Only SUPER_ADMIN; self-deactivation is refused.
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.MessageResponse
// @Security BearerAuth
// @Router /api/v1/users/{id} [delete]
func (h *userHandler) deactivateUser(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.userSvc.DeactivateUser(c.Request.Context(), actorID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "User deactivated"})
}
