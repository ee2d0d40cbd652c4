package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/edusuite/school_finance_api/internal/core/ports/services"
	"github.com/edusuite/school_finance_api/internal/dto"
)

type departmentHandler struct {
	departmentSvc portssvc.DepartmentSvcFacade
}

func registerDepartmentRoutes(rg *gin.RouterGroup, departmentSvc portssvc.DepartmentSvcFacade) {
	h := &departmentHandler{departmentSvc: departmentSvc}

	departments := rg.Group("/departments")
	{
		departments.POST("", h.createDepartment)
		departments.GET("", h.listDepartments)
		departments.GET("/:id", h.getDepartment)
		departments.PUT("/:id", h.updateDepartment)
		departments.DELETE("/:id", h.deleteDepartment)
	}
}

// createDepartment godoc
// @Summary Create a department
// @Description Only SUPER_ADMIN may create departments.
// @Tags departments
// @Accept json
// @Produce json
// @Param department body dto.CreateDepartmentRequest true "Department details"
// @Success 201 {object} dto.DepartmentResponse
// @Failure 409 {object} map[string]string "Name or code already in use"
// @Security BearerAuth
// @Router /api/v1/departments [post]
func (h *departmentHandler) createDepartment(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	dept, err := h.departmentSvc.CreateDepartment(c.Request.Context(), actorID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToDepartmentResponse(dept))
}

// listDepartments godoc
// @Summary List departments
// @Tags departments
// @Produce json
// @Param include_inactive query bool false "Include deactivated departments"
// @Success 200 {array} dto.DepartmentResponse
// @Security BearerAuth
// @Router /api/v1/departments [get]
func (h *departmentHandler) listDepartments(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"

	departments, err := h.departmentSvc.ListDepartments(c.Request.Context(), includeInactive)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDepartmentResponses(departments))
}

func (h *departmentHandler) getDepartment(c *gin.Context) {
	dept, err := h.departmentSvc.GetDepartmentByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDepartmentResponse(dept))
}

// updateDepartment godoc
// @Summary Update a department
// @Tags departments
// @Accept json
// @Produce json
// @Param id path string true "Department ID"
// @Param department body dto.UpdateDepartmentRequest true "Fields to update"
// @Success 200 {object} dto.DepartmentResponse
// @Security BearerAuth
// @Router /api/v1/departments/{id} [put]
func (h *departmentHandler) updateDepartment(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	dept, err := h.departmentSvc.UpdateDepartment(c.Request.Context(), actorID, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDepartmentResponse(dept))
}

// deleteDepartment godoc
// @Summary Delete a department
// @Description Fails with 409 while ledger rows still reference the department.
// @Tags departments
// @Produce json
// @Param id path string true "Department ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 409 {object} map[string]string "Department still referenced"
// @Security BearerAuth
// @Router /api/v1/departments/{id} [delete]
func (h *departmentHandler) deleteDepartment(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.departmentSvc.DeleteDepartment(c.Request.Context(), actorID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Department deleted"})
}
