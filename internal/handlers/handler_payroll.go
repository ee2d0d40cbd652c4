package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/edusuite/school_finance_api/internal/core/ports/services"
	"github.com/edusuite/school_finance_api/internal/dto"
)

type payrollHandler struct {
	payrollSvc portssvc.PayrollSvcFacade
}

func registerPayrollRoutes(rg *gin.RouterGroup, payrollSvc portssvc.PayrollSvcFacade) {
	h := &payrollHandler{payrollSvc: payrollSvc}

	employees := rg.Group("/employees")
	{
		employees.POST("", h.createEmployee)
		employees.GET("", h.listEmployees)
		employees.GET("/:id", h.getEmployee)
		employees.PUT("/:id", h.updateEmployee)
	}

	salaries := rg.Group("/salaries")
	{
		salaries.POST("", h.createSalary)
		salaries.GET("", h.listSalaries)
		salaries.GET("/:id", h.getSalary)
		salaries.PUT("/:id", h.updateSalary)
		salaries.POST("/:id/mark-paid", h.markSalaryPaid)
		salaries.POST("/:id/cancel", h.cancelSalary)
	}
}

// createEmployee godoc
// @Summary Create an employee
// @Description Requires finance access.
// @Tags payroll
// @Accept json
// @Produce json
// @Param employee body dto.CreateEmployeeRequest true "Employee details"
// @Success 201 {object} dto.EmployeeResponse
// @Failure 409 {object} map[string]string "Employee code or email already in use"
// @Security BearerAuth
// @Router /api/v1/employees [post]
func (h *payrollHandler) createEmployee(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	employee, err := h.payrollSvc.CreateEmployee(c.Request.Context(), actorID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToEmployeeResponse(employee))
}

// listEmployees godoc
// @Summary List employees
// @Tags payroll
// @Produce json
// @Param department query string false "Filter by department ID"
// @Param role query string false "Filter by staff role"
// @Param active_only query bool false "Only active employees"
// @Success 200 {array} dto.EmployeeResponse
// @Security BearerAuth
// @Router /api/v1/employees [get]
func (h *payrollHandler) listEmployees(c *gin.Context) {
	var params dto.ListEmployeesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	employees, err := h.payrollSvc.ListEmployees(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEmployeeResponses(employees))
}

func (h *payrollHandler) getEmployee(c *gin.Context) {
	employee, err := h.payrollSvc.GetEmployeeByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

func (h *payrollHandler) updateEmployee(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	employee, err := h.payrollSvc.UpdateEmployee(c.Request.Context(), actorID, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// createSalary godoc
// @Summary Record a monthly salary
// @Description One record per employee per month and year. The net amount is always recomputed from base plus allowances minus deductions.
// @Tags payroll
// @Accept json
// @Produce json
// @Param salary body dto.CreateSalaryRequest true "Salary details"
// @Success 201 {object} dto.SalaryResponse
// @Failure 409 {object} map[string]string "Salary already recorded for this month"
// @Security BearerAuth
// @Router /api/v1/salaries [post]
func (h *payrollHandler) createSalary(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreateSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	salary, err := h.payrollSvc.CreateSalary(c.Request.Context(), actorID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToSalaryResponse(salary))
}

// listSalaries godoc
// @Summary List salary records
// @Tags payroll
// @Produce json
// @Param employee query string false "Filter by employee ID"
// @Param month query int false "Filter by month (1-12)"
// @Param year query int false "Filter by year"
// @Param status query string false "Filter by status" Enums(PENDING, PAID, CANCELLED)
// @Success 200 {array} dto.SalaryResponse
// @Security BearerAuth
// @Router /api/v1/salaries [get]
func (h *payrollHandler) listSalaries(c *gin.Context) {
	var params dto.ListSalariesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	salaries, err := h.payrollSvc.ListSalaries(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSalaryResponses(salaries))
}

func (h *payrollHandler) getSalary(c *gin.Context) {
	salary, err := h.payrollSvc.GetSalaryByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSalaryResponse(salary))
}

func (h *payrollHandler) updateSalary(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	salary, err := h.payrollSvc.UpdateSalary(c.Request.Context(), actorID, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSalaryResponse(salary))
}

// markSalaryPaid godoc
// @Summary Mark a salary as paid
// @Description Moves PENDING to PAID and records payment date, mode and reference.
// @Tags payroll
// @Accept json
// @Produce json
// @Param id path string true "Salary ID"
// @Param payment body dto.MarkSalaryPaidRequest true "Payment details"
// @Success 200 {object} dto.SalaryResponse
// @Failure 409 {object} map[string]string "Salary is not pending"
// @Security BearerAuth
// @Router /api/v1/salaries/{id}/mark-paid [post]
func (h *payrollHandler) markSalaryPaid(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.MarkSalaryPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	salary, err := h.payrollSvc.MarkSalaryPaid(c.Request.Context(), actorID, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSalaryResponse(salary))
}

// cancelSalary godoc
// @Summary Cancel a pending salary
// @Description Moves PENDING to CANCELLED.
// @Tags payroll
// @Produce json
// @Param id path string true "Salary ID"
// @Success 200 {object} dto.SalaryResponse
// @Failure 409 {object} map[string]string "Salary is not pending"
// @Security BearerAuth
// @Router /api/v1/salaries/{id}/cancel [post]
func (h *payrollHandler) cancelSalary(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}

	salary, err := h.payrollSvc.CancelSalary(c.Request.Context(), actorID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSalaryResponse(salary))
}
