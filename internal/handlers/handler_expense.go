package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/edusuite/school_finance_api/internal/core/ports/services"
	"github.com/edusuite/school_finance_api/internal/dto"
)

type expenseHandler struct {
	expenseSvc portssvc.ExpenseSvcFacade
}

func registerExpenseRoutes(rg *gin.RouterGroup, expenseSvc portssvc.ExpenseSvcFacade) {
	h := &expenseHandler{expenseSvc: expenseSvc}

	categories := rg.Group("/expense-categories")
	{
		categories.POST("", h.createExpenseCategory)
		categories.GET("", h.listExpenseCategories)
		categories.PUT("/:id", h.updateExpenseCategory)
		categories.DELETE("/:id", h.deleteExpenseCategory)
	}

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.createExpense)
		expenses.GET("", h.listExpenses)
		expenses.GET("/:id", h.getExpense)
		expenses.PUT("/:id", h.updateExpense)
		expenses.POST("/:id/approve", h.approveExpense)
		expenses.POST("/:id/reject", h.rejectExpense)
		expenses.POST("/:id/mark-paid", h.markExpensePaid)
	}
}

// createExpenseCategory godoc
// @Summary Create an expense category
// @Tags expenses
// @Accept json
// @Produce json
// @Param category body dto.CreateExpenseCategoryRequest true "Category details"
// @Success 201 {object} dto.ExpenseCategoryResponse
// @Security BearerAuth
// @Router /api/v1/expense-categories [post]
func (h *expenseHandler) createExpenseCategory(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreateExpenseCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	category, err := h.expenseSvc.CreateExpenseCategory(c.Request.Context(), actorID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToExpenseCategoryResponse(category))
}

func (h *expenseHandler) listExpenseCategories(c *gin.Context) {
	categories, err := h.expenseSvc.ListExpenseCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseCategoryResponses(categories))
}

func (h *expenseHandler) updateExpenseCategory(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateExpenseCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	category, err := h.expenseSvc.UpdateExpenseCategory(c.Request.Context(), actorID, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseCategoryResponse(category))
}

func (h *expenseHandler) deleteExpenseCategory(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.expenseSvc.DeleteExpenseCategory(c.Request.Context(), actorID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Expense category deleted"})
}

// createExpense godoc
// @Summary Submit an expense request
// @Description Any authenticated user may submit; the expense starts in PENDING.
// @Tags expenses
// @Accept json
// @Produce json
// @Param expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.ExpenseResponse
// @Security BearerAuth
// @Router /api/v1/expenses [post]
func (h *expenseHandler) createExpense(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	expense, err := h.expenseSvc.CreateExpense(c.Request.Context(), actorID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

// listExpenses godoc
// @Summary List expenses
// @Tags expenses
// @Produce json
// @Param category query string false "Filter by category ID"
// @Param department query string false "Filter by department ID"
// @Param status query string false "Filter by status" Enums(PENDING, APPROVED, PAID, REJECTED)
// @Param start_date query string false "Inclusive start date (YYYY-MM-DD)"
// @Param end_date query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {array} dto.ExpenseResponse
// @Security BearerAuth
// @Router /api/v1/expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	var params dto.ListExpensesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	expenses, err := h.expenseSvc.ListExpenses(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponses(expenses))
}

func (h *expenseHandler) getExpense(c *gin.Context) {
	expense, err := h.expenseSvc.GetExpenseByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

func (h *expenseHandler) updateExpense(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	expense, err := h.expenseSvc.UpdateExpense(c.Request.Context(), actorID, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// approveExpense godoc
// @Summary Approve a pending expense
// @Description Moves PENDING to APPROVED. Requires finance access.
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 409 {object} map[string]string "Expense is not pending"
// @Security BearerAuth
// @Router /api/v1/expenses/{id}/approve [post]
func (h *expenseHandler) approveExpense(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}

	expense, err := h.expenseSvc.ApproveExpense(c.Request.Context(), actorID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// rejectExpense godoc
// @Summary Reject a pending expense
// @Description Moves PENDING to REJECTED. Requires finance access.
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 409 {object} map[string]string "Expense is not pending"
// @Security BearerAuth
// @Router /api/v1/expenses/{id}/reject [post]
func (h *expenseHandler) rejectExpense(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}

	expense, err := h.expenseSvc.RejectExpense(c.Request.Context(), actorID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// markExpensePaid godoc
// @Summary Mark an approved expense as paid
// @Description Moves APPROVED to PAID. Requires finance access.
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 409 {object} map[string]string "Expense is not approved"
// @Security BearerAuth
// @Router /api/v1/expenses/{id}/mark-paid [post]
func (h *expenseHandler) markExpensePaid(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}

	expense, err := h.expenseSvc.MarkExpensePaid(c.Request.Context(), actorID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}
