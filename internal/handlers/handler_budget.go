package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/edusuite/school_finance_api/internal/core/domain"
	portssvc "github.com/edusuite/school_finance_api/internal/core/ports/services"
	"github.com/edusuite/school_finance_api/internal/dto"
	"github.com/edusuite/school_finance_api/internal/middleware"
)

type budgetHandler struct {
	budgetSvc portssvc.BudgetSvcFacade
}

func registerBudgetRoutes(rg *gin.RouterGroup, budgetSvc portssvc.BudgetSvcFacade) {
	h := &budgetHandler{budgetSvc: budgetSvc}

	budgets := rg.Group("/budgets")
	{
		budgets.POST("", h.createBudget)
		budgets.GET("", h.listBudgets)
		budgets.GET("/:id", h.getBudget)
		budgets.PUT("/:id", h.updateBudget)
		budgets.DELETE("/:id", h.deleteBudget)
		budgets.POST("/:id/approve", h.approveBudget)
		budgets.POST("/:id/reject", h.rejectBudget)
		budgets.POST("/:id/lock", h.lockBudget)
	}
}

// respondBudget resolves the consumed amount before rendering. A failed spend
// lookup degrades to zero rather than failing the whole request.
func (h *budgetHandler) respondBudget(c *gin.Context, status int, budget *domain.BudgetDetail) {
	spent, err := h.budgetSvc.SpentAmount(c.Request.Context(), budget.Budget)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to compute budget spend", "budget_id", budget.BudgetID, "error", err.Error())
		spent = decimal.Zero
	}
	c.JSON(status, dto.ToBudgetResponse(budget, spent))
}

// createBudget godoc
// @Summary Create a budget allocation
// @Description Creates a DRAFT budget for a department and financial year, optionally scoped to one month. Requires budget access.
// @Tags budgets
// @Accept json
// @Produce json
// @Param budget body dto.CreateBudgetRequest true "Budget details"
// @Success 201 {object} dto.BudgetResponse
// @Failure 409 {object} map[string]string "Duplicate budget for the period"
// @Security BearerAuth
// @Router /api/v1/budgets [post]
func (h *budgetHandler) createBudget(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	budget, err := h.budgetSvc.CreateBudget(c.Request.Context(), actorID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondBudget(c, http.StatusCreated, budget)
}

// listBudgets godoc
// @Summary List budgets
// @Tags budgets
// @Produce json
// @Param department query string false "Filter by department ID"
// @Param financial_year query string false "Financial year label, e.g. 24-25"
// @Param status query string false "Filter by status" Enums(DRAFT, PENDING, APPROVED, REJECTED, LOCKED)
// @Param month query int false "Filter by month (1-12)"
// @Success 200 {array} dto.BudgetResponse
// @Security BearerAuth
// @Router /api/v1/budgets [get]
func (h *budgetHandler) listBudgets(c *gin.Context) {
	var params dto.ListBudgetsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	budgets, err := h.budgetSvc.ListBudgets(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]dto.BudgetResponse, 0, len(budgets))
	for i := range budgets {
		spent, sErr := h.budgetSvc.SpentAmount(c.Request.Context(), budgets[i].Budget)
		if sErr != nil {
			respondError(c, sErr)
			return
		}
		responses = append(responses, dto.ToBudgetResponse(&budgets[i], spent))
	}
	c.JSON(http.StatusOK, responses)
}

func (h *budgetHandler) getBudget(c *gin.Context) {
	budget, err := h.budgetSvc.GetBudgetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondBudget(c, http.StatusOK, budget)
}

// updateBudget godoc
// @Summary Update a budget
// @Description Edits amount or notes, or submits the budget by setting status to PENDING. LOCKED budgets refuse every change.
// @Tags budgets
// @Accept json
// @Produce json
// @Param id path string true "Budget ID"
// @Param budget body dto.UpdateBudgetRequest true "Fields to update"
// @Success 200 {object} dto.BudgetResponse
// @Failure 409 {object} map[string]string "Budget is locked or transition invalid"
// @Security BearerAuth
// @Router /api/v1/budgets/{id} [put]
func (h *budgetHandler) updateBudget(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	budget, err := h.budgetSvc.UpdateBudget(c.Request.Context(), actorID, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondBudget(c, http.StatusOK, budget)
}

func (h *budgetHandler) deleteBudget(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.budgetSvc.DeleteBudget(c.Request.Context(), actorID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Budget deleted"})
}

// approveBudget godoc
// @Summary Approve a budget
// @Description Moves DRAFT or PENDING to APPROVED. Requires finance access.
// @Tags budgets
// @Produce json
// @Param id path string true "Budget ID"
// @Success 200 {object} dto.BudgetResponse
// @Failure 409 {object} map[string]string "Budget is not awaiting approval"
// @Security BearerAuth
// @Router /api/v1/budgets/{id}/approve [post]
func (h *budgetHandler) approveBudget(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}

	budget, err := h.budgetSvc.ApproveBudget(c.Request.Context(), actorID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondBudget(c, http.StatusOK, budget)
}

// rejectBudget godoc
// @Summary Reject a budget
// @Description Moves DRAFT or PENDING to REJECTED. Requires finance access.
// @Tags budgets
// @Produce json
// @Param id path string true "Budget ID"
// @Success 200 {object} dto.BudgetResponse
// @Failure 409 {object} map[string]string "Budget is not awaiting approval"
// @Security BearerAuth
// @Router /api/v1/budgets/{id}/reject [post]
func (h *budgetHandler) rejectBudget(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}

	budget, err := h.budgetSvc.RejectBudget(c.Request.Context(), actorID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondBudget(c, http.StatusOK, budget)
}

// lockBudget godoc
// @Summary Lock an approved budget
// @Description Moves APPROVED to LOCKED. Locking is irreversible and only SUPER_ADMIN may do it.
// @Tags budgets
// @Produce json
// @Param id path string true "Budget ID"
// @Success 200 {object} dto.BudgetResponse
// @Failure 403 {object} map[string]string "Insufficient permissions"
// @Failure 409 {object} map[string]string "Budget is not approved"
// @Security BearerAuth
// @Router /api/v1/budgets/{id}/lock [post]
func (h *budgetHandler) lockBudget(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}

	budget, err := h.budgetSvc.LockBudget(c.Request.Context(), actorID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondBudget(c, http.StatusOK, budget)
}
