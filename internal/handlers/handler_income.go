package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/edusuite/school_finance_api/internal/core/ports/services"
	"github.com/edusuite/school_finance_api/internal/dto"
)

type incomeHandler struct {
	incomeSvc portssvc.IncomeSvcFacade
}

func registerIncomeRoutes(rg *gin.RouterGroup, incomeSvc portssvc.IncomeSvcFacade) {
	h := &incomeHandler{incomeSvc: incomeSvc}

	sources := rg.Group("/income-sources")
	{
		sources.POST("", h.createIncomeSource)
		sources.GET("", h.listIncomeSources)
		sources.PUT("/:id", h.updateIncomeSource)
	}

	incomes := rg.Group("/incomes")
	{
		incomes.POST("", h.recordIncome)
		incomes.GET("", h.listIncomes)
		incomes.GET("/:id", h.getIncome)
		incomes.PUT("/:id", h.updateIncome)
		incomes.DELETE("/:id", h.deleteIncome)
	}
}

// createIncomeSource godoc
// @Summary Create an income source
// @Tags incomes
// @Accept json
// @Produce json
// @Param source body dto.CreateIncomeSourceRequest true "Source details"
// @Success 201 {object} dto.IncomeSourceResponse
// @Failure 409 {object} map[string]string "Name or code already in use"
// @Security BearerAuth
// @Router /api/v1/income-sources [post]
func (h *incomeHandler) createIncomeSource(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreateIncomeSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	source, err := h.incomeSvc.CreateIncomeSource(c.Request.Context(), actorID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToIncomeSourceResponse(source))
}

func (h *incomeHandler) listIncomeSources(c *gin.Context) {
	sources, err := h.incomeSvc.ListIncomeSources(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToIncomeSourceResponses(sources))
}

func (h *incomeHandler) updateIncomeSource(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateIncomeSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	source, err := h.incomeSvc.UpdateIncomeSource(c.Request.Context(), actorID, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToIncomeSourceResponse(source))
}

// recordIncome godoc
// @Summary Record an income entry
// @Tags incomes
// @Accept json
// @Produce json
// @Param income body dto.CreateIncomeRequest true "Income details"
// @Success 201 {object} dto.IncomeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /api/v1/incomes [post]
func (h *incomeHandler) recordIncome(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	income, err := h.incomeSvc.RecordIncome(c.Request.Context(), actorID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToIncomeResponse(income))
}

// listIncomes godoc
// @Summary List income entries
// @Tags incomes
// @Produce json
// @Param income_source query string false "Filter by source ID"
// @Param department query string false "Filter by department ID"
// @Param start_date query string false "Inclusive start date (YYYY-MM-DD)"
// @Param end_date query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {array} dto.IncomeResponse
// @Security BearerAuth
// @Router /api/v1/incomes [get]
func (h *incomeHandler) listIncomes(c *gin.Context) {
	var params dto.ListIncomesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	incomes, err := h.incomeSvc.ListIncomes(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToIncomeResponses(incomes))
}

func (h *incomeHandler) getIncome(c *gin.Context) {
	income, err := h.incomeSvc.GetIncomeByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToIncomeResponse(income))
}

func (h *incomeHandler) updateIncome(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	income, err := h.incomeSvc.UpdateIncome(c.Request.Context(), actorID, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToIncomeResponse(income))
}

// deleteIncome godoc
// @Summary Delete an income entry
// @Description Requires finance access.
// @Tags incomes
// @Produce json
// @Param id path string true "Income ID"
// @Success 200 {object} dto.MessageResponse
// @Security BearerAuth
// @Router /api/v1/incomes/{id} [delete]
func (h *incomeHandler) deleteIncome(c *gin.Context) {
	actorID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.incomeSvc.DeleteIncome(c.Request.Context(), actorID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Income deleted"})
}
