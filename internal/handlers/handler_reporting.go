package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/edusuite/school_finance_api/internal/core/ports/services"
	"github.com/edusuite/school_finance_api/internal/dto"
)

type reportingHandler struct {
	reportingSvc portssvc.ReportingSvcFacade
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingSvc portssvc.ReportingSvcFacade) {
	h := &reportingHandler{reportingSvc: reportingSvc}

	reports := rg.Group("/reports")
	{
		reports.GET("/monthly-expenses", h.monthlyExpenses)
		reports.GET("/budget-vs-actual", h.budgetVsActual)
		reports.GET("/income-vs-expense", h.incomeVsExpense)
		reports.GET("/department-summary", h.departmentSummary)
		reports.GET("/audit-download", h.auditDownload)
	}
}

// monthlyExpenses godoc
// @Summary Monthly expense report
// @Description Paid expense totals for a calendar month, broken down by department and category.
// @Tags reports
// @Produce json
// @Param month query int true "Month (1-12)"
// @Param year query int true "Year"
// @Success 200 {object} dto.MonthlyExpenseReport
// @Failure 400 {object} map[string]string "Missing month or year"
// @Security BearerAuth
// @Router /api/v1/reports/monthly-expenses [get]
func (h *reportingHandler) monthlyExpenses(c *gin.Context) {
	month, _ := strconv.Atoi(c.Query("month"))
	year, _ := strconv.Atoi(c.Query("year"))

	report, err := h.reportingSvc.MonthlyExpenseReport(c.Request.Context(), month, year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// budgetVsActual godoc
// @Summary Budget versus actual spend
// @Description Compares allocated budgets against paid expenses for a financial year. Only APPROVED and LOCKED budgets are included.
// @Tags reports
// @Produce json
// @Param financial_year query string true "Financial year label, e.g. 24-25"
// @Param department query string false "Restrict to one department"
// @Success 200 {object} dto.BudgetVsActualReport
// @Failure 400 {object} map[string]string "Missing financial year"
// @Security BearerAuth
// @Router /api/v1/reports/budget-vs-actual [get]
func (h *reportingHandler) budgetVsActual(c *gin.Context) {
	financialYear := c.Query("financial_year")

	var departmentID *string
	if dept := c.Query("department"); dept != "" {
		departmentID = &dept
	}

	report, err := h.reportingSvc.BudgetVsActualReport(c.Request.Context(), financialYear, departmentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// incomeVsExpense godoc
// @Summary Income versus expense summary
// @Description Totals, balance and per-source/per-category breakdowns over an inclusive date range.
// @Tags reports
// @Produce json
// @Param start_date query string true "Inclusive start date (YYYY-MM-DD)"
// @Param end_date query string true "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {object} dto.IncomeVsExpenseSummary
// @Failure 400 {object} map[string]string "Missing or malformed dates"
// @Security BearerAuth
// @Router /api/v1/reports/income-vs-expense [get]
func (h *reportingHandler) incomeVsExpense(c *gin.Context) {
	start, end, ok := bindDateRange(c)
	if !ok {
		return
	}

	report, err := h.reportingSvc.IncomeVsExpenseSummary(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// departmentSummary godoc
// @Summary Per-department financial summary
// @Tags reports
// @Produce json
// @Param start_date query string true "Inclusive start date (YYYY-MM-DD)"
// @Param end_date query string true "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {object} dto.DepartmentSummaryReport
// @Security BearerAuth
// @Router /api/v1/reports/department-summary [get]
func (h *reportingHandler) departmentSummary(c *gin.Context) {
	start, end, ok := bindDateRange(c)
	if !ok {
		return
	}

	report, err := h.reportingSvc.DepartmentSummaryReport(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// auditDownload godoc
// @Summary Download the audit report as CSV
// @Description Summary totals plus the most recent income and paid expense lines in the period.
// @Tags reports
// @Produce text/csv
// @Param start_date query string true "Inclusive start date (YYYY-MM-DD)"
// @Param end_date query string true "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {string} string "CSV file"
// @Security BearerAuth
// @Router /api/v1/reports/audit-download [get]
func (h *reportingHandler) auditDownload(c *gin.Context) {
	start, end, ok := bindDateRange(c)
	if !ok {
		return
	}

	data, filename, err := h.reportingSvc.AuditExport(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", data)
}

// bindDateRange parses the start_date/end_date query pair shared by the
// range-based reports. Writes a 400 and returns false on bad input. Missing
// parameters pass through as zero times so the service can report them.
func bindDateRange(c *gin.Context) (start, end time.Time, ok bool) {
	var err error
	if raw := c.Query("start_date"); raw != "" {
		start, err = dto.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date: expected YYYY-MM-DD"})
			return start, end, false
		}
	}
	if raw := c.Query("end_date"); raw != "" {
		end, err = dto.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date: expected YYYY-MM-DD"})
			return start, end, false
		}
	}
	return start, end, true
}
