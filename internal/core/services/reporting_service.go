package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/edusuite/school_finance_api/internal/apperrors"
	"github.com/edusuite/school_finance_api/internal/core/domain"
	portsrepo "github.com/edusuite/school_finance_api/internal/core/ports/repositories"
	portssvc "github.com/edusuite/school_finance_api/internal/core/ports/services"
	"github.com/edusuite/school_finance_api/internal/dto"
	"github.com/edusuite/school_finance_api/internal/middleware"
	"github.com/edusuite/school_finance_api/internal/utils/fiscal"
)

// auditLineCap bounds each transaction section of the audit export.
const auditLineCap = 20

type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
	budgetRepo    portsrepo.BudgetRepository
}

// NewReportingService creates the read-only reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, budgetRepo portsrepo.BudgetRepository) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo, budgetRepo: budgetRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) MonthlyExpenseReport(ctx context.Context, month, year int) (*dto.MonthlyExpenseReport, error) {
	if month == 0 || year == 0 {
		return nil, fmt.Errorf("%w: month and year are required", apperrors.ErrMissingParameter)
	}

	start, end, err := fiscal.MonthPeriod(year, month)
	if err != nil {
		return nil, err
	}
	// Aggregation queries take inclusive date ranges.
	last := end.AddDate(0, 0, -1)

	total, err := s.reportingRepo.TotalPaidExpenses(ctx, start, last)
	if err != nil {
		return nil, fmt.Errorf("failed to total monthly expenses: %w", err)
	}
	byDept, err := s.reportingRepo.PaidExpensesByDepartment(ctx, start, last)
	if err != nil {
		return nil, fmt.Errorf("failed to break down expenses by department: %w", err)
	}
	byCategory, err := s.reportingRepo.PaidExpensesByCategory(ctx, start, last)
	if err != nil {
		return nil, fmt.Errorf("failed to break down expenses by category: %w", err)
	}

	report := &dto.MonthlyExpenseReport{
		Month:               month,
		Year:                year,
		TotalExpenses:       total.InexactFloat64(),
		DepartmentBreakdown: make([]dto.DepartmentTotal, 0, len(byDept)),
		CategoryBreakdown:   make([]dto.CategoryBreakdownRow, 0, len(byCategory)),
	}
	for _, row := range byDept {
		report.DepartmentBreakdown = append(report.DepartmentBreakdown, dto.DepartmentTotal{
			Department: row.Name,
			Total:      row.Total.InexactFloat64(),
		})
	}
	for _, row := range byCategory {
		report.CategoryBreakdown = append(report.CategoryBreakdown, dto.CategoryBreakdownRow{
			Category:     row.Name,
			CategoryType: string(row.CategoryType),
			Total:        row.Total.InexactFloat64(),
		})
	}
	return report, nil
}

func (s *reportingService) BudgetVsActualReport(ctx context.Context, financialYear string, departmentID *string) (*dto.BudgetVsActualReport, error) {
	if financialYear == "" {
		return nil, fmt.Errorf("%w: financial_year is required", apperrors.ErrMissingParameter)
	}
	if !fiscal.ValidLabel(financialYear) {
		return nil, fmt.Errorf("%w: financial year must be in YY-YY format", apperrors.ErrValidation)
	}

	budgets, err := s.budgetRepo.FindBudgets(ctx, portsrepo.ListBudgetsFilter{
		DepartmentID:  departmentID,
		FinancialYear: &financialYear,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets for report: %w", err)
	}

	report := &dto.BudgetVsActualReport{
		FinancialYear: financialYear,
		Budgets:       []dto.BudgetVsActualRow{},
	}
	for i := range budgets {
		b := budgets[i]
		// Only decided allocations are compared against spend.
		if b.Status != domain.BudgetApproved && b.Status != domain.BudgetLocked {
			continue
		}

		from, to, err := fiscal.Period(b.FinancialYear, b.Month)
		if err != nil {
			return nil, err
		}
		spent, err := s.reportingRepo.SumPaidExpenses(ctx, b.DepartmentID, from, to)
		if err != nil {
			return nil, fmt.Errorf("failed to compute budget spend: %w", err)
		}

		variance := b.AllocatedAmount.Sub(spent)
		variancePct := decimal.Zero
		if !b.AllocatedAmount.IsZero() {
			variancePct = variance.Div(b.AllocatedAmount).Mul(decimal.NewFromInt(100)).Round(2)
		}
		status := "Under Budget"
		if variance.IsNegative() {
			status = "Over Budget"
		}

		report.Budgets = append(report.Budgets, dto.BudgetVsActualRow{
			BudgetID:              b.BudgetID,
			Department:            b.DepartmentName,
			FinancialYear:         b.FinancialYear,
			Month:                 b.Month,
			AllocatedBudget:       b.AllocatedAmount.InexactFloat64(),
			ActualSpent:           spent.InexactFloat64(),
			Variance:              variance.InexactFloat64(),
			VariancePercentage:    variancePct.InexactFloat64(),
			UtilizationPercentage: b.Utilization(spent).InexactFloat64(),
			Status:                status,
		})
	}
	return report, nil
}

func (s *reportingService) IncomeVsExpenseSummary(ctx context.Context, startDate, endDate time.Time) (*dto.IncomeVsExpenseSummary, error) {
	if startDate.IsZero() || endDate.IsZero() {
		return nil, fmt.Errorf("%w: start_date and end_date are required", apperrors.ErrMissingParameter)
	}

	income, err := s.reportingRepo.TotalIncome(ctx, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to total income: %w", err)
	}
	expenses, err := s.reportingRepo.TotalPaidExpenses(ctx, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to total expenses: %w", err)
	}
	bySource, err := s.reportingRepo.IncomeBySource(ctx, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to break down income by source: %w", err)
	}
	byCategory, err := s.reportingRepo.PaidExpensesByCategory(ctx, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to break down expenses by category: %w", err)
	}

	balance := income.Sub(expenses)
	status := "Surplus"
	if balance.IsNegative() {
		status = "Deficit"
	}

	summary := &dto.IncomeVsExpenseSummary{
		Period: dto.ReportPeriod{
			StartDate: dto.FormatDate(startDate),
			EndDate:   dto.FormatDate(endDate),
		},
		Summary: dto.IncomeVsExpenseTotals{
			TotalIncome:   income.InexactFloat64(),
			TotalExpenses: expenses.InexactFloat64(),
			Balance:       balance.InexactFloat64(),
			Status:        status,
		},
		IncomeBreakdown:  make([]dto.SourceTotal, 0, len(bySource)),
		ExpenseBreakdown: make([]dto.CategoryBreakdownRow, 0, len(byCategory)),
	}
	for _, row := range bySource {
		summary.IncomeBreakdown = append(summary.IncomeBreakdown, dto.SourceTotal{
			Source: row.Name,
			Total:  row.Total.InexactFloat64(),
		})
	}
	for _, row := range byCategory {
		summary.ExpenseBreakdown = append(summary.ExpenseBreakdown, dto.CategoryBreakdownRow{
			Category:     row.Name,
			CategoryType: string(row.CategoryType),
			Total:        row.Total.InexactFloat64(),
		})
	}
	return summary, nil
}

func (s *reportingService) DepartmentSummaryReport(ctx context.Context, startDate, endDate time.Time) (*dto.DepartmentSummaryReport, error) {
	if startDate.IsZero() || endDate.IsZero() {
		return nil, fmt.Errorf("%w: start_date and end_date are required", apperrors.ErrMissingParameter)
	}

	financials, err := s.reportingRepo.DepartmentFinancials(ctx, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load department financials: %w", err)
	}

	report := &dto.DepartmentSummaryReport{
		Period: dto.ReportPeriod{
			StartDate: dto.FormatDate(startDate),
			EndDate:   dto.FormatDate(endDate),
		},
		Departments: make([]dto.DepartmentSummaryRow, 0, len(financials)),
	}
	for _, row := range financials {
		report.Departments = append(report.Departments, dto.DepartmentSummaryRow{
			Department: row.DepartmentName,
			Income:     row.Income.InexactFloat64(),
			Expenses:   row.Expenses.InexactFloat64(),
			Net:        row.Income.Sub(row.Expenses).InexactFloat64(),
		})
	}
	return report, nil
}

func (s *reportingService) AuditExport(ctx context.Context, startDate, endDate time.Time) ([]byte, string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if startDate.IsZero() || endDate.IsZero() {
		return nil, "", fmt.Errorf("%w: start_date and end_date are required", apperrors.ErrMissingParameter)
	}

	income, err := s.reportingRepo.TotalIncome(ctx, startDate, endDate)
	if err != nil {
		return nil, "", fmt.Errorf("failed to total income: %w", err)
	}
	expenses, err := s.reportingRepo.TotalPaidExpenses(ctx, startDate, endDate)
	if err != nil {
		return nil, "", fmt.Errorf("failed to total expenses: %w", err)
	}
	incomeLines, err := s.reportingRepo.IncomeLines(ctx, startDate, endDate, auditLineCap)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load income lines: %w", err)
	}
	expenseLines, err := s.reportingRepo.ExpenseLines(ctx, startDate, endDate, auditLineCap)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load expense lines: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{
		{"Financial Audit Report"},
		{"Period", dto.FormatDate(startDate) + " to " + dto.FormatDate(endDate)},
		{},
		{"Summary"},
		{"Total Income", formatAmount(income)},
		{"Total Expenses", formatAmount(expenses)},
		{"Net Balance", formatAmount(income.Sub(expenses))},
		{},
		{"Recent Transactions"},
		{"Type", "Source/Category", "Amount", "Date", "Status"},
	}
	for _, line := range incomeLines {
		rows = append(rows, auditRow(line))
	}
	for _, line := range expenseLines {
		rows = append(rows, auditRow(line))
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, "", fmt.Errorf("failed to write audit csv: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", fmt.Errorf("failed to flush audit csv: %w", err)
	}

	filename := fmt.Sprintf("audit_report_%s_%s.csv", dto.FormatDate(startDate), dto.FormatDate(endDate))
	logger.Info("Audit report exported", slog.String("filename", filename), slog.Int("income_lines", len(incomeLines)), slog.Int("expense_lines", len(expenseLines)))
	return buf.Bytes(), filename, nil
}

func auditRow(line domain.AuditLine) []string {
	return []string{
		line.Kind,
		line.Label,
		formatAmount(line.Amount),
		dto.FormatDate(line.Date),
		line.Status,
	}
}

// formatAmount renders a decimal as a plain float with no currency symbol or
// padding.
func formatAmount(d decimal.Decimal) string {
	return strconv.FormatFloat(d.InexactFloat64(), 'f', -1, 64)
}
