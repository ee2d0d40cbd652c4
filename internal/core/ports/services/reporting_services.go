package services

import (
	"context"
	"time"

	"github.com/edusuite/school_finance_api/internal/dto"
)

// ReportingSvcFacade aggregates ledger data into read-only reports.
// Zero-valued required parameters yield apperrors.ErrMissingParameter.
type ReportingSvcFacade interface {
	MonthlyExpenseReport(ctx context.Context, month, year int) (*dto.MonthlyExpenseReport, error)
	BudgetVsActualReport(ctx context.Context, financialYear string, departmentID *string) (*dto.BudgetVsActualReport, error)
	IncomeVsExpenseSummary(ctx context.Context, startDate, endDate time.Time) (*dto.IncomeVsExpenseSummary, error)
	DepartmentSummaryReport(ctx context.Context, startDate, endDate time.Time) (*dto.DepartmentSummaryReport, error)
	// AuditExport renders the income/expense audit report as CSV bytes.
	AuditExport(ctx context.Context, startDate, endDate time.Time) ([]byte, string, error)
}
