package repositories

import (
	"context"
	"time"

	"github.com/edusuite/school_finance_api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository issues the read-only aggregation queries behind the
// report endpoints and the budget spend computation. All ranges are half-open
// [from, to) unless noted.
type ReportingRepository interface {
	// SumPaidExpenses totals PAID expenses of one department inside a period.
	// Backs budget consumption and the budget-vs-actual report.
	SumPaidExpenses(ctx context.Context, departmentID string, from, to time.Time) (decimal.Decimal, error)

	// TotalIncome totals incomes with date in [from, to] inclusive.
	TotalIncome(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	// TotalPaidExpenses totals PAID expenses with date in [from, to] inclusive.
	TotalPaidExpenses(ctx context.Context, from, to time.Time) (decimal.Decimal, error)

	// PaidExpensesByDepartment groups PAID expenses of a period by department
	// name, sorted by total descending.
	PaidExpensesByDepartment(ctx context.Context, from, to time.Time) ([]domain.NameTotal, error)
	// PaidExpensesByCategory groups PAID expenses of a period by category,
	// sorted by total descending.
	PaidExpensesByCategory(ctx context.Context, from, to time.Time) ([]domain.CategoryTotal, error)
	// IncomeBySource groups incomes of an inclusive range by source name,
	// sorted by total descending.
	IncomeBySource(ctx context.Context, from, to time.Time) ([]domain.NameTotal, error)

	// DepartmentFinancials returns per active department the income and PAID
	// expense totals of an inclusive range.
	DepartmentFinancials(ctx context.Context, from, to time.Time) ([]domain.DepartmentFinancial, error)

	// IncomeLines and ExpenseLines return the most recent line items of an
	// inclusive range for the audit export, newest first, capped at limit.
	IncomeLines(ctx context.Context, from, to time.Time, limit int) ([]domain.AuditLine, error)
	ExpenseLines(ctx context.Context, from, to time.Time, limit int) ([]domain.AuditLine, error)
}
