package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/edusuite/school_finance_api/internal/core/ports/repositories"
)

// NewRepositoryProvider builds every pgx-backed repository over one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:       newPgxUserRepository(dbPool),
		DepartmentRepo: newPgxDepartmentRepository(dbPool),
		IncomeRepo:     newPgxIncomeRepository(dbPool),
		ExpenseRepo:    newPgxExpenseRepository(dbPool),
		BudgetRepo:     newPgxBudgetRepository(dbPool),
		PayrollRepo:    newPgxPayrollRepository(dbPool),
		ReportingRepo:  newPgxReportingRepository(dbPool),
	}
}
