package repositories

// RepositoryProvider bundles all repository implementations for injection
// into the service container.
type RepositoryProvider struct {
	UserRepo       UserRepository
	DepartmentRepo DepartmentRepository
	IncomeRepo     IncomeRepository
	ExpenseRepo    ExpenseRepository
	BudgetRepo     BudgetRepository
	PayrollRepo    PayrollRepository
	ReportingRepo  ReportingRepository
}
