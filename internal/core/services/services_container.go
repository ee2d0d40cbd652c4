package services

import (
	portsrepo "github.com/edusuite/school_finance_api/internal/core/ports/repositories"
	portssvc "github.com/edusuite/school_finance_api/internal/core/ports/services"
	"github.com/edusuite/school_finance_api/pkg/config"
)

// NewServiceContainer wires every service with its repository dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.UserSvc = NewUserService(repos.UserRepo)
	container.TokenSvc = NewTokenService(cfg, repos.UserRepo)
	container.GoogleOAuthSvc = NewGoogleOAuthService(cfg)
	container.DepartmentSvc = NewDepartmentService(repos.DepartmentRepo, repos.UserRepo)
	container.IncomeSvc = NewIncomeService(repos.IncomeRepo, repos.UserRepo)
	container.ExpenseSvc = NewExpenseService(repos.ExpenseRepo, repos.DepartmentRepo, repos.UserRepo)
	container.BudgetSvc = NewBudgetService(repos.BudgetRepo, repos.DepartmentRepo, repos.ReportingRepo, repos.UserRepo)
	container.PayrollSvc = NewPayrollService(repos.PayrollRepo, repos.DepartmentRepo, repos.UserRepo)
	container.ReportingSvc = NewReportingService(repos.ReportingRepo, repos.BudgetRepo)

	return container
}
