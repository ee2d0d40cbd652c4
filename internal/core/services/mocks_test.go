package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/edusuite/school_finance_api/internal/core/domain"
	portsrepo "github.com/edusuite/school_finance_api/internal/core/ports/repositories"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) SetRefreshTokenHash(ctx context.Context, userID, tokenHash string, updatedAt time.Time) error {
	args := m.Called(ctx, userID, tokenHash, updatedAt)
	return args.Error(0)
}

func (m *MockUserRepository) FindRefreshTokenHash(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

// --- Mock DepartmentRepository ---
type MockDepartmentRepository struct {
	mock.Mock
}

func (m *MockDepartmentRepository) SaveDepartment(ctx context.Context, dept domain.Department) error {
	args := m.Called(ctx, dept)
	return args.Error(0)
}

func (m *MockDepartmentRepository) FindDepartmentByID(ctx context.Context, departmentID string) (*domain.DepartmentDetail, error) {
	args := m.Called(ctx, departmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DepartmentDetail), args.Error(1)
}

func (m *MockDepartmentRepository) FindDepartments(ctx context.Context, includeInactive bool) ([]domain.DepartmentDetail, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DepartmentDetail), args.Error(1)
}

func (m *MockDepartmentRepository) UpdateDepartment(ctx context.Context, dept domain.Department) error {
	args := m.Called(ctx, dept)
	return args.Error(0)
}

func (m *MockDepartmentRepository) DeleteDepartment(ctx context.Context, departmentID string) error {
	args := m.Called(ctx, departmentID)
	return args.Error(0)
}

// --- Mock IncomeRepository ---
type MockIncomeRepository struct {
	mock.Mock
}

func (m *MockIncomeRepository) SaveIncomeSource(ctx context.Context, source domain.IncomeSource) error {
	args := m.Called(ctx, source)
	return args.Error(0)
}

func (m *MockIncomeRepository) FindIncomeSourceByID(ctx context.Context, sourceID string) (*domain.IncomeSource, error) {
	args := m.Called(ctx, sourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomeSource), args.Error(1)
}

func (m *MockIncomeRepository) FindIncomeSources(ctx context.Context, activeOnly bool) ([]domain.IncomeSource, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.IncomeSource), args.Error(1)
}

func (m *MockIncomeRepository) UpdateIncomeSource(ctx context.Context, source domain.IncomeSource) error {
	args := m.Called(ctx, source)
	return args.Error(0)
}

func (m *MockIncomeRepository) SaveIncome(ctx context.Context, income domain.Income) error {
	args := m.Called(ctx, income)
	return args.Error(0)
}

func (m *MockIncomeRepository) FindIncomeByID(ctx context.Context, incomeID string) (*domain.IncomeDetail, error) {
	args := m.Called(ctx, incomeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomeDetail), args.Error(1)
}

func (m *MockIncomeRepository) FindIncomes(ctx context.Context, filter portsrepo.ListIncomesFilter) ([]domain.IncomeDetail, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.IncomeDetail), args.Error(1)
}

func (m *MockIncomeRepository) UpdateIncome(ctx context.Context, income domain.Income) error {
	args := m.Called(ctx, income)
	return args.Error(0)
}

func (m *MockIncomeRepository) DeleteIncome(ctx context.Context, incomeID string) error {
	args := m.Called(ctx, incomeID)
	return args.Error(0)
}

// --- Mock ExpenseRepository ---
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) SaveExpenseCategory(ctx context.Context, category domain.ExpenseCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockExpenseRepository) FindExpenseCategoryByID(ctx context.Context, categoryID string) (*domain.ExpenseCategory, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseCategory), args.Error(1)
}

func (m *MockExpenseRepository) FindExpenseCategories(ctx context.Context, activeOnly bool) ([]domain.ExpenseCategory, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseCategory), args.Error(1)
}

func (m *MockExpenseRepository) UpdateExpenseCategory(ctx context.Context, category domain.ExpenseCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockExpenseRepository) DeleteExpenseCategory(ctx context.Context, categoryID string) error {
	args := m.Called(ctx, categoryID)
	return args.Error(0)
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.ExpenseDetail, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseDetail), args.Error(1)
}

func (m *MockExpenseRepository) FindExpenses(ctx context.Context, filter portsrepo.ListExpensesFilter) ([]domain.ExpenseDetail, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseDetail), args.Error(1)
}

func (m *MockExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) TransitionExpenseStatus(ctx context.Context, expenseID string, from, to domain.ExpenseStatus, approvedBy *string, updatedBy string, at time.Time) error {
	args := m.Called(ctx, expenseID, from, to, approvedBy, updatedBy, at)
	return args.Error(0)
}

// --- Mock BudgetRepository ---
type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.BudgetDetail, error) {
	args := m.Called(ctx, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetDetail), args.Error(1)
}

func (m *MockBudgetRepository) FindBudgets(ctx context.Context, filter portsrepo.ListBudgetsFilter) ([]domain.BudgetDetail, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BudgetDetail), args.Error(1)
}

func (m *MockBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) DeleteBudget(ctx context.Context, budgetID string) error {
	args := m.Called(ctx, budgetID)
	return args.Error(0)
}

func (m *MockBudgetRepository) TransitionBudgetStatus(ctx context.Context, budgetID string, from []domain.BudgetStatus, to domain.BudgetStatus, approvedBy *string, approvedAt *time.Time, updatedBy string, at time.Time) error {
	args := m.Called(ctx, budgetID, from, to, approvedBy, approvedAt, updatedBy, at)
	return args.Error(0)
}

// --- Mock PayrollRepository ---
type MockPayrollRepository struct {
	mock.Mock
}

func (m *MockPayrollRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockPayrollRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.EmployeeDetail, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmployeeDetail), args.Error(1)
}

func (m *MockPayrollRepository) FindEmployees(ctx context.Context, filter portsrepo.ListEmployeesFilter) ([]domain.EmployeeDetail, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EmployeeDetail), args.Error(1)
}

func (m *MockPayrollRepository) UpdateEmployee(ctx context.Context, employee domain.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockPayrollRepository) SaveSalary(ctx context.Context, salary domain.Salary) error {
	args := m.Called(ctx, salary)
	return args.Error(0)
}

func (m *MockPayrollRepository) FindSalaryByID(ctx context.Context, salaryID string) (*domain.SalaryDetail, error) {
	args := m.Called(ctx, salaryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalaryDetail), args.Error(1)
}

func (m *MockPayrollRepository) FindSalaries(ctx context.Context, filter portsrepo.ListSalariesFilter) ([]domain.SalaryDetail, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalaryDetail), args.Error(1)
}

func (m *MockPayrollRepository) UpdateSalary(ctx context.Context, salary domain.Salary) error {
	args := m.Called(ctx, salary)
	return args.Error(0)
}

func (m *MockPayrollRepository) MarkSalaryPaid(ctx context.Context, salaryID string, paymentDate time.Time, paymentMode domain.PaymentMode, referenceID string, updatedBy string, at time.Time) error {
	args := m.Called(ctx, salaryID, paymentDate, paymentMode, referenceID, updatedBy, at)
	return args.Error(0)
}

func (m *MockPayrollRepository) CancelSalary(ctx context.Context, salaryID string, updatedBy string, at time.Time) error {
	args := m.Called(ctx, salaryID, updatedBy, at)
	return args.Error(0)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) SumPaidExpenses(ctx context.Context, departmentID string, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, departmentID, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) TotalIncome(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) TotalPaidExpenses(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) PaidExpensesByDepartment(ctx context.Context, from, to time.Time) ([]domain.NameTotal, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NameTotal), args.Error(1)
}

func (m *MockReportingRepository) PaidExpensesByCategory(ctx context.Context, from, to time.Time) ([]domain.CategoryTotal, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryTotal), args.Error(1)
}

func (m *MockReportingRepository) IncomeBySource(ctx context.Context, from, to time.Time) ([]domain.NameTotal, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NameTotal), args.Error(1)
}

func (m *MockReportingRepository) DepartmentFinancials(ctx context.Context, from, to time.Time) ([]domain.DepartmentFinancial, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DepartmentFinancial), args.Error(1)
}

func (m *MockReportingRepository) IncomeLines(ctx context.Context, from, to time.Time, limit int) ([]domain.AuditLine, error) {
	args := m.Called(ctx, from, to, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLine), args.Error(1)
}

func (m *MockReportingRepository) ExpenseLines(ctx context.Context, from, to time.Time, limit int) ([]domain.AuditLine, error) {
	args := m.Called(ctx, from, to, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLine), args.Error(1)
}

// newActiveUser builds a minimal active user with the given role for actor
// resolution in tests.
func newActiveUser(userID string, role domain.Role) *domain.User {
	return &domain.User{
		UserID:   userID,
		Email:    userID + "@school.test",
		Role:     role,
		IsActive: true,
	}
}
