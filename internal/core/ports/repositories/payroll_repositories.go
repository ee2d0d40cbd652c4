package repositories

import (
	"context"
	"time"

	"github.com/edusuite/school_finance_api/internal/core/domain"
)

// ListEmployeesFilter narrows employee listings.
type ListEmployeesFilter struct {
	DepartmentID *string
	StaffRole    *domain.StaffRole
	ActiveOnly   bool
	Limit        int
	Offset       int
}

// ListSalariesFilter narrows salary listings.
type ListSalariesFilter struct {
	EmployeeID *string
	Month      *int
	Year       *int
	Status     *domain.SalaryStatus
	Limit      int
	Offset     int
}

// PayrollRepository persists employees and salary records.
type PayrollRepository interface {
	SaveEmployee(ctx context.Context, employee domain.Employee) error
	FindEmployeeByID(ctx context.Context, employeeID string) (*domain.EmployeeDetail, error)
	FindEmployees(ctx context.Context, filter ListEmployeesFilter) ([]domain.EmployeeDetail, error)
	UpdateEmployee(ctx context.Context, employee domain.Employee) error

	// SaveSalary inserts a salary record. Returns apperrors.ErrDuplicate when
	// a record already exists for (employee, month, year).
	SaveSalary(ctx context.Context, salary domain.Salary) error
	FindSalaryByID(ctx context.Context, salaryID string) (*domain.SalaryDetail, error)
	FindSalaries(ctx context.Context, filter ListSalariesFilter) ([]domain.SalaryDetail, error)
	UpdateSalary(ctx context.Context, salary domain.Salary) error
	// MarkSalaryPaid conditionally moves a PENDING salary to PAID, recording
	// the payment details. Zero rows affected surfaces apperrors.ErrConflict.
	MarkSalaryPaid(ctx context.Context, salaryID string, paymentDate time.Time, paymentMode domain.PaymentMode, referenceID string, updatedBy string, at time.Time) error
	// CancelSalary conditionally moves a PENDING salary to CANCELLED.
	CancelSalary(ctx context.Context, salaryID string, updatedBy string, at time.Time) error
}
