package services

import (
	"context"

	"github.com/edusuite/school_finance_api/internal/core/domain"
	"github.com/edusuite/school_finance_api/internal/dto"
)

// PayrollSvcFacade manages employees and their monthly salary records.
// Mutations require finance access.
type PayrollSvcFacade interface {
	CreateEmployee(ctx context.Context, actorUserID string, req dto.CreateEmployeeRequest) (*domain.EmployeeDetail, error)
	GetEmployeeByID(ctx context.Context, employeeID string) (*domain.EmployeeDetail, error)
	ListEmployees(ctx context.Context, params dto.ListEmployeesParams) ([]domain.EmployeeDetail, error)
	UpdateEmployee(ctx context.Context, actorUserID, employeeID string, req dto.UpdateEmployeeRequest) (*domain.EmployeeDetail, error)

	// CreateSalary records a salary for an employee+month+year. The net amount
	// is always recomputed from base, allowances and deductions; any
	// caller-supplied net is ignored.
	CreateSalary(ctx context.Context, actorUserID string, req dto.CreateSalaryRequest) (*domain.SalaryDetail, error)
	GetSalaryByID(ctx context.Context, salaryID string) (*domain.SalaryDetail, error)
	ListSalaries(ctx context.Context, params dto.ListSalariesParams) ([]domain.SalaryDetail, error)
	UpdateSalary(ctx context.Context, actorUserID, salaryID string, req dto.UpdateSalaryRequest) (*domain.SalaryDetail, error)

	// MarkSalaryPaid moves PENDING -> PAID and records payment details.
	MarkSalaryPaid(ctx context.Context, actorUserID, salaryID string, req dto.MarkSalaryPaidRequest) (*domain.SalaryDetail, error)
	// CancelSalary moves PENDING -> CANCELLED.
	CancelSalary(ctx context.Context, actorUserID, salaryID string) (*domain.SalaryDetail, error)
}
