package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/edusuite/school_finance_api/internal/apperrors"
	"github.com/edusuite/school_finance_api/internal/core/domain"
	portsrepo "github.com/edusuite/school_finance_api/internal/core/ports/repositories"
	portssvc "github.com/edusuite/school_finance_api/internal/core/ports/services"
	"github.com/edusuite/school_finance_api/internal/dto"
	"github.com/edusuite/school_finance_api/internal/middleware"
)

type payrollService struct {
	payrollRepo    portsrepo.PayrollRepository
	departmentRepo portsrepo.DepartmentRepository
	userRepo       portsrepo.UserRepository
}

// NewPayrollService creates the payroll service.
func NewPayrollService(payrollRepo portsrepo.PayrollRepository, departmentRepo portsrepo.DepartmentRepository, userRepo portsrepo.UserRepository) portssvc.PayrollSvcFacade {
	return &payrollService{payrollRepo: payrollRepo, departmentRepo: departmentRepo, userRepo: userRepo}
}

var _ portssvc.PayrollSvcFacade = (*payrollService)(nil)

func (s *payrollService) CreateEmployee(ctx context.Context, actorUserID string, req dto.CreateEmployeeRequest) (*domain.EmployeeDetail, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := resolveActor(ctx, s.userRepo, actorUserID)
	if err != nil {
		return nil, err
	}
	if err := requireFinanceAccess(actor); err != nil {
		return nil, err
	}

	dept, err := s.departmentRepo.FindDepartmentByID(ctx, req.Department)
	if err != nil {
		return nil, fmt.Errorf("failed to verify department: %w", err)
	}
	if dept == nil || !dept.IsActive {
		return nil, fmt.Errorf("%w: department does not exist or is inactive", apperrors.ErrValidation)
	}

	if req.BaseSalary.IsNegative() {
		return nil, fmt.Errorf("%w: base salary cannot be negative", apperrors.ErrValidation)
	}
	joinDate, err := dto.ParseDate(req.JoinDate)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	employee := domain.Employee{
		EmployeeID:   uuid.NewString(),
		EmployeeCode: req.EmployeeID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		StaffRole:    domain.StaffRole(req.Role),
		DepartmentID: req.Department,
		BaseSalary:   req.BaseSalary,
		JoinDate:     joinDate,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.payrollRepo.SaveEmployee(ctx, employee); err != nil {
		logger.Error("Failed to save employee", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	logger.Info("Employee created", slog.String("employee_id", employee.EmployeeID), slog.String("employee_code", employee.EmployeeCode))
	return s.GetEmployeeByID(ctx, employee.EmployeeID)
}

func (s *payrollService) GetEmployeeByID(ctx context.Context, employeeID string) (*domain.EmployeeDetail, error) {
	employee, err := s.payrollRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	if employee == nil {
		return nil, apperrors.ErrNotFound
	}
	return employee, nil
}

func (s *payrollService) ListEmployees(ctx context.Context, params dto.ListEmployeesParams) ([]domain.EmployeeDetail, error) {
	filter := portsrepo.ListEmployeesFilter{
		DepartmentID: params.Department,
		ActiveOnly:   params.ActiveOnly,
		Limit:        params.Limit,
		Offset:       params.Offset,
	}
	if params.Role != nil {
		role := domain.StaffRole(*params.Role)
		filter.StaffRole = &role
	}

	employees, err := s.payrollRepo.FindEmployees(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	if employees == nil {
		employees = []domain.EmployeeDetail{}
	}
	return employees, nil
}

func (s *payrollService) UpdateEmployee(ctx context.Context, actorUserID, employeeID string, req dto.UpdateEmployeeRequest) (*domain.EmployeeDetail, error) {
	actor, err := resolveActor(ctx, s.userRepo, actorUserID)
	if err != nil {
		return nil, err
	}
	if err := requireFinanceAccess(actor); err != nil {
		return nil, err
	}

	detail, err := s.payrollRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load employee for update: %w", err)
	}
	if detail == nil {
		return nil, apperrors.ErrNotFound
	}
	employee := detail.Employee

	if req.FirstName != nil {
		employee.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		employee.LastName = *req.LastName
	}
	if req.Email != nil {
		employee.Email = *req.Email
	}
	if req.Phone != nil {
		employee.Phone = *req.Phone
	}
	if req.Role != nil {
		employee.StaffRole = domain.StaffRole(*req.Role)
	}
	if req.Department != nil {
		dept, err := s.departmentRepo.FindDepartmentByID(ctx, *req.Department)
		if err != nil {
			return nil, fmt.Errorf("failed to verify department: %w", err)
		}
		if dept == nil || !dept.IsActive {
			return nil, fmt.Errorf("%w: department does not exist or is inactive", apperrors.ErrValidation)
		}
		employee.DepartmentID = *req.Department
	}
	if req.BaseSalary != nil {
		if req.BaseSalary.IsNegative() {
			return nil, fmt.Errorf("%w: base salary cannot be negative", apperrors.ErrValidation)
		}
		employee.BaseSalary = *req.BaseSalary
	}
	if req.IsActive != nil {
		employee.IsActive = *req.IsActive
	}
	employee.LastUpdatedAt = time.Now()
	employee.LastUpdatedBy = actor.UserID

	if err := s.payrollRepo.UpdateEmployee(ctx, employee); err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}
	return s.GetEmployeeByID(ctx, employeeID)
}

func (s *payrollService) CreateSalary(ctx context.Context, actorUserID string, req dto.CreateSalaryRequest) (*domain.SalaryDetail, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := resolveActor(ctx, s.userRepo, actorUserID)
	if err != nil {
		return nil, err
	}
	if err := requireFinanceAccess(actor); err != nil {
		return nil, err
	}

	employee, err := s.payrollRepo.FindEmployeeByID(ctx, req.Employee)
	if err != nil {
		return nil, fmt.Errorf("failed to verify employee: %w", err)
	}
	if employee == nil || !employee.IsActive {
		return nil, fmt.Errorf("%w: employee does not exist or is inactive", apperrors.ErrValidation)
	}

	if req.BaseAmount.IsNegative() || req.Allowances.IsNegative() || req.Deductions.IsNegative() {
		return nil, fmt.Errorf("%w: salary components cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now()
	salary := domain.Salary{
		SalaryID:   uuid.NewString(),
		EmployeeID: req.Employee,
		Month:      req.Month,
		Year:       req.Year,
		BaseAmount: req.BaseAmount,
		Allowances: req.Allowances,
		Deductions: req.Deductions,
		NetAmount:  domain.NetSalary(req.BaseAmount, req.Allowances, req.Deductions),
		Status:     domain.SalaryPending,
		Notes:      req.Notes,
		ProcessedBy: actor.UserID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.payrollRepo.SaveSalary(ctx, salary); err != nil {
		logger.Error("Failed to save salary", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create salary: %w", err)
	}

	logger.Info("Salary created", slog.String("salary_id", salary.SalaryID), slog.Int("month", salary.Month), slog.Int("year", salary.Year))
	return s.GetSalaryByID(ctx, salary.SalaryID)
}

func (s *payrollService) GetSalaryByID(ctx context.Context, salaryID string) (*domain.SalaryDetail, error) {
	salary, err := s.payrollRepo.FindSalaryByID(ctx, salaryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get salary: %w", err)
	}
	if salary == nil {
		return nil, apperrors.ErrNotFound
	}
	return salary, nil
}

func (s *payrollService) ListSalaries(ctx context.Context, params dto.ListSalariesParams) ([]domain.SalaryDetail, error) {
	filter := portsrepo.ListSalariesFilter{
		EmployeeID: params.Employee,
		Month:      params.Month,
		Year:       params.Year,
		Limit:      params.Limit,
		Offset:     params.Offset,
	}
	if params.Status != nil {
		status := domain.SalaryStatus(*params.Status)
		filter.Status = &status
	}

	salaries, err := s.payrollRepo.FindSalaries(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list salaries: %w", err)
	}
	if salaries == nil {
		salaries = []domain.SalaryDetail{}
	}
	return salaries, nil
}

func (s *payrollService) UpdateSalary(ctx context.Context, actorUserID, salaryID string, req dto.UpdateSalaryRequest) (*domain.SalaryDetail, error) {
	actor, err := resolveActor(ctx, s.userRepo, actorUserID)
	if err != nil {
		return nil, err
	}
	if err := requireFinanceAccess(actor); err != nil {
		return nil, err
	}

	detail, err := s.payrollRepo.FindSalaryByID(ctx, salaryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load salary for update: %w", err)
	}
	if detail == nil {
		return nil, apperrors.ErrNotFound
	}
	salary := detail.Salary

	if salary.Status != domain.SalaryPending {
		return nil, fmt.Errorf("%w: only PENDING salaries can be edited", apperrors.ErrConflict)
	}

	if req.BaseAmount != nil {
		salary.BaseAmount = *req.BaseAmount
	}
	if req.Allowances != nil {
		salary.Allowances = *req.Allowances
	}
	if req.Deductions != nil {
		salary.Deductions = *req.Deductions
	}
	if salary.BaseAmount.IsNegative() || salary.Allowances.IsNegative() || salary.Deductions.IsNegative() {
		return nil, fmt.Errorf("%w: salary components cannot be negative", apperrors.ErrValidation)
	}
	if req.Notes != nil {
		salary.Notes = *req.Notes
	}
	// Net is derived on every write; req.NetAmount is deliberately unused.
	salary.NetAmount = domain.NetSalary(salary.BaseAmount, salary.Allowances, salary.Deductions)
	salary.LastUpdatedAt = time.Now()
	salary.LastUpdatedBy = actor.UserID

	if err := s.payrollRepo.UpdateSalary(ctx, salary); err != nil {
		return nil, fmt.Errorf("failed to update salary: %w", err)
	}
	return s.GetSalaryByID(ctx, salaryID)
}

func (s *payrollService) MarkSalaryPaid(ctx context.Context, actorUserID, salaryID string, req dto.MarkSalaryPaidRequest) (*domain.SalaryDetail, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := resolveActor(ctx, s.userRepo, actorUserID)
	if err != nil {
		return nil, err
	}
	if err := requireFinanceAccess(actor); err != nil {
		return nil, err
	}

	detail, err := s.payrollRepo.FindSalaryByID(ctx, salaryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load salary: %w", err)
	}
	if detail == nil {
		return nil, apperrors.ErrNotFound
	}
	if detail.Status != domain.SalaryPending {
		return nil, fmt.Errorf("%w: salary is %s, payment requires PENDING", apperrors.ErrConflict, detail.Status)
	}

	paymentDate, err := dto.ParseDate(req.PaymentDate)
	if err != nil {
		return nil, err
	}

	if err := s.payrollRepo.MarkSalaryPaid(ctx, salaryID, paymentDate, domain.PaymentMode(req.PaymentMode), req.ReferenceID, actor.UserID, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to mark salary paid: %w", err)
	}

	logger.Info("Salary paid", slog.String("salary_id", salaryID))
	return s.GetSalaryByID(ctx, salaryID)
}

func (s *payrollService) CancelSalary(ctx context.Context, actorUserID, salaryID string) (*domain.SalaryDetail, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := resolveActor(ctx, s.userRepo, actorUserID)
	if err != nil {
		return nil, err
	}
	if err := requireFinanceAccess(actor); err != nil {
		return nil, err
	}

	detail, err := s.payrollRepo.FindSalaryByID(ctx, salaryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load salary: %w", err)
	}
	if detail == nil {
		return nil, apperrors.ErrNotFound
	}
	if detail.Status != domain.SalaryPending {
		return nil, fmt.Errorf("%w: salary is %s, cancellation requires PENDING", apperrors.ErrConflict, detail.Status)
	}

	if err := s.payrollRepo.CancelSalary(ctx, salaryID, actor.UserID, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to cancel salary: %w", err)
	}

	logger.Info("Salary cancelled", slog.String("salary_id", salaryID))
	return s.GetSalaryByID(ctx, salaryID)
}
