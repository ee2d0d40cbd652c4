package repositories

import (
	"context"

	"github.com/edusuite/school_finance_api/internal/core/domain"
)

// DepartmentRepository persists departments.
type DepartmentRepository interface {
	SaveDepartment(ctx context.Context, dept domain.Department) error
	FindDepartmentByID(ctx context.Context, departmentID string) (*domain.DepartmentDetail, error)
	FindDepartments(ctx context.Context, includeInactive bool) ([]domain.DepartmentDetail, error)
	UpdateDepartment(ctx context.Context, dept domain.Department) error
	// DeleteDepartment removes a department. Returns apperrors.ErrReferenced
	// when protected records (expenses, budgets, employees) still point at it.
	DeleteDepartment(ctx context.Context, departmentID string) error
}
