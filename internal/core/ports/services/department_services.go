package services

import (
	"context"

	"github.com/edusuite/school_finance_api/internal/core/domain"
	"github.com/edusuite/school_finance_api/internal/dto"
)

// DepartmentSvcFacade manages departments. Mutations require SUPER_ADMIN.
type DepartmentSvcFacade interface {
	CreateDepartment(ctx context.Context, actorUserID string, req dto.CreateDepartmentRequest) (*domain.DepartmentDetail, error)
	GetDepartmentByID(ctx context.Context, departmentID string) (*domain.DepartmentDetail, error)
	ListDepartments(ctx context.Context, includeInactive bool) ([]domain.DepartmentDetail, error)
	UpdateDepartment(ctx context.Context, actorUserID, departmentID string, req dto.UpdateDepartmentRequest) (*domain.DepartmentDetail, error)
	DeleteDepartment(ctx context.Context, actorUserID, departmentID string) error
}
