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

type departmentService struct {
	departmentRepo portsrepo.DepartmentRepository
	userRepo       portsrepo.UserRepository
}

// NewDepartmentService creates the department management service.
func NewDepartmentService(departmentRepo portsrepo.DepartmentRepository, userRepo portsrepo.UserRepository) portssvc.DepartmentSvcFacade {
	return &departmentService{departmentRepo: departmentRepo, userRepo: userRepo}
}

var _ portssvc.DepartmentSvcFacade = (*departmentService)(nil)

func (s *departmentService) CreateDepartment(ctx context.Context, actorUserID string, req dto.CreateDepartmentRequest) (*domain.DepartmentDetail, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := resolveActor(ctx, s.userRepo, actorUserID)
	if err != nil {
		return nil, err
	}
	if err := requireSuperAdmin(actor); err != nil {
		return nil, err
	}

	if req.Head != nil {
		head, err := s.userRepo.FindUserByID(ctx, *req.Head)
		if err != nil {
			return nil, fmt.Errorf("failed to verify department head: %w", err)
		}
		if head == nil {
			return nil, fmt.Errorf("%w: head user does not exist", apperrors.ErrValidation)
		}
	}

	now := time.Now()
	dept := domain.Department{
		DepartmentID: uuid.NewString(),
		Name:         req.Name,
		Code:         req.Code,
		Description:  req.Description,
		HeadUserID:   req.Head,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.departmentRepo.SaveDepartment(ctx, dept); err != nil {
		logger.Error("Failed to save department", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create department: %w", err)
	}

	logger.Info("Department created", slog.String("department_id", dept.DepartmentID), slog.String("code", dept.Code))
	return s.GetDepartmentByID(ctx, dept.DepartmentID)
}

func (s *departmentService) GetDepartmentByID(ctx context.Context, departmentID string) (*domain.DepartmentDetail, error) {
	dept, err := s.departmentRepo.FindDepartmentByID(ctx, departmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get department: %w", err)
	}
	if dept == nil {
		return nil, apperrors.ErrNotFound
	}
	return dept, nil
}

func (s *departmentService) ListDepartments(ctx context.Context, includeInactive bool) ([]domain.DepartmentDetail, error) {
	depts, err := s.departmentRepo.FindDepartments(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	if depts == nil {
		depts = []domain.DepartmentDetail{}
	}
	return depts, nil
}

func (s *departmentService) UpdateDepartment(ctx context.Context, actorUserID, departmentID string, req dto.UpdateDepartmentRequest) (*domain.DepartmentDetail, error) {
	actor, err := resolveActor(ctx, s.userRepo, actorUserID)
	if err != nil {
		return nil, err
	}
	if err := requireSuperAdmin(actor); err != nil {
		return nil, err
	}

	detail, err := s.departmentRepo.FindDepartmentByID(ctx, departmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load department for update: %w", err)
	}
	if detail == nil {
		return nil, apperrors.ErrNotFound
	}
	dept := detail.Department

	if req.Name != nil {
		dept.Name = *req.Name
	}
	if req.Code != nil {
		dept.Code = *req.Code
	}
	if req.Description != nil {
		dept.Description = *req.Description
	}
	if req.Head != nil {
		head, err := s.userRepo.FindUserByID(ctx, *req.Head)
		if err != nil {
			return nil, fmt.Errorf("failed to verify department head: %w", err)
		}
		if head == nil {
			return nil, fmt.Errorf("%w: head user does not exist", apperrors.ErrValidation)
		}
		dept.HeadUserID = req.Head
	}
	if req.IsActive != nil {
		dept.IsActive = *req.IsActive
	}
	dept.LastUpdatedAt = time.Now()
	dept.LastUpdatedBy = actor.UserID

	if err := s.departmentRepo.UpdateDepartment(ctx, dept); err != nil {
		return nil, fmt.Errorf("failed to update department: %w", err)
	}
	return s.GetDepartmentByID(ctx, departmentID)
}

func (s *departmentService) DeleteDepartment(ctx context.Context, actorUserID, departmentID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := resolveActor(ctx, s.userRepo, actorUserID)
	if err != nil {
		return err
	}
	if err := requireSuperAdmin(actor); err != nil {
		return err
	}

	if err := s.departmentRepo.DeleteDepartment(ctx, departmentID); err != nil {
		return fmt.Errorf("failed to delete department: %w", err)
	}
	logger.Info("Department deleted", slog.String("department_id", departmentID))
	return nil
}
