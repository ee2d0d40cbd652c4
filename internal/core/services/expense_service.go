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

type expenseService struct {
	expenseRepo    portsrepo.ExpenseRepository
	departmentRepo portsrepo.DepartmentRepository
	userRepo       portsrepo.UserRepository
}

// NewExpenseService creates the expense workflow service.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepository, departmentRepo portsrepo.DepartmentRepository, userRepo portsrepo.UserRepository) portssvc.ExpenseSvcFacade {
	return &expenseService{expenseRepo: expenseRepo, departmentRepo: departmentRepo, userRepo: userRepo}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

func (s *expenseService) CreateExpenseCategory(ctx context.Context, actorUserID string, req dto.CreateExpenseCategoryRequest) (*domain.ExpenseCategory, error) {
	actor, err := resolveActor(ctx, s.userRepo, actorUserID)
	if err != nil {
		return nil, err
	}
	if err := requireFinanceAccess(actor); err != nil {
		return nil, err
	}

	now := time.Now()
	category := domain.ExpenseCategory{
		CategoryID:   uuid.NewString(),
		Name:         req.Name,
		Code:         req.Code,
		CategoryType: domain.CategoryType(req.CategoryType),
		Description:  req.Description,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.expenseRepo.SaveExpenseCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create expense category: %w", err)
	}
	return &category, nil
}

func (s *expenseService) ListExpenseCategories(ctx context.Context) ([]domain.ExpenseCategory, error) {
	categories, err := s.expenseRepo.FindExpenseCategories(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list expense categories: %w", err)
	}
	if categories == nil {
		categories = []domain.ExpenseCategory{}
	}
	return categories, nil
}

func (s *expenseService) UpdateExpenseCategory(ctx context.Context, actorUserID, categoryID string, req dto.UpdateExpenseCategoryRequest) (*domain.ExpenseCategory, error) {
	actor, err := resolveActor(ctx, s.userRepo, actorUserID)
	if err != nil {
		return nil, err
	}
	if err := requireFinanceAccess(actor); err != nil {
		return nil, err
	}

	category, err := s.expenseRepo.FindExpenseCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load expense category for update: %w", err)
	}
	if category == nil {
		return nil, apperrors.ErrNotFound
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.CategoryType != nil {
		category.CategoryType = domain.CategoryType(*req.CategoryType)
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	category.LastUpdatedAt = time.Now()
	category.LastUpdatedBy = actor.UserID

	if err := s.expenseRepo.UpdateExpenseCategory(ctx, *category); err != nil {
		return nil, fmt.Errorf("failed to update expense category: %w", err)
	}
	return category, nil
}

func (s *expenseService) DeleteExpenseCategory(ctx context.Context, actorUserID, categoryID string) error {
	actor, err := resolveActor(ctx, s.userRepo, actorUserID)
	if err != nil {
		return err
	}
	if err := requireFinanceAccess(actor); err != nil {
		return err
	}
	if err := s.expenseRepo.DeleteExpenseCategory(ctx, categoryID); err != nil {
		return fmt.Errorf("failed to delete expense category: %w", err)
	}
	return nil
}

func (s *expenseService) CreateExpense(ctx context.Context, actorUserID string, req dto.CreateExpenseRequest) (*domain.ExpenseDetail, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := resolveActor(ctx, s.userRepo, actorUserID)
	if err != nil {
		return nil, err
	}

	category, err := s.expenseRepo.FindExpenseCategoryByID(ctx, req.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to verify expense category: %w", err)
	}
	if category == nil || !category.IsActive {
		return nil, fmt.Errorf("%w: expense category does not exist or is inactive", apperrors.ErrValidation)
	}

	dept, err := s.departmentRepo.FindDepartmentByID(ctx, req.Department)
	if err != nil {
		return nil, fmt.Errorf("failed to verify department: %w", err)
	}
	if dept == nil || !dept.IsActive {
		return nil, fmt.Errorf("%w: department does not exist or is inactive", apperrors.ErrValidation)
	}

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	var mode *domain.PaymentMode
	if req.PaymentMode != nil {
		m := domain.PaymentMode(*req.PaymentMode)
		mode = &m
	}

	now := time.Now()
	expense := domain.Expense{
		ExpenseID:    uuid.NewString(),
		CategoryID:   req.Category,
		DepartmentID: req.Department,
		Amount:       req.Amount,
		Date:         date,
		PaymentMode:  mode,
		ReferenceID:  req.ReferenceID,
		Description:  req.Description,
		Status:       domain.ExpensePending,
		RequestedBy:  actor.UserID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		logger.Error("Failed to save expense", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	logger.Info("Expense requested", slog.String("expense_id", expense.ExpenseID), slog.String("amount", expense.Amount.String()))
	return s.GetExpenseByID(ctx, expense.ExpenseID)
}

func (s *expenseService) GetExpenseByID(ctx context.Context, expenseID string) (*domain.ExpenseDetail, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	if expense == nil {
		return nil, apperrors.ErrNotFound
	}
	return expense, nil
}

func (s *expenseService) ListExpenses(ctx context.Context, params dto.ListExpensesParams) ([]domain.ExpenseDetail, error) {
	filter := portsrepo.ListExpensesFilter{
		CategoryID:   params.Category,
		DepartmentID: params.Department,
		Limit:        params.Limit,
		Offset:       params.Offset,
	}
	if params.Status != nil {
		status := domain.ExpenseStatus(*params.Status)
		filter.Status = &status
	}
	if params.StartDate != nil {
		from, err := dto.ParseDate(*params.StartDate)
		if err != nil {
			return nil, err
		}
		filter.From = &from
	}
	if params.EndDate != nil {
		to, err := dto.ParseDate(*params.EndDate)
		if err != nil {
			return nil, err
		}
		filter.To = &to
	}

	expenses, err := s.expenseRepo.FindExpenses(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	if expenses == nil {
		expenses = []domain.ExpenseDetail{}
	}
	return expenses, nil
}

func (s *expenseService) UpdateExpense(ctx context.Context, actorUserID, expenseID string, req dto.UpdateExpenseRequest) (*domain.ExpenseDetail, error) {
	actor, err := resolveActor(ctx, s.userRepo, actorUserID)
	if err != nil {
		return nil, err
	}

	detail, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load expense for update: %w", err)
	}
	if detail == nil {
		return nil, apperrors.ErrNotFound
	}
	expense := detail.Expense

	// Only the original requester or finance staff may edit, and only while
	// the expense is still awaiting a decision.
	if expense.RequestedBy != actor.UserID && !actor.Role.HasFinanceAccess() {
		return nil, fmt.Errorf("%w: not the requester", apperrors.ErrForbidden)
	}
	if expense.Status != domain.ExpensePending {
		return nil, fmt.Errorf("%w: only PENDING expenses can be edited", apperrors.ErrConflict)
	}

	if req.Category != nil {
		category, err := s.expenseRepo.FindExpenseCategoryByID(ctx, *req.Category)
		if err != nil {
			return nil, fmt.Errorf("failed to verify expense category: %w", err)
		}
		if category == nil || !category.IsActive {
			return nil, fmt.Errorf("%w: expense category does not exist or is inactive", apperrors.ErrValidation)
		}
		expense.CategoryID = *req.Category
	}
	if req.Department != nil {
		dept, err := s.departmentRepo.FindDepartmentByID(ctx, *req.Department)
		if err != nil {
			return nil, fmt.Errorf("failed to verify department: %w", err)
		}
		if dept == nil || !dept.IsActive {
			return nil, fmt.Errorf("%w: department does not exist or is inactive", apperrors.ErrValidation)
		}
		expense.DepartmentID = *req.Department
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
		}
		expense.Amount = *req.Amount
	}
	if req.Date != nil {
		date, err := dto.ParseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		expense.Date = date
	}
	if req.PaymentMode != nil {
		m := domain.PaymentMode(*req.PaymentMode)
		expense.PaymentMode = &m
	}
	if req.ReferenceID != nil {
		expense.ReferenceID = *req.ReferenceID
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	expense.LastUpdatedAt = time.Now()
	expense.LastUpdatedBy = actor.UserID

	if err := s.expenseRepo.UpdateExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	return s.GetExpenseByID(ctx, expenseID)
}

func (s *expenseService) ApproveExpense(ctx context.Context, actorUserID, expenseID string) (*domain.ExpenseDetail, error) {
	return s.decide(ctx, actorUserID, expenseID, domain.ExpenseApproved)
}

func (s *expenseService) RejectExpense(ctx context.Context, actorUserID, expenseID string) (*domain.ExpenseDetail, error) {
	return s.decide(ctx, actorUserID, expenseID, domain.ExpenseRejected)
}

// decide handles the two PENDING outcomes, which share everything except the
// target status.
func (s *expenseService) decide(ctx context.Context, actorUserID, expenseID string, to domain.ExpenseStatus) (*domain.ExpenseDetail, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := resolveActor(ctx, s.userRepo, actorUserID)
	if err != nil {
		return nil, err
	}
	if err := requireFinanceAccess(actor); err != nil {
		return nil, err
	}

	detail, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load expense: %w", err)
	}
	if detail == nil {
		return nil, apperrors.ErrNotFound
	}
	if detail.Status != domain.ExpensePending {
		return nil, fmt.Errorf("%w: expense is %s, decision requires PENDING", apperrors.ErrConflict, detail.Status)
	}

	approver := actor.UserID
	if err := s.expenseRepo.TransitionExpenseStatus(ctx, expenseID, domain.ExpensePending, to, &approver, actor.UserID, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to transition expense: %w", err)
	}

	logger.Info("Expense decided", slog.String("expense_id", expenseID), slog.String("status", string(to)))
	return s.GetExpenseByID(ctx, expenseID)
}

func (s *expenseService) MarkExpensePaid(ctx context.Context, actorUserID, expenseID string) (*domain.ExpenseDetail, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := resolveActor(ctx, s.userRepo, actorUserID)
	if err != nil {
		return nil, err
	}
	if err := requireFinanceAccess(actor); err != nil {
		return nil, err
	}

	detail, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load expense: %w", err)
	}
	if detail == nil {
		return nil, apperrors.ErrNotFound
	}
	if detail.Status != domain.ExpenseApproved {
		return nil, fmt.Errorf("%w: expense is %s, payment requires APPROVED", apperrors.ErrConflict, detail.Status)
	}

	if err := s.expenseRepo.TransitionExpenseStatus(ctx, expenseID, domain.ExpenseApproved, domain.ExpensePaid, nil, actor.UserID, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to mark expense paid: %w", err)
	}

	logger.Info("Expense paid", slog.String("expense_id", expenseID))
	return s.GetExpenseByID(ctx, expenseID)
}
