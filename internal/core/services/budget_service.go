package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/edusuite/school_finance_api/internal/apperrors"
	"github.com/edusuite/school_finance_api/internal/core/domain"
	portsrepo "github.com/edusuite/school_finance_api/internal/core/ports/repositories"
	portssvc "github.com/edusuite/school_finance_api/internal/core/ports/services"
	"github.com/edusuite/school_finance_api/internal/dto"
	"github.com/edusuite/school_finance_api/internal/middleware"
	"github.com/edusuite/school_finance_api/internal/utils/fiscal"
)

type budgetService struct {
	budgetRepo     portsrepo.BudgetRepository
	departmentRepo portsrepo.DepartmentRepository
	reportingRepo  portsrepo.ReportingRepository
	userRepo       portsrepo.UserRepository
}

// NewBudgetService creates the budget allocation service.
func NewBudgetService(budgetRepo portsrepo.BudgetRepository, departmentRepo portsrepo.DepartmentRepository, reportingRepo portsrepo.ReportingRepository, userRepo portsrepo.UserRepository) portssvc.BudgetSvcFacade {
	return &budgetService{
		budgetRepo:     budgetRepo,
		departmentRepo: departmentRepo,
		reportingRepo:  reportingRepo,
		userRepo:       userRepo,
	}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

func (s *budgetService) CreateBudget(ctx context.Context, actorUserID string, req dto.CreateBudgetRequest) (*domain.BudgetDetail, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := resolveActor(ctx, s.userRepo, actorUserID)
	if err != nil {
		return nil, err
	}
	if err := requireBudgetAccess(actor); err != nil {
		return nil, err
	}

	dept, err := s.departmentRepo.FindDepartmentByID(ctx, req.Department)
	if err != nil {
		return nil, fmt.Errorf("failed to verify department: %w", err)
	}
	if dept == nil || !dept.IsActive {
		return nil, fmt.Errorf("%w: department does not exist or is inactive", apperrors.ErrValidation)
	}

	if !fiscal.ValidLabel(req.FinancialYear) {
		return nil, fmt.Errorf("%w: financial year must be in YY-YY format", apperrors.ErrValidation)
	}
	if !req.AllocatedAmount.IsPositive() {
		return nil, fmt.Errorf("%w: allocated amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now()
	budget := domain.Budget{
		BudgetID:        uuid.NewString(),
		DepartmentID:    req.Department,
		FinancialYear:   req.FinancialYear,
		Month:           req.Month,
		AllocatedAmount: req.AllocatedAmount,
		Status:          domain.BudgetDraft,
		Notes:           req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		logger.Error("Failed to save budget", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	logger.Info("Budget created", slog.String("budget_id", budget.BudgetID), slog.String("financial_year", budget.FinancialYear))
	return s.GetBudgetByID(ctx, budget.BudgetID)
}

func (s *budgetService) GetBudgetByID(ctx context.Context, budgetID string) (*domain.BudgetDetail, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	if budget == nil {
		return nil, apperrors.ErrNotFound
	}
	return budget, nil
}

func (s *budgetService) ListBudgets(ctx context.Context, params dto.ListBudgetsParams) ([]domain.BudgetDetail, error) {
	filter := portsrepo.ListBudgetsFilter{
		DepartmentID:  params.Department,
		FinancialYear: params.FinancialYear,
		Month:         params.Month,
		Limit:         params.Limit,
		Offset:        params.Offset,
	}
	if params.Status != nil {
		status := domain.BudgetStatus(*params.Status)
		filter.Status = &status
	}

	budgets, err := s.budgetRepo.FindBudgets(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	if budgets == nil {
		budgets = []domain.BudgetDetail{}
	}
	return budgets, nil
}

func (s *budgetService) UpdateBudget(ctx context.Context, actorUserID, budgetID string, req dto.UpdateBudgetRequest) (*domain.BudgetDetail, error) {
	actor, err := resolveActor(ctx, s.userRepo, actorUserID)
	if err != nil {
		return nil, err
	}
	if err := requireBudgetAccess(actor); err != nil {
		return nil, err
	}

	detail, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load budget for update: %w", err)
	}
	if detail == nil {
		return nil, apperrors.ErrNotFound
	}
	budget := detail.Budget

	if budget.Status == domain.BudgetLocked {
		return nil, fmt.Errorf("%w: budget is LOCKED", apperrors.ErrConflict)
	}

	if req.AllocatedAmount != nil {
		if !req.AllocatedAmount.IsPositive() {
			return nil, fmt.Errorf("%w: allocated amount must be positive", apperrors.ErrValidation)
		}
		budget.AllocatedAmount = *req.AllocatedAmount
	}
	if req.Notes != nil {
		budget.Notes = *req.Notes
	}
	if req.Status != nil {
		// Submission only; approval and locking go through their endpoints.
		next := domain.BudgetStatus(*req.Status)
		if next == domain.BudgetPending && budget.Status != domain.BudgetDraft {
			return nil, fmt.Errorf("%w: only DRAFT budgets can be submitted", apperrors.ErrConflict)
		}
		if next == domain.BudgetDraft && budget.Status != domain.BudgetDraft && budget.Status != domain.BudgetRejected {
			return nil, fmt.Errorf("%w: cannot move %s back to DRAFT", apperrors.ErrConflict, budget.Status)
		}
		budget.Status = next
	}
	budget.LastUpdatedAt = time.Now()
	budget.LastUpdatedBy = actor.UserID

	if err := s.budgetRepo.UpdateBudget(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}
	return s.GetBudgetByID(ctx, budgetID)
}

func (s *budgetService) DeleteBudget(ctx context.Context, actorUserID, budgetID string) error {
	actor, err := resolveActor(ctx, s.userRepo, actorUserID)
	if err != nil {
		return err
	}
	if err := requireBudgetAccess(actor); err != nil {
		return err
	}

	detail, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return fmt.Errorf("failed to load budget for deletion: %w", err)
	}
	if detail == nil {
		return apperrors.ErrNotFound
	}
	if detail.Status != domain.BudgetDraft {
		return fmt.Errorf("%w: only DRAFT budgets can be deleted", apperrors.ErrConflict)
	}

	if err := s.budgetRepo.DeleteBudget(ctx, budgetID); err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	return nil
}

func (s *budgetService) ApproveBudget(ctx context.Context, actorUserID, budgetID string) (*domain.BudgetDetail, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := resolveActor(ctx, s.userRepo, actorUserID)
	if err != nil {
		return nil, err
	}
	if err := requireFinanceAccess(actor); err != nil {
		return nil, err
	}

	detail, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load budget: %w", err)
	}
	if detail == nil {
		return nil, apperrors.ErrNotFound
	}
	if detail.Status != domain.BudgetDraft && detail.Status != domain.BudgetPending {
		return nil, fmt.Errorf("%w: budget is %s, approval requires DRAFT or PENDING", apperrors.ErrConflict, detail.Status)
	}

	now := time.Now()
	approver := actor.UserID
	from := []domain.BudgetStatus{domain.BudgetDraft, domain.BudgetPending}
	if err := s.budgetRepo.TransitionBudgetStatus(ctx, budgetID, from, domain.BudgetApproved, &approver, &now, actor.UserID, now); err != nil {
		return nil, fmt.Errorf("failed to approve budget: %w", err)
	}

	logger.Info("Budget approved", slog.String("budget_id", budgetID))
	return s.GetBudgetByID(ctx, budgetID)
}

func (s *budgetService) RejectBudget(ctx context.Context, actorUserID, budgetID string) (*domain.BudgetDetail, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := resolveActor(ctx, s.userRepo, actorUserID)
	if err != nil {
		return nil, err
	}
	if err := requireFinanceAccess(actor); err != nil {
		return nil, err
	}

	detail, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load budget: %w", err)
	}
	if detail == nil {
		return nil, apperrors.ErrNotFound
	}
	if detail.Status != domain.BudgetDraft && detail.Status != domain.BudgetPending {
		return nil, fmt.Errorf("%w: budget is %s, rejection requires DRAFT or PENDING", apperrors.ErrConflict, detail.Status)
	}

	now := time.Now()
	approver := actor.UserID
	from := []domain.BudgetStatus{domain.BudgetDraft, domain.BudgetPending}
	if err := s.budgetRepo.TransitionBudgetStatus(ctx, budgetID, from, domain.BudgetRejected, &approver, &now, actor.UserID, now); err != nil {
		return nil, fmt.Errorf("failed to reject budget: %w", err)
	}

	logger.Info("Budget rejected", slog.String("budget_id", budgetID))
	return s.GetBudgetByID(ctx, budgetID)
}

func (s *budgetService) LockBudget(ctx context.Context, actorUserID, budgetID string) (*domain.BudgetDetail, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := resolveActor(ctx, s.userRepo, actorUserID)
	if err != nil {
		return nil, err
	}
	if err := requireSuperAdmin(actor); err != nil {
		return nil, err
	}

	detail, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load budget: %w", err)
	}
	if detail == nil {
		return nil, apperrors.ErrNotFound
	}
	if detail.Status != domain.BudgetApproved {
		return nil, fmt.Errorf("%w: budget is %s, locking requires APPROVED", apperrors.ErrConflict, detail.Status)
	}

	from := []domain.BudgetStatus{domain.BudgetApproved}
	if err := s.budgetRepo.TransitionBudgetStatus(ctx, budgetID, from, domain.BudgetLocked, nil, nil, actor.UserID, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to lock budget: %w", err)
	}

	logger.Info("Budget locked", slog.String("budget_id", budgetID))
	return s.GetBudgetByID(ctx, budgetID)
}

func (s *budgetService) SpentAmount(ctx context.Context, budget domain.Budget) (decimal.Decimal, error) {
	from, to, err := fiscal.Period(budget.FinancialYear, budget.Month)
	if err != nil {
		return decimal.Zero, err
	}
	spent, err := s.reportingRepo.SumPaidExpenses(ctx, budget.DepartmentID, from, to)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute budget spend: %w", err)
	}
	return spent, nil
}
