package services

import (
	"context"

	"github.com/edusuite/school_finance_api/internal/core/domain"
	"github.com/edusuite/school_finance_api/internal/dto"
	"github.com/shopspring/decimal"
)

// BudgetSvcFacade manages budget allocations and their approval workflow.
type BudgetSvcFacade interface {
	CreateBudget(ctx context.Context, actorUserID string, req dto.CreateBudgetRequest) (*domain.BudgetDetail, error)
	GetBudgetByID(ctx context.Context, budgetID string) (*domain.BudgetDetail, error)
	ListBudgets(ctx context.Context, params dto.ListBudgetsParams) ([]domain.BudgetDetail, error)
	// UpdateBudget edits a budget's fields, including moving DRAFT -> PENDING
	// for submission. LOCKED budgets refuse every change.
	UpdateBudget(ctx context.Context, actorUserID, budgetID string, req dto.UpdateBudgetRequest) (*domain.BudgetDetail, error)
	// DeleteBudget removes a DRAFT budget.
	DeleteBudget(ctx context.Context, actorUserID, budgetID string) error

	// ApproveBudget moves DRAFT or PENDING -> APPROVED, recording approver and
	// timestamp. Requires finance access.
	ApproveBudget(ctx context.Context, actorUserID, budgetID string) (*domain.BudgetDetail, error)
	// RejectBudget moves DRAFT or PENDING -> REJECTED. Requires finance access.
	RejectBudget(ctx context.Context, actorUserID, budgetID string) (*domain.BudgetDetail, error)
	// LockBudget moves APPROVED -> LOCKED, irreversibly. Only SUPER_ADMIN.
	LockBudget(ctx context.Context, actorUserID, budgetID string) (*domain.BudgetDetail, error)

	// SpentAmount computes the PAID expense total inside the budget's period.
	SpentAmount(ctx context.Context, budget domain.Budget) (decimal.Decimal, error)
}
