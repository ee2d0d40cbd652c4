package repositories

import (
	"context"
	"time"

	"github.com/edusuite/school_finance_api/internal/core/domain"
)

// ListBudgetsFilter narrows budget listings.
type ListBudgetsFilter struct {
	DepartmentID  *string
	FinancialYear *string
	Status        *domain.BudgetStatus
	Month         *int
	Limit         int
	Offset        int
}

// BudgetRepository persists budget allocations.
type BudgetRepository interface {
	// SaveBudget inserts a budget. Returns apperrors.ErrDuplicate when an
	// allocation already exists for the same (department, financial year,
	// month) period; a NULL month is its own period.
	SaveBudget(ctx context.Context, budget domain.Budget) error
	FindBudgetByID(ctx context.Context, budgetID string) (*domain.BudgetDetail, error)
	FindBudgets(ctx context.Context, filter ListBudgetsFilter) ([]domain.BudgetDetail, error)
	UpdateBudget(ctx context.Context, budget domain.Budget) error
	DeleteBudget(ctx context.Context, budgetID string) error
	// TransitionBudgetStatus conditionally moves a budget whose current status
	// is one of from to the to status. Zero rows affected surfaces
	// apperrors.ErrConflict.
	TransitionBudgetStatus(ctx context.Context, budgetID string, from []domain.BudgetStatus, to domain.BudgetStatus, approvedBy *string, approvedAt *time.Time, updatedBy string, at time.Time) error
}
