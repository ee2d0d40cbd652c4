package repositories

import (
	"context"
	"time"

	"github.com/edusuite/school_finance_api/internal/core/domain"
)

// ListIncomesFilter narrows income listings.
type ListIncomesFilter struct {
	SourceID     *string
	DepartmentID *string
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

// IncomeRepository persists income sources and income facts.
type IncomeRepository interface {
	SaveIncomeSource(ctx context.Context, source domain.IncomeSource) error
	FindIncomeSourceByID(ctx context.Context, sourceID string) (*domain.IncomeSource, error)
	FindIncomeSources(ctx context.Context, activeOnly bool) ([]domain.IncomeSource, error)
	UpdateIncomeSource(ctx context.Context, source domain.IncomeSource) error

	SaveIncome(ctx context.Context, income domain.Income) error
	FindIncomeByID(ctx context.Context, incomeID string) (*domain.IncomeDetail, error)
	FindIncomes(ctx context.Context, filter ListIncomesFilter) ([]domain.IncomeDetail, error)
	UpdateIncome(ctx context.Context, income domain.Income) error
	DeleteIncome(ctx context.Context, incomeID string) error
}

// ListExpensesFilter narrows expense listings.
type ListExpensesFilter struct {
	CategoryID   *string
	DepartmentID *string
	Status       *domain.ExpenseStatus
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

// ExpenseRepository persists expense categories and expense requests.
type ExpenseRepository interface {
	SaveExpenseCategory(ctx context.Context, category domain.ExpenseCategory) error
	FindExpenseCategoryByID(ctx context.Context, categoryID string) (*domain.ExpenseCategory, error)
	FindExpenseCategories(ctx context.Context, activeOnly bool) ([]domain.ExpenseCategory, error)
	UpdateExpenseCategory(ctx context.Context, category domain.ExpenseCategory) error
	// DeleteExpenseCategory returns apperrors.ErrReferenced while expenses
	// still reference the category.
	DeleteExpenseCategory(ctx context.Context, categoryID string) error

	SaveExpense(ctx context.Context, expense domain.Expense) error
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.ExpenseDetail, error)
	FindExpenses(ctx context.Context, filter ListExpensesFilter) ([]domain.ExpenseDetail, error)
	UpdateExpense(ctx context.Context, expense domain.Expense) error
	// TransitionExpenseStatus performs a conditional status update: the row is
	// written only while its current status equals from, so two racing
	// transitions cannot both succeed. Zero rows affected surfaces
	// apperrors.ErrConflict.
	TransitionExpenseStatus(ctx context.Context, expenseID string, from, to domain.ExpenseStatus, approvedBy *string, updatedBy string, at time.Time) error
}
