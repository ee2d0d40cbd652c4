package services

import (
	"context"

	"github.com/edusuite/school_finance_api/internal/core/domain"
	"github.com/edusuite/school_finance_api/internal/dto"
)

// IncomeSvcFacade manages income sources and income facts. Incomes are
// immutable facts in the ledger sense: they carry no status and never
// transition; corrections happen by edit or delete with finance access.
type IncomeSvcFacade interface {
	CreateIncomeSource(ctx context.Context, actorUserID string, req dto.CreateIncomeSourceRequest) (*domain.IncomeSource, error)
	ListIncomeSources(ctx context.Context) ([]domain.IncomeSource, error)
	UpdateIncomeSource(ctx context.Context, actorUserID, sourceID string, req dto.UpdateIncomeSourceRequest) (*domain.IncomeSource, error)

	RecordIncome(ctx context.Context, actorUserID string, req dto.CreateIncomeRequest) (*domain.IncomeDetail, error)
	GetIncomeByID(ctx context.Context, incomeID string) (*domain.IncomeDetail, error)
	ListIncomes(ctx context.Context, params dto.ListIncomesParams) ([]domain.IncomeDetail, error)
	UpdateIncome(ctx context.Context, actorUserID, incomeID string, req dto.UpdateIncomeRequest) (*domain.IncomeDetail, error)
	DeleteIncome(ctx context.Context, actorUserID, incomeID string) error
}

// ExpenseSvcFacade manages expense categories and the expense approval
// workflow.
type ExpenseSvcFacade interface {
	CreateExpenseCategory(ctx context.Context, actorUserID string, req dto.CreateExpenseCategoryRequest) (*domain.ExpenseCategory, error)
	ListExpenseCategories(ctx context.Context) ([]domain.ExpenseCategory, error)
	UpdateExpenseCategory(ctx context.Context, actorUserID, categoryID string, req dto.UpdateExpenseCategoryRequest) (*domain.ExpenseCategory, error)
	DeleteExpenseCategory(ctx context.Context, actorUserID, categoryID string) error

	CreateExpense(ctx context.Context, actorUserID string, req dto.CreateExpenseRequest) (*domain.ExpenseDetail, error)
	GetExpenseByID(ctx context.Context, expenseID string) (*domain.ExpenseDetail, error)
	ListExpenses(ctx context.Context, params dto.ListExpensesParams) ([]domain.ExpenseDetail, error)
	UpdateExpense(ctx context.Context, actorUserID, expenseID string, req dto.UpdateExpenseRequest) (*domain.ExpenseDetail, error)

	// ApproveExpense moves PENDING -> APPROVED and records the approver.
	// Requires finance access.
	ApproveExpense(ctx context.Context, actorUserID, expenseID string) (*domain.ExpenseDetail, error)
	// RejectExpense moves PENDING -> REJECTED and records the approver.
	// Requires finance access.
	RejectExpense(ctx context.Context, actorUserID, expenseID string) (*domain.ExpenseDetail, error)
	// MarkExpensePaid moves APPROVED -> PAID. Requires finance access.
	MarkExpensePaid(ctx context.Context, actorUserID, expenseID string) (*domain.ExpenseDetail, error)
}
