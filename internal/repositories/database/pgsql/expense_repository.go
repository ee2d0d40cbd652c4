package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edusuite/school_finance_api/internal/apperrors"
	"github.com/edusuite/school_finance_api/internal/core/domain"
	portsrepo "github.com/edusuite/school_finance_api/internal/core/ports/repositories"
)

type PgxExpenseRepository struct {
	db *pgxpool.Pool
}

func newPgxExpenseRepository(db *pgxpool.Pool) portsrepo.ExpenseRepository {
	return &PgxExpenseRepository{db: db}
}

var _ portsrepo.ExpenseRepository = (*PgxExpenseRepository)(nil)

func (r *PgxExpenseRepository) SaveExpenseCategory(ctx context.Context, category domain.ExpenseCategory) error {
	query := `
		INSERT INTO expense_categories (category_id, name, code, category_type, description, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.db.Exec(ctx, query,
		category.CategoryID,
		category.Name,
		category.Code,
		category.CategoryType,
		category.Description,
		category.IsActive,
		category.CreatedAt,
		category.CreatedBy,
		category.LastUpdatedAt,
		category.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save expense category: %w", mapPgError(err))
	}
	return nil
}

func (r *PgxExpenseRepository) FindExpenseCategoryByID(ctx context.Context, categoryID string) (*domain.ExpenseCategory, error) {
	query := `
		SELECT category_id, name, code, category_type, description, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM expense_categories WHERE category_id = $1;
	`
	var c domain.ExpenseCategory
	err := r.db.QueryRow(ctx, query, categoryID).Scan(
		&c.CategoryID, &c.Name, &c.Code, &c.CategoryType, &c.Description, &c.IsActive,
		&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find expense category: %w", err)
	}
	return &c, nil
}

func (r *PgxExpenseRepository) FindExpenseCategories(ctx context.Context, activeOnly bool) ([]domain.ExpenseCategory, error) {
	query := `
		SELECT category_id, name, code, category_type, description, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM expense_categories
	`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name;`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.ExpenseCategory
	for rows.Next() {
		var c domain.ExpenseCategory
		if err := rows.Scan(
			&c.CategoryID, &c.Name, &c.Code, &c.CategoryType, &c.Description, &c.IsActive,
			&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense category row: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense category rows: %w", err)
	}
	return categories, nil
}

func (r *PgxExpenseRepository) UpdateExpenseCategory(ctx context.Context, category domain.ExpenseCategory) error {
	query := `
		UPDATE expense_categories
		SET name = $2, category_type = $3, description = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE category_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		category.CategoryID,
		category.Name,
		category.CategoryType,
		category.Description,
		category.IsActive,
		category.LastUpdatedAt,
		category.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense category: %w", mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update expense category %s: no rows affected", category.CategoryID)
	}
	return nil
}

func (r *PgxExpenseRepository) DeleteExpenseCategory(ctx context.Context, categoryID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM expense_categories WHERE category_id = $1;`, categoryID)
	if err != nil {
		return fmt.Errorf("failed to delete expense category: %w", mapPgError(err))
	}
	return nil
}

const expenseDetailQuery = `
	SELECT e.expense_id, e.category_id, e.department_id, e.amount, e.date, e.payment_mode, e.reference_id,
	       e.description, e.status, e.receipt_path, e.requested_by, e.approved_by,
	       e.created_at, e.created_by, e.last_updated_at, e.last_updated_by,
	       c.name AS category_name,
	       d.name AS department_name,
	       CASE WHEN req.user_id IS NULL THEN NULL ELSE trim(req.first_name || ' ' || req.last_name) END AS requested_by_name,
	       CASE WHEN app.user_id IS NULL THEN NULL ELSE trim(app.first_name || ' ' || app.last_name) END AS approved_by_name
	FROM expenses e
	JOIN expense_categories c ON c.category_id = e.category_id
	JOIN departments d ON d.department_id = e.department_id
	LEFT JOIN users req ON req.user_id = e.requested_by
	LEFT JOIN users app ON app.user_id = e.approved_by
`

func scanExpenseDetail(row pgx.Row) (*domain.ExpenseDetail, error) {
	var e domain.ExpenseDetail
	err := row.Scan(
		&e.ExpenseID,
		&e.CategoryID,
		&e.DepartmentID,
		&e.Amount,
		&e.Date,
		&e.PaymentMode,
		&e.ReferenceID,
		&e.Description,
		&e.Status,
		&e.ReceiptPath,
		&e.RequestedBy,
		&e.ApprovedBy,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
		&e.CategoryName,
		&e.DepartmentName,
		&e.RequestedByName,
		&e.ApprovedByName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	query := `
		INSERT INTO expenses (expense_id, category_id, department_id, amount, date, payment_mode, reference_id, description, status, receipt_path, requested_by, approved_by, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.db.Exec(ctx, query,
		expense.ExpenseID,
		expense.CategoryID,
		expense.DepartmentID,
		expense.Amount,
		expense.Date,
		expense.PaymentMode,
		expense.ReferenceID,
		expense.Description,
		expense.Status,
		expense.ReceiptPath,
		expense.RequestedBy,
		expense.ApprovedBy,
		expense.CreatedAt,
		expense.CreatedBy,
		expense.LastUpdatedAt,
		expense.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save expense: %w", mapPgError(err))
	}
	return nil
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.ExpenseDetail, error) {
	query := expenseDetailQuery + ` WHERE e.expense_id = $1;`
	expense, err := scanExpenseDetail(r.db.QueryRow(ctx, query, expenseID))
	if err != nil {
		return nil, fmt.Errorf("failed to find expense by ID: %w", err)
	}
	return expense, nil
}

func (r *PgxExpenseRepository) FindExpenses(ctx context.Context, filter portsrepo.ListExpensesFilter) ([]domain.ExpenseDetail, error) {
	query := expenseDetailQuery + ` WHERE 1=1`
	args := []any{}

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		query += fmt.Sprintf(" AND e.category_id = $%d", len(args))
	}
	if filter.DepartmentID != nil {
		args = append(args, *filter.DepartmentID)
		query += fmt.Sprintf(" AND e.department_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND e.status = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND e.date >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND e.date <= $%d", len(args))
	}

	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY e.date DESC, e.created_at DESC LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d;", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []domain.ExpenseDetail
	for rows.Next() {
		e, err := scanExpenseDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense rows: %w", err)
	}
	return expenses, nil
}

func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	query := `
		UPDATE expenses
		SET category_id = $2, department_id = $3, amount = $4, date = $5, payment_mode = $6, reference_id = $7, description = $8, receipt_path = $9, last_updated_at = $10, last_updated_by = $11
		WHERE expense_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		expense.ExpenseID,
		expense.CategoryID,
		expense.DepartmentID,
		expense.Amount,
		expense.Date,
		expense.PaymentMode,
		expense.ReferenceID,
		expense.Description,
		expense.ReceiptPath,
		expense.LastUpdatedAt,
		expense.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update expense %s: no rows affected", expense.ExpenseID)
	}
	return nil
}

func (r *PgxExpenseRepository) TransitionExpenseStatus(ctx context.Context, expenseID string, from, to domain.ExpenseStatus, approvedBy *string, updatedBy string, at time.Time) error {
	// The status predicate makes the transition conditional: of two racing
	// writers only one sees a matching row.
	query := `
		UPDATE expenses
		SET status = $3, approved_by = COALESCE($4, approved_by), last_updated_at = $5, last_updated_by = $6
		WHERE expense_id = $1 AND status = $2;
	`
	tag, err := r.db.Exec(ctx, query, expenseID, from, to, approvedBy, at, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to transition expense status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: expense %s is no longer %s", apperrors.ErrConflict, expenseID, from)
	}
	return nil
}
