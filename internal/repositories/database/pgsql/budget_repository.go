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

type PgxBudgetRepository struct {
	db *pgxpool.Pool
}

func newPgxBudgetRepository(db *pgxpool.Pool) portsrepo.BudgetRepository {
	return &PgxBudgetRepository{db: db}
}

var _ portsrepo.BudgetRepository = (*PgxBudgetRepository)(nil)

const budgetDetailQuery = `
	SELECT b.budget_id, b.department_id, b.financial_year, b.month, b.allocated_amount, b.status, b.notes,
	       b.approved_by, b.approved_at,
	       b.created_at, b.created_by, b.last_updated_at, b.last_updated_by,
	       d.name AS department_name,
	       CASE WHEN cu.user_id IS NULL THEN NULL ELSE trim(cu.first_name || ' ' || cu.last_name) END AS created_by_name,
	       CASE WHEN au.user_id IS NULL THEN NULL ELSE trim(au.first_name || ' ' || au.last_name) END AS approved_by_name
	FROM budgets b
	JOIN departments d ON d.department_id = b.department_id
	LEFT JOIN users cu ON cu.user_id = b.created_by
	LEFT JOIN users au ON au.user_id = b.approved_by
`

func scanBudgetDetail(row pgx.Row) (*domain.BudgetDetail, error) {
	var b domain.BudgetDetail
	err := row.Scan(
		&b.BudgetID,
		&b.DepartmentID,
		&b.FinancialYear,
		&b.Month,
		&b.AllocatedAmount,
		&b.Status,
		&b.Notes,
		&b.ApprovedBy,
		&b.ApprovedAt,
		&b.CreatedAt,
		&b.CreatedBy,
		&b.LastUpdatedAt,
		&b.LastUpdatedBy,
		&b.DepartmentName,
		&b.CreatedByName,
		&b.ApprovedByName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	query := `
		INSERT INTO budgets (budget_id, department_id, financial_year, month, allocated_amount, status, notes, approved_by, approved_at, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.db.Exec(ctx, query,
		budget.BudgetID,
		budget.DepartmentID,
		budget.FinancialYear,
		budget.Month,
		budget.AllocatedAmount,
		budget.Status,
		budget.Notes,
		budget.ApprovedBy,
		budget.ApprovedAt,
		budget.CreatedAt,
		budget.CreatedBy,
		budget.LastUpdatedAt,
		budget.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save budget: %w", mapPgError(err))
	}
	return nil
}

func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.BudgetDetail, error) {
	query := budgetDetailQuery + ` WHERE b.budget_id = $1;`
	budget, err := scanBudgetDetail(r.db.QueryRow(ctx, query, budgetID))
	if err != nil {
		return nil, fmt.Errorf("failed to find budget by ID: %w", err)
	}
	return budget, nil
}

func (r *PgxBudgetRepository) FindBudgets(ctx context.Context, filter portsrepo.ListBudgetsFilter) ([]domain.BudgetDetail, error) {
	query := budgetDetailQuery + ` WHERE 1=1`
	args := []any{}

	if filter.DepartmentID != nil {
		args = append(args, *filter.DepartmentID)
		query += fmt.Sprintf(" AND b.department_id = $%d", len(args))
	}
	if filter.FinancialYear != nil {
		args = append(args, *filter.FinancialYear)
		query += fmt.Sprintf(" AND b.financial_year = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND b.status = $%d", len(args))
	}
	if filter.Month != nil {
		args = append(args, *filter.Month)
		query += fmt.Sprintf(" AND b.month = $%d", len(args))
	}

	query += " ORDER BY b.financial_year DESC, d.name, b.month NULLS FIRST"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	query += ";"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	var budgets []domain.BudgetDetail
	for rows.Next() {
		b, err := scanBudgetDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget row: %w", err)
		}
		budgets = append(budgets, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate budget rows: %w", err)
	}
	return budgets, nil
}

func (r *PgxBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	// LOCKED rows are immutable at this level too, not just in the service.
	query := `
		UPDATE budgets
		SET allocated_amount = $2, status = $3, notes = $4, last_updated_at = $5, last_updated_by = $6
		WHERE budget_id = $1 AND status <> 'LOCKED';
	`
	tag, err := r.db.Exec(ctx, query,
		budget.BudgetID,
		budget.AllocatedAmount,
		budget.Status,
		budget.Notes,
		budget.LastUpdatedAt,
		budget.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update budget: %w", mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: budget %s is LOCKED or missing", apperrors.ErrConflict, budget.BudgetID)
	}
	return nil
}

func (r *PgxBudgetRepository) DeleteBudget(ctx context.Context, budgetID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM budgets WHERE budget_id = $1;`, budgetID)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", mapPgError(err))
	}
	return nil
}

func (r *PgxBudgetRepository) TransitionBudgetStatus(ctx context.Context, budgetID string, from []domain.BudgetStatus, to domain.BudgetStatus, approvedBy *string, approvedAt *time.Time, updatedBy string, at time.Time) error {
	query := `
		UPDATE budgets
		SET status = $3, approved_by = COALESCE($4, approved_by), approved_at = COALESCE($5, approved_at), last_updated_at = $6, last_updated_by = $7
		WHERE budget_id = $1 AND status = ANY($2);
	`
	fromStr := make([]string, len(from))
	for i, s := range from {
		fromStr[i] = string(s)
	}
	tag, err := r.db.Exec(ctx, query, budgetID, fromStr, to, approvedBy, approvedAt, at, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to transition budget status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: budget %s is no longer in an eligible status", apperrors.ErrConflict, budgetID)
	}
	return nil
}
