package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/edusuite/school_finance_api/internal/core/domain"
	portsrepo "github.com/edusuite/school_finance_api/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	db *pgxpool.Pool
}

func newPgxReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{db: db}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

func (r *PgxReportingRepository) SumPaidExpenses(ctx context.Context, departmentID string, from, to time.Time) (decimal.Decimal, error) {
	// Budget periods are half-open so adjacent periods never double count.
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE department_id = $1 AND status = 'PAID' AND date >= $2 AND date < $3;
	`
	var total decimal.Decimal
	if err := r.db.QueryRow(ctx, query, departmentID, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum paid expenses: %w", err)
	}
	return total, nil
}

func (r *PgxReportingRepository) TotalIncome(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM incomes WHERE date >= $1 AND date <= $2;`
	var total decimal.Decimal
	if err := r.db.QueryRow(ctx, query, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to total income: %w", err)
	}
	return total, nil
}

func (r *PgxReportingRepository) TotalPaidExpenses(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE status = 'PAID' AND date >= $1 AND date <= $2;`
	var total decimal.Decimal
	if err := r.db.QueryRow(ctx, query, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to total paid expenses: %w", err)
	}
	return total, nil
}

func (r *PgxReportingRepository) PaidExpensesByDepartment(ctx context.Context, from, to time.Time) ([]domain.NameTotal, error) {
	query := `
		SELECT d.name, COALESCE(SUM(e.amount), 0) AS total
		FROM expenses e
		JOIN departments d ON d.department_id = e.department_id
		WHERE e.status = 'PAID' AND e.date >= $1 AND e.date <= $2
		GROUP BY d.name
		ORDER BY total DESC;
	`
	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses by department: %w", err)
	}
	defer rows.Close()

	var totals []domain.NameTotal
	for rows.Next() {
		var nt domain.NameTotal
		if err := rows.Scan(&nt.Name, &nt.Total); err != nil {
			return nil, fmt.Errorf("failed to scan department total row: %w", err)
		}
		totals = append(totals, nt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate department total rows: %w", err)
	}
	return totals, nil
}

func (r *PgxReportingRepository) PaidExpensesByCategory(ctx context.Context, from, to time.Time) ([]domain.CategoryTotal, error) {
	query := `
		SELECT c.name, c.category_type, COALESCE(SUM(e.amount), 0) AS total
		FROM expenses e
		JOIN expense_categories c ON c.category_id = e.category_id
		WHERE e.status = 'PAID' AND e.date >= $1 AND e.date <= $2
		GROUP BY c.name, c.category_type
		ORDER BY total DESC;
	`
	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses by category: %w", err)
	}
	defer rows.Close()

	var totals []domain.CategoryTotal
	for rows.Next() {
		var ct domain.CategoryTotal
		if err := rows.Scan(&ct.Name, &ct.CategoryType, &ct.Total); err != nil {
			return nil, fmt.Errorf("failed to scan category total row: %w", err)
		}
		totals = append(totals, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate category total rows: %w", err)
	}
	return totals, nil
}

func (r *PgxReportingRepository) IncomeBySource(ctx context.Context, from, to time.Time) ([]domain.NameTotal, error) {
	query := `
		SELECT s.name, COALESCE(SUM(i.amount), 0) AS total
		FROM incomes i
		JOIN income_sources s ON s.source_id = i.source_id
		WHERE i.date >= $1 AND i.date <= $2
		GROUP BY s.name
		ORDER BY total DESC;
	`
	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query income by source: %w", err)
	}
	defer rows.Close()

	var totals []domain.NameTotal
	for rows.Next() {
		var nt domain.NameTotal
		if err := rows.Scan(&nt.Name, &nt.Total); err != nil {
			return nil, fmt.Errorf("failed to scan source total row: %w", err)
		}
		totals = append(totals, nt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate source total rows: %w", err)
	}
	return totals, nil
}

func (r *PgxReportingRepository) DepartmentFinancials(ctx context.Context, from, to time.Time) ([]domain.DepartmentFinancial, error) {
	query := `
		SELECT d.name,
		       COALESCE((SELECT SUM(i.amount) FROM incomes i WHERE i.department_id = d.department_id AND i.date >= $1 AND i.date <= $2), 0) AS income,
		       COALESCE((SELECT SUM(e.amount) FROM expenses e WHERE e.department_id = d.department_id AND e.status = 'PAID' AND e.date >= $1 AND e.date <= $2), 0) AS expenses
		FROM departments d
		WHERE d.is_active
		ORDER BY d.name;
	`
	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query department financials: %w", err)
	}
	defer rows.Close()

	var financials []domain.DepartmentFinancial
	for rows.Next() {
		var df domain.DepartmentFinancial
		if err := rows.Scan(&df.DepartmentName, &df.Income, &df.Expenses); err != nil {
			return nil, fmt.Errorf("failed to scan department financial row: %w", err)
		}
		financials = append(financials, df)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate department financial rows: %w", err)
	}
	return financials, nil
}

func (r *PgxReportingRepository) IncomeLines(ctx context.Context, from, to time.Time, limit int) ([]domain.AuditLine, error) {
	query := `
		SELECT s.name, i.amount, i.date
		FROM incomes i
		JOIN income_sources s ON s.source_id = i.source_id
		WHERE i.date >= $1 AND i.date <= $2
		ORDER BY i.date DESC, i.created_at DESC
		LIMIT $3;
	`
	rows, err := r.db.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query income lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.AuditLine
	for rows.Next() {
		line := domain.AuditLine{Kind: "INCOME", Status: "RECEIVED"}
		if err := rows.Scan(&line.Label, &line.Amount, &line.Date); err != nil {
			return nil, fmt.Errorf("failed to scan income line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate income lines: %w", err)
	}
	return lines, nil
}

func (r *PgxReportingRepository) ExpenseLines(ctx context.Context, from, to time.Time, limit int) ([]domain.AuditLine, error) {
	query := `
		SELECT c.name, e.amount, e.date, e.status
		FROM expenses e
		JOIN expense_categories c ON c.category_id = e.category_id
		WHERE e.status = 'PAID' AND e.date >= $1 AND e.date <= $2
		ORDER BY e.date DESC, e.created_at DESC
		LIMIT $3;
	`
	rows, err := r.db.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.AuditLine
	for rows.Next() {
		line := domain.AuditLine{Kind: "EXPENSE"}
		if err := rows.Scan(&line.Label, &line.Amount, &line.Date, &line.Status); err != nil {
			return nil, fmt.Errorf("failed to scan expense line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense lines: %w", err)
	}
	return lines, nil
}
