package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edusuite/school_finance_api/internal/core/domain"
	portsrepo "github.com/edusuite/school_finance_api/internal/core/ports/repositories"
)

type PgxIncomeRepository struct {
	db *pgxpool.Pool
}

func newPgxIncomeRepository(db *pgxpool.Pool) portsrepo.IncomeRepository {
	return &PgxIncomeRepository{db: db}
}

var _ portsrepo.IncomeRepository = (*PgxIncomeRepository)(nil)

func (r *PgxIncomeRepository) SaveIncomeSource(ctx context.Context, source domain.IncomeSource) error {
	query := `
		INSERT INTO income_sources (source_id, name, code, description, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.db.Exec(ctx, query,
		source.SourceID,
		source.Name,
		source.Code,
		source.Description,
		source.IsActive,
		source.CreatedAt,
		source.CreatedBy,
		source.LastUpdatedAt,
		source.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save income source: %w", mapPgError(err))
	}
	return nil
}

func (r *PgxIncomeRepository) FindIncomeSourceByID(ctx context.Context, sourceID string) (*domain.IncomeSource, error) {
	query := `
		SELECT source_id, name, code, description, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM income_sources WHERE source_id = $1;
	`
	var s domain.IncomeSource
	err := r.db.QueryRow(ctx, query, sourceID).Scan(
		&s.SourceID, &s.Name, &s.Code, &s.Description, &s.IsActive,
		&s.CreatedAt, &s.CreatedBy, &s.LastUpdatedAt, &s.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find income source: %w", err)
	}
	return &s, nil
}

func (r *PgxIncomeRepository) FindIncomeSources(ctx context.Context, activeOnly bool) ([]domain.IncomeSource, error) {
	query := `
		SELECT source_id, name, code, description, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM income_sources
	`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name;`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query income sources: %w", err)
	}
	defer rows.Close()

	var sources []domain.IncomeSource
	for rows.Next() {
		var s domain.IncomeSource
		if err := rows.Scan(
			&s.SourceID, &s.Name, &s.Code, &s.Description, &s.IsActive,
			&s.CreatedAt, &s.CreatedBy, &s.LastUpdatedAt, &s.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan income source row: %w", err)
		}
		sources = append(sources, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate income source rows: %w", err)
	}
	return sources, nil
}

func (r *PgxIncomeRepository) UpdateIncomeSource(ctx context.Context, source domain.IncomeSource) error {
	query := `
		UPDATE income_sources
		SET name = $2, description = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE source_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		source.SourceID,
		source.Name,
		source.Description,
		source.IsActive,
		source.LastUpdatedAt,
		source.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update income source: %w", mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update income source %s: no rows affected", source.SourceID)
	}
	return nil
}

const incomeDetailQuery = `
	SELECT i.income_id, i.source_id, i.amount, i.date, i.payment_mode, i.reference_id, i.description,
	       i.department_id, i.student_id, i.recorded_by,
	       i.created_at, i.created_by, i.last_updated_at, i.last_updated_by,
	       s.name AS source_name,
	       d.name AS department_name,
	       CASE WHEN u.user_id IS NULL THEN NULL ELSE trim(u.first_name || ' ' || u.last_name) END AS recorded_by_name
	FROM incomes i
	JOIN income_sources s ON s.source_id = i.source_id
	LEFT JOIN departments d ON d.department_id = i.department_id
	LEFT JOIN users u ON u.user_id = i.recorded_by
`

func scanIncomeDetail(row pgx.Row) (*domain.IncomeDetail, error) {
	var in domain.IncomeDetail
	err := row.Scan(
		&in.IncomeID,
		&in.SourceID,
		&in.Amount,
		&in.Date,
		&in.PaymentMode,
		&in.ReferenceID,
		&in.Description,
		&in.DepartmentID,
		&in.StudentID,
		&in.RecordedBy,
		&in.CreatedAt,
		&in.CreatedBy,
		&in.LastUpdatedAt,
		&in.LastUpdatedBy,
		&in.SourceName,
		&in.DepartmentName,
		&in.RecordedByName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &in, nil
}

func (r *PgxIncomeRepository) SaveIncome(ctx context.Context, income domain.Income) error {
	query := `
		INSERT INTO incomes (income_id, source_id, amount, date, payment_mode, reference_id, description, department_id, student_id, recorded_by, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.db.Exec(ctx, query,
		income.IncomeID,
		income.SourceID,
		income.Amount,
		income.Date,
		income.PaymentMode,
		income.ReferenceID,
		income.Description,
		income.DepartmentID,
		income.StudentID,
		income.RecordedBy,
		income.CreatedAt,
		income.CreatedBy,
		income.LastUpdatedAt,
		income.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save income: %w", mapPgError(err))
	}
	return nil
}

func (r *PgxIncomeRepository) FindIncomeByID(ctx context.Context, incomeID string) (*domain.IncomeDetail, error) {
	query := incomeDetailQuery + ` WHERE i.income_id = $1;`
	income, err := scanIncomeDetail(r.db.QueryRow(ctx, query, incomeID))
	if err != nil {
		return nil, fmt.Errorf("failed to find income by ID: %w", err)
	}
	return income, nil
}

func (r *PgxIncomeRepository) FindIncomes(ctx context.Context, filter portsrepo.ListIncomesFilter) ([]domain.IncomeDetail, error) {
	query := incomeDetailQuery + ` WHERE 1=1`
	args := []any{}

	if filter.SourceID != nil {
		args = append(args, *filter.SourceID)
		query += fmt.Sprintf(" AND i.source_id = $%d", len(args))
	}
	if filter.DepartmentID != nil {
		args = append(args, *filter.DepartmentID)
		query += fmt.Sprintf(" AND i.department_id = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND i.date >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND i.date <= $%d", len(args))
	}

	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY i.date DESC, i.created_at DESC LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d;", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query incomes: %w", err)
	}
	defer rows.Close()

	var incomes []domain.IncomeDetail
	for rows.Next() {
		in, err := scanIncomeDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan income row: %w", err)
		}
		incomes = append(incomes, *in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate income rows: %w", err)
	}
	return incomes, nil
}

func (r *PgxIncomeRepository) UpdateIncome(ctx context.Context, income domain.Income) error {
	query := `
		UPDATE incomes
		SET source_id = $2, amount = $3, date = $4, payment_mode = $5, reference_id = $6, description = $7, department_id = $8, student_id = $9, last_updated_at = $10, last_updated_by = $11
		WHERE income_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		income.IncomeID,
		income.SourceID,
		income.Amount,
		income.Date,
		income.PaymentMode,
		income.ReferenceID,
		income.Description,
		income.DepartmentID,
		income.StudentID,
		income.LastUpdatedAt,
		income.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update income: %w", mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update income %s: no rows affected", income.IncomeID)
	}
	return nil
}

func (r *PgxIncomeRepository) DeleteIncome(ctx context.Context, incomeID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM incomes WHERE income_id = $1;`, incomeID)
	if err != nil {
		return fmt.Errorf("failed to delete income: %w", mapPgError(err))
	}
	return nil
}
