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

type PgxDepartmentRepository struct {
	db *pgxpool.Pool
}

func newPgxDepartmentRepository(db *pgxpool.Pool) portsrepo.DepartmentRepository {
	return &PgxDepartmentRepository{db: db}
}

var _ portsrepo.DepartmentRepository = (*PgxDepartmentRepository)(nil)

const departmentDetailQuery = `
	SELECT d.department_id, d.name, d.code, d.description, d.head_user_id, d.is_active,
	       d.created_at, d.created_by, d.last_updated_at, d.last_updated_by,
	       CASE WHEN h.user_id IS NULL THEN NULL ELSE trim(h.first_name || ' ' || h.last_name) END AS head_name
	FROM departments d
	LEFT JOIN users h ON h.user_id = d.head_user_id
`

func scanDepartmentDetail(row pgx.Row) (*domain.DepartmentDetail, error) {
	var d domain.DepartmentDetail
	err := row.Scan(
		&d.DepartmentID,
		&d.Name,
		&d.Code,
		&d.Description,
		&d.HeadUserID,
		&d.IsActive,
		&d.CreatedAt,
		&d.CreatedBy,
		&d.LastUpdatedAt,
		&d.LastUpdatedBy,
		&d.HeadName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *PgxDepartmentRepository) SaveDepartment(ctx context.Context, dept domain.Department) error {
	query := `
		INSERT INTO departments (department_id, name, code, description, head_user_id, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.db.Exec(ctx, query,
		dept.DepartmentID,
		dept.Name,
		dept.Code,
		dept.Description,
		dept.HeadUserID,
		dept.IsActive,
		dept.CreatedAt,
		dept.CreatedBy,
		dept.LastUpdatedAt,
		dept.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save department: %w", mapPgError(err))
	}
	return nil
}

func (r *PgxDepartmentRepository) FindDepartmentByID(ctx context.Context, departmentID string) (*domain.DepartmentDetail, error) {
	query := departmentDetailQuery + ` WHERE d.department_id = $1;`
	dept, err := scanDepartmentDetail(r.db.QueryRow(ctx, query, departmentID))
	if err != nil {
		return nil, fmt.Errorf("failed to find department by ID: %w", err)
	}
	return dept, nil
}

func (r *PgxDepartmentRepository) FindDepartments(ctx context.Context, includeInactive bool) ([]domain.DepartmentDetail, error) {
	query := departmentDetailQuery
	if !includeInactive {
		query += ` WHERE d.is_active`
	}
	query += ` ORDER BY d.name;`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query departments: %w", err)
	}
	defer rows.Close()

	var depts []domain.DepartmentDetail
	for rows.Next() {
		d, err := scanDepartmentDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan department row: %w", err)
		}
		depts = append(depts, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate department rows: %w", err)
	}
	return depts, nil
}

func (r *PgxDepartmentRepository) UpdateDepartment(ctx context.Context, dept domain.Department) error {
	query := `
		UPDATE departments
		SET name = $2, code = $3, description = $4, head_user_id = $5, is_active = $6, last_updated_at = $7, last_updated_by = $8
		WHERE department_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		dept.DepartmentID,
		dept.Name,
		dept.Code,
		dept.Description,
		dept.HeadUserID,
		dept.IsActive,
		dept.LastUpdatedAt,
		dept.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update department: %w", mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update department %s: no rows affected", dept.DepartmentID)
	}
	return nil
}

func (r *PgxDepartmentRepository) DeleteDepartment(ctx context.Context, departmentID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM departments WHERE department_id = $1;`, departmentID)
	if err != nil {
		return fmt.Errorf("failed to delete department: %w", mapPgError(err))
	}
	return nil
}
