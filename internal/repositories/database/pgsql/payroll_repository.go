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

type PgxPayrollRepository struct {
	db *pgxpool.Pool
}

func newPgxPayrollRepository(db *pgxpool.Pool) portsrepo.PayrollRepository {
	return &PgxPayrollRepository{db: db}
}

var _ portsrepo.PayrollRepository = (*PgxPayrollRepository)(nil)

const employeeDetailQuery = `
	SELECT e.employee_id, e.employee_code, e.first_name, e.last_name, e.email, e.phone, e.staff_role,
	       e.department_id, e.base_salary, e.join_date, e.is_active,
	       e.created_at, e.created_by, e.last_updated_at, e.last_updated_by,
	       d.name AS department_name
	FROM employees e
	JOIN departments d ON d.department_id = e.department_id
`

func scanEmployeeDetail(row pgx.Row) (*domain.EmployeeDetail, error) {
	var e domain.EmployeeDetail
	err := row.Scan(
		&e.Employee.EmployeeID,
		&e.EmployeeCode,
		&e.FirstName,
		&e.LastName,
		&e.Email,
		&e.Phone,
		&e.StaffRole,
		&e.DepartmentID,
		&e.BaseSalary,
		&e.JoinDate,
		&e.IsActive,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
		&e.DepartmentName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *PgxPayrollRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	query := `
		INSERT INTO employees (employee_id, employee_code, first_name, last_name, email, phone, staff_role, department_id, base_salary, join_date, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.db.Exec(ctx, query,
		employee.EmployeeID,
		employee.EmployeeCode,
		employee.FirstName,
		employee.LastName,
		employee.Email,
		employee.Phone,
		employee.StaffRole,
		employee.DepartmentID,
		employee.BaseSalary,
		employee.JoinDate,
		employee.IsActive,
		employee.CreatedAt,
		employee.CreatedBy,
		employee.LastUpdatedAt,
		employee.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save employee: %w", mapPgError(err))
	}
	return nil
}

func (r *PgxPayrollRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.EmployeeDetail, error) {
	query := employeeDetailQuery + ` WHERE e.employee_id = $1;`
	employee, err := scanEmployeeDetail(r.db.QueryRow(ctx, query, employeeID))
	if err != nil {
		return nil, fmt.Errorf("failed to find employee by ID: %w", err)
	}
	return employee, nil
}

func (r *PgxPayrollRepository) FindEmployees(ctx context.Context, filter portsrepo.ListEmployeesFilter) ([]domain.EmployeeDetail, error) {
	query := employeeDetailQuery + ` WHERE 1=1`
	args := []any{}

	if filter.DepartmentID != nil {
		args = append(args, *filter.DepartmentID)
		query += fmt.Sprintf(" AND e.department_id = $%d", len(args))
	}
	if filter.StaffRole != nil {
		args = append(args, *filter.StaffRole)
		query += fmt.Sprintf(" AND e.staff_role = $%d", len(args))
	}
	if filter.ActiveOnly {
		query += " AND e.is_active"
	}

	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY e.employee_code LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d;", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []domain.EmployeeDetail
	for rows.Next() {
		e, err := scanEmployeeDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee row: %w", err)
		}
		employees = append(employees, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employee rows: %w", err)
	}
	return employees, nil
}

func (r *PgxPayrollRepository) UpdateEmployee(ctx context.Context, employee domain.Employee) error {
	query := `
		UPDATE employees
		SET first_name = $2, last_name = $3, email = $4, phone = $5, staff_role = $6, department_id = $7, base_salary = $8, is_active = $9, last_updated_at = $10, last_updated_by = $11
		WHERE employee_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		employee.EmployeeID,
		employee.FirstName,
		employee.LastName,
		employee.Email,
		employee.Phone,
		employee.StaffRole,
		employee.DepartmentID,
		employee.BaseSalary,
		employee.IsActive,
		employee.LastUpdatedAt,
		employee.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update employee %s: no rows affected", employee.EmployeeID)
	}
	return nil
}

const salaryDetailQuery = `
	SELECT s.salary_id, s.employee_id, s.month, s.year, s.base_amount, s.allowances, s.deductions, s.net_amount,
	       s.status, s.payment_date, s.payment_mode, s.reference_id, s.notes, s.processed_by,
	       s.created_at, s.created_by, s.last_updated_at, s.last_updated_by,
	       trim(e.first_name || ' ' || e.last_name) AS employee_name,
	       e.employee_code,
	       d.name AS department_name,
	       CASE WHEN u.user_id IS NULL THEN NULL ELSE trim(u.first_name || ' ' || u.last_name) END AS processed_by_name
	FROM salaries s
	JOIN employees e ON e.employee_id = s.employee_id
	JOIN departments d ON d.department_id = e.department_id
	LEFT JOIN users u ON u.user_id = s.processed_by
`

func scanSalaryDetail(row pgx.Row) (*domain.SalaryDetail, error) {
	var s domain.SalaryDetail
	err := row.Scan(
		&s.SalaryID,
		&s.Salary.EmployeeID,
		&s.Month,
		&s.Year,
		&s.BaseAmount,
		&s.Allowances,
		&s.Deductions,
		&s.NetAmount,
		&s.Status,
		&s.PaymentDate,
		&s.PaymentMode,
		&s.ReferenceID,
		&s.Notes,
		&s.ProcessedBy,
		&s.CreatedAt,
		&s.CreatedBy,
		&s.LastUpdatedAt,
		&s.LastUpdatedBy,
		&s.EmployeeName,
		&s.EmployeeCode,
		&s.DepartmentName,
		&s.ProcessedByName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *PgxPayrollRepository) SaveSalary(ctx context.Context, salary domain.Salary) error {
	query := `
		INSERT INTO salaries (salary_id, employee_id, month, year, base_amount, allowances, deductions, net_amount, status, payment_date, payment_mode, reference_id, notes, processed_by, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := r.db.Exec(ctx, query,
		salary.SalaryID,
		salary.EmployeeID,
		salary.Month,
		salary.Year,
		salary.BaseAmount,
		salary.Allowances,
		salary.Deductions,
		salary.NetAmount,
		salary.Status,
		salary.PaymentDate,
		salary.PaymentMode,
		salary.ReferenceID,
		salary.Notes,
		salary.ProcessedBy,
		salary.CreatedAt,
		salary.CreatedBy,
		salary.LastUpdatedAt,
		salary.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save salary: %w", mapPgError(err))
	}
	return nil
}

func (r *PgxPayrollRepository) FindSalaryByID(ctx context.Context, salaryID string) (*domain.SalaryDetail, error) {
	query := salaryDetailQuery + ` WHERE s.salary_id = $1;`
	salary, err := scanSalaryDetail(r.db.QueryRow(ctx, query, salaryID))
	if err != nil {
		return nil, fmt.Errorf("failed to find salary by ID: %w", err)
	}
	return salary, nil
}

func (r *PgxPayrollRepository) FindSalaries(ctx context.Context, filter portsrepo.ListSalariesFilter) ([]domain.SalaryDetail, error) {
	query := salaryDetailQuery + ` WHERE 1=1`
	args := []any{}

	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		query += fmt.Sprintf(" AND s.employee_id = $%d", len(args))
	}
	if filter.Month != nil {
		args = append(args, *filter.Month)
		query += fmt.Sprintf(" AND s.month = $%d", len(args))
	}
	if filter.Year != nil {
		args = append(args, *filter.Year)
		query += fmt.Sprintf(" AND s.year = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND s.status = $%d", len(args))
	}

	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY s.year DESC, s.month DESC, e.employee_code LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d;", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query salaries: %w", err)
	}
	defer rows.Close()

	var salaries []domain.SalaryDetail
	for rows.Next() {
		s, err := scanSalaryDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary row: %w", err)
		}
		salaries = append(salaries, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate salary rows: %w", err)
	}
	return salaries, nil
}

func (r *PgxPayrollRepository) UpdateSalary(ctx context.Context, salary domain.Salary) error {
	query := `
		UPDATE salaries
		SET base_amount = $2, allowances = $3, deductions = $4, net_amount = $5, notes = $6, last_updated_at = $7, last_updated_by = $8
		WHERE salary_id = $1 AND status = 'PENDING';
	`
	tag, err := r.db.Exec(ctx, query,
		salary.SalaryID,
		salary.BaseAmount,
		salary.Allowances,
		salary.Deductions,
		salary.NetAmount,
		salary.Notes,
		salary.LastUpdatedAt,
		salary.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update salary: %w", mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: salary %s is not PENDING", apperrors.ErrConflict, salary.SalaryID)
	}
	return nil
}

func (r *PgxPayrollRepository) MarkSalaryPaid(ctx context.Context, salaryID string, paymentDate time.Time, paymentMode domain.PaymentMode, referenceID string, updatedBy string, at time.Time) error {
	query := `
		UPDATE salaries
		SET status = 'PAID', payment_date = $2, payment_mode = $3, reference_id = $4, last_updated_at = $5, last_updated_by = $6
		WHERE salary_id = $1 AND status = 'PENDING';
	`
	tag, err := r.db.Exec(ctx, query, salaryID, paymentDate, paymentMode, referenceID, at, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to mark salary paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: salary %s is not PENDING", apperrors.ErrConflict, salaryID)
	}
	return nil
}

func (r *PgxPayrollRepository) CancelSalary(ctx context.Context, salaryID string, updatedBy string, at time.Time) error {
	query := `
		UPDATE salaries
		SET status = 'CANCELLED', last_updated_at = $2, last_updated_by = $3
		WHERE salary_id = $1 AND status = 'PENDING';
	`
	tag, err := r.db.Exec(ctx, query, salaryID, at, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to cancel salary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: salary %s is not PENDING", apperrors.ErrConflict, salaryID)
	}
	return nil
}
