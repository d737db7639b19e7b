package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/loadsheet/internal/db"
	"github.com/alexanderramin/loadsheet/internal/domain"
)

const employeeColumns = `id, name, role, department, capacity, is_active,
		is_external, external_team, created_at, updated_at`

// SQLiteEmployeeRepo implements EmployeeRepo using a SQLite database.
type SQLiteEmployeeRepo struct {
	db db.DBTX
}

// NewSQLiteEmployeeRepo creates a new SQLiteEmployeeRepo.
func NewSQLiteEmployeeRepo(conn db.DBTX) *SQLiteEmployeeRepo {
	return &SQLiteEmployeeRepo{db: conn}
}

func (r *SQLiteEmployeeRepo) Create(ctx context.Context, e *domain.Employee) error {
	query := `INSERT INTO employees (` + employeeColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.Name,
		e.Role,
		string(e.Department),
		e.Capacity,
		boolToInt(e.IsActive),
		boolToInt(e.IsExternal),
		e.ExternalTeam,
		e.CreatedAt.UTC().Format(time.RFC3339),
		e.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting employee: %w", err)
	}
	return nil
}

func (r *SQLiteEmployeeRepo) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = ?`
	e, err := scanEmployee(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("employee %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return e, nil
}

func (r *SQLiteEmployeeRepo) GetByName(ctx context.Context, dept domain.Department, name string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees
		WHERE department = ? AND name = ?`
	e, err := scanEmployee(r.db.QueryRowContext(ctx, query, string(dept), name))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("employee %q in %s: %w", name, dept, ErrNotFound)
		}
		return nil, err
	}
	return e, nil
}

func (r *SQLiteEmployeeRepo) List(ctx context.Context, dept domain.Department, includeInactive bool) ([]*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE department = ?`
	if !includeInactive {
		query += ` AND is_active = 1`
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, string(dept))
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	defer rows.Close()

	var employees []*domain.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating employees: %w", err)
	}
	return employees, nil
}

func (r *SQLiteEmployeeRepo) Update(ctx context.Context, e *domain.Employee) error {
	query := `UPDATE employees SET name = ?, role = ?, capacity = ?, is_active = ?,
		is_external = ?, external_team = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		e.Name,
		e.Role,
		e.Capacity,
		boolToInt(e.IsActive),
		boolToInt(e.IsExternal),
		e.ExternalTeam,
		nowUTC(),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating employee: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("employee %s: %w", e.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteEmployeeRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting employee: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("employee %s: %w", id, ErrNotFound)
	}
	return nil
}

func scanEmployee(row rowScanner) (*domain.Employee, error) {
	var e domain.Employee
	var dept, createdStr, updatedStr string
	var active, external int

	err := row.Scan(
		&e.ID,
		&e.Name,
		&e.Role,
		&dept,
		&e.Capacity,
		&active,
		&external,
		&e.ExternalTeam,
		&createdStr,
		&updatedStr,
	)
	if err != nil {
		return nil, err
	}

	e.Department = domain.Department(dept)
	e.IsActive = intToBool(active)
	e.IsExternal = intToBool(external)

	if e.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if e.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &e, nil
}
