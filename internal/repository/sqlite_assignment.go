package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/loadsheet/internal/db"
	"github.com/alexanderramin/loadsheet/internal/domain"
)

const dateLayout = domain.DateLayout

// assignmentColumns is the canonical SELECT column list for assignments.
const assignmentColumns = `id, employee_id, project_id, department, week_start_date,
		hours, scio_hours, external_hours, stage, comment, change_order_id,
		created_at, updated_at`

// SQLiteAssignmentRepo implements AssignmentRepo using a SQLite database.
// Every mutation bumps an in-process version counter so derived
// aggregates can detect staleness without re-reading the table.
type SQLiteAssignmentRepo struct {
	db      db.DBTX
	version atomic.Uint64
}

// NewSQLiteAssignmentRepo creates a new SQLiteAssignmentRepo.
func NewSQLiteAssignmentRepo(conn db.DBTX) *SQLiteAssignmentRepo {
	return &SQLiteAssignmentRepo{db: conn}
}

func (r *SQLiteAssignmentRepo) Version() uint64 {
	return r.version.Load()
}

func (r *SQLiteAssignmentRepo) bump() {
	r.version.Add(1)
}

func (r *SQLiteAssignmentRepo) Create(ctx context.Context, a *domain.Assignment) error {
	query := `INSERT INTO assignments (` + assignmentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.EmployeeID,
		a.ProjectID,
		string(a.Department),
		domain.WeekStart(a.WeekStart).Format(dateLayout),
		a.Hours,
		nullableFloatToValue(a.ScioHours),
		nullableFloatToValue(a.ExternalHours),
		string(a.Stage),
		a.Comment,
		a.ChangeOrderID,
		a.CreatedAt.UTC().Format(time.RFC3339),
		a.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting assignment: %w", err)
	}
	r.bump()
	return nil
}

func (r *SQLiteAssignmentRepo) GetByID(ctx context.Context, id string) (*domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	a, err := scanAssignment(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("assignment %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return a, nil
}

func (r *SQLiteAssignmentRepo) List(ctx context.Context) ([]domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments
		ORDER BY week_start_date, project_id, department`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing assignments: %w", err)
	}
	return collectAssignments(rows)
}

func (r *SQLiteAssignmentRepo) ListRange(ctx context.Context, from, to time.Time) ([]domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments
		WHERE week_start_date >= ? AND week_start_date < ?
		ORDER BY week_start_date, employee_id`
	rows, err := r.db.QueryContext(ctx, query,
		domain.WeekStart(from).Format(dateLayout),
		domain.WeekStart(to).Format(dateLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("listing assignments by range: %w", err)
	}
	return collectAssignments(rows)
}

func (r *SQLiteAssignmentRepo) ListCell(ctx context.Context, cell domain.CellRef) ([]domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments
		WHERE project_id = ? AND department = ? AND week_start_date = ?
		ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query,
		cell.ProjectID,
		string(cell.Department),
		domain.WeekStart(cell.WeekStart).Format(dateLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("listing cell assignments: %w", err)
	}
	return collectAssignments(rows)
}

func (r *SQLiteAssignmentRepo) ListByProjectDept(ctx context.Context, projectID string, dept domain.Department) ([]domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments
		WHERE project_id = ? AND department = ?
		ORDER BY week_start_date, employee_id`
	rows, err := r.db.QueryContext(ctx, query, projectID, string(dept))
	if err != nil {
		return nil, fmt.Errorf("listing assignments by project and department: %w", err)
	}
	return collectAssignments(rows)
}

func (r *SQLiteAssignmentRepo) ListByChangeOrder(ctx context.Context, changeOrderID string) ([]domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments
		WHERE change_order_id = ? ORDER BY week_start_date`
	rows, err := r.db.QueryContext(ctx, query, changeOrderID)
	if err != nil {
		return nil, fmt.Errorf("listing assignments by change order: %w", err)
	}
	return collectAssignments(rows)
}

func (r *SQLiteAssignmentRepo) FindInCell(ctx context.Context, cell domain.CellRef, employeeID string, stage domain.Stage, changeOrderID string) (*domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments
		WHERE project_id = ? AND department = ? AND week_start_date = ?
		AND employee_id = ? AND stage = ? AND change_order_id = ?
		ORDER BY created_at LIMIT 1`
	row := r.db.QueryRowContext(ctx, query,
		cell.ProjectID,
		string(cell.Department),
		domain.WeekStart(cell.WeekStart).Format(dateLayout),
		employeeID,
		string(stage),
		changeOrderID,
	)
	a, err := scanAssignment(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("assignment for employee %s: %w", employeeID, ErrNotFound)
		}
		return nil, err
	}
	return a, nil
}

func (r *SQLiteAssignmentRepo) Update(ctx context.Context, a *domain.Assignment) error {
	query := `UPDATE assignments SET employee_id = ?, hours = ?, scio_hours = ?,
		external_hours = ?, stage = ?, comment = ?, change_order_id = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		a.EmployeeID,
		a.Hours,
		nullableFloatToValue(a.ScioHours),
		nullableFloatToValue(a.ExternalHours),
		string(a.Stage),
		a.Comment,
		a.ChangeOrderID,
		nowUTC(),
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("updating assignment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("assignment %s: %w", a.ID, ErrNotFound)
	}
	r.bump()
	return nil
}

func (r *SQLiteAssignmentRepo) Zero(ctx context.Context, id string) error {
	query := `UPDATE assignments SET hours = 0, scio_hours = NULL, external_hours = NULL,
		stage = '', comment = '', change_order_id = '', updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("zeroing assignment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("assignment %s: %w", id, ErrNotFound)
	}
	r.bump()
	return nil
}

func (r *SQLiteAssignmentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM assignments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting assignment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("assignment %s: %w", id, ErrNotFound)
	}
	r.bump()
	return nil
}

func (r *SQLiteAssignmentRepo) DeleteCell(ctx context.Context, cell domain.CellRef) error {
	query := `DELETE FROM assignments
		WHERE project_id = ? AND department = ? AND week_start_date = ?`
	_, err := r.db.ExecContext(ctx, query,
		cell.ProjectID,
		string(cell.Department),
		domain.WeekStart(cell.WeekStart).Format(dateLayout),
	)
	if err != nil {
		return fmt.Errorf("clearing cell assignments: %w", err)
	}
	r.bump()
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssignment(row rowScanner) (*domain.Assignment, error) {
	var a domain.Assignment
	var dept, stage, weekStr, createdStr, updatedStr string
	var scio, external sql.NullFloat64

	err := row.Scan(
		&a.ID,
		&a.EmployeeID,
		&a.ProjectID,
		&dept,
		&weekStr,
		&a.Hours,
		&scio,
		&external,
		&stage,
		&a.Comment,
		&a.ChangeOrderID,
		&createdStr,
		&updatedStr,
	)
	if err != nil {
		return nil, err
	}

	a.Department = domain.Department(dept)
	a.Stage = domain.Stage(stage)
	a.ScioHours = parseNullableFloat(scio)
	a.ExternalHours = parseNullableFloat(external)

	if a.WeekStart, err = time.Parse(dateLayout, weekStr); err != nil {
		return nil, fmt.Errorf("parsing week_start_date: %w", err)
	}
	if a.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if a.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &a, nil
}

func collectAssignments(rows *sql.Rows) ([]domain.Assignment, error) {
	defer rows.Close()

	var assignments []domain.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning assignment: %w", err)
		}
		assignments = append(assignments, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assignments: %w", err)
	}
	return assignments, nil
}
