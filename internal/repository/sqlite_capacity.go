package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/loadsheet/internal/db"
	"github.com/alexanderramin/loadsheet/internal/domain"
)

const departmentCapacityColumns = `id, department, week_start_date, capacity,
		pto, training, created_at, updated_at`

// SQLiteDepartmentCapacityRepo implements DepartmentCapacityRepo using a
// SQLite database. Rows are keyed by the (department, week) natural key;
// Upsert replaces the numeric triple in place.
type SQLiteDepartmentCapacityRepo struct {
	db db.DBTX
}

// NewSQLiteDepartmentCapacityRepo creates a new SQLiteDepartmentCapacityRepo.
func NewSQLiteDepartmentCapacityRepo(conn db.DBTX) *SQLiteDepartmentCapacityRepo {
	return &SQLiteDepartmentCapacityRepo{db: conn}
}

func (r *SQLiteDepartmentCapacityRepo) Upsert(ctx context.Context, rec *domain.DepartmentCapacityRecord) error {
	query := `INSERT INTO department_capacity (` + departmentCapacityColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(department, week_start_date)
		DO UPDATE SET capacity = excluded.capacity, pto = excluded.pto,
			training = excluded.training, updated_at = excluded.updated_at`
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		string(rec.Department),
		domain.WeekStart(rec.WeekStart).Format(dateLayout),
		rec.Capacity,
		rec.PTO,
		rec.Training,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("upserting department capacity: %w", err)
	}
	return nil
}

func (r *SQLiteDepartmentCapacityRepo) Get(ctx context.Context, dept domain.Department, week time.Time) (*domain.DepartmentCapacityRecord, error) {
	query := `SELECT ` + departmentCapacityColumns + ` FROM department_capacity
		WHERE department = ? AND week_start_date = ?`
	rec, err := scanDepartmentCapacity(r.db.QueryRowContext(ctx, query,
		string(dept), domain.WeekStart(week).Format(dateLayout)))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("capacity for %s week %s: %w",
				dept, domain.DateKey(week), ErrNotFound)
		}
		return nil, err
	}
	return rec, nil
}

func (r *SQLiteDepartmentCapacityRepo) ListRange(ctx context.Context, dept domain.Department, from, to time.Time) ([]domain.DepartmentCapacityRecord, error) {
	query := `SELECT ` + departmentCapacityColumns + ` FROM department_capacity
		WHERE department = ? AND week_start_date >= ? AND week_start_date < ?
		ORDER BY week_start_date`
	rows, err := r.db.QueryContext(ctx, query,
		string(dept),
		domain.WeekStart(from).Format(dateLayout),
		domain.WeekStart(to).Format(dateLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("listing department capacity: %w", err)
	}
	defer rows.Close()

	var records []domain.DepartmentCapacityRecord
	for rows.Next() {
		rec, err := scanDepartmentCapacity(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning department capacity: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating department capacity: %w", err)
	}
	return records, nil
}

func (r *SQLiteDepartmentCapacityRepo) Delete(ctx context.Context, dept domain.Department, week time.Time) error {
	query := `DELETE FROM department_capacity
		WHERE department = ? AND week_start_date = ?`
	_, err := r.db.ExecContext(ctx, query,
		string(dept), domain.WeekStart(week).Format(dateLayout))
	if err != nil {
		return fmt.Errorf("deleting department capacity: %w", err)
	}
	return nil
}

func scanDepartmentCapacity(row rowScanner) (*domain.DepartmentCapacityRecord, error) {
	var rec domain.DepartmentCapacityRecord
	var dept, weekStr, createdStr, updatedStr string

	err := row.Scan(
		&rec.ID,
		&dept,
		&weekStr,
		&rec.Capacity,
		&rec.PTO,
		&rec.Training,
		&createdStr,
		&updatedStr,
	)
	if err != nil {
		return nil, err
	}

	rec.Department = domain.Department(dept)
	if rec.WeekStart, err = time.Parse(dateLayout, weekStr); err != nil {
		return nil, fmt.Errorf("parsing week_start_date: %w", err)
	}
	if rec.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if rec.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &rec, nil
}
