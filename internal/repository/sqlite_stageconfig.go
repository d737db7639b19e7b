package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/loadsheet/internal/db"
	"github.com/alexanderramin/loadsheet/internal/domain"
)

const stageConfigColumns = `id, project_id, department, stage, week_start, week_end,
		department_start_date, duration_weeks, created_at, updated_at`

// SQLiteStageConfigRepo implements StageConfigRepo using a SQLite database.
type SQLiteStageConfigRepo struct {
	db db.DBTX
}

// NewSQLiteStageConfigRepo creates a new SQLiteStageConfigRepo.
func NewSQLiteStageConfigRepo(conn db.DBTX) *SQLiteStageConfigRepo {
	return &SQLiteStageConfigRepo{db: conn}
}

func (r *SQLiteStageConfigRepo) Create(ctx context.Context, e *domain.StageConfigEntry) error {
	query := `INSERT INTO stage_config (` + stageConfigColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.ProjectID,
		string(e.Department),
		string(e.Stage),
		e.WeekStart,
		e.WeekEnd,
		nullableTimeToString(e.DepartmentStartDate, dateLayout),
		nullableIntToValue(e.DurationWeeks),
		e.CreatedAt.UTC().Format(time.RFC3339),
		e.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting stage config entry: %w", err)
	}
	return nil
}

func (r *SQLiteStageConfigRepo) ListByProjectDept(ctx context.Context, projectID string, dept domain.Department) ([]domain.StageConfigEntry, error) {
	query := `SELECT ` + stageConfigColumns + ` FROM stage_config
		WHERE project_id = ? AND department = ? ORDER BY week_start, created_at`
	rows, err := r.db.QueryContext(ctx, query, projectID, string(dept))
	if err != nil {
		return nil, fmt.Errorf("listing stage config: %w", err)
	}
	return collectStageConfig(rows)
}

func (r *SQLiteStageConfigRepo) ListByProject(ctx context.Context, projectID string) ([]domain.StageConfigEntry, error) {
	query := `SELECT ` + stageConfigColumns + ` FROM stage_config
		WHERE project_id = ? ORDER BY department, week_start`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing stage config by project: %w", err)
	}
	return collectStageConfig(rows)
}

func (r *SQLiteStageConfigRepo) Update(ctx context.Context, e *domain.StageConfigEntry) error {
	query := `UPDATE stage_config SET stage = ?, week_start = ?, week_end = ?,
		department_start_date = ?, duration_weeks = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		string(e.Stage),
		e.WeekStart,
		e.WeekEnd,
		nullableTimeToString(e.DepartmentStartDate, dateLayout),
		nullableIntToValue(e.DurationWeeks),
		nowUTC(),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating stage config entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("stage config entry %s: %w", e.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteStageConfigRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM stage_config WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting stage config entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("stage config entry %s: %w", id, ErrNotFound)
	}
	return nil
}

func collectStageConfig(rows *sql.Rows) ([]domain.StageConfigEntry, error) {
	defer rows.Close()

	var entries []domain.StageConfigEntry
	for rows.Next() {
		e, err := scanStageConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning stage config entry: %w", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stage config: %w", err)
	}
	return entries, nil
}

func scanStageConfig(row rowScanner) (*domain.StageConfigEntry, error) {
	var e domain.StageConfigEntry
	var dept, stage, createdStr, updatedStr string
	var deptStart sql.NullString
	var duration sql.NullInt64

	err := row.Scan(
		&e.ID,
		&e.ProjectID,
		&dept,
		&stage,
		&e.WeekStart,
		&e.WeekEnd,
		&deptStart,
		&duration,
		&createdStr,
		&updatedStr,
	)
	if err != nil {
		return nil, err
	}

	e.Department = domain.Department(dept)
	e.Stage = domain.Stage(stage)
	e.DepartmentStartDate = parseNullableTime(deptStart, dateLayout)
	e.DurationWeeks = parseNullableInt(duration)

	if e.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if e.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &e, nil
}
