package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/loadsheet/internal/db"
	"github.com/alexanderramin/loadsheet/internal/domain"
)

// SQLiteExternalTeamRepo implements ExternalTeamRepo using a SQLite database.
type SQLiteExternalTeamRepo struct {
	db db.DBTX
}

// NewSQLiteExternalTeamRepo creates a new SQLiteExternalTeamRepo.
func NewSQLiteExternalTeamRepo(conn db.DBTX) *SQLiteExternalTeamRepo {
	return &SQLiteExternalTeamRepo{db: conn}
}

func (r *SQLiteExternalTeamRepo) Upsert(ctx context.Context, t *domain.ExternalTeam) error {
	query := `INSERT INTO external_teams (key, department, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key)
		DO UPDATE SET department = excluded.department, active = excluded.active,
			updated_at = excluded.updated_at`
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := r.db.ExecContext(ctx, query,
		t.Key,
		string(t.Department),
		boolToInt(t.Active),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("upserting external team: %w", err)
	}
	return nil
}

func (r *SQLiteExternalTeamRepo) Get(ctx context.Context, key string) (*domain.ExternalTeam, error) {
	query := `SELECT key, department, active, created_at, updated_at
		FROM external_teams WHERE key = ?`
	t, err := scanExternalTeam(r.db.QueryRowContext(ctx, query, key))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("external team %q: %w", key, ErrNotFound)
		}
		return nil, err
	}
	return t, nil
}

func (r *SQLiteExternalTeamRepo) ListByDepartment(ctx context.Context, dept domain.Department) ([]domain.ExternalTeam, error) {
	query := `SELECT key, department, active, created_at, updated_at
		FROM external_teams WHERE department = ? ORDER BY key`
	rows, err := r.db.QueryContext(ctx, query, string(dept))
	if err != nil {
		return nil, fmt.Errorf("listing external teams: %w", err)
	}
	defer rows.Close()

	var teams []domain.ExternalTeam
	for rows.Next() {
		t, err := scanExternalTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning external team: %w", err)
		}
		teams = append(teams, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating external teams: %w", err)
	}
	return teams, nil
}

func (r *SQLiteExternalTeamRepo) SetActive(ctx context.Context, key string, active bool) error {
	query := `UPDATE external_teams SET active = ?, updated_at = ? WHERE key = ?`
	res, err := r.db.ExecContext(ctx, query, boolToInt(active), nowUTC(), key)
	if err != nil {
		return fmt.Errorf("setting external team active: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("external team %q: %w", key, ErrNotFound)
	}
	return nil
}

func scanExternalTeam(row rowScanner) (*domain.ExternalTeam, error) {
	var t domain.ExternalTeam
	var dept, createdStr, updatedStr string
	var active int

	err := row.Scan(&t.Key, &dept, &active, &createdStr, &updatedStr)
	if err != nil {
		return nil, err
	}

	t.Department = domain.Department(dept)
	t.Active = intToBool(active)
	if t.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if t.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &t, nil
}

// SQLiteExternalTeamCapacityRepo implements ExternalTeamCapacityRepo using
// a SQLite database.
type SQLiteExternalTeamCapacityRepo struct {
	db db.DBTX
}

// NewSQLiteExternalTeamCapacityRepo creates a new SQLiteExternalTeamCapacityRepo.
func NewSQLiteExternalTeamCapacityRepo(conn db.DBTX) *SQLiteExternalTeamCapacityRepo {
	return &SQLiteExternalTeamCapacityRepo{db: conn}
}

const teamCapacityColumns = `id, team_key, week_start_date, capacity, created_at, updated_at`

func (r *SQLiteExternalTeamCapacityRepo) Upsert(ctx context.Context, rec *domain.ExternalTeamCapacityRecord) error {
	query := `INSERT INTO external_team_capacity (` + teamCapacityColumns + `)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(team_key, week_start_date)
		DO UPDATE SET capacity = excluded.capacity, updated_at = excluded.updated_at`
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.TeamKey,
		domain.WeekStart(rec.WeekStart).Format(dateLayout),
		rec.Capacity,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("upserting external team capacity: %w", err)
	}
	return nil
}

func (r *SQLiteExternalTeamCapacityRepo) Get(ctx context.Context, teamKey string, week time.Time) (*domain.ExternalTeamCapacityRecord, error) {
	query := `SELECT ` + teamCapacityColumns + ` FROM external_team_capacity
		WHERE team_key = ? AND week_start_date = ?`
	rec, err := scanTeamCapacity(r.db.QueryRowContext(ctx, query,
		teamKey, domain.WeekStart(week).Format(dateLayout)))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("capacity for team %q week %s: %w",
				teamKey, domain.DateKey(week), ErrNotFound)
		}
		return nil, err
	}
	return rec, nil
}

func (r *SQLiteExternalTeamCapacityRepo) ListWeek(ctx context.Context, week time.Time) ([]domain.ExternalTeamCapacityRecord, error) {
	query := `SELECT ` + teamCapacityColumns + ` FROM external_team_capacity
		WHERE week_start_date = ? ORDER BY team_key`
	rows, err := r.db.QueryContext(ctx, query, domain.WeekStart(week).Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing external team capacity: %w", err)
	}
	defer rows.Close()

	var records []domain.ExternalTeamCapacityRecord
	for rows.Next() {
		rec, err := scanTeamCapacity(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning external team capacity: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating external team capacity: %w", err)
	}
	return records, nil
}

func (r *SQLiteExternalTeamCapacityRepo) Delete(ctx context.Context, teamKey string, week time.Time) error {
	query := `DELETE FROM external_team_capacity
		WHERE team_key = ? AND week_start_date = ?`
	_, err := r.db.ExecContext(ctx, query,
		teamKey, domain.WeekStart(week).Format(dateLayout))
	if err != nil {
		return fmt.Errorf("deleting external team capacity: %w", err)
	}
	return nil
}

func scanTeamCapacity(row rowScanner) (*domain.ExternalTeamCapacityRecord, error) {
	var rec domain.ExternalTeamCapacityRecord
	var weekStr, createdStr, updatedStr string

	err := row.Scan(&rec.ID, &rec.TeamKey, &weekStr, &rec.Capacity, &createdStr, &updatedStr)
	if err != nil {
		return nil, err
	}

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
