package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id              TEXT PRIMARY KEY,
		name            TEXT NOT NULL,
		client          TEXT NOT NULL DEFAULT '',
		start_date      TEXT NOT NULL,
		end_date        TEXT NOT NULL,
		facility        TEXT NOT NULL DEFAULT 'AL'
		                CHECK(facility IN ('AL','MI','MX')),
		number_of_weeks INTEGER NOT NULL DEFAULT 1,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS employees (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		role          TEXT NOT NULL DEFAULT '',
		department    TEXT NOT NULL
		              CHECK(department IN ('PM','MED','HD','MFG','BUILD','PRG')),
		capacity      REAL NOT NULL DEFAULT 0,
		is_active     INTEGER NOT NULL DEFAULT 1,
		is_external   INTEGER NOT NULL DEFAULT 0,
		external_team TEXT NOT NULL DEFAULT '',
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	// The unique (department, name) pair backs idempotent placeholder
	// provisioning: racing creates collapse onto the existing row.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_employees_dept_name
		ON employees(department, name)`,

	`CREATE INDEX IF NOT EXISTS idx_employees_department ON employees(department)`,

	`CREATE TABLE IF NOT EXISTS assignments (
		id              TEXT PRIMARY KEY,
		employee_id     TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		project_id      TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		department      TEXT NOT NULL,
		week_start_date TEXT NOT NULL,
		hours           REAL NOT NULL DEFAULT 0,
		scio_hours      REAL,
		external_hours  REAL,
		stage           TEXT NOT NULL DEFAULT '',
		comment         TEXT NOT NULL DEFAULT '',
		change_order_id TEXT NOT NULL DEFAULT '',
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_assignments_week ON assignments(week_start_date)`,

	// Backs the create-conflict recovery path: two writers racing on the
	// same (cell, employee, stage, change order) slot collapse onto one
	// row. Zeroed rows are excluded so stale slots never collide.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_assignments_natural_key
		ON assignments(project_id, department, week_start_date, employee_id, stage, change_order_id)
		WHERE hours != 0 OR scio_hours IS NOT NULL OR external_hours IS NOT NULL`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_cell
		ON assignments(project_id, department, week_start_date)`,

	`CREATE TABLE IF NOT EXISTS change_orders (
		id           TEXT PRIMARY KEY,
		project_id   TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		department   TEXT NOT NULL,
		name         TEXT NOT NULL,
		hours_quoted REAL NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_change_orders_project_dept
		ON change_orders(project_id, department)`,

	`CREATE TABLE IF NOT EXISTS project_budgets (
		id           TEXT PRIMARY KEY,
		project_id   TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		department   TEXT NOT NULL,
		hours_quoted REAL NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL,
		UNIQUE(project_id, department)
	)`,

	`CREATE TABLE IF NOT EXISTS department_capacity (
		id              TEXT PRIMARY KEY,
		department      TEXT NOT NULL,
		week_start_date TEXT NOT NULL,
		capacity        REAL NOT NULL DEFAULT 0,
		pto             REAL NOT NULL DEFAULT 0,
		training        REAL NOT NULL DEFAULT 0,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL,
		UNIQUE(department, week_start_date)
	)`,

	`CREATE TABLE IF NOT EXISTS external_teams (
		key        TEXT PRIMARY KEY,
		department TEXT NOT NULL,
		active     INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS external_team_capacity (
		id              TEXT PRIMARY KEY,
		team_key        TEXT NOT NULL REFERENCES external_teams(key) ON DELETE CASCADE,
		week_start_date TEXT NOT NULL,
		capacity        REAL NOT NULL DEFAULT 0,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL,
		UNIQUE(team_key, week_start_date)
	)`,

	`CREATE TABLE IF NOT EXISTS stage_config (
		id                    TEXT PRIMARY KEY,
		project_id            TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		department            TEXT NOT NULL,
		stage                 TEXT NOT NULL DEFAULT '',
		week_start            INTEGER NOT NULL DEFAULT 1,
		week_end              INTEGER NOT NULL DEFAULT 1,
		department_start_date TEXT,
		duration_weeks        INTEGER,
		created_at            TEXT NOT NULL,
		updated_at            TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_stage_config_project_dept
		ON stage_config(project_id, department)`,
}
