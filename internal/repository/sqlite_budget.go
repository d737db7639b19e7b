package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/loadsheet/internal/db"
	"github.com/alexanderramin/loadsheet/internal/domain"
)

const budgetColumns = `id, project_id, department, hours_quoted, created_at, updated_at`

// SQLiteBudgetRepo implements BudgetRepo using a SQLite database.
type SQLiteBudgetRepo struct {
	db db.DBTX
}

// NewSQLiteBudgetRepo creates a new SQLiteBudgetRepo.
func NewSQLiteBudgetRepo(conn db.DBTX) *SQLiteBudgetRepo {
	return &SQLiteBudgetRepo{db: conn}
}

// Upsert writes the quoted baseline for a (project, department) pair,
// replacing the quoted hours if a row already exists.
func (r *SQLiteBudgetRepo) Upsert(ctx context.Context, b *domain.ProjectBudget) error {
	query := `INSERT INTO project_budgets (` + budgetColumns + `)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(project_id, department)
		DO UPDATE SET hours_quoted = excluded.hours_quoted, updated_at = excluded.updated_at`
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := r.db.ExecContext(ctx, query,
		b.ID,
		b.ProjectID,
		string(b.Department),
		b.HoursQuoted,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("upserting project budget: %w", err)
	}
	return nil
}

func (r *SQLiteBudgetRepo) GetByProjectDept(ctx context.Context, projectID string, dept domain.Department) (*domain.ProjectBudget, error) {
	query := `SELECT ` + budgetColumns + ` FROM project_budgets
		WHERE project_id = ? AND department = ?`
	b, err := scanBudget(r.db.QueryRowContext(ctx, query, projectID, string(dept)))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("budget for %s/%s: %w", projectID, dept, ErrNotFound)
		}
		return nil, err
	}
	return b, nil
}

func (r *SQLiteBudgetRepo) ListByProject(ctx context.Context, projectID string) ([]domain.ProjectBudget, error) {
	query := `SELECT ` + budgetColumns + ` FROM project_budgets
		WHERE project_id = ? ORDER BY department`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing project budgets: %w", err)
	}
	defer rows.Close()

	var budgets []domain.ProjectBudget
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning project budget: %w", err)
		}
		budgets = append(budgets, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating project budgets: %w", err)
	}
	return budgets, nil
}

func scanBudget(row rowScanner) (*domain.ProjectBudget, error) {
	var b domain.ProjectBudget
	var dept, createdStr, updatedStr string

	err := row.Scan(&b.ID, &b.ProjectID, &dept, &b.HoursQuoted, &createdStr, &updatedStr)
	if err != nil {
		return nil, err
	}

	b.Department = domain.Department(dept)
	if b.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if b.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &b, nil
}
