package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/loadsheet/internal/db"
	"github.com/alexanderramin/loadsheet/internal/domain"
)

const changeOrderColumns = `id, project_id, department, name, hours_quoted, created_at`

// SQLiteChangeOrderRepo implements ChangeOrderRepo using a SQLite database.
// Change orders are immutable: there is no Update.
type SQLiteChangeOrderRepo struct {
	db db.DBTX
}

// NewSQLiteChangeOrderRepo creates a new SQLiteChangeOrderRepo.
func NewSQLiteChangeOrderRepo(conn db.DBTX) *SQLiteChangeOrderRepo {
	return &SQLiteChangeOrderRepo{db: conn}
}

func (r *SQLiteChangeOrderRepo) Create(ctx context.Context, c *domain.ChangeOrder) error {
	query := `INSERT INTO change_orders (` + changeOrderColumns + `)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.ProjectID,
		string(c.Department),
		c.Name,
		c.HoursQuoted,
		c.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting change order: %w", err)
	}
	return nil
}

func (r *SQLiteChangeOrderRepo) GetByID(ctx context.Context, id string) (*domain.ChangeOrder, error) {
	query := `SELECT ` + changeOrderColumns + ` FROM change_orders WHERE id = ?`
	c, err := scanChangeOrder(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("change order %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return c, nil
}

func (r *SQLiteChangeOrderRepo) ListByProjectDept(ctx context.Context, projectID string, dept domain.Department) ([]domain.ChangeOrder, error) {
	query := `SELECT ` + changeOrderColumns + ` FROM change_orders
		WHERE project_id = ? AND department = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, projectID, string(dept))
	if err != nil {
		return nil, fmt.Errorf("listing change orders: %w", err)
	}
	return collectChangeOrders(rows)
}

func (r *SQLiteChangeOrderRepo) ListByProject(ctx context.Context, projectID string) ([]domain.ChangeOrder, error) {
	query := `SELECT ` + changeOrderColumns + ` FROM change_orders
		WHERE project_id = ? ORDER BY department, created_at`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing change orders by project: %w", err)
	}
	return collectChangeOrders(rows)
}

func (r *SQLiteChangeOrderRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM change_orders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting change order: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("change order %s: %w", id, ErrNotFound)
	}
	return nil
}

func scanChangeOrder(row rowScanner) (*domain.ChangeOrder, error) {
	var c domain.ChangeOrder
	var dept, createdStr string

	err := row.Scan(&c.ID, &c.ProjectID, &dept, &c.Name, &c.HoursQuoted, &createdStr)
	if err != nil {
		return nil, err
	}

	c.Department = domain.Department(dept)
	if c.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &c, nil
}

func collectChangeOrders(rows *sql.Rows) ([]domain.ChangeOrder, error) {
	defer rows.Close()

	var orders []domain.ChangeOrder
	for rows.Next() {
		c, err := scanChangeOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning change order: %w", err)
		}
		orders = append(orders, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating change orders: %w", err)
	}
	return orders, nil
}
