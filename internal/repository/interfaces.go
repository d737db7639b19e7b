package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/loadsheet/internal/domain"
)

type AssignmentRepo interface {
	Create(ctx context.Context, a *domain.Assignment) error
	GetByID(ctx context.Context, id string) (*domain.Assignment, error)
	List(ctx context.Context) ([]domain.Assignment, error)
	ListRange(ctx context.Context, from, to time.Time) ([]domain.Assignment, error)
	ListCell(ctx context.Context, cell domain.CellRef) ([]domain.Assignment, error)
	ListByProjectDept(ctx context.Context, projectID string, dept domain.Department) ([]domain.Assignment, error)
	ListByChangeOrder(ctx context.Context, changeOrderID string) ([]domain.Assignment, error)
	// FindInCell locates an assignment by its natural key within a cell,
	// the recovery path for racing creates.
	FindInCell(ctx context.Context, cell domain.CellRef, employeeID string, stage domain.Stage, changeOrderID string) (*domain.Assignment, error)
	Update(ctx context.Context, a *domain.Assignment) error
	// Zero clears hours, split, stage, comment and change order on a
	// record, keeping the slot for reuse.
	Zero(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	// DeleteCell physically removes every record of a cell; used when
	// the user explicitly clears a cell.
	DeleteCell(ctx context.Context, cell domain.CellRef) error
	// Version is bumped on every mutation; the summary layer keys its
	// derived index cache on it.
	Version() uint64
}

type EmployeeRepo interface {
	Create(ctx context.Context, e *domain.Employee) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	GetByName(ctx context.Context, dept domain.Department, name string) (*domain.Employee, error)
	List(ctx context.Context, dept domain.Department, includeInactive bool) ([]*domain.Employee, error)
	Update(ctx context.Context, e *domain.Employee) error
	Delete(ctx context.Context, id string) error
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type ChangeOrderRepo interface {
	Create(ctx context.Context, c *domain.ChangeOrder) error
	GetByID(ctx context.Context, id string) (*domain.ChangeOrder, error)
	ListByProjectDept(ctx context.Context, projectID string, dept domain.Department) ([]domain.ChangeOrder, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.ChangeOrder, error)
	Delete(ctx context.Context, id string) error
}

type BudgetRepo interface {
	Upsert(ctx context.Context, b *domain.ProjectBudget) error
	GetByProjectDept(ctx context.Context, projectID string, dept domain.Department) (*domain.ProjectBudget, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.ProjectBudget, error)
}

type DepartmentCapacityRepo interface {
	Upsert(ctx context.Context, r *domain.DepartmentCapacityRecord) error
	Get(ctx context.Context, dept domain.Department, week time.Time) (*domain.DepartmentCapacityRecord, error)
	ListRange(ctx context.Context, dept domain.Department, from, to time.Time) ([]domain.DepartmentCapacityRecord, error)
	Delete(ctx context.Context, dept domain.Department, week time.Time) error
}

type ExternalTeamRepo interface {
	Upsert(ctx context.Context, t *domain.ExternalTeam) error
	Get(ctx context.Context, key string) (*domain.ExternalTeam, error)
	ListByDepartment(ctx context.Context, dept domain.Department) ([]domain.ExternalTeam, error)
	SetActive(ctx context.Context, key string, active bool) error
}

type ExternalTeamCapacityRepo interface {
	Upsert(ctx context.Context, r *domain.ExternalTeamCapacityRecord) error
	Get(ctx context.Context, teamKey string, week time.Time) (*domain.ExternalTeamCapacityRecord, error)
	ListWeek(ctx context.Context, week time.Time) ([]domain.ExternalTeamCapacityRecord, error)
	Delete(ctx context.Context, teamKey string, week time.Time) error
}

type StageConfigRepo interface {
	Create(ctx context.Context, e *domain.StageConfigEntry) error
	ListByProjectDept(ctx context.Context, projectID string, dept domain.Department) ([]domain.StageConfigEntry, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.StageConfigEntry, error)
	Update(ctx context.Context, e *domain.StageConfigEntry) error
	Delete(ctx context.Context, id string) error
}
