package service

import (
	"context"
	"time"

	"github.com/alexanderramin/loadsheet/internal/contract"
	"github.com/alexanderramin/loadsheet/internal/domain"
	"github.com/alexanderramin/loadsheet/internal/planner"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
	SetBudget(ctx context.Context, projectID string, dept domain.Department, hoursQuoted float64) error
}

type EmployeeService interface {
	Create(ctx context.Context, e *domain.Employee) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	List(ctx context.Context, dept domain.Department, includeInactive bool) ([]*domain.Employee, error)
	Update(ctx context.Context, e *domain.Employee) error
	Deactivate(ctx context.Context, id string) error
}

type CellService interface {
	EditCell(ctx context.Context, req contract.CellEditRequest) (*contract.CellEditResult, error)
	ClearCell(ctx context.Context, cell domain.CellRef) error
	CopyCell(ctx context.Context, cell domain.CellRef) (planner.ClipboardCell, error)
	PasteCell(ctx context.Context, snap planner.ClipboardCell, target domain.CellRef) (*contract.CellEditResult, error)
}

type SummaryService interface {
	Grid(ctx context.Context, req contract.GridRequest) (*contract.GridResponse, error)
	Utilization(ctx context.Context, projectID string, dept domain.Department) (*contract.UtilizationReport, error)
	CapacityRows(ctx context.Context, dept domain.Department, from, to time.Time) ([]contract.CapacityRow, error)
}

type CapacityService interface {
	SetDepartmentCapacity(ctx context.Context, dept domain.Department, week time.Time, capacity, pto, training float64) error
	SetTeamCapacity(ctx context.Context, teamKey string, week time.Time, capacity float64) error
	RegisterTeam(ctx context.Context, key string, dept domain.Department) error
	SetTeamActive(ctx context.Context, key string, active bool) error
	// Flush synchronously drains pending debounced writes; short-lived
	// callers run it before exit.
	Flush(ctx context.Context) error
}

type ChangeOrderService interface {
	Create(ctx context.Context, co *domain.ChangeOrder) error
	List(ctx context.Context, projectID string, dept domain.Department) ([]contract.ChangeOrderView, error)
	Delete(ctx context.Context, id string) error
}

type StageConfigService interface {
	Add(ctx context.Context, e *domain.StageConfigEntry) error
	ListByProject(ctx context.Context, projectID string) ([]domain.StageConfigEntry, error)
	Update(ctx context.Context, e *domain.StageConfigEntry) error
	Remove(ctx context.Context, id string) error
}
