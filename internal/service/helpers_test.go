package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/loadsheet/internal/config"
	"github.com/alexanderramin/loadsheet/internal/domain"
	"github.com/alexanderramin/loadsheet/internal/repository"
	"github.com/alexanderramin/loadsheet/internal/testutil"
)

// fixtures bundles the repos and services wired over one test database.
type fixtures struct {
	db *sql.DB

	assignments  *repository.SQLiteAssignmentRepo
	employees    *repository.SQLiteEmployeeRepo
	projects     *repository.SQLiteProjectRepo
	changeOrders *repository.SQLiteChangeOrderRepo
	budgets      *repository.SQLiteBudgetRepo
	deptCapacity *repository.SQLiteDepartmentCapacityRepo
	teams        *repository.SQLiteExternalTeamRepo
	teamCapacity *repository.SQLiteExternalTeamCapacityRepo
	stageConfig  *repository.SQLiteStageConfigRepo

	cells     CellService
	summaries SummaryService
	capacity  CapacityService
	orders    ChangeOrderService
}

func newFixtures(t *testing.T) *fixtures {
	t.Helper()
	database := testutil.NewTestDB(t)
	cfg := config.Default()

	f := &fixtures{
		db:           database,
		assignments:  repository.NewSQLiteAssignmentRepo(database),
		employees:    repository.NewSQLiteEmployeeRepo(database),
		projects:     repository.NewSQLiteProjectRepo(database),
		changeOrders: repository.NewSQLiteChangeOrderRepo(database),
		budgets:      repository.NewSQLiteBudgetRepo(database),
		deptCapacity: repository.NewSQLiteDepartmentCapacityRepo(database),
		teams:        repository.NewSQLiteExternalTeamRepo(database),
		teamCapacity: repository.NewSQLiteExternalTeamCapacityRepo(database),
		stageConfig:  repository.NewSQLiteStageConfigRepo(database),
	}
	f.cells = NewCellService(f.assignments, f.employees, f.changeOrders)
	f.summaries = NewSummaryService(
		f.assignments, f.projects, f.budgets, f.changeOrders,
		f.deptCapacity, f.teams, f.teamCapacity, f.stageConfig,
		cfg.Vocabulary(), cfg.Aggregator(),
	)
	// Synchronous writes in tests: coalescing behavior is covered by the
	// debouncer tests directly.
	f.capacity = NewCapacityService(f.deptCapacity, f.teams, f.teamCapacity, 0)
	f.orders = NewChangeOrderService(f.changeOrders, f.assignments, testutil.NewTestUoW(database))
	return f
}

func (f *fixtures) seedProject(t *testing.T) *domain.Project {
	t.Helper()
	p := testutil.NewTestProject("Body Shop Line 2")
	require.NoError(t, f.projects.Create(context.Background(), p))
	return p
}

func (f *fixtures) seedEmployee(t *testing.T, name string, dept domain.Department, opts ...testutil.EmployeeOption) *domain.Employee {
	t.Helper()
	e := testutil.NewTestEmployee(name, dept, opts...)
	require.NoError(t, f.employees.Create(context.Background(), e))
	return e
}

func thisWeek() time.Time {
	return domain.WeekStart(time.Now().UTC())
}
