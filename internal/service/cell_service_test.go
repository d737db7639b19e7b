package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/loadsheet/internal/contract"
	"github.com/alexanderramin/loadsheet/internal/domain"
	"github.com/alexanderramin/loadsheet/internal/planner"
	"github.com/alexanderramin/loadsheet/internal/repository"
	"github.com/alexanderramin/loadsheet/internal/testutil"
)

func TestCellService_EditProvisionsPlaceholder(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()
	project := f.seedProject(t)

	result, err := f.cells.EditCell(ctx, contract.CellEditRequest{
		ProjectID:  project.ID,
		Department: domain.DeptMED,
		Week:       thisWeek(),
		TotalHours: 40,
		Stage:      domain.StageConcept,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)

	placeholder, err := f.employees.GetByName(ctx, domain.DeptMED, domain.PlaceholderName(domain.DeptMED))
	require.NoError(t, err)
	assert.True(t, placeholder.IsPlaceholder())

	records, err := f.assignments.ListCell(ctx, domain.CellRef{
		ProjectID: project.ID, Department: domain.DeptMED, WeekStart: thisWeek(),
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, placeholder.ID, records[0].EmployeeID)
	assert.Equal(t, 40.0, records[0].Hours)

	// The second edit of the same department reuses the provisioned row.
	_, err = f.cells.EditCell(ctx, contract.CellEditRequest{
		ProjectID:  project.ID,
		Department: domain.DeptMED,
		Week:       testutil.Week(thisWeek(), 1),
		TotalHours: 16,
	})
	require.NoError(t, err)
	all, err := f.employees.List(ctx, domain.DeptMED, true)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCellService_EditSplitsAcrossSelection(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()
	project := f.seedProject(t)
	a := f.seedEmployee(t, "Ana", domain.DeptHD)
	b := f.seedEmployee(t, "Bo", domain.DeptHD)
	c := f.seedEmployee(t, "Cy", domain.DeptHD)

	result, err := f.cells.EditCell(ctx, contract.CellEditRequest{
		ProjectID:   project.ID,
		Department:  domain.DeptHD,
		Week:        thisWeek(),
		TotalHours:  40,
		Stage:       domain.StageControlsDesign,
		EmployeeIDs: []string{a.ID, b.ID, c.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Created)

	records, err := f.assignments.ListCell(ctx, domain.CellRef{
		ProjectID: project.ID, Department: domain.DeptHD, WeekStart: thisWeek(),
	})
	require.NoError(t, err)
	require.Len(t, records, 3)
	var total float64
	for _, r := range records {
		total += r.Hours
	}
	assert.InDelta(t, 40.0, total, 1e-9)
}

func TestCellService_EditIsIdempotent(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()
	project := f.seedProject(t)
	e := f.seedEmployee(t, "Dana", domain.DeptMFG)

	req := contract.CellEditRequest{
		ProjectID:   project.ID,
		Department:  domain.DeptMFG,
		Week:        thisWeek(),
		TotalHours:  24,
		Stage:       domain.StageCabinetsFrames,
		EmployeeIDs: []string{e.ID},
		Comment:     "weld fixtures",
	}
	first, err := f.cells.EditCell(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Created)

	second, err := f.cells.EditCell(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, &contract.CellEditResult{}, second)
}

func TestCellService_ZeroTotalCollapsesCell(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()
	project := f.seedProject(t)
	e := f.seedEmployee(t, "Dana", domain.DeptPM)

	_, err := f.cells.EditCell(ctx, contract.CellEditRequest{
		ProjectID:   project.ID,
		Department:  domain.DeptPM,
		Week:        thisWeek(),
		TotalHours:  10,
		EmployeeIDs: []string{e.ID},
	})
	require.NoError(t, err)

	result, err := f.cells.EditCell(ctx, contract.CellEditRequest{
		ProjectID:  project.ID,
		Department: domain.DeptPM,
		Week:       thisWeek(),
		TotalHours: 0,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Zeroed)

	records, err := f.assignments.ListCell(ctx, domain.CellRef{
		ProjectID: project.ID, Department: domain.DeptPM, WeekStart: thisWeek(),
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].IsEmpty())
}

func TestCellService_ChangeOrderModeRequiresSelection(t *testing.T) {
	f := newFixtures(t)
	project := f.seedProject(t)

	_, err := f.cells.EditCell(context.Background(), contract.CellEditRequest{
		ProjectID:      project.ID,
		Department:     domain.DeptMED,
		Week:           thisWeek(),
		TotalHours:     8,
		UseChangeOrder: true,
	})
	assert.ErrorIs(t, err, ErrChangeOrderRequired)
}

func TestCellService_RejectsForeignChangeOrder(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()
	project := f.seedProject(t)
	other := testutil.NewTestProject("Other Line")
	require.NoError(t, f.projects.Create(ctx, other))

	co := testutil.NewTestChangeOrder(other.ID, domain.DeptMED, "CO-1", 50)
	require.NoError(t, f.changeOrders.Create(ctx, co))

	_, err := f.cells.EditCell(ctx, contract.CellEditRequest{
		ProjectID:      project.ID,
		Department:     domain.DeptMED,
		Week:           thisWeek(),
		TotalHours:     8,
		UseChangeOrder: true,
		ChangeOrderID:  co.ID,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not belong")
}

func TestCellService_InternalHoursLockSurfaces(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()
	project := f.seedProject(t)
	ext := f.seedEmployee(t, "AMI Crew", domain.DeptBUILD, testutil.AsExternal("AMI"))

	scio := 20.0
	_, err := f.cells.EditCell(ctx, contract.CellEditRequest{
		ProjectID:   project.ID,
		Department:  domain.DeptBUILD,
		Week:        thisWeek(),
		TotalHours:  20,
		EmployeeIDs: []string{ext.ID},
		ScioHours:   &scio,
	})
	assert.ErrorIs(t, err, planner.ErrInternalHoursLocked)
}

func TestCellService_CopyPasteSameProjectKeepsChangeOrder(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()
	project := f.seedProject(t)
	e := f.seedEmployee(t, "Dana", domain.DeptPRG)

	co := testutil.NewTestChangeOrder(project.ID, domain.DeptPRG, "CO-1 path rework", 80)
	require.NoError(t, f.changeOrders.Create(ctx, co))

	source := domain.CellRef{ProjectID: project.ID, Department: domain.DeptPRG, WeekStart: thisWeek()}
	_, err := f.cells.EditCell(ctx, contract.CellEditRequest{
		ProjectID:      project.ID,
		Department:     domain.DeptPRG,
		Week:           thisWeek(),
		TotalHours:     30,
		Stage:          domain.StageOffline,
		EmployeeIDs:    []string{e.ID},
		UseChangeOrder: true,
		ChangeOrderID:  co.ID,
	})
	require.NoError(t, err)

	snap, err := f.cells.CopyCell(ctx, source)
	require.NoError(t, err)
	require.Len(t, snap.Entries, 1)

	target := domain.CellRef{ProjectID: project.ID, Department: domain.DeptPRG, WeekStart: testutil.Week(thisWeek(), 2)}
	result, err := f.cells.PasteCell(ctx, snap, target)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)

	records, err := f.assignments.ListCell(ctx, target)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, co.ID, records[0].ChangeOrderID)
}

func TestCellService_CrossProjectPasteDropsChangeOrder(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()
	source := f.seedProject(t)
	destination := testutil.NewTestProject("Trim Line 4")
	require.NoError(t, f.projects.Create(ctx, destination))
	e := f.seedEmployee(t, "Dana", domain.DeptMED)

	co := testutil.NewTestChangeOrder(source.ID, domain.DeptMED, "CO-1", 40)
	require.NoError(t, f.changeOrders.Create(ctx, co))

	_, err := f.cells.EditCell(ctx, contract.CellEditRequest{
		ProjectID:      source.ID,
		Department:     domain.DeptMED,
		Week:           thisWeek(),
		TotalHours:     12,
		EmployeeIDs:    []string{e.ID},
		UseChangeOrder: true,
		ChangeOrderID:  co.ID,
	})
	require.NoError(t, err)

	snap, err := f.cells.CopyCell(ctx, domain.CellRef{
		ProjectID: source.ID, Department: domain.DeptMED, WeekStart: thisWeek(),
	})
	require.NoError(t, err)

	target := domain.CellRef{ProjectID: destination.ID, Department: domain.DeptMED, WeekStart: thisWeek()}
	_, err = f.cells.PasteCell(ctx, snap, target)
	require.NoError(t, err)

	records, err := f.assignments.ListCell(ctx, target)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Empty(t, records[0].ChangeOrderID)
	assert.Equal(t, 12.0, records[0].Hours)
}

func TestCellService_EditCollapsesChangeOrderVariantsOfOneSlot(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()
	project := f.seedProject(t)
	e := f.seedEmployee(t, "Dana", domain.DeptPM)

	co := testutil.NewTestChangeOrder(project.ID, domain.DeptPM, "CO-1", 40)
	require.NoError(t, f.changeOrders.Create(ctx, co))

	// Two live records share (resource, stage), differing only in change
	// order. The billed record sorts first, so a plain edit updates it
	// onto the base record's natural key; that key is only free once the
	// base record has been zeroed.
	billed := testutil.NewTestAssignment(e.ID, project.ID, domain.DeptPM, thisWeek(), 3,
		testutil.WithStage(domain.StageSupport), testutil.WithChangeOrder(co.ID))
	billed.CreatedAt = billed.CreatedAt.Add(-time.Minute)
	require.NoError(t, f.assignments.Create(ctx, billed))

	base := testutil.NewTestAssignment(e.ID, project.ID, domain.DeptPM, thisWeek(), 5,
		testutil.WithStage(domain.StageSupport))
	require.NoError(t, f.assignments.Create(ctx, base))

	result, err := f.cells.EditCell(ctx, contract.CellEditRequest{
		ProjectID:   project.ID,
		Department:  domain.DeptPM,
		Week:        thisWeek(),
		TotalHours:  8,
		Stage:       domain.StageSupport,
		EmployeeIDs: []string{e.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 1, result.Zeroed)

	records, err := f.assignments.ListCell(ctx, domain.CellRef{
		ProjectID: project.ID, Department: domain.DeptPM, WeekStart: thisWeek(),
	})
	require.NoError(t, err)
	var live []domain.Assignment
	for _, r := range records {
		if !r.IsEmpty() {
			live = append(live, r)
		}
	}
	require.Len(t, live, 1)
	assert.Equal(t, 8.0, live[0].Hours)
	assert.Empty(t, live[0].ChangeOrderID)
}

func TestCellService_SelectionSkipsPlaceholderProvisioning(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()
	project := f.seedProject(t)
	e := f.seedEmployee(t, "Dana", domain.DeptMED)

	_, err := f.cells.EditCell(ctx, contract.CellEditRequest{
		ProjectID:   project.ID,
		Department:  domain.DeptMED,
		Week:        thisWeek(),
		TotalHours:  8,
		EmployeeIDs: []string{e.ID},
	})
	require.NoError(t, err)

	_, err = f.employees.GetByName(ctx, domain.DeptMED, domain.PlaceholderName(domain.DeptMED))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCellService_BreakdownSumMustMatchExplicitTotal(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()
	project := f.seedProject(t)
	e := f.seedEmployee(t, "Dana", domain.DeptMED)

	_, err := f.cells.EditCell(ctx, contract.CellEditRequest{
		ProjectID:  project.ID,
		Department: domain.DeptMED,
		Week:       thisWeek(),
		TotalHours: 50,
		Breakdown: []planner.StageHours{
			{Stage: domain.StageConcept, Hours: 24},
			{Stage: domain.StageDetailDesign, Hours: 16},
		},
		EmployeeIDs: []string{e.ID},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "breakdown sums to 40.00")
}

func TestCellService_BreakdownAloneSuppliesTheTotal(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()
	project := f.seedProject(t)
	e := f.seedEmployee(t, "Dana", domain.DeptMED)

	result, err := f.cells.EditCell(ctx, contract.CellEditRequest{
		ProjectID:  project.ID,
		Department: domain.DeptMED,
		Week:       thisWeek(),
		Breakdown: []planner.StageHours{
			{Stage: domain.StageConcept, Hours: 24},
			{Stage: domain.StageDetailDesign, Hours: 16},
		},
		EmployeeIDs: []string{e.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)

	records, err := f.assignments.ListCell(ctx, domain.CellRef{
		ProjectID: project.ID, Department: domain.DeptMED, WeekStart: thisWeek(),
	})
	require.NoError(t, err)
	var total float64
	for _, r := range records {
		total += r.Hours
	}
	assert.InDelta(t, 40.0, total, 1e-9)
}

func TestCellService_ClearCellDeletesRows(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()
	project := f.seedProject(t)
	e := f.seedEmployee(t, "Dana", domain.DeptHD)

	cell := domain.CellRef{ProjectID: project.ID, Department: domain.DeptHD, WeekStart: thisWeek()}
	_, err := f.cells.EditCell(ctx, contract.CellEditRequest{
		ProjectID:   project.ID,
		Department:  domain.DeptHD,
		Week:        thisWeek(),
		TotalHours:  10,
		EmployeeIDs: []string{e.ID},
	})
	require.NoError(t, err)

	require.NoError(t, f.cells.ClearCell(ctx, cell))
	records, err := f.assignments.ListCell(ctx, cell)
	require.NoError(t, err)
	assert.Empty(t, records)
}
