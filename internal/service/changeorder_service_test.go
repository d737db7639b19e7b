package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/loadsheet/internal/contract"
	"github.com/alexanderramin/loadsheet/internal/domain"
	"github.com/alexanderramin/loadsheet/internal/testutil"
)

func TestChangeOrderService_CreateAndListDerivesUsedHours(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()
	project := f.seedProject(t)
	e := f.seedEmployee(t, "Dana", domain.DeptMED)

	co := &domain.ChangeOrder{
		ProjectID:   project.ID,
		Department:  domain.DeptMED,
		Name:        "CO-1 gripper rework",
		HoursQuoted: 60,
	}
	require.NoError(t, f.orders.Create(ctx, co))
	require.NotEmpty(t, co.ID)

	_, err := f.cells.EditCell(ctx, contract.CellEditRequest{
		ProjectID:      project.ID,
		Department:     domain.DeptMED,
		Week:           thisWeek(),
		TotalHours:     25,
		EmployeeIDs:    []string{e.ID},
		UseChangeOrder: true,
		ChangeOrderID:  co.ID,
	})
	require.NoError(t, err)

	views, err := f.orders.List(ctx, project.ID, domain.DeptMED)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, 60.0, views[0].HoursQuoted)
	assert.Equal(t, 25.0, views[0].HoursUsed)
}

func TestChangeOrderService_CreateRejectsInvalid(t *testing.T) {
	f := newFixtures(t)

	err := f.orders.Create(context.Background(), &domain.ChangeOrder{
		ProjectID:  "p1",
		Department: domain.DeptMED,
		// Name missing.
		HoursQuoted: 10,
	})
	require.Error(t, err)
}

func TestChangeOrderService_DeleteBlockedWhileReferenced(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()
	project := f.seedProject(t)
	e := f.seedEmployee(t, "Dana", domain.DeptHD)

	co := testutil.NewTestChangeOrder(project.ID, domain.DeptHD, "CO-1", 30)
	require.NoError(t, f.changeOrders.Create(ctx, co))

	_, err := f.cells.EditCell(ctx, contract.CellEditRequest{
		ProjectID:      project.ID,
		Department:     domain.DeptHD,
		Week:           thisWeek(),
		TotalHours:     10,
		EmployeeIDs:    []string{e.ID},
		UseChangeOrder: true,
		ChangeOrderID:  co.ID,
	})
	require.NoError(t, err)

	err = f.orders.Delete(ctx, co.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assigned hours")

	// Zero the cell, then deletion goes through.
	_, err = f.cells.EditCell(ctx, contract.CellEditRequest{
		ProjectID:  project.ID,
		Department: domain.DeptHD,
		Week:       thisWeek(),
		TotalHours: 0,
	})
	require.NoError(t, err)
	require.NoError(t, f.orders.Delete(ctx, co.ID))
}

func TestChangeOrderService_DeleteRollsBackOnWriteFailure(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()
	project := f.seedProject(t)

	co := testutil.NewTestChangeOrder(project.ID, domain.DeptHD, "CO-1", 30)
	require.NoError(t, f.changeOrders.Create(ctx, co))

	injected := errors.New("disk full")
	failing := NewChangeOrderService(f.changeOrders, f.assignments,
		&testutil.FailOnNthExecUoW{DB: f.db, FailOn: 1, Err: injected})

	err := failing.Delete(ctx, co.ID)
	require.ErrorIs(t, err, injected)

	// The order survives the failed transaction.
	_, err = f.changeOrders.GetByID(ctx, co.ID)
	require.NoError(t, err)
}
