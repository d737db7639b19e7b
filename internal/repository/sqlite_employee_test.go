package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/loadsheet/internal/domain"
	"github.com/alexanderramin/loadsheet/internal/testutil"
)

func TestEmployeeRepo_CreateAndGetByName(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteEmployeeRepo(database)

	e := testutil.NewTestEmployee("Sam Ortiz", domain.DeptMED, testutil.WithCapacity(45))
	require.NoError(t, repo.Create(ctx, e))

	got, err := repo.GetByName(ctx, domain.DeptMED, "Sam Ortiz")
	require.NoError(t, err)
	assert.Equal(t, e.ID, got.ID)
	assert.Equal(t, 45.0, got.Capacity)
	assert.True(t, got.IsActive)
}

func TestEmployeeRepo_DuplicateNameInDepartment(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteEmployeeRepo(database)

	require.NoError(t, repo.Create(ctx, testutil.NewTestEmployee("Pat Kim", domain.DeptHD)))

	err := repo.Create(ctx, testutil.NewTestEmployee("Pat Kim", domain.DeptHD))
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	// Same name in another department is fine.
	require.NoError(t, repo.Create(ctx, testutil.NewTestEmployee("Pat Kim", domain.DeptPRG)))
}

func TestEmployeeRepo_PlaceholderRoundTrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteEmployeeRepo(database)

	placeholder := domain.NewPlaceholder(domain.DeptBUILD, time.Now().UTC())
	placeholder.ID = "ph-build"
	require.NoError(t, repo.Create(ctx, placeholder))

	got, err := repo.GetByName(ctx, domain.DeptBUILD, domain.PlaceholderName(domain.DeptBUILD))
	require.NoError(t, err)
	assert.True(t, got.IsPlaceholder())
	assert.False(t, got.IsActive)
	assert.Equal(t, 0.0, got.Capacity)
}

func TestEmployeeRepo_ListFiltersInactive(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteEmployeeRepo(database)

	require.NoError(t, repo.Create(ctx, testutil.NewTestEmployee("Active One", domain.DeptMFG)))
	require.NoError(t, repo.Create(ctx, testutil.NewTestEmployee("Gone Two", domain.DeptMFG, testutil.AsInactive())))

	active, err := repo.List(ctx, domain.DeptMFG, false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Active One", active[0].Name)

	all, err := repo.List(ctx, domain.DeptMFG, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestEmployeeRepo_ExternalFlags(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteEmployeeRepo(database)

	e := testutil.NewTestEmployee("AMI Crew", domain.DeptBUILD, testutil.AsExternal("AMI"))
	require.NoError(t, repo.Create(ctx, e))

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, got.IsExternal)
	assert.Equal(t, "AMI", got.ExternalTeam)
}

func TestEmployeeRepo_UpdateNotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteEmployeeRepo(database)

	e := testutil.NewTestEmployee("Nobody", domain.DeptPM)
	err := repo.Update(context.Background(), e)
	assert.True(t, errors.Is(err, ErrNotFound))
}
