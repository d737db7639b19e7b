package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/loadsheet/internal/domain"
	"github.com/alexanderramin/loadsheet/internal/testutil"
)

func newStageEntry(projectID string, dept domain.Department, stage domain.Stage, weekStart, weekEnd int) *domain.StageConfigEntry {
	now := time.Now().UTC()
	return &domain.StageConfigEntry{
		ID:         uuid.New().String(),
		ProjectID:  projectID,
		Department: dept,
		Stage:      stage,
		WeekStart:  weekStart,
		WeekEnd:    weekEnd,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestStageConfigRepo_CreateAndListOrdered(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	projectID := seedProject(t, database)
	repo := NewSQLiteStageConfigRepo(database)

	require.NoError(t, repo.Create(ctx, newStageEntry(projectID, domain.DeptMED, domain.StageDetailDesign, 4, 9)))
	require.NoError(t, repo.Create(ctx, newStageEntry(projectID, domain.DeptMED, domain.StageConcept, 1, 3)))
	require.NoError(t, repo.Create(ctx, newStageEntry(projectID, domain.DeptPRG, domain.StageOffline, 6, 10)))

	med, err := repo.ListByProjectDept(ctx, projectID, domain.DeptMED)
	require.NoError(t, err)
	require.Len(t, med, 2)
	// Ordered by configured start week.
	assert.Equal(t, domain.StageConcept, med[0].Stage)
	assert.Equal(t, domain.StageDetailDesign, med[1].Stage)

	all, err := repo.ListByProject(ctx, projectID)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestStageConfigRepo_OverridesRoundTrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	projectID := seedProject(t, database)
	repo := NewSQLiteStageConfigRepo(database)

	explicit := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	duration := 5
	e := newStageEntry(projectID, domain.DeptBUILD, domain.StageOverallAssembly, 2, 4)
	e.DepartmentStartDate = &explicit
	e.DurationWeeks = &duration
	require.NoError(t, repo.Create(ctx, e))

	got, err := repo.ListByProjectDept(ctx, projectID, domain.DeptBUILD)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].DepartmentStartDate)
	assert.True(t, got[0].DepartmentStartDate.Equal(explicit))
	require.NotNil(t, got[0].DurationWeeks)
	assert.Equal(t, 5, *got[0].DurationWeeks)
}

func TestStageConfigRepo_Update(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	projectID := seedProject(t, database)
	repo := NewSQLiteStageConfigRepo(database)

	e := newStageEntry(projectID, domain.DeptHD, domain.StageControlsDesign, 1, 4)
	require.NoError(t, repo.Create(ctx, e))

	e.WeekEnd = 6
	duration := 6
	e.DurationWeeks = &duration
	require.NoError(t, repo.Update(ctx, e))

	got, err := repo.ListByProjectDept(ctx, projectID, domain.DeptHD)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 6, got[0].WeekEnd)
	require.NotNil(t, got[0].DurationWeeks)
	assert.Equal(t, 6, *got[0].DurationWeeks)
}

func TestStageConfigRepo_DeleteNotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteStageConfigRepo(database)

	err := repo.Delete(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}
