package planner

import (
	"testing"
	"time"

	"github.com/alexanderramin/loadsheet/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stageEntry(weekStart, weekEnd int) domain.StageConfigEntry {
	return domain.StageConfigEntry{
		ProjectID:  "p1",
		Department: domain.DeptMED,
		Stage:      domain.StageConcept,
		WeekStart:  weekStart,
		WeekEnd:    weekEnd,
	}
}

func TestDepartmentWindows_NoEntries(t *testing.T) {
	_, _, ok := DepartmentWindows(week("2026-03-02"), nil)
	assert.False(t, ok)
}

func TestDepartmentWindows_UnshiftedConfigMatchesExpected(t *testing.T) {
	projectStart := week("2026-03-02")
	entries := []domain.StageConfigEntry{stageEntry(1, 4), stageEntry(5, 8)}

	effective, expected, ok := DepartmentWindows(projectStart, entries)
	require.True(t, ok)

	assert.True(t, effective.Start.Equal(expected.Start))
	assert.True(t, effective.End.Equal(expected.End))
	assert.False(t, HasShift(effective, expected))
	assert.True(t, effective.Start.Equal(week("2026-03-02")))
	assert.True(t, effective.End.Equal(week("2026-04-27")), "8 weeks after project start")
}

func TestClassifyWeek_NoShiftReportsNoDisplacedWeeks(t *testing.T) {
	projectStart := week("2026-03-02")
	effective, expected, _ := DepartmentWindows(projectStart, []domain.StageConfigEntry{stageEntry(1, 8)})

	for w := 0; w < 16; w++ {
		wk := projectStart.AddDate(0, 0, w*7)
		mark := ClassifyWeek(wk, 0, effective, expected)
		assert.NotEqual(t, DriftShiftGapIdle, mark, "week %d", w)
		assert.NotEqual(t, DriftShiftGapOccupied, mark, "week %d", w)
	}
}

func TestClassifyWeek_TwoWeekForwardShift(t *testing.T) {
	projectStart := week("2026-03-02")
	shifted := week("2026-03-16") // moved 2 weeks forward
	entry := stageEntry(1, 8)
	entry.DepartmentStartDate = &shifted
	dur := 8
	entry.DurationWeeks = &dur

	effective, expected, ok := DepartmentWindows(projectStart, []domain.StageConfigEntry{entry})
	require.True(t, ok)
	require.True(t, HasShift(effective, expected))

	var displaced, outOfRange int
	for w := -2; w < 14; w++ {
		wk := projectStart.AddDate(0, 0, w*7)
		switch ClassifyWeek(wk, 0, effective, expected) {
		case DriftShiftGapIdle, DriftShiftGapOccupied:
			displaced++
		case DriftOutOfRange:
			outOfRange++
		}
	}

	assert.Equal(t, 2, displaced, "exactly the two vacated weeks are displaced")
	assert.Equal(t, 0, outOfRange, "unoccupied cells never report hard out-of-range")
}

func TestClassifyWeek_GapMarkDependsOnHours(t *testing.T) {
	projectStart := week("2026-03-02")
	shifted := week("2026-03-16")
	entry := stageEntry(1, 8)
	entry.DepartmentStartDate = &shifted
	dur := 8
	entry.DurationWeeks = &dur

	effective, expected, _ := DepartmentWindows(projectStart, []domain.StageConfigEntry{entry})

	gapWeek := week("2026-03-02")
	assert.Equal(t, DriftShiftGapIdle, ClassifyWeek(gapWeek, 0, effective, expected))
	assert.Equal(t, DriftShiftGapOccupied, ClassifyWeek(gapWeek, 24, effective, expected))
}

func TestClassifyWeek_HardOutOfRangeRequiresHours(t *testing.T) {
	projectStart := week("2026-03-02")
	effective, expected, _ := DepartmentWindows(projectStart, []domain.StageConfigEntry{stageEntry(1, 4)})

	outside := week("2026-06-01")
	assert.Equal(t, DriftOutOfRange, ClassifyWeek(outside, 16, effective, expected))
	assert.Equal(t, DriftInRange, ClassifyWeek(outside, 0, effective, expected),
		"an empty cell outside the window renders no indicator")
}

func TestClassifyWeek_InsideEffectiveWindowAlwaysInRange(t *testing.T) {
	projectStart := week("2026-03-02")
	shifted := week("2026-02-16") // moved 2 weeks back
	entry := stageEntry(1, 8)
	entry.DepartmentStartDate = &shifted
	dur := 8
	entry.DurationWeeks = &dur

	effective, expected, _ := DepartmentWindows(projectStart, []domain.StageConfigEntry{entry})
	require.True(t, HasShift(effective, expected))

	// The backward shift gap lies between effective.start and expected.start,
	// but those weeks are inside the effective window and stay clean.
	assert.Equal(t, DriftInRange, ClassifyWeek(week("2026-02-16"), 10, effective, expected))
	assert.Equal(t, DriftInRange, ClassifyWeek(week("2026-02-23"), 0, effective, expected))
}

func TestWindowContains(t *testing.T) {
	w := Window{Start: week("2026-03-02"), End: week("2026-03-30")}
	assert.True(t, w.Contains(week("2026-03-02")))
	assert.True(t, w.Contains(week("2026-03-23")))
	assert.False(t, w.Contains(week("2026-03-30")), "end is exclusive")
	assert.False(t, w.Contains(week("2026-02-23")))
}

func TestDepartmentWindows_ExplicitDatesWin(t *testing.T) {
	projectStart := week("2026-03-02")
	explicit := time.Date(2026, 4, 8, 15, 30, 0, 0, time.UTC) // Wednesday with a time component
	entry := stageEntry(1, 4)
	entry.DepartmentStartDate = &explicit

	effective, _, _ := DepartmentWindows(projectStart, []domain.StageConfigEntry{entry})
	assert.True(t, effective.Start.Equal(week("2026-04-06")),
		"explicit dates are normalized to their Monday")
}
