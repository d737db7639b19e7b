package planner

import (
	"math"
	"math/rand"
	"testing"

	"github.com/alexanderramin/loadsheet/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildIndex_CellTotalsMatchRawSum(t *testing.T) {
	assignments := []domain.Assignment{
		makeAssignment("a1", "e1", "p1", domain.DeptMED, "2026-03-02", 20),
		makeAssignment("a2", "e2", "p1", domain.DeptMED, "2026-03-02", 12.5),
		makeAssignment("a3", "e1", "p1", domain.DeptMED, "2026-03-09", 8),
		makeAssignment("a4", "e1", "p2", domain.DeptMED, "2026-03-02", 40),
	}

	idx := BuildIndex(assignments, testVocab)

	cell := idx.Cell(domain.CellRef{ProjectID: "p1", Department: domain.DeptMED, WeekStart: week("2026-03-02")})
	assert.InDelta(t, 32.5, cell.TotalHours, 1e-9)
	assert.Len(t, cell.Assignments, 2)

	assert.InDelta(t, 72.5, idx.DeptWeekTotals[DeptWeekKey{domain.DeptMED, "2026-03-02"}], 1e-9)
	assert.InDelta(t, 40.5, idx.ProjectDeptTotals[ProjectDeptKey{"p1", domain.DeptMED}], 1e-9)
	assert.InDelta(t, 40, idx.ProjectDeptTotals[ProjectDeptKey{"p2", domain.DeptMED}], 1e-9)
}

func TestBuildIndex_WeekNormalizedToMonday(t *testing.T) {
	// 2026-03-04 is a Wednesday; it must land in the 2026-03-02 cell.
	idx := BuildIndex([]domain.Assignment{
		makeAssignment("a1", "e1", "p1", domain.DeptHD, "2026-03-04", 10),
	}, testVocab)

	cell := idx.Cell(domain.CellRef{ProjectID: "p1", Department: domain.DeptHD, WeekStart: week("2026-03-02")})
	assert.InDelta(t, 10, cell.TotalHours, 1e-9)
}

func TestBuildIndex_ExplicitSplitPreferredOverRawHours(t *testing.T) {
	a := makeAssignment("a1", "e1", "p1", domain.DeptBUILD, "2026-03-02", 0)
	a.ScioHours = ptr(30)
	a.ExternalHours = ptr(15)

	idx := BuildIndex([]domain.Assignment{a}, testVocab)

	cell := idx.Cell(domain.CellRef{ProjectID: "p1", Department: domain.DeptBUILD, WeekStart: week("2026-03-02")})
	assert.InDelta(t, 45, cell.TotalHours, 1e-9)
	assert.InDelta(t, 15, cell.ExternalHours, 1e-9)
	assert.InDelta(t, 15, idx.DeptWeekExternalTotals[DeptWeekKey{domain.DeptBUILD, "2026-03-02"}], 1e-9)
}

func TestBuildIndex_DominantStageAndFirstComment(t *testing.T) {
	a1 := makeAssignment("a1", "e1", "p1", domain.DeptMED, "2026-03-02", 10)
	a1.Stage = domain.StageConcept
	a2 := makeAssignment("a2", "e2", "p1", domain.DeptMED, "2026-03-02", 10)
	a2.Stage = domain.StageRelease
	a2.Comment = "first"
	a3 := makeAssignment("a3", "e3", "p1", domain.DeptMED, "2026-03-02", 10)
	a3.Comment = "second"

	idx := BuildIndex([]domain.Assignment{a1, a2, a3}, testVocab)
	cell := idx.Cell(domain.CellRef{ProjectID: "p1", Department: domain.DeptMED, WeekStart: week("2026-03-02")})

	assert.Equal(t, domain.StageRelease, cell.DominantStage)
	assert.Equal(t, "first", cell.Comment, "comment ties resolve by scan order")
}

// TestBuildIndex_OrderIndependence property-tests that permuting the
// input list never changes cell totals or the dominant stage.
func TestBuildIndex_OrderIndependence(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	stages := []domain.Stage{"", domain.StageConcept, domain.StageDetailDesign, domain.StageRelease, domain.StageRedLines}
	weeks := []string{"2026-03-02", "2026-03-09", "2026-03-16"}

	for trial := 0; trial < 100; trial++ {
		n := rng.Intn(12) + 1
		assignments := make([]domain.Assignment, n)
		for i := range assignments {
			a := makeAssignment(
				"a"+string(rune('0'+i)),
				"e"+string(rune('0'+rng.Intn(4))),
				"p1", domain.DeptMED,
				weeks[rng.Intn(len(weeks))],
				float64(rng.Intn(80)),
			)
			a.Stage = stages[rng.Intn(len(stages))]
			assignments[i] = a
		}

		base := BuildIndex(assignments, testVocab)

		shuffled := make([]domain.Assignment, n)
		copy(shuffled, assignments)
		rng.Shuffle(n, func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		perm := BuildIndex(shuffled, testVocab)

		require.Equal(t, len(base.ByCell), len(perm.ByCell), "trial %d", trial)
		for k, cell := range base.ByCell {
			other, ok := perm.ByCell[k]
			require.True(t, ok, "trial %d: cell %v missing after shuffle", trial, k)
			assert.True(t, math.Abs(cell.TotalHours-other.TotalHours) < 1e-9,
				"trial %d: totals diverge for %v", trial, k)
			assert.Equal(t, cell.DominantStage, other.DominantStage,
				"trial %d: dominant stage diverges for %v", trial, k)
		}
	}
}

func TestIndexCache_RebuildsOnlyWhenVersionMoves(t *testing.T) {
	var cache IndexCache
	builds := 0
	build := func() *Index {
		builds++
		return BuildIndex(nil, testVocab)
	}

	first := cache.Get(1, build)
	second := cache.Get(1, build)
	assert.Same(t, first, second)
	assert.Equal(t, 1, builds)

	third := cache.Get(2, build)
	assert.NotSame(t, first, third)
	assert.Equal(t, 2, builds)
}
