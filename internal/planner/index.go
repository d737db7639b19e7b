package planner

import (
	"sync"

	"github.com/alexanderramin/loadsheet/internal/domain"
)

// CellKey identifies one cell of the planning matrix. The week is stored
// as a date-only string so keys compare by value.
type CellKey struct {
	ProjectID  string
	Department domain.Department
	Week       string
}

// NewCellKey builds the key for a cell reference.
func NewCellKey(ref domain.CellRef) CellKey {
	return CellKey{
		ProjectID:  ref.ProjectID,
		Department: ref.Department,
		Week:       domain.DateKey(domain.WeekStart(ref.WeekStart)),
	}
}

// DeptWeekKey identifies one department-level occupancy slot.
type DeptWeekKey struct {
	Department domain.Department
	Week       string
}

// ProjectDeptKey identifies one per-project department summary.
type ProjectDeptKey struct {
	ProjectID  string
	Department domain.Department
}

// CellAggregate is the dense per-cell summary derived from the sparse
// assignment list.
type CellAggregate struct {
	TotalHours    float64
	ExternalHours float64
	Assignments   []domain.Assignment
	DominantStage domain.Stage
	// Comment is the first non-blank comment in input scan order. Ties
	// between records are resolved by that order alone.
	Comment string
}

// Index holds the lookup structures built from one pass over the
// assignment list. It is fully derived state: discard and rebuild it
// whenever the backing list changes.
type Index struct {
	ByCell                 map[CellKey]*CellAggregate
	DeptWeekTotals         map[DeptWeekKey]float64
	DeptWeekExternalTotals map[DeptWeekKey]float64
	ProjectDeptTotals      map[ProjectDeptKey]float64
}

// BuildIndex aggregates assignments into per-cell, per-department-week
// and per-project-department summaries in a single linear pass.
func BuildIndex(assignments []domain.Assignment, vocab StageVocabulary) *Index {
	idx := &Index{
		ByCell:                 make(map[CellKey]*CellAggregate),
		DeptWeekTotals:         make(map[DeptWeekKey]float64),
		DeptWeekExternalTotals: make(map[DeptWeekKey]float64),
		ProjectDeptTotals:      make(map[ProjectDeptKey]float64),
	}

	for _, a := range assignments {
		week := domain.DateKey(domain.WeekStart(a.WeekStart))
		hours := a.EffectiveHours()

		ck := CellKey{ProjectID: a.ProjectID, Department: a.Department, Week: week}
		cell := idx.ByCell[ck]
		if cell == nil {
			cell = &CellAggregate{}
			idx.ByCell[ck] = cell
		}
		cell.TotalHours += hours
		if a.ExternalHours != nil {
			cell.ExternalHours += *a.ExternalHours
		}
		cell.Assignments = append(cell.Assignments, a)
		if vocab.Dominates(a.Department, a.Stage, cell.DominantStage) {
			cell.DominantStage = a.Stage
		}
		if cell.Comment == "" && a.Comment != "" {
			cell.Comment = a.Comment
		}

		dk := DeptWeekKey{Department: a.Department, Week: week}
		idx.DeptWeekTotals[dk] += hours
		if a.ExternalHours != nil {
			idx.DeptWeekExternalTotals[dk] += *a.ExternalHours
		}

		pk := ProjectDeptKey{ProjectID: a.ProjectID, Department: a.Department}
		idx.ProjectDeptTotals[pk] += hours
	}

	return idx
}

// Cell returns the aggregate for one cell, or an empty aggregate when the
// cell has no assignments.
func (i *Index) Cell(ref domain.CellRef) *CellAggregate {
	if c, ok := i.ByCell[NewCellKey(ref)]; ok {
		return c
	}
	return &CellAggregate{}
}

// IndexCache memoizes a built Index against a version counter. The
// backing store bumps the version on every create, update and delete;
// Get rebuilds only when the version moved, and never serves an index
// built for an older version.
type IndexCache struct {
	mu      sync.Mutex
	version uint64
	idx     *Index
}

// Get returns the cached index for version, rebuilding via build when the
// cache is empty or stale.
func (c *IndexCache) Get(version uint64, build func() *Index) *Index {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.idx == nil || c.version != version {
		c.idx = build()
		c.version = version
	}
	return c.idx
}

// Invalidate drops the cached index.
func (c *IndexCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.idx = nil
}
