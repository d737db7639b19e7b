package planner

import (
	"errors"
	"math"

	"github.com/alexanderramin/loadsheet/internal/domain"
)

// ErrPlaceholderRequired is returned when an edit attributes hours to no
// resource and no placeholder employee was provisioned.
var ErrPlaceholderRequired = errors.New("cell edit with no selected resources requires a placeholder employee")

// ErrInternalHoursLocked is returned when an edit tries to put internal
// hours on a cell whose only selected resources are external and whose
// internal side was previously empty.
var ErrInternalHoursLocked = errors.New("internal hours are locked for an external-only selection")

// OpKind distinguishes the three persistence actions a reconciliation
// can schedule.
type OpKind string

const (
	OpCreate OpKind = "create"
	OpUpdate OpKind = "update"
	// OpZero clears hours, stage, comment and change order on an existing
	// record instead of deleting it, keeping the slot reusable.
	OpZero OpKind = "zero"
)

// AssignmentFields is the desired field set carried by a create or
// update operation.
type AssignmentFields struct {
	EmployeeID    string
	ProjectID     string
	Department    domain.Department
	WeekStart     string
	Hours         float64
	ScioHours     *float64
	ExternalHours *float64
	Stage         domain.Stage
	Comment       string
	ChangeOrderID string
}

// Operation is one scheduled persistence action. The caller applies the
// list against its store, landing every zero before any update or create:
// an update can move a surviving record onto a natural key that a record
// scheduled for zeroing still occupies.
type Operation struct {
	Kind         OpKind
	AssignmentID string
	Fields       AssignmentFields
}

// StageHours is one line of a per-stage hour breakdown.
type StageHours struct {
	Stage domain.Stage
	Hours float64
}

// CellEdit is the desired post-edit state of one cell. Either the flat
// Stage/TotalHours form applies, or StageBreakdown distributes the total
// across stages; Selected lists the resources chosen in the editor, and
// may be empty to attribute hours to the department placeholder.
// Comment and ChangeOrderID are cell-level and carried onto every
// produced assignment.
type CellEdit struct {
	Cell           domain.CellRef
	TotalHours     float64
	Stage          domain.Stage
	StageBreakdown []StageHours
	Selected       []domain.Employee
	Comment        string
	ChangeOrderID  string
	// ScioHours/ExternalHours hold an explicit internal/external split
	// for flat edits in BUILD/PRG.
	ScioHours     *float64
	ExternalHours *float64
}

type desiredEntry struct {
	EmployeeID    string
	Stage         domain.Stage
	ChangeOrderID string
	Hours         float64
	ScioHours     *float64
	ExternalHours *float64
	Comment       string
}

// Reconcile computes the minimal operation list turning the cell's
// current records into the desired state. It is a pure function; the
// caller executes the result against the persistence layer and re-derives
// its aggregates afterwards.
func Reconcile(edit CellEdit, current []domain.Assignment, placeholder *domain.Employee) ([]Operation, error) {
	if edit.TotalHours == 0 {
		return zeroAll(current), nil
	}

	if err := checkInternalLock(edit, current); err != nil {
		return nil, err
	}

	desired, err := desiredEntries(edit, placeholder)
	if err != nil {
		return nil, err
	}
	return matchOperations(edit.Cell, desired, current, false), nil
}

// zeroAll collapses the cell: every record still carrying data is zeroed,
// nothing is created.
func zeroAll(current []domain.Assignment) []Operation {
	var ops []Operation
	for _, a := range current {
		if a.IsEmpty() {
			continue
		}
		ops = append(ops, Operation{Kind: OpZero, AssignmentID: a.ID})
	}
	return ops
}

// checkInternalLock rejects internal hours on an external-only selection
// when the cell's internal side was previously empty.
func checkInternalLock(edit CellEdit, current []domain.Assignment) error {
	if !domain.SplitDepartments[edit.Cell.Department] {
		return nil
	}
	if len(edit.Selected) == 0 || edit.ScioHours == nil || *edit.ScioHours == 0 {
		return nil
	}
	for _, e := range edit.Selected {
		if !e.IsExternal {
			return nil
		}
	}
	for _, a := range current {
		if a.ScioHours != nil && *a.ScioHours > 0 {
			return nil
		}
	}
	return ErrInternalHoursLocked
}

func desiredEntries(edit CellEdit, placeholder *domain.Employee) ([]desiredEntry, error) {
	split := domain.SplitDepartments[edit.Cell.Department]

	if len(edit.Selected) == 0 {
		if placeholder == nil {
			return nil, ErrPlaceholderRequired
		}
		return placeholderEntries(edit, placeholder, split), nil
	}

	if len(edit.StageBreakdown) == 0 {
		return flatEntries(edit, split), nil
	}
	return breakdownEntries(edit, split), nil
}

// placeholderEntries attributes the whole edit to the department
// placeholder, one entry per breakdown stage when a breakdown applies.
func placeholderEntries(edit CellEdit, placeholder *domain.Employee, split bool) []desiredEntry {
	if len(edit.StageBreakdown) == 0 {
		e := desiredEntry{
			EmployeeID:    placeholder.ID,
			Stage:         edit.Stage,
			ChangeOrderID: edit.ChangeOrderID,
			Hours:         edit.TotalHours,
			Comment:       edit.Comment,
		}
		if split {
			e.ScioHours = edit.ScioHours
			e.ExternalHours = edit.ExternalHours
		}
		return []desiredEntry{e}
	}

	var entries []desiredEntry
	for _, sh := range edit.StageBreakdown {
		if sh.Hours <= 0 {
			continue
		}
		entries = append(entries, desiredEntry{
			EmployeeID:    placeholder.ID,
			Stage:         sh.Stage,
			ChangeOrderID: edit.ChangeOrderID,
			Hours:         sh.Hours,
			Comment:       edit.Comment,
		})
	}
	return entries
}

// flatEntries splits the total evenly across the selected resources.
func flatEntries(edit CellEdit, split bool) []desiredEntry {
	shares := splitEven(edit.TotalHours, len(edit.Selected))
	var entries []desiredEntry
	for i, emp := range edit.Selected {
		if shares[i] <= 0 {
			continue
		}
		entries = append(entries, applySplit(desiredEntry{
			EmployeeID:    emp.ID,
			Stage:         edit.Stage,
			ChangeOrderID: edit.ChangeOrderID,
			Hours:         shares[i],
			Comment:       edit.Comment,
		}, emp, split))
	}
	return entries
}

// breakdownEntries maps every (resource, stage) pair with positive hours
// to exactly one entry.
func breakdownEntries(edit CellEdit, split bool) []desiredEntry {
	var entries []desiredEntry
	for _, sh := range edit.StageBreakdown {
		if sh.Hours <= 0 {
			continue
		}
		shares := splitEven(sh.Hours, len(edit.Selected))
		for i, emp := range edit.Selected {
			if shares[i] <= 0 {
				continue
			}
			entries = append(entries, applySplit(desiredEntry{
				EmployeeID:    emp.ID,
				Stage:         sh.Stage,
				ChangeOrderID: edit.ChangeOrderID,
				Hours:         shares[i],
				Comment:       edit.Comment,
			}, emp, split))
		}
	}
	return entries
}

// applySplit routes a split-department entry's hours to the internal or
// external side depending on the resource.
func applySplit(e desiredEntry, emp domain.Employee, split bool) desiredEntry {
	if !split {
		return e
	}
	h := e.Hours
	if emp.IsExternal {
		e.ExternalHours = &h
	} else {
		e.ScioHours = &h
	}
	return e
}

// splitEven distributes total across n shares, rounding each to two
// decimals. The last share absorbs the rounding drift so the shares
// always sum back to the total.
func splitEven(total float64, n int) []float64 {
	shares := make([]float64, n)
	if n == 0 {
		return shares
	}
	base := roundHours(total / float64(n))
	var allocated float64
	for i := 0; i < n-1; i++ {
		shares[i] = base
		allocated += base
	}
	shares[n-1] = roundHours(total - allocated)
	return shares
}

func roundHours(h float64) float64 {
	return math.Round(h*100) / 100
}

type matchKey struct {
	EmployeeID    string
	Stage         domain.Stage
	ChangeOrderID string
}

// matchOperations runs the shared match/update/create/zero algorithm.
// Matching is by (resource, stage) — plus change order when
// keyByChangeOrder is set, as the paste path requires — reusing the first
// unmatched existing record per key, creating the rest, and zeroing every
// record whose key vanished from the desired state. Updates that would
// change nothing are dropped, so re-saving a cell's current state yields
// an empty list.
func matchOperations(cell domain.CellRef, desired []desiredEntry, current []domain.Assignment, keyByChangeOrder bool) []Operation {
	week := domain.DateKey(domain.WeekStart(cell.WeekStart))

	keyOf := func(emp string, stage domain.Stage, co string) matchKey {
		if !keyByChangeOrder {
			co = ""
		}
		return matchKey{EmployeeID: emp, Stage: stage, ChangeOrderID: co}
	}

	unmatched := make(map[matchKey][]int)
	for i, a := range current {
		k := keyOf(a.EmployeeID, a.Stage, a.ChangeOrderID)
		unmatched[k] = append(unmatched[k], i)
	}

	consumed := make(map[int]bool)
	var ops []Operation
	for _, d := range desired {
		fields := AssignmentFields{
			EmployeeID:    d.EmployeeID,
			ProjectID:     cell.ProjectID,
			Department:    cell.Department,
			WeekStart:     week,
			Hours:         d.Hours,
			ScioHours:     d.ScioHours,
			ExternalHours: d.ExternalHours,
			Stage:         d.Stage,
			Comment:       d.Comment,
			ChangeOrderID: d.ChangeOrderID,
		}

		k := keyOf(d.EmployeeID, d.Stage, d.ChangeOrderID)
		if idxs := unmatched[k]; len(idxs) > 0 {
			i := idxs[0]
			unmatched[k] = idxs[1:]
			consumed[i] = true
			if !fieldsMatch(current[i], fields) {
				ops = append(ops, Operation{Kind: OpUpdate, AssignmentID: current[i].ID, Fields: fields})
			}
			continue
		}
		ops = append(ops, Operation{Kind: OpCreate, Fields: fields})
	}

	for i, a := range current {
		if consumed[i] || a.IsEmpty() {
			continue
		}
		ops = append(ops, Operation{Kind: OpZero, AssignmentID: a.ID})
	}
	return ops
}

const hoursEpsilon = 1e-9

func fieldsMatch(a domain.Assignment, f AssignmentFields) bool {
	return math.Abs(a.Hours-f.Hours) < hoursEpsilon &&
		a.Stage == f.Stage &&
		a.Comment == f.Comment &&
		a.ChangeOrderID == f.ChangeOrderID &&
		floatPtrEqual(a.ScioHours, f.ScioHours) &&
		floatPtrEqual(a.ExternalHours, f.ExternalHours)
}

func floatPtrEqual(a, b *float64) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if a == nil {
		return true
	}
	return math.Abs(*a-*b) < hoursEpsilon
}
