package planner

import "github.com/alexanderramin/loadsheet/internal/domain"

// ClipboardEntry is one copied assignment line.
type ClipboardEntry struct {
	EmployeeID    string
	Hours         float64
	ScioHours     *float64
	ExternalHours *float64
	Stage         domain.Stage
	Comment       string
	ChangeOrderID string
}

// ClipboardCell is a transferable snapshot of one cell's breakdown.
type ClipboardCell struct {
	SourceProjectID  string
	SourceDepartment domain.Department
	Entries          []ClipboardEntry
}

// CopyCell snapshots a cell's records, dropping entries whose effective
// hours are zero.
func CopyCell(source domain.CellRef, records []domain.Assignment) ClipboardCell {
	snap := ClipboardCell{
		SourceProjectID:  source.ProjectID,
		SourceDepartment: source.Department,
	}
	for _, a := range records {
		if a.EffectiveHours() == 0 {
			continue
		}
		snap.Entries = append(snap.Entries, ClipboardEntry{
			EmployeeID:    a.EmployeeID,
			Hours:         a.Hours,
			ScioHours:     a.ScioHours,
			ExternalHours: a.ExternalHours,
			Stage:         a.Stage,
			Comment:       a.Comment,
			ChangeOrderID: a.ChangeOrderID,
		})
	}
	return snap
}

// PasteCell replays a snapshot into the target cell. Entries are re-keyed
// by (employee, stage, resolved change order) — a change-order reference
// survives only when source and target share the project and the order
// still exists for the target's project and department, so a foreign
// project's reference never leaks. Duplicate keys merge by summing hours,
// then the reconciler's matching runs against the target's records.
func PasteCell(
	snap ClipboardCell,
	target domain.CellRef,
	targetChangeOrders []domain.ChangeOrder,
	current []domain.Assignment,
) []Operation {
	valid := make(map[string]bool, len(targetChangeOrders))
	for _, co := range targetChangeOrders {
		if co.ProjectID == target.ProjectID && co.Department == target.Department {
			valid[co.ID] = true
		}
	}

	merged := make(map[matchKey]*desiredEntry)
	var order []matchKey
	for _, e := range snap.Entries {
		co := e.ChangeOrderID
		if snap.SourceProjectID != target.ProjectID || !valid[co] {
			co = ""
		}

		k := matchKey{EmployeeID: e.EmployeeID, Stage: e.Stage, ChangeOrderID: co}
		d := merged[k]
		if d == nil {
			d = &desiredEntry{
				EmployeeID:    e.EmployeeID,
				Stage:         e.Stage,
				ChangeOrderID: co,
				Comment:       e.Comment,
			}
			merged[k] = d
			order = append(order, k)
		}
		d.Hours += e.Hours
		d.ScioHours = addPtr(d.ScioHours, e.ScioHours)
		d.ExternalHours = addPtr(d.ExternalHours, e.ExternalHours)
	}

	desired := make([]desiredEntry, 0, len(order))
	for _, k := range order {
		desired = append(desired, *merged[k])
	}
	return matchOperations(target, desired, current, true)
}

func addPtr(acc, v *float64) *float64 {
	if v == nil {
		return acc
	}
	sum := *v
	if acc != nil {
		sum += *acc
	}
	return &sum
}
