package contract

import (
	"time"

	"github.com/alexanderramin/loadsheet/internal/domain"
	"github.com/alexanderramin/loadsheet/internal/planner"
)

// CellEditRequest is the desired post-edit state of one planning cell as
// submitted by a caller. Employee IDs are resolved to full records by the
// service before reconciliation.
type CellEditRequest struct {
	ProjectID     string
	Department    domain.Department
	Week          time.Time
	TotalHours    float64
	Stage         domain.Stage
	Breakdown     []planner.StageHours
	EmployeeIDs   []string
	Comment       string
	ChangeOrderID string
	// UseChangeOrder distinguishes "edit against a change order" mode
	// from a plain edit; when set, ChangeOrderID must be non-empty.
	UseChangeOrder bool
	ScioHours      *float64
	ExternalHours  *float64
}

// CellEditResult reports what an edit actually did.
type CellEditResult struct {
	Created int
	Updated int
	Zeroed  int
}

// CellSummaryView is the rendered aggregate of one cell.
type CellSummaryView struct {
	ProjectID     string
	Department    domain.Department
	Week          time.Time
	TotalHours    float64
	ExternalHours float64
	DominantStage domain.Stage
	Comment       string
	RecordCount   int
	Drift         planner.DriftMark
}
