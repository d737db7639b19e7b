package contract

import (
	"time"

	"github.com/alexanderramin/loadsheet/internal/domain"
)

// GridRequest selects a slice of the planning matrix.
type GridRequest struct {
	ProjectID  string
	Department domain.Department
	From       time.Time
	To         time.Time
}

// GridResponse is one project-department row of cells with the occupancy
// and capacity context needed to render it.
type GridResponse struct {
	ProjectID   string
	ProjectName string
	Department  domain.Department
	Weeks       []time.Time
	Cells       []CellSummaryView
	Capacity    []CapacityRow
	Utilization *UtilizationReport
}

// CapacityRow is one department-week capacity line: what is available,
// what the matrix consumes, and the remainder (negative when
// over-allocated).
type CapacityRow struct {
	Department domain.Department
	Week       time.Time
	Total      float64
	Occupied   float64
	Available  float64
}

// UtilizationReport is the budget consumption of one (project, department)
// pair. Used covers weeks before the current one, Forecast the rest.
type UtilizationReport struct {
	ProjectID   string
	Department  domain.Department
	Quoted      float64
	ChangeOrder float64
	Used        float64
	Forecast    float64
	Percent     int
	Tier        domain.UtilizationTier
}

// ChangeOrderView is a change order with its derived consumed hours.
type ChangeOrderView struct {
	ID          string
	Name        string
	Department  domain.Department
	HoursQuoted float64
	HoursUsed   float64
	CreatedAt   time.Time
}
