package domain

import "time"

// Assignment is one resource's committed hours for one
// (project, department, week) cell.
//
// Hours is the primary quantity. BUILD and PRG assignments may carry an
// internal/external split in ScioHours/ExternalHours alongside the total.
// Stage, Comment and ChangeOrderID are empty when unset. A "zeroed"
// assignment (all of those empty, hours 0) is kept as a reusable slot
// rather than deleted.
type Assignment struct {
	ID            string
	EmployeeID    string
	ProjectID     string
	Department    Department
	WeekStart     time.Time
	Hours         float64
	ScioHours     *float64
	ExternalHours *float64
	Stage         Stage
	Comment       string
	ChangeOrderID string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// EffectiveHours returns the hours this assignment contributes to cell
// totals: the explicit total when present, otherwise the sum of the
// internal/external split.
func (a *Assignment) EffectiveHours() float64 {
	if a.Hours != 0 {
		return a.Hours
	}
	var sum float64
	if a.ScioHours != nil {
		sum += *a.ScioHours
	}
	if a.ExternalHours != nil {
		sum += *a.ExternalHours
	}
	return sum
}

// IsEmpty reports whether the assignment is a zeroed slot carrying no
// hours, stage, comment or change-order reference.
func (a *Assignment) IsEmpty() bool {
	return a.EffectiveHours() == 0 && a.Stage == "" && a.Comment == "" && a.ChangeOrderID == ""
}

// CellRef identifies one cell of the planning matrix.
type CellRef struct {
	ProjectID  string
	Department Department
	WeekStart  time.Time
}
