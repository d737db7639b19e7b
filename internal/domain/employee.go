package domain

import "time"

// Employee is a resource that can hold assignment hours. External
// employees represent subcontracted material or external teams; their
// hours land in the external side of the BUILD/PRG split.
type Employee struct {
	ID           string
	Name         string
	Role         string
	Department   Department
	Capacity     float64 // available hours per week
	IsActive     bool
	IsExternal   bool
	ExternalTeam string // team/company name when external
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PlaceholderName returns the well-known name of the auto-provisioned
// placeholder resource for a department. The placeholder holds cell hours
// when no real resource is selected; it is created lazily with zero
// capacity and inactive.
func PlaceholderName(dept Department) string {
	return "Unassigned " + string(dept)
}

// IsPlaceholder reports whether the employee is a department placeholder.
func (e *Employee) IsPlaceholder() bool {
	return e.Name == PlaceholderName(e.Department)
}

// NewPlaceholder builds the placeholder employee for a department.
// The caller assigns the ID.
func NewPlaceholder(dept Department, now time.Time) *Employee {
	return &Employee{
		Name:       PlaceholderName(dept),
		Role:       "Placeholder",
		Department: dept,
		Capacity:   0,
		IsActive:   false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
