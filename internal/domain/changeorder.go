package domain

import (
	"fmt"
	"time"
)

// ChangeOrder is a named supplemental hour budget scoped to one
// (project, department) pair. Immutable once created; used hours are
// always derived from the assignments that reference it.
type ChangeOrder struct {
	ID          string
	ProjectID   string
	Department  Department
	Name        string
	HoursQuoted float64
	CreatedAt   time.Time
}

// Validate checks the fields required before a change order can be persisted.
func (c *ChangeOrder) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("change order name is required")
	}
	if c.ProjectID == "" {
		return fmt.Errorf("change order %q requires a project", c.Name)
	}
	if !ValidDepartments[c.Department] {
		return fmt.Errorf("change order %q has unknown department %q", c.Name, c.Department)
	}
	if c.HoursQuoted < 0 {
		return fmt.Errorf("change order %q has negative quoted hours", c.Name)
	}
	return nil
}

// ProjectBudget is the quoted baseline hours for one (project, department)
// pair, with the utilized/forecast figures maintained by planning.
type ProjectBudget struct {
	ID          string
	ProjectID   string
	Department  Department
	HoursQuoted float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
