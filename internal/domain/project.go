package domain

import (
	"fmt"
	"time"
)

type Project struct {
	ID            string
	Name          string
	Client        string
	StartDate     time.Time
	EndDate       time.Time
	Facility      Facility
	NumberOfWeeks int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate checks the fields required before a project can be persisted.
func (p *Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("project name is required")
	}
	if p.NumberOfWeeks < 1 {
		return fmt.Errorf("project %q must span at least one week", p.Name)
	}
	if p.EndDate.Before(p.StartDate) {
		return fmt.Errorf("project %q end date precedes start date", p.Name)
	}
	return nil
}

// DisplayID returns a short identifier for display, truncating the UUID
// to 8 characters.
func (p *Project) DisplayID() string {
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
