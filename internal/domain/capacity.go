package domain

import "time"

// DepartmentCapacityRecord is one department's internal headcount
// capacity for one week. Effective capacity is capacity minus PTO and
// training, floored at zero. A record whose three values are all zero is
// deleted rather than kept.
type DepartmentCapacityRecord struct {
	ID         string
	Department Department
	WeekStart  time.Time
	Capacity   float64
	PTO        float64
	Training   float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Effective returns the internal capacity after PTO and training,
// never negative.
func (r *DepartmentCapacityRecord) Effective() float64 {
	eff := r.Capacity - r.PTO - r.Training
	if eff < 0 {
		return 0
	}
	return eff
}

// IsZero reports whether all three numeric fields are zero, the condition
// under which the record is removed.
func (r *DepartmentCapacityRecord) IsZero() bool {
	return r.Capacity == 0 && r.PTO == 0 && r.Training == 0
}

// ExternalTeam is a subcontracted company or external team registered for
// a department. Deactivating a team excludes it from capacity sums while
// preserving its historical capacity records.
type ExternalTeam struct {
	Key        string
	Department Department
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ExternalTeamCapacityRecord is one external team's available capacity
// (headcount) for one week.
type ExternalTeamCapacityRecord struct {
	ID        string
	TeamKey   string
	WeekStart time.Time
	Capacity  float64
	CreatedAt time.Time
	UpdatedAt time.Time
}
