package planner

import "github.com/alexanderramin/loadsheet/internal/domain"

// DefaultHoursPerResourceWeek converts assignment hours into
// headcount-equivalents for departments whose capacity is expressed in
// headcount.
const DefaultHoursPerResourceWeek = 45.0

// CapacityAggregator computes weekly capacity figures. HoursDepartment is
// the one department whose occupancy is counted in raw hours; every other
// department's hours are divided by HoursPerResourceWeek so occupancy is
// comparable to headcount capacity.
type CapacityAggregator struct {
	HoursDepartment      domain.Department
	HoursPerResourceWeek float64
}

// NewCapacityAggregator returns an aggregator with the standard
// configuration: BUILD counts in hours at 45h per resource-week.
func NewCapacityAggregator() CapacityAggregator {
	return CapacityAggregator{
		HoursDepartment:      domain.DeptBUILD,
		HoursPerResourceWeek: DefaultHoursPerResourceWeek,
	}
}

// Total returns the department's available capacity for a week: internal
// capacity net of PTO and training (floored at zero) plus the capacity of
// every active external team. Inactive teams keep their records but
// contribute nothing. internal may be nil when no record exists.
func (c CapacityAggregator) Total(
	internal *domain.DepartmentCapacityRecord,
	teams []domain.ExternalTeam,
	records []domain.ExternalTeamCapacityRecord,
) float64 {
	var total float64
	if internal != nil {
		total = internal.Effective()
	}

	active := make(map[string]bool, len(teams))
	for _, t := range teams {
		if t.Active {
			active[t.Key] = true
		}
	}
	for _, r := range records {
		if active[r.TeamKey] {
			total += r.Capacity
		}
	}
	return total
}

// Occupied converts a week's raw assignment hours into the department's
// occupancy unit.
func (c CapacityAggregator) Occupied(dept domain.Department, rawHours float64) float64 {
	if dept == c.HoursDepartment {
		return rawHours
	}
	if c.HoursPerResourceWeek == 0 {
		return 0
	}
	return rawHours / c.HoursPerResourceWeek
}

// Available returns total minus occupied. Over-allocation yields a
// negative value and is surfaced as such, never clamped.
func (c CapacityAggregator) Available(total, occupied float64) float64 {
	return total - occupied
}
