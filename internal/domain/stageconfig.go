package domain

import "time"

// StageConfigEntry is one configured stage span for a (project, department)
// pair. Week numbers are 1-based offsets from the project start. When
// DepartmentStartDate is set it overrides the derived start; when
// DurationWeeks is set it overrides the derived span length. The planner
// consumes these entries read-only.
type StageConfigEntry struct {
	ID                  string
	ProjectID           string
	Department          Department
	Stage               Stage
	WeekStart           int
	WeekEnd             int
	DepartmentStartDate *time.Time
	DurationWeeks       *int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// SpanWeeks returns the number of weeks the entry covers: the explicit
// duration when set, otherwise the inclusive week-number span.
func (e *StageConfigEntry) SpanWeeks() int {
	if e.DurationWeeks != nil {
		return *e.DurationWeeks
	}
	span := e.WeekEnd - e.WeekStart + 1
	if span < 1 {
		return 1
	}
	return span
}

// EffectiveStart returns the actual start date of the entry: the explicit
// department start when set, otherwise the project start shifted by the
// configured week offset.
func (e *StageConfigEntry) EffectiveStart(projectStart time.Time) time.Time {
	if e.DepartmentStartDate != nil {
		return WeekStart(*e.DepartmentStartDate)
	}
	return WeekStart(projectStart).AddDate(0, 0, (e.WeekStart-1)*7)
}

// EffectiveEnd returns the exclusive end date of the entry span.
func (e *StageConfigEntry) EffectiveEnd(projectStart time.Time) time.Time {
	return e.EffectiveStart(projectStart).AddDate(0, 0, e.SpanWeeks()*7)
}
