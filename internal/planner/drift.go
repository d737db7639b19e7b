package planner

import (
	"time"

	"github.com/alexanderramin/loadsheet/internal/domain"
)

// DriftMark classifies one cell's week against a department's schedule
// windows.
type DriftMark string

const (
	// DriftInRange means the week falls inside the effective window; no
	// indicator is rendered.
	DriftInRange DriftMark = "in_range"
	// DriftShiftGapIdle marks an unoccupied week inside the gap opened by
	// a schedule shift; rendered as a soft background.
	DriftShiftGapIdle DriftMark = "shift_gap_idle"
	// DriftShiftGapOccupied marks a shifted-gap week that still carries
	// hours; rendered as a dashed border.
	DriftShiftGapOccupied DriftMark = "shift_gap_occupied"
	// DriftOutOfRange marks hours living outside any schedule window.
	DriftOutOfRange DriftMark = "out_of_range"
)

// Window is a half-open date span [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether week falls inside the window.
func (w Window) Contains(week time.Time) bool {
	return !week.Before(w.Start) && week.Before(w.End)
}

// IsZero reports whether the window is unset.
func (w Window) IsZero() bool {
	return w.Start.IsZero() && w.End.IsZero()
}

// DepartmentWindows computes the two schedule windows for one
// (project, department) pair from its configured stage entries.
//
// The effective window is the union of the entries' actual spans, where
// an explicit department start date wins over the week offset. The
// expected window applies the minimum and maximum configured week offsets
// to the current project start: where the schedule would sit had nothing
// shifted since configuration. ok is false when no entries exist.
func DepartmentWindows(projectStart time.Time, entries []domain.StageConfigEntry) (effective, expected Window, ok bool) {
	if len(entries) == 0 {
		return Window{}, Window{}, false
	}

	start := domain.WeekStart(projectStart)
	minOffset, maxOffset := 0, 0
	for i, e := range entries {
		effStart := e.EffectiveStart(projectStart)
		effEnd := e.EffectiveEnd(projectStart)
		if i == 0 || effStart.Before(effective.Start) {
			effective.Start = effStart
		}
		if i == 0 || effEnd.After(effective.End) {
			effective.End = effEnd
		}

		lo := e.WeekStart - 1
		hi := e.WeekEnd
		if i == 0 || lo < minOffset {
			minOffset = lo
		}
		if i == 0 || hi > maxOffset {
			maxOffset = hi
		}
	}

	expected.Start = start.AddDate(0, 0, minOffset*7)
	expected.End = start.AddDate(0, 0, maxOffset*7)
	return effective, expected, true
}

// HasShift reports whether the department's schedule has moved: the
// effective start differs from the expected start, compared at day
// precision.
func HasShift(effective, expected Window) bool {
	return !domain.SameDate(effective.Start, expected.Start)
}

// shiftGap returns the window between the effective and expected starts,
// exclusive of the later boundary.
func shiftGap(effective, expected Window) Window {
	if effective.Start.Before(expected.Start) {
		return Window{Start: effective.Start, End: expected.Start}
	}
	return Window{Start: expected.Start, End: effective.Start}
}

// ClassifyWeek assigns the drift mark for one cell. A plain out-of-range
// flag would fire for every week of a legitimate reschedule; isolating
// the exact shift gap keeps those quiet while still surfacing hours with
// no supporting window at all.
func ClassifyWeek(week time.Time, cellHours float64, effective, expected Window) DriftMark {
	week = domain.WeekStart(week)

	if effective.Contains(week) {
		return DriftInRange
	}

	if HasShift(effective, expected) && shiftGap(effective, expected).Contains(week) {
		if cellHours == 0 {
			return DriftShiftGapIdle
		}
		return DriftShiftGapOccupied
	}

	if cellHours != 0 {
		return DriftOutOfRange
	}
	return DriftInRange
}
