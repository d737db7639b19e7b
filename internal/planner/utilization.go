package planner

import (
	"math"
	"time"

	"github.com/alexanderramin/loadsheet/internal/domain"
)

// UtilizationInput carries the quoted and consumed figures for one
// (project, department) pair. ChangeOrderQuoted is the sum of
// ChangeOrder.HoursQuoted for that pair.
type UtilizationInput struct {
	Quoted            float64
	ChangeOrderQuoted float64
	Used              float64
	Forecast          float64
}

// UtilizationPercent computes the utilization percentage, rounded to the
// nearest integer. With nothing quoted the result is 100 when any hours
// are consumed and 0 otherwise.
func UtilizationPercent(in UtilizationInput) int {
	denom := in.Quoted + in.ChangeOrderQuoted
	numer := in.Used + in.Forecast
	if denom == 0 {
		if numer > 0 {
			return 100
		}
		return 0
	}
	return int(math.Round(100 * numer / denom))
}

// TierFor classifies a utilization percentage into its severity tier.
func TierFor(percent int) domain.UtilizationTier {
	switch {
	case percent >= 100:
		return domain.TierCritical
	case percent >= 90:
		return domain.TierHigh
	case percent >= 70:
		return domain.TierModerate
	default:
		return domain.TierLow
	}
}

// SplitUsedForecast divides assignment hours into used (weeks strictly
// before the current week) and forecast (the current week and later).
// The boundary is the Monday of now's week, date-only in UTC; it is a
// hard cutoff that moves as "now" moves.
func SplitUsedForecast(assignments []domain.Assignment, now time.Time) (used, forecast float64) {
	boundary := domain.WeekStart(now)
	for _, a := range assignments {
		if domain.WeekStart(a.WeekStart).Before(boundary) {
			used += a.EffectiveHours()
		} else {
			forecast += a.EffectiveHours()
		}
	}
	return used, forecast
}
