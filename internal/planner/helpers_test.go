package planner

import (
	"time"

	"github.com/alexanderramin/loadsheet/internal/domain"
)

var testVocab = StageVocabulary{
	domain.DeptMED: {domain.StageConcept, domain.StageDetailDesign, domain.StageRelease, domain.StageRedLines},
	domain.DeptHD:  {domain.StageControlsDesign, domain.StageRelease},
	domain.DeptBUILD: {
		domain.StageCabinetsFrames, domain.StageOverallAssembly,
		domain.StageFineTuning, domain.StageCommissioning,
	},
	domain.DeptPRG: {domain.StageOffline, domain.StageOnline, domain.StageDebug},
}

func week(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func makeAssignment(id, employeeID, projectID string, dept domain.Department, weekStart string, hours float64) domain.Assignment {
	return domain.Assignment{
		ID:         id,
		EmployeeID: employeeID,
		ProjectID:  projectID,
		Department: dept,
		WeekStart:  week(weekStart),
		Hours:      hours,
	}
}

func makeEmployee(id string, dept domain.Department, external bool) domain.Employee {
	return domain.Employee{
		ID:         id,
		Name:       "emp-" + id,
		Department: dept,
		Capacity:   45,
		IsActive:   true,
		IsExternal: external,
	}
}

func ptr(v float64) *float64 { return &v }
