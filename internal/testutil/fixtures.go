package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/loadsheet/internal/domain"
)

// Project options
type ProjectOption func(*domain.Project)

func WithClient(c string) ProjectOption {
	return func(p *domain.Project) {
		p.Client = c
	}
}

func WithFacility(f domain.Facility) ProjectOption {
	return func(p *domain.Project) {
		p.Facility = f
	}
}

func WithProjectWeeks(n int) ProjectOption {
	return func(p *domain.Project) {
		p.NumberOfWeeks = n
		p.EndDate = p.StartDate.AddDate(0, 0, n*7)
	}
}

func WithStartDate(d time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = domain.WeekStart(d)
		p.EndDate = p.StartDate.AddDate(0, 0, p.NumberOfWeeks*7)
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	start := domain.WeekStart(now)
	p := &domain.Project{
		ID:            uuid.New().String(),
		Name:          name,
		Client:        "Test Client",
		StartDate:     start,
		EndDate:       start.AddDate(0, 0, 12*7),
		Facility:      domain.FacilityAL,
		NumberOfWeeks: 12,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Employee options
type EmployeeOption func(*domain.Employee)

func WithCapacity(hours float64) EmployeeOption {
	return func(e *domain.Employee) {
		e.Capacity = hours
	}
}

func WithRole(role string) EmployeeOption {
	return func(e *domain.Employee) {
		e.Role = role
	}
}

func AsExternal(team string) EmployeeOption {
	return func(e *domain.Employee) {
		e.IsExternal = true
		e.ExternalTeam = team
	}
}

func AsInactive() EmployeeOption {
	return func(e *domain.Employee) {
		e.IsActive = false
	}
}

func NewTestEmployee(name string, dept domain.Department, opts ...EmployeeOption) *domain.Employee {
	now := time.Now().UTC()
	e := &domain.Employee{
		ID:         uuid.New().String(),
		Name:       name,
		Role:       "Engineer",
		Department: dept,
		Capacity:   40,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Assignment options
type AssignmentOption func(*domain.Assignment)

func WithStage(s domain.Stage) AssignmentOption {
	return func(a *domain.Assignment) {
		a.Stage = s
	}
}

func WithSplit(scio, external float64) AssignmentOption {
	return func(a *domain.Assignment) {
		a.ScioHours = &scio
		a.ExternalHours = &external
	}
}

func WithComment(c string) AssignmentOption {
	return func(a *domain.Assignment) {
		a.Comment = c
	}
}

func WithChangeOrder(id string) AssignmentOption {
	return func(a *domain.Assignment) {
		a.ChangeOrderID = id
	}
}

func NewTestAssignment(employeeID, projectID string, dept domain.Department, week time.Time, hours float64, opts ...AssignmentOption) *domain.Assignment {
	now := time.Now().UTC()
	a := &domain.Assignment{
		ID:         uuid.New().String(),
		EmployeeID: employeeID,
		ProjectID:  projectID,
		Department: dept,
		WeekStart:  domain.WeekStart(week),
		Hours:      hours,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewTestChangeOrder builds a change order for a (project, department) pair.
func NewTestChangeOrder(projectID string, dept domain.Department, name string, quoted float64) *domain.ChangeOrder {
	return &domain.ChangeOrder{
		ID:          uuid.New().String(),
		ProjectID:   projectID,
		Department:  dept,
		Name:        name,
		HoursQuoted: quoted,
		CreatedAt:   time.Now().UTC(),
	}
}

// NewTestCapacityRecord builds a department capacity record for one week.
func NewTestCapacityRecord(dept domain.Department, week time.Time, capacity, pto, training float64) *domain.DepartmentCapacityRecord {
	now := time.Now().UTC()
	return &domain.DepartmentCapacityRecord{
		ID:         uuid.New().String(),
		Department: dept,
		WeekStart:  domain.WeekStart(week),
		Capacity:   capacity,
		PTO:        pto,
		Training:   training,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Week returns the Monday of the week offset weeks after the given anchor.
func Week(anchor time.Time, offset int) time.Time {
	return domain.WeekStart(anchor).AddDate(0, 0, offset*7)
}
