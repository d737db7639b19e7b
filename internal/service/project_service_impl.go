package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/loadsheet/internal/domain"
	"github.com/alexanderramin/loadsheet/internal/repository"
)

type projectService struct {
	projects repository.ProjectRepo
	budgets  repository.BudgetRepo
}

func NewProjectService(projects repository.ProjectRepo, budgets repository.BudgetRepo) ProjectService {
	return &projectService{projects: projects, budgets: budgets}
}

func (s *projectService) Create(ctx context.Context, p *domain.Project) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Facility == "" {
		p.Facility = domain.FacilityAL
	}
	p.StartDate = domain.WeekStart(p.StartDate)
	if p.EndDate.IsZero() && p.NumberOfWeeks > 0 {
		p.EndDate = p.StartDate.AddDate(0, 0, p.NumberOfWeeks*7)
	}
	if err := p.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.projects.Create(ctx, p)
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.List(ctx)
}

func (s *projectService) Update(ctx context.Context, p *domain.Project) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()
	return s.projects.Update(ctx, p)
}

func (s *projectService) Delete(ctx context.Context, id string) error {
	return s.projects.Delete(ctx, id)
}

// SetBudget writes the quoted baseline hours for one department of the
// project.
func (s *projectService) SetBudget(ctx context.Context, projectID string, dept domain.Department, hoursQuoted float64) error {
	if !domain.ValidDepartments[dept] {
		return fmt.Errorf("unknown department %q", dept)
	}
	if hoursQuoted < 0 {
		return fmt.Errorf("quoted hours must not be negative")
	}
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return err
	}
	return s.budgets.Upsert(ctx, &domain.ProjectBudget{
		ID:          uuid.New().String(),
		ProjectID:   projectID,
		Department:  dept,
		HoursQuoted: hoursQuoted,
	})
}

type employeeService struct {
	employees repository.EmployeeRepo
}

func NewEmployeeService(employees repository.EmployeeRepo) EmployeeService {
	return &employeeService{employees: employees}
}

func (s *employeeService) Create(ctx context.Context, e *domain.Employee) error {
	if e.Name == "" {
		return fmt.Errorf("employee name is required")
	}
	if !domain.ValidDepartments[e.Department] {
		return fmt.Errorf("unknown department %q", e.Department)
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	e.IsActive = true
	return s.employees.Create(ctx, e)
}

func (s *employeeService) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	return s.employees.GetByID(ctx, id)
}

func (s *employeeService) List(ctx context.Context, dept domain.Department, includeInactive bool) ([]*domain.Employee, error) {
	return s.employees.List(ctx, dept, includeInactive)
}

func (s *employeeService) Update(ctx context.Context, e *domain.Employee) error {
	e.UpdatedAt = time.Now().UTC()
	return s.employees.Update(ctx, e)
}

// Deactivate retires an employee without touching their assignment
// history.
func (s *employeeService) Deactivate(ctx context.Context, id string) error {
	e, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return err
	}
	e.IsActive = false
	return s.employees.Update(ctx, e)
}

type stageConfigService struct {
	stageConfig repository.StageConfigRepo
	projects    repository.ProjectRepo
}

func NewStageConfigService(stageConfig repository.StageConfigRepo, projects repository.ProjectRepo) StageConfigService {
	return &stageConfigService{stageConfig: stageConfig, projects: projects}
}

func (s *stageConfigService) Add(ctx context.Context, e *domain.StageConfigEntry) error {
	if !domain.ValidDepartments[e.Department] {
		return fmt.Errorf("unknown department %q", e.Department)
	}
	if e.WeekStart < 1 || e.WeekEnd < e.WeekStart {
		return fmt.Errorf("stage span weeks %d-%d are out of order", e.WeekStart, e.WeekEnd)
	}
	if _, err := s.projects.GetByID(ctx, e.ProjectID); err != nil {
		return err
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	return s.stageConfig.Create(ctx, e)
}

func (s *stageConfigService) ListByProject(ctx context.Context, projectID string) ([]domain.StageConfigEntry, error) {
	return s.stageConfig.ListByProject(ctx, projectID)
}

func (s *stageConfigService) Update(ctx context.Context, e *domain.StageConfigEntry) error {
	if e.WeekStart < 1 || e.WeekEnd < e.WeekStart {
		return fmt.Errorf("stage span weeks %d-%d are out of order", e.WeekStart, e.WeekEnd)
	}
	return s.stageConfig.Update(ctx, e)
}

func (s *stageConfigService) Remove(ctx context.Context, id string) error {
	return s.stageConfig.Delete(ctx, id)
}
