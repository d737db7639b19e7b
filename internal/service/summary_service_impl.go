package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/loadsheet/internal/contract"
	"github.com/alexanderramin/loadsheet/internal/domain"
	"github.com/alexanderramin/loadsheet/internal/planner"
	"github.com/alexanderramin/loadsheet/internal/repository"
)

type summaryService struct {
	assignments  repository.AssignmentRepo
	projects     repository.ProjectRepo
	budgets      repository.BudgetRepo
	changeOrders repository.ChangeOrderRepo
	deptCapacity repository.DepartmentCapacityRepo
	teams        repository.ExternalTeamRepo
	teamCapacity repository.ExternalTeamCapacityRepo
	stageConfig  repository.StageConfigRepo

	vocab      planner.StageVocabulary
	aggregator planner.CapacityAggregator
	cache      planner.IndexCache
	observer   UseCaseObserver

	// now is swappable for tests; the used/forecast boundary depends on it.
	now func() time.Time
}

func NewSummaryService(
	assignments repository.AssignmentRepo,
	projects repository.ProjectRepo,
	budgets repository.BudgetRepo,
	changeOrders repository.ChangeOrderRepo,
	deptCapacity repository.DepartmentCapacityRepo,
	teams repository.ExternalTeamRepo,
	teamCapacity repository.ExternalTeamCapacityRepo,
	stageConfig repository.StageConfigRepo,
	vocab planner.StageVocabulary,
	aggregator planner.CapacityAggregator,
	observers ...UseCaseObserver,
) SummaryService {
	return &summaryService{
		assignments:  assignments,
		projects:     projects,
		budgets:      budgets,
		changeOrders: changeOrders,
		deptCapacity: deptCapacity,
		teams:        teams,
		teamCapacity: teamCapacity,
		stageConfig:  stageConfig,
		vocab:        vocab,
		aggregator:   aggregator,
		observer:     useCaseObserverOrNoop(observers),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// index returns the memoized assignment index, rebuilding only when the
// repo's version counter moved since the last build.
func (s *summaryService) index(ctx context.Context) (*planner.Index, error) {
	var buildErr error
	idx := s.cache.Get(s.assignments.Version(), func() *planner.Index {
		all, err := s.assignments.List(ctx)
		if err != nil {
			buildErr = err
			return planner.BuildIndex(nil, s.vocab)
		}
		return planner.BuildIndex(all, s.vocab)
	})
	if buildErr != nil {
		s.cache.Invalidate()
		return nil, fmt.Errorf("building assignment index: %w", buildErr)
	}
	return idx, nil
}

func (s *summaryService) Grid(ctx context.Context, req contract.GridRequest) (resp *contract.GridResponse, err error) {
	started := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "summary.grid",
			Duration:  time.Since(started),
			Success:   err == nil,
			Err:       err,
			StartedAt: started,
			Fields: map[string]any{
				"project":    req.ProjectID,
				"department": string(req.Department),
			},
		})
	}()

	project, err := s.projects.GetByID(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	idx, err := s.index(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := s.stageConfig.ListByProjectDept(ctx, req.ProjectID, req.Department)
	if err != nil {
		return nil, err
	}
	effective, expected, windowsOK := planner.DepartmentWindows(project.StartDate, entries)

	weeks := weekSpan(req.From, req.To)
	cells := make([]contract.CellSummaryView, 0, len(weeks))
	for _, week := range weeks {
		ref := domain.CellRef{ProjectID: req.ProjectID, Department: req.Department, WeekStart: week}
		agg := idx.Cell(ref)

		mark := planner.DriftInRange
		if windowsOK {
			mark = planner.ClassifyWeek(week, agg.TotalHours, effective, expected)
		}
		cells = append(cells, contract.CellSummaryView{
			ProjectID:     req.ProjectID,
			Department:    req.Department,
			Week:          week,
			TotalHours:    agg.TotalHours,
			ExternalHours: agg.ExternalHours,
			DominantStage: agg.DominantStage,
			Comment:       agg.Comment,
			RecordCount:   len(agg.Assignments),
			Drift:         mark,
		})
	}

	capacity, err := s.capacityRows(ctx, idx, req.Department, weeks)
	if err != nil {
		return nil, err
	}
	utilization, err := s.utilizationReport(ctx, req.ProjectID, req.Department)
	if err != nil {
		return nil, err
	}

	return &contract.GridResponse{
		ProjectID:   project.ID,
		ProjectName: project.Name,
		Department:  req.Department,
		Weeks:       weeks,
		Cells:       cells,
		Capacity:    capacity,
		Utilization: utilization,
	}, nil
}

func (s *summaryService) Utilization(ctx context.Context, projectID string, dept domain.Department) (*contract.UtilizationReport, error) {
	return s.utilizationReport(ctx, projectID, dept)
}

func (s *summaryService) CapacityRows(ctx context.Context, dept domain.Department, from, to time.Time) ([]contract.CapacityRow, error) {
	idx, err := s.index(ctx)
	if err != nil {
		return nil, err
	}
	return s.capacityRows(ctx, idx, dept, weekSpan(from, to))
}

func (s *summaryService) capacityRows(ctx context.Context, idx *planner.Index, dept domain.Department, weeks []time.Time) ([]contract.CapacityRow, error) {
	teams, err := s.teams.ListByDepartment(ctx, dept)
	if err != nil {
		return nil, err
	}

	rows := make([]contract.CapacityRow, 0, len(weeks))
	for _, week := range weeks {
		internal, err := s.deptCapacity.Get(ctx, dept, week)
		if err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				return nil, err
			}
			internal = nil
		}
		records, err := s.teamCapacity.ListWeek(ctx, week)
		if err != nil {
			return nil, err
		}

		total := s.aggregator.Total(internal, teams, records)
		raw := idx.DeptWeekTotals[planner.DeptWeekKey{Department: dept, Week: domain.DateKey(week)}]
		occupied := s.aggregator.Occupied(dept, raw)
		rows = append(rows, contract.CapacityRow{
			Department: dept,
			Week:       week,
			Total:      total,
			Occupied:   occupied,
			Available:  s.aggregator.Available(total, occupied),
		})
	}
	return rows, nil
}

func (s *summaryService) utilizationReport(ctx context.Context, projectID string, dept domain.Department) (*contract.UtilizationReport, error) {
	var quoted float64
	budget, err := s.budgets.GetByProjectDept(ctx, projectID, dept)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	} else {
		quoted = budget.HoursQuoted
	}

	orders, err := s.changeOrders.ListByProjectDept(ctx, projectID, dept)
	if err != nil {
		return nil, err
	}
	var coHours float64
	for _, co := range orders {
		coHours += co.HoursQuoted
	}

	assignments, err := s.assignments.ListByProjectDept(ctx, projectID, dept)
	if err != nil {
		return nil, err
	}
	used, forecast := planner.SplitUsedForecast(assignments, s.now())

	percent := planner.UtilizationPercent(planner.UtilizationInput{
		Quoted:            quoted,
		ChangeOrderQuoted: coHours,
		Used:              used,
		Forecast:          forecast,
	})
	return &contract.UtilizationReport{
		ProjectID:   projectID,
		Department:  dept,
		Quoted:      quoted,
		ChangeOrder: coHours,
		Used:        used,
		Forecast:    forecast,
		Percent:     percent,
		Tier:        planner.TierFor(percent),
	}, nil
}

// weekSpan lists the Mondays from the week containing from through the
// week containing to, inclusive.
func weekSpan(from, to time.Time) []time.Time {
	start := domain.WeekStart(from)
	end := domain.WeekStart(to)
	var weeks []time.Time
	for w := start; !w.After(end); w = w.AddDate(0, 0, 7) {
		weeks = append(weeks, w)
	}
	return weeks
}
