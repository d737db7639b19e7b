package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/loadsheet/internal/domain"
	"github.com/alexanderramin/loadsheet/internal/repository"
)

type capacityService struct {
	deptCapacity repository.DepartmentCapacityRepo
	teams        repository.ExternalTeamRepo
	teamCapacity repository.ExternalTeamCapacityRepo
	observer     UseCaseObserver
	writer       *keyedDebouncer
}

// NewCapacityService builds the capacity service. debounce is the
// coalescing window for repeated edits against the same week; pass zero
// for synchronous writes.
func NewCapacityService(
	deptCapacity repository.DepartmentCapacityRepo,
	teams repository.ExternalTeamRepo,
	teamCapacity repository.ExternalTeamCapacityRepo,
	debounce time.Duration,
	observers ...UseCaseObserver,
) CapacityService {
	s := &capacityService{
		deptCapacity: deptCapacity,
		teams:        teams,
		teamCapacity: teamCapacity,
		observer:     useCaseObserverOrNoop(observers),
	}
	s.writer = newKeyedDebouncer(debounce, func(key string, err error) {
		s.observer.ObserveUseCase(context.Background(), UseCaseEvent{
			Name:      "capacity.write",
			Success:   false,
			Err:       err,
			StartedAt: time.Now(),
			Fields:    map[string]any{"key": key},
		})
	})
	return s
}

// SetDepartmentCapacity schedules a debounced upsert of the week's
// capacity triple. An all-zero triple removes the record instead.
func (s *capacityService) SetDepartmentCapacity(ctx context.Context, dept domain.Department, week time.Time, capacity, pto, training float64) error {
	if !domain.ValidDepartments[dept] {
		return fmt.Errorf("unknown department %q", dept)
	}
	if capacity < 0 || pto < 0 || training < 0 {
		return fmt.Errorf("capacity figures must not be negative")
	}

	week = domain.WeekStart(week)
	rec := &domain.DepartmentCapacityRecord{
		ID:         uuid.New().String(),
		Department: dept,
		WeekStart:  week,
		Capacity:   capacity,
		PTO:        pto,
		Training:   training,
	}
	key := "dept/" + string(dept) + "/" + domain.DateKey(week)
	return s.writer.Schedule(key, func(ctx context.Context) error {
		if rec.IsZero() {
			return s.deptCapacity.Delete(ctx, rec.Department, rec.WeekStart)
		}
		return s.deptCapacity.Upsert(ctx, rec)
	})
}

// SetTeamCapacity schedules a debounced upsert of an external team's
// weekly capacity. A zero value removes the record.
func (s *capacityService) SetTeamCapacity(ctx context.Context, teamKey string, week time.Time, capacity float64) error {
	if capacity < 0 {
		return fmt.Errorf("capacity must not be negative")
	}
	if _, err := s.teams.Get(ctx, teamKey); err != nil {
		return fmt.Errorf("resolving external team: %w", err)
	}

	week = domain.WeekStart(week)
	rec := &domain.ExternalTeamCapacityRecord{
		ID:        uuid.New().String(),
		TeamKey:   teamKey,
		WeekStart: week,
		Capacity:  capacity,
	}
	key := "team/" + teamKey + "/" + domain.DateKey(week)
	return s.writer.Schedule(key, func(ctx context.Context) error {
		if rec.Capacity == 0 {
			return s.teamCapacity.Delete(ctx, rec.TeamKey, rec.WeekStart)
		}
		return s.teamCapacity.Upsert(ctx, rec)
	})
}

func (s *capacityService) RegisterTeam(ctx context.Context, key string, dept domain.Department) error {
	if key == "" {
		return fmt.Errorf("team key is required")
	}
	if !domain.ValidDepartments[dept] {
		return fmt.Errorf("unknown department %q", dept)
	}
	return s.teams.Upsert(ctx, &domain.ExternalTeam{
		Key:        key,
		Department: dept,
		Active:     true,
	})
}

// SetTeamActive toggles a team in or out of capacity sums. Historical
// capacity records are untouched either way.
func (s *capacityService) SetTeamActive(ctx context.Context, key string, active bool) error {
	return s.teams.SetActive(ctx, key, active)
}

func (s *capacityService) Flush(ctx context.Context) error {
	return s.writer.Flush(ctx)
}
