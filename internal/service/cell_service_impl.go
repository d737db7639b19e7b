package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/loadsheet/internal/contract"
	"github.com/alexanderramin/loadsheet/internal/domain"
	"github.com/alexanderramin/loadsheet/internal/planner"
	"github.com/alexanderramin/loadsheet/internal/repository"
)

// ErrChangeOrderRequired rejects a change-order edit submitted without a
// selected change order.
var ErrChangeOrderRequired = errors.New("change order mode requires a selected change order")

type cellService struct {
	assignments  repository.AssignmentRepo
	employees    repository.EmployeeRepo
	changeOrders repository.ChangeOrderRepo
	observer     UseCaseObserver
}

func NewCellService(
	assignments repository.AssignmentRepo,
	employees repository.EmployeeRepo,
	changeOrders repository.ChangeOrderRepo,
	observers ...UseCaseObserver,
) CellService {
	return &cellService{
		assignments:  assignments,
		employees:    employees,
		changeOrders: changeOrders,
		observer:     useCaseObserverOrNoop(observers),
	}
}

func (s *cellService) EditCell(ctx context.Context, req contract.CellEditRequest) (result *contract.CellEditResult, err error) {
	started := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "cell.edit",
			Duration:  time.Since(started),
			Success:   err == nil,
			Err:       err,
			StartedAt: started,
			Fields: map[string]any{
				"project":    req.ProjectID,
				"department": string(req.Department),
				"week":       domain.DateKey(req.Week),
			},
		})
	}()

	if req.UseChangeOrder && req.ChangeOrderID == "" {
		return nil, ErrChangeOrderRequired
	}
	if !domain.ValidDepartments[req.Department] {
		return nil, fmt.Errorf("unknown department %q", req.Department)
	}
	if req.ChangeOrderID != "" {
		co, coErr := s.changeOrders.GetByID(ctx, req.ChangeOrderID)
		if coErr != nil {
			return nil, fmt.Errorf("resolving change order: %w", coErr)
		}
		if co.ProjectID != req.ProjectID || co.Department != req.Department {
			return nil, fmt.Errorf("change order %q does not belong to this cell", co.Name)
		}
	}

	cell := domain.CellRef{
		ProjectID:  req.ProjectID,
		Department: req.Department,
		WeekStart:  domain.WeekStart(req.Week),
	}

	current, err := s.assignments.ListCell(ctx, cell)
	if err != nil {
		return nil, err
	}

	// A breakdown is authoritative for its own sum: with no explicit total
	// it supplies one, and an explicit total that disagrees is rejected
	// rather than silently overridden.
	if len(req.Breakdown) > 0 {
		var sum float64
		for _, sh := range req.Breakdown {
			sum += sh.Hours
		}
		switch {
		case req.TotalHours == 0:
			req.TotalHours = sum
		case math.Abs(req.TotalHours-sum) > 1e-9:
			return nil, fmt.Errorf("stage breakdown sums to %.2f but total hours is %.2f", sum, req.TotalHours)
		}
	}

	selected, err := s.resolveSelection(ctx, req.EmployeeIDs)
	if err != nil {
		return nil, err
	}

	// The placeholder is lazily provisioned only when hours land on no
	// real resource; resolving it before the reconciler runs keeps the
	// reconciler pure, and a provision failure aborts before anything is
	// written.
	var placeholder *domain.Employee
	if req.TotalHours != 0 && len(selected) == 0 {
		placeholder, err = s.placeholderFor(ctx, req.Department)
		if err != nil {
			return nil, fmt.Errorf("provisioning placeholder: %w", err)
		}
	}

	ops, err := planner.Reconcile(planner.CellEdit{
		Cell:           cell,
		TotalHours:     req.TotalHours,
		Stage:          req.Stage,
		StageBreakdown: req.Breakdown,
		Selected:       selected,
		Comment:        req.Comment,
		ChangeOrderID:  req.ChangeOrderID,
		ScioHours:      req.ScioHours,
		ExternalHours:  req.ExternalHours,
	}, current, placeholder)
	if err != nil {
		return nil, err
	}

	return s.executeOps(ctx, cell, ops)
}

func (s *cellService) ClearCell(ctx context.Context, cell domain.CellRef) error {
	started := time.Now()
	err := s.assignments.DeleteCell(ctx, cell)
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "cell.clear",
		Duration:  time.Since(started),
		Success:   err == nil,
		Err:       err,
		StartedAt: started,
		Fields: map[string]any{
			"project":    cell.ProjectID,
			"department": string(cell.Department),
		},
	})
	return err
}

func (s *cellService) CopyCell(ctx context.Context, cell domain.CellRef) (planner.ClipboardCell, error) {
	records, err := s.assignments.ListCell(ctx, cell)
	if err != nil {
		return planner.ClipboardCell{}, err
	}
	return planner.CopyCell(cell, records), nil
}

func (s *cellService) PasteCell(ctx context.Context, snap planner.ClipboardCell, target domain.CellRef) (result *contract.CellEditResult, err error) {
	started := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "cell.paste",
			Duration:  time.Since(started),
			Success:   err == nil,
			Err:       err,
			StartedAt: started,
			Fields: map[string]any{
				"source_project": snap.SourceProjectID,
				"target_project": target.ProjectID,
			},
		})
	}()

	target.WeekStart = domain.WeekStart(target.WeekStart)
	current, err := s.assignments.ListCell(ctx, target)
	if err != nil {
		return nil, err
	}
	orders, err := s.changeOrders.ListByProjectDept(ctx, target.ProjectID, target.Department)
	if err != nil {
		return nil, err
	}

	ops := planner.PasteCell(snap, target, orders, current)
	return s.executeOps(ctx, target, ops)
}

// resolveSelection loads the full employee records for the IDs chosen in
// the editor.
func (s *cellService) resolveSelection(ctx context.Context, ids []string) ([]domain.Employee, error) {
	selected := make([]domain.Employee, 0, len(ids))
	for _, id := range ids {
		e, err := s.employees.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("resolving selected employee: %w", err)
		}
		selected = append(selected, *e)
	}
	return selected, nil
}

// placeholderFor finds or lazily creates the department's placeholder
// employee. A racing create collapses onto the existing row via the
// unique (department, name) index.
func (s *cellService) placeholderFor(ctx context.Context, dept domain.Department) (*domain.Employee, error) {
	name := domain.PlaceholderName(dept)
	existing, err := s.employees.GetByName(ctx, dept, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	placeholder := domain.NewPlaceholder(dept, time.Now().UTC())
	placeholder.ID = uuid.New().String()
	if createErr := s.employees.Create(ctx, placeholder); createErr != nil {
		if repository.IsUniqueViolation(createErr) {
			return s.employees.GetByName(ctx, dept, name)
		}
		return nil, createErr
	}
	return placeholder, nil
}

// executeOps applies a reconciler op list in two phases: every zero is
// awaited before any update or create runs. Zeroing a record removes it
// from the natural-key index, so a surviving record updated onto the same
// (employee, stage, change order) key does not collide with it. Within a
// phase, operations touch distinct records and run concurrently; a create
// that loses a uniqueness race is retried as an update against the
// surviving row. There is no rollback: a mid-sequence failure leaves
// completed writes in place and is surfaced to the caller.
func (s *cellService) executeOps(ctx context.Context, cell domain.CellRef, ops []planner.Operation) (*contract.CellEditResult, error) {
	var created, updated, zeroed atomic.Int64

	var zeros, writes []planner.Operation
	for _, op := range ops {
		if op.Kind == planner.OpZero {
			zeros = append(zeros, op)
		} else {
			writes = append(writes, op)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, op := range zeros {
		g.Go(func() error {
			if err := s.assignments.Zero(gctx, op.AssignmentID); err != nil {
				return err
			}
			zeroed.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, op := range writes {
		g.Go(func() error {
			switch op.Kind {
			case planner.OpCreate:
				if err := s.createFromFields(gctx, cell, op.Fields); err != nil {
					return err
				}
				created.Add(1)
			case planner.OpUpdate:
				a, err := assignmentFromFields(op.AssignmentID, op.Fields)
				if err != nil {
					return err
				}
				if err := s.assignments.Update(gctx, a); err != nil {
					return err
				}
				updated.Add(1)
			default:
				return fmt.Errorf("unknown operation kind %q", op.Kind)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &contract.CellEditResult{
		Created: int(created.Load()),
		Updated: int(updated.Load()),
		Zeroed:  int(zeroed.Load()),
	}, nil
}

func (s *cellService) createFromFields(ctx context.Context, cell domain.CellRef, f planner.AssignmentFields) error {
	a, err := assignmentFromFields(uuid.New().String(), f)
	if err != nil {
		return err
	}
	if createErr := s.assignments.Create(ctx, a); createErr != nil {
		if !repository.IsUniqueViolation(createErr) {
			return createErr
		}
		// Another writer created the same (employee, stage, change order)
		// slot first; fold this write into it.
		existing, findErr := s.assignments.FindInCell(ctx, cell, f.EmployeeID, f.Stage, f.ChangeOrderID)
		if findErr != nil {
			return fmt.Errorf("recovering from create conflict: %w", findErr)
		}
		a.ID = existing.ID
		return s.assignments.Update(ctx, a)
	}
	return nil
}

func assignmentFromFields(id string, f planner.AssignmentFields) (*domain.Assignment, error) {
	week, err := time.Parse(domain.DateLayout, f.WeekStart)
	if err != nil {
		return nil, fmt.Errorf("parsing operation week: %w", err)
	}
	now := time.Now().UTC()
	return &domain.Assignment{
		ID:            id,
		EmployeeID:    f.EmployeeID,
		ProjectID:     f.ProjectID,
		Department:    f.Department,
		WeekStart:     week,
		Hours:         f.Hours,
		ScioHours:     f.ScioHours,
		ExternalHours: f.ExternalHours,
		Stage:         f.Stage,
		Comment:       f.Comment,
		ChangeOrderID: f.ChangeOrderID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}
