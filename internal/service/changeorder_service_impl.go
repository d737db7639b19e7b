package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/loadsheet/internal/contract"
	"github.com/alexanderramin/loadsheet/internal/db"
	"github.com/alexanderramin/loadsheet/internal/domain"
	"github.com/alexanderramin/loadsheet/internal/repository"
)

type changeOrderService struct {
	changeOrders repository.ChangeOrderRepo
	assignments  repository.AssignmentRepo
	uow          db.UnitOfWork
	observer     UseCaseObserver
}

func NewChangeOrderService(
	changeOrders repository.ChangeOrderRepo,
	assignments repository.AssignmentRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ChangeOrderService {
	return &changeOrderService{
		changeOrders: changeOrders,
		assignments:  assignments,
		uow:          uow,
		observer:     useCaseObserverOrNoop(observers),
	}
}

func (s *changeOrderService) Create(ctx context.Context, co *domain.ChangeOrder) error {
	if err := co.Validate(); err != nil {
		return err
	}
	if co.ID == "" {
		co.ID = uuid.New().String()
	}
	co.CreatedAt = time.Now().UTC()
	return s.changeOrders.Create(ctx, co)
}

// List returns the pair's change orders with their consumed hours, always
// derived live from the assignments that reference each order.
func (s *changeOrderService) List(ctx context.Context, projectID string, dept domain.Department) ([]contract.ChangeOrderView, error) {
	orders, err := s.changeOrders.ListByProjectDept(ctx, projectID, dept)
	if err != nil {
		return nil, err
	}

	views := make([]contract.ChangeOrderView, 0, len(orders))
	for _, co := range orders {
		refs, err := s.assignments.ListByChangeOrder(ctx, co.ID)
		if err != nil {
			return nil, err
		}
		var used float64
		for _, a := range refs {
			used += a.EffectiveHours()
		}
		views = append(views, contract.ChangeOrderView{
			ID:          co.ID,
			Name:        co.Name,
			Department:  co.Department,
			HoursQuoted: co.HoursQuoted,
			HoursUsed:   used,
			CreatedAt:   co.CreatedAt,
		})
	}
	return views, nil
}

// Delete removes a change order. Assignments still referencing it keep
// their hours but lose the budget attribution, so the order must be
// unreferenced first. Running the check and the delete in one transaction
// keeps a concurrent edit from re-attaching hours between the two.
func (s *changeOrderService) Delete(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txAssignments := repository.NewSQLiteAssignmentRepo(tx)
		txOrders := repository.NewSQLiteChangeOrderRepo(tx)

		refs, err := txAssignments.ListByChangeOrder(ctx, id)
		if err != nil {
			return err
		}
		for _, a := range refs {
			if a.EffectiveHours() != 0 {
				return fmt.Errorf("change order still holds %0.1f assigned hours", a.EffectiveHours())
			}
		}
		return txOrders.Delete(ctx, id)
	})
}
