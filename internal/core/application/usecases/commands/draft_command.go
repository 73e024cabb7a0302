package commands

import (
	"context"
	"errors"

	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/core/ports"
)

// draftTarget is the part shared by every command that addresses one draft on
// behalf of its operator.
type draftTarget struct {
	operator    kernel.ActorID
	orderNumber kernel.OrderNumber
}

func newDraftTarget(operator kernel.ActorID, number kernel.OrderNumber) (draftTarget, error) {
	if err := errors.Join(
		operator.Validate(),
		number.Validate(),
	); err != nil {
		return draftTarget{}, err
	}
	return draftTarget{operator: operator, orderNumber: number}, nil
}

func (t draftTarget) Operator() kernel.ActorID {
	return t.operator
}

func (t draftTarget) OrderNumber() kernel.OrderNumber {
	return t.orderNumber
}

// updateDraft loads an order, applies a change and stores it in one unit of work.
// Nothing is stored when the change fails.
func updateDraft(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	number kernel.OrderNumber,
	change func(repo ports.OrderRepository, draft *order.Order) error,
) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	draft, err := orderRepo.Get(ctx, number)
	if err != nil {
		return err
	}

	if err = change(orderRepo, draft); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, draft); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
