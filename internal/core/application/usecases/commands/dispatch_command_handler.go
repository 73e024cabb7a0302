package commands

import (
	"context"

	"courierbot/internal/core/domain/model/driver"
	"courierbot/internal/core/domain/services"
	"courierbot/internal/pkg/metrics"
)

// DispatchCommandHandler lists the connected drivers a draft can go to.
//
// Example:
//
//	cmd, _ := NewDispatchCommand(operatorID, number)
//	candidates, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, services.ErrNoDriversAvailable) {
//	    // Tell the operator nobody is online
//	}
//	// Present candidates, then confirm with AssignDriverCommand
type DispatchCommandHandler struct {
	uowFactory UoWFactory
	matcher    services.AssignmentMatcher
}

func NewDispatchCommandHandler(uowFactory UoWFactory, matcher services.AssignmentMatcher) DispatchCommandHandler {
	return DispatchCommandHandler{
		uowFactory: uowFactory,
		matcher:    matcher,
	}
}

// Handle returns the candidates sorted by driver id.
//
// Returns:
//   - *errs.ObjectNotFoundError if no set holds the order
//   - order.ErrNotDraft if the order was dispatched already
//   - *errs.NotAuthorizedError if another operator created the draft
//   - joined *errs.ValueIsRequiredError for missing customer or location
//   - services.ErrNoDriversAvailable if the registry is empty
func (h *DispatchCommandHandler) Handle(ctx context.Context, cmd DispatchCommand) (_ []driver.Info, err error) {
	defer func() { metrics.ObserveRejection("dispatch", err) }()

	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	draft, err := uow.OrderRepository().Get(ctx, cmd.OrderNumber())
	if err != nil {
		return nil, err
	}

	return h.matcher.Candidates(draft, cmd.Operator(), uow.DriverRegistry().List())
}
