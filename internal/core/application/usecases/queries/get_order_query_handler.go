package queries

import (
	"context"

	"courierbot/internal/core/domain/model/order"
)

// GetOrderQueryHandler reads a single order. Returns *errs.ObjectNotFoundError
// when no set holds it, including completed orders trimmed from the history.
type GetOrderQueryHandler struct {
	uowFactory ReadUoWFactory
}

func NewGetOrderQueryHandler(uowFactory ReadUoWFactory) GetOrderQueryHandler {
	return GetOrderQueryHandler{uowFactory: uowFactory}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (order.Snapshot, error) {
	if err := query.Validate(); err != nil {
		return order.Snapshot{}, err
	}

	var snapshot order.Snapshot
	err := read(ctx, h.uowFactory, func(uow ReadUoW) error {
		o, err := uow.OrderRepository().Get(ctx, query.OrderNumber())
		if err != nil {
			return err
		}
		snapshot = o.Snapshot()
		return nil
	})
	if err != nil {
		return order.Snapshot{}, err
	}

	return snapshot, nil
}
