package queries

import (
	"context"

	"courierbot/internal/core/domain/model/order"
)

// GetActiveOrdersQueryHandler reads the active set.
type GetActiveOrdersQueryHandler struct {
	uowFactory ReadUoWFactory
}

func NewGetActiveOrdersQueryHandler(uowFactory ReadUoWFactory) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{uowFactory: uowFactory}
}

// Handle returns the active orders sorted by order number.
func (h GetActiveOrdersQueryHandler) Handle(ctx context.Context, query GetActiveOrdersQuery) ([]order.Snapshot, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var snapshots []order.Snapshot
	err := read(ctx, h.uowFactory, func(uow ReadUoW) error {
		active, err := uow.OrderRepository().ListActive(ctx)
		if err != nil {
			return err
		}
		snapshots = snapshotsOf(active)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return snapshots, nil
}

func snapshotsOf(orders []*order.Order) []order.Snapshot {
	snapshots := make([]order.Snapshot, 0, len(orders))
	for _, o := range orders {
		snapshots = append(snapshots, o.Snapshot())
	}
	return snapshots
}
