package queries

import (
	"context"

	"courierbot/internal/core/domain/model/order"
)

// GetRecentOrdersQueryHandler reads the completed history. The history is
// bounded by the configured retention, so fewer orders than asked for may come back.
type GetRecentOrdersQueryHandler struct {
	uowFactory ReadUoWFactory
}

func NewGetRecentOrdersQueryHandler(uowFactory ReadUoWFactory) GetRecentOrdersQueryHandler {
	return GetRecentOrdersQueryHandler{uowFactory: uowFactory}
}

func (h GetRecentOrdersQueryHandler) Handle(ctx context.Context, query GetRecentOrdersQuery) ([]order.Snapshot, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var snapshots []order.Snapshot
	err := read(ctx, h.uowFactory, func(uow ReadUoW) error {
		history, err := uow.OrderRepository().ListHistory(ctx, query.Limit())
		if err != nil {
			return err
		}
		snapshots = snapshotsOf(history)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return snapshots, nil
}
