package queries

import (
	"context"
	"fmt"

	"courierbot/internal/pkg/errs"
)

// TrackOrderQueryHandler answers customer tracking requests.
//
// Rules:
//   - drafts are not visible to customers and read as not found
//   - only the order's customer may track it
//   - the driver is shown by display name while connected, by id otherwise
type TrackOrderQueryHandler struct {
	uowFactory ReadUoWFactory
}

func NewTrackOrderQueryHandler(uowFactory ReadUoWFactory) TrackOrderQueryHandler {
	return TrackOrderQueryHandler{uowFactory: uowFactory}
}

func (h TrackOrderQueryHandler) Handle(ctx context.Context, query TrackOrderQuery) (TrackOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackOrderQueryResponse{}, err
	}

	var response TrackOrderQueryResponse
	err := read(ctx, h.uowFactory, func(uow ReadUoW) error {
		o, err := uow.OrderRepository().Get(ctx, query.OrderNumber())
		if err != nil {
			return err
		}

		if o.IsDraft() {
			return errs.NewObjectNotFoundError("orderNumber", query.OrderNumber())
		}
		if !o.CustomerID().IsEqual(query.Customer()) {
			return errs.NewNotAuthorizedError(query.Customer().String(), fmt.Sprintf("track order %s", o.Number()))
		}

		driverName := o.DriverID().String()
		if info, ok := uow.DriverRegistry().Get(o.DriverID()); ok {
			driverName = info.DisplayName()
		}

		response = TrackOrderQueryResponse{
			Number:     o.Number(),
			Status:     o.Status(),
			DriverName: driverName,
			Milestones: o.Milestones().Map(),
		}
		return nil
	})
	if err != nil {
		return TrackOrderQueryResponse{}, err
	}

	return response, nil
}
