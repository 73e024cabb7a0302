package queries

import (
	"errors"
	"time"

	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/pkg/guard"
)

var ErrTrackOrderQueryIsNotConstructed = errors.New(
	"TrackOrderQuery must be created via NewTrackOrderQuery constructor",
)

// TrackOrderQuery is a customer asking where their order is.
//
// Example:
//
//	query, err := NewTrackOrderQuery(customerID, number)
//	if err != nil {
//	    return err
//	}
//	tracking, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrNotAuthorized) {
//	    // Not this customer's order
//	}
//	fmt.Printf("Order %s is %s, driver %s", tracking.Number, tracking.Status, tracking.DriverName)
type TrackOrderQuery struct {
	customer    kernel.ActorID
	orderNumber kernel.OrderNumber

	guard guard.ConstructorGuard
}

func NewTrackOrderQuery(customer kernel.ActorID, number kernel.OrderNumber) (TrackOrderQuery, error) {
	if err := errors.Join(
		customer.Validate(),
		number.Validate(),
	); err != nil {
		return TrackOrderQuery{}, err
	}

	return TrackOrderQuery{
		customer:    customer,
		orderNumber: number,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q TrackOrderQuery) Validate() error {
	return q.guard.Validate(ErrTrackOrderQueryIsNotConstructed)
}

func (q TrackOrderQuery) Customer() kernel.ActorID {
	return q.customer
}

func (q TrackOrderQuery) OrderNumber() kernel.OrderNumber {
	return q.orderNumber
}

// TrackOrderQueryResponse is what a customer may see of their order. It leaves
// out the operator and the internal notes.
type TrackOrderQueryResponse struct {
	Number     kernel.OrderNumber
	Status     order.Status
	DriverName string
	Milestones map[order.Milestone]time.Time
}
