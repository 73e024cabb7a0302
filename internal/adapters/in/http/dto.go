package http

import (
	"time"

	"courierbot/internal/core/application/usecases/queries"
	"courierbot/internal/core/domain/model/driver"
	"courierbot/internal/core/domain/model/order"
)

type OrderResponse struct {
	Number       string               `json:"orderNumber"`
	Status       string               `json:"status"`
	CreatedBy    string               `json:"createdBy"`
	CustomerID   string               `json:"customerId,omitempty"`
	Location     string               `json:"location,omitempty"`
	Notes        string               `json:"notes,omitempty"`
	Payment      string               `json:"payment"`
	DriverID     string               `json:"driverId,omitempty"`
	PendingField string               `json:"pendingField,omitempty"`
	Milestones   map[string]time.Time `json:"milestones"`
}

func toOrderResponse(s order.Snapshot) OrderResponse {
	r := OrderResponse{
		Number:     s.Number.String(),
		Status:     s.Status.String(),
		CreatedBy:  s.CreatedBy.String(),
		CustomerID: s.CustomerID.String(),
		Location:   s.Location,
		Notes:      s.Notes,
		Payment:    s.Payment.String(),
		DriverID:   s.DriverID.String(),
		Milestones: milestones(s.Milestones),
	}
	if s.PendingField != order.FieldUnknown {
		r.PendingField = s.PendingField.String()
	}
	return r
}

func toOrderResponses(snapshots []order.Snapshot) []OrderResponse {
	responses := make([]OrderResponse, 0, len(snapshots))
	for _, s := range snapshots {
		responses = append(responses, toOrderResponse(s))
	}
	return responses
}

type DriverResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func toDriverResponses(drivers []driver.Info) []DriverResponse {
	responses := make([]DriverResponse, 0, len(drivers))
	for _, d := range drivers {
		responses = append(responses, DriverResponse{ID: d.ID().String(), Name: d.DisplayName()})
	}
	return responses
}

type TrackingResponse struct {
	Number     string               `json:"orderNumber"`
	Status     string               `json:"status"`
	DriverName string               `json:"driverName"`
	Milestones map[string]time.Time `json:"milestones"`
}

func toTrackingResponse(t queries.TrackOrderQueryResponse) TrackingResponse {
	return TrackingResponse{
		Number:     t.Number.String(),
		Status:     t.Status.String(),
		DriverName: t.DriverName,
		Milestones: milestones(t.Milestones),
	}
}

func milestones(at map[order.Milestone]time.Time) map[string]time.Time {
	out := make(map[string]time.Time, len(at))
	for m, t := range at {
		out[string(m)] = t
	}
	return out
}

type CreateOrderResponse struct {
	Number string `json:"orderNumber"`
}

type FieldRequest struct {
	Value string `json:"value"`
}

type InputRequest struct {
	Text string `json:"text"`
}

type SubmitInputResponse struct {
	Number string `json:"orderNumber"`
	Field  string `json:"field"`
}

type PaymentRequest struct {
	Method string `json:"method"`
}

type AssignRequest struct {
	DriverID string `json:"driverId"`
}

type AdvanceResponse struct {
	Order          OrderResponse `json:"order"`
	AlreadyInState bool          `json:"alreadyInState"`
}

type ConnectRequest struct {
	Name string `json:"name"`
}

type ConnectResponse struct {
	IsNew bool `json:"isNew"`
}

type DisconnectResponse struct {
	Removed bool `json:"removed"`
}

type RatingRequest struct {
	Stars int `json:"stars"`
}

type CommentRequest struct {
	Text string `json:"text"`
}

type FeedbackResponse struct {
	Number string `json:"orderNumber"`
}
