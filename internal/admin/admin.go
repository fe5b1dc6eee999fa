// Package admin wires the status controller to the three staff collections.
package admin

import (
	"context"

	"restaurant-client/internal/domain/event"
	"restaurant-client/internal/domain/order"
	"restaurant-client/internal/domain/reservation"
	"restaurant-client/internal/status"
)

// API is the slice of the backend the staff boards consume.
type API interface {
	ListAdminOrders(ctx context.Context) ([]order.AdminOrder, error)
	UpdateOrderStatus(ctx context.Context, id int64, s order.Status) error
	ListAdminReservations(ctx context.Context) ([]reservation.AdminReservation, error)
	UpdateReservationStatus(ctx context.Context, id int64, s reservation.Status) error
	ListAdminEvents(ctx context.Context) ([]event.AdminEvent, error)
	UpdateEventStatus(ctx context.Context, id int64, s event.Status) error
}

// NewOrderBoard returns the staff order list controller.
func NewOrderBoard(api API) *status.Controller[order.AdminOrder, order.Status] {
	return status.NewController(status.Config[order.AdminOrder, order.Status]{
		ID:     func(o order.AdminOrder) int64 { return o.ID },
		Status: func(o order.AdminOrder) order.Status { return o.Status },
		WithStatus: func(o order.AdminOrder, s order.Status) order.AdminOrder {
			o.Status = s
			return o
		},
		List:   api.ListAdminOrders,
		Update: api.UpdateOrderStatus,
	})
}

// NewReservationBoard returns the staff reservation list controller.
func NewReservationBoard(api API) *status.Controller[reservation.AdminReservation, reservation.Status] {
	return status.NewController(status.Config[reservation.AdminReservation, reservation.Status]{
		ID:     func(r reservation.AdminReservation) int64 { return r.ID },
		Status: func(r reservation.AdminReservation) reservation.Status { return r.Status },
		WithStatus: func(r reservation.AdminReservation, s reservation.Status) reservation.AdminReservation {
			r.Status = s
			return r
		},
		List:   api.ListAdminReservations,
		Update: api.UpdateReservationStatus,
	})
}

// NewEventBoard returns the staff event request list controller.
func NewEventBoard(api API) *status.Controller[event.AdminEvent, event.Status] {
	return status.NewController(status.Config[event.AdminEvent, event.Status]{
		ID:     func(e event.AdminEvent) int64 { return e.ID },
		Status: func(e event.AdminEvent) event.Status { return e.Status },
		WithStatus: func(e event.AdminEvent, s event.Status) event.AdminEvent {
			e.Status = s
			return e
		},
		List:   api.ListAdminEvents,
		Update: api.UpdateEventStatus,
	})
}
