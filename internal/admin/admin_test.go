package admin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-client/internal/domain/event"
	"restaurant-client/internal/domain/order"
	"restaurant-client/internal/domain/reservation"
)

type mockAPI struct {
	orders       []order.AdminOrder
	reservations []reservation.AdminReservation
	events       []event.AdminEvent

	updatedCollection string
	updatedID         int64
	updatedStatus     string
}

func (m *mockAPI) ListAdminOrders(_ context.Context) ([]order.AdminOrder, error) {
	return m.orders, nil
}

func (m *mockAPI) UpdateOrderStatus(_ context.Context, id int64, s order.Status) error {
	m.updatedCollection, m.updatedID, m.updatedStatus = "orders", id, string(s)
	return nil
}

func (m *mockAPI) ListAdminReservations(_ context.Context) ([]reservation.AdminReservation, error) {
	return m.reservations, nil
}

func (m *mockAPI) UpdateReservationStatus(_ context.Context, id int64, s reservation.Status) error {
	m.updatedCollection, m.updatedID, m.updatedStatus = "reservations", id, string(s)
	return nil
}

func (m *mockAPI) ListAdminEvents(_ context.Context) ([]event.AdminEvent, error) {
	return m.events, nil
}

func (m *mockAPI) UpdateEventStatus(_ context.Context, id int64, s event.Status) error {
	m.updatedCollection, m.updatedID, m.updatedStatus = "events", id, string(s)
	return nil
}

func TestOrderBoard(t *testing.T) {
	api := &mockAPI{orders: []order.AdminOrder{
		{ID: 1, UserName: "Dana", Status: order.StatusPending},
	}}
	board := NewOrderBoard(api)
	require.NoError(t, board.Load(context.Background()))

	require.NoError(t, board.UpdateStatus(context.Background(), 1, order.StatusCompleted))

	assert.Equal(t, "orders", api.updatedCollection)
	assert.Equal(t, int64(1), api.updatedID)
	assert.Equal(t, "completed", api.updatedStatus)
	got, ok := board.Get(1)
	require.True(t, ok)
	assert.Equal(t, order.StatusCompleted, got.Status)
	assert.Equal(t, "Dana", got.UserName)
}

func TestReservationBoard(t *testing.T) {
	api := &mockAPI{reservations: []reservation.AdminReservation{
		{ID: 9, Guests: 4, Status: reservation.StatusPending},
	}}
	board := NewReservationBoard(api)
	require.NoError(t, board.Load(context.Background()))

	require.NoError(t, board.UpdateStatus(context.Background(), 9, reservation.StatusApproved))

	assert.Equal(t, "reservations", api.updatedCollection)
	got, ok := board.Get(9)
	require.True(t, ok)
	assert.Equal(t, reservation.StatusApproved, got.Status)
	assert.Equal(t, 4, got.Guests)
}

func TestEventBoard(t *testing.T) {
	api := &mockAPI{events: []event.AdminEvent{
		{ID: 3, Type: "birthday", Guests: 30, Status: event.StatusPending},
	}}
	board := NewEventBoard(api)
	require.NoError(t, board.Load(context.Background()))

	require.NoError(t, board.UpdateStatus(context.Background(), 3, event.StatusCancelled))

	assert.Equal(t, "events", api.updatedCollection)
	got, ok := board.Get(3)
	require.True(t, ok)
	assert.Equal(t, event.StatusCancelled, got.Status)
}
