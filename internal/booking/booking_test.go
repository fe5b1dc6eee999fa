package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-client/internal/domain/event"
	"restaurant-client/internal/domain/reservation"
)

type mockAPI struct {
	mu sync.Mutex

	reservationCalls int
	eventCalls       int
	reservationErr   error
	eventErr         error

	reservations []reservation.Summary
	events       []event.Summary

	started chan struct{}
	release chan struct{}
}

func (m *mockAPI) CreateReservation(_ context.Context, _ reservation.Request) error {
	m.mu.Lock()
	m.reservationCalls++
	m.mu.Unlock()
	if m.started != nil {
		m.started <- struct{}{}
		<-m.release
	}
	return m.reservationErr
}

func (m *mockAPI) ListMyReservations(_ context.Context) ([]reservation.Summary, error) {
	return m.reservations, nil
}

func (m *mockAPI) CreateEvent(_ context.Context, _ event.Request) error {
	m.mu.Lock()
	m.eventCalls++
	m.mu.Unlock()
	return m.eventErr
}

func (m *mockAPI) ListMyEvents(_ context.Context) ([]event.Summary, error) {
	return m.events, nil
}

func tomorrow() time.Time {
	return time.Now().Add(24 * time.Hour).Truncate(time.Minute)
}

func TestReservationValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     reservation.Request
		wantErr error
	}{
		{
			name:    "missing datetime",
			req:     reservation.Request{Guests: 2},
			wantErr: reservation.ErrMissingDateTime,
		},
		{
			name:    "zero guests",
			req:     reservation.Request{DateTime: tomorrow(), Guests: 0},
			wantErr: reservation.ErrNoGuests,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &mockAPI{}
			r := NewReservations(api)

			err := r.Submit(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, api.reservationCalls, "validation failures never reach the server")
		})
	}
}

func TestReservationSubmitRefreshesList(t *testing.T) {
	api := &mockAPI{
		reservations: []reservation.Summary{
			{ID: 1, Guests: 2, Status: reservation.StatusPending},
		},
	}
	r := NewReservations(api)

	err := r.Submit(context.Background(), reservation.Request{
		DateTime: tomorrow(),
		Guests:   2,
		Notes:    "window table",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, api.reservationCalls)
	require.Len(t, r.Mine(), 1)
	assert.Equal(t, reservation.StatusPending, r.Mine()[0].Status)
}

func TestReservationSubmitInFlightGuard(t *testing.T) {
	api := &mockAPI{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	r := NewReservations(api)
	req := reservation.Request{DateTime: tomorrow(), Guests: 2}

	done := make(chan error, 1)
	go func() {
		done <- r.Submit(context.Background(), req)
	}()
	<-api.started

	err := r.Submit(context.Background(), req)
	require.ErrorIs(t, err, ErrSubmitInFlight)

	close(api.release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, api.reservationCalls)
}

func TestReservationRemoteFailure(t *testing.T) {
	api := &mockAPI{reservationErr: errors.New("no tables left")}
	r := NewReservations(api)

	err := r.Submit(context.Background(), reservation.Request{DateTime: tomorrow(), Guests: 4})

	require.Error(t, err)
	assert.Empty(t, r.Mine(), "list not refreshed on failure")
}

func TestEventValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     event.Request
		wantErr error
	}{
		{
			name:    "missing datetime",
			req:     event.Request{Type: "birthday", Guests: 30},
			wantErr: event.ErrMissingDateTime,
		},
		{
			name:    "below event minimum",
			req:     event.Request{Type: "birthday", DateTime: tomorrow(), Guests: 4},
			wantErr: event.ErrTooFewGuests,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &mockAPI{}
			e := NewEvents(api)

			err := e.Submit(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, api.eventCalls)
		})
	}
}

func TestEventSubmitRefreshesList(t *testing.T) {
	api := &mockAPI{
		events: []event.Summary{
			{ID: 1, Type: "birthday", Guests: 30, Status: event.StatusPending},
		},
	}
	e := NewEvents(api)

	err := e.Submit(context.Background(), event.Request{
		Type:          "birthday",
		DateTime:      tomorrow(),
		Guests:        30,
		MenuSelection: []int64{1, 3},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, api.eventCalls)
	require.Len(t, e.Mine(), 1)
}
