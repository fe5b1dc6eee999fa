// Package booking handles the guest-side reservation and private event
// request flows: validate locally, submit once, refresh the guest's own list
// on success.
package booking

import (
	"context"
	"sync"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"restaurant-client/internal/domain/event"
	"restaurant-client/internal/domain/reservation"
)

// ErrSubmitInFlight is returned when a submission is already pending.
var ErrSubmitInFlight = errors.New("submission already in flight")

// API is the slice of the server boundary the booking flows need.
// Implemented by api.Client.
type API interface {
	CreateReservation(ctx context.Context, req reservation.Request) error
	ListMyReservations(ctx context.Context) ([]reservation.Summary, error)
	CreateEvent(ctx context.Context, req event.Request) error
	ListMyEvents(ctx context.Context) ([]event.Summary, error)
}

// Reservations drives the table reservation request flow.
type Reservations struct {
	api API

	mu         sync.Mutex
	submitting bool
	mine       []reservation.Summary
}

// NewReservations creates the reservation flow.
func NewReservations(api API) *Reservations {
	return &Reservations{api: api}
}

// Submit validates the request locally and posts it. Validation failures
// never issue a network call. On success the guest's reservation list is
// refreshed; a refresh failure is logged, not fatal.
func (r *Reservations) Submit(ctx context.Context, req reservation.Request) error {
	if err := req.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	if r.submitting {
		r.mu.Unlock()
		return ErrSubmitInFlight
	}
	r.submitting = true
	r.mu.Unlock()

	err := r.api.CreateReservation(ctx, req)

	r.mu.Lock()
	r.submitting = false
	r.mu.Unlock()
	if err != nil {
		return errors.Wrap(err, "create reservation")
	}

	if rerr := r.Refresh(ctx); rerr != nil {
		zctx.From(ctx).Warn("refresh reservations", zap.Error(rerr))
	}
	return nil
}

// Refresh reloads the guest's reservation list.
func (r *Reservations) Refresh(ctx context.Context) error {
	rows, err := r.api.ListMyReservations(ctx)
	if err != nil {
		return errors.Wrap(err, "list my reservations")
	}
	r.mu.Lock()
	r.mine = rows
	r.mu.Unlock()
	return nil
}

// Mine returns the last loaded reservation list.
func (r *Reservations) Mine() []reservation.Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]reservation.Summary, len(r.mine))
	copy(out, r.mine)
	return out
}

// Events drives the private event request flow.
type Events struct {
	api API

	mu         sync.Mutex
	submitting bool
	mine       []event.Summary
}

// NewEvents creates the event request flow.
func NewEvents(api API) *Events {
	return &Events{api: api}
}

// Submit validates the request locally and posts it. The menu selection is
// kept by the caller so a request can be adjusted and re-sent.
func (e *Events) Submit(ctx context.Context, req event.Request) error {
	if err := req.Validate(); err != nil {
		return err
	}

	e.mu.Lock()
	if e.submitting {
		e.mu.Unlock()
		return ErrSubmitInFlight
	}
	e.submitting = true
	e.mu.Unlock()

	err := e.api.CreateEvent(ctx, req)

	e.mu.Lock()
	e.submitting = false
	e.mu.Unlock()
	if err != nil {
		return errors.Wrap(err, "create event request")
	}

	if rerr := e.Refresh(ctx); rerr != nil {
		zctx.From(ctx).Warn("refresh events", zap.Error(rerr))
	}
	return nil
}

// Refresh reloads the guest's event list.
func (e *Events) Refresh(ctx context.Context) error {
	rows, err := e.api.ListMyEvents(ctx)
	if err != nil {
		return errors.Wrap(err, "list my events")
	}
	e.mu.Lock()
	e.mine = rows
	e.mu.Unlock()
	return nil
}

// Mine returns the last loaded event list.
func (e *Events) Mine() []event.Summary {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]event.Summary, len(e.mine))
	copy(out, e.mine)
	return out
}
