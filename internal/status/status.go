// Package status applies server-confirmed status changes to a cached
// collection. The same controller backs the staff order, reservation, and
// event lists; only the entity type, status enumeration, and endpoint differ.
//
// The cache is never written ahead of confirmation: on success the matching
// entry is replaced with a copy carrying the new status, on failure the
// collection is left untouched. There is nothing to roll back.
package status

import (
	"context"
	"sync"

	"github.com/go-faster/errors"
)

// Sentinel errors for status mutation guards.
var (
	// ErrNotFound is returned when the target entity is not in the cache.
	ErrNotFound = errors.New("entity not found")
	// ErrUpdateInFlight is returned when a status update for the same entity
	// is already pending. Without this guard the visible final status would
	// depend on response arrival order, not call order.
	ErrUpdateInFlight = errors.New("status update already in flight for this entity")
)

// Lister loads the full remote collection.
type Lister[E any] func(ctx context.Context) ([]E, error)

// Updater issues the remote partial update for one entity.
type Updater[S comparable] func(ctx context.Context, id int64, status S) error

// Config wires a Controller to one entity kind.
type Config[E any, S comparable] struct {
	ID         func(E) int64
	Status     func(E) S
	WithStatus func(E, S) E
	List       Lister[E]
	Update     Updater[S]
}

// Controller owns a cached ordered collection of one admin entity kind and
// applies confirmed status transitions to it.
type Controller[E any, S comparable] struct {
	cfg Config[E, S]

	mu       sync.Mutex
	items    []E
	inflight map[int64]struct{}
}

// NewController creates a Controller with an empty cache.
func NewController[E any, S comparable](cfg Config[E, S]) *Controller[E, S] {
	return &Controller[E, S]{
		cfg:      cfg,
		inflight: make(map[int64]struct{}),
	}
}

// Load replaces the cache from the remote collection. On error the cache is
// left untouched.
func (c *Controller[E, S]) Load(ctx context.Context) error {
	rows, err := c.cfg.List(ctx)
	if err != nil {
		return errors.Wrap(err, "load collection")
	}
	c.mu.Lock()
	c.items = rows
	c.mu.Unlock()
	return nil
}

// Items returns a snapshot copy of the cached collection.
func (c *Controller[E, S]) Items() []E {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]E, len(c.items))
	copy(out, c.items)
	return out
}

// Get returns the cached entity with the given id.
func (c *Controller[E, S]) Get(id int64) (E, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexOf(id); i >= 0 {
		return c.items[i], true
	}
	var zero E
	return zero, false
}

// UpdateStatus transitions one entity to newStatus. Calling it with the
// entity's current status is a no-op: no request is issued and nil is
// returned. Otherwise the remote update runs first; only on success is the
// cached entry replaced with a copy carrying the new status, identity and
// all other fields unchanged.
func (c *Controller[E, S]) UpdateStatus(ctx context.Context, id int64, newStatus S) error {
	c.mu.Lock()
	idx := c.indexOf(id)
	if idx < 0 {
		c.mu.Unlock()
		return ErrNotFound
	}
	if c.cfg.Status(c.items[idx]) == newStatus {
		c.mu.Unlock()
		return nil
	}
	if _, busy := c.inflight[id]; busy {
		c.mu.Unlock()
		return ErrUpdateInFlight
	}
	c.inflight[id] = struct{}{}
	c.mu.Unlock()

	err := c.cfg.Update(ctx, id, newStatus)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, id)
	if err != nil {
		return errors.Wrap(err, "update status")
	}
	// The cache may have been reloaded while the request was in flight, so
	// look the entity up again before splicing.
	if idx := c.indexOf(id); idx >= 0 {
		c.items[idx] = c.cfg.WithStatus(c.items[idx], newStatus)
	}
	return nil
}

func (c *Controller[E, S]) indexOf(id int64) int {
	for i := range c.items {
		if c.cfg.ID(c.items[i]) == id {
			return i
		}
	}
	return -1
}
