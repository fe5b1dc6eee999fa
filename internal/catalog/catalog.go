// Package catalog manages the staff-facing menu: create, edit, and delete.
// Unlike the status-transition collections, deletion here removes the cached
// entry locally after the server confirms, instead of flipping a field.
package catalog

import (
	"context"
	"slices"
	"sync"

	"github.com/go-faster/errors"

	"restaurant-client/internal/domain/menu"
)

// API is the slice of the server boundary the manager needs.
// Implemented by api.Client.
type API interface {
	ListMenu(ctx context.Context) ([]menu.Item, error)
	CreateMenuItem(ctx context.Context, in menu.ItemInput) error
	UpdateMenuItem(ctx context.Context, id int64, in menu.ItemInput) error
	DeleteMenuItem(ctx context.Context, id int64) error
}

// Manager owns the cached admin menu collection.
type Manager struct {
	api API

	mu    sync.Mutex
	items []menu.Item
}

// NewManager creates a Manager with an empty cache.
func NewManager(api API) *Manager {
	return &Manager{api: api}
}

// Load replaces the cache from the server. On error the cache is untouched.
func (m *Manager) Load(ctx context.Context) error {
	rows, err := m.api.ListMenu(ctx)
	if err != nil {
		return errors.Wrap(err, "load menu")
	}
	m.mu.Lock()
	m.items = rows
	m.mu.Unlock()
	return nil
}

// Items returns a snapshot copy of the cached menu.
func (m *Manager) Items() []menu.Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]menu.Item, len(m.items))
	copy(out, m.items)
	return out
}

// Create validates the input locally, submits it, and reloads the collection
// so the new row carries its server-assigned id.
func (m *Manager) Create(ctx context.Context, in menu.ItemInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	if err := m.api.CreateMenuItem(ctx, in); err != nil {
		return errors.Wrap(err, "create menu item")
	}
	return m.Load(ctx)
}

// Update validates the input locally, submits it, and reloads the collection.
func (m *Manager) Update(ctx context.Context, id int64, in menu.ItemInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	if err := m.api.UpdateMenuItem(ctx, id, in); err != nil {
		return errors.Wrap(err, "update menu item")
	}
	return m.Load(ctx)
}

// Delete removes the item server-side, then filters it out of the cache. On
// failure the cache is untouched.
func (m *Manager) Delete(ctx context.Context, id int64) error {
	if err := m.api.DeleteMenuItem(ctx, id); err != nil {
		return errors.Wrap(err, "delete menu item")
	}
	m.mu.Lock()
	m.items = slices.DeleteFunc(m.items, func(it menu.Item) bool {
		return it.ID == id
	})
	m.mu.Unlock()
	return nil
}
