package status

import (
	"context"
	"sync"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ticket struct {
	ID     int64
	Name   string
	Status string
}

type mockRemote struct {
	mu      sync.Mutex
	calls   int
	err     error
	started chan struct{}
	release chan struct{}
}

func (m *mockRemote) update(_ context.Context, _ int64, _ string) error {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.started != nil {
		m.started <- struct{}{}
		<-m.release
	}
	return m.err
}

func newController(remote *mockRemote, rows []ticket) *Controller[ticket, string] {
	c := NewController(Config[ticket, string]{
		ID:     func(t ticket) int64 { return t.ID },
		Status: func(t ticket) string { return t.Status },
		WithStatus: func(t ticket, s string) ticket {
			t.Status = s
			return t
		},
		List: func(_ context.Context) ([]ticket, error) {
			out := make([]ticket, len(rows))
			copy(out, rows)
			return out, nil
		},
		Update: remote.update,
	})
	_ = c.Load(context.Background())
	return c
}

func TestUpdateStatusNoOp(t *testing.T) {
	remote := &mockRemote{}
	c := newController(remote, []ticket{{ID: 1, Name: "a", Status: "pending"}})

	err := c.UpdateStatus(context.Background(), 1, "pending")

	require.NoError(t, err)
	assert.Zero(t, remote.calls, "same-status update issues no request")
	assert.Equal(t, []ticket{{ID: 1, Name: "a", Status: "pending"}}, c.Items())
}

func TestUpdateStatusSuccessSplicesSingleField(t *testing.T) {
	remote := &mockRemote{}
	c := newController(remote, []ticket{
		{ID: 1, Name: "a", Status: "pending"},
		{ID: 2, Name: "b", Status: "pending"},
	})

	require.NoError(t, c.UpdateStatus(context.Background(), 2, "approved"))

	items := c.Items()
	assert.Equal(t, "pending", items[0].Status, "other entries untouched")
	assert.Equal(t, "approved", items[1].Status)
	assert.Equal(t, "b", items[1].Name, "identity and other fields unchanged")
	assert.Equal(t, 1, remote.calls)
}

func TestUpdateStatusFailureLeavesCache(t *testing.T) {
	remote := &mockRemote{err: errors.New("backend down")}
	c := newController(remote, []ticket{{ID: 1, Name: "a", Status: "pending"}})

	err := c.UpdateStatus(context.Background(), 1, "cancelled")

	require.Error(t, err)
	assert.Equal(t, "pending", c.Items()[0].Status, "cache untouched on failure")
}

func TestUpdateStatusUnknownEntity(t *testing.T) {
	remote := &mockRemote{}
	c := newController(remote, []ticket{{ID: 1, Status: "pending"}})

	err := c.UpdateStatus(context.Background(), 99, "approved")

	require.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, remote.calls)
}

func TestUpdateStatusInFlightGuard(t *testing.T) {
	remote := &mockRemote{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	c := newController(remote, []ticket{{ID: 1, Status: "pending"}})

	done := make(chan error, 1)
	go func() {
		done <- c.UpdateStatus(context.Background(), 1, "approved")
	}()
	<-remote.started

	// Second transition for the same entity while the first is pending.
	err := c.UpdateStatus(context.Background(), 1, "cancelled")
	require.ErrorIs(t, err, ErrUpdateInFlight)

	close(remote.release)
	require.NoError(t, <-done)
	assert.Equal(t, "approved", c.Items()[0].Status)
	assert.Equal(t, 1, remote.calls)

	// The guard clears once the first update settles.
	remote.started = nil
	require.NoError(t, c.UpdateStatus(context.Background(), 1, "cancelled"))
	assert.Equal(t, "cancelled", c.Items()[0].Status)
}

func TestUpdateStatusIndependentEntitiesNotSerialized(t *testing.T) {
	remote := &mockRemote{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	c := newController(remote, []ticket{
		{ID: 1, Status: "pending"},
		{ID: 2, Status: "pending"},
	})

	done := make(chan error, 1)
	go func() {
		done <- c.UpdateStatus(context.Background(), 1, "approved")
	}()
	<-remote.started
	remote.started = nil

	// A different entity is not blocked by entity 1's in-flight update.
	require.NoError(t, c.UpdateStatus(context.Background(), 2, "cancelled"))

	close(remote.release)
	require.NoError(t, <-done)
	assert.Equal(t, "approved", c.Items()[0].Status)
	assert.Equal(t, "cancelled", c.Items()[1].Status)
}

func TestLoadErrorLeavesCache(t *testing.T) {
	remote := &mockRemote{}
	c := NewController(Config[ticket, string]{
		ID:     func(t ticket) int64 { return t.ID },
		Status: func(t ticket) string { return t.Status },
		WithStatus: func(t ticket, s string) ticket {
			t.Status = s
			return t
		},
		List: func(_ context.Context) ([]ticket, error) {
			return nil, errors.New("list failed")
		},
		Update: remote.update,
	})

	require.Error(t, c.Load(context.Background()))
	assert.Empty(t, c.Items())
}

func TestGet(t *testing.T) {
	c := newController(&mockRemote{}, []ticket{{ID: 5, Name: "x", Status: "pending"}})

	got, ok := c.Get(5)
	require.True(t, ok)
	assert.Equal(t, "x", got.Name)

	_, ok = c.Get(6)
	assert.False(t, ok)
}
