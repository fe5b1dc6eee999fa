package event

import (
	"fmt"
	"time"

	"github.com/go-faster/errors"
)

// Status enumerates the lifecycle states of an event request.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusCancelled Status = "cancelled"
)

// MinGuests is the smallest party size accepted for private events.
const MinGuests = 5

// Sentinel errors for event request validation.
var (
	ErrMissingDateTime = errors.New("a date and time is required")
	ErrTooFewGuests    = fmt.Errorf("number of guests must be at least %d for events", MinGuests)
)

// Request holds a guest's private event submission. MenuSelection may be
// empty; it references menu item ids the guest wants quoted.
type Request struct {
	Type          string
	DateTime      time.Time
	Guests        int
	MenuSelection []int64
}

// Validate runs the local checks that must pass before any network call.
func (r Request) Validate() error {
	if r.DateTime.IsZero() {
		return ErrMissingDateTime
	}
	if r.Guests < MinGuests {
		return ErrTooFewGuests
	}
	return nil
}

// Summary is one row of the guest's own event list.
type Summary struct {
	ID        int64
	Type      string
	DateTime  time.Time
	Guests    int
	Status    Status
	CreatedAt time.Time
}

// AdminEvent is one row of the staff-facing event list.
type AdminEvent struct {
	ID        int64
	UserName  string
	UserEmail string
	Type      string
	DateTime  time.Time
	Guests    int
	Status    Status
	CreatedAt time.Time
}
