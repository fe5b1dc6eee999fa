package reservation

import (
	"time"

	"github.com/go-faster/errors"
)

// Status enumerates the lifecycle states of a reservation request.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusCancelled Status = "cancelled"
)

// Sentinel errors for reservation validation.
var (
	ErrMissingDateTime = errors.New("a date and time is required")
	ErrNoGuests        = errors.New("number of guests must be at least 1")
)

// Request holds a guest's table reservation submission.
type Request struct {
	DateTime time.Time
	Guests   int
	Notes    string
}

// Validate runs the local checks that must pass before any network call.
func (r Request) Validate() error {
	if r.DateTime.IsZero() {
		return ErrMissingDateTime
	}
	if r.Guests < 1 {
		return ErrNoGuests
	}
	return nil
}

// Summary is one row of the guest's own reservation list.
type Summary struct {
	ID        int64
	DateTime  time.Time
	Guests    int
	Notes     string
	Status    Status
	CreatedAt time.Time
}

// AdminReservation is one row of the staff-facing reservation list.
type AdminReservation struct {
	ID        int64
	UserName  string
	UserEmail string
	DateTime  time.Time
	Guests    int
	Notes     string
	Status    Status
	CreatedAt time.Time
}
