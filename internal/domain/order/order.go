package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status enumerates the lifecycle states of a submitted order.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Type enumerates the supported fulfillment types.
type Type string

const (
	TypePickup   Type = "pickup"
	TypeDelivery Type = "delivery"
)

// MinDeliveryAddressLen is the minimum trimmed length of a delivery address.
const MinDeliveryAddressLen = 5

// Sentinel errors for order validation.
var (
	ErrEmptyCart            = fmt.Errorf("add at least one item to the order")
	ErrShortDeliveryAddress = fmt.Errorf("delivery orders require a delivery address of at least %d characters", MinDeliveryAddressLen)
)

// InvalidQuantityError indicates a line item has a non-positive quantity.
type InvalidQuantityError struct {
	MenuItemID int64
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must be greater than 0 for menu item %d", e.MenuItemID)
}

// Item is one line of an order creation request.
type Item struct {
	MenuItemID int64
	Quantity   int
}

// CreateRequest holds everything the client sends when placing an order.
// The total is server-computed and never part of the request.
type CreateRequest struct {
	Items           []Item
	Type            Type
	Notes           string
	DeliveryAddress string
}

// Validate runs the local checks that must pass before any network call.
func (r CreateRequest) Validate() error {
	if len(r.Items) == 0 {
		return ErrEmptyCart
	}
	for _, item := range r.Items {
		if item.Quantity <= 0 {
			return &InvalidQuantityError{MenuItemID: item.MenuItemID}
		}
	}
	if r.Type == TypeDelivery && len(strings.TrimSpace(r.DeliveryAddress)) < MinDeliveryAddressLen {
		return ErrShortDeliveryAddress
	}
	return nil
}

// LineSummary is one item row of an order history entry.
type LineSummary struct {
	Name     string
	Quantity int
	Price    decimal.Decimal
}

// Summary is one row of the guest's order history.
type Summary struct {
	ID         int64
	TotalPrice decimal.Decimal
	Type       Type
	Status     Status
	CreatedAt  time.Time
	Items      []LineSummary
}

// AdminOrder is one row of the staff-facing order list.
type AdminOrder struct {
	ID         int64
	UserName   string
	UserEmail  string
	TotalPrice decimal.Decimal
	Type       Type
	Status     Status
	CreatedAt  time.Time
}
