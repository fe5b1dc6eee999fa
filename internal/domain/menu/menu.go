package menu

import (
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Item is a single entry of the menu snapshot. The snapshot is fetched once
// per page and treated as immutable; prices are always decimal, never float.
type Item struct {
	ID          int64
	Name        string
	Category    string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	Available   bool
	DietaryTags string
}

// Sentinel errors for menu item input validation.
var (
	ErrNameRequired     = errors.New("name is required")
	ErrCategoryRequired = errors.New("category is required")
	ErrNonPositivePrice = errors.New("price must be greater than 0")
)

// ItemInput holds the fields staff submit when creating or editing a menu item.
type ItemInput struct {
	Name        string
	Category    string
	Price       decimal.Decimal
	Description string
	DietaryTags string
	Available   bool
}

// Validate checks the input before any request is issued.
func (in ItemInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(in.Category) == "" {
		return ErrCategoryRequired
	}
	if !in.Price.IsPositive() {
		return ErrNonPositivePrice
	}
	return nil
}
