// Package cart derives an ordered line-item view and a monetary total from a
// mutable quantity map over an immutable menu snapshot. Lines and totals are
// recomputed on every call; nothing derived is cached.
package cart

import (
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"restaurant-client/internal/domain/menu"
	"restaurant-client/internal/domain/order"
)

// Line is one derived cart row: the menu item, its quantity, and
// price * quantity. Never stored, always recomputed.
type Line struct {
	Item      menu.Item
	Quantity  int
	LineTotal decimal.Decimal
}

// Cart holds the quantity map. Every key present maps to a quantity >= 1;
// a quantity of zero removes the key instead of being stored.
type Cart struct {
	mu         sync.Mutex
	snapshot   []menu.Item
	quantities map[int64]int
}

// New creates an empty cart over the given menu snapshot.
func New(snapshot []menu.Item) *Cart {
	return &Cart{
		snapshot:   snapshot,
		quantities: make(map[int64]int),
	}
}

// SetQuantity parses raw user input as a non-negative integer quantity for
// the given item. Invalid, empty, or negative input normalizes to zero, and
// zero removes the entry. The quantity map is replaced atomically, so readers
// never observe a partial update.
func (c *Cart) SetQuantity(itemID int64, raw string) {
	qty := parseQuantity(raw)

	c.mu.Lock()
	defer c.mu.Unlock()

	next := make(map[int64]int, len(c.quantities)+1)
	for id, q := range c.quantities {
		next[id] = q
	}
	if qty == 0 {
		delete(next, itemID)
	} else {
		next[itemID] = qty
	}
	c.quantities = next
}

func parseQuantity(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Lines returns the derived cart rows in menu snapshot order. Items with no
// quantity entry are excluded.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines := make([]Line, 0, len(c.quantities))
	for _, item := range c.snapshot {
		qty, ok := c.quantities[item.ID]
		if !ok {
			continue
		}
		lines = append(lines, Line{
			Item:      item,
			Quantity:  qty,
			LineTotal: item.Price.Mul(decimal.NewFromInt(int64(qty))),
		})
	}
	return lines
}

// Total returns the sum of all line totals. It is a pure function of the
// current quantity map and can never drift from it.
func (c *Cart) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, line := range c.Lines() {
		sum = sum.Add(line.LineTotal)
	}
	return sum
}

// Items converts the current lines into order creation payload items.
func (c *Cart) Items() []order.Item {
	lines := c.Lines()
	items := make([]order.Item, len(lines))
	for i, line := range lines {
		items[i] = order.Item{
			MenuItemID: line.Item.ID,
			Quantity:   line.Quantity,
		}
	}
	return items
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines()) == 0
}

// Reset empties the quantity map. The menu snapshot is untouched.
func (c *Cart) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quantities = make(map[int64]int)
}
