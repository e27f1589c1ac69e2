package cart

import "errors"

var (
	// ErrInvalidQuantity rejects add requests below one unit.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	// ErrInvalidPrice rejects negative unit prices.
	ErrInvalidPrice = errors.New("unit price must not be negative")
)

// Line is a single item entry within a cart. UnitPrice is in cents.
type Line struct {
	ItemID    string `json:"item_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// Cart holds insertion-ordered lines with at most one line per item id.
type Cart struct {
	Lines []Line
}

// Add accumulates quantity onto an existing line or appends a new one,
// preserving insertion order.
func (c *Cart) Add(line Line) {
	for i := range c.Lines {
		if c.Lines[i].ItemID == line.ItemID {
			c.Lines[i].Quantity += line.Quantity
			return
		}
	}
	c.Lines = append(c.Lines, line)
}

// Remove deletes the line for itemID. Removing an absent item is a no-op.
func (c *Cart) Remove(itemID string) {
	for i := range c.Lines {
		if c.Lines[i].ItemID == itemID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// Quantity reports the quantity held for itemID, zero when absent.
func (c *Cart) Quantity(itemID string) int {
	for _, line := range c.Lines {
		if line.ItemID == itemID {
			return line.Quantity
		}
	}
	return 0
}

// Total sums unit price times quantity across all lines, in cents.
func (c *Cart) Total() int64 {
	var total int64
	for _, line := range c.Lines {
		total += line.UnitPrice * int64(line.Quantity)
	}
	return total
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
