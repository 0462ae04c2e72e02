// internal/domain/cart/entity.go
package cart

import (
	"errors"
	"math"

	"gamestore/internal/domain/catalog"
)

var (
	ErrInvalidQuantity = errors.New("cart: quantity must be >= 1")
)

// Line is one line item: a catalog game plus a positive quantity.
// The embedded Game keeps the persisted shape flat
// ({...game fields, quantity}), matching the stored cart array.
type Line struct {
	catalog.Game
	Qty int `json:"quantity" firestore:"quantity"`
}

// Cart is an ordered collection of lines, at most one per game ID.
// Insertion order is preserved; quantities merge on duplicate IDs.
// Lines with qty <= 0 are removed, never kept at zero.
//
// TotalPrice is always recomputed from the lines, never stored, so it
// cannot drift from the line contents.
type Cart struct {
	lines []Line
}

// New builds a cart from a loaded line slice. Duplicate IDs are merged
// into the first occurrence and invalid entries (bad game, qty <= 0) are
// dropped, so a cart read back from storage always satisfies the
// one-line-per-ID invariant.
func New(lines []Line) *Cart {
	c := &Cart{}
	for _, l := range lines {
		g, err := catalog.Normalize(l.Game)
		if err != nil || l.Qty <= 0 {
			continue
		}
		if i := c.index(g.ID); i >= 0 {
			c.lines[i].Qty += l.Qty
			continue
		}
		c.lines = append(c.lines, Line{Game: g, Qty: l.Qty})
	}
	return c
}

// Add merges qty into an existing line for game.ID or appends a new line.
func (c *Cart) Add(game catalog.Game, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	g, err := catalog.Normalize(game)
	if err != nil {
		return err
	}

	if i := c.index(g.ID); i >= 0 {
		c.lines[i].Qty += qty
		return nil
	}
	c.lines = append(c.lines, Line{Game: g, Qty: qty})
	return nil
}

// SetQty replaces the quantity of the line for id.
// qty must be >= 1; removal is explicit via Remove.
// No-op if id is not in the cart.
func (c *Cart) SetQty(id int64, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	if i := c.index(id); i >= 0 {
		c.lines[i].Qty = qty
	}
	return nil
}

// Remove deletes the line for id. No-op if absent.
func (c *Cart) Remove(id int64) {
	i := c.index(id)
	if i < 0 {
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the current lines.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// TotalPrice recomputes sum(price * qty) over the current lines,
// rounded to cents.
func (c *Cart) TotalPrice() float64 {
	return Total(c.lines)
}

// Total recomputes the total price of a line slice, rounded to cents.
func Total(lines []Line) float64 {
	var sum float64
	for _, l := range lines {
		sum += l.Price * float64(l.Qty)
	}
	return math.Round(sum*100) / 100
}

func (c *Cart) index(id int64) int {
	for i := range c.lines {
		if c.lines[i].ID == id {
			return i
		}
	}
	return -1
}
