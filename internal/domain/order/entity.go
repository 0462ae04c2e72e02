// internal/domain/order/entity.go
package order

import (
	"errors"
	"strings"
	"time"

	"gamestore/internal/domain/cart"
)

var (
	ErrInvalidOrder = errors.New("order: invalid")
	ErrEmptyOrder   = errors.New("order: no lines")
)

// Order is the result of a simulated checkout. It is returned to the
// caller and (optionally) mailed, never persisted server-side.
type Order struct {
	ID       string      `json:"id"`
	UID      string      `json:"uid,omitempty"`
	Email    string      `json:"email,omitempty"`
	Lines    []cart.Line `json:"lines"`
	Total    float64     `json:"total"`
	PlacedAt time.Time   `json:"placedAt"`
}

// New snapshots cart lines into an order. Total is recomputed from the
// lines at creation time.
func New(id, uid, email string, lines []cart.Line, now time.Time) (*Order, error) {
	oid := strings.TrimSpace(id)
	if oid == "" || now.IsZero() {
		return nil, ErrInvalidOrder
	}
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}

	snap := make([]cart.Line, len(lines))
	copy(snap, lines)

	return &Order{
		ID:       oid,
		UID:      strings.TrimSpace(uid),
		Email:    strings.TrimSpace(email),
		Lines:    snap,
		Total:    cart.Total(snap),
		PlacedAt: now,
	}, nil
}
