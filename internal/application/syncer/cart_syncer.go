// internal/application/syncer/cart_syncer.go
package syncer

import (
	"context"
	"log"
	"sync"

	"gamestore/internal/domain/cart"
	"gamestore/internal/domain/catalog"
	"gamestore/internal/domain/profile"
	"gamestore/internal/domain/session"
)

// CartSyncer owns the in-memory cart for one session scope and keeps it
// synchronized with whichever backing store the session selects:
// the remote profile document for a principal, the device-local fallback
// store otherwise. The two are mutually exclusive per operation.
//
// Every mutation applies to in-memory state first (optimistic), then
// persists the whole line array through a single-writer queue. On
// persistence failure the optimistic mutation is rolled back and the
// error is returned to the caller.
type CartSyncer struct {
	remote profile.Store
	local  cart.FallbackStore

	w *writer

	mu    sync.Mutex
	sess  session.Session
	state State
	c     *cart.Cart
	gen   uint64
}

func NewCartSyncer(remote profile.Store, local cart.FallbackStore) *CartSyncer {
	return &CartSyncer{
		remote: remote,
		local:  local,
		w:      newWriter(),
		state:  Uninitialized,
		c:      cart.New(nil),
	}
}

// LoadForSession replaces the in-memory cart with the state stored for s.
//
// Fails soft: a read error is logged and resolves to an empty Ready
// cart; the caller never sees a load failure. A load superseded by a
// newer LoadForSession call discards its late result.
func (cs *CartSyncer) LoadForSession(ctx context.Context, s session.Session) {
	cs.mu.Lock()
	cs.sess = s
	cs.state = Loading
	cs.gen++
	gen := cs.gen
	cs.mu.Unlock()

	lines := cs.read(ctx, s)

	cs.mu.Lock()
	defer cs.mu.Unlock()
	if cs.gen != gen {
		// superseded by a newer session load
		return
	}
	cs.c = cart.New(lines)
	cs.state = Ready
}

func (cs *CartSyncer) read(ctx context.Context, s session.Session) []cart.Line {
	if s.SignedIn() {
		if cs.remote == nil {
			log.Printf("[cart_syncer] remote store not configured; starting empty uid=%s", s.UID)
			return nil
		}
		p, err := cs.remote.GetByUID(ctx, s.UID)
		if err != nil {
			log.Printf("[cart_syncer] load failed uid=%s err=%v (starting empty)", s.UID, err)
			return nil
		}
		if p == nil {
			// first use, no remote write yet
			return nil
		}
		return p.Cart
	}

	if cs.local == nil || s.DeviceID == "" {
		return nil
	}
	lines, err := cs.local.Load(ctx, s.DeviceID)
	if err != nil {
		log.Printf("[cart_syncer] local load failed device=%s err=%v (starting empty)", s.DeviceID, err)
		return nil
	}
	return lines
}

// AddItem merges qty into the line for game.ID or appends a new line.
// qty must be >= 1.
func (cs *CartSyncer) AddItem(ctx context.Context, game catalog.Game, qty int) error {
	return cs.mutate(ctx, func(c *cart.Cart) error {
		return c.Add(game, qty)
	})
}

// SetQuantity replaces the quantity of the line for id (qty >= 1).
// No-op if the id is not in the cart.
func (cs *CartSyncer) SetQuantity(ctx context.Context, id int64, qty int) error {
	return cs.mutate(ctx, func(c *cart.Cart) error {
		return c.SetQty(id, qty)
	})
}

// RemoveItem deletes the line for id. No-op if absent.
func (cs *CartSyncer) RemoveItem(ctx context.Context, id int64) error {
	return cs.mutate(ctx, func(c *cart.Cart) error {
		c.Remove(id)
		return nil
	})
}

// Clear empties the cart.
func (cs *CartSyncer) Clear(ctx context.Context) error {
	return cs.mutate(ctx, func(c *cart.Cart) error {
		c.Clear()
		return nil
	})
}

// mutate applies fn optimistically, then persists the resulting lines
// through the single-writer queue. On persistence failure the
// pre-mutation lines are restored (unless the session changed underneath,
// in which case the stale rollback is discarded).
func (cs *CartSyncer) mutate(ctx context.Context, fn func(c *cart.Cart) error) error {
	cs.mu.Lock()
	before := cs.c.Lines()
	if err := fn(cs.c); err != nil {
		cs.mu.Unlock()
		return err
	}
	after := cs.c.Lines()
	s := cs.sess
	gen := cs.gen
	cs.mu.Unlock()

	err := cs.w.Do(ctx, func(ctx context.Context) error {
		return cs.persist(ctx, s, after)
	})
	if err == nil {
		return nil
	}

	cs.mu.Lock()
	if cs.gen == gen {
		cs.c = cart.New(before)
	}
	cs.mu.Unlock()
	return err
}

func (cs *CartSyncer) persist(ctx context.Context, s session.Session, lines []cart.Line) error {
	if s.SignedIn() {
		if cs.remote == nil {
			return nil
		}
		return cs.remote.SetCart(ctx, s.UID, lines)
	}
	if cs.local == nil || s.DeviceID == "" {
		return nil
	}
	return cs.local.Save(ctx, s.DeviceID, lines)
}

// Lines returns a snapshot of the current lines.
func (cs *CartSyncer) Lines() []cart.Line {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.c.Lines()
}

// TotalPrice recomputes the total from the current lines.
func (cs *CartSyncer) TotalPrice() float64 {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.c.TotalPrice()
}

// State returns the synchronizer lifecycle state.
func (cs *CartSyncer) State() State {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.state
}

// Close stops the persistence writer.
func (cs *CartSyncer) Close() {
	cs.w.Close()
}
