// internal/application/syncer/registry.go
package syncer

import (
	"context"
	"sync"

	"gamestore/internal/domain/cart"
	"gamestore/internal/domain/profile"
	"gamestore/internal/domain/session"
)

// Entry is the synchronizer pair owned by one session scope.
type Entry struct {
	Cart      *CartSyncer
	Favorites *FavoritesSyncer
}

// Registry hands out one Entry per session scope (principal uid or
// anonymous device id), constructing and loading it on first touch.
// Syncers are explicit per-session services, not ambient singletons;
// consumers receive them from here.
type Registry struct {
	remote profile.Store
	local  cart.FallbackStore

	mu      sync.Mutex
	entries map[string]*Entry
}

func NewRegistry(remote profile.Store, local cart.FallbackStore) *Registry {
	return &Registry{
		remote:  remote,
		local:   local,
		entries: map[string]*Entry{},
	}
}

// ForSession returns the Entry for s, creating and loading it if this is
// the first request in the scope.
func (r *Registry) ForSession(ctx context.Context, s session.Session) *Entry {
	key := s.Key()

	r.mu.Lock()
	e, ok := r.entries[key]
	if !ok {
		e = &Entry{
			Cart:      NewCartSyncer(r.remote, r.local),
			Favorites: NewFavoritesSyncer(r.remote),
		}
		r.entries[key] = e
	}
	r.mu.Unlock()

	if !ok {
		e.Cart.LoadForSession(ctx, s)
		e.Favorites.LoadForSession(ctx, s)
	}
	return e
}

// Drop releases the Entry for a scope (e.g. on sign-out), stopping its
// writers. A later request for the same scope reloads from storage.
func (r *Registry) Drop(key string) {
	r.mu.Lock()
	e, ok := r.entries[key]
	if ok {
		delete(r.entries, key)
	}
	r.mu.Unlock()

	if ok {
		e.Cart.Close()
		e.Favorites.Close()
	}
}

// Close stops every registered syncer.
func (r *Registry) Close() {
	r.mu.Lock()
	entries := r.entries
	r.entries = map[string]*Entry{}
	r.mu.Unlock()

	for _, e := range entries {
		e.Cart.Close()
		e.Favorites.Close()
	}
}
