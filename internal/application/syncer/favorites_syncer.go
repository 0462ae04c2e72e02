// internal/application/syncer/favorites_syncer.go
package syncer

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"gamestore/internal/domain/catalog"
	"gamestore/internal/domain/favorites"
	"gamestore/internal/domain/profile"
	"gamestore/internal/domain/session"
)

var (
	// ErrNoSession is returned for favorites mutations without a
	// principal: favorites have no anonymous-device fallback.
	ErrNoSession = errors.New("syncer: favorites require a signed-in session")
)

// FavoritesSyncer owns the in-memory favorites set for one session and
// mirrors it onto the remote profile document via element-level
// union/remove operations.
//
// Mutations are optimistic with rollback: the in-memory set changes
// immediately, and a failed remote write reverts it before the error is
// returned.
type FavoritesSyncer struct {
	remote profile.Store

	w *writer

	mu          sync.Mutex
	sess        session.Session
	state       State
	set         *favorites.Set
	gen         uint64
	provisioned bool
}

func NewFavoritesSyncer(remote profile.Store) *FavoritesSyncer {
	return &FavoritesSyncer{
		remote: remote,
		w:      newWriter(),
		state:  Uninitialized,
		set:    favorites.NewSet(nil),
	}
}

// LoadForSession replaces the in-memory set with the favorites stored
// for s. A principal whose profile document does not exist yet gets it
// provisioned with empty favorites and cart arrays (first-touch).
// Anonymous sessions always resolve to an empty set.
//
// Fails soft on read errors, same as the cart.
func (fs *FavoritesSyncer) LoadForSession(ctx context.Context, s session.Session) {
	fs.mu.Lock()
	fs.sess = s
	fs.state = Loading
	fs.gen++
	gen := fs.gen
	fs.mu.Unlock()

	var items []catalog.Game
	provisioned := false
	if s.SignedIn() && fs.remote != nil {
		items, provisioned = fs.read(ctx, s)
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()
	if fs.gen != gen {
		return
	}
	fs.set = favorites.NewSet(items)
	fs.provisioned = provisioned
	fs.state = Ready
}

func (fs *FavoritesSyncer) read(ctx context.Context, s session.Session) ([]catalog.Game, bool) {
	p, err := fs.remote.GetByUID(ctx, s.UID)
	if err != nil {
		log.Printf("[favorites_syncer] load failed uid=%s err=%v (starting empty)", s.UID, err)
		return nil, false
	}
	if p != nil {
		return p.Favorites, true
	}

	// first touch: provision the profile document
	np, err := profile.New(s.UID, s.DisplayName, s.Email, time.Now().UTC())
	if err != nil {
		log.Printf("[favorites_syncer] provision skipped uid=%s err=%v", s.UID, err)
		return nil, false
	}
	if err := fs.remote.Create(ctx, np); err != nil {
		log.Printf("[favorites_syncer] provision failed uid=%s err=%v", s.UID, err)
		return nil, false
	}
	log.Printf("[favorites_syncer] provisioned profile uid=%s", s.UID)
	return nil, true
}

// IsFavorite reports membership by game ID over in-memory state.
func (fs *FavoritesSyncer) IsFavorite(id int64) bool {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.set.Contains(id)
}

// Items returns a snapshot of the current favorites.
func (fs *FavoritesSyncer) Items() []catalog.Game {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.set.Items()
}

// Add appends game optimistically and unions it onto the remote
// favorites array. Rolls back the append and returns the error if the
// remote write fails.
func (fs *FavoritesSyncer) Add(ctx context.Context, game catalog.Game) error {
	g, err := catalog.Normalize(game)
	if err != nil {
		return err
	}

	fs.mu.Lock()
	s := fs.sess
	gen := fs.gen
	if !s.SignedIn() {
		fs.mu.Unlock()
		return ErrNoSession
	}
	if !fs.set.Add(g) {
		// already present; the remote union is idempotent anyway
		fs.mu.Unlock()
		return nil
	}
	fs.mu.Unlock()

	err = fs.w.Do(ctx, func(ctx context.Context) error {
		if err := fs.ensureProvisioned(ctx, s); err != nil {
			return err
		}
		return fs.remote.AddFavorite(ctx, s.UID, g)
	})
	if err == nil {
		return nil
	}

	fs.mu.Lock()
	if fs.gen == gen {
		fs.set.Remove(g.ID)
	}
	fs.mu.Unlock()
	return err
}

// Remove deletes game from the set optimistically and removes the exact
// value from the remote array. Re-inserts the snapshot and returns the
// error if the remote write fails.
func (fs *FavoritesSyncer) Remove(ctx context.Context, game catalog.Game) error {
	fs.mu.Lock()
	s := fs.sess
	gen := fs.gen
	if !s.SignedIn() {
		fs.mu.Unlock()
		return ErrNoSession
	}
	removed, ok := fs.set.Remove(game.ID)
	if !ok {
		fs.mu.Unlock()
		return nil
	}
	fs.mu.Unlock()

	err := fs.w.Do(ctx, func(ctx context.Context) error {
		return fs.remote.RemoveFavorite(ctx, s.UID, removed)
	})
	if err == nil {
		return nil
	}

	fs.mu.Lock()
	if fs.gen == gen {
		fs.set.Add(removed)
	}
	fs.mu.Unlock()
	return err
}

// ensureProvisioned creates the profile document if the load never saw
// one (e.g. the first mutation races the first load).
func (fs *FavoritesSyncer) ensureProvisioned(ctx context.Context, s session.Session) error {
	fs.mu.Lock()
	done := fs.provisioned
	fs.mu.Unlock()
	if done {
		return nil
	}

	p, err := fs.remote.GetByUID(ctx, s.UID)
	if err != nil {
		return err
	}
	if p == nil {
		np, err := profile.New(s.UID, s.DisplayName, s.Email, time.Now().UTC())
		if err != nil {
			return err
		}
		if err := fs.remote.Create(ctx, np); err != nil {
			return err
		}
	}

	fs.mu.Lock()
	fs.provisioned = true
	fs.mu.Unlock()
	return nil
}

// State returns the synchronizer lifecycle state.
func (fs *FavoritesSyncer) State() State {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.state
}

// Close stops the persistence writer.
func (fs *FavoritesSyncer) Close() {
	fs.w.Close()
}
