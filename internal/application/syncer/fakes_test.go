// internal/application/syncer/fakes_test.go
package syncer

import (
	"context"
	"errors"
	"sync"

	"gamestore/internal/domain/cart"
	"gamestore/internal/domain/catalog"
	"gamestore/internal/domain/profile"
)

var errInjected = errors.New("injected store failure")

// fakeProfileStore is an in-memory profile.Store with per-method failure
// injection.
type fakeProfileStore struct {
	mu       sync.Mutex
	profiles map[string]*profile.Profile

	failGet    bool
	failCreate bool
	failSet    bool
	failAdd    bool
	failRemove bool

	setCartCalls int
	createCalls  int
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: map[string]*profile.Profile{}}
}

func (f *fakeProfileStore) GetByUID(_ context.Context, uid string) (*profile.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet {
		return nil, errInjected
	}
	p, ok := f.profiles[uid]
	if !ok {
		return nil, nil
	}
	cp := *p
	cp.Favorites = append([]catalog.Game(nil), p.Favorites...)
	cp.Cart = append([]cart.Line(nil), p.Cart...)
	return &cp, nil
}

func (f *fakeProfileStore) Create(_ context.Context, p *profile.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.failCreate {
		return errInjected
	}
	if _, ok := f.profiles[p.UID]; ok {
		return nil // no clobber
	}
	cp := *p
	f.profiles[p.UID] = &cp
	return nil
}

func (f *fakeProfileStore) SetCart(_ context.Context, uid string, lines []cart.Line) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setCartCalls++
	if f.failSet {
		return errInjected
	}
	p, ok := f.profiles[uid]
	if !ok {
		p = &profile.Profile{UID: uid}
		f.profiles[uid] = p
	}
	p.Cart = append([]cart.Line(nil), lines...)
	return nil
}

func (f *fakeProfileStore) AddFavorite(_ context.Context, uid string, game catalog.Game) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAdd {
		return errInjected
	}
	p, ok := f.profiles[uid]
	if !ok {
		p = &profile.Profile{UID: uid}
		f.profiles[uid] = p
	}
	for _, g := range p.Favorites {
		if g.ID == game.ID {
			return nil
		}
	}
	p.Favorites = append(p.Favorites, game)
	return nil
}

func (f *fakeProfileStore) RemoveFavorite(_ context.Context, uid string, game catalog.Game) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failRemove {
		return errInjected
	}
	p, ok := f.profiles[uid]
	if !ok {
		return nil
	}
	for i, g := range p.Favorites {
		if g.ID == game.ID {
			p.Favorites = append(p.Favorites[:i], p.Favorites[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeProfileStore) favoritesOf(uid string) []catalog.Game {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[uid]
	if !ok {
		return nil
	}
	return append([]catalog.Game(nil), p.Favorites...)
}

func (f *fakeProfileStore) cartOf(uid string) []cart.Line {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[uid]
	if !ok {
		return nil
	}
	return append([]cart.Line(nil), p.Cart...)
}

// fakeFallbackStore is an in-memory cart.FallbackStore.
type fakeFallbackStore struct {
	mu    sync.Mutex
	carts map[string][]cart.Line

	failLoad bool
	failSave bool
}

func newFakeFallbackStore() *fakeFallbackStore {
	return &fakeFallbackStore{carts: map[string][]cart.Line{}}
}

func (f *fakeFallbackStore) Load(_ context.Context, deviceID string) ([]cart.Line, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failLoad {
		return nil, errInjected
	}
	lines, ok := f.carts[deviceID]
	if !ok {
		return nil, nil
	}
	return append([]cart.Line(nil), lines...), nil
}

func (f *fakeFallbackStore) Save(_ context.Context, deviceID string, lines []cart.Line) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSave {
		return errInjected
	}
	f.carts[deviceID] = append([]cart.Line(nil), lines...)
	return nil
}

func (f *fakeFallbackStore) cartOf(deviceID string) []cart.Line {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]cart.Line(nil), f.carts[deviceID]...)
}
