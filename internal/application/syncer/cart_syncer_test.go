// internal/application/syncer/cart_syncer_test.go
package syncer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamestore/internal/domain/cart"
	"gamestore/internal/domain/catalog"
	"gamestore/internal/domain/session"
)

func testGame(id int64, name string, price float64) catalog.Game {
	g, _ := catalog.Normalize(catalog.Game{ID: id, Name: name, Price: price})
	return g
}

func newTestCartSyncer(t *testing.T, remote *fakeProfileStore, local *fakeFallbackStore) *CartSyncer {
	t.Helper()
	cs := NewCartSyncer(remote, local)
	t.Cleanup(cs.Close)
	return cs
}

func TestCartLoadForSessionReadsRemoteForPrincipal(t *testing.T) {
	remote := newFakeProfileStore()
	require.NoError(t, remote.SetCart(context.Background(), "u1", []cart.Line{
		{Game: testGame(1, "portal", 19.99), Qty: 2},
	}))

	cs := newTestCartSyncer(t, remote, newFakeFallbackStore())
	assert.Equal(t, Uninitialized, cs.State())

	cs.LoadForSession(context.Background(), session.Principal("u1", "Ada", "ada@example.com"))

	assert.Equal(t, Ready, cs.State())
	lines := cs.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Qty)
	assert.InDelta(t, 39.98, cs.TotalPrice(), 0.001)
}

func TestCartLoadFailsSoftToEmpty(t *testing.T) {
	remote := newFakeProfileStore()
	remote.failGet = true

	cs := newTestCartSyncer(t, remote, newFakeFallbackStore())
	cs.LoadForSession(context.Background(), session.Principal("u1", "", ""))

	assert.Equal(t, Ready, cs.State(), "read errors never surface as a load failure")
	assert.Empty(t, cs.Lines())
}

func TestCartAnonymousSessionUsesFallbackStore(t *testing.T) {
	remote := newFakeProfileStore()
	local := newFakeFallbackStore()

	cs := newTestCartSyncer(t, remote, local)
	cs.LoadForSession(context.Background(), session.Anonymous("dev-1"))

	require.NoError(t, cs.AddItem(context.Background(), testGame(1, "portal", 10), 1))

	assert.Len(t, local.cartOf("dev-1"), 1)
	assert.Zero(t, remote.setCartCalls, "anonymous mutations never touch the remote store")
}

func TestCartSessionSwitchToAnonymousReloadsFromFallback(t *testing.T) {
	remote := newFakeProfileStore()
	require.NoError(t, remote.SetCart(context.Background(), "u1", []cart.Line{
		{Game: testGame(1, "portal", 10), Qty: 1},
	}))
	local := newFakeFallbackStore()
	local.carts["dev-1"] = []cart.Line{{Game: testGame(2, "doom", 20), Qty: 3}}

	cs := newTestCartSyncer(t, remote, local)
	cs.LoadForSession(context.Background(), session.Principal("u1", "", ""))
	require.Len(t, cs.Lines(), 1)

	cs.LoadForSession(context.Background(), session.Anonymous("dev-1"))

	lines := cs.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, int64(2), lines[0].ID, "signed-out state comes from the device cart")
}

func TestCartMutationPersistsWholeArray(t *testing.T) {
	remote := newFakeProfileStore()
	cs := newTestCartSyncer(t, remote, nil)
	cs.LoadForSession(context.Background(), session.Principal("u1", "", ""))

	require.NoError(t, cs.AddItem(context.Background(), testGame(1, "portal", 19.99), 1))
	require.NoError(t, cs.AddItem(context.Background(), testGame(1, "portal", 19.99), 2))

	stored := remote.cartOf("u1")
	require.Len(t, stored, 1)
	assert.Equal(t, 3, stored[0].Qty)
}

func TestCartRollbackOnPersistFailure(t *testing.T) {
	remote := newFakeProfileStore()
	cs := newTestCartSyncer(t, remote, nil)
	cs.LoadForSession(context.Background(), session.Principal("u1", "", ""))

	require.NoError(t, cs.AddItem(context.Background(), testGame(1, "portal", 10), 1))

	remote.failSet = true
	err := cs.AddItem(context.Background(), testGame(2, "doom", 20), 1)
	require.ErrorIs(t, err, errInjected)

	lines := cs.Lines()
	require.Len(t, lines, 1, "failed mutation rolled back")
	assert.Equal(t, int64(1), lines[0].ID)
	assert.InDelta(t, 10, cs.TotalPrice(), 0.001)
}

func TestCartRollbackOnSetQuantityFailure(t *testing.T) {
	remote := newFakeProfileStore()
	cs := newTestCartSyncer(t, remote, nil)
	cs.LoadForSession(context.Background(), session.Principal("u1", "", ""))
	require.NoError(t, cs.AddItem(context.Background(), testGame(1, "portal", 10), 2))

	remote.failSet = true
	require.Error(t, cs.SetQuantity(context.Background(), 1, 9))

	assert.Equal(t, 2, cs.Lines()[0].Qty)
}

func TestCartInvalidQuantityDoesNotHitStore(t *testing.T) {
	remote := newFakeProfileStore()
	cs := newTestCartSyncer(t, remote, nil)
	cs.LoadForSession(context.Background(), session.Principal("u1", "", ""))

	before := remote.setCartCalls
	err := cs.AddItem(context.Background(), testGame(1, "portal", 10), 0)
	assert.ErrorIs(t, err, cart.ErrInvalidQuantity)
	assert.Equal(t, before, remote.setCartCalls)
}

func TestCartSupersededLoadIsDiscarded(t *testing.T) {
	remote := newFakeProfileStore()
	require.NoError(t, remote.SetCart(context.Background(), "u1", []cart.Line{
		{Game: testGame(1, "portal", 10), Qty: 1},
	}))
	local := newFakeFallbackStore()
	local.carts["dev-1"] = []cart.Line{{Game: testGame(2, "doom", 20), Qty: 1}}

	cs := newTestCartSyncer(t, remote, local)

	// Simulate an in-flight load for u1 being overtaken by a device load:
	// the second LoadForSession bumps the generation, so when the first
	// one finishes its (slow) read its result must be dropped.
	first := session.Principal("u1", "", "")
	cs.mu.Lock()
	cs.sess = first
	cs.state = Loading
	cs.gen++
	firstGen := cs.gen
	cs.mu.Unlock()

	cs.LoadForSession(context.Background(), session.Anonymous("dev-1"))

	// late completion of the first load
	lines := cs.read(context.Background(), first)
	cs.mu.Lock()
	if cs.gen == firstGen {
		cs.c = cart.New(lines)
	}
	cs.mu.Unlock()

	got := cs.Lines()
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID, "late result for the superseded session is discarded")
}

func TestCartWritesRunInSubmissionOrder(t *testing.T) {
	remote := newFakeProfileStore()
	cs := newTestCartSyncer(t, remote, nil)
	cs.LoadForSession(context.Background(), session.Principal("u1", "", ""))

	require.NoError(t, cs.AddItem(context.Background(), testGame(1, "portal", 10), 1))
	for i := 2; i <= 5; i++ {
		require.NoError(t, cs.SetQuantity(context.Background(), 1, i))
	}

	stored := remote.cartOf("u1")
	require.Len(t, stored, 1)
	assert.Equal(t, 5, stored[0].Qty, "last submitted write wins")
}
