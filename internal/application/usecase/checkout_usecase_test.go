// internal/application/usecase/checkout_usecase_test.go
package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamestore/internal/application/syncer"
	"gamestore/internal/domain/cart"
	"gamestore/internal/domain/catalog"
	"gamestore/internal/domain/profile"
	"gamestore/internal/domain/session"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type recordingMailer struct {
	to, subject, body string
	sent              int
	fail              bool
}

func (m *recordingMailer) Send(_ context.Context, to, subject, body string) error {
	m.sent++
	m.to, m.subject, m.body = to, subject, body
	if m.fail {
		return errors.New("smtp down")
	}
	return nil
}

// flakyProfileStore satisfies profile.Store; SetCart fails on demand so
// the clear-cart step of checkout can be forced to fail.
type flakyProfileStore struct {
	failSet bool
	cart    []cart.Line
}

func (s *flakyProfileStore) GetByUID(context.Context, string) (*profile.Profile, error) {
	return &profile.Profile{UID: "u1", Cart: s.cart}, nil
}
func (s *flakyProfileStore) Create(context.Context, *profile.Profile) error { return nil }
func (s *flakyProfileStore) SetCart(_ context.Context, _ string, lines []cart.Line) error {
	if s.failSet {
		return errors.New("firestore unavailable")
	}
	s.cart = append([]cart.Line(nil), lines...)
	return nil
}
func (s *flakyProfileStore) AddFavorite(context.Context, string, catalog.Game) error    { return nil }
func (s *flakyProfileStore) RemoveFavorite(context.Context, string, catalog.Game) error { return nil }

func loadedCartSyncer(t *testing.T, store *flakyProfileStore, s session.Session) *syncer.CartSyncer {
	t.Helper()
	cs := syncer.NewCartSyncer(store, nil)
	t.Cleanup(cs.Close)
	cs.LoadForSession(context.Background(), s)
	return cs
}

func checkoutGame(id int64, name string, price float64) catalog.Game {
	g, _ := catalog.Normalize(catalog.Game{ID: id, Name: name, Price: price})
	return g
}

func TestCheckoutEmptyCart(t *testing.T) {
	store := &flakyProfileStore{}
	cs := loadedCartSyncer(t, store, session.Principal("u1", "", ""))

	uc := NewCheckoutUsecase(nil)
	_, err := uc.Checkout(context.Background(), session.Principal("u1", "", "a@b.c"), cs)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutSnapshotsOrderAndClearsCart(t *testing.T) {
	store := &flakyProfileStore{}
	s := session.Principal("u1", "Ada", "ada@example.com")
	cs := loadedCartSyncer(t, store, s)
	require.NoError(t, cs.AddItem(context.Background(), checkoutGame(1, "portal", 19.99), 3))

	mailer := &recordingMailer{}
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	uc := NewCheckoutUsecaseWithClock(mailer, fixedClock{now})

	o, err := uc.Checkout(context.Background(), s, cs)
	require.NoError(t, err)

	assert.NotEmpty(t, o.ID)
	assert.Equal(t, "u1", o.UID)
	assert.Equal(t, now, o.PlacedAt)
	require.Len(t, o.Lines, 1)
	assert.Equal(t, 3, o.Lines[0].Qty)
	assert.InDelta(t, 59.97, o.Total, 0.001)

	assert.Empty(t, cs.Lines(), "cart cleared after checkout")
	assert.Empty(t, store.cart, "clear persisted")

	assert.Equal(t, 1, mailer.sent)
	assert.Equal(t, "ada@example.com", mailer.to)
	assert.Contains(t, mailer.subject, o.ID)
	assert.Contains(t, mailer.body, "3x portal")
}

func TestCheckoutMailFailureDoesNotFailOrder(t *testing.T) {
	store := &flakyProfileStore{}
	s := session.Principal("u1", "", "ada@example.com")
	cs := loadedCartSyncer(t, store, s)
	require.NoError(t, cs.AddItem(context.Background(), checkoutGame(1, "portal", 10), 1))

	mailer := &recordingMailer{fail: true}
	uc := NewCheckoutUsecase(mailer)

	o, err := uc.Checkout(context.Background(), s, cs)
	require.NoError(t, err)
	assert.NotNil(t, o)
	assert.Equal(t, 1, mailer.sent)
}

func TestCheckoutNoMailWithoutEmail(t *testing.T) {
	store := &flakyProfileStore{}
	s := session.Principal("u1", "", "")
	cs := loadedCartSyncer(t, store, s)
	require.NoError(t, cs.AddItem(context.Background(), checkoutGame(1, "portal", 10), 1))

	mailer := &recordingMailer{}
	uc := NewCheckoutUsecase(mailer)

	_, err := uc.Checkout(context.Background(), s, cs)
	require.NoError(t, err)
	assert.Zero(t, mailer.sent)
}

func TestCheckoutFailsWhenClearCannotPersist(t *testing.T) {
	store := &flakyProfileStore{}
	s := session.Principal("u1", "", "ada@example.com")
	cs := loadedCartSyncer(t, store, s)
	require.NoError(t, cs.AddItem(context.Background(), checkoutGame(1, "portal", 10), 2))

	store.failSet = true
	mailer := &recordingMailer{}
	uc := NewCheckoutUsecase(mailer)

	_, err := uc.Checkout(context.Background(), s, cs)
	require.Error(t, err)

	assert.Len(t, cs.Lines(), 1, "rolled-back clear keeps the cart intact")
	assert.Zero(t, mailer.sent, "no confirmation for a failed checkout")
}
