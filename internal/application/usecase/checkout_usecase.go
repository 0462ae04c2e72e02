// internal/application/usecase/checkout_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"gamestore/internal/application/syncer"
	"gamestore/internal/domain/order"
	"gamestore/internal/domain/session"
)

var (
	ErrEmptyCart = errors.New("checkout_usecase: cart is empty")
)

// Mailer sends plain-text mail. Implemented by the SendGrid adapter.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Clock provides current time (for testability).
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// CheckoutUsecase performs the simulated (non-financial) checkout:
// snapshot the cart into an order, clear the cart through its
// synchronizer, and send a best-effort confirmation mail. Orders are
// not persisted server-side.
type CheckoutUsecase struct {
	mailer Mailer
	clock  Clock
}

func NewCheckoutUsecase(mailer Mailer) *CheckoutUsecase {
	return &CheckoutUsecase{mailer: mailer, clock: systemClock{}}
}

// NewCheckoutUsecaseWithClock is useful for tests.
func NewCheckoutUsecaseWithClock(mailer Mailer, clock Clock) *CheckoutUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	return &CheckoutUsecase{mailer: mailer, clock: clock}
}

// Checkout builds the order from the current cart lines and clears the
// cart. If clearing fails to persist, the cart synchronizer rolls the
// clear back and the checkout fails as a whole.
func (uc *CheckoutUsecase) Checkout(ctx context.Context, s session.Session, cs *syncer.CartSyncer) (*order.Order, error) {
	if uc == nil || cs == nil {
		return nil, errors.New("checkout_usecase: not configured")
	}

	lines := cs.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	o, err := order.New(uuid.NewString(), s.UID, s.Email, lines, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := cs.Clear(ctx); err != nil {
		return nil, fmt.Errorf("checkout_usecase: clear cart: %w", err)
	}

	// confirmation mail is best-effort; a mail failure never fails the order
	if uc.mailer != nil && o.Email != "" {
		subject := fmt.Sprintf("Order %s confirmed", o.ID)
		if err := uc.mailer.Send(ctx, o.Email, subject, formatOrderBody(o)); err != nil {
			log.Printf("[checkout_usecase] confirmation mail failed order=%s err=%v", o.ID, err)
		}
	}

	log.Printf("[checkout_usecase] order placed id=%s lines=%d total=%.2f", o.ID, len(o.Lines), o.Total)
	return o, nil
}

func formatOrderBody(o *order.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Thanks for your order %s (simulated, no payment taken).\n\n", o.ID)
	for _, l := range o.Lines {
		fmt.Fprintf(&b, "  %dx %s @ %.2f\n", l.Qty, l.Name, l.Price)
	}
	fmt.Fprintf(&b, "\nTotal: %.2f\n", o.Total)
	return b.String()
}
