// internal/adapters/in/http/handlers/checkout_handler.go
package handlers

import (
	"errors"
	"log"
	"net/http"

	"gamestore/internal/application/syncer"
	"gamestore/internal/application/usecase"

	"gamestore/internal/adapters/in/http/middleware"
)

// CheckoutHandler serves POST /checkout: the simulated order flow.
type CheckoutHandler struct {
	uc  *usecase.CheckoutUsecase
	reg *syncer.Registry
}

func NewCheckoutHandler(uc *usecase.CheckoutUsecase, reg *syncer.Registry) *CheckoutHandler {
	return &CheckoutHandler{uc: uc, reg: reg}
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.uc == nil || h.reg == nil {
		writeErr(w, http.StatusInternalServerError, "checkout handler is not configured")
		return
	}

	s := middleware.SessionFrom(r.Context())
	if !s.SignedIn() && s.DeviceID == "" {
		badRequest(w, "missing X-Device-Id for anonymous checkout")
		return
	}

	entry := h.reg.ForSession(r.Context(), s)
	o, err := h.uc.Checkout(r.Context(), s, entry.Cart)
	if err != nil {
		if errors.Is(err, usecase.ErrEmptyCart) {
			badRequest(w, "cart is empty")
			return
		}
		log.Printf("[checkout_handler] checkout failed scope=%s err=%v", s.Key(), err)
		writeErr(w, http.StatusBadGateway, "checkout could not be completed")
		return
	}

	writeJSON(w, http.StatusCreated, o)
}
