// internal/adapters/in/http/handlers/cart_handler.go
package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"gamestore/internal/application/syncer"
	cartdom "gamestore/internal/domain/cart"
	"gamestore/internal/domain/catalog"
	"gamestore/internal/domain/session"

	"gamestore/internal/adapters/in/http/middleware"
)

// CartHandler serves the cart endpoints:
//
//	GET    /cart
//	POST   /cart/items        {game, quantity}
//	PUT    /cart/items/{id}   {quantity}
//	DELETE /cart/items/{id}
//	DELETE /cart
//
// The session (principal or device) decides which backing store the
// synchronizer writes; an anonymous request without X-Device-Id has no
// scope to store under and is rejected.
type CartHandler struct {
	reg *syncer.Registry
}

func NewCartHandler(reg *syncer.Registry) *CartHandler {
	return &CartHandler{reg: reg}
}

type cartView struct {
	Lines      []cartdom.Line `json:"lines"`
	TotalPrice float64        `json:"totalPrice"`
	State      string         `json:"state"`
}

func (h *CartHandler) view(cs *syncer.CartSyncer) cartView {
	lines := cs.Lines()
	if lines == nil {
		lines = []cartdom.Line{}
	}
	return cartView{
		Lines:      lines,
		TotalPrice: cs.TotalPrice(),
		State:      cs.State().String(),
	}
}

func (h *CartHandler) resolve(w http.ResponseWriter, r *http.Request) (*syncer.CartSyncer, session.Session, bool) {
	if h == nil || h.reg == nil {
		writeErr(w, http.StatusInternalServerError, "cart handler is not configured")
		return nil, session.Session{}, false
	}

	s := middleware.SessionFrom(r.Context())
	if !s.SignedIn() && s.DeviceID == "" {
		badRequest(w, "missing X-Device-Id for anonymous cart")
		return nil, s, false
	}

	return h.reg.ForSession(r.Context(), s).Cart, s, true
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	cs, _, ok := h.resolve(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.view(cs))
}

type addItemRequest struct {
	Game     catalog.Game `json:"game"`
	Quantity int          `json:"quantity"`
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	cs, s, ok := h.resolve(w, r)
	if !ok {
		return
	}

	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid body")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	if err := cs.AddItem(r.Context(), req.Game, req.Quantity); err != nil {
		h.writeMutationErr(w, s, "add", err)
		return
	}
	writeJSON(w, http.StatusOK, h.view(cs))
}

type setQtyRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	cs, s, ok := h.resolve(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(strings.TrimSpace(r.PathValue("id")), 10, 64)
	if err != nil || id <= 0 {
		badRequest(w, "invalid game id")
		return
	}

	var req setQtyRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid body")
		return
	}

	if err := cs.SetQuantity(r.Context(), id, req.Quantity); err != nil {
		h.writeMutationErr(w, s, "set-qty", err)
		return
	}
	writeJSON(w, http.StatusOK, h.view(cs))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cs, s, ok := h.resolve(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(strings.TrimSpace(r.PathValue("id")), 10, 64)
	if err != nil || id <= 0 {
		badRequest(w, "invalid game id")
		return
	}

	if err := cs.RemoveItem(r.Context(), id); err != nil {
		h.writeMutationErr(w, s, "remove", err)
		return
	}
	writeJSON(w, http.StatusOK, h.view(cs))
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	cs, s, ok := h.resolve(w, r)
	if !ok {
		return
	}

	if err := cs.Clear(r.Context()); err != nil {
		h.writeMutationErr(w, s, "clear", err)
		return
	}
	writeJSON(w, http.StatusOK, h.view(cs))
}

func (h *CartHandler) writeMutationErr(w http.ResponseWriter, s session.Session, op string, err error) {
	if errors.Is(err, cartdom.ErrInvalidQuantity) || errors.Is(err, catalog.ErrInvalidGame) {
		badRequest(w, err.Error())
		return
	}
	// persistence failure: optimistic state was rolled back
	log.Printf("[cart_handler] %s failed scope=%s err=%v", op, s.Key(), err)
	writeErr(w, http.StatusBadGateway, "cart could not be saved")
}
