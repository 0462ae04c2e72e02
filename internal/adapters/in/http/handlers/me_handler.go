// internal/adapters/in/http/handlers/me_handler.go
package handlers

import (
	"log"
	"net/http"

	"gamestore/internal/domain/profile"

	"gamestore/internal/adapters/in/http/middleware"
)

// MeHandler serves GET /me: the signed-in user's profile document.
type MeHandler struct {
	store profile.Store
}

func NewMeHandler(store profile.Store) *MeHandler {
	return &MeHandler{store: store}
}

func (h *MeHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.store == nil {
		writeErr(w, http.StatusInternalServerError, "me handler is not configured")
		return
	}

	s := middleware.SessionFrom(r.Context())
	if !s.SignedIn() {
		writeErr(w, http.StatusUnauthorized, "sign in required")
		return
	}

	p, err := h.store.GetByUID(r.Context(), s.UID)
	if err != nil {
		log.Printf("[me_handler] load failed uid=%s err=%v", s.UID, err)
		writeErr(w, http.StatusBadGateway, "profile unavailable")
		return
	}
	if p == nil {
		// first use: not provisioned until favorites/cart touch the doc
		writeErr(w, http.StatusNotFound, "profile not found")
		return
	}

	writeJSON(w, http.StatusOK, p)
}
