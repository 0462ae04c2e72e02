// internal/adapters/in/http/handlers/favorites_handler.go
package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"gamestore/internal/application/syncer"
	"gamestore/internal/domain/catalog"

	"gamestore/internal/adapters/in/http/middleware"
)

// FavoritesHandler serves the favorites endpoints:
//
//	GET    /favorites
//	GET    /favorites/{id}    (membership check)
//	PUT    /favorites         {game}
//	DELETE /favorites         {game}
//
// Removal takes the full game in the body because the remote store
// removes by whole-element equality, not by id.
type FavoritesHandler struct {
	reg *syncer.Registry
}

func NewFavoritesHandler(reg *syncer.Registry) *FavoritesHandler {
	return &FavoritesHandler{reg: reg}
}

func (h *FavoritesHandler) resolve(w http.ResponseWriter, r *http.Request) (*syncer.FavoritesSyncer, bool) {
	if h == nil || h.reg == nil {
		writeErr(w, http.StatusInternalServerError, "favorites handler is not configured")
		return nil, false
	}
	s := middleware.SessionFrom(r.Context())
	return h.reg.ForSession(r.Context(), s).Favorites, true
}

func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	fs, ok := h.resolve(w, r)
	if !ok {
		return
	}

	items := fs.Items()
	if items == nil {
		items = []catalog.Game{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"favorites": items,
		"state":     fs.State().String(),
	})
}

func (h *FavoritesHandler) Contains(w http.ResponseWriter, r *http.Request) {
	fs, ok := h.resolve(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(strings.TrimSpace(r.PathValue("id")), 10, 64)
	if err != nil || id <= 0 {
		badRequest(w, "invalid game id")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"favorite": fs.IsFavorite(id)})
}

type favoriteRequest struct {
	Game catalog.Game `json:"game"`
}

func (h *FavoritesHandler) Add(w http.ResponseWriter, r *http.Request) {
	fs, ok := h.resolve(w, r)
	if !ok {
		return
	}

	var req favoriteRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid body")
		return
	}

	if err := fs.Add(r.Context(), req.Game); err != nil {
		h.writeMutationErr(w, "add", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"favorite": true})
}

func (h *FavoritesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	fs, ok := h.resolve(w, r)
	if !ok {
		return
	}

	var req favoriteRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid body")
		return
	}

	if err := fs.Remove(r.Context(), req.Game); err != nil {
		h.writeMutationErr(w, "remove", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"favorite": false})
}

func (h *FavoritesHandler) writeMutationErr(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, syncer.ErrNoSession):
		writeErr(w, http.StatusUnauthorized, "sign in to manage favorites")
	case errors.Is(err, catalog.ErrInvalidGame):
		badRequest(w, err.Error())
	default:
		// persistence failure: optimistic state was rolled back
		log.Printf("[favorites_handler] %s failed err=%v", op, err)
		writeErr(w, http.StatusBadGateway, "favorites could not be saved")
	}
}
