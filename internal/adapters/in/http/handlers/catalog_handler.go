// internal/adapters/in/http/handlers/catalog_handler.go
package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"gamestore/internal/application/usecase"
)

// CatalogHandler serves the read-only catalog endpoints:
//
//	GET /games                         (page, page_size, ordering, search)
//	GET /games/{slug}
//	GET /games/{slug}/screenshots
type CatalogHandler struct {
	uc *usecase.CatalogUsecase
}

func NewCatalogHandler(uc *usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

func (h *CatalogHandler) Browse(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "catalog handler is not configured")
		return
	}

	q := r.URL.Query()
	page := atoiDefault(q.Get("page"), 1)
	pageSize := atoiDefault(q.Get("page_size"), 0)

	result, err := h.uc.Browse(r.Context(), q.Get("search"), page, pageSize, q.Get("ordering"))
	if err != nil {
		log.Printf("[catalog_handler] browse failed err=%v", err)
		writeErr(w, http.StatusBadGateway, "catalog unavailable")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *CatalogHandler) Details(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "catalog handler is not configured")
		return
	}

	slug := strings.TrimSpace(r.PathValue("slug"))
	if slug == "" {
		badRequest(w, "missing slug")
		return
	}

	d, err := h.uc.Details(r.Context(), slug)
	if err != nil {
		log.Printf("[catalog_handler] details failed slug=%s err=%v", slug, err)
		writeErr(w, http.StatusBadGateway, "catalog unavailable")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *CatalogHandler) Screenshots(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "catalog handler is not configured")
		return
	}

	slug := strings.TrimSpace(r.PathValue("slug"))
	if slug == "" {
		badRequest(w, "missing slug")
		return
	}

	shots, err := h.uc.Screenshots(r.Context(), slug)
	if err != nil {
		log.Printf("[catalog_handler] screenshots failed slug=%s err=%v", slug, err)
		writeErr(w, http.StatusBadGateway, "catalog unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": shots})
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}
