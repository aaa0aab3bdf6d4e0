package server

import (
	"log"
	"net/http"
	"strconv"
)

func (s *Server) handleBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := s.store.Brands(r.Context())
	if err != nil {
		log.Printf("[ERROR] list brands: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list brands")
		return
	}
	writeJSON(w, http.StatusOK, brands)
}

func (s *Server) handleMenusByBrand(w http.ResponseWriter, r *http.Request) {
	brandID, err := strconv.ParseInt(r.PathValue("brandID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid brand id")
		return
	}
	menus, err := s.store.MenusByBrand(r.Context(), brandID)
	if err != nil {
		log.Printf("[ERROR] list menus: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list menus")
		return
	}
	writeJSON(w, http.StatusOK, menus)
}

func (s *Server) handleAllMenus(w http.ResponseWriter, r *http.Request) {
	menus, err := s.store.AllMenus(r.Context())
	if err != nil {
		log.Printf("[ERROR] list menus: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list menus")
		return
	}
	writeJSON(w, http.StatusOK, menus)
}

func (s *Server) handleSearchMenus(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}
	menus, err := s.store.SearchMenus(r.Context(), query)
	if err != nil {
		log.Printf("[ERROR] search menus: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to search menus")
		return
	}
	writeJSON(w, http.StatusOK, menus)
}
