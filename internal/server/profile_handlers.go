package server

import (
	"errors"
	"log"
	"net/http"

	"CaffeineSentinel/internal/auth"
	"CaffeineSentinel/internal/model"
	"CaffeineSentinel/internal/store"
)

type profileResponse struct {
	Member       *model.Member          `json:"member"`
	CaffeineInfo *model.CaffeineProfile `json:"caffeine_info"`
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request, claims *auth.Claims) {
	member, err := s.store.Member(r.Context(), claims.MemberID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "member not found")
		return
	}
	if err != nil {
		log.Printf("[ERROR] get profile: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	profile, err := s.store.Profile(r.Context(), claims.MemberID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Printf("[ERROR] get caffeine profile: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{Member: member, CaffeineInfo: profile})
}

type updateProfileRequest struct {
	Name        string   `json:"name,omitempty"`
	WeightKg    *float64 `json:"weight_kg,omitempty"`
	MaxCaffeine *int     `json:"max_caffeine,omitempty"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request, claims *auth.Claims) {
	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	if req.Name != "" {
		if len(req.Name) < 2 {
			writeError(w, http.StatusBadRequest, "name must be at least 2 characters")
			return
		}
		if err := s.store.UpdateMemberName(r.Context(), claims.MemberID, req.Name); err != nil {
			log.Printf("[ERROR] update name: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to update profile")
			return
		}
	}
	if req.WeightKg != nil || req.MaxCaffeine != nil {
		if err := s.store.UpdateProfile(r.Context(), claims.MemberID, req.WeightKg, req.MaxCaffeine); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusNotFound, "caffeine profile not found")
				return
			}
			log.Printf("[ERROR] update profile: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to update profile")
			return
		}
	}

	s.handleGetProfile(w, r, claims)
}
