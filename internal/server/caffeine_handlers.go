package server

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"CaffeineSentinel/internal/auth"
	"CaffeineSentinel/internal/decay"
	"CaffeineSentinel/internal/model"
	"CaffeineSentinel/internal/store"

	"github.com/google/uuid"
)

type addIntakeRequest struct {
	MenuID     *int64 `json:"menu_id,omitempty"`
	BrandName  string `json:"brand_name"`
	MenuName   string `json:"menu_name"`
	CaffeineMg int    `json:"caffeine_mg"`
}

type caffeineInfoResponse struct {
	Message      string              `json:"message"`
	CaffeineInfo *model.CaffeineInfo `json:"caffeine_info"`
}

func (s *Server) handleAddIntake(w http.ResponseWriter, r *http.Request, claims *auth.Claims) {
	var req addIntakeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if strings.TrimSpace(req.BrandName) == "" || strings.TrimSpace(req.MenuName) == "" {
		writeError(w, http.StatusBadRequest, "brand_name and menu_name are required")
		return
	}
	if req.CaffeineMg < 0 {
		writeError(w, http.StatusBadRequest, "caffeine_mg must be non-negative")
		return
	}

	event := &model.IntakeEvent{
		ID:         uuid.NewString(),
		MenuID:     req.MenuID,
		BrandName:  req.BrandName,
		MenuName:   req.MenuName,
		CaffeineMg: req.CaffeineMg,
		DrinkedAt:  s.now(),
	}
	if err := s.store.AddIntake(r.Context(), claims.MemberID, event); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "caffeine profile not found")
			return
		}
		log.Printf("[ERROR] add intake: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to record intake")
		return
	}

	info, err := s.currentInfo(r, claims.MemberID)
	if err != nil {
		log.Printf("[ERROR] read info after intake: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to record intake")
		return
	}
	writeJSON(w, http.StatusOK, caffeineInfoResponse{Message: "intake recorded", CaffeineInfo: info})
}

func (s *Server) handleTodayHistory(w http.ResponseWriter, r *http.Request, claims *auth.Claims) {
	history, err := s.store.TodayHistory(r.Context(), claims.MemberID, s.now())
	if err != nil {
		log.Printf("[ERROR] today history: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	writeJSON(w, http.StatusOK, history)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request, claims *auth.Claims) {
	start := time.Unix(0, 0)
	end := s.now().AddDate(0, 0, 1)

	q := r.URL.Query()
	if v := q.Get("start"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "start must be YYYY-MM-DD")
			return
		}
		start = t
	}
	if v := q.Get("end"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "end must be YYYY-MM-DD")
			return
		}
		end = t.AddDate(0, 0, 1) // end date is inclusive
	}

	history, err := s.store.History(r.Context(), claims.MemberID, start, end)
	if err != nil {
		log.Printf("[ERROR] history: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	writeJSON(w, http.StatusOK, history)
}

func (s *Server) handleCaffeineInfo(w http.ResponseWriter, r *http.Request, claims *auth.Claims) {
	info, err := s.currentInfo(r, claims.MemberID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "caffeine profile not found")
		return
	}
	if err != nil {
		log.Printf("[ERROR] caffeine info: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load info")
		return
	}
	writeJSON(w, http.StatusOK, info)
}

type updateInfoRequest struct {
	WeightKg    *float64 `json:"weight_kg,omitempty"`
	MaxCaffeine *int     `json:"max_caffeine,omitempty"`
}

func (s *Server) handleUpdateInfo(w http.ResponseWriter, r *http.Request, claims *auth.Claims) {
	var req updateInfoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.WeightKg == nil && req.MaxCaffeine == nil {
		writeError(w, http.StatusBadRequest, "nothing to update")
		return
	}
	if req.WeightKg != nil && *req.WeightKg <= 0 {
		writeError(w, http.StatusBadRequest, "weight_kg must be positive")
		return
	}
	if req.MaxCaffeine != nil && *req.MaxCaffeine <= 0 {
		writeError(w, http.StatusBadRequest, "max_caffeine must be positive")
		return
	}

	if err := s.store.UpdateProfile(r.Context(), claims.MemberID, req.WeightKg, req.MaxCaffeine); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "caffeine profile not found")
			return
		}
		log.Printf("[ERROR] update info: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to update info")
		return
	}

	info, err := s.currentInfo(r, claims.MemberID)
	if err != nil {
		log.Printf("[ERROR] read info after update: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to update info")
		return
	}
	writeJSON(w, http.StatusOK, caffeineInfoResponse{Message: "info updated", CaffeineInfo: info})
}

type projectionResponse struct {
	CurrentCaffeine int           `json:"current_caffeine"`
	HalfLifeHours   float64       `json:"half_life_hours"`
	Points          []decay.Point `json:"points"`
}

func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request, claims *auth.Claims) {
	info, err := s.currentInfo(r, claims.MemberID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "caffeine profile not found")
		return
	}
	if err != nil {
		log.Printf("[ERROR] projection: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to compute projection")
		return
	}
	writeJSON(w, http.StatusOK, projectionResponse{
		CurrentCaffeine: info.CurrentCaffeine,
		HalfLifeHours:   decay.HalfLifeHours,
		Points:          decay.Project(info.CurrentCaffeine),
	})
}

// currentInfo applies the date-rollover reset before reading, so a stale
// total from a previous day is never served.
func (s *Server) currentInfo(r *http.Request, memberID int64) (*model.CaffeineInfo, error) {
	if _, err := s.store.ResetIfStale(r.Context(), memberID, s.now()); err != nil {
		return nil, err
	}
	p, err := s.store.Profile(r.Context(), memberID)
	if err != nil {
		return nil, err
	}
	return &model.CaffeineInfo{
		CurrentCaffeine: p.CurrentCaffeine,
		MaxCaffeine:     p.MaxCaffeine,
		WeightKg:        p.WeightKg,
		UpdatedAt:       p.UpdatedAt,
	}, nil
}
