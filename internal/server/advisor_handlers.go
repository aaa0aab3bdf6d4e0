package server

import (
	"log"
	"net/http"
	"strings"

	"CaffeineSentinel/internal/advisor"
	"CaffeineSentinel/internal/auth"
	"CaffeineSentinel/internal/model"
)

type advisorRequest struct {
	Message string `json:"message"`
}

type advisorResponse struct {
	Reply string `json:"reply"`
}

func (s *Server) handleAdvisorMessage(w http.ResponseWriter, r *http.Request, claims *auth.Claims) {
	if s.advisor == nil {
		writeError(w, http.StatusNotFound, "advisor is not enabled")
		return
	}
	var req advisorRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	info, err := s.currentInfo(r, claims.MemberID)
	if err != nil {
		log.Printf("[ERROR] advisor snapshot: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to answer")
		return
	}
	history, err := s.store.TodayHistory(r.Context(), claims.MemberID, s.now())
	if err != nil {
		log.Printf("[ERROR] advisor history: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to answer")
		return
	}

	remaining := info.MaxCaffeine - info.CurrentCaffeine
	if remaining < 0 {
		remaining = 0
	}
	snap := advisor.Snapshot{
		CurrentMg:   info.CurrentCaffeine,
		DailyLimit:  info.MaxCaffeine,
		RemainingMg: remaining,
		Status:      model.StatusFor(info.CurrentCaffeine),
		Drinks:      len(history),
	}
	writeJSON(w, http.StatusOK, advisorResponse{Reply: s.advisor.Reply(req.Message, snap)})
}
