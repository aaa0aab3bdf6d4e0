package server

import (
	"errors"
	"log"
	"math"
	"net/http"
	"time"

	"CaffeineSentinel/internal/auth"
	"CaffeineSentinel/internal/model"
	"CaffeineSentinel/internal/store"
)

type signupRequest struct {
	Username  string  `json:"username"`
	Password  string  `json:"password"`
	Name      string  `json:"name"`
	BirthDate string  `json:"birth_date"`
	Gender    string  `json:"gender"`
	WeightKg  float64 `json:"weight_kg"`
}

type authResponse struct {
	Message string        `json:"message"`
	Token   string        `json:"token"`
	User    *model.Member `json:"user"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	if len(req.Username) < 4 {
		writeError(w, http.StatusBadRequest, "username must be at least 4 characters")
		return
	}
	if len(req.Password) < 6 {
		writeError(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}
	if len(req.Name) < 2 {
		writeError(w, http.StatusBadRequest, "name must be at least 2 characters")
		return
	}
	if req.Gender == "" {
		writeError(w, http.StatusBadRequest, "gender is required")
		return
	}
	birth, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "birth_date must be YYYY-MM-DD")
		return
	}
	if s.now().Year()-birth.Year() < 14 {
		writeError(w, http.StatusBadRequest, "members must be at least 14 years old")
		return
	}

	if _, err := s.store.MemberByUsername(r.Context(), req.Username); err == nil {
		writeError(w, http.StatusConflict, "username already taken")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusInternalServerError, "signup failed")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "signup failed")
		return
	}

	// Recommended limit: 3mg per kg of body weight, capped at 400mg.
	weight := req.WeightKg
	if weight <= 0 {
		weight = 60
	}
	maxCaffeine := int(math.Round(weight * 3))
	if maxCaffeine > model.DefaultDailyLimit {
		maxCaffeine = model.DefaultDailyLimit
	}

	memberID, err := s.store.CreateMember(r.Context(),
		&model.Member{Username: req.Username, Password: hash, Name: req.Name},
		&model.CaffeineProfile{
			BirthDate:   req.BirthDate,
			WeightKg:    weight,
			Gender:      req.Gender,
			MaxCaffeine: maxCaffeine,
		},
	)
	if err != nil {
		log.Printf("[ERROR] create member: %v", err)
		writeError(w, http.StatusInternalServerError, "signup failed")
		return
	}

	token, err := auth.GenerateToken(memberID, req.Username, s.jwtSecret)
	if err != nil {
		log.Printf("[ERROR] generate token: %v", err)
		writeError(w, http.StatusInternalServerError, "signup failed")
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{
		Message: "signup complete",
		Token:   token,
		User:    &model.Member{MemberID: memberID, Username: req.Username, Name: req.Name},
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	member, err := s.store.MemberByUsername(r.Context(), req.Username)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusUnauthorized, "incorrect username or password")
		return
	}
	if err != nil {
		log.Printf("[ERROR] lookup member: %v", err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}
	if !auth.CheckPassword(member.Password, req.Password) {
		writeError(w, http.StatusUnauthorized, "incorrect username or password")
		return
	}

	token, err := auth.GenerateToken(member.MemberID, member.Username, s.jwtSecret)
	if err != nil {
		log.Printf("[ERROR] generate token: %v", err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		Message: "login successful",
		Token:   token,
		User:    member,
	})
}
