package server

import (
	"net/http"
	"time"

	"CaffeineSentinel/internal/advisor"
	"CaffeineSentinel/internal/store"
)

// Server exposes the REST API backing the tracker and the mobile web app.
type Server struct {
	store     *store.Store
	advisor   advisor.Provider
	jwtSecret string
	now       func() time.Time
	mux       *http.ServeMux
}

// New wires the routes. The advisor may be nil to disable the endpoint.
func New(st *store.Store, adv advisor.Provider, jwtSecret string) *Server {
	s := &Server{
		store:     st,
		advisor:   adv,
		jwtSecret: jwtSecret,
		now:       time.Now,
		mux:       http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /api/health", s.handleHealth)

	s.mux.HandleFunc("POST /api/auth/signup", s.handleSignup)
	s.mux.HandleFunc("POST /api/auth/login", s.handleLogin)

	s.mux.HandleFunc("GET /api/brands", s.handleBrands)
	s.mux.HandleFunc("GET /api/brands/{brandID}/menus", s.handleMenusByBrand)
	s.mux.HandleFunc("GET /api/menus", s.handleAllMenus)
	s.mux.HandleFunc("GET /api/menus/search", s.handleSearchMenus)

	s.mux.HandleFunc("POST /api/caffeine/intake", s.requireAuth(s.handleAddIntake))
	s.mux.HandleFunc("GET /api/caffeine/today", s.requireAuth(s.handleTodayHistory))
	s.mux.HandleFunc("GET /api/caffeine/history", s.requireAuth(s.handleHistory))
	s.mux.HandleFunc("GET /api/caffeine/info", s.requireAuth(s.handleCaffeineInfo))
	s.mux.HandleFunc("PUT /api/caffeine/info", s.requireAuth(s.handleUpdateInfo))
	s.mux.HandleFunc("GET /api/caffeine/projection", s.requireAuth(s.handleProjection))

	s.mux.HandleFunc("GET /api/profile", s.requireAuth(s.handleGetProfile))
	s.mux.HandleFunc("PUT /api/profile", s.requireAuth(s.handleUpdateProfile))

	s.mux.HandleFunc("POST /api/advisor/message", s.requireAuth(s.handleAdvisorMessage))
}

// Handler returns the root handler with logging applied.
func (s *Server) Handler() http.Handler {
	return logRequests(s.mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
