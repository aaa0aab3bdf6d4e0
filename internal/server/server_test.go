package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CaffeineSentinel/internal/advisor"
	"CaffeineSentinel/internal/model"
	"CaffeineSentinel/internal/store"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()
	st, err := store.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return New(st, advisor.NewRuleBased(), testSecret), st
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

func signupTestMember(t *testing.T, s *Server, username string) string {
	t.Helper()
	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/auth/signup", "", map[string]any{
		"username":   username,
		"password":   "secret99",
		"name":       "Tester",
		"birth_date": "2000-01-15",
		"gender":     "male",
		"weight_kg":  70,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	resp := decodeBody[authResponse](t, rec)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestSignup_Validation(t *testing.T) {
	s, _ := newTestServer(t)

	base := map[string]any{
		"username": "coffeelover", "password": "secret99", "name": "Tester",
		"birth_date": "2000-01-15", "gender": "male",
	}
	tests := []struct {
		name     string
		override map[string]any
	}{
		{"short username", map[string]any{"username": "abc"}},
		{"short password", map[string]any{"password": "12345"}},
		{"short name", map[string]any{"name": "A"}},
		{"missing birth date", map[string]any{"birth_date": ""}},
		{"missing gender", map[string]any{"gender": ""}},
		{"under 14", map[string]any{"birth_date": fmt.Sprintf("%d-01-15", time.Now().Year()-10)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := map[string]any{}
			for k, v := range base {
				payload[k] = v
			}
			for k, v := range tt.override {
				payload[k] = v
			}
			rec := doJSON(t, s.Handler(), http.MethodPost, "/api/auth/signup", "", payload)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestSignup_DuplicateUsername(t *testing.T) {
	s, _ := newTestServer(t)
	signupTestMember(t, s, "coffeelover")

	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/auth/signup", "", map[string]any{
		"username": "coffeelover", "password": "secret99", "name": "Tester",
		"birth_date": "2000-01-15", "gender": "male",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLogin(t *testing.T) {
	s, _ := newTestServer(t)
	signupTestMember(t, s, "coffeelover")

	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": "coffeelover", "password": "secret99",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[authResponse](t, rec)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "coffeelover", resp.User.Username)

	rec = doJSON(t, s.Handler(), http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": "coffeelover", "password": "wrong999",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequired(t *testing.T) {
	s, _ := newTestServer(t)

	for _, path := range []string{"/api/caffeine/today", "/api/caffeine/info", "/api/profile"} {
		rec := doJSON(t, s.Handler(), http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
	rec := doJSON(t, s.Handler(), http.MethodGet, "/api/caffeine/info", "bogus-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAddIntake_AndInfo(t *testing.T) {
	s, _ := newTestServer(t)
	token := signupTestMember(t, s, "coffeelover")

	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/caffeine/intake", token, map[string]any{
		"brand_name": "Starbucks", "menu_name": "Caffe Americano", "caffeine_mg": 150,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeBody[caffeineInfoResponse](t, rec)
	assert.Equal(t, 150, resp.CaffeineInfo.CurrentCaffeine)
	// min(70kg * 3, 400) = 210
	assert.Equal(t, 210, resp.CaffeineInfo.MaxCaffeine)

	rec = doJSON(t, s.Handler(), http.MethodGet, "/api/caffeine/today", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	history := decodeBody[[]model.IntakeEvent](t, rec)
	require.Len(t, history, 1)
	assert.Equal(t, "Caffe Americano", history[0].MenuName)
	assert.NotEmpty(t, history[0].ID)
}

func TestAddIntake_Validation(t *testing.T) {
	s, _ := newTestServer(t)
	token := signupTestMember(t, s, "coffeelover")

	tests := []map[string]any{
		{"brand_name": "", "menu_name": "Latte", "caffeine_mg": 75},
		{"brand_name": "Brand", "menu_name": "", "caffeine_mg": 75},
		{"brand_name": "Brand", "menu_name": "Latte", "caffeine_mg": -5},
	}
	for i, payload := range tests {
		rec := doJSON(t, s.Handler(), http.MethodPost, "/api/caffeine/intake", token, payload)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "case %d", i)
	}
}

func TestCaffeineInfo_DateRollover(t *testing.T) {
	s, st := newTestServer(t)
	token := signupTestMember(t, s, "coffeelover")

	// Record yesterday, then read today.
	yesterday := time.Now().AddDate(0, 0, -1)
	s.now = func() time.Time { return yesterday }
	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/caffeine/intake", token, map[string]any{
		"brand_name": "Starbucks", "menu_name": "Cold Brew", "caffeine_mg": 155,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	s.now = time.Now
	rec = doJSON(t, s.Handler(), http.MethodGet, "/api/caffeine/info", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	info := decodeBody[model.CaffeineInfo](t, rec)
	assert.Equal(t, 0, info.CurrentCaffeine, "stale total must reset on read")

	// The underlying profile row was rewritten, not just the response.
	m, err := st.MemberByUsername(t.Context(), "coffeelover")
	require.NoError(t, err)
	p, err := st.Profile(t.Context(), m.MemberID)
	require.NoError(t, err)
	assert.Equal(t, 0, p.CurrentCaffeine)
}

func TestUpdateInfo(t *testing.T) {
	s, _ := newTestServer(t)
	token := signupTestMember(t, s, "coffeelover")

	rec := doJSON(t, s.Handler(), http.MethodPut, "/api/caffeine/info", token, map[string]any{
		"max_caffeine": 300,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[caffeineInfoResponse](t, rec)
	assert.Equal(t, 300, resp.CaffeineInfo.MaxCaffeine)

	rec = doJSON(t, s.Handler(), http.MethodPut, "/api/caffeine/info", token, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMenuEndpoints(t *testing.T) {
	s, st := newTestServer(t)
	require.NoError(t, st.SeedCatalog(t.Context()))

	rec := doJSON(t, s.Handler(), http.MethodGet, "/api/brands", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	brands := decodeBody[[]model.Brand](t, rec)
	require.NotEmpty(t, brands)

	rec = doJSON(t, s.Handler(), http.MethodGet, fmt.Sprintf("/api/brands/%d/menus", brands[0].BrandID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	menus := decodeBody[[]model.Menu](t, rec)
	assert.NotEmpty(t, menus)

	rec = doJSON(t, s.Handler(), http.MethodGet, "/api/menus/search?query=Americano", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	found := decodeBody[[]model.Menu](t, rec)
	assert.NotEmpty(t, found)

	rec = doJSON(t, s.Handler(), http.MethodGet, "/api/menus/search", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProjectionEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	token := signupTestMember(t, s, "coffeelover")

	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/caffeine/intake", token, map[string]any{
		"brand_name": "Starbucks", "menu_name": "Cold Brew", "caffeine_mg": 200,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s.Handler(), http.MethodGet, "/api/caffeine/projection", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	proj := decodeBody[projectionResponse](t, rec)
	assert.Equal(t, 200, proj.CurrentCaffeine)
	require.NotEmpty(t, proj.Points)
	assert.Equal(t, 200, proj.Points[0].Caffeine)
	for _, p := range proj.Points {
		if p.Hour == 5 {
			assert.Equal(t, 100, p.Caffeine, "one half-life")
		}
	}
}

func TestAdvisorEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	token := signupTestMember(t, s, "coffeelover")

	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/advisor/message", token, map[string]any{
		"message": "how much caffeine today?",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[advisorResponse](t, rec)
	assert.NotEmpty(t, resp.Reply)

	rec = doJSON(t, s.Handler(), http.MethodPost, "/api/advisor/message", token, map[string]any{"message": "  "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfileEndpoints(t *testing.T) {
	s, _ := newTestServer(t)
	token := signupTestMember(t, s, "coffeelover")

	rec := doJSON(t, s.Handler(), http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	profile := decodeBody[profileResponse](t, rec)
	assert.Equal(t, "Tester", profile.Member.Name)
	require.NotNil(t, profile.CaffeineInfo)
	assert.Equal(t, 70.0, profile.CaffeineInfo.WeightKg)

	rec = doJSON(t, s.Handler(), http.MethodPut, "/api/profile", token, map[string]any{
		"name": "Renamed", "weight_kg": 65,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	profile = decodeBody[profileResponse](t, rec)
	assert.Equal(t, "Renamed", profile.Member.Name)
	assert.Equal(t, 65.0, profile.CaffeineInfo.WeightKg)
}
