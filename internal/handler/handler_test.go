package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"hospital-inventory-dashboard/internal/database"
	"hospital-inventory-dashboard/internal/middleware"
	"hospital-inventory-dashboard/internal/models"
	"hospital-inventory-dashboard/internal/repository"
	"hospital-inventory-dashboard/internal/session"
	"hospital-inventory-dashboard/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testProfile = "0b8f3f5e-3c55-4a59-9d4e-2f7a6c1d9e01"

type harness struct {
	t        *testing.T
	router   *gin.Engine
	backend  *testutil.Backend
	sessions *repository.SessionRepository
	audit    *repository.AuditRepository
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend := testutil.NewBackend(t)
	db := database.OpenTest(t)
	sessions := repository.NewSessionRepo(db)
	audit := repository.NewAuditRepo(db)

	r := gin.New()
	RegisterRoutes(r, RouteDeps{
		Session: middleware.Session(middleware.SessionDeps{
			CookieName: "dashboard_profile",
			BaseURL:    backend.URL(),
			Sessions:   sessions,
			Audit:      audit,
			Logger:     zerolog.Nop(),
		}),
		Logger: zerolog.Nop(),
	})
	return &harness{t: t, router: r, backend: backend, sessions: sessions, audit: audit}
}

func (h *harness) do(method, path string, body any) *httptest.ResponseRecorder {
	h.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(h.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "dashboard_profile", Value: testProfile})
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func (h *harness) signIn() {
	h.t.Helper()
	w := h.do(http.MethodPost, "/login", gin.H{"email": testutil.Email, "password": testutil.Password})
	require.Equal(h.t, http.StatusSeeOther, w.Code, w.Body.String())
}

func (h *harness) store() *session.ProfileStore {
	return session.NewProfileStore(h.sessions, testProfile)
}

func (h *harness) accessToken() string {
	token, err := h.store().AccessToken()
	require.NoError(h.t, err)
	return token
}

func (h *harness) actions() []string {
	logs, err := h.audit.ListByProfile(testProfile, 0)
	require.NoError(h.t, err)
	actions := make([]string, 0, len(logs))
	for i := len(logs) - 1; i >= 0; i-- {
		actions = append(actions, logs[i].Action)
	}
	return actions
}

type envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func TestDashboard_RedirectsAnonymousVisitors(t *testing.T) {
	h := newHarness(t)

	for _, path := range []string{"/dashboard", "/dashboard/hospitals", "/dashboard/inventory", "/dashboard/alerts", "/dashboard/predictions", "/dashboard/medicines"} {
		w := h.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/login", w.Header().Get("Location"), path)
	}
	assert.Equal(t, 0, h.backend.Calls(http.MethodGet, "/api/auth/profile/"))
}

func TestLogin_SuccessLandsOnDashboard(t *testing.T) {
	h := newHarness(t)
	h.backend.AddHospital(models.Hospital{Name: "City General", IsActive: true})

	w := h.do(http.MethodPost, "/login", gin.H{"email": testutil.Email, "password": testutil.Password})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
	assert.NotEmpty(t, h.accessToken())

	w = h.do(http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var page struct {
		User  models.User    `json:"user"`
		Stats map[string]int `json:"stats"`
	}
	decode(t, w, &page)
	assert.Equal(t, testutil.Email, page.User.Email)
	assert.Equal(t, 1, page.Stats["hospitals"])
	assert.Equal(t, []string{models.AuditActionLogin}, h.actions())
}

func TestLogin_FormEncoded(t *testing.T) {
	h := newHarness(t)

	form := url.Values{"email": {testutil.Email}, "password": {testutil.Password}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "dashboard_profile", Value: testProfile})
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodPost, "/login", gin.H{"email": testutil.Email, "password": "wrong"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	env := decode(t, w, nil)
	assert.Equal(t, "Invalid credentials. Please check your email and password.", env.Error)
	assert.Empty(t, h.accessToken())
}

func TestLoginPage_SignedInGoesToDashboard(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodGet, "/login", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	h.signIn()
	w = h.do(http.MethodGet, "/login", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestRegister(t *testing.T) {
	valid := gin.H{
		"hospital_name":    "Lakeside Clinic",
		"email":            "owner@lakeside.org",
		"phone":            "555-0100",
		"address":          "1 Lake Rd",
		"password":         "longenough",
		"confirm_password": "longenough",
	}
	with := func(key, value string) gin.H {
		form := gin.H{}
		for k, v := range valid {
			form[k] = v
		}
		form[key] = value
		return form
	}

	cases := []struct {
		name    string
		form    gin.H
		wantErr string
	}{
		{name: "missing hospital", form: with("hospital_name", ""), wantErr: "Hospital Name is required"},
		{name: "missing phone", form: with("phone", ""), wantErr: "Phone is required"},
		{name: "mismatch", form: with("confirm_password", "different1"), wantErr: "Passwords do not match."},
		{name: "short", form: gin.H{
			"hospital_name": "x", "email": "a@b.c", "phone": "1", "address": "y",
			"password": "short", "confirm_password": "short",
		}, wantErr: "Password must be at least 8 characters long."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			w := h.do(http.MethodPost, "/register", tc.form)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.wantErr, decode(t, w, nil).Error)
			assert.Equal(t, 0, h.backend.Calls(http.MethodPost, "/api/auth/register/"))
		})
	}

	t.Run("success", func(t *testing.T) {
		h := newHarness(t)
		w := h.do(http.MethodPost, "/register", valid)
		require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
		assert.Equal(t, "/dashboard", w.Header().Get("Location"))
		assert.Equal(t, 1, h.backend.Calls(http.MethodPost, "/api/auth/login/"))
		assert.Equal(t, []string{models.AuditActionRegister, models.AuditActionLogin}, h.actions())

		w = h.do(http.MethodGet, "/dashboard", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("backend rejects", func(t *testing.T) {
		h := newHarness(t)
		w := h.do(http.MethodPost, "/register", with("email", testutil.Email))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decode(t, w, nil).Error, "API Error: 400")
	})
}

func TestLogout(t *testing.T) {
	h := newHarness(t)
	h.signIn()

	w := h.do(http.MethodPost, "/logout", nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Equal(t, 1, h.backend.Calls(http.MethodPost, "/api/auth/logout/"))
	assert.Empty(t, h.accessToken())
	refresh, _ := h.store().RefreshToken()
	assert.Empty(t, refresh)

	w = h.do(http.MethodGet, "/dashboard", nil)
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestExpiredSession_AnyEndpointRedirectsAndClears(t *testing.T) {
	paths := map[string]string{
		"/dashboard/hospitals":   "/api/hospitals/",
		"/dashboard/alerts":      "/api/alerts/",
		"/dashboard/medicines":   "/api/medicines/",
		"/dashboard/predictions": "/api/predictions/",
	}
	for page, api := range paths {
		t.Run(page, func(t *testing.T) {
			h := newHarness(t)
			h.signIn()
			h.backend.Fail(http.MethodGet, api, http.StatusUnauthorized)

			w := h.do(http.MethodGet, page, nil)

			assert.Equal(t, http.StatusFound, w.Code, w.Body.String())
			assert.Equal(t, "/login", w.Header().Get("Location"))
			assert.Empty(t, h.accessToken())
			assert.Contains(t, h.actions(), models.AuditActionSessionExpired)
		})
	}
}

func TestExpiredSession_DuringRefresh(t *testing.T) {
	h := newHarness(t)
	h.signIn()
	h.backend.RevokeTokens()

	w := h.do(http.MethodGet, "/dashboard/inventory", nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Empty(t, h.accessToken())
	assert.Equal(t, 0, h.backend.Calls(http.MethodGet, "/api/hospitals/inventory/"))
}

func TestBackendFailure_ReportedWithoutLogout(t *testing.T) {
	h := newHarness(t)
	h.signIn()
	h.backend.Fail(http.MethodGet, "/api/alerts/", http.StatusInternalServerError)

	w := h.do(http.MethodGet, "/dashboard/alerts", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	env := decode(t, w, nil)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "API Error: 500")
	assert.NotEmpty(t, h.accessToken())
	assert.Equal(t, 1, h.backend.Calls(http.MethodGet, "/api/alerts/"), "no retry")
}

func TestOverview_PartialFailureKeepsOtherLists(t *testing.T) {
	h := newHarness(t)
	h.signIn()
	h.backend.AddHospital(models.Hospital{Name: "A"})
	h.backend.AddHospital(models.Hospital{Name: "B"})
	h.backend.Fail(http.MethodGet, "/api/alerts/", http.StatusServiceUnavailable)

	w := h.do(http.MethodGet, "/dashboard", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Stats  map[string]int    `json:"stats"`
		Errors map[string]string `json:"errors"`
	}
	decode(t, w, &page)
	assert.Equal(t, 2, page.Stats["hospitals"])
	assert.Equal(t, map[string]string{"alerts": "API Error: 503"}, page.Errors)
}

func TestActivity(t *testing.T) {
	h := newHarness(t)
	h.signIn()

	w := h.do(http.MethodGet, "/dashboard/activity", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Events []models.AuditLog `json:"events"`
	}
	decode(t, w, &page)
	require.Len(t, page.Events, 1)
	assert.Equal(t, testutil.Email, page.Events[0].Details)
}

func TestLanding_AndNotFound(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Authenticated bool `json:"authenticated"`
	}
	decode(t, w, &page)
	assert.False(t, page.Authenticated)

	w = h.do(http.MethodGet, "/no/such/page", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "/no/such/page")
}
