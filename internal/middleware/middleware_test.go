package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"hospital-inventory-dashboard/internal/config"
	"hospital-inventory-dashboard/internal/database"
	"hospital-inventory-dashboard/internal/repository"
	"hospital-inventory-dashboard/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCORS(t *testing.T) {
	cfg := &config.Config{CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}}}
	r := gin.New()
	r.Use(CORS(cfg))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/x", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.POST("/login", RateLimit(0.001, 2), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, "buckets are per IP")
}

func TestRequestLoggerAndRecovery(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	r := gin.New()
	r.Use(RequestLogger(logger), Recovery(logger))
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	req.Header.Set("X-Request-ID", "rid-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "rid-1", w.Header().Get("X-Request-ID"))
	assert.Contains(t, buf.String(), `"panic":"boom"`)
	assert.Contains(t, buf.String(), `"request_id":"rid-1"`)
	assert.Contains(t, buf.String(), `"status":500`)
}

func newSessionRouter(t *testing.T, backend *testutil.Backend) (*gin.Engine, *repository.SessionRepository) {
	t.Helper()
	db := database.OpenTest(t)
	sessions := repository.NewSessionRepo(db)
	r := gin.New()
	r.Use(Session(SessionDeps{
		CookieName: "profile",
		BaseURL:    backend.URL(),
		Sessions:   sessions,
		Audit:      repository.NewAuditRepo(db),
		Logger:     zerolog.Nop(),
	}))
	r.GET("/open", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"profile": GetScope(c).Profile})
	})
	r.GET("/closed", RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, GetScope(c).Auth.User())
	})
	return r, sessions
}

func TestSession_IssuesProfileCookie(t *testing.T) {
	backend := testutil.NewBackend(t)
	r, _ := newSessionRouter(t, backend)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/open", nil))

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "profile", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, 0, backend.TotalCalls(), "no token, no profile call")
}

func TestRequireAuth(t *testing.T) {
	backend := testutil.NewBackend(t)
	r, sessions := newSessionRouter(t, backend)
	const profile = "6f1c1a52-9c1e-4f7e-8d43-1f0f3b1d2a10"

	req := httptest.NewRequest(http.MethodGet, "/closed", nil)
	req.AddCookie(&http.Cookie{Name: "profile", Value: profile})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	require.NoError(t, sessions.UpsertToken(profile, "access_token", backend.IssueToken()))
	req = httptest.NewRequest(http.MethodGet, "/closed", nil)
	req.AddCookie(&http.Cookie{Name: "profile", Value: profile})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), testutil.Email)
}
