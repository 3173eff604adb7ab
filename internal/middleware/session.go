package middleware

import (
	"net/http"

	"hospital-inventory-dashboard/internal/apiclient"
	"hospital-inventory-dashboard/internal/auth"
	"hospital-inventory-dashboard/internal/models"
	"hospital-inventory-dashboard/internal/obs"
	"hospital-inventory-dashboard/internal/repository"
	"hospital-inventory-dashboard/internal/service"
	"hospital-inventory-dashboard/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const scopeKey = "scope"

// profileCookieMaxAge keeps a browser on the same profile for a year
const profileCookieMaxAge = 365 * 24 * 60 * 60

// Scope is everything one page load needs: the browser's token store, a
// request client bound to it, the facade and the auth provider.
type Scope struct {
	Profile  string
	Store    *session.ProfileStore
	Services *service.Services
	Auth     *auth.Provider

	audit  *repository.AuditRepository
	logger zerolog.Logger
}

// Audit records a session event for this profile. Failures are logged and
// otherwise ignored.
func (s *Scope) Audit(action, details string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.CreateAuditLog(s.Profile, action, details); err != nil {
		s.logger.Warn().Err(err).Str("action", action).Msg("failed to write audit log")
	}
}

// Guard forces a logout for an expired session and records it
func (s *Scope) Guard(err error) bool {
	if !s.Auth.Guard(err) {
		return false
	}
	s.Audit(models.AuditActionSessionExpired, "backend answered 401")
	return true
}

// SessionDeps are the long-lived collaborators shared by every scope
type SessionDeps struct {
	CookieName string
	BaseURL    string
	Sessions   *repository.SessionRepository
	Audit      *repository.AuditRepository
	HTTPClient *http.Client
	Metrics    *obs.Metrics
	Logger     zerolog.Logger
}

// Session resolves the browser profile from its cookie (issuing one on
// first visit), builds the page-load Scope and initialises the auth
// provider once.
func Session(deps SessionDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := c.Cookie(deps.CookieName)
		if err != nil || uuid.Validate(profile) != nil {
			profile = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(deps.CookieName, profile, profileCookieMaxAge, "/", "", false, true)
		}

		logger := deps.Logger.With().Str("profile", profile).Logger()
		store := session.NewProfileStore(deps.Sessions, profile)

		opts := []apiclient.Option{apiclient.WithLogger(logger), apiclient.WithMetrics(deps.Metrics)}
		if deps.HTTPClient != nil {
			opts = append(opts, apiclient.WithHTTPClient(deps.HTTPClient))
		}
		svc := service.New(apiclient.New(deps.BaseURL, store, opts...))

		navigator := auth.NavigatorFunc(func(route string) {
			c.Redirect(http.StatusFound, route)
			c.Abort()
		})

		scope := &Scope{
			Profile:  profile,
			Store:    store,
			Services: svc,
			Auth:     auth.NewProvider(store, svc.Auth, navigator, auth.WithLogger(logger)),
			audit:    deps.Audit,
			logger:   logger,
		}
		scope.Auth.Init(c.Request.Context())

		c.Set(scopeKey, scope)
		c.Next()
	}
}

// GetScope returns the scope set by Session
func GetScope(c *gin.Context) *Scope {
	return c.MustGet(scopeKey).(*Scope)
}

// History lists this profile's recent session events
func (s *Scope) History(limit int) ([]models.AuditLog, error) {
	if s.audit == nil {
		return []models.AuditLog{}, nil
	}
	return s.audit.ListByProfile(s.Profile, limit)
}
