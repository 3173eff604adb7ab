// Package auth holds the signed-in user of one session and the forced
// logout that follows an expired session.
package auth

import (
	"context"
	"errors"
	"sync"

	"hospital-inventory-dashboard/internal/apiclient"
	"hospital-inventory-dashboard/internal/models"
	"hospital-inventory-dashboard/internal/session"

	"github.com/rs/zerolog"
)

// LoginRoute is where every forced or explicit logout lands
const LoginRoute = "/login"

// Authenticator is the part of the backend facade the provider needs
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*models.Tokens, error)
	Profile(ctx context.Context) (*models.User, error)
}

// Navigator performs a full navigation to route, discarding in-memory state
type Navigator interface {
	Navigate(route string)
}

type NavigatorFunc func(route string)

func (f NavigatorFunc) Navigate(route string) { f(route) }

// Provider is the per-session auth context. It starts in the loading state
// with no user; Init resolves it once.
type Provider struct {
	store     session.Store
	auth      Authenticator
	navigator Navigator
	logger    zerolog.Logger

	initOnce sync.Once

	mu      sync.RWMutex
	user    *models.User
	loading bool
}

type Option func(*Provider)

func WithLogger(logger zerolog.Logger) Option {
	return func(p *Provider) { p.logger = logger }
}

func NewProvider(store session.Store, authenticator Authenticator, navigator Navigator, opts ...Option) *Provider {
	p := &Provider{
		store:     store,
		auth:      authenticator,
		navigator: navigator,
		logger:    zerolog.Nop(),
		loading:   true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Init runs RefreshUser exactly once for the provider's lifetime
func (p *Provider) Init(ctx context.Context) {
	p.initOnce.Do(func() {
		p.RefreshUser(ctx)
	})
}

// RefreshUser resolves the current user from the stored access token.
// Without a token the profile endpoint is not called. A failed profile
// call clears the stored session.
func (p *Provider) RefreshUser(ctx context.Context) {
	defer p.setLoading(false)

	token, err := p.store.AccessToken()
	if err != nil {
		p.logger.Error().Err(err).Msg("failed to read access token")
		p.setUser(nil)
		return
	}
	if token == "" {
		p.setUser(nil)
		return
	}

	user, err := p.auth.Profile(ctx)
	if err != nil {
		p.logger.Warn().Err(err).Msg("failed to fetch user profile")
		if err := p.store.Clear(); err != nil {
			p.logger.Error().Err(err).Msg("failed to clear session")
		}
		p.setUser(nil)
		return
	}
	p.setUser(user)
}

// Login signs in through the backend and then loads the user. Errors from
// the backend are returned unchanged and leave the provider untouched.
func (p *Provider) Login(ctx context.Context, email, password string) error {
	if _, err := p.auth.Login(ctx, email, password); err != nil {
		return err
	}
	p.RefreshUser(ctx)
	return nil
}

// Logout clears the stored session and the user, then navigates to the
// login route.
func (p *Provider) Logout() {
	if err := p.store.Clear(); err != nil {
		p.logger.Error().Err(err).Msg("failed to clear session")
	}
	p.setUser(nil)
	p.navigator.Navigate(LoginRoute)
}

// Guard turns an unauthenticated error into a forced logout. It reports
// whether it handled err; other errors are left for the caller.
func (p *Provider) Guard(err error) bool {
	if err == nil || !errors.Is(err, apiclient.ErrUnauthenticated) {
		return false
	}
	p.logger.Info().Msg("session expired, redirecting to login")
	p.Logout()
	return true
}

func (p *Provider) User() *models.User {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.user
}

func (p *Provider) IsAuthenticated() bool {
	return p.User() != nil
}

func (p *Provider) IsLoading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loading
}

func (p *Provider) setUser(user *models.User) {
	p.mu.Lock()
	p.user = user
	p.mu.Unlock()
}

func (p *Provider) setLoading(loading bool) {
	p.mu.Lock()
	p.loading = loading
	p.mu.Unlock()
}
