// Package cli implements medictl, the command-line client for the
// inventory backend.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/user"

	"hospital-inventory-dashboard/internal/apiclient"
	"hospital-inventory-dashboard/internal/auth"
	"hospital-inventory-dashboard/internal/config"
	"hospital-inventory-dashboard/internal/database"
	"hospital-inventory-dashboard/internal/logging"
	"hospital-inventory-dashboard/internal/models"
	"hospital-inventory-dashboard/internal/repository"
	"hospital-inventory-dashboard/internal/service"
	"hospital-inventory-dashboard/internal/session"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// app is built once per invocation from config and persistent flags
type app struct {
	out    io.Writer
	errOut io.Writer

	profile  string
	db       *gorm.DB
	store    *session.ProfileStore
	audit    *repository.AuditRepository
	services *service.Services
	auth     *auth.Provider
	logger   zerolog.Logger
}

type globalFlags struct {
	profile  string
	apiURL   string
	dbPath   string
	logLevel string
}

func defaultProfile() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "default"
}

func newApp(flags *globalFlags, out, errOut io.Writer) (*app, error) {
	cfg := config.LoadConfig()
	if flags.apiURL != "" {
		cfg.API.BaseURL = flags.apiURL
	}
	if flags.dbPath != "" {
		cfg.Session.Driver = "sqlite"
		cfg.Session.SQLitePath = flags.dbPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := logging.NewWithWriter(errOut, flags.logLevel, "console")
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("open session database: %w", err)
	}

	store := session.NewProfileStore(repository.NewSessionRepo(db), flags.profile)
	svc := service.New(apiclient.New(cfg.API.BaseURL, store, apiclient.WithLogger(logger)))
	navigator := auth.NavigatorFunc(func(string) {
		fmt.Fprintln(errOut, "Session ended. Run `medictl login` to sign in again.")
	})

	return &app{
		out:      out,
		errOut:   errOut,
		profile:  flags.profile,
		db:       db,
		store:    store,
		audit:    repository.NewAuditRepo(db),
		services: svc,
		auth:     auth.NewProvider(store, svc.Auth, navigator, auth.WithLogger(logger)),
		logger:   logger,
	}, nil
}

func (a *app) close() {
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// requireUser resolves the stored session and fails when nobody is signed in
func (a *app) requireUser(ctx context.Context) error {
	a.auth.Init(ctx)
	if !a.auth.IsAuthenticated() {
		return fmt.Errorf("not logged in; run `medictl login`")
	}
	return nil
}

// check routes an expired session through the forced logout
func (a *app) check(err error) error {
	if err == nil {
		return nil
	}
	if a.auth.Guard(err) {
		a.record(models.AuditActionSessionExpired, "backend answered 401")
	}
	return err
}

func (a *app) record(action, details string) {
	if err := a.audit.CreateAuditLog(a.profile, action, details); err != nil {
		a.logger.Warn().Err(err).Msg("failed to write audit log")
	}
}

func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
