package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"hospital-inventory-dashboard/internal/config"
	"hospital-inventory-dashboard/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the session database selected by SESSION_DRIVER and
// migrates the token and audit tables.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Session.Driver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.Session.User,
			cfg.Session.Password,
			cfg.Session.Host,
			cfg.Session.Port,
			cfg.Session.Database,
		)
		dialector = mysql.Open(dsn)
	case "sqlite":
		if dir := filepath.Dir(cfg.Session.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o700); err != nil {
				return nil, fmt.Errorf("create session directory: %w", err)
			}
		}
		dialector = sqlite.Open(cfg.Session.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported session driver %q", cfg.Session.Driver)
	}

	// Configure GORM logger
	gormLogger := logger.Default.LogMode(logger.Warn)
	if cfg.Server.GinMode == "release" {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	return Open(dialector, &gorm.Config{Logger: gormLogger})
}

// Open connects with an explicit dialector; tests use it with in-memory SQLite.
func Open(dialector gorm.Dialector, gormCfg *gorm.Config) (*gorm.DB, error) {
	if gormCfg == nil {
		gormCfg = &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	}
	gormCfg.NowFunc = func() time.Time {
		return time.Now().UTC()
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping session database: %w", err)
	}

	if err := db.AutoMigrate(&models.SessionToken{}, &models.AuditLog{}); err != nil {
		return nil, fmt.Errorf("failed to migrate session database: %w", err)
	}

	return db, nil
}
