package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	API       APIConfig
	Session   SessionConfig
	Server    ServerConfig
	CORS      CORSConfig
	Log       LogConfig
	RateLimit RateLimitConfig
	Audit     AuditConfig
}

// APIConfig points at the REST backend every request is issued against
type APIConfig struct {
	BaseURL string
}

// SessionConfig selects where access/refresh tokens are persisted
type SessionConfig struct {
	Driver     string
	SQLitePath string
	Host       string
	Port       string
	User       string
	Password   string
	Database   string
}

type ServerConfig struct {
	Port          string
	GinMode       string
	ProfileCookie string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// RateLimitConfig throttles login and registration attempts per client IP
type RateLimitConfig struct {
	LoginPerSecond float64
	LoginBurst     int
}

// AuditConfig controls how long session events are kept
type AuditConfig struct {
	Retention     time.Duration
	PruneInterval time.Duration
}

func LoadConfig() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	config := &Config{
		API: APIConfig{
			BaseURL: strings.TrimRight(getEnv("API_BASE_URL", "http://127.0.0.1:8000"), "/"),
		},
		Session: SessionConfig{
			Driver:     getEnv("SESSION_DRIVER", "sqlite"),
			SQLitePath: getEnv("SESSION_SQLITE_PATH", defaultSQLitePath()),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "3306"),
			User:       getEnv("DB_USER", "root"),
			Password:   getEnv("DB_PASSWORD", ""),
			Database:   getEnv("DB_NAME", "hospital_dashboard"),
		},
		Server: ServerConfig{
			Port:          getEnv("PORT", "8080"),
			GinMode:       getEnv("GIN_MODE", "debug"),
			ProfileCookie: getEnv("PROFILE_COOKIE", "dashboard_profile"),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
		RateLimit: RateLimitConfig{
			LoginPerSecond: parseFloat(getEnv("LOGIN_RATE_PER_SECOND", "1"), 1),
			LoginBurst:     parseInt(getEnv("LOGIN_RATE_BURST", "5"), 5),
		},
		Audit: AuditConfig{
			Retention:     time.Duration(parseInt(getEnv("AUDIT_RETENTION_DAYS", "90"), 90)) * 24 * time.Hour,
			PruneInterval: parseDuration(getEnv("AUDIT_PRUNE_INTERVAL", "1h"), time.Hour),
		},
	}

	return config
}

// Validate rejects configurations the session store cannot be opened with
func (c *Config) Validate() error {
	switch c.Session.Driver {
	case "sqlite":
		if c.Session.SQLitePath == "" {
			return fmt.Errorf("SESSION_SQLITE_PATH is required when SESSION_DRIVER is \"sqlite\"")
		}
	case "mysql":
		if c.Session.Host == "" || c.Session.Database == "" {
			return fmt.Errorf("DB_HOST and DB_NAME are required when SESSION_DRIVER is \"mysql\"")
		}
	default:
		return fmt.Errorf("SESSION_DRIVER must be \"sqlite\" or \"mysql\", got %q", c.Session.Driver)
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseFloat(s string, fallback float64) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		fmt.Printf("Warning: Invalid number '%s', using default\n", s)
		return fallback
	}
	return v
}

func parseInt(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		fmt.Printf("Warning: Invalid integer '%s', using default\n", s)
		return fallback
	}
	return v
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		fmt.Printf("Warning: Invalid duration '%s', using default\n", s)
		return fallback
	}
	return d
}

func parseOrigins(s string) []string {
	origins := []string{}
	for _, origin := range strings.Split(s, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// defaultSQLitePath keeps the session database in the user's config directory,
// so tokens survive restarts but stay on this machine.
func defaultSQLitePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "hospital-dashboard-session.db"
	}
	return filepath.Join(dir, "hospital-dashboard", "session.db")
}
