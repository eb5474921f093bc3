package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

type Config struct {
	Database    DatabaseConfig
	Session     SessionConfig
	App         AppConfig
	Discord     DiscordConfig
	CSRF        CSRFConfig
	Performance PerformanceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// SessionConfig holds the signed session cookie configuration
type SessionConfig struct {
	Secret     string
	Expiration time.Duration
	CookieName string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port               int
	Env                string
	LogLevel           string
	FrontendURL        string
	Timezone           string
	CORSAllowedOrigins []string
}

type DiscordConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
	BotTokenHash string
}

type CSRFConfig struct {
	AuthKey string
}

type PerformanceConfig struct {
	RefreshInterval time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	config := &Config{}

	// Database configuration
	if _, err := strconv.Atoi(getEnv("DB_PORT", "5432")); err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	config.Database = DatabaseFromEnv()

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	frontendURL := strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/")
	origins := getEnvSlice("CORS_ALLOWED_ORIGINS")
	if len(origins) == 0 {
		origins = []string{frontendURL}
	}

	config.App = AppConfig{
		Port:               appPort,
		Env:                getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		FrontendURL:        frontendURL,
		Timezone:           getEnv("APP_TIMEZONE", "Asia/Jakarta"),
		CORSAllowedOrigins: origins,
	}

	// Session configuration
	sessionExpiration, err := getEnvDuration("SESSION_EXPIRATION", "168h")
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_EXPIRATION: %w", err)
	}

	config.Session = SessionConfig{
		Secret:     getEnv("SESSION_SECRET", ""),
		Expiration: sessionExpiration,
		CookieName: getEnv("SESSION_COOKIE_NAME", "user_session"),
	}

	// Discord OAuth2 + bot configuration
	scopes := getEnvSlice("DISCORD_SCOPES")
	if len(scopes) == 0 {
		scopes = []string{"identify", "guilds"}
	}
	config.Discord = DiscordConfig{
		ClientID:     getEnv("DISCORD_CLIENT_ID", ""),
		ClientSecret: getEnv("DISCORD_CLIENT_SECRET", ""),
		RedirectURL:  getEnv("DISCORD_REDIRECT_URI", ""),
		Scopes:       scopes,
		BotTokenHash: getEnv("DISCORD_BOT_TOKEN_HASH", ""),
	}

	config.CSRF = CSRFConfig{
		AuthKey: getEnv("CSRF_AUTH_KEY", ""),
	}

	refreshInterval, err := getEnvDuration("PERFORMANCE_REFRESH_INTERVAL", "1h")
	if err != nil {
		return nil, fmt.Errorf("invalid PERFORMANCE_REFRESH_INTERVAL: %w", err)
	}
	config.Performance = PerformanceConfig{
		RefreshInterval: refreshInterval,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// DatabaseFromEnv reads the DB_* settings only. An unparsable DB_PORT falls
// back to 5432.
func DatabaseFromEnv() DatabaseConfig {
	port, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		port = 5432
	}
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     port,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "ems_attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Session.Secret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	if c.Session.Expiration <= 0 {
		return fmt.Errorf("SESSION_EXPIRATION must be positive")
	}
	if c.Discord.ClientID == "" {
		return fmt.Errorf("DISCORD_CLIENT_ID is required")
	}
	if c.Discord.ClientSecret == "" {
		return fmt.Errorf("DISCORD_CLIENT_SECRET is required")
	}
	if c.Discord.RedirectURL == "" {
		return fmt.Errorf("DISCORD_REDIRECT_URI is required")
	}
	if c.Discord.BotTokenHash == "" {
		return fmt.Errorf("DISCORD_BOT_TOKEN_HASH is required")
	}
	if len(c.CSRF.AuthKey) != 32 {
		return fmt.Errorf("CSRF_AUTH_KEY must be exactly 32 bytes")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	return nil
}

// IsProduction reports whether cookies must be marked Secure.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// Location returns the configured timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		slog.Warn("Falling back to UTC", "timezone", c.App.Timezone, "error", err)
		return time.UTC
	}
	return loc
}

// SlogLevel maps LOG_LEVEL to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

func getEnvDuration(key, fallback string) (time.Duration, error) {
	return time.ParseDuration(getEnv(key, fallback))
}
