// Package config loads the runtime configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	AppAddr     string `envconfig:"APP_ADDR" default:":8080"`
	APIBasePath string `envconfig:"API_BASE_PATH" default:"/api"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`

	JWTSecret            string        `envconfig:"JWT_SECRET" required:"true"`
	SessionTTL           time.Duration `envconfig:"SESSION_TTL" default:"720h"`
	PasswordResetTTL     time.Duration `envconfig:"PASSWORD_RESET_TTL" default:"1h"`
	EmailVerificationTTL time.Duration `envconfig:"EMAIL_VERIFICATION_TTL" default:"24h"`

	DBHost           string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort           string        `envconfig:"DB_PORT" default:"5432"`
	DBUser           string        `envconfig:"DB_USER" default:"devport"`
	DBPassword       string        `envconfig:"DB_PASSWORD"`
	DBName           string        `envconfig:"DB_NAME" default:"devport"`
	DBSSLMode        string        `envconfig:"DB_SSLMODE" default:"disable"`
	DBConnectTimeout time.Duration `envconfig:"DB_CONNECT_TIMEOUT" default:"60s"`
	RunMigrations    bool          `envconfig:"RUN_MIGRATIONS" default:"false"`

	RedisHost     string `envconfig:"REDIS_HOST"`
	RedisPort     string `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`

	SMTPHost     string `envconfig:"SMTP_HOST" default:"127.0.0.1"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"1025"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`
	SMTPFrom     string `envconfig:"SMTP_FROM" default:"no-reply@devport.local"`

	FrontendURL          string   `envconfig:"FRONTEND_URL" default:"http://localhost:3000"`
	CORSAllowedOrigins   []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ForgotPasswordSilent bool     `envconfig:"FORGOT_PASSWORD_SILENT" default:"false"`

	AuthRateLimit float64 `envconfig:"AUTH_RATE_LIMIT" default:"1"`
	AuthRateBurst int     `envconfig:"AUTH_RATE_BURST" default:"10"`

	PortfolioCacheTTL       time.Duration `envconfig:"PORTFOLIO_CACHE_TTL" default:"10m"`
	ResetTokenPurgeInterval time.Duration `envconfig:"RESET_TOKEN_PURGE_INTERVAL" default:"1h"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	} else if err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("JWT_SECRET must be provided")
	}
	if c.SessionTTL <= 0 || c.PasswordResetTTL <= 0 || c.EmailVerificationTTL <= 0 {
		return errors.New("token TTLs must be positive")
	}
	if !strings.HasPrefix(c.APIBasePath, "/") {
		return fmt.Errorf("API_BASE_PATH must start with '/': %q", c.APIBasePath)
	}
	if c.AuthRateLimit <= 0 || c.AuthRateBurst <= 0 {
		return errors.New("AUTH_RATE_LIMIT and AUTH_RATE_BURST must be positive")
	}
	return nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

// RedisEnabled reports whether a Redis host was configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

// RedisAddr returns host:port for the Redis client.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}
