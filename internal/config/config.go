package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Runtime
	AppEnv    string
	Port      string
	APIPrefix string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Tokens
	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
	JWTExpiry   time.Duration
	BcryptCost  int

	// Login throttle
	LoginMaxAttempts int
	LoginWindow      time.Duration
	RateLimitStore   string
	RedisURL         string

	// General API limiter (requests per minute per IP)
	APIRateLimit int

	// Admin
	AdminEmails string
	AdminToken  string

	// Catalog
	InstallmentTimes int

	// Server
	CORSOrigins string

	// Logging
	LogRetentionDays int
	SentryDSN        string
}

// Load reads the process environment, seeding it from a .env file when one exists.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "error", err)
	}

	return &Config{
		AppEnv:    getEnv("APP_ENV", "production"),
		Port:      getEnv("PORT", "8080"),
		APIPrefix: getEnv("API_PREFIX", "/api"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "storefront"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:   getEnv("JWT_SECRET", ""),
		JWTIssuer:   getEnv("JWT_ISSUER", "storefront-api"),
		JWTAudience: getEnv("JWT_AUDIENCE", "storefront-web"),
		JWTExpiry:   parseDuration(getEnv("JWT_EXPIRY", "168h"), 7*24*time.Hour),
		BcryptCost:  getInt("BCRYPT_COST", 12),

		LoginMaxAttempts: getInt("LOGIN_MAX_ATTEMPTS", 5),
		LoginWindow:      parseDuration(getEnv("LOGIN_WINDOW", "15m"), 15*time.Minute),
		RateLimitStore:   getEnv("RATE_LIMIT_STORE", "memory"),
		RedisURL:         getEnv("REDIS_URL", "redis://localhost:6379/0"),

		APIRateLimit: getInt("API_RATE_LIMIT", 120),

		AdminEmails: getEnv("ADMIN_EMAILS", ""),
		AdminToken:  getEnv("ADMIN_TOKEN", ""),

		InstallmentTimes: getInt("INSTALLMENT_TIMES", 12),

		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		LogRetentionDays: getInt("LOG_RETENTION_DAYS", 30),
		SentryDSN:        getEnv("SENTRY_DSN", ""),
	}
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return n
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
