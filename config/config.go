package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Env Environment

	// Server configuration
	ServerPort   string
	ServerHost   string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Database configuration
	DBDriver    string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	DatabaseURL string
	SQLitePath  string

	MigrationsDir string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	CORSAllowedOrigins []string

	// Generation rate limit per practitioner
	RateLimitRequests int
	RateLimitWindow   time.Duration

	DraftTTL        time.Duration
	DefaultCalories int

	// Plan archive; disabled when S3Bucket is empty
	S3Bucket  string
	AWSRegion string

	LogMode string
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{Env: env}

	var err error
	switch env {
	case CI:
		err = loadCIConfig(cfg)
	case Development, Test:
		err = loadDevConfig(cfg)
	case Production:
		err = loadProdConfig(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s configuration: %w", env, err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadCIConfig reads environment variables only
func loadCIConfig(cfg *Config) error {
	return fill(cfg, os.Getenv)
}

// loadDevConfig reads .env, then environment variables, then Docker secrets
func loadDevConfig(cfg *Config) error {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read %s: %w", envFile, err)
	}
	return fill(cfg, func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return readSecret(strings.ToLower(key))
	})
}

// loadProdConfig prefers Docker secrets over environment variables
func loadProdConfig(cfg *Config) error {
	return fill(cfg, func(key string) string {
		if v := readSecret(strings.ToLower(key)); v != "" {
			return v
		}
		return os.Getenv(key)
	})
}

func fill(cfg *Config, get func(string) string) error {
	p := parser{get: get}

	cfg.ServerPort = p.str("SERVER_PORT", "8080")
	cfg.ServerHost = p.str("SERVER_HOST", "0.0.0.0")
	cfg.ReadTimeout = p.duration("SERVER_READ_TIMEOUT", 15*time.Second)
	cfg.WriteTimeout = p.duration("SERVER_WRITE_TIMEOUT", 30*time.Second)

	cfg.DBDriver = strings.ToLower(p.str("DB_DRIVER", "postgres"))
	cfg.DBHost = p.str("DB_HOST", "")
	cfg.DBPort = p.str("DB_PORT", "5432")
	cfg.DBUser = p.str("DB_USER", "")
	cfg.DBPassword = p.str("DB_PASSWORD", "")
	cfg.DBName = p.str("DB_NAME", "")
	cfg.DBSSLMode = p.str("DB_SSL_MODE", "disable")
	cfg.DatabaseURL = p.str("DATABASE_URL", "")
	cfg.SQLitePath = p.str("SQLITE_PATH", "dietplans.db")
	cfg.MigrationsDir = p.str("MIGRATIONS_DIR", "migrations")

	cfg.RedisHost = p.str("REDIS_HOST", "")
	cfg.RedisPort = p.str("REDIS_PORT", "6379")
	cfg.RedisPassword = p.str("REDIS_PASSWORD", "")
	cfg.RedisDB = p.integer("REDIS_DB", 0)
	cfg.RedisURL = p.str("REDIS_URL", "")

	cfg.JWTSecret = p.str("JWT_SECRET", "")
	cfg.CORSAllowedOrigins = p.list("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"})

	cfg.RateLimitRequests = p.integer("RATE_LIMIT_REQUESTS", 10)
	cfg.RateLimitWindow = p.duration("RATE_LIMIT_WINDOW", time.Minute)
	cfg.DraftTTL = p.duration("DRAFT_TTL", 24*time.Hour)
	cfg.DefaultCalories = p.integer("DEFAULT_CALORIES", 2000)

	cfg.S3Bucket = p.str("S3_BUCKET_NAME", "")
	cfg.AWSRegion = p.str("AWS_REGION", "us-east-1")

	cfg.LogMode = p.str("LOG_MODE", cfg.Env.LogMode())

	return errors.Join(p.errs...)
}

type parser struct {
	get  func(string) string
	errs []error
}

func (p *parser) str(key, def string) string {
	if v := strings.TrimSpace(p.get(key)); v != "" {
		return v
	}
	return def
}

func (p *parser) integer(key string, def int) int {
	raw := p.str(key, "")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		p.errs = append(p.errs, ValidationError{Field: key, Message: "must be an integer"})
		return def
	}
	return n
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	raw := p.str(key, "")
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		p.errs = append(p.errs, ValidationError{Field: key, Message: "must be a duration such as 30s or 5m"})
		return def
	}
	return d
}

func (p *parser) list(key string, def []string) []string {
	raw := p.str(key, "")
	if raw == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

// PostgresDSN builds the lib/pq connection string
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// Addr is the HTTP listen address
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// RedisEnabled reports whether any Redis connection info is set
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}
