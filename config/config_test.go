package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every loader input at empty temp locations.
func isolate(t *testing.T, env string) string {
	dir := t.TempDir()
	t.Setenv("CI", "")
	t.Setenv("ENV", env)
	t.Setenv("SECRETS_DIR", dir)
	t.Setenv("ENV_FILE", filepath.Join(dir, "missing.env"))
	for _, key := range []string{
		"JWT_SECRET", "DB_DRIVER", "DB_HOST", "DB_USER", "DB_NAME", "DB_PASSWORD", "DATABASE_URL",
		"REDIS_URL", "REDIS_HOST", "RATE_LIMIT_WINDOW", "RATE_LIMIT_REQUESTS", "CORS_ALLOWED_ORIGINS",
		"S3_BUCKET_NAME", "LOG_MODE", "DB_PORT", "DB_SSL_MODE", "SERVER_PORT", "SERVER_HOST", "DRAFT_TTL",
	} {
		t.Setenv(key, "")
	}
	return dir
}

func TestLoadConfig(t *testing.T) {
	isolate(t, "test")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_NAME", "ayurveda")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Test, cfg.Env)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, 30*time.Second, cfg.RateLimitWindow)
	assert.Equal(t, 10, cfg.RateLimitRequests)
	assert.Equal(t, 24*time.Hour, cfg.DraftTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "development", cfg.LogMode)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, "host=localhost port=5432 user=postgres password= dbname=ayurveda sslmode=disable", cfg.PostgresDSN())
}

func TestLoadConfigReadsSecretsAndEnvFile(t *testing.T) {
	dir := isolate(t, "development")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jwt_secret"), []byte("from-secret\n"), 0o600))

	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("DEFAULT_CALORIES=1800\nSQLITE_PATH=plans-test.db\n"), 0o600))
	t.Setenv("ENV_FILE", envFile)
	t.Setenv("DB_DRIVER", "sqlite")
	t.Cleanup(func() {
		os.Unsetenv("DEFAULT_CALORIES")
		os.Unsetenv("SQLITE_PATH")
	})

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-secret", cfg.JWTSecret)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 1800, cfg.DefaultCalories)
	assert.Equal(t, "plans-test.db", cfg.SQLitePath)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	isolate(t, "test")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("JWT_SECRET", "x")
	t.Setenv("RATE_LIMIT_WINDOW", "soon")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RATE_LIMIT_WINDOW")
}

func TestValidateConfig(t *testing.T) {
	cfg := &Config{Env: Production, DBDriver: "postgres", DefaultCalories: 2000}

	err := ValidateConfig(cfg)
	require.Error(t, err)
	for _, field := range []string{"JWT_SECRET", "DB_PASSWORD", "REDIS_URL or REDIS_HOST", "DB_HOST", "DB_USER", "DB_NAME"} {
		assert.Contains(t, err.Error(), field)
	}

	var verr ValidationError
	assert.ErrorAs(t, err, &verr)

	cfg = &Config{Env: Production, DBDriver: "postgres", DatabaseURL: "postgres://x", JWTSecret: "s", DBPassword: "p", RedisURL: "redis://r", DefaultCalories: 2000}
	assert.NoError(t, ValidateConfig(cfg))

	cfg.DBDriver = "sqlite"
	assert.ErrorContains(t, ValidateConfig(cfg), "not allowed in production")

	cfg.DBDriver = "mysql"
	assert.ErrorContains(t, ValidateConfig(cfg), "unknown driver")
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())

	t.Setenv("CI", "")
	t.Setenv("ENV", "production")
	assert.Equal(t, Production, GetEnvironment())
	assert.True(t, IsProduction())

	t.Setenv("ENV", "")
	assert.Equal(t, Development, GetEnvironment())
}

func TestParseEnvironment(t *testing.T) {
	tests := map[string]Environment{
		"prod":        Production,
		" Production": Production,
		"testing":     Test,
		"CI":          CI,
		"staging":     Development,
		"":            Development,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseEnvironment(in), in)
	}
}

func TestEnvironmentModes(t *testing.T) {
	assert.Equal(t, "production", Production.LogMode())
	assert.Equal(t, "development", CI.LogMode())
	assert.Equal(t, gin.ReleaseMode, Production.GinMode())
	assert.Equal(t, gin.TestMode, Test.GinMode())
	assert.Equal(t, gin.DebugMode, Development.GinMode())
}

func TestNewS3ConfigDisabledWithoutBucket(t *testing.T) {
	s3cfg, err := NewS3Config(context.Background(), &Config{})
	assert.NoError(t, err)
	assert.Nil(t, s3cfg)
}
