package config

import (
	"errors"
	"fmt"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// requirement is one setting that must be present
type requirement struct {
	Field string
	Value func(*Config) string
}

var (
	jwtSecret = requirement{"JWT_SECRET", func(c *Config) string { return c.JWTSecret }}
	dbPass    = requirement{"DB_PASSWORD", func(c *Config) string { return c.DBPassword }}
	redisConn = requirement{"REDIS_URL or REDIS_HOST", func(c *Config) string { return c.RedisURL + c.RedisHost }}

	// Environment-specific requirements
	requirements = map[Environment][]requirement{
		Development: {jwtSecret},
		Test:        {jwtSecret},
		CI:          {jwtSecret, dbPass},
		Production:  {jwtSecret, dbPass, redisConn},
	}
)

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs []error
	for _, r := range requirements[cfg.Env] {
		if r.Value(cfg) == "" {
			errs = append(errs, ValidationError{Field: r.Field, Message: "is required"})
		}
	}

	switch cfg.DBDriver {
	case "postgres":
		if cfg.DatabaseURL == "" {
			for _, f := range []struct{ name, value string }{
				{"DB_HOST", cfg.DBHost},
				{"DB_USER", cfg.DBUser},
				{"DB_NAME", cfg.DBName},
			} {
				if f.value == "" {
					errs = append(errs, ValidationError{Field: f.name, Message: "is required unless DATABASE_URL is set"})
				}
			}
		}
	case "sqlite":
		if cfg.Env == Production {
			errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: "sqlite is not allowed in production"})
		}
	default:
		errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unknown driver %q", cfg.DBDriver)})
	}

	if cfg.RateLimitRequests < 0 {
		errs = append(errs, ValidationError{Field: "RATE_LIMIT_REQUESTS", Message: "must not be negative"})
	}
	if cfg.DefaultCalories <= 0 {
		errs = append(errs, ValidationError{Field: "DEFAULT_CALORIES", Message: "must be positive"})
	}

	return errors.Join(errs...)
}
