package config

import (
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// Environment is the runtime environment selecting the config loader
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment reads CI and ENV. CI=true wins over ENV.
func GetEnvironment() Environment {
	if strings.EqualFold(os.Getenv("CI"), "true") {
		return CI
	}
	return ParseEnvironment(os.Getenv("ENV"))
}

// ParseEnvironment maps ENV values (and the usual short forms) to an
// Environment, defaulting to Development.
func ParseEnvironment(s string) Environment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "production", "prod":
		return Production
	case "test", "testing":
		return Test
	case "ci":
		return CI
	default:
		return Development
	}
}

// LogMode is the logger mode used when LOG_MODE is unset.
func (e Environment) LogMode() string {
	if e == Production {
		return "production"
	}
	return "development"
}

// GinMode is the gin mode for the environment.
func (e Environment) GinMode() string {
	switch e {
	case Production:
		return gin.ReleaseMode
	case Test, CI:
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

func IsDevelopment() bool {
	return GetEnvironment() == Development
}

func IsProduction() bool {
	return GetEnvironment() == Production
}
