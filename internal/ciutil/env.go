package ciutil

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/phrazzld/memoboard-api/internal/redact"
)

// Environment variables read by the test tooling.
const (
	// EnvDatabaseURL is the conventional, unprefixed database URL.
	EnvDatabaseURL = "DATABASE_URL"

	// EnvTestDBURL names a database reserved for tests.
	EnvTestDBURL = "MEMOBOARD_TEST_DB_URL"

	// EnvRequirePostgres makes PostgreSQL integration tests fail instead
	// of skip when no database URL is configured. CI jobs that provision
	// a server set it.
	EnvRequirePostgres = "MEMOBOARD_REQUIRE_POSTGRES"
)

// GetEnvWithFallbacks returns the value of the first non-empty environment
// variable in envVars, or defaultValue. Using anything but the first name
// is logged at WARN when logger is not nil.
func GetEnvWithFallbacks(envVars []string, defaultValue string, logger *slog.Logger) string {
	for i, envVar := range envVars {
		if val := os.Getenv(envVar); val != "" {
			if i > 0 && logger != nil {
				logger.Warn("using fallback environment variable",
					"used_var", envVar,
					"preferred_var", envVars[0],
					"value", MaskSensitiveValue(val))
			}
			return val
		}
	}
	return defaultValue
}

// TestDatabaseURL returns the PostgreSQL URL for integration tests, or ""
// when none is configured.
func TestDatabaseURL(logger *slog.Logger) string {
	return GetEnvWithFallbacks([]string{EnvDatabaseURL, EnvTestDBURL}, "", logger)
}

// RequirePostgres reports whether EnvRequirePostgres is set to a true
// value. Unparseable values count as false.
func RequirePostgres() bool {
	v, err := strconv.ParseBool(os.Getenv(EnvRequirePostgres))
	return err == nil && v
}

// MaskSensitiveValue hides credentials in values that are about to be
// logged, such as database URLs.
func MaskSensitiveValue(value string) string {
	return redact.String(value)
}
