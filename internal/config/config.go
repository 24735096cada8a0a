package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	API      APIConfig      `mapstructure:"api"      validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                  int    `mapstructure:"port"                    validate:"required,gt=0,lt=65536"`
	LogLevel              string `mapstructure:"log_level"               validate:"required,oneof=debug info warn error fatal"`
	ReadTimeoutSeconds    int    `mapstructure:"read_timeout_seconds"    validate:"gte=0"`
	WriteTimeoutSeconds   int    `mapstructure:"write_timeout_seconds"   validate:"gte=0"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds" validate:"gte=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	// Driver selects the database/sql driver: "pgx" for PostgreSQL or
	// "sqlite" for SQLite.
	Driver                 string `mapstructure:"driver"                    validate:"required,oneof=pgx sqlite"`
	URL                    string `mapstructure:"url"                       validate:"required"`
	MaxOpenConns           int    `mapstructure:"max_open_conns"            validate:"gte=0"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns"            validate:"gte=0"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" validate:"gte=0"`
	// CaseInsensitiveSearch controls keyword matching in search endpoints.
	CaseInsensitiveSearch bool `mapstructure:"case_insensitive_search"`
}

// APIConfig contains request-handling defaults.
type APIConfig struct {
	DefaultPageSize int    `mapstructure:"default_page_size" validate:"required,gt=0,ltefield=MaxPageSize"`
	// MaxPageSize caps the size a client may request. It cannot be raised
	// above domain.MaxPageSize.
	MaxPageSize     int    `mapstructure:"max_page_size"     validate:"required,gt=0,lte=1000"`
	DefaultAuthor   string `mapstructure:"default_author"    validate:"required"`
}
