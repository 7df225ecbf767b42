package config

import "time"

const (
	DatabaseTypeSQLite   = "sqlite"
	DatabaseTypePostgres = "postgres"

	// DefaultDatabasePath is where the daemon keeps its game history when
	// nothing else is configured
	DefaultDatabasePath = "dronewatch.db"

	// MemoryDatabasePath keeps the journal for the lifetime of the process only
	MemoryDatabasePath = ":memory:"
)

// DatabaseConfig selects where finished games, round results and the
// transaction journal are stored. SQLite is the default; Postgres is for
// shared deployments.
type DatabaseConfig struct {
	Type string `mapstructure:"type" validate:"required,oneof=postgres sqlite"`

	// URL takes precedence over the discrete Postgres fields (DATABASE_URL)
	URL string `mapstructure:"url"`

	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode" validate:"omitempty,oneof=disable require verify-ca verify-full"`

	// Path is the SQLite file, or ":memory:"
	Path string `mapstructure:"path"`

	Pool PoolConfig `mapstructure:"pool"`
}

// PoolConfig bounds the Postgres connection pool
type PoolConfig struct {
	MaxOpen     int           `mapstructure:"max_open" validate:"min=1"`
	MaxIdle     int           `mapstructure:"max_idle" validate:"min=1"`
	MaxLifetime time.Duration `mapstructure:"max_lifetime"`
}

func (d DatabaseConfig) IsSQLite() bool {
	return d.Type == DatabaseTypeSQLite
}

// SQLitePath returns the file to open, falling back to an in-memory journal
func (d DatabaseConfig) SQLitePath() string {
	if d.Path == "" {
		return MemoryDatabasePath
	}
	return d.Path
}
