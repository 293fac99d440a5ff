package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"

	"github.com/synchub/attendance/internal/core/domain"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
	Timezone  string        `env:"TIMEZONE,  default=Local"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`

	Database DatabaseConfig
	Redis    RedisConfig
	Mongo    MongoConfig
	Sync     SyncConfig
	Scan     ScanConfig
}

type DatabaseConfig struct {
	Driver      string `env:"DB_DRIVER,       default=sqlite"`
	DSN         string `env:"DB_DSN,          default=attendance.db"`
	AutoMigrate bool   `env:"DB_AUTO_MIGRATE, default=true"`
}

type RedisConfig struct {
	// Empty Addr disables the scan lock.
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,      default=0"`
	LockTTL  time.Duration `env:"SCAN_LOCK_TTL, default=5s"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=synchub"`
}

type SyncConfig struct {
	Enabled bool `env:"SYNC_ENABLED, default=false"`
	Workers int  `env:"SYNC_WORKERS, default=4"`
}

type ScanConfig struct {
	IdentifierLength  int      `env:"IDENTIFIER_LENGTH,   default=7"`
	IdentifierNumeric bool     `env:"IDENTIFIER_NUMERIC,  default=true"`
	AutoProvision     bool     `env:"SCAN_AUTO_PROVISION, default=false"`
	AuthorizedRoles   []string `env:"AUTHORIZED_ROLES,    default=Executive Officer,Staff,admin"`
}

// Load reads an optional .env file, then the process environment.
func Load(ctx context.Context) (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith resolves configuration from an arbitrary lookuper (tests use a map).
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("config: JWT_SECRET is required")
	}
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.Scan.IdentifierLength < 0 {
		return fmt.Errorf("config: IDENTIFIER_LENGTH must not be negative")
	}
	if c.Sync.Workers < 1 {
		c.Sync.Workers = 1
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Location resolves TIMEZONE; it defines the calendar date of a scan.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// IdentifierPolicy builds the scan identifier format from config.
func (c *Config) IdentifierPolicy() domain.IdentifierPolicy {
	return domain.IdentifierPolicy{
		Length:  c.Scan.IdentifierLength,
		Numeric: c.Scan.IdentifierNumeric,
	}
}
