package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/synchub/attendance/pkg/logger"
)

const (
	defaultTimeout = 10 * time.Second
	slowQuery      = 200 * time.Millisecond
)

// Config captures the settings for the relational store.
type Config struct {
	Driver      string // "postgres" or "sqlite"
	DSN         string
	AutoMigrate bool
	Timeout     time.Duration
}

// Connect opens the gorm connection, verifies it with a ping and, when
// requested, migrates the schema.
func Connect(ctx context.Context, cfg Config, log zerolog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("sqlstore: unsupported driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.NewGormLogger(log, slowQuery),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("sqlstore open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlstore: get sql db: %w", err)
	}

	if cfg.Driver == "sqlite" {
		// SQLite allows a single writer; one connection keeps PRAGMAs and
		// in-memory databases consistent across queries.
		sqlDB.SetMaxOpenConns(1)
		_, _ = sqlDB.Exec("PRAGMA journal_mode = WAL;")
		_, _ = sqlDB.Exec("PRAGMA foreign_keys = ON;")
	} else {
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("sqlstore ping: %w", err)
	}

	if cfg.AutoMigrate {
		if err := Migrate(db); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	}
	return db, nil
}

// Migrate creates or updates every table and the open-row index.
func Migrate(db *gorm.DB) error {
	models := []interface{}{
		&officerModel{},
		&timeLogModel{},
		&groupModel{},
		&userModel{},
		&itemModel{},
		&profileModel{},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("sqlstore migrate %T: %w", m, err)
		}
	}
	// At most one open row per officer and day. Both dialects support
	// partial indexes; gorm tags cannot express the predicate.
	if err := db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_time_logs_open ON time_logs (officer_id, date) WHERE time_out IS NULL",
	).Error; err != nil {
		return fmt.Errorf("sqlstore: create open-row index: %w", err)
	}
	return nil
}

// Ping reports whether the database is reachable. Used by the readiness probe.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
