// Command server runs the attendance HTTP service.
//
//	@title						SyncHub Attendance API
//	@version					1.0
//	@description				RFID attendance scanning, time logs and reports.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/synchub/attendance/internal/api"
	"github.com/synchub/attendance/internal/api/handler"
	"github.com/synchub/attendance/internal/api/metrics"
	"github.com/synchub/attendance/internal/api/view"
	"github.com/synchub/attendance/internal/core/ports"
	"github.com/synchub/attendance/internal/core/service"
	"github.com/synchub/attendance/internal/infrastructure/config"
	"github.com/synchub/attendance/internal/infrastructure/db/mongo"
	"github.com/synchub/attendance/internal/infrastructure/db/redis"
	"github.com/synchub/attendance/internal/infrastructure/db/sqlstore"
	"github.com/synchub/attendance/internal/infrastructure/queue"
	"github.com/synchub/attendance/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{Pretty: true})
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "attendance",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	// --- Primary store ---
	db, err := sqlstore.Connect(ctx, sqlstore.Config{
		Driver:      cfg.Database.Driver,
		DSN:         cfg.Database.DSN,
		AutoMigrate: cfg.Database.AutoMigrate,
	}, logger.Component(log, "db"))
	if err != nil {
		return err
	}
	defer closeDB(db, log)
	log.Info().Str("driver", cfg.Database.Driver).Msg("database connected")

	officers := sqlstore.NewIdentityRepository(db)
	ledger := sqlstore.NewLedgerRepository(db)
	users := sqlstore.NewUserRepository(db)

	readiness := []handler.DependencyCheck{{
		Name: "database",
		Ping: func(ctx context.Context) error { return sqlstore.Ping(ctx, db) },
	}}

	scanOpts := []service.ScanOption{service.WithLocation(loc)}

	// --- Scan lock (optional) ---
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()
		scanOpts = append(scanOpts, service.WithLocker(redis.NewScanLock(rdb, cfg.Redis.LockTTL, logger.Component(log, "scanlock"))))
		readiness = append(readiness, redisCheck(rdb))
		log.Info().Str("addr", cfg.Redis.Addr).Msg("scan lock enabled")
	} else {
		log.Warn().Msg("REDIS_ADDR not set, concurrent scans rely on the database constraint only")
	}

	// --- Ledger sync (optional) ---
	var dispatcher *queue.Dispatcher
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	if cfg.Sync.Enabled {
		client, mdb, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() {
			if err := mongo.Disconnect(client, 5*time.Second); err != nil {
				log.Error().Err(err).Msg("mongo disconnect")
			}
		}()

		sink := mongo.NewSyncRepository(mdb)
		if err := sink.EnsureIndexes(ctx); err != nil {
			return err
		}

		dispatcher = queue.NewDispatcher(cfg.Sync.Workers, sink, logger.Component(log, "sync"),
			queue.WithOutcomeHook(metrics.ObserveSyncOutcome))
		metrics.RegisterSyncQueueDepth(dispatcher.Pending)
		dispatcher.Start(workerCtx)

		scanOpts = append(scanOpts, service.WithNotifier(dispatcher))
		readiness = append(readiness, mongoCheck(client))
		log.Info().Int("workers", cfg.Sync.Workers).Msg("ledger sync enabled")
	}

	// --- Services ---
	var members ports.MemberRegistry
	if cfg.Scan.AutoProvision {
		members = users
	}
	policy := cfg.IdentifierPolicy()
	resolver := service.NewIdentityResolver(officers, members, log)

	renderer, err := view.New(loc)
	if err != nil {
		return err
	}

	e := api.NewRouter(api.Dependencies{
		Log:          log,
		JWTSecret:    cfg.JWTSecret,
		TokenTTL:     cfg.TokenTTL,
		SecureCookie: cfg.IsProduction(),
		Policy:       service.NewRolePolicy(cfg.Scan.AuthorizedRoles...),
		Renderer:     renderer,
		Scan:         service.NewScanService(resolver, ledger, policy, logger.Component(log, "scan"), scanOpts...),
		Reports:      service.NewReportService(ledger, log),
		Officers:     service.NewIdentityService(officers, policy, log),
		Auth:         service.NewAuthService(users, cfg.JWTSecret, cfg.TokenTTL),
		Inventory:    service.NewInventoryService(sqlstore.NewItemRepository(db), log),
		Profiles:     service.NewProfileService(sqlstore.NewProfileRepository(db)),
		Readiness:    readiness,
	})

	// --- Serve ---
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}

	if dispatcher != nil {
		// No scan can enqueue anymore; give the workers a moment to drain.
		drainQueue(shutdownCtx, dispatcher)
		stopWorkers()
		dispatcher.Wait()
	}

	log.Info().Msg("server stopped")
	return nil
}

func drainQueue(ctx context.Context, d *queue.Dispatcher) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for d.Pending() > 0 {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func redisCheck(rdb *goredis.Client) handler.DependencyCheck {
	return handler.DependencyCheck{
		Name:     "redis",
		Optional: true,
		Ping:     func(ctx context.Context) error { return redis.Ping(ctx, rdb, time.Second) },
	}
}

func mongoCheck(client *mongodriver.Client) handler.DependencyCheck {
	return handler.DependencyCheck{
		Name:     "mongodb",
		Optional: true,
		Ping:     func(ctx context.Context) error { return mongo.Ping(ctx, client) },
	}
}

func closeDB(db *gorm.DB, log zerolog.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Error().Err(err).Msg("database close")
	}
}
