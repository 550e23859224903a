// Package main реализует точку входа сервиса заметок.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	httpadapter "notebox/internal/notebox/adapters/http"
	"notebox/internal/notebox/adapters/http/auth"
	"notebox/internal/notebox/adapters/revocation"
	"notebox/internal/notebox/adapters/services"
	"notebox/internal/notebox/adapters/storage"
	"notebox/internal/notebox/app"
	"notebox/internal/notebox/config"
	"notebox/internal/notebox/ports/repositories"
	"notebox/pkg/db/postgres"
	pkgredis "notebox/pkg/db/redis"
	"notebox/pkg/logger"
	"notebox/pkg/retry"
	"notebox/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "NOTEBOX_LOGGER_MODE"
	EnvLoggerLevel = "NOTEBOX_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrConnectRedis         = "failed to connect to Redis"
	ErrConnectPostgres      = "failed to connect to Postgres"
	ErrApplyMigrations      = "failed to apply migrations"
	ErrCreateStore          = "failed to create document store"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "notebox service started"
	LogServiceShutdownDone = "notebox service shutdown complete"
	LogInitBackends        = "initializing storage backends"
	LogInitServices        = "initializing services"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingRedis        = "closing Redis connection"
	LogClosingPostgres     = "closing Postgres connection"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := logger.Log(ctx).Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		exitCode = run(ctx)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// run собирает зависимости и блокируется до сигнала остановки. Возвращает код выхода.
func run(ctx context.Context) int {
	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrLoadConfig, zap.Error(err))
		return 1
	}

	l, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
		return 1
	}
	logger.SetGlobalLogger(l)

	l.Info(ctx, LogServiceStarted,
		zap.String("environment", cfg.HTTP.Environment),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("startup_time", time.Now().Format(time.RFC3339)))

	var hooks []shutdown.Hook

	l.Info(ctx, LogInitBackends)
	var backends storage.Backends

	if cfg.NeedsRedis() {
		redisClient, err := retry.Do(ctx, "redis", retry.DefaultConfig(),
			func(ctx context.Context) (*pkgredis.Client, error) {
				return pkgredis.NewClient(ctx, cfg.Redis.ClientConfig())
			})
		if err != nil {
			l.Error(ctx, ErrConnectRedis, zap.Error(err))
			return 1
		}
		backends.Redis = redisClient.RawClient()
		hooks = append(hooks, func(ctx context.Context) error {
			l.Info(ctx, LogClosingRedis)
			return redisClient.Close()
		})
	}

	if cfg.Storage.Driver == config.StorageDriverPostgres {
		db, err := retry.Do(ctx, "postgres", retry.DefaultConfig(),
			func(ctx context.Context) (*postgres.Database, error) {
				return postgres.New(ctx, cfg.Postgres.PoolOptions())
			})
		if err != nil {
			l.Error(ctx, ErrConnectPostgres, zap.Error(err))
			return 1
		}
		if err := postgres.MigrateDSN(ctx, cfg.Postgres.GetConnectionURL(), cfg.Postgres.MigrationsPath); err != nil {
			l.Error(ctx, ErrApplyMigrations, zap.Error(err))
			db.Close(ctx)
			return 1
		}
		backends.Postgres = db.Pool()
		hooks = append(hooks, func(ctx context.Context) error {
			l.Info(ctx, LogClosingPostgres)
			db.Close(ctx)
			return nil
		})
	}

	store, err := storage.NewStore(ctx, cfg.Storage, backends)
	if err != nil {
		l.Error(ctx, ErrCreateStore, zap.Error(err))
		return 1
	}

	var revocations repositories.RevocationStore
	if cfg.Revocation.Driver == config.RevocationDriverRedis {
		revocations = revocation.NewRedisStore(backends.Redis, cfg.Revocation.KeyPrefix)
	} else {
		revocations = revocation.NewMemoryStore(nil)
	}

	l.Info(ctx, LogInitServices)
	serviceFactory := services.NewServiceFactory(
		cfg.JWT.SecretKey,
		cfg.JWT.GetSessionTTL(),
		cfg.JWT.BCryptCost,
		revocations,
	)
	gateway := storage.NewGateway(store)
	authUseCase := app.NewAuthUseCase(gateway, serviceFactory.PasswordService(), serviceFactory.TokenService())
	noteUseCase := app.NewNoteUseCase(gateway, serviceFactory.TokenService(), app.NewIDGenerator(nil))

	fiberApp := fiber.New(fiber.Config{
		AppName:      config.ServiceName,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	})
	httpadapter.SetupRouter(fiberApp, authUseCase, noteUseCase, auth.CookieConfig{
		Secure: cfg.HTTP.SecureCookies(),
		MaxAge: cfg.JWT.GetSessionTTL(),
	})

	l.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
	go func() {
		if err := fiberApp.Listen(cfg.HTTP.GetAddress()); err != nil {
			l.Error(ctx, ErrStartHTTPServer, zap.Error(err))
		}
	}()

	// HTTP сервер останавливается первым, хранилища закрываются после него.
	shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(), func(ctx context.Context) error {
		l.Info(ctx, LogStoppingHTTP)
		if err := fiberApp.ShutdownWithContext(ctx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		shutdown.Run(ctx, cfg.Shutdown.GetTimeout(), hooks...)
		return nil
	})

	l.Info(ctx, LogServiceShutdownDone)
	return 0
}
