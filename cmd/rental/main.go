package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"movierental/internal/rental/adapters/alerts"
	rentalhttp "movierental/internal/rental/adapters/http"
	"movierental/internal/rental/adapters/postgres"
	"movierental/internal/rental/app"
	"movierental/internal/rental/config"
	"movierental/internal/rental/db"
	"movierental/internal/rental/domain/pricing"
	"movierental/internal/rental/domain/stock"
	"movierental/pkg/db/redis"
	"movierental/pkg/logger"
	"movierental/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "MRS_LOGGER_MODE"
	EnvLoggerLevel = "MRS_LOGGER_LEVEL"
	EnvConfigPath  = "MRS_CONFIG_PATH"

	MigrationsDir = "migrations/rental"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDatabase         = "failed to initialize database"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "movie rental service started"
	LogServiceShutdownDone = "movie rental service shutdown complete"
	LogInitDatabase        = "initializing database"
	LogInitRedis           = "initializing Redis"
	LogInitServices        = "initializing services"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingRedis        = "closing Redis connection"
	LogClosingDatabase     = "closing database connection"
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
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx, os.Getenv(EnvConfigPath))
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitDatabase)
		database, err := db.New(ctx, &cfg.Postgres, MigrationsDir)
		if err != nil {
			log.Error(ctx, ErrInitDatabase, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitRedis)
		redisClient, err := redis.NewClient(ctx, cfg.Redis.ClientConfig())
		if err != nil {
			log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
			database.Close(ctx)
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitServices)
		registry := pricing.DefaultRegistry()
		repos := postgres.NewRepositoryFactory(database.Pool(), registry)

		rentalService := app.NewRentalUseCase(
			repos.MovieRepository(),
			repos.UserRepository(),
			repos.RentalRepository(),
			registry,
		)

		inventory := app.NewInventoryUseCase(stock.New(), repos.MovieRepository())
		stockAlerts := alerts.NewRedisListener(ctx, redisClient.RawClient(),
			cfg.Stock.LowThreshold, cfg.Stock.AlertChannel, cfg.Stock.AlertKey, cfg.Stock.PublishTimeout)
		inventory.Subscribe(alerts.NewLogListener(ctx, cfg.Stock.LowThreshold))
		inventory.Subscribe(stockAlerts)

		log.Info(ctx, LogInitHTTPServer)
		server := rentalhttp.NewApp(cfg.HTTP.ReadTimeout, cfg.HTTP.WriteTimeout)
		rentalhttp.SetupRouter(server, log, rentalService, inventory, stockAlerts)

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := server.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return server.Shutdown()
			},
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingRedis)
				return redisClient.Close()
			},
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingDatabase)
				database.Close(ctx)
				return nil
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
