package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Gaaaybe/Aetherium/internal/config"
	"github.com/Gaaaybe/Aetherium/internal/database"
	"github.com/Gaaaybe/Aetherium/internal/events"
	"github.com/Gaaaybe/Aetherium/internal/logger"
	"github.com/Gaaaybe/Aetherium/internal/messaging"
	"github.com/Gaaaybe/Aetherium/internal/server"
	"github.com/Gaaaybe/Aetherium/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:    cfg.LogLevel,
		Encoding: cfg.LogEncoding,
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	zap.ReplaceGlobals(log)
	zap.L().Info("Logger initialized", zap.String("logLevel", cfg.LogLevel), zap.String("env", cfg.Env))

	// --- Внешние подключения ---
	pgPool, err := setupPostgres(cfg)
	if err != nil {
		zap.L().Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer pgPool.Close()
	zap.L().Info("Connected to PostgreSQL")

	migrator := database.NewSchemaMigrator(pgPool, log)
	migrateCtx, migrateCancel := context.WithTimeout(context.Background(), time.Minute)
	err = migrator.Up(migrateCtx)
	migrateCancel()
	if err != nil {
		zap.L().Fatal("Failed to apply migrations", zap.Error(err))
	}

	redisClient, err := setupRedis(cfg)
	if err != nil {
		zap.L().Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	zap.L().Info("Connected to Redis")

	mqConn, err := connectRabbitMQ(cfg.RabbitMQURL, log)
	if err != nil {
		zap.L().Fatal("Failed to connect to RabbitMQ", zap.Error(err))
	}
	defer mqConn.Close()
	zap.L().Info("Connected to RabbitMQ")

	// --- Зависимости ---
	effectRepo := database.NewCachedEffectRepository(
		database.NewPgEffectRepository(pgPool, log), redisClient, cfg.CatalogCacheTTL, log)
	modificationRepo := database.NewCachedModificationRepository(
		database.NewPgModificationRepository(pgPool, log), redisClient, cfg.CatalogCacheTTL, log)

	bus := events.NewBus(log)
	services := service.NewServices(service.Repositories{
		Effects:       effectRepo,
		Modifications: modificationRepo,
		Powers:        database.NewPgPowerRepository(pgPool, log),
		PowerArrays:   database.NewPgPowerArrayRepository(pgPool, log),
		Peculiarities: database.NewPgPeculiarityRepository(pgPool, log),
	}, bus, log)

	// Пересылка в брокер регистрируется после каскада: наружу уходит уже опубликованное.
	publisher, err := messaging.NewRabbitMQVisibilityPublisher(mqConn, cfg.VisibilityEventsQueue, log)
	if err != nil {
		zap.L().Fatal("Failed to create visibility publisher", zap.Error(err))
	}
	messaging.NewVisibilityForwarder(publisher, log).Register(bus)

	if cfg.CatalogSeedDir != "" {
		importCatalog(services.Catalog, cfg.CatalogSeedDir)
	}

	warmCtx, warmCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.WarmCatalog(warmCtx, effectRepo, modificationRepo); err != nil {
		zap.L().Warn("Failed to warm catalog cache", zap.Error(err))
	}
	warmCancel()

	// --- HTTP (только служебные маршруты) ---
	gin.SetMode(gin.ReleaseMode)
	if cfg.Env == "development" {
		gin.SetMode(gin.DebugMode)
	}

	router := server.NewRouter(log, map[string]server.HealthCheck{
		"postgres": pgPool.Ping,
		"redis": func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		},
		"rabbitmq": func(context.Context) error {
			if mqConn.IsClosed() {
				return errors.New("connection closed")
			}
			return nil
		},
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	zap.L().Info("Starting HTTP server", zap.String("port", cfg.Port))

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("HTTP Server listen error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("HTTP Server forced to shutdown", zap.Error(err))
	}

	zap.L().Info("Server exiting")
}

// importCatalog загружает официальный каталог из каталога на диске. Ошибка не фатальна:
// сервис работает с тем, что уже есть в базе.
func importCatalog(catalog service.CatalogService, dir string) {
	data, err := service.ReadCatalog(os.DirFS(dir))
	if err != nil {
		zap.L().Error("Failed to read catalog seed", zap.String("dir", dir), zap.Error(err))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if _, err := catalog.ImportCatalog(ctx, data); err != nil {
		zap.L().Error("Failed to import catalog seed", zap.String("dir", dir), zap.Error(err))
	}
}

// setupPostgres создает пул соединений, повторяя попытки, пока база не поднимется.
func setupPostgres(cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("unable to parse postgres config: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.DBMaxConns)
	poolConfig.MaxConnIdleTime = cfg.DBIdleTimeout

	var lastErr error
	maxRetries := 10
	retryDelay := 3 * time.Second

	for i := 0; i < maxRetries; i++ {
		attempt := i + 1
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err == nil {
			err = pool.Ping(ctx)
			if err == nil {
				cancel()
				return pool, nil
			}
			pool.Close()
		}
		cancel()

		lastErr = fmt.Errorf("unable to connect to postgres (attempt %d/%d): %w", attempt, maxRetries, err)
		zap.L().Warn("PostgreSQL connection failed, retrying...",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", maxRetries),
			zap.Error(err),
		)
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}
	return nil, lastErr
}

// setupRedis подключается к Redis с повторными попытками.
func setupRedis(cfg *config.Config) (*redis.Client, error) {
	redisOpts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}

	var lastErr error
	maxRetries := 10
	retryDelay := 3 * time.Second

	for i := 0; i < maxRetries; i++ {
		attempt := i + 1
		client := redis.NewClient(redisOpts)

		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := client.Ping(pingCtx).Err()
		pingCancel()
		if err == nil {
			return client, nil
		}

		client.Close()
		lastErr = fmt.Errorf("unable to ping redis (attempt %d/%d): %w", attempt, maxRetries, err)
		zap.L().Warn("Redis ping failed, retrying...",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", maxRetries),
			zap.Error(err),
		)
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}
	return nil, lastErr
}

// connectRabbitMQ пытается подключиться к RabbitMQ с несколькими попытками
func connectRabbitMQ(url string, logger *zap.Logger) (*amqp.Connection, error) {
	var conn *amqp.Connection
	var err error
	maxRetries := 5
	retryDelay := 5 * time.Second
	for i := 0; i < maxRetries; i++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			return conn, nil
		}
		logger.Warn("Failed to connect to RabbitMQ",
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", maxRetries),
			zap.Duration("retry_delay", retryDelay),
			zap.Error(err),
		)
		time.Sleep(retryDelay)
	}
	return nil, err
}
