// API server entry point for ChemReactivity.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/turtacn/ChemReactivity/internal/application/descriptor"
	"github.com/turtacn/ChemReactivity/internal/config"
	"github.com/turtacn/ChemReactivity/internal/infrastructure/database/postgres"
	"github.com/turtacn/ChemReactivity/internal/infrastructure/database/postgres/repositories"
	"github.com/turtacn/ChemReactivity/internal/infrastructure/database/redis"
	"github.com/turtacn/ChemReactivity/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemReactivity/internal/infrastructure/monitoring/prometheus"
	httpserver "github.com/turtacn/ChemReactivity/internal/interfaces/http"
	"github.com/turtacn/ChemReactivity/internal/interfaces/http/handlers"
	"github.com/turtacn/ChemReactivity/internal/interfaces/http/middleware"
)

const (
	version           = "0.1.0"
	defaultConfigPath = "configs/config.yaml"
)

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(logging.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		OutputPaths: []string{cfg.Log.Output},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	logger.Info("starting ChemReactivity API server",
		logging.String("version", version),
		logging.Int("port", cfg.Server.Port),
	)

	ctx := context.Background()

	// Postgres: a database/sql connection for health checks and migrations,
	// a pgx pool for repository traffic.
	conn, err := postgres.NewConnection(cfg.Database, logger.Named("postgres"))
	if err != nil {
		logger.Fatal("failed to connect to postgres", logging.Err(err))
	}
	defer func() { _ = conn.Close() }()

	if cfg.Database.MigrationPath != "" {
		if err := conn.RunMigrations(cfg.Database.MigrationPath); err != nil {
			logger.Fatal("failed to run migrations", logging.Err(err))
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("failed to create pgx pool", logging.Err(err))
	}
	defer pool.Close()

	// Redis cache.
	redisClient, err := redis.NewClient(cfg.Redis, logger.Named("redis"))
	if err != nil {
		logger.Fatal("failed to connect to redis", logging.Err(err))
	}
	defer func() { _ = redisClient.Close() }()

	cache := redis.NewRedisCache(redisClient, logger.Named("cache"),
		redis.WithPrefix(cfg.Redis.KeyPrefix),
		redis.WithDefaultTTL(cfg.Redis.DefaultTTL),
	)

	// Metrics.
	var (
		collector  prometheus.MetricsCollector
		appMetrics *prometheus.AppMetrics
	)
	if cfg.Metrics.Enabled {
		collector, err = prometheus.NewMetricsCollector(prometheus.CollectorConfig{
			Namespace:            cfg.Metrics.Namespace,
			Subsystem:            cfg.Metrics.Subsystem,
			EnableProcessMetrics: true,
			EnableGoMetrics:      true,
		}, logger.Named("metrics"))
		if err != nil {
			logger.Fatal("failed to initialize metrics", logging.Err(err))
		}
		appMetrics = prometheus.NewAppMetrics(collector)
	}

	// Application service.
	repoLog := &repoLogger{l: logger.Named("repository")}
	var repo *repositories.DescriptorRepository
	if appMetrics != nil {
		repo = repositories.NewDescriptorRepository(&instrumentedPool{pool: pool, metrics: appMetrics}, repoLog)
	} else {
		repo = repositories.NewDescriptorRepository(pool, repoLog)
	}
	svc := descriptor.NewService(repo, cache, appMetrics, logger.Named("descriptor"), cfg.Compute)

	// HTTP surface.
	mws := []func(http.Handler) http.Handler{
		middleware.RequestLogging(logger.Named("http"), middleware.DefaultLoggingConfig()),
	}
	if appMetrics != nil {
		mws = append(mws, middleware.RequestMetrics(appMetrics))
	}

	checkers := []handlers.HealthChecker{
		&postgresHealthAdapter{conn: conn},
		&redisHealthAdapter{client: redisClient},
	}
	if appMetrics != nil {
		for i, c := range checkers {
			checkers[i] = &instrumentedChecker{inner: c, metrics: appMetrics}
		}
	}

	router := httpserver.NewRouter(httpserver.RouterConfig{
		DescriptorHandler: handlers.NewDescriptorHandler(svc, logger.Named("http")),
		HealthHandler:     handlers.NewHealthHandler(version, checkers...),
		Middleware:        mws,
		MetricsCollector:  collector,
	})

	srv := httpserver.NewServer(cfg.Server, router, logger)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("HTTP server error", logging.Err(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	if err := srv.Stop(context.Background()); err != nil {
		logger.Error("shutdown error", logging.Err(err))
	}
	logger.Info("server stopped")
}

// loadConfig loads the config file when it exists, otherwise falls back to
// environment variables and defaults.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config.LoadFromEnv()
	}
	return config.Load(path)
}
