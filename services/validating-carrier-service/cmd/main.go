// Package main is the entry point for the application
// It initializes all components and starts the HTTP server
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/jwt"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/kafka"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/logger"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/metrics"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/postgres"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/redis"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/config"
	httpDelivery "github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/delivery/http"
	kafkaDelivery "github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/delivery/kafka"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain/model"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain/repository"
	kafkaRepository "github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/repository/kafka"
	pgRepository "github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/repository/postgres"
	redisRepository "github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/repository/redis"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/repository/snapshot"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/usecase"
)

// main is the entry point of the application
// It performs the following steps:
// 1. Initializes the logger
// 2. Loads configuration from files or environment variables
// 3. Opens the reference data source, migrating and seeding postgres when configured
// 4. Wraps the reference data gateway with the redis cache
// 5. Connects kafka for resolution events and cache invalidation
// 6. Initializes the usecase, handler and router layers
// 7. Starts the HTTP server and the invalidation consumer with graceful shutdown
func main() {
	// configure logger
	appLogger := logger.NewJSONDefault()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		appLogger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	appLogger = logger.NewWithOptions(
		logger.WithLevelName(cfg.Logging.Level),
		logger.WithFormat(cfg.Logging.Format),
		logger.WithService(cfg.Application.Name),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appMetrics := metrics.New("validating_carrier", true)
	checks := make(map[string]httpDelivery.HealthCheck)

	// Initialize reference data gateway
	var gateway repository.ReferenceData
	var postgresClient postgres.PostgresClient
	switch cfg.ReferenceData.Source {
	case config.SourceSnapshot:
		set, err := snapshot.LoadFile(cfg.ReferenceData.SnapshotFile)
		if err != nil {
			appLogger.Error("Failed to load reference data snapshot", "error", err)
			os.Exit(1)
		}
		gateway = snapshot.NewReferenceDataRepository(set, appLogger)
	default:
		postgresClient, err = postgres.NewPostgresClient(postgres.Config{
			Host:            cfg.Infrastructure.Postgres.Host,
			Port:            cfg.Infrastructure.Postgres.Port,
			User:            cfg.Infrastructure.Postgres.User,
			Password:        cfg.Infrastructure.Postgres.Password,
			DBName:          cfg.Infrastructure.Postgres.DBName,
			Schema:          cfg.Infrastructure.Postgres.Schema,
			SSLMode:         cfg.Infrastructure.Postgres.SSLMode,
			MaxIdleConns:    cfg.Infrastructure.Postgres.MaxIdleConns,
			MaxOpenConns:    cfg.Infrastructure.Postgres.MaxOpenConns,
			ConnMaxIdleTime: cfg.Infrastructure.Postgres.ConnMaxIdleTime,
			ConnMaxLifetime: cfg.Infrastructure.Postgres.ConnMaxLifetime,
			ConnectTimeout:  cfg.Infrastructure.Postgres.ConnectTimeout,
			Debug:           cfg.Infrastructure.Postgres.Debug,
		})
		if err != nil {
			appLogger.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := postgresClient.Close(); err != nil {
				appLogger.Warn("Error closing database connection", "error", err)
			}
		}()

		if cfg.Infrastructure.Postgres.IsUseMigrate {
			// Run database migrations
			if err := postgresClient.Migrate(model.ReferenceModels()...); err != nil {
				appLogger.Error("Failed to migrate database", "error", err)
				os.Exit(1)
			}
		}

		if cfg.ReferenceData.SeedFile != "" {
			set, err := snapshot.LoadFile(cfg.ReferenceData.SeedFile)
			if err != nil {
				appLogger.Error("Failed to load reference data seed", "error", err)
				os.Exit(1)
			}
			if err := pgRepository.Seed(ctx, postgresClient.GetDB(), set, appLogger); err != nil {
				appLogger.Error("Failed to seed reference data", "error", err)
				os.Exit(1)
			}
		}

		gateway = pgRepository.NewReferenceDataRepository(postgresClient.GetDB(), appLogger)
		checks["postgres"] = postgresClient.Ping
	}

	// Initialize Redis client and reference data cache
	var redisClient redis.RedisClient
	var invalidator repository.CacheInvalidator
	if cfg.Infrastructure.Redis.Enabled {
		redisClient, err = redis.NewWithConfig(redis.Config{
			Addrs:       cfg.Infrastructure.Redis.Addrs,
			Username:    cfg.Infrastructure.Redis.Username,
			Password:    cfg.Infrastructure.Redis.Password,
			DB:          cfg.Infrastructure.Redis.DB,
			PoolSize:    cfg.Infrastructure.Redis.PoolSize,
			DialTimeout: time.Duration(cfg.Infrastructure.Redis.DialTimeout) * time.Second,
		})
		if err != nil {
			appLogger.Error("Failed to initialize Redis client", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()

		cache := redisRepository.NewReferenceDataCache(gateway, redisClient, cfg.ReferenceData.CacheTTLDuration(), appLogger, appMetrics)
		gateway = cache
		invalidator = cache
		checks["redis"] = redisClient.Ping
	}

	// Initialize Kafka client
	var kafkaClient kafka.KafkaClient
	resolverOptions := []usecase.ResolverOption{usecase.WithRecorder(appMetrics)}
	if cfg.Infrastructure.Kafka.Enabled {
		kafkaClient, err = kafka.NewWithConfig(kafka.Config{
			Brokers:         cfg.Infrastructure.Kafka.Brokers,
			ConsumerGroup:   cfg.Infrastructure.Kafka.ConsumerGroup,
			ClientID:        cfg.Infrastructure.Kafka.ClientID,
			SASLUser:        cfg.Infrastructure.Kafka.SASLUser,
			SASLPassword:    cfg.Infrastructure.Kafka.SASLPassword,
			DeliveryTimeout: time.Duration(cfg.Infrastructure.Kafka.DeliveryTimeout) * time.Second,
			ConsumeFromEnd:  true,
		})
		if err != nil {
			appLogger.Error("Failed to initialize Kafka client", "error", err)
			os.Exit(1)
		}
		defer kafkaClient.Close()

		publisher := kafkaRepository.NewEventPublisher(kafkaClient, kafkaRepository.Topics{
			Resolved: cfg.Infrastructure.Kafka.Topics.Resolved,
			Trace:    cfg.Infrastructure.Kafka.Topics.Trace,
		}, appLogger, appMetrics)
		resolverOptions = append(resolverOptions, usecase.WithPublisher(publisher))
		checks["kafka"] = kafkaClient.Ping
	}

	// Initialize JWT client
	var revocations jwt.RevocationStore
	if cfg.Security.JWT.Stateful && redisClient != nil {
		revocations = jwt.NewRedisStore(redisClient)
	}
	jwtClient, err := jwt.NewWithConfig(jwt.TokenConfig{
		Secret:      cfg.Security.JWT.AccessTokenSecret,
		Issuer:      cfg.Security.JWT.Issuer,
		AccessTTL:   time.Duration(cfg.Security.JWT.AccessTokenExpiry) * time.Minute,
		ClockLeeway: time.Duration(cfg.Security.JWT.ClockLeeway) * time.Second,
	}, revocations)
	if err != nil {
		appLogger.Error("Failed to initialize JWT client", "error", err)
		os.Exit(1)
	}

	// Initialize usecase
	resolverUsecase := usecase.NewResolverUseCase(gateway, usecase.Options{
		MultiPlan:              cfg.Resolver.MultiPlan,
		AlphabeticalAlternates: cfg.Resolver.AlphabeticalAlternates,
		GsaEnabled:             cfg.Resolver.GsaEnabled,
		NeutralEnabled:         cfg.Resolver.NeutralEnabled,
		CheckNation:            cfg.Resolver.CheckNation,
		TrailerWidth:           cfg.Resolver.TrailerWidth,
		MaxBatchSize:           cfg.Resolver.MaxBatchSize,
		TraceToLog:             cfg.Resolver.TraceToLog,
		TraceToKafka:           cfg.Resolver.TraceToKafka,
		PublishOutcomes:        cfg.Resolver.PublishOutcomes,
	}, appLogger, resolverOptions...)
	displayUsecase := usecase.NewDisplayUseCase(gateway, appLogger)

	// Initialize handlers
	resolverHandler := httpDelivery.NewResolverHandler(resolverUsecase, appLogger)
	settlementPlanHandler := httpDelivery.NewSettlementPlanHandler(displayUsecase, appLogger)
	healthHandler := httpDelivery.NewHealthHandler(checks, appLogger)

	var limiter *httpDelivery.AgencyLimiter
	if cfg.RateLimit.Enabled {
		limiter = httpDelivery.NewAgencyLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// Initialize router
	router := httpDelivery.NewRouter(resolverHandler, settlementPlanHandler, healthHandler, jwtClient, limiter, appMetrics, appLogger)

	// Start server
	server := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Server.Port),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		appLogger.Info("Service starting", "name", cfg.Application.Name, "version", cfg.Application.Version, "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if limiter != nil {
		idle := time.Duration(cfg.RateLimit.IdleTimeout) * time.Second
		group.Go(func() error {
			limiter.Run(groupCtx, time.Minute, idle)
			return nil
		})
	}

	if kafkaClient != nil && invalidator != nil {
		consumer := kafkaDelivery.NewInvalidationConsumer(kafkaClient, invalidator, cfg.Infrastructure.Kafka.Topics.ReferenceDataChanged, appLogger)
		group.Go(func() error {
			return consumer.Run(groupCtx)
		})
	}

	group.Go(func() error {
		// Block until a signal is received or a component fails
		<-groupCtx.Done()
		appLogger.Info("Shutting down server...")

		// Create a context with timeout for graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		appLogger.Error("Server stopped with error", "error", err)
		stop()
		os.Exit(1)
	}
	appLogger.Info("Server exited")
}
