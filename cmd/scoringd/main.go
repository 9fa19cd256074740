package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/credentials"

	"github.com/farmcred/scoring/internal/application/usecase"
	"github.com/farmcred/scoring/internal/domain/port"
	"github.com/farmcred/scoring/internal/domain/service"
	"github.com/farmcred/scoring/internal/infrastructure/adapter"
	"github.com/farmcred/scoring/internal/infrastructure/cache"
	"github.com/farmcred/scoring/internal/infrastructure/config"
	"github.com/farmcred/scoring/internal/infrastructure/kafka"
	pgRepo "github.com/farmcred/scoring/internal/infrastructure/postgres"
	"github.com/farmcred/scoring/internal/infrastructure/postgres/migrations"
	grpcPresentation "github.com/farmcred/scoring/internal/presentation/grpc"
	"github.com/farmcred/scoring/internal/presentation/rest"
	"github.com/farmcred/scoring/pkg/auth"
	pkgkafka "github.com/farmcred/scoring/pkg/kafka"
	"github.com/farmcred/scoring/pkg/observability"
	pkgpostgres "github.com/farmcred/scoring/pkg/postgres"
	"github.com/farmcred/scoring/pkg/tlsutil"
)

func main() {
	if err := run(); err != nil {
		slog.Error("scoring-service exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: cfg.ServiceName,
	})
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Info("starting scoring-service",
		"environment", cfg.Environment,
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: cfg.ServiceName})
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck // best-effort flush

	if cfg.OTLPEndpoint != "" {
		shutdown, tracerErr := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: cfg.ServiceName,
			Endpoint:    cfg.OTLPEndpoint,
			Insecure:    !cfg.IsProduction(),
		})
		if tracerErr != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", tracerErr)
		} else {
			defer func() { _ = shutdown(context.Background()) }() //nolint:errcheck // best-effort tracer shutdown
		}
	}

	// Database connection and schema.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := pkgpostgres.NewPool(dbCtx, cfg.Postgres())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if err := pkgpostgres.NewMigrator(cfg.DatabaseDSN(), migrations.FS, ".").Up(); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	// Events.
	var publisher port.EventPublisher = kafka.NewLogPublisher(logger)
	if cfg.KafkaEnabled() {
		producer, producerErr := pkgkafka.NewProducer(cfg.KafkaClient())
		if producerErr != nil {
			return fmt.Errorf("failed to create kafka producer: %w", producerErr)
		}
		defer producer.Close()
		publisher = kafka.NewEventPublisher(producer, cfg.Kafka.EventsTopic, logger)
	} else {
		logger.Warn("KAFKA_BROKERS not set, domain events are only logged")
	}

	// Score cache.
	var scoreCache port.ScoreCache = cache.NoopCache{}
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = connectRedis(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		scoreCache = cache.NewScoreCache(redisClient, cfg.Redis.TTL)
		logger.Info("score cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.TTL)
	}

	// Farmer record collaborators.
	records := adapter.NewStubRecords()
	var identity port.IdentityVerifier = records
	if cfg.IdentityProvider.URL != "" {
		identity = adapter.NewHTTPIdentityVerifier(adapter.IdentityProviderConfig{
			BaseURL:    cfg.IdentityProvider.URL,
			APIKey:     cfg.IdentityProvider.APIKey,
			Timeout:    cfg.IdentityProvider.Timeout,
			MaxRetries: cfg.IdentityProvider.Retries,
		}, records, logger)
	}

	// Use cases.
	repo := pgRepo.NewAssessmentRepository(pool)
	engine := service.NewEngine()
	scoreFarmerUC := usecase.NewScoreFarmer(engine, scoreCache, logger)
	assembleUC := usecase.NewAssembleProfile(usecase.Collaborators{
		Identity:    identity,
		Farms:       records,
		Cooperative: records,
		Repayments:  records,
		Market:      records,
	})
	assessUC := usecase.NewAssessLoanApplication(repo, publisher, engine, assembleUC, logger)
	getUC := usecase.NewGetAssessment(repo)
	listUC := usecase.NewListFarmerAssessments(repo)

	jwtService, err := newJWTService(cfg, logger)
	if err != nil {
		return err
	}

	// gRPC server.
	var grpcCreds credentials.TransportCredentials
	if cfg.TLS.CertFile != "" {
		grpcCreds, err = tlsutil.ServerCredentials(cfg.TLS.CertFile, cfg.TLS.KeyFile, cfg.TLS.ClientCAFile)
		if err != nil {
			return fmt.Errorf("failed to load TLS credentials: %w", err)
		}
	}
	grpcServer := grpcPresentation.NewServer(
		grpcPresentation.NewCreditScoringHandler(scoreFarmerUC, assessUC, getUC, listUC, logger),
		grpcPresentation.ServerConfig{
			Address:     cfg.GRPCAddr(),
			Credentials: grpcCreds,
			Reflection:  !cfg.IsProduction(),
		},
		logger, jwtService,
	)

	// HTTP server.
	checks := map[string]rest.Pinger{
		"postgres": rest.PingerFunc(func(ctx context.Context) error { return pkgpostgres.HealthCheck(ctx, pool) }),
	}
	if redisClient != nil {
		checks["redis"] = rest.PingerFunc(func(ctx context.Context) error { return redisClient.Ping(ctx).Err() })
	}
	httpServer := rest.NewServer(
		rest.ServerConfig{
			Address:        cfg.HTTPAddr(),
			RateLimitRPS:   cfg.RateLimitRPS,
			RateLimitBurst: cfg.RateLimitBurst,
		},
		rest.NewHealthHandler(cfg.ServiceName, checks, logger),
		rest.NewScoringHandler(scoreFarmerUC, getUC, logger),
		metricsHandler, jwtService, logger,
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := grpcServer.Start(); err != nil {
			return fmt.Errorf("gRPC server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := httpServer.Start(); err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		httpServer.SweepLimiter(gctx, 5*time.Minute)
		return nil
	})

	if cfg.KafkaEnabled() {
		intake := kafka.NewLoanApplicationHandler(assessUC, logger)
		consumer, consumerErr := pkgkafka.NewConsumer(cfg.KafkaClient(), cfg.Kafka.ApplicationsTopic, intake.Handle, logger)
		if consumerErr != nil {
			return fmt.Errorf("failed to create kafka consumer: %w", consumerErr)
		}
		defer consumer.Close()
		g.Go(func() error {
			if err := consumer.Start(gctx); err != nil {
				return fmt.Errorf("loan application consumer error: %w", err)
			}
			return nil
		})
	}

	// Graceful shutdown once a signal arrives or any component fails.
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()

		grpcServer.Stop()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Info("scoring-service stopped")
	return nil
}

func connectRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	opts := cache.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}
	if cfg.TLS {
		tlsCfg, err := tlsutil.ClientConfig(cfg.CAFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load redis TLS config: %w", err)
		}
		opts.TLS = tlsCfg
	}

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client, err := cache.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// newJWTService validates tokens with the configured public key or secret.
// With AUTH_DISABLED in development it signs with a throwaway secret and logs
// an admin token for local use.
func newJWTService(cfg config.Config, logger *slog.Logger) (*auth.JWTService, error) {
	jwtCfg := auth.JWTConfig{Issuer: cfg.Auth.JWTIssuer}

	switch {
	case cfg.Auth.JWTPublicKeyPath != "":
		keyData, err := auth.LoadKeyFromFile(cfg.Auth.JWTPublicKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load JWT public key: %w", err)
		}
		jwtCfg.PublicKeyPEM = string(keyData)
	case cfg.Auth.JWTSecret != "":
		jwtCfg.Secret = cfg.Auth.JWTSecret
	default:
		jwtCfg.Secret = rand.Text()
		jwtCfg.Expiration = 24 * time.Hour
	}

	jwtService, err := auth.NewJWTService(jwtCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	if cfg.Auth.JWTPublicKeyPath == "" && cfg.Auth.JWTSecret == "" {
		token, err := jwtService.GenerateToken(uuid.New(), uuid.New(), []string{auth.RoleAdmin})
		if err != nil {
			return nil, fmt.Errorf("failed to issue development token: %w", err)
		}
		logger.Warn("authentication uses a throwaway development secret", "admin_token", token)
	}
	return jwtService, nil
}
