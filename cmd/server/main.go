package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/devlinkhq/devlink/adapters/event"
	"github.com/devlinkhq/devlink/adapters/github"
	httpAdapter "github.com/devlinkhq/devlink/adapters/http"
	"github.com/devlinkhq/devlink/adapters/persistence"
	authUC "github.com/devlinkhq/devlink/internal/application/usecase/auth"
	githubUC "github.com/devlinkhq/devlink/internal/application/usecase/github"
	profileUC "github.com/devlinkhq/devlink/internal/application/usecase/profile"
	"github.com/devlinkhq/devlink/internal/config"
	"github.com/devlinkhq/devlink/pkg/auth"
	"github.com/devlinkhq/devlink/pkg/logger"
	"github.com/devlinkhq/devlink/pkg/tracing"
)

func main() {
	cfg, err := config.LoadConfig("")
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("Starting devlink API server...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Jaeger.OTLPEndpoint != "" {
		tp, err := tracing.NewTracerProvider(cfg, appLogger, "devlink-api")
		if err != nil {
			appLogger.Fatal("Cannot initialize tracer", err)
		}
		defer tp.Shutdown(context.Background())
	}

	dbPool, err := persistence.NewPostgresPool(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Redis", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg.Kafka.Brokers)
	if err != nil {
		appLogger.Fatal("Cannot init Kafka producer", err)
	}
	defer kafkaClient.Close()

	// Repositories and adapters
	userRepo := persistence.NewPostgresUserRepo(dbPool, appLogger)
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)
	listCache := persistence.NewRedisProfileListCache(redisClient, appLogger)
	repoCache := persistence.NewRedisGithubRepoCache(redisClient, appLogger)
	githubAdapter := github.NewGithubAdapter(cfg, appLogger)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)

	// Use cases
	registerUseCase := authUC.NewRegisterUseCase(userRepo, jwtSvc, appLogger)
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger)
	profileUseCase := profileUC.NewProfileUseCase(profileRepo, listCache, kafkaClient, appLogger)
	lookupUseCase := githubUC.NewLookupUseCase(githubAdapter, repoCache, appLogger)

	// HTTP
	router := httpAdapter.NewRouter(httpAdapter.RouterDeps{
		AuthHandler:    httpAdapter.NewAuthHandler(registerUseCase, loginUseCase),
		ProfileHandler: httpAdapter.NewProfileHandler(profileUseCase, appLogger),
		GithubHandler:  httpAdapter.NewGithubHandler(lookupUseCase),
		JWTService:     jwtSvc,
		Logger:         appLogger,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: router,
	}

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Cannot run server", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutdown signal received, draining connections...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Graceful shutdown failed", err)
	}
	appLogger.Info("Server stopped.")
}
