// @title                       Food Market Platform API
// @version                     1.0.0
// @description                 Authentication and account API of the food market platform.
// @BasePath                    /api/v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	_ "github.com/foodmarket/platform-api/docs"
	"github.com/foodmarket/platform-api/internal/api"
	"github.com/foodmarket/platform-api/internal/api/handler"
	"github.com/foodmarket/platform-api/internal/core/service"
	mongodb "github.com/foodmarket/platform-api/internal/infrastructure/db/mongo"
	redisdb "github.com/foodmarket/platform-api/internal/infrastructure/db/redis"
	"github.com/foodmarket/platform-api/internal/infrastructure/queue"
	"github.com/foodmarket/platform-api/internal/pkg/config"
	"github.com/foodmarket/platform-api/internal/pkg/metrics"
	"github.com/foodmarket/platform-api/pkg/logger"
	"github.com/foodmarket/platform-api/pkg/password"
	"github.com/foodmarket/platform-api/pkg/token"
)

const (
	serviceName     = "platform-api"
	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("%s: %v", serviceName, err)
	}
}

func run() error {
	cfg, err := config.Load(context.Background())
	if err != nil {
		return err
	}

	lg := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
		Env:     cfg.Env,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  serviceName,
	})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			lg.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	userRepo := mongodb.NewUserRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := auditRepo.EnsureIndexes(ctx); err != nil {
		lg.Warn().Err(err).Msg("audit indexes not created")
	}

	// --- Audit trail ---
	auditService := service.NewAuditService(auditRepo, component(lg, "audit"))
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, cfg.Audit.Buffer, auditService, component(lg, "audit_dispatcher"))
	dispatcher.Start(context.Background())
	defer dispatcher.Close()

	// --- Auth core ---
	tokens, err := token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAlgorithm, cfg.AccessTokenTTL())
	if err != nil {
		return err
	}
	hasher := password.NewHasher(cfg.Auth.BcryptCost)
	throttle := redisdb.NewLoginThrottle(rdb, cfg.Auth.LoginMaxFailedAttempts, cfg.Auth.LoginLockoutWindow)

	authService := service.NewAuthService(userRepo, hasher, tokens, throttle, dispatcher, component(lg, "auth"))
	resolver := service.NewIdentityResolver(tokens, userRepo)

	// --- HTTP ---
	health := handler.NewHealthHandler(map[string]handler.Pinger{
		"mongodb": mongodb.NewPinger(db),
		"redis":   redisdb.NewPinger(rdb),
	}, metrics.NewHealthGauge(prometheus.DefaultRegisterer), component(lg, "health"))

	router := api.NewRouter(api.RouterConfig{
		AuthService:      authService,
		Resolver:         resolver,
		Health:           health,
		Log:              lg,
		AllowedOrigins:   cfg.HTTP.CORSAllowedOrigins,
		AuthRateRPS:      cfg.HTTP.AuthRateLimitRPS,
		AuthRateBurst:    cfg.HTTP.AuthRateLimitBurst,
		MetricsSubsystem: "marketplace",
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		lg.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}
	stop()
	lg.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error().Err(err).Msg("server shutdown failed")
	}
	return nil
}

func component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}
