// cmd/briefing-server/main.go
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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"sales-briefing/internal/common/config"
	"sales-briefing/internal/common/database"
	commonhttp "sales-briefing/internal/common/http"
	"sales-briefing/internal/common/logger"
	"sales-briefing/internal/common/observability"
	"sales-briefing/internal/server"

	authaudit "sales-briefing/internal/handlers/auth/auth-audit"
	generatebriefing "sales-briefing/internal/handlers/briefing/generate-briefing"
	renderbriefing "sales-briefing/internal/handlers/briefing/render-briefing"
	composelinks "sales-briefing/internal/handlers/contact/compose-links"
)

var version = "dev"

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(ctx context.Context, operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting briefing server...",
		zap.String("version", version),
		zap.String("environment", cfg.App.Environment),
		zap.String("model", cfg.Gateway.Model),
	)

	if cfg.Gateway.ResolveAPIKey() == "" {
		zapLog.Warn("Gateway API key is not set; briefing requests will fail until it is",
			zap.String("envVar", cfg.Gateway.APIKeyEnv))
	}

	obs := observability.New(cfg.Observability.ServiceName)
	tracing, err := observability.NewTracing(cfg.Observability.ServiceName, cfg.Observability.JaegerEndpoint)
	if err != nil {
		zapLog.Warn("Tracing disabled", zap.Error(err))
	} else {
		obs.WithTracing(tracing)
	}
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Optional stores, connected concurrently ---
	var (
		pg    *database.PostgresClient
		redis *database.RedisClient
	)
	g, gctx := errgroup.WithContext(ctx)
	if cfg.Database.Postgres.Enabled() {
		g.Go(func() error {
			return retryWithBackoff(gctx, func() error {
				client, err := database.NewPostgres(cfg.Database.Postgres)
				if err != nil {
					return err
				}
				if err := client.Ping(gctx); err != nil {
					client.Close()
					return err
				}
				pg = client
				return nil
			}, 5, time.Second, zapLog, "PostgreSQL connection")
		})
	}
	if cfg.Database.Redis.Enabled() {
		g.Go(func() error {
			client := database.NewRedis(cfg.Database.Redis)
			err := retryWithBackoff(gctx, func() error {
				return client.Ping(gctx)
			}, 5, time.Second, zapLog, "Redis connection")
			if err != nil {
				client.Close()
				return err
			}
			redis = client
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		zapLog.Fatal("store connection failed", zap.Error(err))
	}
	checks := map[string]server.Pinger{}
	if pg != nil {
		defer pg.Close()
		checks["postgres"] = pg
		zapLog.Info("PostgreSQL connected successfully")
	} else {
		zapLog.Info("No audit database configured; auth events are logged only")
	}
	if redis != nil {
		defer redis.Close()
		checks["redis"] = redis
		zapLog.Info("Redis connected successfully")
	}

	// --- Handlers ---
	briefingCfg := generatebriefing.FromAppConfig(cfg)
	if err := briefingCfg.Validate(); err != nil {
		zapLog.Fatal("invalid gateway config", zap.Error(err))
	}
	httpClient := commonhttp.NewClient(briefingCfg.Timeout + 5*time.Second).
		WithUserAgent(cfg.App.Name + "/" + version)

	briefingSvc := generatebriefing.NewService(generatebriefing.ServiceDependencies{
		Logger:        log,
		HTTPClient:    httpClient,
		Observability: obs,
	}, briefingCfg)

	contactCfg := composelinks.FromAppConfig(cfg)
	if err := contactCfg.Validate(); err != nil {
		zapLog.Fatal("invalid contact config", zap.Error(err))
	}

	auditSvc := authaudit.NewService(authaudit.ServiceDependencies{Logger: log, DB: pg}, authaudit.DefaultConfig())

	deps := server.Dependencies{
		Config:    cfg,
		Logger:    log,
		AccessLog: zapLog,
		Briefing:  briefingSvc,
		Render:    renderbriefing.NewService(renderbriefing.ServiceDependencies{Logger: log}),
		Contact:   composelinks.NewService(composelinks.ServiceDependencies{Logger: log}, contactCfg),
		Audit:     auditSvc,
		Checks:    checks,
	}
	if cfg.Auth.RequireSession {
		deps.Sessions = redis
	}

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      server.NewRouter(deps),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	zapLog.Info("Shutdown signal received, draining requests...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("HTTP server forced to shutdown", zap.Error(err))
	}
	if err := auditSvc.Recorder().Drain(shutdownCtx); err != nil {
		zapLog.Error("Audit writes still pending at shutdown", zap.Error(err))
	}

	zapLog.Info("Briefing server stopped gracefully")
}
