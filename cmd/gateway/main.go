package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/nekogravitycat/shareit/internal/config"
	"github.com/nekogravitycat/shareit/internal/gateway"
	"github.com/nekogravitycat/shareit/internal/logging"
	"github.com/nekogravitycat/shareit/internal/metrics"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadGateway()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger, closer, err := logging.New(cfg.Logging, cfg.AppName)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init logger")
	}
	if closer != nil {
		defer closer.Close()
	}

	metrics.Register()

	// Rate limiter: shared through Redis when configured, per process otherwise.
	var limiter gateway.Limiter = gateway.NewLocalLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			logger.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis not reachable yet, local limiter covers until it is")
		}
		cancel()

		limiter = gateway.NewFailoverLimiter(
			gateway.NewRedisLimiter(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window),
			limiter,
			*logger,
		)
	}

	router := gateway.NewRouter(gateway.Config{
		IsProduction: cfg.IsProduction,
		ProdOrigins:  cfg.ProdOrigins,
		Logger:       *logger,
		Server:       gateway.NewServerClient(cfg.ServerURL, cfg.ServerTimeout),
		Limiter:      limiter,
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Str("upstream", cfg.ServerURL).Msg("gateway running")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("gateway error")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("gateway forced to shutdown")
	}

	logger.Info().Msg("gateway exited gracefully")
}
