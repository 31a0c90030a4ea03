package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lojaweb/catalog/internal/auth"
	"github.com/lojaweb/catalog/internal/cache"
	"github.com/lojaweb/catalog/internal/config"
	"github.com/lojaweb/catalog/internal/db"
	httpx "github.com/lojaweb/catalog/internal/http"
	"github.com/lojaweb/catalog/internal/notifications"
	"github.com/lojaweb/catalog/internal/observability"
	"github.com/lojaweb/catalog/internal/repo/memory"
	"github.com/lojaweb/catalog/internal/repo/postgres"
	"github.com/prometheus/client_golang/prometheus"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}

	log := observability.NewLogger(cfg.Env)

	if err := run(cfg, log); err != nil {
		log.Error("api exited", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName:    cfg.OTELServiceName,
		ServiceVersion: version,
		Endpoint:       cfg.OTLPEndpoint,
		SampleRatio:    cfg.OTELSampleRatio,
	})
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := config.WithTimeout(5 * time.Second)
		defer cancel()
		_ = shutdownTracer(sctx)
	}()

	prom := observability.NewProm(prometheus.NewRegistry())

	deps := httpx.Deps{
		Config:  cfg,
		Tokens:  auth.NewManager(cfg.JWTSecret, cfg.AccessTTL()),
		Prom:    prom,
		Tracing: cfg.OTLPEndpoint != "",
	}

	switch cfg.Store {
	case config.StoreMemory:
		deps.Products = memory.NewProductsRepo()
		deps.Users = memory.NewUsersRepo()

	default:
		pool, err := db.NewPool(ctx, cfg.DBURL, db.PoolOptions{
			MaxConns:        int32(cfg.DB.MaxConns),
			MinConns:        int32(cfg.DB.MinConns),
			MaxConnIdleTime: time.Duration(cfg.DB.MaxConnIdleSeconds) * time.Second,
			ApplicationName: cfg.OTELServiceName,
		})
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer pool.Close()

		if err := db.EnsureSchema(ctx, pool); err != nil {
			return err
		}

		deps.Products = postgres.NewProductsRepo(pool, prom)
		deps.Users = postgres.NewUsersRepo(pool, prom, cfg.RolesDelimiter)
		deps.Ping = pool.Ping
	}

	created, err := db.EnsureAdminUser(ctx, deps.Users, cfg)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if created {
		log.Info("admin user created", "login", cfg.AdminLogin)
	}

	deps.Cache = cache.NewMemory(cfg.CacheTTL())
	if cfg.Redis.Addr != "" {
		client, err := cache.Connect(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			// fall back to the in-process cache rather than refusing to start
			log.Warn("redis unavailable, using in-memory cache", "addr", cfg.Redis.Addr, "err", err)
		} else {
			defer client.Close()
			deps.Cache = cache.NewRedis(client, cfg.CacheTTL(), "catalog:", log)
		}
	}

	deps.Notifier = notifications.NewProtectedNotifier(
		notifications.NewLogNotifier(log),
		notifications.ProtectedNotifierConfig{Timeout: 2 * time.Second},
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           httpx.NewRouter(log, deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env, "store", cfg.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("server shutting down")

	sctx, cancel := config.WithTimeout(10 * time.Second)
	defer cancel()

	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	log.Info("shutdown complete")
	return nil
}
