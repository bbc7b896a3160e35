// Command adminapi serves the super_admin REST API the dashboard manages:
// users, products and the login endpoint that issues bearer tokens.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	_ "github.com/99minutos/admin-dashboard/docs"
	"github.com/99minutos/admin-dashboard/internal/api"
	"github.com/99minutos/admin-dashboard/internal/core/ports"
	"github.com/99minutos/admin-dashboard/internal/core/service"
	"github.com/99minutos/admin-dashboard/internal/infrastructure/db/memory"
	mongodb "github.com/99minutos/admin-dashboard/internal/infrastructure/db/mongo"
	redisdb "github.com/99minutos/admin-dashboard/internal/infrastructure/db/redis"
	"github.com/99minutos/admin-dashboard/internal/pkg/config"
	"github.com/99minutos/admin-dashboard/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad(ctx)
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: "admin-api",
		Caller:  true,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("admin api stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	if err := cfg.RequireServer(); err != nil {
		return err
	}

	deps := api.Deps{JWTSecret: cfg.Server.JWTSecret, Log: log}

	var (
		userRepo    ports.UserRepository
		productRepo ports.ProductRepository
	)
	switch cfg.Server.Store {
	case config.StoreMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() {
			dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = client.Disconnect(dctx)
		}()
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			return err
		}
		userRepo = mongodb.NewUserRepository(db)
		productRepo = mongodb.NewProductRepository(db)
		deps.Mongo = db
		log.Info().Str("database", cfg.Mongo.Database).Msg("using mongodb store")
	default:
		userRepo = memory.NewUserRepository()
		productRepo = memory.NewProductRepository()
		log.Warn().Msg("using in-memory store; data is lost on restart")
	}

	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			ClientName: "admin-api",
		})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable; readiness will not report it")
		} else {
			defer func(c *goredis.Client) { _ = c.Close() }(rdb)
			deps.Redis = rdb
		}
	}

	deps.Users = service.NewUserService(userRepo, log.With().Str("component", "users").Logger())
	deps.Products = service.NewProductService(productRepo, log.With().Str("component", "products").Logger())
	deps.Auth = service.NewAuthService(userRepo, cfg.Server.JWTSecret, cfg.Server.TokenTTL)

	if err := service.EnsureSuperAdmin(ctx, deps.Users, cfg.Server.BootstrapUsername, cfg.Server.BootstrapPassword); err != nil {
		return err
	}

	e := api.NewRouter(deps)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("admin api listening")
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(sctx)
}
