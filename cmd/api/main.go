// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/courtkings/api/internal/admin"
	"github.com/courtkings/api/internal/auth"
	"github.com/courtkings/api/internal/config"
	"github.com/courtkings/api/internal/contact"
	"github.com/courtkings/api/internal/core"
	"github.com/courtkings/api/internal/game"
	"github.com/courtkings/api/internal/guard"
	"github.com/courtkings/api/internal/health"
	"github.com/courtkings/api/internal/middleware"
	"github.com/courtkings/api/internal/player"
	"github.com/courtkings/api/internal/server"
	"github.com/courtkings/api/internal/tournament"
	"github.com/courtkings/api/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	mongo, err := core.NewMongo(ctx, cfg.Mongo)
	if err != nil {
		return err
	}
	logger.Info("mongo connected",
		"database", cfg.Mongo.Database,
		"max_pool_size", cfg.Mongo.MaxPoolSize,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	if cfg.IsDevelopment() {
		if _, statErr := os.Stat(cfg.JWT.PrivateKeyPath); errors.Is(
			statErr, os.ErrNotExist,
		) {
			if genErr := auth.GenerateKeyPair(
				cfg.JWT.PrivateKeyPath,
				cfg.JWT.PublicKeyPath,
			); genErr != nil {
				return genErr
			}
			logger.Info("generated development signing keys",
				"path", cfg.JWT.PrivateKeyPath,
			)
		}
	}

	tokenIssuer, err := auth.NewTokenIssuer(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("token issuer initialized",
		"algorithm", "ES256",
		"key_id", tokenIssuer.KeyID(),
	)

	validate := validator.New()

	userRepo := user.NewRepository(mongo)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		return err
	}

	sessionStore := auth.NewRedisSessionStore(redis.Client, cfg.Session.TTL)

	authSvc := auth.NewService(userRepo, sessionStore, tokenIssuer, redis.Client)
	authHandler := auth.NewHandler(authSvc, validate, cfg.Session)
	userHandler := user.NewHandler(authSvc, validate)

	playerRepo := player.NewRepository(mongo)
	gameRepo := game.NewRepository(mongo)
	tournamentRepo := tournament.NewRepository(mongo)

	gameSvc := game.NewService(gameRepo, playerRepo, tournamentRepo)
	tournamentSvc := tournament.NewService(tournamentRepo, playerRepo)
	playerSvc := player.NewService(playerRepo, gameSvc, tournamentSvc)

	playerHandler := player.NewHandler(playerSvc, validate)
	gameHandler := game.NewHandler(gameSvc, validate)
	tournamentHandler := tournament.NewHandler(tournamentSvc, validate)

	contactSvc := contact.NewService(cfg.Contact)
	contactHandler := contact.NewHandler(contactSvc, validate)

	guardHandler := guard.NewHandler()

	healthHandler := health.NewHandler(mongo, redis)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		RedisStats: redis.PoolStats,
		RedisPing:  redis.Ping,
		MongoPing:  mongo.Ping,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.SessionLoader(authSvc, cfg.Session.CookieName))
	router.Use(middleware.BearerFallback(authSvc))
	router.Use(middleware.Logger)
	router.Use(middleware.RoleTieredLimiter(
		redis.Client,
		middleware.Tiers(cfg.RateLimit),
		middleware.AnonymousTier(cfg.RateLimit),
	))
	router.Use(middleware.SecurityHeaders)
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", tokenIssuer.JWKSHandler())

	router.Route("/v1", func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/logout", authHandler.Logout)
		r.Get("/auth/me", authHandler.Me)
		r.Post("/auth/password", authHandler.ChangePassword)

		r.Get("/guard/check", guardHandler.Check)
		r.Get("/guard/home", guardHandler.Home)

		r.Post("/contact", contactHandler.Submit)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Mount("/players", playerHandler.Routes())
			r.Mount("/games", gameHandler.Routes())
			r.Mount("/tournaments", tournamentHandler.Routes())
			r.Mount("/profile", playerHandler.ProfileRoutes())
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(guard.RequireAdminAccess)

			adminHandler.RegisterRoutes(r)

			r.Route("/users", func(r chi.Router) {
				r.Use(guard.RequireRole(auth.RoleAdmin))

				r.Get("/", userHandler.List)
				r.Post("/", userHandler.Create)
			})
		})
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := mongo.Close(shutdownCtx); err != nil {
		logger.Error("mongo close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
