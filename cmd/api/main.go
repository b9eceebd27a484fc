package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/veloura/atelier/internal/auth"
	"github.com/veloura/atelier/internal/config"
	"github.com/veloura/atelier/internal/database"
	"github.com/veloura/atelier/internal/handlers"
	middlewareCustom "github.com/veloura/atelier/internal/middleware"
	"github.com/veloura/atelier/internal/repositories"
	"github.com/veloura/atelier/internal/routes"
	"github.com/veloura/atelier/internal/services"
	"github.com/veloura/atelier/internal/storage"
	pkglogger "github.com/veloura/atelier/pkg/logger"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("configuration loaded", slog.String("env", cfg.Server.Env))

	db, err := database.NewConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	mediaStore, err := storage.NewMediaStore(&cfg.Media, logger)
	if err != nil {
		logger.Error("failed to initialize media store", slog.Any("error", err))
		os.Exit(1)
	}

	// Lockout limiter and session store: in-process by default, Redis when
	// configured so multiple instances share one view.
	limiterConfig := auth.LimiterConfig{
		MaxAttempts: cfg.Auth.MaxAttempts,
		Window:      cfg.Auth.LockoutWindow,
	}
	var limiter auth.AttemptLimiter
	var sessions auth.SessionStore
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		limiter = auth.NewRedisLimiter(redisClient, limiterConfig)
		sessions = auth.NewRedisSessionStore(redisClient, cfg.Auth.SessionTTL)
		logger.Info("using redis-backed limiter and session store", slog.String("addr", cfg.Redis.Addr))
	} else {
		limiter = auth.NewMemoryLimiter(limiterConfig)
		sessions = auth.NewMemorySessionStore(cfg.Auth.SessionTTL)
	}

	auditLogger := pkglogger.NewAuditLogger(logger)

	contentRepo := repositories.NewContentRepository(db)

	authService := services.NewAuthService(cfg.Auth.AdminPassword, limiter, sessions, logger, auditLogger)
	contentService := services.NewContentService(contentRepo, mediaStore, logger)

	cookieConfig := auth.CookieConfig{
		Secure: cfg.Server.Env == "production",
		MaxAge: int(cfg.Auth.SessionTTL.Seconds()),
	}
	authHandler := handlers.NewAuthHandler(authService, cookieConfig, logger)
	contentHandler := handlers.NewContentHandler(contentService, logger)

	corsConfig := middlewareCustom.DefaultCORSConfig()
	corsConfig.AllowedOrigins = cfg.Server.AllowedOrigins

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middlewareCustom.CanonicalHost(cfg.Server.CanonicalHost))
	router.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: cfg.Server.Env}))
	router.Use(middlewareCustom.CORS(corsConfig))
	router.Use(middlewareCustom.SecureLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	guardConfig := auth.GuardConfig{LoginPath: cfg.Auth.LoginPath}
	routes.RegisterRoutes(router, authHandler, contentHandler, sessions, guardConfig)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.HealthCheck(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy","database":"down"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","database":"up"}`))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}
