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

	"github.com/spf13/cobra"

	"doctrone-backend/internal/config"
	"doctrone-backend/internal/database"
	"doctrone-backend/internal/handlers"
	"doctrone-backend/internal/middleware"
	"doctrone-backend/internal/router"
	"doctrone-backend/internal/websocket"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	logger, closeLog := setupLogging(cfg)
	defer closeLog()
	logger.Info("starting doctrone backend", "env", cfg.Env, "variant", cfg.ChatVariant)

	// ──── Step 2: Connect Clients ────
	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	// ──── Step 3: Run Database Migrations ────
	if a.pool != nil {
		if err := database.RunMigrations(a.pool, cfg.MigrationsDir, logger); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		logger.Info("database migrations applied")
	}

	// ──── Step 4: Optional Auth, Rate Limiting, WebSocket Hub ────
	var jwtAuth *middleware.JWTAuth
	if cfg.JWTSecret != "" {
		jwtAuth = middleware.NewJWTAuth(cfg.JWTSecret)
	}

	var limiter *middleware.RateLimiter
	if a.redis != nil {
		limiter = middleware.NewRedisRateLimiter(a.redis.Commands, cfg.RateLimitPerMin, time.Minute, logger)
	} else {
		limiter = middleware.NewRateLimiter(cfg.RateLimitPerMin, time.Minute)
	}
	defer limiter.Close()

	var wsHub *websocket.Hub
	if a.redis != nil && jwtAuth != nil {
		wsHub = websocket.NewHub(a.redis.PubSub, jwtAuth, cfg.FrontendURL, logger)
		defer wsHub.Close()
		logger.Info("websocket hub started")
	}

	var records *handlers.RecordsHandler
	if a.folders != nil {
		records = handlers.NewRecordsHandler(a.folders, a.profiles)
	}

	// ──── Step 5: Start HTTP Server ────
	r := router.New(
		cfg.ChatVariant,
		handlers.NewChatHandler(a.chat),
		records,
		jwtAuth,
		limiter,
		wsHub,
		cfg.FrontendURL,
		logger,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("doctrone backend ready", "addr", "http://localhost:"+cfg.Port,
			"auth", jwtAuth != nil, "websocket", wsHub != nil)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
