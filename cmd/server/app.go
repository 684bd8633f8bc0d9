package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"doctrone-backend/internal/config"
	"doctrone-backend/internal/database"
	"doctrone-backend/internal/repository"
	"doctrone-backend/internal/services"
)

// app holds the process-wide clients. Everything is built once here and
// injected downwards.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	pool   *pgxpool.Pool
	redis  *database.RedisClients
	chat   *services.ChatService

	folders  *services.FolderService
	profiles *services.ProfileResolver

	closers []func() error
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	a := &app{cfg: cfg, logger: logger}

	client, closeClient, err := services.NewConversationClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("model client: %w", err)
	}
	a.closers = append(a.closers, closeClient)
	logger.Info("model client initialized", "provider", cfg.ModelProvider, "model", cfg.ModelName)

	composer := services.PromptComposer{DriveSafetyNotice: cfg.DriveSafetyNotice}

	if !cfg.ProfileEnabled() {
		a.chat = services.NewSimpleChatService(composer, client)
		return a, nil
	}

	a.pool, err = database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}
	logger.Info("postgres connected")

	var publisher services.TurnPublisher
	if cfg.RedisURL != "" {
		a.redis, err = database.NewRedisClients(cfg.RedisURL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("redis: %w", err)
		}
		publisher = services.NewRedisTurnPublisher(a.redis.Commands, logger)
		logger.Info("redis connected")
	}

	users := repository.NewUserRepo(a.pool)
	chats := repository.NewChatRepo(a.pool)
	a.profiles = services.NewProfileResolver(
		users,
		repository.NewPrescriptionRepo(a.pool),
		repository.NewDrugRepo(a.pool),
	)
	a.folders = services.NewFolderService(users, repository.NewFolderRepo(a.pool))
	a.chat = services.NewChatService(a.profiles, composer, client, services.NewRecorder(chats, publisher), chats, a.folders)
	return a, nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("close failed", "error", err)
		}
	}
	if a.redis != nil {
		a.redis.Close()
	}
	if a.pool != nil {
		a.pool.Close()
	}
}

// setupLogging installs the configured logger as the slog default.
func setupLogging(cfg *config.Config) (*slog.Logger, func() error) {
	logger, closeLog := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	slog.SetDefault(logger)
	return logger, closeLog
}
