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
	"go.uber.org/zap"

	"github.com/xaenox/weather-bot/internal/bot"
	"github.com/xaenox/weather-bot/internal/observability"
	"github.com/xaenox/weather-bot/internal/server"
	"github.com/xaenox/weather-bot/internal/storage"
	"github.com/xaenox/weather-bot/internal/telegram"
	"github.com/xaenox/weather-bot/pkg/config"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Telegram bot and the health server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return serve(ctx, cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.RunE = serveCmd.RunE
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	metrics := observability.NewMetrics()

	var store storage.ConversationStore
	if cfg.Database.UseInMemory {
		logger.Info("Using in-memory storage")
		store = storage.NewMemoryStorage(nil)
	} else {
		logger.Info("Using PostgreSQL storage")
		store, err = storage.NewPostgresStorage(ctx, storageConfig(cfg), logger)
		if err != nil {
			return fmt.Errorf("initialize storage: %w", err)
		}
	}
	defer store.Close()

	if known, err := store.List(ctx); err != nil {
		logger.Warn("Failed to list known conversations", zap.Error(err))
	} else {
		logger.Info("Conversation registry loaded", zap.Int("conversations", len(known)))
	}

	gateway, err := telegram.New(cfg.Telegram.Token, cfg.Telegram.PollTimeout, logger)
	if err != nil {
		return err
	}

	units, _ := cfg.UnitSystem()
	lang, _ := cfg.LanguageTag()

	b := bot.New(bot.Config{Language: lang, Units: units}, gateway, newProvider(cfg, metrics, logger), store, metrics, logger)

	srv := server.New(cfg.HTTP.Addr, store, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", zap.Error(err))
		}
	}()

	logger.Info("Bot started",
		zap.String("bot", gateway.Self().UserName),
		zap.String("units", string(units)),
		zap.String("language", lang.String()))

	runErr := gateway.Run(ctx, b)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}

	logger.Info("Bot stopped")
	return runErr
}
