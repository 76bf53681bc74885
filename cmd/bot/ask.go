package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xaenox/weather-bot/internal/bot"
	"github.com/xaenox/weather-bot/internal/console"
	"github.com/xaenox/weather-bot/internal/observability"
	"github.com/xaenox/weather-bot/internal/storage"
	"github.com/xaenox/weather-bot/pkg/config"
)

var askCmd = &cobra.Command{
	Use:   `ask "<text>"`,
	Short: "Answer one message and print the reply",
	Long: `Runs a single message through the bot and prints what would be sent to
the chat. The bot handle @wetter is prepended when the text does not
mention it, so "ask heute London" and "ask @wetter heute London" are
equivalent.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.ValidateForAsk(); err != nil {
			return err
		}

		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		metrics := observability.NewMetrics()
		units, _ := cfg.UnitSystem()
		lang, _ := cfg.LanguageTag()

		gateway := console.New(cmd.OutOrStdout())
		b := bot.New(bot.Config{Language: lang, Units: units}, gateway, newProvider(cfg, metrics, logger),
			storage.NewMemoryStorage(nil), metrics, logger)

		text := askText(args)
		logger.Debug("Asking", zap.String("text", text))
		b.HandleMessage(cmd.Context(), console.Message(text))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func askText(args []string) string {
	text := strings.Join(args, " ")
	handle := "@" + console.BotUserName
	if strings.Contains(text, handle) {
		return text
	}
	return handle + " " + text
}
