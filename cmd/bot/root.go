package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xaenox/weather-bot/internal/observability"
	"github.com/xaenox/weather-bot/internal/storage"
	"github.com/xaenox/weather-bot/internal/weather"
	"github.com/xaenox/weather-bot/pkg/config"
)

var (
	cfgFile string
	envFile string
)

var rootCmd = &cobra.Command{
	Use:   "weather-bot",
	Short: "Chat bot that answers weather questions in German",
	Long: `weather-bot listens on Telegram for messages mentioning it, such as
"@wetter London" or "@wetter heute in Berlin", and replies with the
current weather or a multi-day forecast from OpenWeather.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with secrets")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return logger, nil
}

// newProvider builds the OpenWeather client behind a rate limiter, with
// geocoding results cached in front so cache hits cost no request budget.
func newProvider(cfg *config.Config, metrics *observability.Metrics, logger *zap.Logger) weather.Provider {
	client := weather.NewClient(weather.ClientConfig{
		APIKey:       cfg.OpenWeather.APIKey,
		OneCallURL:   cfg.OpenWeather.OneCallURL,
		GeocodingURL: cfg.OpenWeather.GeocodingURL,
		Timeout:      cfg.OpenWeather.Timeout,
	}, metrics, logger)

	limited := weather.NewRateLimitedProvider(client, cfg.OpenWeather.RateLimit, cfg.OpenWeather.Burst)
	if cfg.OpenWeather.CacheSize <= 0 {
		return limited
	}
	return weather.NewCachedGeocoder(limited, cfg.OpenWeather.CacheSize, metrics)
}

func storageConfig(cfg *config.Config) storage.DatabaseConfig {
	return storage.DatabaseConfig{
		Host:        cfg.Database.Host,
		Port:        cfg.Database.Port,
		User:        cfg.Database.User,
		Password:    cfg.Database.Password,
		DBName:      cfg.Database.DBName,
		SSLMode:     cfg.Database.SSLMode,
		UseInMemory: cfg.Database.UseInMemory,
	}
}
