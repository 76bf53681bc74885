package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/xaenox/weather-bot/internal/generator"
	"github.com/xaenox/weather-bot/internal/models"
)

// ErrInvalidConfig is wrapped by every validation error.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Telegram    TelegramConfig    `mapstructure:"telegram"`
	OpenWeather OpenWeatherConfig `mapstructure:"openweather"`
	Bot         BotConfig         `mapstructure:"bot"`
	Database    DatabaseConfig    `mapstructure:"database"`
	HTTP        HTTPConfig        `mapstructure:"http"`
	Log         LogConfig         `mapstructure:"log"`
}

type TelegramConfig struct {
	Token       string `mapstructure:"token"`
	PollTimeout int    `mapstructure:"poll_timeout"`
}

type OpenWeatherConfig struct {
	APIKey       string        `mapstructure:"api_key"`
	OneCallURL   string        `mapstructure:"onecall_url"`
	GeocodingURL string        `mapstructure:"geocoding_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	RateLimit    float64       `mapstructure:"rate_limit"`
	Burst        int           `mapstructure:"burst"`
	CacheSize    int           `mapstructure:"cache_size"`
}

type BotConfig struct {
	Language string `mapstructure:"language"`
	Units    string `mapstructure:"units"`
}

type DatabaseConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	User        string `mapstructure:"user"`
	Password    string `mapstructure:"password"`
	DBName      string `mapstructure:"dbname"`
	SSLMode     string `mapstructure:"sslmode"`
	UseInMemory bool   `mapstructure:"use_in_memory"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

func parseDatabaseURL(dbURL string) (DatabaseConfig, error) {
	u, err := url.Parse(dbURL)
	if err != nil {
		return DatabaseConfig{}, err
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return DatabaseConfig{}, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	password, _ := u.User.Password()
	port := 5432 // default PostgreSQL port
	if u.Port() != "" {
		if _, err := fmt.Sscanf(u.Port(), "%d", &port); err != nil {
			return DatabaseConfig{}, fmt.Errorf("invalid port %q: %w", u.Port(), err)
		}
	}

	sslMode := u.Query().Get("sslmode")
	if sslMode == "" {
		sslMode = "disable"
	}

	return DatabaseConfig{
		Host:     u.Hostname(),
		Port:     port,
		User:     u.User.Username(),
		Password: password,
		DBName:   strings.TrimPrefix(u.Path, "/"),
		SSLMode:  sslMode,
	}, nil
}

// LoadConfig reads the YAML file at path if it exists, then applies
// environment overrides.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Empty defaults register the keys so AutomaticEnv can fill them.
	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.poll_timeout", 60)
	v.SetDefault("openweather.api_key", "")
	v.SetDefault("openweather.onecall_url", "")
	v.SetDefault("openweather.geocoding_url", "")
	v.SetDefault("openweather.timeout", "10s")
	v.SetDefault("openweather.rate_limit", 1.0)
	v.SetDefault("openweather.burst", 5)
	v.SetDefault("openweather.cache_size", 256)
	v.SetDefault("bot.language", "de")
	v.SetDefault("bot.units", string(models.Metric))
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "weather_bot")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.use_in_memory", true)
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat config %s: %w", path, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if dbURL := v.GetString("DATABASE_URL"); dbURL != "" {
		dbConfig, err := parseDatabaseURL(dbURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse DATABASE_URL: %w", err)
		}
		config.Database = dbConfig
	}

	if token := v.GetString("TELEGRAM_TOKEN"); token != "" {
		config.Telegram.Token = token
	}

	if apiKey := v.GetString("OPEN_WEATHER_API_KEY"); apiKey != "" {
		config.OpenWeather.APIKey = apiKey
	}

	return &config, nil
}

// Validate checks the settings needed to run the chat bot.
func (c *Config) Validate() error {
	if c.Telegram.Token == "" {
		return fmt.Errorf("%w: telegram.token is required", ErrInvalidConfig)
	}
	return c.ValidateForAsk()
}

// ValidateForAsk checks the settings needed to answer a single utterance
// without a chat transport.
func (c *Config) ValidateForAsk() error {
	if c.OpenWeather.APIKey == "" {
		return fmt.Errorf("%w: openweather.api_key is required", ErrInvalidConfig)
	}
	if _, err := c.UnitSystem(); err != nil {
		return fmt.Errorf("%w: bot.units: %v", ErrInvalidConfig, err)
	}
	if _, err := c.LanguageTag(); err != nil {
		return fmt.Errorf("%w: bot.language: %v", ErrInvalidConfig, err)
	}
	if c.OpenWeather.RateLimit <= 0 || c.OpenWeather.Burst <= 0 {
		return fmt.Errorf("%w: openweather.rate_limit and openweather.burst must be positive", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) UnitSystem() (models.UnitSystem, error) {
	return generator.ParseUnitSystem(c.Bot.Units)
}

func (c *Config) LanguageTag() (language.Tag, error) {
	return language.Parse(c.Bot.Language)
}
