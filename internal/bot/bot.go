package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/xaenox/weather-bot/internal/generator"
	"github.com/xaenox/weather-bot/internal/models"
	"github.com/xaenox/weather-bot/internal/observability"
	"github.com/xaenox/weather-bot/internal/parser"
	"github.com/xaenox/weather-bot/internal/storage"
	"github.com/xaenox/weather-bot/internal/weather"
)

const (
	errKindLocationNotFound = "location_not_found"
	errKindProvider         = "provider"
)

// Config holds the reply settings of the bot.
type Config struct {
	Language language.Tag
	Units    models.UnitSystem
}

type Bot struct {
	gateway   ChatGateway
	provider  WeatherProvider
	store     storage.ConversationStore
	parser    *parser.MessageParser
	generator *generator.MessageGenerator
	units     models.UnitSystem
	language  string
	metrics   *observability.Metrics
	logger    *zap.Logger
}

func New(cfg Config, gateway ChatGateway, provider WeatherProvider, store storage.ConversationStore,
	metrics *observability.Metrics, logger *zap.Logger) *Bot {
	if cfg.Language == language.Und {
		cfg.Language = language.German
	}
	if cfg.Units == "" {
		cfg.Units = models.Metric
	}

	base, _ := cfg.Language.Base()

	return &Bot{
		gateway:   gateway,
		provider:  provider,
		store:     store,
		parser:    parser.NewMessageParser(handle(gateway.Self().UserName)),
		generator: generator.NewMessageGenerator(cfg.Language, cfg.Units),
		units:     cfg.Units,
		language:  base.String(),
		metrics:   metrics,
		logger:    logger,
	}
}

func handle(userName string) string {
	if userName == "" {
		return ""
	}
	return "@" + userName
}

// HandleMessage processes one inbound chat message. Messages not addressed to
// the bot are ignored; every other message gets exactly one reply.
func (b *Bot) HandleMessage(ctx context.Context, message models.Message) {
	parsed := b.parser.Parse(message.Text)
	b.metrics.MessagesReceived.WithLabelValues(string(parsed.Intent)).Inc()

	if parsed.Intent == models.IntentNone {
		return
	}

	requestID := uuid.New().String()
	logger := b.logger.With(
		zap.String("request_id", requestID),
		zap.String("conversation", message.ConversationToken),
		zap.String("intent", string(parsed.Intent)))

	logger.Debug("Handling message", zap.String("utterance", parsed.Utterance))

	var reply string
	switch parsed.Intent {
	case models.IntentHelp:
		reply = b.generator.GenerateHelp(b.gateway.Self().UserName)

	case models.IntentWeatherToday:
		props, err := b.resolveWeather(ctx, parsed.Entities.Location)
		if err != nil {
			reply = b.handleResolveError(logger, parsed.Entities.Location, err)
			break
		}
		reply = b.generator.GenerateCurrent(*props)

	default:
		props, err := b.resolveWeather(ctx, parsed.Entities.Location)
		if err != nil {
			reply = b.handleResolveError(logger, parsed.Entities.Location, err)
			break
		}
		reply = b.generator.GenerateForecast(*props)
	}

	b.sendMessage(ctx, logger, message.ConversationToken, reply)
}

// resolveWeather geocodes the location and fetches weather for the first match.
func (b *Bot) resolveWeather(ctx context.Context, location string) (*models.MessageProperties, error) {
	locations, err := b.provider.GetCoordinates(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", location, err)
	}
	if len(locations) == 0 {
		return nil, &weather.LocationNotFoundError{Location: location}
	}

	match := locations[0]
	data, err := b.provider.GetCurrentWeatherData(ctx, match.Lat, match.Lon, b.units, b.language)
	if err != nil {
		return nil, fmt.Errorf("fetch weather for %q: %w", location, err)
	}

	return toMessageProperties(match, data), nil
}

func (b *Bot) handleResolveError(logger *zap.Logger, location string, err error) string {
	var notFound *weather.LocationNotFoundError
	if errors.As(err, &notFound) {
		b.metrics.HandlingErrors.WithLabelValues(errKindLocationNotFound).Inc()
		logger.Info("Unknown location", zap.String("location", location))
		return b.generator.GenerateError(notFound.Error())
	}

	b.metrics.HandlingErrors.WithLabelValues(errKindProvider).Inc()
	logger.Error("Failed to resolve weather",
		zap.Error(err),
		zap.String("location", location))
	return b.generator.GenerateError("")
}

func (b *Bot) sendMessage(ctx context.Context, logger *zap.Logger, conversationToken, text string) {
	if err := b.gateway.SendText(ctx, text, conversationToken); err != nil {
		b.metrics.ReplyFailures.Inc()
		logger.Error("Failed to send message",
			zap.Error(err),
			zap.String("conversation", conversationToken))
		return
	}
	b.metrics.RepliesSent.Inc()
}
