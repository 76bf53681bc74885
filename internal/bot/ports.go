package bot

import (
	"context"

	"github.com/xaenox/weather-bot/internal/models"
	"github.com/xaenox/weather-bot/internal/weather"
)

// ChatGateway is the chat transport the bot replies through.
type ChatGateway interface {
	SendText(ctx context.Context, text, conversationToken string) error
	// Self describes the bot account on the transport.
	Self() models.UserInfo
}

// WeatherProvider resolves place names and fetches weather data.
type WeatherProvider = weather.Provider
