package models

// Intent is the classified purpose of a chat utterance.
type Intent string

const (
	IntentNone            Intent = "none"
	IntentHelp            Intent = "help"
	IntentWeatherToday    Intent = "weather_today"
	IntentWeatherForecast Intent = "weather_forecast"
)

// Entities holds the values extracted from an utterance
type Entities struct {
	Location string `json:"location,omitempty"`
}

// ParsedMessage is the parser's result for a single inbound message
type ParsedMessage struct {
	Utterance string   `json:"utterance"`
	Intent    Intent   `json:"intent"`
	Entities  Entities `json:"entities"`
}

// Message is an inbound chat message as delivered by a chat gateway.
type Message struct {
	Text              string `json:"text"`
	ConversationToken string `json:"token"`
	SenderName        string `json:"sender_name,omitempty"`
}
