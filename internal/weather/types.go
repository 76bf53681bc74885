package weather

import (
	"context"
	"fmt"

	"github.com/xaenox/weather-bot/internal/models"
)

// Provider is the weather data source consumed by the bot.
type Provider interface {
	// GetCoordinates resolves a place name. An empty result means the place is unknown.
	GetCoordinates(ctx context.Context, name string) ([]Location, error)

	// GetCurrentWeatherData fetches current conditions and the daily forecast.
	GetCurrentWeatherData(ctx context.Context, lat, lon float64, units models.UnitSystem, lang string) (*OneCallResponse, error)
}

// Location is a direct geocoding match.
type Location struct {
	Name       string            `json:"name"`
	LocalNames map[string]string `json:"local_names,omitempty"`
	Lat        float64           `json:"lat"`
	Lon        float64           `json:"lon"`
	Country    string            `json:"country"`
	State      string            `json:"state,omitempty"`
}

// Condition is a weather condition entry; Icon is the provider icon code.
type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type CurrentWeather struct {
	Dt        int64       `json:"dt"`
	Sunrise   int64       `json:"sunrise"`
	Sunset    int64       `json:"sunset"`
	Temp      float64     `json:"temp"`
	FeelsLike float64     `json:"feels_like"`
	Pressure  float64     `json:"pressure"`
	Humidity  float64     `json:"humidity"`
	Clouds    float64     `json:"clouds"`
	WindSpeed float64     `json:"wind_speed"`
	WindDeg   int         `json:"wind_deg"`
	Weather   []Condition `json:"weather"`
}

type DailyTemperature struct {
	Day   float64 `json:"day"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Night float64 `json:"night"`
	Eve   float64 `json:"eve"`
	Morn  float64 `json:"morn"`
}

type DailyWeather struct {
	Dt        int64            `json:"dt"`
	Sunrise   int64            `json:"sunrise"`
	Sunset    int64            `json:"sunset"`
	Temp      DailyTemperature `json:"temp"`
	Pressure  float64          `json:"pressure"`
	Humidity  float64          `json:"humidity"`
	WindSpeed float64          `json:"wind_speed"`
	WindDeg   int              `json:"wind_deg"`
	Weather   []Condition      `json:"weather"`
	Clouds    float64          `json:"clouds"`
	Pop       float64          `json:"pop"`
}

// OneCallResponse is the subset of the One Call API response used by the bot.
type OneCallResponse struct {
	Lat            float64        `json:"lat"`
	Lon            float64        `json:"lon"`
	Timezone       string         `json:"timezone"`
	TimezoneOffset int            `json:"timezone_offset"`
	Current        CurrentWeather `json:"current"`
	Daily          []DailyWeather `json:"daily"`
}

// LocationNotFoundError reports a place name without geocoding matches. Its
// message is meant for the chat user.
type LocationNotFoundError struct {
	Location string
}

func (e *LocationNotFoundError) Error() string {
	return fmt.Sprintf("Ich kenne \"%s\" leider nicht. 😟 Hast du dich vielleicht vertippt?\n"+
		"Ansonsten probiere es mal mit dem nächstgrößeren Ort.", e.Location)
}

// APIError is returned for non-200 provider responses.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("openweather API error: status %d: %s", e.StatusCode, e.Body)
}
