package generator

// FallbackIcon is rendered for icon codes missing from the table.
const FallbackIcon = "🌈"

// weatherIcons maps OpenWeather icon codes to emoji. The "d"/"n" suffix
// selects the day or night variant.
var weatherIcons = map[string]string{
	// clear sky
	"01d": "☀️",
	"01n": "🌌",
	// few clouds
	"02d": "⛅",
	"02n": "☁️",
	// scattered clouds
	"03d": "☁️",
	"03n": "☁️",
	// broken clouds
	"04d": "☁️",
	"04n": "☁️",
	// shower rain
	"09d": "🌧️",
	"09n": "🌧️",
	// rain
	"10d": "🌦️",
	"10n": "🌦️",
	// thunderstorm
	"11d": "🌩️",
	"11n": "🌩️",
	// snow
	"13d": "❄️",
	"13n": "❄️",
	// mist
	"50d": "🌫",
	"50n": "🌫",
}

// WeatherIcon returns the emoji for a provider icon code.
func WeatherIcon(code string) string {
	if icon, ok := weatherIcons[code]; ok {
		return icon
	}
	return FallbackIcon
}
