package bot

import (
	"time"
	_ "time/tzdata"

	"github.com/xaenox/weather-bot/internal/generator"
	"github.com/xaenox/weather-bot/internal/models"
	"github.com/xaenox/weather-bot/internal/weather"
)

// toMessageProperties maps a provider response into render input. Temperatures
// are rounded here so the payload already carries display values.
func toMessageProperties(match weather.Location, data *weather.OneCallResponse) *models.MessageProperties {
	props := &models.MessageProperties{
		Location: displayName(match),
		Timezone: loadTimezone(data.Timezone),
		Current: &models.CurrentConditions{
			Temp:      rounded(data.Current.Temp),
			FeltTemp:  rounded(data.Current.FeelsLike),
			WindSpeed: data.Current.WindSpeed,
		},
	}
	props.Current.Description, props.Current.Icon = firstCondition(data.Current.Weather)

	props.Daily = make([]models.DailyForecast, 0, len(data.Daily))
	for _, d := range data.Daily {
		day := models.DailyForecast{
			Date:        d.Dt,
			MinTemp:     rounded(d.Temp.Min),
			MaxTemp:     rounded(d.Temp.Max),
			MorningTemp: rounded(d.Temp.Morn),
			DayTemp:     rounded(d.Temp.Day),
			EveningTemp: rounded(d.Temp.Eve),
			NightTemp:   rounded(d.Temp.Night),
		}
		day.Description, day.Icon = firstCondition(d.Weather)
		props.Daily = append(props.Daily, day)
	}

	return props
}

func displayName(l weather.Location) string {
	if l.Country == "" {
		return l.Name
	}
	return l.Name + ", " + l.Country
}

func firstCondition(conditions []weather.Condition) (description, icon string) {
	if len(conditions) == 0 {
		return "", ""
	}
	return conditions[0].Description, conditions[0].Icon
}

func loadTimezone(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func rounded(v float64) float64 {
	return float64(generator.Round(v))
}
