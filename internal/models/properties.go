package models

import "time"

// CurrentConditions describes the weather at the time of the request.
type CurrentConditions struct {
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Temp        float64 `json:"temp"`
	FeltTemp    float64 `json:"felt_temp"`
	WindSpeed   float64 `json:"wind_speed"` // m/s
}

// DailyForecast is one day of a multi-day forecast. Date is in Unix seconds.
type DailyForecast struct {
	Date        int64   `json:"date"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	MinTemp     float64 `json:"min_temp"`
	MaxTemp     float64 `json:"max_temp"`
	MorningTemp float64 `json:"morning_temp"`
	DayTemp     float64 `json:"day_temp"`
	EveningTemp float64 `json:"evening_temp"`
	NightTemp   float64 `json:"night_temp"`
}

// MessageProperties is the weather payload prepared for rendering a single reply.
// It is built per request and must not be retained afterwards.
type MessageProperties struct {
	Location string             `json:"location"`
	Current  *CurrentConditions `json:"current,omitempty"`
	Daily    []DailyForecast    `json:"daily,omitempty"`

	// Timezone of the location; dates are rendered in UTC when nil.
	Timezone *time.Location `json:"-"`
}
