package generator

import (
	"fmt"
	"math"

	"github.com/xaenox/weather-bot/internal/models"
)

// Units holds the display labels of a unit system.
type Units struct {
	Clouds      string
	Humidity    string
	Pressure    string
	Speed       string
	Temperature string
	Visibility  string

	// speedToMPS converts a wind speed in Speed units to metres per second.
	speedToMPS float64
}

const metersPerSecondPerMph = 0.44704

var unitTable = map[models.UnitSystem]Units{
	models.Imperial: {Clouds: "%", Humidity: "%", Pressure: "hPa", Speed: "mph", Temperature: "°F", Visibility: "m", speedToMPS: metersPerSecondPerMph},
	models.Metric:   {Clouds: "%", Humidity: "%", Pressure: "hPa", Speed: "m/s", Temperature: "°C", Visibility: "m", speedToMPS: 1},
	models.Standard: {Clouds: "%", Humidity: "%", Pressure: "hPa", Speed: "m/s", Temperature: "K", Visibility: "m", speedToMPS: 1},
}

// ParseUnitSystem validates a unit system name.
func ParseUnitSystem(s string) (models.UnitSystem, error) {
	system := models.UnitSystem(s)
	if _, ok := unitTable[system]; !ok {
		return "", fmt.Errorf("unknown unit system %q: must be one of metric, imperial, standard", s)
	}
	return system, nil
}

// LookupUnits returns the labels for system, falling back to metric.
func LookupUnits(system models.UnitSystem) Units {
	if u, ok := unitTable[system]; ok {
		return u
	}
	return unitTable[models.Metric]
}

// MetersPerSecond converts a wind speed reported in these units to m/s.
func (u Units) MetersPerSecond(speed float64) float64 {
	if u.speedToMPS == 0 {
		return speed
	}
	return speed * u.speedToMPS
}

// Round rounds half up, so -2.5 becomes -2 and 2.5 becomes 3.
func Round(v float64) int {
	return int(math.Floor(v + 0.5))
}
