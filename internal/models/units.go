package models

// UnitSystem is the unit system requested from the weather provider.
type UnitSystem string

const (
	Metric   UnitSystem = "metric"
	Imperial UnitSystem = "imperial"
	Standard UnitSystem = "standard"
)
