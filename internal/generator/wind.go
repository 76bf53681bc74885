package generator

// windBucket upper bounds are inclusive and in metres per second.
type windBucket struct {
	maxSpeed    float64
	description string
}

var windBuckets = []windBucket{
	{1.5, "Leiser Zug"},
	{3.5, "Leichte Brise"},
	{5.5, "Schwache Brise"},
	{8.0, "Mäßige Brise"},
	{11.0, "Frische Brise"},
}

const strongWind = "Starker Wind"

// WindDescription returns a textual description of a wind speed in m/s.
func WindDescription(speed float64) string {
	for _, b := range windBuckets {
		if speed <= b.maxSpeed {
			return b.description
		}
	}
	return strongWind
}
