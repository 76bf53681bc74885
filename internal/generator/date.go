package generator

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

type dateLocale struct {
	weekdays [7]string // indexed by time.Weekday
	format   func(weekday string, day int) string
}

var dateLocales = map[string]dateLocale{
	"de": {
		weekdays: [7]string{"So.", "Mo.", "Di.", "Mi.", "Do.", "Fr.", "Sa."},
		format: func(weekday string, day int) string {
			return fmt.Sprintf("%s, %d.", weekday, day)
		},
	},
	"en": {
		weekdays: [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
		format: func(weekday string, day int) string {
			return fmt.Sprintf("%s %d", weekday, day)
		},
	},
}

// FormatShortDate renders a Unix timestamp as short weekday and day of month
// (e.g. "Mi., 1.") in the given zone. Languages without a table use German.
func FormatShortDate(timestamp int64, loc *time.Location, tag language.Tag) string {
	if loc == nil {
		loc = time.UTC
	}
	base, _ := tag.Base()
	l, ok := dateLocales[base.String()]
	if !ok {
		l = dateLocales["de"]
	}

	t := time.Unix(timestamp, 0).In(loc)
	return l.format(l.weekdays[t.Weekday()], t.Day())
}
