package generator

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"github.com/xaenox/weather-bot/internal/models"
)

// DefaultErrorMessage is sent when a failure has no user-facing text.
const DefaultErrorMessage = "🛰 Das Wetter ist gerade auf Forschungsreise für dich. Probiere es in ein paar Minuten noch mal."

const (
	instructionsTemplate = `- Sende "@{{BOT_USER_NAME}} London" um eine Wochenvorhersage für einen Ort zu erhalten` + "\n" +
		`- Sende "@{{BOT_USER_NAME}} heute London" um das aktuelle Wetter für einen Ort zu erhalten`

	helpTemplate = "Du möchtest wissen, wie das Wetter ist?\n\n" + instructionsTemplate

	groupWelcomeTemplate = "Hallo zusammen, ich bin {{BOT_DISPLAY_NAME}}! 👋\n" +
		"Ich verrate euch, wie das Wetter wird.\n\n" + instructionsTemplate

	personalWelcomeTemplate = "Hallo {{USER_DISPLAY_NAME}}, ich bin {{BOT_DISPLAY_NAME}}! 👋\n" +
		"Ich verrate dir, wie das Wetter wird.\n\n" + instructionsTemplate

	currentHeaderTemplate = "Das Wetter heute in {{LOCATION}}:"

	currentTemplate = "{{ICON}} {{DESCRIPTION}} bei {{TEMP}} {{TEMP_UNIT}}\n" +
		"Fühlt sich an wie {{FELT_TEMP}} {{TEMP_UNIT}}\n" +
		"💨 {{WIND}}"

	dayPartsTemplate = "morgens: {{MORNING_TEMP}} {{TEMP_UNIT}}\n" +
		"mittags: {{DAY_TEMP}} {{TEMP_UNIT}}\n" +
		"abends: {{EVENING_TEMP}} {{TEMP_UNIT}}\n" +
		"nachts: {{NIGHT_TEMP}} {{TEMP_UNIT}}"

	forecastHeaderTemplate = "Hier ist das Wetter für die nächsten Tage in {{LOCATION}}:\n\n"

	dailyTemplate = "{{DATE}}\t {{ICON}}\t {{MIN_TEMP}} / {{MAX_TEMP}}{{TEMP_UNIT}}\t {{DESCRIPTION}}"
)

// WelcomeProperties names the participants of a welcome message.
type WelcomeProperties struct {
	BotUserName     string
	BotDisplayName  string
	UserDisplayName string
}

// MessageGenerator renders replies from templates. It performs no I/O and
// is safe for concurrent use.
type MessageGenerator struct {
	language language.Tag
	units    Units
}

func NewMessageGenerator(lang language.Tag, system models.UnitSystem) *MessageGenerator {
	return &MessageGenerator{
		language: lang,
		units:    LookupUnits(system),
	}
}

// GenerateError returns message, or the default error text if it is empty.
func (g *MessageGenerator) GenerateError(message string) string {
	if message == "" {
		return DefaultErrorMessage
	}
	return message
}

func (g *MessageGenerator) GenerateHelp(botUserName string) string {
	return render(helpTemplate, "{{BOT_USER_NAME}}", botUserName)
}

func (g *MessageGenerator) GenerateGroupWelcome(p WelcomeProperties) string {
	return render(groupWelcomeTemplate,
		"{{BOT_DISPLAY_NAME}}", p.BotDisplayName,
		"{{BOT_USER_NAME}}", p.BotUserName,
	)
}

func (g *MessageGenerator) GeneratePersonalWelcome(p WelcomeProperties) string {
	return render(personalWelcomeTemplate,
		"{{USER_DISPLAY_NAME}}", p.UserDisplayName,
		"{{BOT_DISPLAY_NAME}}", p.BotDisplayName,
		"{{BOT_USER_NAME}}", p.BotUserName,
	)
}

// GenerateCurrent renders today's weather: current conditions followed by the
// day-part temperatures of the first daily entry. Sections whose data is
// missing are left out.
func (g *MessageGenerator) GenerateCurrent(p models.MessageProperties) string {
	sections := []string{render(currentHeaderTemplate, "{{LOCATION}}", p.Location)}

	if c := p.Current; c != nil {
		sections = append(sections, render(currentTemplate,
			"{{ICON}}", WeatherIcon(c.Icon),
			"{{DESCRIPTION}}", c.Description,
			"{{TEMP}}", formatTemp(c.Temp),
			"{{FELT_TEMP}}", formatTemp(c.FeltTemp),
			"{{WIND}}", WindDescription(g.units.MetersPerSecond(c.WindSpeed)),
			"{{TEMP_UNIT}}", g.units.Temperature,
		))
	}

	if len(p.Daily) > 0 {
		d := p.Daily[0]
		sections = append(sections, render(dayPartsTemplate,
			"{{MORNING_TEMP}}", formatTemp(d.MorningTemp),
			"{{DAY_TEMP}}", formatTemp(d.DayTemp),
			"{{EVENING_TEMP}}", formatTemp(d.EveningTemp),
			"{{NIGHT_TEMP}}", formatTemp(d.NightTemp),
			"{{TEMP_UNIT}}", g.units.Temperature,
		))
	}

	return strings.Join(sections, "\n\n")
}

// GenerateForecast renders one line per daily entry beneath a location header.
func (g *MessageGenerator) GenerateForecast(p models.MessageProperties) string {
	lines := make([]string, 0, len(p.Daily))
	for _, d := range p.Daily {
		lines = append(lines, g.generateDailyForecast(d, p))
	}
	return render(forecastHeaderTemplate, "{{LOCATION}}", p.Location) + strings.Join(lines, "\n")
}

func (g *MessageGenerator) generateDailyForecast(d models.DailyForecast, p models.MessageProperties) string {
	return render(dailyTemplate,
		"{{DATE}}", FormatShortDate(d.Date, p.Timezone, g.language),
		"{{ICON}}", WeatherIcon(d.Icon),
		"{{MIN_TEMP}}", formatTemp(d.MinTemp),
		"{{MAX_TEMP}}", formatTemp(d.MaxTemp),
		"{{TEMP_UNIT}}", g.units.Temperature,
		"{{DESCRIPTION}}", d.Description,
	)
}

// render substitutes placeholders in a single pass, so substituted values
// are never expanded again.
func render(template string, oldnew ...string) string {
	return strings.NewReplacer(oldnew...).Replace(template)
}

func formatTemp(v float64) string {
	return strconv.Itoa(Round(v))
}
