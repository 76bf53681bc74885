package parser

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/xaenox/weather-bot/internal/models"
)

var (
	helpPattern  = regexp.MustCompile(`(?i)^hilfe\b`)
	todayPattern = regexp.MustCompile(`(?i)\bheute\b(?:\s+in\b)?`)
	inPrefix     = regexp.MustCompile(`(?i)^in\b`)
)

// rule classifies a cleaned utterance. Rules are evaluated in order and the
// first one that matches decides the intent.
type rule func(utterance string) (models.Intent, string, bool)

// MessageParser extracts intent and entities from messages addressed to the bot.
type MessageParser struct {
	botHandle string
	rules     []rule
}

func NewMessageParser(botHandle string) *MessageParser {
	return &MessageParser{
		botHandle: botHandle,
		rules: []rule{
			matchHelp,
			matchToday,
			matchForecast,
		},
	}
}

// Parse classifies the raw message text. Text that does not mention the bot
// handle yields IntentNone. A weather intent never carries an empty location;
// such utterances resolve to IntentHelp instead.
func (p *MessageParser) Parse(text string) models.ParsedMessage {
	if p.botHandle == "" || !strings.Contains(text, p.botHandle) {
		return models.ParsedMessage{Utterance: text, Intent: models.IntentNone}
	}

	utterance := strings.TrimSpace(strings.Replace(text, p.botHandle, "", 1))
	help := models.ParsedMessage{Utterance: utterance, Intent: models.IntentHelp}

	for _, r := range p.rules {
		intent, location, ok := r(utterance)
		if !ok {
			continue
		}
		if intent == models.IntentHelp || location == "" {
			return help
		}
		return models.ParsedMessage{
			Utterance: utterance,
			Intent:    intent,
			Entities:  models.Entities{Location: location},
		}
	}

	return help
}

func matchHelp(utterance string) (models.Intent, string, bool) {
	if utterance == "" || helpPattern.MatchString(utterance) {
		return models.IntentHelp, "", true
	}
	return "", "", false
}

// matchToday looks for the standalone word "heute", optionally followed by
// "in". Adjacent punctuation does not hide the word ("heute, Berlin"). The
// location is what follows the marker, or what precedes it when nothing
// follows ("London heute?").
func matchToday(utterance string) (models.Intent, string, bool) {
	loc := todayPattern.FindStringIndex(utterance)
	if loc == nil {
		return "", "", false
	}

	location := stripIn(utterance[loc[1]:])
	if location == "" {
		location = stripIn(utterance[:loc[0]])
	}
	return models.IntentWeatherToday, location, true
}

func matchForecast(utterance string) (models.Intent, string, bool) {
	return models.IntentWeatherForecast, stripIn(utterance), true
}

// stripIn trims surrounding spaces and punctuation and drops a leading "in".
func stripIn(s string) string {
	s = trimLocation(s)
	return trimLocation(inPrefix.ReplaceAllString(s, ""))
}

// trailingPunct excludes closing brackets so names like "Frankfurt (Oder)"
// survive.
const trailingPunct = `.,;:!?"'(“”„`

func trimLocation(s string) string {
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})
	return strings.TrimRightFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(trailingPunct, r)
	})
}
