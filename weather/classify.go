package weather

import (
	"regexp"
	"strings"
)

// weatherKeywords are single tokens that mark an utterance as weather-related.
var weatherKeywords = []string{
	"weather", "temperature", "forecast", "rain", "raining", "snow",
	"snowing", "sunny", "cloudy", "wind", "windy", "humid", "humidity",
	"storm", "stormy", "thunder", "cold", "hot", "warm", "freezing",
	"degrees", "celsius", "fahrenheit", "drizzle", "hail", "sleet",
	"fog", "foggy", "mist", "precipitation", "umbrella", "°c", "°f",
}

// weatherPatterns catch phrasings that carry no bare keyword, like
// "how is it outside".
var weatherPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bhow\s+(?:is|was|will)\b.*\boutside\b`),
	regexp.MustCompile(`\bwhat(?:'s|\s+is)\s+it\s+like\s+(?:outside|out)\b`),
	regexp.MustCompile(`\bdo\s+i\s+need\s+(?:a\s+)?(?:jacket|coat|umbrella)\b`),
	regexp.MustCompile(`\bshould\s+i\s+(?:bring|take|wear)\b.*\b(?:jacket|coat|umbrella)\b`),
}

// rainDurationPatterns catch explicit "how long until the rain ends"
// phrasings.
var rainDurationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bwhen\s+(?:will|does|is)\b.*\brain\b`),
	regexp.MustCompile(`\bhow\s+long\b.*\brain`),
	regexp.MustCompile(`\brain\b.*\b(?:stop|end|over|last|clear)`),
	regexp.MustCompile(`\b(?:stop|end)\s+raining\b`),
	regexp.MustCompile(`\bstill\s+(?:be\s+)?raining\b`),
}

// rainTerms are the precipitation words that make a duration question a rain
// question.
var rainTerms = []string{
	"rain", "raining", "drizzle", "drizzling", "shower", "showers",
	"precipitation",
}

var rainDurationCues = []string{
	"when", "how long", "stop", "stops", "end", "ends", "continue",
	"continues", "still", "last", "lasts", "until", "till", "clear up",
	"let up",
}

// IsWeatherQuery reports whether the utterance asks about weather. Empty and
// whitespace-only input is never a weather query.
func IsWeatherQuery(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return false
	}

	for _, keyword := range weatherKeywords {
		if containsWord(lower, keyword) {
			return true
		}
	}
	for _, pattern := range weatherPatterns {
		if pattern.MatchString(lower) {
			return true
		}
	}
	return false
}

// IsRainDurationQuery reports whether the utterance asks how long rain will
// last, as opposed to merely mentioning rain. It requires a rain term plus a
// duration cue, or one of the explicit duration patterns.
func IsRainDurationQuery(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return false
	}

	for _, pattern := range rainDurationPatterns {
		if pattern.MatchString(lower) {
			return true
		}
	}

	hasRainTerm := false
	for _, term := range rainTerms {
		if containsWord(lower, term) {
			hasRainTerm = true
			break
		}
	}
	if !hasRainTerm {
		return false
	}
	// Cues match on word boundaries so "end" never fires inside "weekend".
	for _, cue := range rainDurationCues {
		if containsWord(lower, cue) {
			return true
		}
	}
	return false
}

// containsWord matches a keyword on word boundaries so "rain" does not fire
// on "train" or "brain".
func containsWord(text, word string) bool {
	idx := 0
	for {
		pos := strings.Index(text[idx:], word)
		if pos < 0 {
			return false
		}
		start := idx + pos
		end := start + len(word)
		beforeOK := start == 0 || !isWordChar(text[start-1])
		afterOK := end == len(text) || !isWordChar(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
