package weather

import (
	"regexp"
	"strings"
)

// DefaultLocation is used when an utterance names no place.
const DefaultLocation = "Berlin"

// locationPatterns are tried in order against the lowercased utterance. The
// captured group stops before trailing time words and punctuation so "in
// Berlin tomorrow" yields just "berlin".
var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bin\s+([a-z][a-z\s,'-]*?)(?:\s+(?:now|today|tonight|tomorrow|this|next|in\s+\d+\s+hours?)\b|[?!.,]|$)`),
	regexp.MustCompile(`\b(?:for|at)\s+([a-z][a-z\s,'-]*?)(?:\s+(?:now|today|tonight|tomorrow|this|next)\b|[?!.,]|$)`),
	regexp.MustCompile(`\bweather\s+([a-z][a-z\s,'-]*?)(?:[?!.,]|$)`),
}

// locationStopwords are tokens that can never start or end a place name.
var locationStopwords = map[string]bool{
	"the": true, "a": true, "an": true, "is": true, "it": true,
	"weather": true, "forecast": true, "like": true, "going": true,
	"to": true, "be": true, "rain": true, "raining": true, "snow": true,
	"snowing": true, "there": true, "here": true, "what": true,
	"whats": true, "how": true, "will": true, "hour": true, "hours": true,
	"morning": true, "afternoon": true, "evening": true, "night": true,
	"tomorrow": true, "today": true, "tonight": true, "now": true,
}

// ExtractLocation pulls a place name out of an utterance. Preposition patterns
// are tried first, then a capitalized-token fallback, then DefaultLocation.
func ExtractLocation(text string) string {
	lower := strings.ToLower(text)

	for _, pattern := range locationPatterns {
		match := pattern.FindStringSubmatch(lower)
		if match == nil {
			continue
		}
		if candidate := cleanLocation(match[1]); candidate != "" {
			return candidate
		}
	}

	// Fallback: any capitalized mid-sentence token is probably a place name.
	words := strings.Fields(text)
	for i, word := range words {
		trimmed := strings.Trim(word, "?!.,")
		if i == 0 || len(trimmed) <= 2 {
			continue
		}
		if trimmed[0] >= 'A' && trimmed[0] <= 'Z' && !locationStopwords[strings.ToLower(trimmed)] {
			return trimmed
		}
	}

	return DefaultLocation
}

// cleanLocation strips stopwords from both ends of a captured phrase and
// title-cases what remains. Returns "" when nothing survives.
func cleanLocation(raw string) string {
	words := strings.Fields(strings.Trim(raw, " ,'-"))

	for len(words) > 0 && locationStopwords[words[0]] {
		words = words[1:]
	}
	for len(words) > 0 && locationStopwords[words[len(words)-1]] {
		words = words[:len(words)-1]
	}
	if len(words) == 0 {
		return ""
	}

	for i, word := range words {
		words[i] = titleCase(word)
	}
	return strings.Join(words, " ")
}

func titleCase(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}
