package weather

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractLocation(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"What's the weather in Paris?", "Paris"},
		{"What's the weather in Berlin now?", "Berlin"},
		{"Will it rain in New York tomorrow?", "New York"},
		{"How is the weather in San Francisco this evening?", "San Francisco"},
		{"weather in tokyo", "Tokyo"},
		{"What's the weather like?", DefaultLocation},
		{"Tell me the forecast", DefaultLocation},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, ExtractLocation(tc.text), "text: %q", tc.text)
	}
}

func TestExtractLocationCapitalizedFallback(t *testing.T) {
	require.Equal(t, "Hamburg", ExtractLocation("Is Hamburg sunny today?"))
}

func TestExtractLocationStripsTimeWords(t *testing.T) {
	require.Equal(t, "Madrid", ExtractLocation("weather in Madrid tomorrow morning"))
	require.Equal(t, "Oslo", ExtractLocation("weather in Oslo in 3 hours"))
}
