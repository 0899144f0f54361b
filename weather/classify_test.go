package weather

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsWeatherQuery(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"", false},
		{"   ", false},
		{"What's the weather in Paris?", true},
		{"Hello, how are you?", false},
		{"Will it rain tomorrow?", true},
		{"Is it sunny outside?", true},
		{"How is it outside today?", true},
		{"Do I need an umbrella?", true},
		{"I took the train to work", false},
		{"Tell me a joke", false},
		{"What's the temperature in Tokyo?", true},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, IsWeatherQuery(tc.text), "text: %q", tc.text)
	}
}

func TestIsRainDurationQuery(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"", false},
		{"When will the rain stop?", true},
		{"It's raining cats and dogs", false},
		{"How long will the rain last?", true},
		{"Will it still be raining tonight?", true},
		{"Is it raining in Berlin?", false},
		{"What's the weather like?", false},
		{"When will the drizzle stop?", true},
		{"How long will the showers continue?", true},
		{"When does the precipitation end?", true},
		{"Will it rain this weekend?", false},
		{"I'm meeting a friend, will it rain?", false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, IsRainDurationQuery(tc.text), "text: %q", tc.text)
	}
}
