package weather

import (
	"fmt"
	"strings"
	"time"
)

// rainPrecipThreshold is the precipitation amount in mm above which an hour
// counts as rainy.
const rainPrecipThreshold = 0.1

// RainPeriod is a maximal run of consecutive rainy forecast entries. Open
// means the run extends past the end of the forecast horizon, so End is the
// last known rainy hour, not the real end.
type RainPeriod struct {
	Start         time.Time
	End           time.Time
	Open          bool
	DurationHours int
	Entries       []ForecastEntry
}

// RainAnalysis is the result of scanning a forecast for rain.
type RainAnalysis struct {
	IsCurrentlyRaining bool
	Current            *RainPeriod
	Upcoming           []RainPeriod
}

// descriptionIsRainy checks the text description for rain terms, used
// alongside the precipitation amount.
func descriptionIsRainy(description string) bool {
	lower := strings.ToLower(description)
	for _, term := range []string{"rain", "drizzle", "shower", "thunderstorm"} {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

func entryIsRainy(entry ForecastEntry) bool {
	return entry.Precipitation > rainPrecipThreshold || descriptionIsRainy(entry.Description)
}

func snapshotIsRainy(snapshot Snapshot) bool {
	return snapshot.Precipitation > rainPrecipThreshold || descriptionIsRainy(snapshot.Description)
}

// AnalyzeRainPattern groups the forecast into rain periods and works out
// whether now falls inside one. A period whose last entry is also the last
// forecast entry is marked open: rain may continue beyond what we can see.
func AnalyzeRainPattern(current Snapshot, forecast Forecast, now time.Time) RainAnalysis {
	analysis := RainAnalysis{
		IsCurrentlyRaining: snapshotIsRainy(current),
	}

	var periods []RainPeriod
	var run []ForecastEntry
	flush := func(openEnded bool) {
		if len(run) == 0 {
			return
		}
		start := run[0].Time
		end := run[len(run)-1].Time
		periods = append(periods, RainPeriod{
			Start:         start,
			End:           end,
			Open:          openEnded,
			DurationHours: len(run),
			Entries:       run,
		})
		run = nil
	}

	for i, entry := range forecast.Entries {
		if entryIsRainy(entry) {
			run = append(run, entry)
			if i == len(forecast.Entries)-1 {
				flush(true)
			}
			continue
		}
		// The dry entry closes the run; its timestamp is when rain ends.
		if len(run) > 0 {
			start := run[0].Time
			periods = append(periods, RainPeriod{
				Start:         start,
				End:           entry.Time,
				Open:          false,
				DurationHours: int(entry.Time.Sub(start).Hours()),
				Entries:       run,
			})
			run = nil
		}
	}

	for i := range periods {
		period := periods[i]
		covers := !now.Before(period.Start) && now.Before(period.End)
		if covers || (period.Open && !now.Before(period.Start)) {
			analysis.Current = &periods[i]
			continue
		}
		if period.Start.After(now) {
			analysis.Upcoming = append(analysis.Upcoming, period)
		}
	}

	return analysis
}

// FormatRainReport renders the analysis as a single spoken sentence or two.
func FormatRainReport(location string, analysis RainAnalysis, now time.Time) string {
	if analysis.IsCurrentlyRaining {
		period := analysis.Current
		if period == nil {
			return fmt.Sprintf("It's raining in %s right now, but it should stop within the hour.", location)
		}
		if period.Open {
			return fmt.Sprintf(
				"It's raining in %s right now and the rain continues for several more hours, at least until %s.",
				location, period.End.Format("15:04"),
			)
		}
		remaining := int(period.End.Sub(now).Hours() + 0.5)
		if remaining < 1 {
			remaining = 1
		}
		sentence := fmt.Sprintf(
			"It's raining in %s right now. The rain should stop in about %s, around %s.",
			location, pluralHours(remaining), period.End.Format("15:04"),
		)
		if variation := intensityVariation(period.Entries); variation != "" {
			sentence += " " + variation
		}
		return sentence
	}

	if len(analysis.Upcoming) > 0 {
		next := analysis.Upcoming[0]
		if next.Open {
			return fmt.Sprintf(
				"It's not raining in %s right now, but rain is expected from %s onwards.",
				location, next.Start.Format("15:04"),
			)
		}
		return fmt.Sprintf(
			"It's not raining in %s right now, but rain is expected from %s to %s, lasting about %s.",
			location, next.Start.Format("15:04"), next.End.Format("15:04"), pluralHours(next.DurationHours),
		)
	}

	return fmt.Sprintf("It's not raining in %s and no rain is expected in the next 24 hours.", location)
}

// intensityVariation notes shifting conditions when a rain period carries more
// than one distinct description.
func intensityVariation(entries []ForecastEntry) string {
	seen := map[string]bool{}
	var distinct []string
	for _, entry := range entries {
		lower := strings.ToLower(entry.Description)
		if lower == "" || seen[lower] {
			continue
		}
		seen[lower] = true
		distinct = append(distinct, lower)
	}
	if len(distinct) < 2 {
		return ""
	}
	return fmt.Sprintf("Expect it to shift from %s to %s along the way.", distinct[0], distinct[len(distinct)-1])
}

func pluralHours(n int) string {
	if n == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", n)
}
