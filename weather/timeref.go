package weather

import (
	"strings"
	"time"
)

// TimeKind tags the variants of a parsed time reference.
type TimeKind int

const (
	TimeCurrent TimeKind = iota
	TimeMorning
	TimeAfternoon
	TimeEvening
	TimeNight
	TimeTomorrow
	TimeTomorrowAt // tomorrow at a fixed period; Period carries which one
	TimeNextHours  // a fixed number of hours from now; Hours carries how many
)

// TimeReference is the parsed time intent of an utterance. Phrase keeps the
// matched literal text for response phrasing ("for tomorrow morning").
type TimeReference struct {
	Kind   TimeKind
	Period TimeKind // only for TimeTomorrowAt
	Hours  int      // only for TimeNextHours
	Phrase string
}

// timePhrases maps phrases to references in priority order: compound phrases
// must appear before their bare period words so "tomorrow morning" never
// resolves as plain "tomorrow". First whole-phrase match wins.
var timePhrases = []struct {
	phrase string
	ref    TimeReference
}{
	{"tomorrow morning", TimeReference{Kind: TimeTomorrowAt, Period: TimeMorning}},
	{"tomorrow afternoon", TimeReference{Kind: TimeTomorrowAt, Period: TimeAfternoon}},
	{"tomorrow evening", TimeReference{Kind: TimeTomorrowAt, Period: TimeEvening}},
	{"tomorrow night", TimeReference{Kind: TimeTomorrowAt, Period: TimeNight}},
	{"this evening", TimeReference{Kind: TimeCurrent}},
	{"this afternoon", TimeReference{Kind: TimeCurrent}},
	{"this morning", TimeReference{Kind: TimeCurrent}},
	{"tonight", TimeReference{Kind: TimeNight}},
	{"tomorrow", TimeReference{Kind: TimeTomorrow}},
	{"next hour", TimeReference{Kind: TimeNextHours, Hours: 1}},
	{"in an hour", TimeReference{Kind: TimeNextHours, Hours: 1}},
	{"in 1 hour", TimeReference{Kind: TimeNextHours, Hours: 1}},
	{"in 2 hours", TimeReference{Kind: TimeNextHours, Hours: 2}},
	{"in 3 hours", TimeReference{Kind: TimeNextHours, Hours: 3}},
	{"in 4 hours", TimeReference{Kind: TimeNextHours, Hours: 4}},
	{"in 5 hours", TimeReference{Kind: TimeNextHours, Hours: 5}},
	{"now", TimeReference{Kind: TimeCurrent}},
	{"today", TimeReference{Kind: TimeCurrent}},
	{"evening", TimeReference{Kind: TimeEvening}},
	{"afternoon", TimeReference{Kind: TimeAfternoon}},
	{"morning", TimeReference{Kind: TimeMorning}},
	{"night", TimeReference{Kind: TimeNight}},
}

// ParseTimeReference scans the phrase table in order and returns the first
// match, defaulting to the current time when no phrase matches.
func ParseTimeReference(text string) TimeReference {
	lower := strings.ToLower(text)
	for _, entry := range timePhrases {
		if strings.Contains(lower, entry.phrase) {
			ref := entry.ref
			ref.Phrase = entry.phrase
			return ref
		}
	}
	return TimeReference{Kind: TimeCurrent}
}

// periodHour maps day periods to fixed clock hours. A deliberate
// simplification: not sunrise/sunset based.
func periodHour(period TimeKind) int {
	switch period {
	case TimeMorning:
		return 9
	case TimeAfternoon:
		return 14
	case TimeEvening:
		return 18
	case TimeNight:
		return 22
	default:
		return 0
	}
}

// TargetInstant resolves the reference to a concrete instant relative to now.
// The second return is false for TimeCurrent, which has no target instant.
func (r TimeReference) TargetInstant(now time.Time) (time.Time, bool) {
	atHour := func(t time.Time, hour int) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
	}

	switch r.Kind {
	case TimeMorning, TimeAfternoon, TimeEvening, TimeNight:
		return atHour(now, periodHour(r.Kind)), true
	case TimeTomorrow:
		return now.Add(24 * time.Hour), true
	case TimeTomorrowAt:
		return atHour(now.Add(24*time.Hour), periodHour(r.Period)), true
	case TimeNextHours:
		hours := r.Hours
		if hours < 1 {
			hours = 1
		}
		return now.Add(time.Duration(hours) * time.Hour), true
	default:
		return time.Time{}, false
	}
}
