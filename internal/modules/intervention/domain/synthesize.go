package domain

import (
	"time"

	"unhook/internal/platform/random"
)

// Session is the slice of the timeline an outcome draw needs. The
// synthesizer deliberately does not depend on the timeline module;
// callers map their session records into this shape.
type Session struct {
	ID         int64
	App        string
	StartMS    int64
	DurationMS int64
	Date       string
}

// Decision latency buckets in milliseconds, [low, high).
var latencyBuckets = [4][2]int64{
	{0, 2_000},        // instant
	{2_000, 10_000},   // quick
	{10_000, 30_000},  // moderate
	{30_000, 120_000}, // deliberate
}

var choices = [3]string{ChoiceProceed, ChoiceGoBack, ChoiceDismissed}

// Content rotation for synthesized reminder prompts.
var contentTypes = []string{"usage_summary", "streak_status", "gentle_nudge"}

// Blueprint carries a persona's response mix.
type Blueprint struct {
	// Response weights over proceed / go back / dismissed.
	Response [3]float64
	// DecisionTime weights over instant / quick / moderate / deliberate.
	DecisionTime [4]float64
	// CurrentStreak gates streak-flavored prompt content.
	CurrentStreak int
}

func contentFor(r random.Rand, currentStreak int) string {
	pool := contentTypes
	if currentStreak == 0 {
		// No streak to show yet.
		pool = []string{"usage_summary", "gentle_nudge"}
	}
	return pool[r.Intn(len(pool))]
}

// Synthesize draws one result per session. quickReopen is indexed
// parallel to sessions; a short map is treated as all-false past its
// end. Outcome fields are filled from the session itself: synthetic
// history is fully observed, unlike the live path.
func Synthesize(r random.Rand, sessions []Session, quickReopen []bool, bp Blueprint, loc *time.Location) []InterventionResult {
	results := make([]InterventionResult, 0, len(sessions))
	ordinals := map[string]int{}
	for i, s := range sessions {
		key := s.App + "|" + s.Date
		ordinals[key]++

		hour, weekday, weekend, lateNight := TemporalContext(s.StartMS, loc)
		bucket := latencyBuckets[random.WeightedIndex(r, bp.DecisionTime[:])]

		reopened := i < len(quickReopen) && quickReopen[i]
		results = append(results, InterventionResult{
			SessionID:         s.ID,
			App:               s.App,
			InterventionType:  TypeReminder,
			ContentType:       contentFor(r, bp.CurrentStreak),
			HourOfDay:         hour,
			DayOfWeek:         weekday,
			IsWeekend:         weekend,
			IsLateNight:       lateNight,
			SessionCountToday: ordinals[key],
			QuickReopen:       reopened,
			DurationSoFarMS:   s.DurationMS,
			UserChoice:        choices[random.WeightedIndex(r, bp.Response[:])],
			DecisionTimeMS:    random.Int64Between(r, bucket[0], bucket[1]),
			OutcomeRecorded:   true,
			FinalDurationMS:   s.DurationMS,
			EndedNormally:     true,
		})
	}
	return results
}
