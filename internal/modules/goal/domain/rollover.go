package domain

// StreakChange describes what one rollover day did to a goal.
type StreakChange struct {
	Processed bool // false when the day was already applied (dedup)
	Met       bool
	Frozen    bool
	// Broke is set when the streak reset; PreviousStreak carries the
	// value it held just before the reset.
	Broke          bool
	PreviousStreak int
}

// AdvanceStreak applies one day's usage to a goal. The increment is
// conditional on the dedup key so reprocessing the same day is a no-op,
// which is what makes the rollover safe under at-least-once delivery.
func AdvanceStreak(goal Goal, usageMinutes int, frozen bool, day string) (Goal, StreakChange) {
	if goal.LastUpdatedDate == day {
		return goal, StreakChange{}
	}
	change := StreakChange{Processed: true}
	switch {
	case usageMinutes <= goal.DailyLimitMinutes:
		change.Met = true
		goal.CurrentStreak++
		if goal.CurrentStreak > goal.LongestStreak {
			goal.LongestStreak = goal.CurrentStreak
		}
	case frozen:
		// Freeze day: streak neither advances nor resets.
		change.Frozen = true
	default:
		change.Broke = true
		change.PreviousStreak = goal.CurrentStreak
		goal.CurrentStreak = 0
	}
	goal.LastUpdatedDate = day
	return goal, change
}

// AdvanceRecovery progresses an active recovery for one qualifying day.
// Idempotent per day via LastProgressDate.
func AdvanceRecovery(rec StreakRecovery, withinLimit bool, day string, recoveryLength int) StreakRecovery {
	if rec.Complete || !withinLimit || rec.LastProgressDate == day {
		return rec
	}
	rec.DaysElapsed++
	rec.LastProgressDate = day
	if rec.DaysElapsed >= recoveryLength {
		rec.Complete = true
		rec.CompletedDate = day
	}
	return rec
}
