package domain

import (
	"fmt"

	apperrors "unhook/internal/platform/errors"
)

// Profile is an immutable behavioral archetype. All ranges are
// inclusive integer intervals; all rates are targets, not guarantees.
type Profile struct {
	Name        string
	Description string

	SessionsPerDay        [2]int
	AverageSessionMinutes [2]int
	LongestSessionMinutes [2]int
	DailyUsageMinutes     [2]int
	StreakDays            [2]int

	QuickReopenRate        float64
	ExtendedSessionRate    float64
	GoalComplianceRate     float64
	WeekendUsageMultiplier float64

	// Morning, midday, evening, late-night, very-late weights.
	TimeOfDay [5]float64
	// Proceed, go-back, dismissed weights.
	InterventionResponse [3]float64
	// Instant, quick, moderate, deliberate weights.
	DecisionTime [4]float64

	HasGoals bool
}

func (p Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: profile needs a name", apperrors.ErrInvalidProfile)
	}
	ranges := map[string][2]int{
		"sessions_per_day":        p.SessionsPerDay,
		"average_session_minutes": p.AverageSessionMinutes,
		"longest_session_minutes": p.LongestSessionMinutes,
		"daily_usage_minutes":     p.DailyUsageMinutes,
		"streak_days":             p.StreakDays,
	}
	for name, r := range ranges {
		if r[0] < 0 || r[1] < r[0] {
			return fmt.Errorf("%w: %s range [%d,%d] in %s", apperrors.ErrInvalidProfile, name, r[0], r[1], p.Name)
		}
	}
	rates := map[string]float64{
		"quick_reopen_rate":        p.QuickReopenRate,
		"extended_session_rate":    p.ExtendedSessionRate,
		"goal_compliance_rate":     p.GoalComplianceRate,
		"weekend_usage_multiplier": p.WeekendUsageMultiplier,
	}
	for name, rate := range rates {
		if rate < 0 {
			return fmt.Errorf("%w: negative %s in %s", apperrors.ErrInvalidProfile, name, p.Name)
		}
	}
	for _, groups := range [][]float64{p.TimeOfDay[:], p.InterventionResponse[:], p.DecisionTime[:]} {
		for _, w := range groups {
			if w < 0 {
				return fmt.Errorf("%w: negative distribution weight in %s", apperrors.ErrInvalidProfile, p.Name)
			}
		}
	}
	return nil
}
