package domain

import "unhook/internal/platform/random"

// Limit regimes keyed to the persona's goal-compliance tendency: low
// compliance gets a generous-but-exceedable limit, chronic over-use
// gets a tight limit meant to be blown through, everyone else a normal
// one.
const (
	lowComplianceThreshold  = 0.5
	highComplianceThreshold = 1.5
)

// GenerateParams is the goal-relevant slice of a persona profile.
type GenerateParams struct {
	HasGoals       bool
	ComplianceRate float64
	StreakDays     [2]int
	StartDate      string
}

// GenerateGoals derives one goal per app. Returns empty when the
// persona has no goals; every derived streak semantic is suppressed in
// that case.
func GenerateGoals(r random.Rand, apps []string, params GenerateParams) []Goal {
	if !params.HasGoals {
		return []Goal{}
	}
	goals := make([]Goal, 0, len(apps))
	for _, app := range apps {
		var limit int
		switch {
		case params.ComplianceRate < lowComplianceThreshold:
			limit = random.IntBetween(r, 45, 74)
		case params.ComplianceRate > highComplianceThreshold:
			limit = random.IntBetween(r, 30, 59)
		default:
			limit = random.IntBetween(r, 60, 119)
		}
		current := random.IntBetween(r, params.StreakDays[0], params.StreakDays[1])
		longest := int(float64(current) * (1.0 + r.Float64()*0.5))
		goals = append(goals, Goal{
			App:               app,
			DailyLimitMinutes: limit,
			StartDate:         params.StartDate,
			CurrentStreak:     current,
			LongestStreak:     longest,
		})
	}
	return goals
}
