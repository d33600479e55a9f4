package domain

// Builtins is the data-only archetype table. Custom profile packs can
// override any entry by name.
func Builtins() []Profile {
	return []Profile{
		{
			Name:                   "fresh-install",
			Description:            "Brand-new user, almost no history, no goals yet",
			SessionsPerDay:         [2]int{1, 3},
			AverageSessionMinutes:  [2]int{2, 5},
			LongestSessionMinutes:  [2]int{5, 10},
			DailyUsageMinutes:      [2]int{5, 20},
			StreakDays:             [2]int{0, 0},
			QuickReopenRate:        0.05,
			ExtendedSessionRate:    0.05,
			GoalComplianceRate:     1.0,
			WeekendUsageMultiplier: 1.0,
			TimeOfDay:              [5]float64{0.2, 0.3, 0.3, 0.15, 0.05},
			InterventionResponse:   [3]float64{0.4, 0.4, 0.2},
			DecisionTime:           [4]float64{0.3, 0.4, 0.2, 0.1},
			HasGoals:               false,
		},
		{
			Name:                   "casual",
			Description:            "Light daily use, mostly under control",
			SessionsPerDay:         [2]int{3, 6},
			AverageSessionMinutes:  [2]int{3, 8},
			LongestSessionMinutes:  [2]int{10, 20},
			DailyUsageMinutes:      [2]int{20, 60},
			StreakDays:             [2]int{2, 10},
			QuickReopenRate:        0.1,
			ExtendedSessionRate:    0.1,
			GoalComplianceRate:     1.0,
			WeekendUsageMultiplier: 1.2,
			TimeOfDay:              [5]float64{0.2, 0.25, 0.35, 0.15, 0.05},
			InterventionResponse:   [3]float64{0.35, 0.45, 0.2},
			DecisionTime:           [4]float64{0.3, 0.35, 0.25, 0.1},
			HasGoals:               true,
		},
		{
			Name:                   "heavy",
			Description:            "Long sessions through the whole day",
			SessionsPerDay:         [2]int{10, 20},
			AverageSessionMinutes:  [2]int{8, 15},
			LongestSessionMinutes:  [2]int{30, 60},
			DailyUsageMinutes:      [2]int{180, 360},
			StreakDays:             [2]int{0, 3},
			QuickReopenRate:        0.25,
			ExtendedSessionRate:    0.3,
			GoalComplianceRate:     1.3,
			WeekendUsageMultiplier: 1.2,
			TimeOfDay:              [5]float64{0.15, 0.25, 0.3, 0.2, 0.1},
			InterventionResponse:   [3]float64{0.6, 0.2, 0.2},
			DecisionTime:           [4]float64{0.35, 0.3, 0.2, 0.15},
			HasGoals:               true,
		},
		{
			Name:                   "compulsive-reopener",
			Description:            "Many short checks, reopens right after closing",
			SessionsPerDay:         [2]int{15, 30},
			AverageSessionMinutes:  [2]int{1, 4},
			LongestSessionMinutes:  [2]int{10, 20},
			DailyUsageMinutes:      [2]int{60, 150},
			StreakDays:             [2]int{0, 4},
			QuickReopenRate:        0.5,
			ExtendedSessionRate:    0.1,
			GoalComplianceRate:     1.2,
			WeekendUsageMultiplier: 1.1,
			TimeOfDay:              [5]float64{0.2, 0.3, 0.25, 0.15, 0.1},
			InterventionResponse:   [3]float64{0.55, 0.25, 0.2},
			DecisionTime:           [4]float64{0.5, 0.3, 0.15, 0.05},
			HasGoals:               true,
		},
		{
			Name:                   "night-owl",
			Description:            "Usage concentrated late at night",
			SessionsPerDay:         [2]int{6, 12},
			AverageSessionMinutes:  [2]int{5, 12},
			LongestSessionMinutes:  [2]int{25, 50},
			DailyUsageMinutes:      [2]int{120, 240},
			StreakDays:             [2]int{0, 5},
			QuickReopenRate:        0.2,
			ExtendedSessionRate:    0.25,
			GoalComplianceRate:     1.1,
			WeekendUsageMultiplier: 1.3,
			TimeOfDay:              [5]float64{0.05, 0.1, 0.15, 0.4, 0.3},
			InterventionResponse:   [3]float64{0.5, 0.3, 0.2},
			DecisionTime:           [4]float64{0.25, 0.3, 0.25, 0.2},
			HasGoals:               true,
		},
		{
			Name:                   "weekend-warrior",
			Description:            "Restrained weekdays, heavy weekends",
			SessionsPerDay:         [2]int{3, 8},
			AverageSessionMinutes:  [2]int{5, 10},
			LongestSessionMinutes:  [2]int{20, 45},
			DailyUsageMinutes:      [2]int{45, 120},
			StreakDays:             [2]int{3, 12},
			QuickReopenRate:        0.15,
			ExtendedSessionRate:    0.2,
			GoalComplianceRate:     0.9,
			WeekendUsageMultiplier: 2.5,
			TimeOfDay:              [5]float64{0.15, 0.25, 0.35, 0.2, 0.05},
			InterventionResponse:   [3]float64{0.4, 0.4, 0.2},
			DecisionTime:           [4]float64{0.3, 0.35, 0.2, 0.15},
			HasGoals:               true,
		},
		{
			Name:                   "goal-crusher",
			Description:            "Disciplined, long streaks, well under limits",
			SessionsPerDay:         [2]int{2, 5},
			AverageSessionMinutes:  [2]int{3, 6},
			LongestSessionMinutes:  [2]int{8, 15},
			DailyUsageMinutes:      [2]int{15, 45},
			StreakDays:             [2]int{14, 45},
			QuickReopenRate:        0.05,
			ExtendedSessionRate:    0.05,
			GoalComplianceRate:     0.4,
			WeekendUsageMultiplier: 1.1,
			TimeOfDay:              [5]float64{0.25, 0.3, 0.3, 0.1, 0.05},
			InterventionResponse:   [3]float64{0.15, 0.65, 0.2},
			DecisionTime:           [4]float64{0.5, 0.35, 0.1, 0.05},
			HasGoals:               true,
		},
		{
			Name:                   "struggler",
			Description:            "Has goals but blows past the limits most days",
			SessionsPerDay:         [2]int{8, 16},
			AverageSessionMinutes:  [2]int{6, 14},
			LongestSessionMinutes:  [2]int{30, 60},
			DailyUsageMinutes:      [2]int{150, 300},
			StreakDays:             [2]int{0, 2},
			QuickReopenRate:        0.3,
			ExtendedSessionRate:    0.3,
			GoalComplianceRate:     1.8,
			WeekendUsageMultiplier: 1.4,
			TimeOfDay:              [5]float64{0.1, 0.2, 0.3, 0.25, 0.15},
			InterventionResponse:   [3]float64{0.7, 0.1, 0.2},
			DecisionTime:           [4]float64{0.2, 0.25, 0.3, 0.25},
			HasGoals:               true,
		},
	}
}
