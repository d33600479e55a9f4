package dto

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

	TimeOfDay            [5]float64
	InterventionResponse [3]float64
	DecisionTime         [4]float64

	HasGoals bool
}

type DetectInput struct {
	// Invalidate drops the cached classification before detecting.
	Invalidate bool
}

type Detection struct {
	Persona    string
	Cached     bool
	ComputedAt string // RFC 3339

	// Fingerprint the classification was computed from; zero when the
	// answer came from the cache.
	Days            int
	SessionsPerDay  float64
	MinutesPerDay   float64
	QuickReopenRate float64
}
