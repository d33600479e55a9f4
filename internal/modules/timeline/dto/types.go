package dto

type Session struct {
	ID                 int64
	App                string
	StartMS            int64
	EndMS              int64
	DurationMS         int64
	Date               string
	Interrupted        bool
	InterruptionReason string
}

// SynthesizeInput flattens the sampling-relevant slice of a persona
// profile; the seed module maps profiles onto it so timeline stays
// independent of the persona module.
type SynthesizeInput struct {
	Seed int64
	Days int
	Apps []string

	SessionsPerDay        [2]int
	AverageSessionMinutes [2]int
	LongestSessionMinutes [2]int
	ExtendedSessionRate   float64
	QuickReopenRate       float64
	WeekendMultiplier     float64
	// Morning, midday, evening, late-night, very-late weights.
	TimeOfDay [5]float64
}

type SynthesizeOutput struct {
	Sessions     []Session
	QuickReopens map[int]bool
}

type RecordInput struct {
	App                string
	StartMS            int64
	EndMS              int64
	Interrupted        bool
	InterruptionReason string
}

type ListInput struct {
	App     string
	StartMS int64
	EndMS   int64
}
