package dto

type SessionRef struct {
	ID         int64
	App        string
	StartMS    int64
	DurationMS int64
	Date       string
}

type SynthesizeInput struct {
	Seed          int64
	Sessions      []SessionRef
	QuickReopen   []bool
	CurrentStreak int
	// Response weights over proceed / go back / dismissed.
	Response [3]float64
	// DecisionTime weights over instant / quick / moderate / deliberate.
	DecisionTime [4]float64
}

type Result struct {
	SessionID         int64
	App               string
	InterventionType  string
	ContentType       string
	HourOfDay         int
	DayOfWeek         int
	IsWeekend         bool
	IsLateNight       bool
	SessionCountToday int
	QuickReopen       bool
	DurationSoFarMS   int64
	UserChoice        string
	DecisionTimeMS    int64
	OutcomeRecorded   bool
	FinalDurationMS   int64
	EndedNormally     bool
}

// DecisionInput is the live path: the prompt was just answered, the
// session is still running, outcome fields stay pending.
type DecisionInput struct {
	SessionID        int64
	App              string
	StartMS          int64
	DurationSoFarMS  int64
	InterventionType string
	ContentType      string
	QuickReopen      bool
	SessionCount     int
	UserChoice       string
	DecisionTimeMS   int64
}

type OutcomeInput struct {
	SessionID       int64
	FinalDurationMS int64
	EndedNormally   bool
}
