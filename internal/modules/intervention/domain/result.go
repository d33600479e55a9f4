package domain

import "time"

// User choices an intervention prompt can end with.
const (
	ChoiceProceed   = "proceed"
	ChoiceGoBack    = "go_back"
	ChoiceDismissed = "dismissed"
)

// Intervention surfaces.
const (
	TypeReminder = "reminder"
	TypeTimer    = "timer"
)

// InterventionResult is one prompt shown during a session and what the
// user did with it. Outcome fields stay pending on the live path until
// the session actually ends; synthesis fills them immediately.
type InterventionResult struct {
	SessionID        int64
	App              string
	InterventionType string
	ContentType      string

	// Temporal context, snapshotted from the session start.
	HourOfDay   int
	DayOfWeek   int // time.Weekday numbering, Sunday = 0
	IsWeekend   bool
	IsLateNight bool

	SessionCountToday int // ordinal for (app, date), 1-based
	QuickReopen       bool
	DurationSoFarMS   int64

	UserChoice     string
	DecisionTimeMS int64

	OutcomeRecorded bool
	FinalDurationMS int64
	EndedNormally   bool
}

// lateNightStartHour..lateNightEndHour matches the session sampler's
// very-late window.
const (
	lateNightStartHour = 22
	lateNightEndHour   = 5
)

func LateNightHour(hour int) bool {
	return hour >= lateNightStartHour || hour < lateNightEndHour
}

// TemporalContext derives the context snapshot from a unix-millisecond
// session start in the local calendar.
func TemporalContext(startMS int64, loc *time.Location) (hour, weekday int, weekend, lateNight bool) {
	local := time.UnixMilli(startMS).In(loc)
	hour = local.Hour()
	weekday = int(local.Weekday())
	weekend = local.Weekday() == time.Saturday || local.Weekday() == time.Sunday
	lateNight = LateNightHour(hour)
	return hour, weekday, weekend, lateNight
}
