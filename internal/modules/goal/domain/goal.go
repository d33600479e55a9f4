package domain

// Goal is one app's daily usage limit plus its streak state. Streak
// fields are mutated only by the daily rollover and explicit edits.
type Goal struct {
	App               string
	DailyLimitMinutes int
	StartDate         string
	CurrentStreak     int
	LongestStreak     int
	// LastUpdatedDate is the dedup key for the rollover: a goal already
	// stamped with the day being processed is never advanced again.
	LastUpdatedDate string
}

// StreakRecovery tracks rebuilding discipline after a streak break.
// Lifecycle: none -> active -> complete, then garbage-collected after
// the retention window.
type StreakRecovery struct {
	App               string
	PreviousStreak    int
	StartDate         string
	DaysElapsed       int
	LastProgressDate  string
	Complete          bool
	CompletedDate     string
	NotificationShown bool
}

// FreezeGrant covers one (app, date) with a consumed freeze credit.
// The credit is taken from the inventory at activation; the rollover
// only observes the grant and marks it applied.
type FreezeGrant struct {
	App     string
	Date    string
	Applied bool
}

// FreezeInventory is the monthly credit pool.
type FreezeInventory struct {
	Available      int
	LastResetMonth string // YYYY-MM
}

// ResetForMonth refills the inventory exactly once per calendar month;
// repeated calls within the same month are no-ops.
func (inv FreezeInventory) ResetForMonth(month string, allowance int) FreezeInventory {
	if inv.LastResetMonth == month {
		return inv
	}
	return FreezeInventory{Available: allowance, LastResetMonth: month}
}
