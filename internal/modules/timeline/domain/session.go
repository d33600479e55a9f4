package domain

import "time"

// Session is one continuous usage interval of a monitored app. IDs are
// store-assigned; a zero ID means the session has not been persisted.
type Session struct {
	ID                 int64
	App                string
	StartMS            int64
	EndMS              int64
	DurationMS         int64
	Date               string // YYYY-MM-DD, local calendar of the start
	Interrupted        bool
	InterruptionReason string
}

const dateLayout = "2006-01-02"

// DateOf derives the local calendar date of a unix-millisecond instant.
func DateOf(ms int64, loc *time.Location) string {
	return time.UnixMilli(ms).In(loc).Format(dateLayout)
}

func IsWeekend(ms int64, loc *time.Location) bool {
	day := time.UnixMilli(ms).In(loc).Weekday()
	return day == time.Saturday || day == time.Sunday
}

// Midnight returns the start of t's local calendar day.
func Midnight(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
