package clock

import "time"

// Clock abstracts time to keep usecases deterministic in tests. The
// location is part of the contract: every calendar derivation in this
// system (session dates, rollover days, weekend checks) is local time,
// not UTC.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

func (SystemClock) Location() *time.Location {
	return time.Local
}

// Fixed is a clock pinned to one instant, used in tests and when the
// rollover replays a specific day.
type Fixed struct {
	Instant time.Time
}

func (f Fixed) Now() time.Time {
	return f.Instant
}

func (f Fixed) Location() *time.Location {
	return f.Instant.Location()
}
