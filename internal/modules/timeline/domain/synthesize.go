package domain

import (
	"sort"
	"time"

	"unhook/internal/platform/random"
)

// Blueprint carries the sampling targets for one synthesis run. Every
// rate is a target, not a guarantee; generation converges best-effort.
type Blueprint struct {
	SessionsPerDay        [2]int // inclusive range
	AverageSessionMinutes [2]int
	LongestSessionMinutes [2]int
	ExtendedSessionRate   float64
	QuickReopenRate       float64
	WeekendMultiplier     float64
	TimeOfDay             TimeDistribution
}

// Synthesize generates sessions for the `days` calendar days ending at
// now's day, sorted ascending by start. Empty app lists and zero count
// ranges yield an empty (not nil-error) result.
func Synthesize(r random.Rand, bp Blueprint, now time.Time, loc *time.Location, days int, apps []string) []Session {
	sessions := []Session{}
	if days <= 0 || len(apps) == 0 {
		return sessions
	}
	today := Midnight(now, loc)
	for d := days - 1; d >= 0; d-- {
		dayStart := today.AddDate(0, 0, -d)
		count := random.IntBetween(r, bp.SessionsPerDay[0], bp.SessionsPerDay[1])
		if IsWeekend(dayStart.UnixMilli(), loc) {
			count = int(float64(count) * bp.WeekendMultiplier)
		}
		for i := 0; i < count; i++ {
			hour := SampleHour(r, bp.TimeOfDay)
			minute := r.Intn(60)
			start := dayStart.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)

			minutes := random.IntBetween(r, bp.AverageSessionMinutes[0], bp.AverageSessionMinutes[1])
			if r.Float64() < bp.ExtendedSessionRate {
				minutes = random.IntBetween(r, bp.LongestSessionMinutes[0], bp.LongestSessionMinutes[1])
			}
			durationMS := int64(minutes) * 60_000

			startMS := start.UnixMilli()
			sessions = append(sessions, Session{
				App:        apps[r.Intn(len(apps))],
				StartMS:    startMS,
				EndMS:      startMS + durationMS,
				DurationMS: durationMS,
				Date:       DateOf(startMS, loc),
			})
		}
	}
	sortByStart(sessions)
	return sessions
}

func sortByStart(sessions []Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].StartMS < sessions[j].StartMS
	})
}
