package domain

import (
	"time"

	"unhook/internal/platform/random"
)

const (
	quickReopenMinDelayMS = 10_000
	quickReopenMaxDelayMS = 120_000
)

// ApplyQuickReopens rewrites a share of sessions so they start shortly
// after the previous session's end, injecting the persona's reopen
// habit into an otherwise independent timeline. Targets floor(n*rate)
// reopens: first a probabilistic walk (each same-day candidate taken
// with probability rate, capped at the target), then deterministic
// top-up rounds until the detected count reaches the target or no
// same-day candidate remains. Durations are preserved; the result is
// sorted by start.
func ApplyQuickReopens(r random.Rand, sessions []Session, rate float64, loc *time.Location) []Session {
	if len(sessions) < 2 || rate <= 0 {
		return sessions
	}
	target := int(float64(len(sessions)) * rate)
	if target == 0 {
		return sessions
	}

	injected := 0
	for i := 1; i < len(sessions) && injected < target; i++ {
		if sessions[i].Date != sessions[i-1].Date {
			continue
		}
		if r.Float64() >= rate {
			continue
		}
		if rewriteAsReopen(r, sessions, i, loc) {
			injected++
		}
	}
	sortByStart(sessions)

	for round := 0; round < len(sessions); round++ {
		flags := DetectQuickReopens(sessions, quickReopenMaxDelayMS)
		count := 0
		for _, flagged := range flags {
			if flagged {
				count++
			}
		}
		if count >= target {
			break
		}
		rewritten := false
		for i := 1; i < len(sessions); i++ {
			if !flags[i] && sessions[i].Date == sessions[i-1].Date && rewriteAsReopen(r, sessions, i, loc) {
				rewritten = true
				break
			}
		}
		if !rewritten {
			break
		}
		sortByStart(sessions)
	}
	return sessions
}

// rewriteAsReopen moves sessions[i] to start a sampled delay after the
// previous session's end. Skipped when the move would cross midnight.
func rewriteAsReopen(r random.Rand, sessions []Session, i int, loc *time.Location) bool {
	prev := sessions[i-1]
	delay := random.Int64Between(r, quickReopenMinDelayMS, quickReopenMaxDelayMS)
	newStart := prev.EndMS + delay
	if DateOf(newStart, loc) != prev.Date {
		return false
	}
	sessions[i].StartMS = newStart
	sessions[i].EndMS = newStart + sessions[i].DurationMS
	sessions[i].Date = prev.Date
	return true
}

// DetectQuickReopens flags each index whose session starts within the
// threshold of the previous session's end on the same calendar day.
// Index 0 is never a quick reopen.
func DetectQuickReopens(sessions []Session, thresholdMS int64) map[int]bool {
	reopens := make(map[int]bool, len(sessions))
	for i := range sessions {
		if i == 0 {
			reopens[i] = false
			continue
		}
		gap := sessions[i].StartMS - sessions[i-1].EndMS
		reopens[i] = gap < thresholdMS && sessions[i].Date == sessions[i-1].Date
	}
	return reopens
}
