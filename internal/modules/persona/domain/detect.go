package domain

import (
	"fmt"
	"time"

	apperrors "unhook/internal/platform/errors"
)

// Observation is the live-usage fingerprint detection classifies:
// per-day averages over the lookback window plus the observed
// quick-reopen rate.
type Observation struct {
	Days            int
	SessionsPerDay  float64
	MinutesPerDay   float64
	QuickReopenRate float64
}

// Classify maps an observation to the nearest profile by normalized
// distance over the three fingerprint features. Profiles anchor each
// feature at the midpoint of their configured range.
func Classify(obs Observation, profiles []Profile) (Profile, error) {
	if obs.Days == 0 {
		return Profile{}, fmt.Errorf("%w: no usage days to classify", apperrors.ErrInsufficientData)
	}
	if len(profiles) == 0 {
		return Profile{}, fmt.Errorf("%w: empty registry", apperrors.ErrUnknownPersona)
	}

	best := profiles[0]
	bestDist := distance(obs, profiles[0])
	for _, p := range profiles[1:] {
		if d := distance(obs, p); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best, nil
}

func distance(obs Observation, p Profile) float64 {
	return relative(obs.SessionsPerDay, midpoint(p.SessionsPerDay)) +
		relative(obs.MinutesPerDay, midpoint(p.DailyUsageMinutes)) +
		relative(obs.QuickReopenRate, p.QuickReopenRate)
}

func midpoint(r [2]int) float64 {
	return float64(r[0]+r[1]) / 2
}

// relative keeps every feature on a comparable scale regardless of
// unit: 0 for equal values, approaching 1 as they diverge.
func relative(a, b float64) float64 {
	larger := a
	if b > larger {
		larger = b
	}
	if larger <= 0 {
		return 0
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff / larger
}

// DetectionCache is the explicit cache value owned by the persona
// service. A zero value is always stale.
type DetectionCache struct {
	Persona    string
	ComputedAt time.Time
}

func (c DetectionCache) Valid(now time.Time, ttl time.Duration) bool {
	if c.Persona == "" || c.ComputedAt.IsZero() {
		return false
	}
	return now.Sub(c.ComputedAt) < ttl
}
