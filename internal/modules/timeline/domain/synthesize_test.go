package domain_test

import (
	"reflect"
	"testing"
	"time"

	"unhook/internal/modules/timeline/domain"
	"unhook/internal/platform/random"
)

func testBlueprint() domain.Blueprint {
	return domain.Blueprint{
		SessionsPerDay:        [2]int{8, 12},
		AverageSessionMinutes: [2]int{5, 20},
		LongestSessionMinutes: [2]int{45, 90},
		ExtendedSessionRate:   0.1,
		QuickReopenRate:       0.3,
		WeekendMultiplier:     1.0,
		TimeOfDay:             domain.TimeDistribution{Morning: 0.2, Midday: 0.3, Evening: 0.3, LateNight: 0.15, VeryLate: 0.05},
	}
}

// A Wednesday, so a two-day window never crosses a weekend.
var wednesdayNoon = time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

func TestSynthesizeOrderedByStart(t *testing.T) {
	t.Parallel()
	sessions := domain.Synthesize(random.New(7), testBlueprint(), wednesdayNoon, time.UTC, 10, []string{"instagram", "tiktok"})
	if len(sessions) == 0 {
		t.Fatalf("expected sessions")
	}
	for i := 1; i < len(sessions); i++ {
		if sessions[i].StartMS < sessions[i-1].StartMS {
			t.Fatalf("sessions out of order at %d: %d < %d", i, sessions[i].StartMS, sessions[i-1].StartMS)
		}
	}
	for i, s := range sessions {
		if s.EndMS <= s.StartMS {
			t.Fatalf("session %d has non-positive duration", i)
		}
		if s.DurationMS != s.EndMS-s.StartMS {
			t.Fatalf("session %d duration mismatch", i)
		}
		if s.Date != domain.DateOf(s.StartMS, time.UTC) {
			t.Fatalf("session %d date %s does not match start", i, s.Date)
		}
	}
}

func TestSynthesizeDeterministicForSameSeed(t *testing.T) {
	t.Parallel()
	apps := []string{"instagram", "youtube", "reddit"}
	first := domain.Synthesize(random.New(42), testBlueprint(), wednesdayNoon, time.UTC, 10, apps)
	second := domain.Synthesize(random.New(42), testBlueprint(), wednesdayNoon, time.UTC, 10, apps)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same seed must reproduce identical sessions")
	}
	third := domain.Synthesize(random.New(43), testBlueprint(), wednesdayNoon, time.UTC, 10, apps)
	if reflect.DeepEqual(first, third) {
		t.Fatalf("different seed should not reproduce identical sessions")
	}
}

func TestSynthesizeEdgeCases(t *testing.T) {
	t.Parallel()
	bp := testBlueprint()
	if got := domain.Synthesize(random.New(1), bp, wednesdayNoon, time.UTC, 3, nil); len(got) != 0 {
		t.Fatalf("empty app list must yield no sessions, got %d", len(got))
	}
	if got := domain.Synthesize(random.New(1), bp, wednesdayNoon, time.UTC, 0, []string{"a"}); len(got) != 0 {
		t.Fatalf("zero days must yield no sessions, got %d", len(got))
	}
	bp.SessionsPerDay = [2]int{0, 0}
	if got := domain.Synthesize(random.New(1), bp, wednesdayNoon, time.UTC, 3, []string{"a"}); len(got) != 0 {
		t.Fatalf("zero session range must yield no sessions, got %d", len(got))
	}
}

func TestSynthesizeWeekendMultiplier(t *testing.T) {
	t.Parallel()
	bp := testBlueprint()
	bp.SessionsPerDay = [2]int{4, 4}
	bp.WeekendMultiplier = 2.0
	// A Saturday, single day.
	saturday := time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC)
	sessions := domain.Synthesize(random.New(5), bp, saturday, time.UTC, 1, []string{"a"})
	if len(sessions) != 8 {
		t.Fatalf("expected 4*2 weekend sessions, got %d", len(sessions))
	}
}

func TestSampleHourRespectsBuckets(t *testing.T) {
	t.Parallel()
	r := random.New(11)
	onlyMorning := domain.TimeDistribution{Morning: 1}
	for i := 0; i < 200; i++ {
		hour := domain.SampleHour(r, onlyMorning)
		if hour < 6 || hour >= 10 {
			t.Fatalf("morning-only distribution produced hour %d", hour)
		}
	}
	allZero := domain.TimeDistribution{}
	seen := map[int]bool{}
	for i := 0; i < 2000; i++ {
		hour := domain.SampleHour(r, allZero)
		if hour < 0 || hour > 23 {
			t.Fatalf("hour out of range: %d", hour)
		}
		seen[hour] = true
	}
	if len(seen) < 20 {
		t.Fatalf("all-zero distribution should cover most hours, saw %d", len(seen))
	}
}

func TestSynthesizeCountWithinConfiguredRange(t *testing.T) {
	t.Parallel()
	sessions := domain.Synthesize(random.New(42), testBlueprint(), wednesdayNoon, time.UTC, 2, []string{"instagram"})
	if len(sessions) < 16 || len(sessions) > 24 {
		t.Fatalf("expected 16..24 sessions for 2 days of [8,12], got %d", len(sessions))
	}
}
