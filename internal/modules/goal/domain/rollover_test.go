package domain_test

import (
	"testing"

	"unhook/internal/modules/goal/domain"
	"unhook/internal/platform/random"
)

func TestAdvanceStreakMetDay(t *testing.T) {
	t.Parallel()
	goal := domain.Goal{App: "instagram", DailyLimitMinutes: 60, CurrentStreak: 4, LongestStreak: 4}
	updated, change := domain.AdvanceStreak(goal, 45, false, "2026-03-04")
	if !change.Processed || !change.Met {
		t.Fatalf("expected a processed met day, got %+v", change)
	}
	if updated.CurrentStreak != 5 || updated.LongestStreak != 5 {
		t.Fatalf("streak = %d/%d, want 5/5", updated.CurrentStreak, updated.LongestStreak)
	}
	if updated.LastUpdatedDate != "2026-03-04" {
		t.Fatalf("day stamp missing")
	}
}

func TestAdvanceStreakBreakRecordsPreviousValue(t *testing.T) {
	t.Parallel()
	goal := domain.Goal{App: "instagram", DailyLimitMinutes: 60, CurrentStreak: 7, LongestStreak: 9}
	updated, change := domain.AdvanceStreak(goal, 75, false, "2026-03-04")
	if !change.Broke {
		t.Fatalf("75min over a 60min limit must break the streak")
	}
	if change.PreviousStreak != 7 {
		t.Fatalf("previous streak = %d, want 7", change.PreviousStreak)
	}
	if updated.CurrentStreak != 0 {
		t.Fatalf("current streak must reset to 0, got %d", updated.CurrentStreak)
	}
	if updated.LongestStreak != 9 {
		t.Fatalf("longest streak must survive a break, got %d", updated.LongestStreak)
	}
}

func TestAdvanceStreakFrozenDaySkips(t *testing.T) {
	t.Parallel()
	goal := domain.Goal{App: "instagram", DailyLimitMinutes: 60, CurrentStreak: 7, LongestStreak: 9}
	updated, change := domain.AdvanceStreak(goal, 75, true, "2026-03-04")
	if !change.Frozen || change.Broke || change.Met {
		t.Fatalf("frozen over-limit day must neither break nor advance, got %+v", change)
	}
	if updated.CurrentStreak != 7 {
		t.Fatalf("streak must be unchanged on a frozen day, got %d", updated.CurrentStreak)
	}
}

func TestAdvanceStreakIdempotentPerDay(t *testing.T) {
	t.Parallel()
	goal := domain.Goal{App: "instagram", DailyLimitMinutes: 60, CurrentStreak: 4, LongestStreak: 4}
	once, _ := domain.AdvanceStreak(goal, 45, false, "2026-03-04")
	twice, change := domain.AdvanceStreak(once, 45, false, "2026-03-04")
	if change.Processed {
		t.Fatalf("same day must not be processed twice")
	}
	if twice != once {
		t.Fatalf("reprocessing a day must not change the goal: %+v vs %+v", twice, once)
	}
}

func TestAdvanceStreakMonotonicLongest(t *testing.T) {
	t.Parallel()
	goal := domain.Goal{App: "a", DailyLimitMinutes: 60}
	days := []struct {
		day     string
		minutes int
	}{
		{"2026-03-01", 30}, {"2026-03-02", 20}, {"2026-03-03", 90},
		{"2026-03-04", 10}, {"2026-03-05", 10}, {"2026-03-06", 95},
	}
	for _, d := range days {
		prevLongest := goal.LongestStreak
		goal, _ = domain.AdvanceStreak(goal, d.minutes, false, d.day)
		if goal.LongestStreak < goal.CurrentStreak {
			t.Fatalf("longest < current after %s", d.day)
		}
		if goal.LongestStreak < prevLongest {
			t.Fatalf("longest streak decreased after %s", d.day)
		}
	}
}

func TestAdvanceRecovery(t *testing.T) {
	t.Parallel()
	rec := domain.StreakRecovery{App: "a", PreviousStreak: 7, StartDate: "2026-03-04"}
	rec = domain.AdvanceRecovery(rec, true, "2026-03-05", 3)
	rec = domain.AdvanceRecovery(rec, true, "2026-03-05", 3) // same day again
	if rec.DaysElapsed != 1 {
		t.Fatalf("recovery day counted twice: %d", rec.DaysElapsed)
	}
	rec = domain.AdvanceRecovery(rec, false, "2026-03-06", 3) // over limit
	if rec.DaysElapsed != 1 {
		t.Fatalf("over-limit day must not progress recovery")
	}
	rec = domain.AdvanceRecovery(rec, true, "2026-03-07", 3)
	rec = domain.AdvanceRecovery(rec, true, "2026-03-08", 3)
	if !rec.Complete || rec.CompletedDate != "2026-03-08" {
		t.Fatalf("recovery should complete on the third qualifying day, got %+v", rec)
	}
}

func TestFreezeInventoryMonthlyReset(t *testing.T) {
	t.Parallel()
	inv := domain.FreezeInventory{Available: 0, LastResetMonth: "2026-02"}
	reset := inv.ResetForMonth("2026-03", 2)
	if reset.Available != 2 || reset.LastResetMonth != "2026-03" {
		t.Fatalf("expected refill on new month, got %+v", reset)
	}
	again := reset.ResetForMonth("2026-03", 2)
	if again != reset {
		t.Fatalf("same-month reset must be a no-op")
	}
}

func TestGenerateGoals(t *testing.T) {
	t.Parallel()
	apps := []string{"instagram", "tiktok"}

	if goals := domain.GenerateGoals(random.New(1), apps, domain.GenerateParams{HasGoals: false}); len(goals) != 0 {
		t.Fatalf("profiles without goals must generate none")
	}

	cases := []struct {
		name       string
		compliance float64
		minLimit   int
		maxLimit   int
	}{
		{"low compliance", 0.3, 45, 74},
		{"normal compliance", 1.0, 60, 119},
		{"chronic overuse", 2.0, 30, 59},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			goals := domain.GenerateGoals(random.New(42), apps, domain.GenerateParams{
				HasGoals:       true,
				ComplianceRate: tc.compliance,
				StreakDays:     [2]int{2, 10},
				StartDate:      "2026-02-01",
			})
			if len(goals) != len(apps) {
				t.Fatalf("expected one goal per app")
			}
			for _, g := range goals {
				if g.DailyLimitMinutes < tc.minLimit || g.DailyLimitMinutes > tc.maxLimit {
					t.Fatalf("limit %d outside [%d,%d]", g.DailyLimitMinutes, tc.minLimit, tc.maxLimit)
				}
				if g.CurrentStreak < 2 || g.CurrentStreak > 10 {
					t.Fatalf("streak %d outside configured range", g.CurrentStreak)
				}
				if g.LongestStreak < g.CurrentStreak {
					t.Fatalf("longest %d below current %d", g.LongestStreak, g.CurrentStreak)
				}
				if float64(g.LongestStreak) > float64(g.CurrentStreak)*1.5 {
					t.Fatalf("longest %d above 1.5x current %d", g.LongestStreak, g.CurrentStreak)
				}
			}
		})
	}
}
