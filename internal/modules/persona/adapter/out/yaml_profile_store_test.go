package out_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"unhook/internal/modules/persona/adapter/out"
	apperrors "unhook/internal/platform/errors"
)

const packProfile = `name: focus-monk
description: Custom pack profile for testing
sessions_per_day: [1, 2]
average_session_minutes: [2, 4]
longest_session_minutes: [5, 8]
daily_usage_minutes: [5, 15]
streak_days: [20, 60]
quick_reopen_rate: 0.02
extended_session_rate: 0.01
goal_compliance_rate: 0.3
weekend_usage_multiplier: 1.0
time_of_day: [0.3, 0.3, 0.3, 0.05, 0.05]
intervention_response: [0.1, 0.8, 0.1]
decision_time: [0.7, 0.2, 0.08, 0.02]
has_goals: true
`

func writePack(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write pack file: %v", err)
	}
}

func TestListLoadsPackProfiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePack(t, dir, "focus-monk.yaml", packProfile)
	writePack(t, dir, "notes.txt", "not a profile")

	profiles, err := out.NewYAMLProfileStore(dir).List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(profiles) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(profiles))
	}
	p := profiles[0]
	if p.Name != "focus-monk" || !p.HasGoals {
		t.Fatalf("unexpected profile %+v", p)
	}
	if p.StreakDays != [2]int{20, 60} || p.GoalComplianceRate != 0.3 {
		t.Fatalf("ranges not mapped: %+v", p)
	}
	if p.TimeOfDay != [5]float64{0.3, 0.3, 0.3, 0.05, 0.05} {
		t.Fatalf("time distribution not mapped: %+v", p.TimeOfDay)
	}
}

func TestListMissingDirIsEmptyPack(t *testing.T) {
	t.Parallel()

	profiles, err := out.NewYAMLProfileStore(filepath.Join(t.TempDir(), "absent")).List(context.Background())
	if err != nil {
		t.Fatalf("missing dir should not error: %v", err)
	}
	if len(profiles) != 0 {
		t.Fatalf("expected empty pack, got %d profiles", len(profiles))
	}
}

func TestListRejectsMalformedProfiles(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"unknown field": packProfile + "unknown_knob: 3\n",
		"short range":   "name: broken\nsessions_per_day: [4]\n",
		"inverted range": `name: broken
sessions_per_day: [6, 2]
average_session_minutes: [2, 4]
longest_session_minutes: [5, 8]
daily_usage_minutes: [5, 15]
streak_days: [0, 1]
time_of_day: [1, 1, 1, 1, 1]
intervention_response: [1, 1, 1]
decision_time: [1, 1, 1, 1]
`,
	}
	for name, body := range cases {
		name, body := name, body
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			writePack(t, dir, "broken.yaml", body)
			_, err := out.NewYAMLProfileStore(dir).List(context.Background())
			if !errors.Is(err, apperrors.ErrInvalidProfile) {
				t.Fatalf("expected invalid-profile error, got %v", err)
			}
		})
	}
}
