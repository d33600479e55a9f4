package domain_test

import (
	"errors"
	"testing"
	"time"

	"unhook/internal/modules/persona/domain"
	apperrors "unhook/internal/platform/errors"
)

func TestBuiltinsValidate(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for _, p := range domain.Builtins() {
		if err := p.Validate(); err != nil {
			t.Fatalf("builtin %s invalid: %v", p.Name, err)
		}
		if seen[p.Name] {
			t.Fatalf("duplicate builtin name %s", p.Name)
		}
		seen[p.Name] = true
	}
	for _, name := range []string{"fresh-install", "casual", "heavy", "compulsive-reopener", "night-owl", "weekend-warrior", "goal-crusher", "struggler"} {
		if !seen[name] {
			t.Fatalf("missing builtin %s", name)
		}
	}
}

func TestFreshInstallHasNoGoals(t *testing.T) {
	t.Parallel()

	for _, p := range domain.Builtins() {
		if p.Name == "fresh-install" && p.HasGoals {
			t.Fatalf("fresh-install must not carry goals")
		}
	}
}

func TestValidateRejectsBadProfiles(t *testing.T) {
	t.Parallel()

	good := domain.Builtins()[1]

	inverted := good
	inverted.SessionsPerDay = [2]int{6, 3}
	if err := inverted.Validate(); !errors.Is(err, apperrors.ErrInvalidProfile) {
		t.Fatalf("inverted range should fail, got %v", err)
	}

	negative := good
	negative.QuickReopenRate = -0.1
	if err := negative.Validate(); !errors.Is(err, apperrors.ErrInvalidProfile) {
		t.Fatalf("negative rate should fail, got %v", err)
	}

	unnamed := good
	unnamed.Name = ""
	if err := unnamed.Validate(); !errors.Is(err, apperrors.ErrInvalidProfile) {
		t.Fatalf("missing name should fail, got %v", err)
	}
}

func TestClassifyPicksNearestArchetype(t *testing.T) {
	t.Parallel()

	profiles := domain.Builtins()
	cases := []struct {
		name string
		obs  domain.Observation
		want string
	}{
		{
			name: "many short checks with constant reopens",
			obs:  domain.Observation{Days: 14, SessionsPerDay: 22, MinutesPerDay: 100, QuickReopenRate: 0.45},
			want: "compulsive-reopener",
		},
		{
			name: "long heavy days",
			obs:  domain.Observation{Days: 14, SessionsPerDay: 15, MinutesPerDay: 270, QuickReopenRate: 0.25},
			want: "heavy",
		},
		{
			name: "barely any usage",
			obs:  domain.Observation{Days: 3, SessionsPerDay: 2, MinutesPerDay: 10, QuickReopenRate: 0.0},
			want: "fresh-install",
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := domain.Classify(tc.obs, profiles)
			if err != nil {
				t.Fatalf("classify: %v", err)
			}
			if got.Name != tc.want {
				t.Fatalf("classified as %s, want %s", got.Name, tc.want)
			}
		})
	}
}

func TestClassifyNoData(t *testing.T) {
	t.Parallel()

	_, err := domain.Classify(domain.Observation{}, domain.Builtins())
	if !errors.Is(err, apperrors.ErrInsufficientData) {
		t.Fatalf("empty observation should report insufficient data, got %v", err)
	}
}

func TestDetectionCacheTTL(t *testing.T) {
	t.Parallel()

	computed := time.Date(2026, time.March, 5, 10, 0, 0, 0, time.UTC)
	cache := domain.DetectionCache{Persona: "casual", ComputedAt: computed}
	ttl := 3 * time.Hour

	if !cache.Valid(computed.Add(time.Hour), ttl) {
		t.Fatalf("cache should be warm inside the TTL")
	}
	if cache.Valid(computed.Add(ttl), ttl) {
		t.Fatalf("cache must expire at the TTL boundary")
	}
	if (domain.DetectionCache{}).Valid(computed, ttl) {
		t.Fatalf("zero cache must always be stale")
	}
}
