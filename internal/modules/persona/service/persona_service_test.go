package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"unhook/internal/modules/persona/domain"
	"unhook/internal/modules/persona/service"
	apperrors "unhook/internal/platform/errors"
)

type fakeClock struct {
	instant time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.instant
}

func (c *fakeClock) Location() *time.Location {
	return time.UTC
}

type staticPack struct {
	profiles []domain.Profile
}

func (p staticPack) List(context.Context) ([]domain.Profile, error) {
	return p.profiles, nil
}

func TestProfilesMergePackOverBuiltins(t *testing.T) {
	t.Parallel()

	override := domain.Builtins()[1]
	override.Description = "tuned by the local pack"
	custom := domain.Profile{Name: "zzz-custom", SessionsPerDay: [2]int{1, 2}}

	clk := &fakeClock{instant: time.Date(2026, time.March, 5, 10, 0, 0, 0, time.UTC)}
	svc := service.NewPersonaService(clk, staticPack{profiles: []domain.Profile{override, custom}}, service.Policy{CacheTTL: time.Hour})

	profiles, err := svc.Profiles(context.Background())
	if err != nil {
		t.Fatalf("profiles: %v", err)
	}
	if len(profiles) != len(domain.Builtins())+1 {
		t.Fatalf("expected builtins plus one custom, got %d", len(profiles))
	}
	got, err := svc.Get(context.Background(), override.Name)
	if err != nil {
		t.Fatalf("get override: %v", err)
	}
	if got.Description != "tuned by the local pack" {
		t.Fatalf("pack profile must win over the builtin")
	}
	if _, err := svc.Get(context.Background(), "no-such-persona"); !errors.Is(err, apperrors.ErrUnknownPersona) {
		t.Fatalf("unknown persona should be reported, got %v", err)
	}
}

func TestDetectionCacheLifecycle(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{instant: time.Date(2026, time.March, 5, 10, 0, 0, 0, time.UTC)}
	svc := service.NewPersonaService(clk, nil, service.Policy{CacheTTL: 3 * time.Hour})

	if _, ok := svc.CachedDetection(); ok {
		t.Fatalf("fresh service must start with a cold cache")
	}

	svc.StoreDetection("night-owl")
	cached, ok := svc.CachedDetection()
	if !ok || cached.Persona != "night-owl" {
		t.Fatalf("cache should be warm after storing, got %+v", cached)
	}

	clk.instant = clk.instant.Add(3 * time.Hour)
	if _, ok := svc.CachedDetection(); ok {
		t.Fatalf("cache must expire after the TTL")
	}

	svc.StoreDetection("casual")
	svc.InvalidateDetection()
	if _, ok := svc.CachedDetection(); ok {
		t.Fatalf("invalidation must drop the cached value")
	}
}

func TestWindowEndsYesterday(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{instant: time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)}
	svc := service.NewPersonaService(clk, nil, service.Policy{CacheTTL: time.Hour, WindowDays: 14})

	from, to := svc.Window()
	if from != "2026-03-01" || to != "2026-03-14" {
		t.Fatalf("window = [%s, %s], want [2026-03-01, 2026-03-14]", from, to)
	}

	startMS, endMS, err := svc.WindowBounds()
	if err != nil {
		t.Fatalf("window bounds: %v", err)
	}
	wantStart := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	wantEnd := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC).UnixMilli()
	if startMS != wantStart || endMS != wantEnd {
		t.Fatalf("bounds = [%d, %d), want [%d, %d)", startMS, endMS, wantStart, wantEnd)
	}
}
