package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"unhook/internal/modules/persona/domain"
	personaout "unhook/internal/modules/persona/port/out"
	"unhook/internal/platform/clock"
	apperrors "unhook/internal/platform/errors"
)

// Policy carries the detection tunables.
type Policy struct {
	CacheTTL          time.Duration
	WindowDays        int
	ReopenThresholdMS int64
}

// PersonaService owns the merged registry and the detection cache. The
// cache is an explicit value behind a mutex, never package state.
type PersonaService struct {
	clock  clock.Clock
	packs  personaout.ProfileStore
	policy Policy

	mu    sync.Mutex
	cache domain.DetectionCache
}

func NewPersonaService(clk clock.Clock, packs personaout.ProfileStore, policy Policy) *PersonaService {
	if policy.WindowDays <= 0 {
		policy.WindowDays = 14
	}
	return &PersonaService{clock: clk, packs: packs, policy: policy}
}

func (s *PersonaService) Policy() Policy {
	return s.policy
}

// Profiles merges custom packs over the built-in table; a pack profile
// with a built-in's name replaces it.
func (s *PersonaService) Profiles(ctx context.Context) ([]domain.Profile, error) {
	merged := map[string]domain.Profile{}
	for _, p := range domain.Builtins() {
		merged[p.Name] = p
	}
	if s.packs != nil {
		custom, err := s.packs.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("load profile packs: %w", err)
		}
		for _, p := range custom {
			merged[p.Name] = p
		}
	}
	profiles := make([]domain.Profile, 0, len(merged))
	for _, p := range merged {
		profiles = append(profiles, p)
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Name < profiles[j].Name })
	return profiles, nil
}

func (s *PersonaService) Get(ctx context.Context, name string) (domain.Profile, error) {
	profiles, err := s.Profiles(ctx)
	if err != nil {
		return domain.Profile{}, err
	}
	for _, p := range profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return domain.Profile{}, fmt.Errorf("%w: %q", apperrors.ErrUnknownPersona, name)
}

// CachedDetection answers from the cache when it is still warm.
func (s *PersonaService) CachedDetection() (domain.DetectionCache, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cache.Valid(s.clock.Now(), s.policy.CacheTTL) {
		return s.cache, true
	}
	return domain.DetectionCache{}, false
}

func (s *PersonaService) StoreDetection(persona string) domain.DetectionCache {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = domain.DetectionCache{Persona: persona, ComputedAt: s.clock.Now()}
	return s.cache
}

func (s *PersonaService) InvalidateDetection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = domain.DetectionCache{}
}

// Window returns the [from, to] date strings of the detection lookback
// ending yesterday.
func (s *PersonaService) Window() (string, string) {
	const layout = "2006-01-02"
	now := s.clock.Now().In(s.clock.Location())
	to := now.AddDate(0, 0, -1)
	from := to.AddDate(0, 0, -(s.policy.WindowDays - 1))
	return from.Format(layout), to.Format(layout)
}

// WindowBounds is the same lookback as unix-millisecond [start, end).
func (s *PersonaService) WindowBounds() (int64, int64, error) {
	const layout = "2006-01-02"
	fromDate, toDate := s.Window()
	from, err := time.ParseInLocation(layout, fromDate, s.clock.Location())
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad window start %q", apperrors.ErrInvalidInput, fromDate)
	}
	to, err := time.ParseInLocation(layout, toDate, s.clock.Location())
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad window end %q", apperrors.ErrInvalidInput, toDate)
	}
	return from.UnixMilli(), to.AddDate(0, 0, 1).UnixMilli(), nil
}
