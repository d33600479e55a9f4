package usecase

import (
	"context"
	"fmt"
	"time"

	"unhook/internal/modules/persona/domain"
	"unhook/internal/modules/persona/dto"
	personain "unhook/internal/modules/persona/port/in"
	"unhook/internal/modules/persona/service"
	statsdto "unhook/internal/modules/stats/dto"
	statsin "unhook/internal/modules/stats/port/in"
	timelinedto "unhook/internal/modules/timeline/dto"
	timelinein "unhook/internal/modules/timeline/port/in"
)

type Interactor struct {
	svc      *service.PersonaService
	stats    statsin.Usecase
	timeline timelinein.Usecase
}

func NewInteractor(svc *service.PersonaService, stats statsin.Usecase, timeline timelinein.Usecase) personain.Usecase {
	return &Interactor{svc: svc, stats: stats, timeline: timeline}
}

func (i *Interactor) List(ctx context.Context) ([]dto.Profile, error) {
	profiles, err := i.svc.Profiles(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.Profile, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, ToDTO(p))
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, name string) (dto.Profile, error) {
	profile, err := i.svc.Get(ctx, name)
	if err != nil {
		return dto.Profile{}, err
	}
	return ToDTO(profile), nil
}

func (i *Interactor) Detect(ctx context.Context, input dto.DetectInput) (dto.Detection, error) {
	if input.Invalidate {
		i.svc.InvalidateDetection()
	}
	if cached, ok := i.svc.CachedDetection(); ok {
		return dto.Detection{
			Persona:    cached.Persona,
			Cached:     true,
			ComputedAt: cached.ComputedAt.Format(time.RFC3339),
		}, nil
	}

	obs, err := i.observe(ctx)
	if err != nil {
		return dto.Detection{}, err
	}
	profiles, err := i.svc.Profiles(ctx)
	if err != nil {
		return dto.Detection{}, err
	}
	match, err := domain.Classify(obs, profiles)
	if err != nil {
		return dto.Detection{}, err
	}
	cache := i.svc.StoreDetection(match.Name)
	return dto.Detection{
		Persona:         match.Name,
		ComputedAt:      cache.ComputedAt.Format(time.RFC3339),
		Days:            obs.Days,
		SessionsPerDay:  obs.SessionsPerDay,
		MinutesPerDay:   obs.MinutesPerDay,
		QuickReopenRate: obs.QuickReopenRate,
	}, nil
}

// observe builds the usage fingerprint for the lookback window from
// persisted daily stats and the session timeline.
func (i *Interactor) observe(ctx context.Context) (domain.Observation, error) {
	from, to := i.svc.Window()
	stats, err := i.stats.Query(ctx, statsdto.QueryInput{FromDate: from, ToDate: to})
	if err != nil {
		return domain.Observation{}, fmt.Errorf("load detection stats: %w", err)
	}

	days := map[string]bool{}
	var sessions int
	var totalMS int64
	for _, s := range stats {
		days[s.Date] = true
		sessions += s.SessionCount
		totalMS += s.TotalDurationMS
	}
	if len(days) == 0 {
		return domain.Observation{Days: 0}, nil
	}

	startMS, endMS, err := i.svc.WindowBounds()
	if err != nil {
		return domain.Observation{}, err
	}
	timelineSessions, err := i.timeline.List(ctx, timelinedto.ListInput{StartMS: startMS, EndMS: endMS})
	if err != nil {
		return domain.Observation{}, fmt.Errorf("load detection sessions: %w", err)
	}

	dayCount := float64(len(days))
	return domain.Observation{
		Days:            len(days),
		SessionsPerDay:  float64(sessions) / dayCount,
		MinutesPerDay:   float64(totalMS) / 60_000 / dayCount,
		QuickReopenRate: reopenRate(timelineSessions, i.svc.Policy().ReopenThresholdMS),
	}, nil
}

// reopenRate mirrors the timeline's adjacency rule over dto records so
// detection does not reach into another module's domain.
func reopenRate(sessions []timelinedto.Session, thresholdMS int64) float64 {
	if len(sessions) < 2 {
		return 0
	}
	reopens := 0
	for idx := 1; idx < len(sessions); idx++ {
		gap := sessions[idx].StartMS - sessions[idx-1].EndMS
		if gap >= 0 && gap < thresholdMS && sessions[idx].Date == sessions[idx-1].Date {
			reopens++
		}
	}
	return float64(reopens) / float64(len(sessions))
}

func ToDTO(p domain.Profile) dto.Profile {
	return dto.Profile(p)
}

func FromDTO(p dto.Profile) domain.Profile {
	return domain.Profile(p)
}
