package service

import (
	"context"
	"fmt"
	"sort"

	"unhook/internal/modules/timeline/domain"
	timelineout "unhook/internal/modules/timeline/port/out"
	"unhook/internal/platform/clock"
	"unhook/internal/platform/random"
)

type TimelineService struct {
	clock             clock.Clock
	store             timelineout.SessionStore
	reopenThresholdMS int64
}

func NewTimelineService(clk clock.Clock, store timelineout.SessionStore, reopenThresholdMS int64) *TimelineService {
	return &TimelineService{clock: clk, store: store, reopenThresholdMS: reopenThresholdMS}
}

func (s *TimelineService) Synthesize(bp domain.Blueprint, seed int64, days int, apps []string) ([]domain.Session, map[int]bool) {
	r := random.New(seed)
	sessions := domain.Synthesize(r, bp, s.clock.Now(), s.clock.Location(), days, apps)
	sessions = domain.ApplyQuickReopens(r, sessions, bp.QuickReopenRate, s.clock.Location())
	return sessions, domain.DetectQuickReopens(sessions, s.reopenThresholdMS)
}

// Normalize orders external records, derives calendar dates, and flags
// quick reopens; the extractor collaborator has already applied its
// minimum-duration and merge-gap policy.
func (s *TimelineService) Normalize(sessions []domain.Session) ([]domain.Session, map[int]bool) {
	loc := s.clock.Location()
	for i := range sessions {
		sessions[i].DurationMS = sessions[i].EndMS - sessions[i].StartMS
		sessions[i].Date = domain.DateOf(sessions[i].StartMS, loc)
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].StartMS < sessions[j].StartMS
	})
	return sessions, domain.DetectQuickReopens(sessions, s.reopenThresholdMS)
}

func (s *TimelineService) Persist(ctx context.Context, sessions []domain.Session) ([]int64, error) {
	ids := make([]int64, 0, len(sessions))
	for _, session := range sessions {
		id, err := s.store.Upsert(ctx, session)
		if err != nil {
			return nil, fmt.Errorf("persist session %s@%d: %w", session.App, session.StartMS, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *TimelineService) Record(ctx context.Context, session domain.Session) (domain.Session, error) {
	session.DurationMS = session.EndMS - session.StartMS
	session.Date = domain.DateOf(session.StartMS, s.clock.Location())
	id, err := s.store.Upsert(ctx, session)
	if err != nil {
		return domain.Session{}, fmt.Errorf("record session: %w", err)
	}
	session.ID = id
	return session, nil
}

func (s *TimelineService) InRange(ctx context.Context, app string, startMS, endMS int64) ([]domain.Session, error) {
	return s.store.InRange(ctx, app, startMS, endMS)
}
