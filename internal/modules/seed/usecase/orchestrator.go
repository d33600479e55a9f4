package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	extractdto "unhook/internal/modules/extract/dto"
	extractin "unhook/internal/modules/extract/port/in"
	goaldto "unhook/internal/modules/goal/dto"
	goalin "unhook/internal/modules/goal/port/in"
	interventiondto "unhook/internal/modules/intervention/dto"
	interventionin "unhook/internal/modules/intervention/port/in"
	personain "unhook/internal/modules/persona/port/in"
	"unhook/internal/modules/seed/dto"
	seedin "unhook/internal/modules/seed/port/in"
	statsdto "unhook/internal/modules/stats/dto"
	statsin "unhook/internal/modules/stats/port/in"
	timelinedto "unhook/internal/modules/timeline/dto"
	timelinein "unhook/internal/modules/timeline/port/in"
	"unhook/internal/platform/clock"
	apperrors "unhook/internal/platform/errors"
	"unhook/internal/platform/tx"
)

const (
	defaultDays          = 30
	defaultExtractorDays = 7
	fallbackPersona      = "casual"
)

func defaultApps() []string {
	return []string{"instagram", "tiktok", "youtube", "twitter", "reddit"}
}

// Orchestrator owns the in-memory dataset during generation and is the
// only component that performs the bulk write. Everything inside
// Within either lands together or not at all.
type Orchestrator struct {
	clock         clock.Clock
	personas      personain.Usecase
	timeline      timelinein.Usecase
	stats         statsin.Usecase
	goals         goalin.Usecase
	interventions interventionin.Usecase
	extract       extractin.Usecase
	txm           tx.Manager
}

func NewOrchestrator(
	clk clock.Clock,
	personas personain.Usecase,
	timeline timelinein.Usecase,
	stats statsin.Usecase,
	goals goalin.Usecase,
	interventions interventionin.Usecase,
	extract extractin.Usecase,
	txm tx.Manager,
) seedin.Usecase {
	return &Orchestrator{
		clock:         clk,
		personas:      personas,
		timeline:      timeline,
		stats:         stats,
		goals:         goals,
		interventions: interventions,
		extract:       extract,
		txm:           txm,
	}
}

func (o *Orchestrator) Seed(ctx context.Context, input dto.SeedInput) (dto.SeedOutput, error) {
	days := input.Days
	if days <= 0 {
		days = defaultDays
	}
	apps := input.Apps
	if len(apps) == 0 {
		apps = defaultApps()
	}
	seed := input.Seed
	if seed == 0 {
		seed = o.clock.Now().UnixNano()
	}

	profile, err := o.personas.Get(ctx, input.Persona)
	if err != nil {
		return dto.SeedOutput{}, err
	}

	// Each stage draws from its own derived stream so inserting a stage
	// never shifts another stage's samples.
	sessions, err := o.timeline.Synthesize(ctx, timelinedto.SynthesizeInput{
		Seed:                  seed,
		Days:                  days,
		Apps:                  apps,
		SessionsPerDay:        profile.SessionsPerDay,
		AverageSessionMinutes: profile.AverageSessionMinutes,
		LongestSessionMinutes: profile.LongestSessionMinutes,
		ExtendedSessionRate:   profile.ExtendedSessionRate,
		QuickReopenRate:       profile.QuickReopenRate,
		WeekendMultiplier:     profile.WeekendUsageMultiplier,
		TimeOfDay:             profile.TimeOfDay,
	})
	if err != nil {
		return dto.SeedOutput{}, fmt.Errorf("synthesize sessions: %w", err)
	}

	goals, err := o.goals.Generate(ctx, goaldto.GenerateInput{
		Seed:           seed + 1,
		Apps:           apps,
		StartDate:      o.startDate(days),
		HasGoals:       profile.HasGoals,
		ComplianceRate: profile.GoalComplianceRate,
		StreakDays:     profile.StreakDays,
	})
	if err != nil {
		return dto.SeedOutput{}, fmt.Errorf("generate goals: %w", err)
	}

	stats, err := o.stats.Aggregate(ctx, statsdto.AggregateInput{
		Usage:     usageOf(sessions.Sessions),
		Estimate:  true,
		Synthetic: true,
	})
	if err != nil {
		return dto.SeedOutput{}, fmt.Errorf("aggregate stats: %w", err)
	}

	out := dto.SeedOutput{
		Persona:      input.Persona,
		Seed:         seed,
		Days:         days,
		Sessions:     len(sessions.Sessions),
		QuickReopens: countReopens(sessions.QuickReopens),
		Goals:        len(goals),
		Stats:        len(stats),
	}

	// Write order: goals first (no dependencies), then sessions to
	// capture store ids, then stats, then results referencing the ids.
	err = o.txm.Within(ctx, func(ctx context.Context) error {
		if err := o.goals.Persist(ctx, goals); err != nil {
			return fmt.Errorf("persist goals: %w", err)
		}
		ids, err := o.timeline.Persist(ctx, sessions.Sessions)
		if err != nil {
			return fmt.Errorf("persist sessions: %w", err)
		}
		if err := o.stats.Persist(ctx, stats); err != nil {
			return fmt.Errorf("persist stats: %w", err)
		}
		results, err := o.interventions.Synthesize(ctx, interventiondto.SynthesizeInput{
			Seed:          seed + 2,
			Sessions:      sessionRefs(sessions.Sessions, ids),
			QuickReopen:   reopenFlags(sessions.QuickReopens, len(sessions.Sessions)),
			CurrentStreak: maxStreak(goals),
			Response:      profile.InterventionResponse,
			DecisionTime:  profile.DecisionTime,
		})
		if err != nil {
			return fmt.Errorf("synthesize intervention results: %w", err)
		}
		if err := o.interventions.Persist(ctx, results); err != nil {
			return fmt.Errorf("persist intervention results: %w", err)
		}
		out.Results = len(results)
		return nil
	})
	if err != nil {
		return dto.SeedOutput{}, fmt.Errorf("seed %s: %w", input.Persona, err)
	}
	return out, nil
}

func (o *Orchestrator) SeedFromExtractor(ctx context.Context, input dto.ExtractorSeedInput) (dto.SeedOutput, error) {
	days := input.Days
	if days <= 0 {
		days = defaultExtractorDays
	}
	startMS, endMS := o.extractionWindow(days)

	pulled, err := o.extract.Pull(ctx, extractdto.PullInput{Name: input.Extractor, StartMS: startMS, EndMS: endMS})
	if errors.Is(err, apperrors.ErrInsufficientData) {
		out, seedErr := o.Seed(ctx, dto.SeedInput{Persona: fallbackPersona, Days: days, Seed: input.Seed})
		if seedErr != nil {
			return dto.SeedOutput{}, seedErr
		}
		out.Fallback = true
		return out, nil
	}
	if err != nil {
		return dto.SeedOutput{}, err
	}

	normalized, err := o.timeline.Normalize(ctx, recordInputs(pulled.Records))
	if err != nil {
		return dto.SeedOutput{}, fmt.Errorf("normalize extracted sessions: %w", err)
	}
	stats, err := o.stats.Aggregate(ctx, statsdto.AggregateInput{Usage: usageOf(normalized.Sessions)})
	if err != nil {
		return dto.SeedOutput{}, fmt.Errorf("aggregate extracted stats: %w", err)
	}

	out := dto.SeedOutput{
		Days:           days,
		Sessions:       len(normalized.Sessions),
		QuickReopens:   countReopens(normalized.QuickReopens),
		Stats:          len(stats),
		ExtractedTotal: pulled.TotalMinutes,
	}
	err = o.txm.Within(ctx, func(ctx context.Context) error {
		if _, err := o.timeline.Persist(ctx, normalized.Sessions); err != nil {
			return fmt.Errorf("persist sessions: %w", err)
		}
		if err := o.stats.Persist(ctx, stats); err != nil {
			return fmt.Errorf("persist stats: %w", err)
		}
		return nil
	})
	if err != nil {
		return dto.SeedOutput{}, fmt.Errorf("seed from extractor %s: %w", input.Extractor, err)
	}
	return out, nil
}

func (o *Orchestrator) startDate(days int) string {
	now := o.clock.Now().In(o.clock.Location())
	return now.AddDate(0, 0, -days).Format("2006-01-02")
}

// extractionWindow spans the last full days plus today so far.
func (o *Orchestrator) extractionWindow(days int) (int64, int64) {
	now := o.clock.Now().In(o.clock.Location())
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, o.clock.Location())
	return midnight.AddDate(0, 0, -days).UnixMilli(), now.UnixMilli()
}

func usageOf(sessions []timelinedto.Session) []statsdto.Usage {
	usage := make([]statsdto.Usage, 0, len(sessions))
	for _, s := range sessions {
		usage = append(usage, statsdto.Usage{App: s.App, Date: s.Date, DurationMS: s.DurationMS})
	}
	return usage
}

func sessionRefs(sessions []timelinedto.Session, ids []int64) []interventiondto.SessionRef {
	refs := make([]interventiondto.SessionRef, 0, len(sessions))
	for i, s := range sessions {
		id := s.ID
		if i < len(ids) {
			id = ids[i]
		}
		refs = append(refs, interventiondto.SessionRef{
			ID:         id,
			App:        s.App,
			StartMS:    s.StartMS,
			DurationMS: s.DurationMS,
			Date:       s.Date,
		})
	}
	return refs
}

func recordInputs(records []extractdto.Record) []timelinedto.RecordInput {
	out := make([]timelinedto.RecordInput, 0, len(records))
	for _, r := range records {
		out = append(out, timelinedto.RecordInput{App: r.App, StartMS: r.StartMS, EndMS: r.EndMS})
	}
	return out
}

func reopenFlags(reopens map[int]bool, n int) []bool {
	flags := make([]bool, n)
	for i := range flags {
		flags[i] = reopens[i]
	}
	return flags
}

func countReopens(reopens map[int]bool) int {
	count := 0
	for _, flagged := range reopens {
		if flagged {
			count++
		}
	}
	return count
}

func maxStreak(goals []goaldto.Goal) int {
	best := 0
	for _, g := range goals {
		if g.CurrentStreak > best {
			best = g.CurrentStreak
		}
	}
	return best
}
