package bootstrap

import (
	"fmt"
	"time"

	extractinadapter "unhook/internal/modules/extract/adapter/in"
	extractoutadapter "unhook/internal/modules/extract/adapter/out"
	extractservice "unhook/internal/modules/extract/service"
	extractusecase "unhook/internal/modules/extract/usecase"
	goalinadapter "unhook/internal/modules/goal/adapter/in"
	goaloutadapter "unhook/internal/modules/goal/adapter/out"
	goalservice "unhook/internal/modules/goal/service"
	goalusecase "unhook/internal/modules/goal/usecase"
	interventioninadapter "unhook/internal/modules/intervention/adapter/in"
	interventionoutadapter "unhook/internal/modules/intervention/adapter/out"
	interventionservice "unhook/internal/modules/intervention/service"
	interventionusecase "unhook/internal/modules/intervention/usecase"
	personainadapter "unhook/internal/modules/persona/adapter/in"
	personaoutadapter "unhook/internal/modules/persona/adapter/out"
	personaservice "unhook/internal/modules/persona/service"
	personausecase "unhook/internal/modules/persona/usecase"
	seedinadapter "unhook/internal/modules/seed/adapter/in"
	seedusecase "unhook/internal/modules/seed/usecase"
	statsinadapter "unhook/internal/modules/stats/adapter/in"
	statsoutadapter "unhook/internal/modules/stats/adapter/out"
	statsservice "unhook/internal/modules/stats/service"
	statsusecase "unhook/internal/modules/stats/usecase"
	timelineinadapter "unhook/internal/modules/timeline/adapter/in"
	timelineoutadapter "unhook/internal/modules/timeline/adapter/out"
	timelineservice "unhook/internal/modules/timeline/service"
	timelineusecase "unhook/internal/modules/timeline/usecase"
	"unhook/internal/platform/clock"
	"unhook/internal/platform/config"
	"unhook/internal/platform/sqlite"
)

// detectionWindowDays is how much history the persona detector looks
// at. Two weeks covers both weekday and weekend rhythm.
const detectionWindowDays = 14

type App struct {
	PersonaCLI      personainadapter.CLIHandler
	TimelineCLI     timelineinadapter.CLIHandler
	StatsCLI        statsinadapter.CLIHandler
	GoalCLI         goalinadapter.CLIHandler
	InterventionCLI interventioninadapter.CLIHandler
	ExtractCLI      extractinadapter.CLIHandler
	SeedCLI         seedinadapter.CLIHandler

	db *sqlite.DB
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}

	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sessionStore, err := timelineoutadapter.NewSQLiteSessionStore(db)
	if err != nil {
		return nil, fmt.Errorf("new session store: %w", err)
	}
	statStore, err := statsoutadapter.NewSQLiteStatStore(db)
	if err != nil {
		return nil, fmt.Errorf("new stat store: %w", err)
	}
	goalStore, err := goaloutadapter.NewSQLiteGoalStore(db)
	if err != nil {
		return nil, fmt.Errorf("new goal store: %w", err)
	}
	recoveryStore, err := goaloutadapter.NewSQLiteRecoveryStore(db)
	if err != nil {
		return nil, fmt.Errorf("new recovery store: %w", err)
	}
	freezeStore, err := goaloutadapter.NewSQLiteFreezeStore(db)
	if err != nil {
		return nil, fmt.Errorf("new freeze store: %w", err)
	}
	resultStore, err := interventionoutadapter.NewSQLiteResultStore(db)
	if err != nil {
		return nil, fmt.Errorf("new result store: %w", err)
	}

	timelineUC := timelineusecase.NewInteractor(timelineservice.NewTimelineService(
		clk, sessionStore, cfg.Tuning.QuickReopenThresholdMS,
	))
	statsUC := statsusecase.NewInteractor(statsservice.NewStatsService(
		statStore, cfg.Tuning.AlertShownFraction, cfg.Tuning.AlertProceedFraction,
	))
	goalUC := goalusecase.NewInteractor(goalservice.NewGoalService(
		clk, goalStore, recoveryStore, freezeStore, goalservice.Policy{
			RecoveryLengthDays:     cfg.Tuning.RecoveryLengthDays,
			RecoveryRetentionDays:  cfg.Tuning.RecoveryRetentionDays,
			MinStreakForRecovery:   cfg.Tuning.MinStreakForRecovery,
			MonthlyFreezeAllowance: cfg.Tuning.MonthlyFreezeAllowance,
			RetryBudget:            cfg.Tuning.RolloverRetryBudget,
		},
	), timelineUC, statsUC)
	interventionUC := interventionusecase.NewInteractor(interventionservice.NewInterventionService(clk, resultStore))
	personaUC := personausecase.NewInteractor(personaservice.NewPersonaService(
		clk, personaoutadapter.NewYAMLProfileStore(cfg.PersonaDir), personaservice.Policy{
			CacheTTL:          time.Duration(cfg.Tuning.DetectionCacheTTLMinutes) * time.Minute,
			WindowDays:        detectionWindowDays,
			ReopenThresholdMS: cfg.Tuning.QuickReopenThresholdMS,
		},
	), statsUC, timelineUC)
	extractUC := extractusecase.NewInteractor(extractservice.NewExtractService(
		extractoutadapter.NewFileManifestStore(cfg.ExtractorDir),
		extractoutadapter.NewGRPCHost(),
		extractservice.Policy{MinUsageMinutes: cfg.Tuning.MinExtractedUsageMinutes},
	))
	seedUC := seedusecase.NewOrchestrator(clk, personaUC, timelineUC, statsUC, goalUC, interventionUC, extractUC, db)

	return &App{
		PersonaCLI:      personainadapter.NewCLIHandler(personaUC),
		TimelineCLI:     timelineinadapter.NewCLIHandler(timelineUC),
		StatsCLI:        statsinadapter.NewCLIHandler(statsUC),
		GoalCLI:         goalinadapter.NewCLIHandler(goalUC),
		InterventionCLI: interventioninadapter.NewCLIHandler(interventionUC),
		ExtractCLI:      extractinadapter.NewCLIHandler(extractUC),
		SeedCLI:         seedinadapter.NewCLIHandler(seedUC),
		db:              db,
	}, nil
}

func (a *App) Close() error {
	return a.db.Close()
}
