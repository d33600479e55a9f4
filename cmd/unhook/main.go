package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"unhook/internal/bootstrap"
	interventiondto "unhook/internal/modules/intervention/dto"
	"unhook/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "unhook",
		Short:         "Screen-time analytics and intervention data core",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data", ".", "data directory")

	root.AddCommand(newPersonaCmd(&dataDir))
	root.AddCommand(newSeedCmd(&dataDir))
	root.AddCommand(newRolloverCmd(&dataDir))
	root.AddCommand(newStatsCmd(&dataDir))
	root.AddCommand(newSessionsCmd(&dataDir))
	root.AddCommand(newGoalCmd(&dataDir))
	root.AddCommand(newInterventionCmd(&dataDir))
	root.AddCommand(newExtractorCmd(&dataDir))
	return root
}

func loadApp(dataDir string) (*bootstrap.App, error) {
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func withApp(dataDir string, fn func(app *bootstrap.App) error) error {
	app, err := loadApp(dataDir)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return fn(app)
}

func newPersonaCmd(dataDir *string) *cobra.Command {
	persona := &cobra.Command{Use: "persona", Short: "Persona registry and detection"}

	persona.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List known personas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				profiles, err := app.PersonaCLI.List(context.Background())
				if err != nil {
					return err
				}
				for _, p := range profiles {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", p.Name, p.Description)
				}
				return nil
			})
		},
	})

	persona.AddCommand(&cobra.Command{
		Use:   "show <name>",
		Short: "Show a persona profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				p, err := app.PersonaCLI.Show(context.Background(), args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(out, "name: %s\ndescription: %s\n", p.Name, p.Description)
				_, _ = fmt.Fprintf(out, "sessions/day: %d-%d\navg session: %d-%d min\nlongest session: %d-%d min\ndaily usage: %d-%d min\n",
					p.SessionsPerDay[0], p.SessionsPerDay[1],
					p.AverageSessionMinutes[0], p.AverageSessionMinutes[1],
					p.LongestSessionMinutes[0], p.LongestSessionMinutes[1],
					p.DailyUsageMinutes[0], p.DailyUsageMinutes[1])
				_, _ = fmt.Fprintf(out, "quick reopen rate: %.2f\nextended session rate: %.2f\ngoal compliance: %.2f\nweekend multiplier: %.2f\nhas goals: %t\n",
					p.QuickReopenRate, p.ExtendedSessionRate, p.GoalComplianceRate, p.WeekendUsageMultiplier, p.HasGoals)
				return nil
			})
		},
	})

	var invalidate bool
	detect := &cobra.Command{
		Use:   "detect",
		Short: "Classify recent usage against the persona registry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				d, err := app.PersonaCLI.Detect(context.Background(), invalidate)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "persona=%s cached=%t computed_at=%s\n", d.Persona, d.Cached, d.ComputedAt)
				if !d.Cached {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "days=%d sessions/day=%.1f minutes/day=%.1f quick_reopen_rate=%.2f\n",
						d.Days, d.SessionsPerDay, d.MinutesPerDay, d.QuickReopenRate)
				}
				return nil
			})
		},
	}
	detect.Flags().BoolVar(&invalidate, "invalidate", false, "drop the cached classification first")
	persona.AddCommand(detect)

	return persona
}

func newSeedCmd(dataDir *string) *cobra.Command {
	var persona string
	var days int
	var apps []string
	var seed int64

	seedCmd := &cobra.Command{
		Use:   "seed --persona <name>",
		Short: "Generate a synthetic dataset for a persona",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(persona) == "" {
				return fmt.Errorf("--persona is required")
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.SeedCLI.Seed(context.Background(), persona, days, apps, seed)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "seeded persona=%s seed=%d days=%d sessions=%d quick_reopens=%d goals=%d stats=%d results=%d\n",
					out.Persona, out.Seed, out.Days, out.Sessions, out.QuickReopens, out.Goals, out.Stats, out.Results)
				return nil
			})
		},
	}
	seedCmd.Flags().StringVar(&persona, "persona", "", "persona name")
	seedCmd.Flags().IntVar(&days, "days", 0, "days of history to generate (default 30)")
	seedCmd.Flags().StringSliceVar(&apps, "apps", nil, "apps to generate usage for")
	seedCmd.Flags().Int64Var(&seed, "seed", 0, "rng seed (0 derives one from the clock)")

	var extractorName string
	var extractorDays int
	var extractorSeed int64
	fromExtractor := &cobra.Command{
		Use:   "from-extractor --name <extractor>",
		Short: "Ingest real usage from a registered extractor",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(extractorName) == "" {
				return fmt.Errorf("--name is required")
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.SeedCLI.SeedFromExtractor(context.Background(), extractorName, extractorDays, extractorSeed)
				if err != nil {
					return err
				}
				if out.Fallback {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "insufficient real usage, fell back to persona=%s\n", out.Persona)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "seeded days=%d sessions=%d quick_reopens=%d stats=%d extracted=%dmin\n",
					out.Days, out.Sessions, out.QuickReopens, out.Stats, out.ExtractedTotal)
				return nil
			})
		},
	}
	fromExtractor.Flags().StringVar(&extractorName, "name", "", "extractor name")
	fromExtractor.Flags().IntVar(&extractorDays, "days", 0, "days of history to pull (default 7)")
	fromExtractor.Flags().Int64Var(&extractorSeed, "seed", 0, "rng seed for the fallback baseline")

	seedCmd.AddCommand(fromExtractor)
	return seedCmd
}

func newRolloverCmd(dataDir *string) *cobra.Command {
	var date string
	rollover := &cobra.Command{
		Use:   "rollover",
		Short: "Close out a day: apply usage to streaks and recoveries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.GoalCLI.Rollover(context.Background(), date)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "rollover date=%s attempts=%d\n", out.Date, out.Attempts)
				for _, r := range out.Results {
					status := "met"
					switch {
					case r.Skipped:
						status = "skipped"
					case r.Frozen:
						status = "frozen"
					case r.Broke:
						status = "broke"
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\tusage=%dmin\t%s\tstreak=%d longest=%d", r.App, r.UsageMinutes, status, r.CurrentStreak, r.LongestStreak)
					if r.RecoveryOpened {
						_, _ = fmt.Fprint(cmd.OutOrStdout(), "\trecovery opened")
					}
					if r.RecoveryDone {
						_, _ = fmt.Fprint(cmd.OutOrStdout(), "\trecovery complete")
					}
					_, _ = fmt.Fprintln(cmd.OutOrStdout())
				}
				return nil
			})
		},
	}
	rollover.Flags().StringVar(&date, "date", "", "day to close out, YYYY-MM-DD (default yesterday)")
	return rollover
}

func newStatsCmd(dataDir *string) *cobra.Command {
	var app string
	var days int
	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show daily usage stats",
		RunE: func(cmd *cobra.Command, _ []string) error {
			from, to := dateWindow(days)
			return withApp(*dataDir, func(a *bootstrap.App) error {
				rows, err := a.StatsCLI.Query(context.Background(), app, from, to)
				if err != nil {
					return err
				}
				if len(rows) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no stats")
					return nil
				}
				for _, s := range rows {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%dmin\tsessions=%d longest=%dmin alerts=%d/%d synthetic=%t\n",
						s.Date, s.App, s.TotalDurationMS/60_000, s.SessionCount, s.LongestSessionMS/60_000, s.AlertsProceeded, s.AlertsShown, s.Synthetic)
				}
				return nil
			})
		},
	}
	stats.Flags().StringVar(&app, "app", "", "filter by app")
	stats.Flags().IntVar(&days, "days", 7, "days of history to show")
	return stats
}

func newSessionsCmd(dataDir *string) *cobra.Command {
	var app string
	var days int
	sessions := &cobra.Command{
		Use:   "sessions",
		Short: "List recorded sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			startMS, endMS := msWindow(days)
			return withApp(*dataDir, func(a *bootstrap.App) error {
				rows, err := a.TimelineCLI.List(context.Background(), app, startMS, endMS)
				if err != nil {
					return err
				}
				if len(rows) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
					return nil
				}
				for _, s := range rows {
					start := time.UnixMilli(s.StartMS).Local().Format("2006-01-02 15:04")
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%dmin", s.ID, s.App, start, s.DurationMS/60_000)
					if s.Interrupted {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\tinterrupted=%s", s.InterruptionReason)
					}
					_, _ = fmt.Fprintln(cmd.OutOrStdout())
				}
				return nil
			})
		},
	}
	sessions.Flags().StringVar(&app, "app", "", "filter by app")
	sessions.Flags().IntVar(&days, "days", 7, "days of history to show")

	var startMS, endMS int64
	record := &cobra.Command{
		Use:   "record <app> --start-ms <unix-ms> --end-ms <unix-ms>",
		Short: "Record a single session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataDir, func(a *bootstrap.App) error {
				s, err := a.TimelineCLI.Record(context.Background(), args[0], startMS, endMS)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "recorded %d %s %s %dmin\n", s.ID, s.App, s.Date, s.DurationMS/60_000)
				return nil
			})
		},
	}
	record.Flags().Int64Var(&startMS, "start-ms", 0, "session start, unix milliseconds")
	record.Flags().Int64Var(&endMS, "end-ms", 0, "session end, unix milliseconds")
	sessions.AddCommand(record)
	return sessions
}

func newGoalCmd(dataDir *string) *cobra.Command {
	goal := &cobra.Command{Use: "goal", Short: "Daily limit goals, streaks, freezes"}

	goal.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List goals and streaks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				goals, err := app.GoalCLI.List(context.Background())
				if err != nil {
					return err
				}
				if len(goals) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no goals")
					return nil
				}
				for _, g := range goals {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\tlimit=%dmin\tstreak=%d longest=%d since=%s\n",
						g.App, g.DailyLimitMinutes, g.CurrentStreak, g.LongestStreak, g.StartDate)
				}
				return nil
			})
		},
	})

	var limit int
	set := &cobra.Command{
		Use:   "set <app> --limit <minutes>",
		Short: "Set a daily limit goal for an app",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive")
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				g, err := app.GoalCLI.Set(context.Background(), args[0], limit)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "goal set: %s limit=%dmin since=%s\n", g.App, g.DailyLimitMinutes, g.StartDate)
				return nil
			})
		},
	}
	set.Flags().IntVar(&limit, "limit", 0, "daily limit in minutes")
	goal.AddCommand(set)

	var freezeDate string
	freeze := &cobra.Command{
		Use:   "freeze <app>",
		Short: "Spend a streak freeze for an app",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				status, err := app.GoalCLI.ActivateFreeze(context.Background(), args[0], freezeDate)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "freeze active: %s date=%s remaining=%d\n", status.App, status.Date, status.Remaining)
				return nil
			})
		},
	}
	freeze.Flags().StringVar(&freezeDate, "date", "", "day to freeze, YYYY-MM-DD (default today)")
	goal.AddCommand(freeze)

	goal.AddCommand(&cobra.Command{
		Use:   "recovery <app>",
		Short: "Show an app's streak recovery progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				r, err := app.GoalCLI.Recovery(context.Background(), args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "recovery %s: previous_streak=%d started=%s elapsed=%d complete=%t",
					r.App, r.PreviousStreak, r.StartDate, r.DaysElapsed, r.Complete)
				if r.Complete {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " completed=%s", r.CompletedDate)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
				return nil
			})
		},
	})

	return goal
}

func newInterventionCmd(dataDir *string) *cobra.Command {
	intervention := &cobra.Command{Use: "intervention", Short: "Intervention outcome records"}

	intervention.AddCommand(&cobra.Command{
		Use:   "list <app>",
		Short: "List intervention results for an app",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				results, err := app.InterventionCLI.ForApp(context.Background(), args[0])
				if err != nil {
					return err
				}
				if len(results) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no results")
					return nil
				}
				for _, r := range results {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session=%d %s choice=%s decision=%dms content=%s hour=%d", r.SessionID, r.App, r.UserChoice, r.DecisionTimeMS, r.ContentType, r.HourOfDay)
					if r.OutcomeRecorded {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), " final=%dmin ended_normally=%t", r.FinalDurationMS/60_000, r.EndedNormally)
					} else {
						_, _ = fmt.Fprint(cmd.OutOrStdout(), " outcome=pending")
					}
					_, _ = fmt.Fprintln(cmd.OutOrStdout())
				}
				return nil
			})
		},
	})

	var decision interventiondto.DecisionInput
	record := &cobra.Command{
		Use:   "record <app> --session <id> --choice <proceed|go_back|dismissed>",
		Short: "Record a just-answered intervention prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if decision.SessionID <= 0 {
				return fmt.Errorf("--session is required")
			}
			decision.App = args[0]
			return withApp(*dataDir, func(app *bootstrap.App) error {
				r, err := app.InterventionCLI.RecordDecision(context.Background(), decision)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "decision recorded: session=%d %s choice=%s outcome=pending\n", r.SessionID, r.App, r.UserChoice)
				return nil
			})
		},
	}
	record.Flags().Int64Var(&decision.SessionID, "session", 0, "session id")
	record.Flags().Int64Var(&decision.StartMS, "start-ms", 0, "session start, unix milliseconds")
	record.Flags().Int64Var(&decision.DurationSoFarMS, "duration-ms", 0, "session duration so far in milliseconds")
	record.Flags().StringVar(&decision.UserChoice, "choice", "", "proceed, go_back, or dismissed")
	record.Flags().Int64Var(&decision.DecisionTimeMS, "decision-ms", 0, "time taken to answer the prompt")
	record.Flags().StringVar(&decision.ContentType, "content", "", "prompt content type")
	record.Flags().BoolVar(&decision.QuickReopen, "quick-reopen", false, "session was a quick reopen")
	record.Flags().IntVar(&decision.SessionCount, "session-count", 0, "ordinal of this session today")
	intervention.AddCommand(record)

	var sessionID, finalMS int64
	var abandoned bool
	complete := &cobra.Command{
		Use:   "complete --session <id> --final-ms <ms>",
		Short: "Record how an intervened session actually ended",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if sessionID <= 0 {
				return fmt.Errorf("--session is required")
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				r, err := app.InterventionCLI.CompleteOutcome(context.Background(), sessionID, finalMS, !abandoned)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "outcome recorded: session=%d final=%dmin ended_normally=%t\n", r.SessionID, r.FinalDurationMS/60_000, r.EndedNormally)
				return nil
			})
		},
	}
	complete.Flags().Int64Var(&sessionID, "session", 0, "session id")
	complete.Flags().Int64Var(&finalMS, "final-ms", 0, "final session duration in milliseconds")
	complete.Flags().BoolVar(&abandoned, "abandoned", false, "session did not end normally")
	intervention.AddCommand(complete)

	return intervention
}

func newExtractorCmd(dataDir *string) *cobra.Command {
	extractor := &cobra.Command{Use: "extractor", Short: "Usage extractor plugins"}

	extractor.AddCommand(&cobra.Command{
		Use:   "register <name> <binary>",
		Short: "Register an extractor binary and pin its checksum",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				m, err := app.ExtractCLI.Register(context.Background(), args[0], args[1])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "registered %s binary=%s sha256=%s\n", m.Name, m.Binary, m.SHA256)
				return nil
			})
		},
	})

	extractor.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List registered extractors",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				manifests, err := app.ExtractCLI.List(context.Background())
				if err != nil {
					return err
				}
				if len(manifests) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no extractors registered")
					return nil
				}
				for _, m := range manifests {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\tenabled=%t\t%s\n", m.Name, m.Enabled, m.Binary)
				}
				return nil
			})
		},
	})

	extractor.AddCommand(&cobra.Command{
		Use:   "check <name>",
		Short: "Verify an extractor's checksum and handshake",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				meta, err := app.ExtractCLI.Check(context.Background(), args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s version=%s source=%s\n", meta.Name, meta.Version, meta.Source)
				return nil
			})
		},
	})

	return extractor
}

// dateWindow returns an inclusive [from, to] date range ending today.
func dateWindow(days int) (string, string) {
	if days <= 0 {
		days = 1
	}
	now := time.Now()
	return now.AddDate(0, 0, -(days - 1)).Format("2006-01-02"), now.Format("2006-01-02")
}

func msWindow(days int) (int64, int64) {
	if days <= 0 {
		days = 1
	}
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return midnight.AddDate(0, 0, -(days - 1)).UnixMilli(), now.UnixMilli()
}
