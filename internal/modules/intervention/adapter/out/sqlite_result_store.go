package out

import (
	"context"
	"database/sql"
	"fmt"

	"unhook/internal/modules/intervention/domain"
	interventionout "unhook/internal/modules/intervention/port/out"
	apperrors "unhook/internal/platform/errors"
	"unhook/internal/platform/sqlite"
)

type SQLiteResultStore struct {
	db *sqlite.DB
}

func NewSQLiteResultStore(db *sqlite.DB) (interventionout.ResultStore, error) {
	store := &SQLiteResultStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteResultStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS intervention_results (
  session_id INTEGER PRIMARY KEY,
  app TEXT NOT NULL,
  intervention_type TEXT NOT NULL,
  content_type TEXT NOT NULL,
  hour_of_day INTEGER NOT NULL,
  day_of_week INTEGER NOT NULL,
  is_weekend INTEGER NOT NULL,
  is_late_night INTEGER NOT NULL,
  session_count_today INTEGER NOT NULL,
  quick_reopen INTEGER NOT NULL,
  duration_so_far_ms INTEGER NOT NULL,
  user_choice TEXT NOT NULL,
  decision_time_ms INTEGER NOT NULL,
  outcome_recorded INTEGER NOT NULL DEFAULT 0,
  final_duration_ms INTEGER NOT NULL DEFAULT 0,
  ended_normally INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_intervention_results_app ON intervention_results(app);
`
	if _, err := s.db.Handle(ctx).ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create intervention_results table: %w", err)
	}
	return nil
}

func (s *SQLiteResultStore) Upsert(ctx context.Context, result domain.InterventionResult) error {
	const stmt = `
INSERT INTO intervention_results (
  session_id, app, intervention_type, content_type,
  hour_of_day, day_of_week, is_weekend, is_late_night,
  session_count_today, quick_reopen, duration_so_far_ms,
  user_choice, decision_time_ms,
  outcome_recorded, final_duration_ms, ended_normally
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(session_id) DO UPDATE SET
  app=excluded.app,
  intervention_type=excluded.intervention_type,
  content_type=excluded.content_type,
  hour_of_day=excluded.hour_of_day,
  day_of_week=excluded.day_of_week,
  is_weekend=excluded.is_weekend,
  is_late_night=excluded.is_late_night,
  session_count_today=excluded.session_count_today,
  quick_reopen=excluded.quick_reopen,
  duration_so_far_ms=excluded.duration_so_far_ms,
  user_choice=excluded.user_choice,
  decision_time_ms=excluded.decision_time_ms,
  outcome_recorded=excluded.outcome_recorded,
  final_duration_ms=excluded.final_duration_ms,
  ended_normally=excluded.ended_normally;
`
	_, err := s.db.Handle(ctx).ExecContext(ctx, stmt,
		result.SessionID, result.App, result.InterventionType, result.ContentType,
		result.HourOfDay, result.DayOfWeek, b2i(result.IsWeekend), b2i(result.IsLateNight),
		result.SessionCountToday, b2i(result.QuickReopen), result.DurationSoFarMS,
		result.UserChoice, result.DecisionTimeMS,
		b2i(result.OutcomeRecorded), result.FinalDurationMS, b2i(result.EndedNormally))
	if err != nil {
		return fmt.Errorf("upsert intervention result: %w", err)
	}
	return nil
}

func (s *SQLiteResultStore) BySession(ctx context.Context, sessionID int64) (domain.InterventionResult, error) {
	const query = selectColumns + ` WHERE session_id = ?;`
	rows, err := s.db.Handle(ctx).QueryContext(ctx, query, sessionID)
	if err != nil {
		return domain.InterventionResult{}, fmt.Errorf("get intervention result: %w", err)
	}
	results, err := scanResults(rows)
	if err != nil {
		return domain.InterventionResult{}, err
	}
	if len(results) == 0 {
		return domain.InterventionResult{}, apperrors.ErrNotFound
	}
	return results[0], nil
}

func (s *SQLiteResultStore) ForApp(ctx context.Context, app string) ([]domain.InterventionResult, error) {
	const query = selectColumns + ` WHERE app = ? ORDER BY session_id;`
	rows, err := s.db.Handle(ctx).QueryContext(ctx, query, app)
	if err != nil {
		return nil, fmt.Errorf("list intervention results: %w", err)
	}
	return scanResults(rows)
}

const selectColumns = `
SELECT session_id, app, intervention_type, content_type,
  hour_of_day, day_of_week, is_weekend, is_late_night,
  session_count_today, quick_reopen, duration_so_far_ms,
  user_choice, decision_time_ms,
  outcome_recorded, final_duration_ms, ended_normally
FROM intervention_results`

func scanResults(rows *sql.Rows) ([]domain.InterventionResult, error) {
	defer rows.Close()
	results := []domain.InterventionResult{}
	for rows.Next() {
		var r domain.InterventionResult
		var weekend, lateNight, reopen, recorded, normal int
		if err := rows.Scan(
			&r.SessionID, &r.App, &r.InterventionType, &r.ContentType,
			&r.HourOfDay, &r.DayOfWeek, &weekend, &lateNight,
			&r.SessionCountToday, &reopen, &r.DurationSoFarMS,
			&r.UserChoice, &r.DecisionTimeMS,
			&recorded, &r.FinalDurationMS, &normal); err != nil {
			return nil, fmt.Errorf("scan intervention result: %w", err)
		}
		r.IsWeekend = weekend != 0
		r.IsLateNight = lateNight != 0
		r.QuickReopen = reopen != 0
		r.OutcomeRecorded = recorded != 0
		r.EndedNormally = normal != 0
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate intervention results: %w", err)
	}
	return results, nil
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
