package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"unhook/internal/modules/goal/domain"
	goalout "unhook/internal/modules/goal/port/out"
	apperrors "unhook/internal/platform/errors"
	"unhook/internal/platform/sqlite"
)

type SQLiteRecoveryStore struct {
	db *sqlite.DB
}

func NewSQLiteRecoveryStore(db *sqlite.DB) (goalout.RecoveryStore, error) {
	store := &SQLiteRecoveryStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteRecoveryStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS streak_recoveries (
  app TEXT PRIMARY KEY,
  previous_streak INTEGER NOT NULL,
  start_date TEXT NOT NULL,
  days_elapsed INTEGER NOT NULL DEFAULT 0,
  last_progress_date TEXT NOT NULL DEFAULT '',
  complete INTEGER NOT NULL DEFAULT 0,
  completed_date TEXT NOT NULL DEFAULT '',
  notification_shown INTEGER NOT NULL DEFAULT 0
);
`
	if _, err := s.db.Handle(ctx).ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create streak_recoveries table: %w", err)
	}
	return nil
}

func (s *SQLiteRecoveryStore) Upsert(ctx context.Context, rec domain.StreakRecovery) error {
	const stmt = `
INSERT INTO streak_recoveries (app, previous_streak, start_date, days_elapsed, last_progress_date, complete, completed_date, notification_shown)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(app) DO UPDATE SET
  previous_streak=excluded.previous_streak,
  start_date=excluded.start_date,
  days_elapsed=excluded.days_elapsed,
  last_progress_date=excluded.last_progress_date,
  complete=excluded.complete,
  completed_date=excluded.completed_date,
  notification_shown=excluded.notification_shown;
`
	_, err := s.db.Handle(ctx).ExecContext(ctx, stmt,
		rec.App, rec.PreviousStreak, rec.StartDate, rec.DaysElapsed, rec.LastProgressDate,
		boolToInt(rec.Complete), rec.CompletedDate, boolToInt(rec.NotificationShown))
	if err != nil {
		return fmt.Errorf("upsert recovery: %w", err)
	}
	return nil
}

func (s *SQLiteRecoveryStore) Get(ctx context.Context, app string) (domain.StreakRecovery, error) {
	const query = `
SELECT app, previous_streak, start_date, days_elapsed, last_progress_date, complete, completed_date, notification_shown
FROM streak_recoveries WHERE app = ?;
`
	rec, err := scanRecovery(s.db.Handle(ctx).QueryRowContext(ctx, query, app))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.StreakRecovery{}, apperrors.ErrNotFound
	}
	if err != nil {
		return domain.StreakRecovery{}, fmt.Errorf("get recovery: %w", err)
	}
	return rec, nil
}

func (s *SQLiteRecoveryStore) List(ctx context.Context) ([]domain.StreakRecovery, error) {
	const query = `
SELECT app, previous_streak, start_date, days_elapsed, last_progress_date, complete, completed_date, notification_shown
FROM streak_recoveries ORDER BY app;
`
	rows, err := s.db.Handle(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list recoveries: %w", err)
	}
	defer rows.Close()

	recoveries := []domain.StreakRecovery{}
	for rows.Next() {
		var rec domain.StreakRecovery
		var complete, shown int
		if err := rows.Scan(&rec.App, &rec.PreviousStreak, &rec.StartDate, &rec.DaysElapsed, &rec.LastProgressDate, &complete, &rec.CompletedDate, &shown); err != nil {
			return nil, fmt.Errorf("scan recovery: %w", err)
		}
		rec.Complete = complete != 0
		rec.NotificationShown = shown != 0
		recoveries = append(recoveries, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recoveries: %w", err)
	}
	return recoveries, nil
}

func (s *SQLiteRecoveryStore) Delete(ctx context.Context, app string) error {
	if _, err := s.db.Handle(ctx).ExecContext(ctx, `DELETE FROM streak_recoveries WHERE app = ?`, app); err != nil {
		return fmt.Errorf("delete recovery: %w", err)
	}
	return nil
}

func scanRecovery(row *sql.Row) (domain.StreakRecovery, error) {
	var rec domain.StreakRecovery
	var complete, shown int
	err := row.Scan(&rec.App, &rec.PreviousStreak, &rec.StartDate, &rec.DaysElapsed, &rec.LastProgressDate, &complete, &rec.CompletedDate, &shown)
	if err != nil {
		return domain.StreakRecovery{}, err
	}
	rec.Complete = complete != 0
	rec.NotificationShown = shown != 0
	return rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
