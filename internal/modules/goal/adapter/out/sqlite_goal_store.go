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

type SQLiteGoalStore struct {
	db *sqlite.DB
}

func NewSQLiteGoalStore(db *sqlite.DB) (goalout.GoalStore, error) {
	store := &SQLiteGoalStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteGoalStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS goals (
  app TEXT PRIMARY KEY,
  daily_limit_minutes INTEGER NOT NULL,
  start_date TEXT NOT NULL,
  current_streak INTEGER NOT NULL,
  longest_streak INTEGER NOT NULL,
  last_updated_date TEXT NOT NULL DEFAULT ''
);
`
	if _, err := s.db.Handle(ctx).ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create goals table: %w", err)
	}
	return nil
}

func (s *SQLiteGoalStore) Upsert(ctx context.Context, goal domain.Goal) error {
	const stmt = `
INSERT INTO goals (app, daily_limit_minutes, start_date, current_streak, longest_streak, last_updated_date)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(app) DO UPDATE SET
  daily_limit_minutes=excluded.daily_limit_minutes,
  start_date=excluded.start_date,
  current_streak=excluded.current_streak,
  longest_streak=excluded.longest_streak,
  last_updated_date=excluded.last_updated_date;
`
	_, err := s.db.Handle(ctx).ExecContext(ctx, stmt,
		goal.App, goal.DailyLimitMinutes, goal.StartDate, goal.CurrentStreak, goal.LongestStreak, goal.LastUpdatedDate)
	if err != nil {
		return fmt.Errorf("upsert goal: %w", err)
	}
	return nil
}

func (s *SQLiteGoalStore) Get(ctx context.Context, app string) (domain.Goal, error) {
	const query = `
SELECT app, daily_limit_minutes, start_date, current_streak, longest_streak, last_updated_date
FROM goals WHERE app = ?;
`
	var goal domain.Goal
	err := s.db.Handle(ctx).QueryRowContext(ctx, query, app).Scan(
		&goal.App, &goal.DailyLimitMinutes, &goal.StartDate, &goal.CurrentStreak, &goal.LongestStreak, &goal.LastUpdatedDate)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Goal{}, apperrors.ErrNotFound
	}
	if err != nil {
		return domain.Goal{}, fmt.Errorf("get goal: %w", err)
	}
	return goal, nil
}

func (s *SQLiteGoalStore) List(ctx context.Context) ([]domain.Goal, error) {
	const query = `
SELECT app, daily_limit_minutes, start_date, current_streak, longest_streak, last_updated_date
FROM goals ORDER BY app;
`
	rows, err := s.db.Handle(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	goals := []domain.Goal{}
	for rows.Next() {
		var goal domain.Goal
		if err := rows.Scan(&goal.App, &goal.DailyLimitMinutes, &goal.StartDate, &goal.CurrentStreak, &goal.LongestStreak, &goal.LastUpdatedDate); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goals: %w", err)
	}
	return goals, nil
}
