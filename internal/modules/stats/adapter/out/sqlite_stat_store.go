package out

import (
	"context"
	"fmt"

	"unhook/internal/modules/stats/domain"
	statsout "unhook/internal/modules/stats/port/out"
	"unhook/internal/platform/sqlite"
)

type SQLiteStatStore struct {
	db *sqlite.DB
}

func NewSQLiteStatStore(db *sqlite.DB) (statsout.StatStore, error) {
	store := &SQLiteStatStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStatStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS daily_stats (
  date TEXT NOT NULL,
  app TEXT NOT NULL,
  total_duration_ms INTEGER NOT NULL,
  session_count INTEGER NOT NULL,
  longest_session_ms INTEGER NOT NULL,
  average_session_ms INTEGER NOT NULL,
  alerts_shown INTEGER NOT NULL,
  alerts_proceeded INTEGER NOT NULL,
  synthetic INTEGER NOT NULL,
  PRIMARY KEY (date, app)
);
`
	if _, err := s.db.Handle(ctx).ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create daily_stats table: %w", err)
	}
	return nil
}

func (s *SQLiteStatStore) Upsert(ctx context.Context, stat domain.DailyStat) error {
	const stmt = `
INSERT INTO daily_stats (date, app, total_duration_ms, session_count, longest_session_ms, average_session_ms, alerts_shown, alerts_proceeded, synthetic)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(date, app) DO UPDATE SET
  total_duration_ms=excluded.total_duration_ms,
  session_count=excluded.session_count,
  longest_session_ms=excluded.longest_session_ms,
  average_session_ms=excluded.average_session_ms,
  alerts_shown=excluded.alerts_shown,
  alerts_proceeded=excluded.alerts_proceeded,
  synthetic=excluded.synthetic;
`
	synthetic := 0
	if stat.Synthetic {
		synthetic = 1
	}
	_, err := s.db.Handle(ctx).ExecContext(ctx, stmt,
		stat.Date,
		stat.App,
		stat.TotalDurationMS,
		stat.SessionCount,
		stat.LongestSessionMS,
		stat.AverageSessionMS,
		stat.AlertsShown,
		stat.AlertsProceeded,
		synthetic,
	)
	if err != nil {
		return fmt.Errorf("upsert daily stat: %w", err)
	}
	return nil
}

func (s *SQLiteStatStore) InRange(ctx context.Context, app, fromDate, toDate string) ([]domain.DailyStat, error) {
	const query = `
SELECT date, app, total_duration_ms, session_count, longest_session_ms, average_session_ms, alerts_shown, alerts_proceeded, synthetic
FROM daily_stats
WHERE (? = '' OR app = ?) AND date >= ? AND date <= ?
ORDER BY date, app;
`
	rows, err := s.db.Handle(ctx).QueryContext(ctx, query, app, app, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("query daily stats: %w", err)
	}
	defer rows.Close()

	stats := []domain.DailyStat{}
	for rows.Next() {
		var stat domain.DailyStat
		var synthetic int
		if err := rows.Scan(
			&stat.Date,
			&stat.App,
			&stat.TotalDurationMS,
			&stat.SessionCount,
			&stat.LongestSessionMS,
			&stat.AverageSessionMS,
			&stat.AlertsShown,
			&stat.AlertsProceeded,
			&synthetic,
		); err != nil {
			return nil, fmt.Errorf("scan daily stat: %w", err)
		}
		stat.Synthetic = synthetic != 0
		stats = append(stats, stat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily stats: %w", err)
	}
	return stats, nil
}
