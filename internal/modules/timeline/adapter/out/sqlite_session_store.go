package out

import (
	"context"
	"database/sql"
	"fmt"

	"unhook/internal/modules/timeline/domain"
	timelineout "unhook/internal/modules/timeline/port/out"
	"unhook/internal/platform/sqlite"
)

type SQLiteSessionStore struct {
	db *sqlite.DB
}

func NewSQLiteSessionStore(db *sqlite.DB) (timelineout.SessionStore, error) {
	store := &SQLiteSessionStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteSessionStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  app TEXT NOT NULL,
  start_ms INTEGER NOT NULL,
  end_ms INTEGER NOT NULL,
  duration_ms INTEGER NOT NULL,
  date TEXT NOT NULL,
  interrupted INTEGER NOT NULL DEFAULT 0,
  interruption_reason TEXT NOT NULL DEFAULT '',
  UNIQUE(app, start_ms)
);
CREATE INDEX IF NOT EXISTS idx_sessions_date ON sessions(date);
`
	if _, err := s.db.Handle(ctx).ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

func (s *SQLiteSessionStore) Upsert(ctx context.Context, session domain.Session) (int64, error) {
	const stmt = `
INSERT INTO sessions (app, start_ms, end_ms, duration_ms, date, interrupted, interruption_reason)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(app, start_ms) DO UPDATE SET
  end_ms=excluded.end_ms,
  duration_ms=excluded.duration_ms,
  date=excluded.date,
  interrupted=excluded.interrupted,
  interruption_reason=excluded.interruption_reason
RETURNING id;
`
	var id int64
	err := s.db.Handle(ctx).QueryRowContext(ctx, stmt,
		session.App,
		session.StartMS,
		session.EndMS,
		session.DurationMS,
		session.Date,
		boolToInt(session.Interrupted),
		session.InterruptionReason,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert session: %w", err)
	}
	return id, nil
}

func (s *SQLiteSessionStore) InRange(ctx context.Context, app string, startMS, endMS int64) ([]domain.Session, error) {
	const query = `
SELECT id, app, start_ms, end_ms, duration_ms, date, interrupted, interruption_reason
FROM sessions
WHERE (? = '' OR app = ?) AND start_ms >= ? AND start_ms < ?
ORDER BY start_ms, id;
`
	rows, err := s.db.Handle(ctx).QueryContext(ctx, query, app, app, startMS, endMS)
	if err != nil {
		return nil, fmt.Errorf("query sessions in range: %w", err)
	}
	defer rows.Close()
	return scanSessions(rows)
}

func scanSessions(rows *sql.Rows) ([]domain.Session, error) {
	sessions := []domain.Session{}
	for rows.Next() {
		var session domain.Session
		var interrupted int
		if err := rows.Scan(
			&session.ID,
			&session.App,
			&session.StartMS,
			&session.EndMS,
			&session.DurationMS,
			&session.Date,
			&interrupted,
			&session.InterruptionReason,
		); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		session.Interrupted = interrupted != 0
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
