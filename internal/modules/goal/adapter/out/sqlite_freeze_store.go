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

type SQLiteFreezeStore struct {
	db *sqlite.DB
}

func NewSQLiteFreezeStore(db *sqlite.DB) (goalout.FreezeStore, error) {
	store := &SQLiteFreezeStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteFreezeStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS freeze_inventory (
  id INTEGER PRIMARY KEY CHECK (id = 1),
  available INTEGER NOT NULL,
  last_reset_month TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS freeze_grants (
  app TEXT NOT NULL,
  date TEXT NOT NULL,
  applied INTEGER NOT NULL DEFAULT 0,
  PRIMARY KEY (app, date)
);
`
	if _, err := s.db.Handle(ctx).ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create freeze tables: %w", err)
	}
	return nil
}

func (s *SQLiteFreezeStore) Inventory(ctx context.Context) (domain.FreezeInventory, error) {
	const query = `SELECT available, last_reset_month FROM freeze_inventory WHERE id = 1;`
	var inv domain.FreezeInventory
	err := s.db.Handle(ctx).QueryRowContext(ctx, query).Scan(&inv.Available, &inv.LastResetMonth)
	if errors.Is(err, sql.ErrNoRows) {
		// First use: an empty inventory gets its allowance on the next
		// monthly reset.
		return domain.FreezeInventory{}, nil
	}
	if err != nil {
		return domain.FreezeInventory{}, fmt.Errorf("get freeze inventory: %w", err)
	}
	return inv, nil
}

func (s *SQLiteFreezeStore) SaveInventory(ctx context.Context, inv domain.FreezeInventory) error {
	const stmt = `
INSERT INTO freeze_inventory (id, available, last_reset_month) VALUES (1, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  available=excluded.available,
  last_reset_month=excluded.last_reset_month;
`
	if _, err := s.db.Handle(ctx).ExecContext(ctx, stmt, inv.Available, inv.LastResetMonth); err != nil {
		return fmt.Errorf("save freeze inventory: %w", err)
	}
	return nil
}

func (s *SQLiteFreezeStore) Grant(ctx context.Context, app, date string) (domain.FreezeGrant, error) {
	const query = `SELECT app, date, applied FROM freeze_grants WHERE app = ? AND date = ?;`
	var grant domain.FreezeGrant
	var applied int
	err := s.db.Handle(ctx).QueryRowContext(ctx, query, app, date).Scan(&grant.App, &grant.Date, &applied)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.FreezeGrant{}, apperrors.ErrNotFound
	}
	if err != nil {
		return domain.FreezeGrant{}, fmt.Errorf("get freeze grant: %w", err)
	}
	grant.Applied = applied != 0
	return grant, nil
}

func (s *SQLiteFreezeStore) UpsertGrant(ctx context.Context, grant domain.FreezeGrant) error {
	const stmt = `
INSERT INTO freeze_grants (app, date, applied) VALUES (?, ?, ?)
ON CONFLICT(app, date) DO UPDATE SET applied=excluded.applied;
`
	applied := 0
	if grant.Applied {
		applied = 1
	}
	if _, err := s.db.Handle(ctx).ExecContext(ctx, stmt, grant.App, grant.Date, applied); err != nil {
		return fmt.Errorf("upsert freeze grant: %w", err)
	}
	return nil
}
