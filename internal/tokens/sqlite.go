package tokens

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLitePersistence stores the token set in a local SQLite database.
type SQLitePersistence struct {
	db *sql.DB
}

// OpenSQLite opens (and if needed creates) the token database at path.
// Use ":memory:" for tests.
func OpenSQLite(path string) (*SQLitePersistence, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open token db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite handles concurrency better with single writer
	p := &SQLitePersistence{db: db}
	if err := p.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return p, nil
}

// NewSQLitePersistence wraps an existing database handle.
func NewSQLitePersistence(db *sql.DB) (*SQLitePersistence, error) {
	p := &SQLitePersistence{db: db}
	if err := p.migrate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *SQLitePersistence) migrate() error {
	_, err := p.db.Exec(`
		CREATE TABLE IF NOT EXISTS tokens (
			id         TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			scope      TEXT NOT NULL DEFAULT '',
			issued_at  INTEGER NOT NULL,
			rotated_at INTEGER NOT NULL,
			revoked    INTEGER NOT NULL DEFAULT 0
		)`)
	if err != nil {
		return fmt.Errorf("migrate token db: %w", err)
	}
	return nil
}

// Save replaces the persisted token set with the given snapshot.
func (p *SQLitePersistence) Save(ctx context.Context, toks []Token) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tokens`); err != nil {
		return fmt.Errorf("clear tokens: %w", err)
	}
	for _, t := range toks {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO tokens (id, value, scope, issued_at, rotated_at, revoked)
			VALUES (?, ?, ?, ?, ?, ?)`,
			t.ID, t.Value, t.Scope,
			t.IssuedAt.UnixMilli(), t.RotatedAt.UnixMilli(), boolToInt(t.Revoked))
		if err != nil {
			return fmt.Errorf("insert token %s: %w", t.ID, err)
		}
	}
	return tx.Commit()
}

// Load restores the persisted token set.
func (p *SQLitePersistence) Load(ctx context.Context) ([]Token, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, value, scope, issued_at, rotated_at, revoked
		FROM tokens ORDER BY issued_at`)
	if err != nil {
		return nil, fmt.Errorf("query tokens: %w", err)
	}
	defer rows.Close()

	var out []Token
	for rows.Next() {
		var t Token
		var issued, rotated int64
		var revoked int
		if err := rows.Scan(&t.ID, &t.Value, &t.Scope, &issued, &rotated, &revoked); err != nil {
			return nil, fmt.Errorf("scan token: %w", err)
		}
		t.IssuedAt = time.UnixMilli(issued)
		t.RotatedAt = time.UnixMilli(rotated)
		t.Revoked = revoked != 0
		out = append(out, t)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (p *SQLitePersistence) Close() error {
	return p.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
