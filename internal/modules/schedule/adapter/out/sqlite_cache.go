package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"shiftware/internal/modules/schedule/domain"
	scheduleout "shiftware/internal/modules/schedule/port/out"

	_ "modernc.org/sqlite"
)

const cacheTimeLayout = time.RFC3339

// SQLiteShiftCache persists the last good enriched shift snapshot.
type SQLiteShiftCache struct {
	db *sql.DB
}

func NewSQLiteShiftCache(dbPath string) (scheduleout.ShiftCache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	cache := &SQLiteShiftCache{db: db}
	if err := cache.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return cache, nil
}

func (c *SQLiteShiftCache) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS shifts (
  id INTEGER PRIMARY KEY,
  client_id INTEGER NOT NULL,
  shift_start TEXT NOT NULL,
  shift_end TEXT NOT NULL,
  description TEXT,
  client_name TEXT NOT NULL,
  client_email TEXT NOT NULL
);
`
	if _, err := c.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create shifts table: %w", err)
	}
	return nil
}

func (c *SQLiteShiftCache) Replace(ctx context.Context, shifts []domain.Shift) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin shifts replace: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM shifts`); err != nil {
		return fmt.Errorf("clear shifts: %w", err)
	}
	for _, shift := range shifts {
		var name, email string
		if shift.Client != nil {
			name = shift.Client.Name
			email = shift.Client.Email
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO shifts (id, client_id, shift_start, shift_end, description, client_name, client_email)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			shift.ID, shift.ClientID,
			shift.Start.Format(cacheTimeLayout), shift.End.Format(cacheTimeLayout),
			shift.Description, name, email,
		); err != nil {
			return fmt.Errorf("insert shift %d: %w", shift.ID, err)
		}
	}
	return tx.Commit()
}

func (c *SQLiteShiftCache) Load(ctx context.Context) ([]domain.Shift, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT id, client_id, shift_start, shift_end, description, client_name, client_email FROM shifts ORDER BY shift_start`)
	if err != nil {
		return nil, fmt.Errorf("load shifts: %w", err)
	}
	defer rows.Close()

	var shifts []domain.Shift
	for rows.Next() {
		var (
			shift       domain.Shift
			start, end  string
			name, email string
		)
		if err := rows.Scan(&shift.ID, &shift.ClientID, &start, &end, &shift.Description, &name, &email); err != nil {
			return nil, fmt.Errorf("scan shift: %w", err)
		}
		if shift.Start, err = time.Parse(cacheTimeLayout, start); err != nil {
			return nil, fmt.Errorf("parse cached start %q: %w", start, err)
		}
		if shift.End, err = time.Parse(cacheTimeLayout, end); err != nil {
			return nil, fmt.Errorf("parse cached end %q: %w", end, err)
		}
		shift.Client = &domain.ClientRef{ID: shift.ClientID, Name: name, Email: email}
		shifts = append(shifts, shift)
	}
	return shifts, rows.Err()
}

func (c *SQLiteShiftCache) Reset(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM shifts`); err != nil {
		return fmt.Errorf("reset shifts: %w", err)
	}
	return nil
}
