package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"shiftware/internal/modules/roster/domain"
	rosterout "shiftware/internal/modules/roster/port/out"

	_ "modernc.org/sqlite"
)

// SQLiteClientCache keeps the last good roster snapshot for offline
// fallback. Replace is transactional so readers never see a half-written
// snapshot.
type SQLiteClientCache struct {
	db *sql.DB
}

func NewSQLiteClientCache(dbPath string) (rosterout.ClientCache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	cache := &SQLiteClientCache{db: db}
	if err := cache.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return cache, nil
}

func (c *SQLiteClientCache) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS clients (
  id INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL
);
`
	if _, err := c.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create clients table: %w", err)
	}
	return nil
}

func (c *SQLiteClientCache) Replace(ctx context.Context, clients []domain.Client) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin clients replace: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM clients`); err != nil {
		return fmt.Errorf("clear clients: %w", err)
	}
	for _, client := range clients {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO clients (id, name, email) VALUES (?, ?, ?)`,
			client.ID, client.Name, client.Email,
		); err != nil {
			return fmt.Errorf("insert client %d: %w", client.ID, err)
		}
	}
	return tx.Commit()
}

func (c *SQLiteClientCache) Load(ctx context.Context) ([]domain.Client, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT id, name, email FROM clients ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load clients: %w", err)
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		var client domain.Client
		if err := rows.Scan(&client.ID, &client.Name, &client.Email); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, client)
	}
	return clients, rows.Err()
}

func (c *SQLiteClientCache) Reset(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM clients`); err != nil {
		return fmt.Errorf("reset clients: %w", err)
	}
	return nil
}
