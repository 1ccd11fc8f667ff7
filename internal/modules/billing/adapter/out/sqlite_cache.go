package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"shiftware/internal/modules/billing/domain"
	billingout "shiftware/internal/modules/billing/port/out"

	_ "modernc.org/sqlite"
)

const cacheTimeLayout = time.RFC3339

// SQLiteInvoiceCache persists the last good enriched invoice snapshot.
// Money columns are decimal strings; SQLite floats would drift.
type SQLiteInvoiceCache struct {
	db *sql.DB
}

func NewSQLiteInvoiceCache(dbPath string) (billingout.InvoiceCache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	cache := &SQLiteInvoiceCache{db: db}
	if err := cache.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return cache, nil
}

func (c *SQLiteInvoiceCache) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS invoices (
  id INTEGER PRIMARY KEY,
  client_id INTEGER NOT NULL,
  paid_at TEXT,
  shift_count INTEGER NOT NULL,
  client_name TEXT NOT NULL,
  client_email TEXT NOT NULL,
  subtotal TEXT NOT NULL,
  gst TEXT NOT NULL,
  total TEXT NOT NULL
);
`
	if _, err := c.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create invoices table: %w", err)
	}
	return nil
}

func (c *SQLiteInvoiceCache) Replace(ctx context.Context, invoices []domain.Invoice) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin invoices replace: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM invoices`); err != nil {
		return fmt.Errorf("clear invoices: %w", err)
	}
	for _, invoice := range invoices {
		var paidAt any
		if invoice.Paid() {
			paidAt = invoice.PaidAt.Format(cacheTimeLayout)
		}
		var name, email string
		if invoice.Client != nil {
			name = invoice.Client.Name
			email = invoice.Client.Email
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO invoices (id, client_id, paid_at, shift_count, client_name, client_email, subtotal, gst, total)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			invoice.ID, invoice.ClientID, paidAt, len(invoice.Shifts), name, email,
			invoice.Totals.Subtotal.String(), invoice.Totals.GST.String(), invoice.Totals.Total.String(),
		); err != nil {
			return fmt.Errorf("insert invoice %d: %w", invoice.ID, err)
		}
	}
	return tx.Commit()
}

func (c *SQLiteInvoiceCache) Load(ctx context.Context) ([]domain.Invoice, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT id, client_id, paid_at, shift_count, client_name, client_email, subtotal, gst, total FROM invoices ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load invoices: %w", err)
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		var (
			invoice              domain.Invoice
			paidAt               sql.NullString
			shiftCount           int
			name, email          string
			subtotal, gst, total string
		)
		if err := rows.Scan(&invoice.ID, &invoice.ClientID, &paidAt, &shiftCount, &name, &email, &subtotal, &gst, &total); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		if paidAt.Valid {
			if invoice.PaidAt, err = time.Parse(cacheTimeLayout, paidAt.String); err != nil {
				return nil, fmt.Errorf("parse cached paid_at %q: %w", paidAt.String, err)
			}
		}
		if invoice.Totals.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
			return nil, fmt.Errorf("parse cached subtotal %q: %w", subtotal, err)
		}
		if invoice.Totals.GST, err = decimal.NewFromString(gst); err != nil {
			return nil, fmt.Errorf("parse cached gst %q: %w", gst, err)
		}
		if invoice.Totals.Total, err = decimal.NewFromString(total); err != nil {
			return nil, fmt.Errorf("parse cached total %q: %w", total, err)
		}
		// Shift lines are not cached; only the count survives a replay.
		invoice.Shifts = make([]domain.ShiftLine, shiftCount)
		invoice.Client = &domain.ClientRef{ID: invoice.ClientID, Name: name, Email: email}
		invoices = append(invoices, invoice)
	}
	return invoices, rows.Err()
}

func (c *SQLiteInvoiceCache) Reset(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM invoices`); err != nil {
		return fmt.Errorf("reset invoices: %w", err)
	}
	return nil
}
