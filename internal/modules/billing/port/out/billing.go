package out

import (
	"context"

	"shiftware/internal/modules/billing/domain"
)

type InvoicesAPI interface {
	// List returns base invoices: ids, client ids, paid markers, embedded
	// shift lines. Client and Totals are unresolved.
	List(ctx context.Context) ([]domain.Invoice, error)
	ClientByID(ctx context.Context, id int64) (domain.ClientRef, error)
	// Detail fetches the per-invoice financial endpoint.
	Detail(ctx context.Context, invoiceID int64) (domain.Totals, error)
	// Create posts a new invoice; idempotencyKey guards against duplicate
	// submission on retry.
	Create(ctx context.Context, spec domain.CreateSpec, idempotencyKey string) (domain.Invoice, error)
}

// InvoiceCache holds the last good enriched invoice snapshot for offline
// fallback.
type InvoiceCache interface {
	Replace(ctx context.Context, invoices []domain.Invoice) error
	Load(ctx context.Context) ([]domain.Invoice, error)
	Reset(ctx context.Context) error
}
