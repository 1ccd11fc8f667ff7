package out

import (
	"context"

	"shiftware/internal/modules/schedule/domain"
)

type ShiftsAPI interface {
	// List returns the base collection, unenriched.
	List(ctx context.Context) ([]domain.Shift, error)
	// ClientByID resolves a shift's owning client. The remote API has no
	// joins, so this is one call per shift.
	ClientByID(ctx context.Context, id int64) (domain.ClientRef, error)
}

// ShiftCache holds the last good enriched shift snapshot for offline
// fallback.
type ShiftCache interface {
	Replace(ctx context.Context, shifts []domain.Shift) error
	Load(ctx context.Context) ([]domain.Shift, error)
	Reset(ctx context.Context) error
}
