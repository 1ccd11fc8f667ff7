package out

import (
	"context"

	"shiftware/internal/modules/roster/domain"
)

type ClientsAPI interface {
	List(ctx context.Context) ([]domain.Client, error)
	Create(ctx context.Context, client domain.Client) (domain.Client, error)
}

// ClientCache holds the last successfully fetched roster for offline
// fallback display.
type ClientCache interface {
	Replace(ctx context.Context, clients []domain.Client) error
	Load(ctx context.Context) ([]domain.Client, error)
	Reset(ctx context.Context) error
}
