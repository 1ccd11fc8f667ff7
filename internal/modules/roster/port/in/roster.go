package in

import (
	"context"

	"shiftware/internal/modules/roster/dto"
)

type Usecase interface {
	// List fetches the full client collection, replacing any previously
	// cached list.
	List(ctx context.Context) (dto.ListOutput, error)
	Create(ctx context.Context, input dto.CreateClientInput) (dto.ClientOutput, error)
}
