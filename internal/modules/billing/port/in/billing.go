package in

import (
	"context"

	"shiftware/internal/modules/billing/dto"
)

type Usecase interface {
	// List fetches the invoice collection and enriches every invoice with
	// its owning client and its financial detail. Fresh collection per
	// call; any enrichment failure fails the whole call.
	List(ctx context.Context) (dto.ListOutput, error)
	Create(ctx context.Context, input dto.CreateInvoiceInput) (dto.InvoiceOutput, error)
}
