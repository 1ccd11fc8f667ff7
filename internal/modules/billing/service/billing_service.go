package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"shiftware/internal/modules/billing/domain"
	billingout "shiftware/internal/modules/billing/port/out"
	"shiftware/internal/platform/id"
)

const enrichmentConcurrency = 4

type BillingService struct {
	api   billingout.InvoicesAPI
	idGen id.Generator
}

func NewBillingService(api billingout.InvoicesAPI, idGen id.Generator) *BillingService {
	return &BillingService{api: api, idGen: idGen}
}

// LoadAll fetches the invoice collection, then resolves each invoice's
// owning client and financial detail. The two follow-up calls for one
// invoice run sequentially inside its goroutine; invoices fan out
// concurrently. Each result lands in its own slot, so base order is
// preserved without locking. Any failure rejects the whole operation.
func (s *BillingService) LoadAll(ctx context.Context) ([]domain.Invoice, error) {
	base, err := s.api.List(ctx)
	if err != nil {
		return nil, err
	}

	enriched := make([]domain.Invoice, len(base))
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(enrichmentConcurrency)
	for idx, invoice := range base {
		group.Go(func() error {
			client, err := s.api.ClientByID(gctx, invoice.ClientID)
			if err != nil {
				return fmt.Errorf("resolve client %d for invoice %d: %w", invoice.ClientID, invoice.ID, err)
			}
			totals, err := s.api.Detail(gctx, invoice.ID)
			if err != nil {
				return fmt.Errorf("fetch detail for invoice %d: %w", invoice.ID, err)
			}
			invoice.Client = &client
			invoice.Totals = totals
			enriched[idx] = invoice
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return enriched, nil
}

func (s *BillingService) Create(ctx context.Context, spec domain.CreateSpec) (domain.Invoice, error) {
	if err := spec.Validate(); err != nil {
		return domain.Invoice{}, err
	}
	return s.api.Create(ctx, spec, s.idGen.New())
}
